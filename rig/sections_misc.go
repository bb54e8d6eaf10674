package rig

import "strings"

// parseExhaustLine implements `exhausts` (spec §3 Node family).
func (p *Parser) parseExhaustLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 2 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed exhausts line")
		return
	}
	rec := &ExhaustRec{
		Line:    ev.Line,
		RefNode: ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
		DirNode: ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags),
	}
	if len(fields) >= 3 {
		rec.MaterialName = fields[2]
	}
	p.curModule.Exhausts = append(p.curModule.Exhausts, rec)
}

// parseFlareLine implements `flares2` (spec §3 Flare family).
func (p *Parser) parseFlareLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 7 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed flares2 line")
		return
	}
	rec := &FlareRec{Line: ev.Line}
	rec.RefNode = ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.NodeX = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.NodeY = ParseNodeId(fields[2], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.Offset.X, _ = parseFloatLoose(fields[3])
	rec.Offset.Y, _ = parseFloatLoose(fields[4])
	rec.Offset.Z, _ = parseFloatLoose(fields[5])
	if len(fields[6]) > 0 {
		rec.Kind = fields[6][0]
	}
	if len(fields) >= 8 {
		if v, err := parseIntLoose(fields[7]); err == nil {
			rec.ControlNumber = v
		}
	}
	if len(fields) >= 9 {
		if v, err := parseFloatLoose(fields[8]); err == nil {
			rec.Blink = v != 0
		}
	}
	if len(fields) >= 10 {
		rec.MaterialName = fields[9]
	}
	p.curModule.Flares2 = append(p.curModule.Flares2, rec)
}

// parseWingLine implements `wings` (spec §C supplement).
func (p *Parser) parseWingLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 13 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed wings line")
		return
	}
	rec := &WingRec{Line: ev.Line}
	for i := 0; i < 8; i++ {
		rec.Nodes[i] = ParseNodeId(fields[i], ev.Line, p.curModuleName, p.curSection, &p.diags)
	}
	if len(fields[8]) > 0 {
		rec.Control = fields[8][0]
	}
	rec.Chord, _ = parseFloatLoose(fields[9])
	rec.MinDeflection, _ = parseFloatLoose(fields[10])
	rec.MaxDeflection, _ = parseFloatLoose(fields[11])
	rec.Airfoil = fields[12]
	if len(fields) >= 14 {
		rec.Efficiency, _ = parseFloatLoose(fields[13])
	}
	p.curModule.Wings = append(p.curModule.Wings, rec)
}

// parseTurbojetLine implements `turbojets` (spec §C supplement).
func (p *Parser) parseTurbojetLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 9 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed turbojets line")
		return
	}
	rec := &TurbojetRec{Line: ev.Line}
	rec.FrontNode = ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.BackNode = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.RefNode = ParseNodeId(fields[2], ev.Line, p.curModuleName, p.curSection, &p.diags)
	if v, err := parseIntLoose(fields[3]); err == nil {
		rec.IsReversable = v != 0
	}
	rec.MaxThrust, _ = parseFloatLoose(fields[4])
	rec.AfterburnerThrust, _ = parseFloatLoose(fields[5])
	rec.FrontDiameter, _ = parseFloatLoose(fields[6])
	rec.BackDiameter, _ = parseFloatLoose(fields[7])
	rec.NozzleLength, _ = parseFloatLoose(fields[8])
	p.curModule.Turbojets = append(p.curModule.Turbojets, rec)
}

// parseTurbopropLine implements `turboprops2` (spec §C supplement).
func (p *Parser) parseTurbopropLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 9 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed turboprops2 line")
		return
	}
	rec := &TurbopropRec{Line: ev.Line}
	rec.RefNode = ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.AxisNode = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	for i := 0; i < 4; i++ {
		rec.BladeTipNodes[i] = ParseNodeId(fields[2+i], ev.Line, p.curModuleName, p.curSection, &p.diags)
	}
	if v, err := parseIntLoose(fields[6]); err == nil {
		rec.NumBlades = v
	}
	rec.FullPower, _ = parseFloatLoose(fields[7])
	rec.PropDiameter, _ = parseFloatLoose(fields[8])
	if len(fields) >= 10 {
		rec.MaxRPM, _ = parseFloatLoose(fields[9])
	}
	p.curModule.Turboprops = append(p.curModule.Turboprops, rec)
}

// parsePistonpropLine implements `pistonprops` (spec §C supplement).
func (p *Parser) parsePistonpropLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 9 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed pistonprops line")
		return
	}
	rec := &PistonpropRec{Line: ev.Line}
	rec.RefNode = ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.AxisNode = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	for i := 0; i < 4; i++ {
		rec.BladeTipNodes[i] = ParseNodeId(fields[2+i], ev.Line, p.curModuleName, p.curSection, &p.diags)
	}
	if v, err := parseIntLoose(fields[6]); err == nil {
		rec.NumBlades = v
	}
	rec.FullPower, _ = parseFloatLoose(fields[7])
	rec.PropDiameter, _ = parseFloatLoose(fields[8])
	if len(fields) >= 10 {
		rec.PitchAngle, _ = parseFloatLoose(fields[9])
	}
	if len(fields) >= 11 {
		rec.MaxRPM, _ = parseFloatLoose(fields[10])
	}
	p.curModule.Pistonprops = append(p.curModule.Pistonprops, rec)
}

// parseScrewpropLine implements `screwprops` (spec §C supplement).
func (p *Parser) parseScrewpropLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 4 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed screwprops line")
		return
	}
	rec := &ScrewpropRec{Line: ev.Line}
	rec.RefNode = ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.BackNode = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.TopNode = ParseNodeId(fields[2], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.Power, _ = parseFloatLoose(fields[3])
	p.curModule.Screwprops = append(p.curModule.Screwprops, rec)
}

// parseFusedragLine implements `fusedrag` (spec §C supplement).
func (p *Parser) parseFusedragLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed fusedrag line")
		return
	}
	rec := &FusedragRec{Line: ev.Line}
	rec.FrontNode = ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.BackNode = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.Factor, _ = parseFloatLoose(fields[2])
	if len(fields) >= 4 {
		rec.MeshName = fields[3]
	}
	p.curModule.Fusedrags = append(p.curModule.Fusedrags, rec)
}

// parseAirbrakeLine implements `airbrakes` (spec §C supplement).
func (p *Parser) parseAirbrakeLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 9 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed airbrakes line")
		return
	}
	rec := &AirbrakeRec{Line: ev.Line}
	rec.RefNode = ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.XNode = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.YNode = ParseNodeId(fields[2], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.Offset.X, _ = parseFloatLoose(fields[3])
	rec.Offset.Y, _ = parseFloatLoose(fields[4])
	rec.Offset.Z, _ = parseFloatLoose(fields[5])
	rec.Width, _ = parseFloatLoose(fields[6])
	rec.Height, _ = parseFloatLoose(fields[7])
	rec.MaxAngle, _ = parseFloatLoose(fields[8])
	if len(fields) >= 13 {
		rec.TextureX1, _ = parseFloatLoose(fields[9])
		rec.TextureY1, _ = parseFloatLoose(fields[10])
		rec.TextureX2, _ = parseFloatLoose(fields[11])
		rec.TextureY2, _ = parseFloatLoose(fields[12])
	}
	if len(fields) >= 14 {
		rec.Lift, _ = parseFloatLoose(fields[13])
	}
	p.curModule.Airbrakes = append(p.curModule.Airbrakes, rec)
}

// parseCameraLine implements `cameras`/`videocameras` (spec §3 Camera
// family): reuses the same three-node shape for both.
func (p *Parser) parseCameraLine(ev Event, video bool) {
	fields := SplitFields(ev.Text)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed cameras line")
		return
	}
	rec := &CameraRec{Line: ev.Line}
	rec.CenterNode = ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.BackNode = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.LeftNode = ParseNodeId(fields[2], ev.Line, p.curModuleName, p.curSection, &p.diags)
	if video {
		p.curModule.VideoCameras = append(p.curModule.VideoCameras, rec)
	} else {
		p.curModule.Cameras = append(p.curModule.Cameras, rec)
	}
}

// parseCameraRailLine implements `camerarails` (spec §3 Camera family):
// one rail of ordered nodes per line.
func (p *Parser) parseCameraRailLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		return
	}
	rec := &CameraRailRec{Line: ev.Line}
	for _, tok := range fields {
		rec.Nodes = append(rec.Nodes, ParseNodeId(tok, ev.Line, p.curModuleName, p.curSection, &p.diags))
	}
	p.curModule.CameraRails = append(p.curModule.CameraRails, rec)
}

// parseExtCameraLine implements `extcamera` (spec §3 Camera family): a
// single-line mode selector, `node` mode also carrying a node id.
func (p *Parser) parseExtCameraLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed extcamera line")
		return
	}
	rec := &ExtCameraRec{}
	switch strings.ToLower(fields[0]) {
	case "classic":
		rec.Mode = ExtCameraClassic
	case "cinecam":
		rec.Mode = ExtCameraCinecam
	case "node":
		rec.Mode = ExtCameraNode
		if len(fields) >= 2 {
			rec.Node = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
			rec.HasNode = true
		}
	}
	p.curModule.ExtCamera = rec
}

// parseEngineLine implements `engine` (spec §C supplement).
func (p *Parser) parseEngineLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 6 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed engine line")
		return
	}
	rec := &EngineRec{Line: ev.Line}
	rec.Shift, _ = parseFloatLoose(fields[0])
	rec.Clutch, _ = parseFloatLoose(fields[1])
	rec.MinRPM, _ = parseFloatLoose(fields[2])
	rec.MaxRPM, _ = parseFloatLoose(fields[3])
	rec.MaxTorque, _ = parseFloatLoose(fields[4])
	rec.DiffRatio, _ = parseFloatLoose(fields[5])
	for _, tok := range fields[6:] {
		if v, err := parseFloatLoose(tok); err == nil {
			rec.GearRatios = append(rec.GearRatios, v)
			rec.HasGears = true
		}
	}
	p.curModule.Engine = rec
}

// parseEngoptionLine implements `engoption` (spec §C supplement).
func (p *Parser) parseEngoptionLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed engoption line")
		return
	}
	rec := &EngoptionRec{Line: ev.Line}
	rec.EngineInertia, _ = parseFloatLoose(fields[0])
	if len(fields) >= 2 && len(fields[1]) > 0 {
		rec.EngineType = fields[1][0]
	}
	if len(fields) >= 3 {
		rec.ClutchForce, _ = parseFloatLoose(fields[2])
	}
	if len(fields) >= 4 {
		rec.ShiftTime, _ = parseFloatLoose(fields[3])
	}
	if len(fields) >= 5 {
		rec.ClutchTime, _ = parseFloatLoose(fields[4])
	}
	if len(fields) >= 6 {
		rec.PostShiftTime, _ = parseFloatLoose(fields[5])
	}
	if len(fields) >= 7 {
		rec.StallRPM, _ = parseFloatLoose(fields[6])
	}
	if len(fields) >= 8 {
		rec.IdleRPM, _ = parseFloatLoose(fields[7])
	}
	if len(fields) >= 9 {
		rec.MaxIdleMixture, _ = parseFloatLoose(fields[8])
	}
	if len(fields) >= 10 {
		rec.MinIdleMixture, _ = parseFloatLoose(fields[9])
	}
	p.curModule.Engoption = rec
}

// parseBrakesLine implements `brakes` (spec §C supplement).
func (p *Parser) parseBrakesLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed brakes line")
		return
	}
	rec := &BrakesRec{Line: ev.Line}
	rec.MaxBrakeForce, _ = parseFloatLoose(fields[0])
	if len(fields) >= 2 {
		if v, err := parseFloatLoose(fields[1]); err == nil {
			rec.ParkingBrakeForce, rec.HasParking = v, true
		}
	}
	p.curModule.Brakes = rec
}

// parseTractionControlLine implements `TractionControl` (spec §C
// supplement).
func (p *Parser) parseTractionControlLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 4 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed TractionControl line")
		return
	}
	rec := &TractionControlRec{Line: ev.Line}
	rec.Regulation, _ = parseFloatLoose(fields[0])
	rec.WheelSlip, _ = parseFloatLoose(fields[1])
	rec.FadeSpeed, _ = parseFloatLoose(fields[2])
	rec.PulseScale, _ = parseFloatLoose(fields[3])
	for _, tok := range fields[4:] {
		rec.Mode = append(rec.Mode, []byte(tok)...)
	}
	p.curModule.TractionCtl = rec
}

// parseAntiLockBrakesLine implements `AntiLockBrakes` (spec §C
// supplement).
func (p *Parser) parseAntiLockBrakesLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed AntiLockBrakes line")
		return
	}
	rec := &AntiLockBrakesRec{Line: ev.Line}
	rec.Regulation, _ = parseFloatLoose(fields[0])
	rec.MinSpeed, _ = parseFloatLoose(fields[1])
	rec.PulseScale, _ = parseFloatLoose(fields[2])
	for _, tok := range fields[3:] {
		rec.Mode = append(rec.Mode, []byte(tok)...)
	}
	p.curModule.AntiLockBr = rec
}

// parseSlopeBrakeLine implements `SlopeBrake` (spec §C supplement).
func (p *Parser) parseSlopeBrakeLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed SlopeBrake line")
		return
	}
	rec := &SlopeBrakeRec{Line: ev.Line}
	rec.RegulationForce, _ = parseFloatLoose(fields[0])
	if len(fields) >= 2 {
		rec.AttachAngle, _ = parseFloatLoose(fields[1])
	}
	if len(fields) >= 3 {
		rec.ReleaseAngle, _ = parseFloatLoose(fields[2])
	}
	p.curModule.SlopeBrake = rec
}

// parseTorqueCurveLine implements `torquecurve` (spec §C supplement):
// either a predefined curve name, or one (rpm%, torque%) sample.
func (p *Parser) parseTorqueCurveLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		return
	}
	if p.curModule.TorqueCurve == nil {
		p.curModule.TorqueCurve = &TorqueCurveRec{Line: ev.Line}
	}
	if len(fields) == 1 {
		if _, err := parseFloatLoose(fields[0]); err != nil {
			p.curModule.TorqueCurve.PredefinedCurve = fields[0]
			return
		}
	}
	if len(fields) >= 2 {
		rpm, rerr := parseFloatLoose(fields[0])
		torque, terr := parseFloatLoose(fields[1])
		if rerr == nil && terr == nil {
			p.curModule.TorqueCurve.Samples = append(p.curModule.TorqueCurve.Samples, [2]float64{rpm, torque})
		}
	}
}

// parseCruiseControlLine implements `cruisecontrol` (spec §C supplement).
func (p *Parser) parseCruiseControlLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed cruisecontrol line")
		return
	}
	rec := &CruiseControlRec{Line: ev.Line}
	rec.MinSpeed, _ = parseFloatLoose(fields[0])
	if len(fields) >= 2 {
		if v, err := parseIntLoose(fields[1]); err == nil {
			rec.AutoBrake = v != 0
		}
	}
	p.curModule.CruiseCtl = rec
}

// parseSpeedLimiterLine implements `speedlimiter` (spec §C supplement).
func (p *Parser) parseSpeedLimiterLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		return
	}
	rec := &SpeedLimiterRec{Line: ev.Line}
	rec.MaxSpeed, _ = parseFloatLoose(fields[0])
	p.curModule.SpeedLimiter = rec
}

// parseMaterialFlareBindingLine implements `materialflarebindings`
// (spec §3 Flare family).
func (p *Parser) parseMaterialFlareBindingLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 2 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed materialflarebindings line")
		return
	}
	rec := &MaterialFlareBindingRec{Line: ev.Line}
	if v, err := parseIntLoose(fields[0]); err == nil {
		rec.FlareNumber = v
	}
	rec.Material = fields[1]
	p.curModule.MatFlareBindings = append(p.curModule.MatFlareBindings, rec)
}

// parseSoundSourceLine implements `soundsources`/`soundsources2` (spec
// §C supplement); soundsources2 inserts a mode field before the script
// name.
func (p *Parser) parseSoundSourceLine(ev Event, is2 bool) {
	fields := SplitFields(ev.Text)
	minFields := 2
	if is2 {
		minFields = 3
	}
	if len(fields) < minFields {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed soundsources line")
		return
	}
	rec := &SoundSourceRec{
		Line: ev.Line,
		Node: ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
		Is2:  is2,
	}
	if is2 {
		if v, err := parseIntLoose(fields[1]); err == nil {
			rec.Mode = v
		}
		rec.SoundScript = fields[2]
	} else {
		rec.SoundScript = fields[1]
	}
	p.curModule.SoundSources = append(p.curModule.SoundSources, rec)
}

// parseManagedMaterialLine implements `managedmaterials` (spec §C
// supplement).
func (p *Parser) parseManagedMaterialLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed managedmaterials line")
		return
	}
	rec := &ManagedMaterialRec{
		Line:    ev.Line,
		Name:    fields[0],
		Type:    fields[1],
		Options: p.defaults.ManagedMat,
	}
	for i := 0; i < 3 && 2+i < len(fields); i++ {
		rec.Textures[i] = fields[2+i]
	}
	p.curModule.ManagedMaterials = append(p.curModule.ManagedMaterials, rec)
}

// parseGlobalsLine implements `globals` (spec §3 Module).
func (p *Parser) parseGlobalsLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 2 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed globals line")
		return
	}
	rec := &GlobalsRec{Line: ev.Line}
	rec.DryMass, _ = parseFloatLoose(fields[0])
	rec.LoadMass, _ = parseFloatLoose(fields[1])
	if len(fields) >= 3 {
		rec.MaterialName = fields[2]
	}
	p.curModule.Globals = rec
}

// parseAuthorLine implements `author` (spec §3 Module metadata).
func (p *Parser) parseAuthorLine(ev Event) {
	fields := SplitFieldsN(ev.Text, 4)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed author line")
		return
	}
	rec := AuthorRec{Type: fields[0], Name: fields[2]}
	if v, err := parseIntLoose(fields[1]); err == nil {
		rec.Id = v
	}
	if len(fields) >= 4 {
		rec.Email = fields[3]
	}
	p.curModule.Authors = append(p.curModule.Authors, rec)
}

// parseFileInfoLine implements `fileinfo` (spec §3 Module metadata).
func (p *Parser) parseFileInfoLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed fileinfo line")
		return
	}
	rec := &FileInfoRec{UniqueId: fields[0]}
	if len(fields) >= 2 {
		if v, err := parseIntLoose(fields[1]); err == nil {
			rec.Category = v
		}
	}
	if len(fields) >= 3 {
		if v, err := parseIntLoose(fields[2]); err == nil {
			rec.Version = v
		}
	}
	p.curModule.FileInfo = rec
}

// parseGuiSettingLine implements `guisettings` (spec §3 Module
// metadata): key value pairs accumulated into a map.
func (p *Parser) parseGuiSettingLine(ev Event) {
	fields := SplitFieldsN(ev.Text, 2)
	if len(fields) < 2 {
		p.diags.Add(WARNING, ev.Line, p.curModuleName, p.curSection, "", "malformed guisettings line, ignored")
		return
	}
	p.curModule.GuiSettings[fields[0]] = fields[1]
}

// parseSkeletonSettingLine implements `set_skeleton_settings` (spec §3
// Module metadata): key value pairs accumulated into a numeric map.
func (p *Parser) parseSkeletonSettingLine(ev Event) {
	fields := SplitFieldsN(ev.Text, 2)
	if len(fields) < 2 {
		return
	}
	if v, err := parseFloatLoose(fields[1]); err == nil {
		p.curModule.SkeletonSettings[fields[0]] = v
	}
}

// parseMinimassLine implements `minimass` (spec §3 Module metadata).
func (p *Parser) parseMinimassLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		return
	}
	if v, err := parseFloatLoose(fields[0]); err == nil {
		p.curModule.MinimumMass, p.curModule.HasMinimumMass = v, true
	}
}
