package rig

import "strings"

// parseCommandLine implements `commands`/`commands2` (spec §3 Command,
// §4.3.5). commands2 inserts a center_length field between the
// shorten/lengthen rates and the key pair; both share everything else.
func (p *Parser) parseCommandLine(ev Event) {
	fields := SplitFields(ev.Text)
	is2 := p.curSection == "commands2"
	minFields := 6
	if is2 {
		minFields = 7
	}
	if len(fields) < minFields {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed commands line")
		return
	}

	n1 := ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	n2 := ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	shorten, _ := parseFloatLoose(fields[2])
	lengthen, _ := parseFloatLoose(fields[3])

	rec := &CommandRec{
		Line:           ev.Line,
		NodeA:          n1,
		NodeB:          n2,
		MaxContraction: shorten,
		MaxExtension:   lengthen,
		DetacherGrp:    p.defaults.DetacherGroup,
		Defaults:       p.defaults.Beam,
	}

	idx := 4
	if is2 {
		rec.CenterLength, _ = parseFloatLoose(fields[4])
		idx = 5
	}
	if v, err := parseIntLoose(fields[idx]); err == nil {
		rec.KeyExtend = v
	}
	if v, err := parseIntLoose(fields[idx+1]); err == nil {
		rec.KeyContract = v
	}
	idx += 2

	if len(fields) > idx {
		opts := ParseOptions(fields[idx], "ircfpo", ev.Line, p.curModuleName, p.curSection, &p.diags)
		if opts.Has('i') {
			rec.Options |= CmdInvisible
		}
		if opts.Has('r') {
			rec.Options |= CmdRopeBounded
		}
		if opts.Has('c') {
			rec.Options |= CmdAutoCenter
		}
		if opts.Has('f') {
			rec.Options |= CmdForceRestricted
		}
		if opts.Has('p') {
			rec.Options |= CmdOnePressPlus
		}
		if opts.Has('o') {
			rec.Options |= CmdOnePressMinus
		}
		idx++
	}
	if len(fields) > idx {
		rec.Description = fields[idx]
		idx++
	}
	if len(fields) > idx {
		rec.Inertia = ParseInertiaTail(fields[idx:], ev.Line, p.curModuleName, p.curSection, &p.diags)
	}

	p.curModule.Commands = append(p.curModule.Commands, rec)
	p.lastCommandIdx = len(p.curModule.Commands) - 1
	p.haveLastCommand = true
}

// parseTieLine implements `ties` (spec §3 Tie, §C supplement).
func (p *Parser) parseTieLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 4 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed ties line")
		return
	}
	rec := &TieRec{
		Line:  ev.Line,
		NodeA: ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
		NodeB: ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags),
	}
	rec.MaxReach, _ = parseFloatLoose(fields[2])
	rec.AutoShorten, _ = parseFloatLoose(fields[3])
	if len(fields) >= 5 {
		rec.SpeedCoef, _ = parseFloatLoose(fields[4])
	}
	if len(fields) >= 6 {
		if v, err := parseIntLoose(fields[5]); err == nil {
			rec.Group = v
		}
	}
	p.curModule.Ties = append(p.curModule.Ties, rec)
}

// parseHydroLine implements `hydros` (spec §3 Hydro, §4.3.6).
func (p *Parser) parseHydroLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed hydros line")
		return
	}
	rec := &HydroRec{
		Line:        ev.Line,
		NodeA:       ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
		NodeB:       ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags),
		DetacherGrp: p.defaults.DetacherGroup,
		Defaults:    p.defaults.Beam,
	}
	rec.Rate, _ = parseFloatLoose(fields[2])
	idx := 3
	if len(fields) > idx {
		opts := ParseOptions(fields[idx], "aresuvxygh", ev.Line, p.curModuleName, p.curSection, &p.diags)
		if opts.Has('a') {
			rec.Flags |= HydroAileron
		}
		if opts.Has('r') {
			rec.Flags |= HydroRudder
		}
		if opts.Has('e') {
			rec.Flags |= HydroElevator
		}
		if opts.Has('u') {
			rec.Flags |= HydroAileronElevator
		}
		if opts.Has('v') {
			rec.Flags |= HydroInvAileronElevator
		}
		if opts.Has('x') {
			rec.Flags |= HydroAileronRudder
		}
		if opts.Has('y') {
			rec.Flags |= HydroInvAileronRudder
		}
		if opts.Has('g') {
			rec.Flags |= HydroElevatorRudder
		}
		if opts.Has('h') {
			rec.Flags |= HydroInvElevatorRudder
		}
		if opts.Has('s') {
			rec.Flags |= HydroSpeed
		}
		idx++
	}
	if len(fields) > idx {
		rec.Inertia = ParseInertiaTail(fields[idx:], ev.Line, p.curModuleName, p.curSection, &p.diags)
	}
	p.curModule.Hydros = append(p.curModule.Hydros, rec)
}

// animatorStandaloneFlags maps an animators standalone keyword token to
// its bit (grounded: RigDefParser.cpp's ParseAnimator else-if chain).
var animatorStandaloneFlags = map[string]int{
	"vis":           AnimVisible,
	"inv":           AnimInvisible,
	"airspeed":      AnimAirspeed,
	"vvi":           AnimVerticalVelocity,
	"altimeter100k": AnimAltimeter100k,
	"altimeter10k":  AnimAltimeter10k,
	"altimeter1k":   AnimAltimeter1k,
	"aoa":           AnimAngleOfAttack,
	"flap":          AnimFlap,
	"airbrake":      AnimAirBrake,
	"roll":          AnimRoll,
	"pitch":         AnimPitch,
	"brakes":        AnimBrakes,
	"accel":         AnimAccel,
	"clutch":        AnimClutch,
	"speedo":        AnimSpeedo,
	"tacho":         AnimTacho,
	"turbo":         AnimTurbo,
	"parking":       AnimParking,
	"shifterman1":   AnimShifterLeftRight,
	"shifterman2":   AnimShifterBackForth,
	"sequential":    AnimSequentialShift,
	"shifterlin":    AnimGearSelect,
	"torque":        AnimTorque,
	"difflock":      AnimDiffLock,
	"rudderboat":    AnimBoatRudder,
	"throttleboat":  AnimBoatThrottle,
}

// animatorAeroFlags maps an animators motor-indexed keyword prefix
// (`name-N`) to its AeroFlags bit.
var animatorAeroFlags = map[string]int{
	"throttle":   AeroThrottle,
	"rpm":        AeroRPM,
	"aerotorq":   AeroTorque,
	"aeropit":    AeroPitch,
	"aerostatus": AeroStatus,
}

// parseAnimatorToken applies one `|`-separated options token to rec,
// handling the three token shapes the original accepts: `name:value`
// (shortlimit/longlimit), `name-N` (motor-indexed aero flags), and bare
// standalone keywords.
func parseAnimatorToken(rec *AnimatorRec, token string, line int, module, section string, diags *Diagnostics) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	if colon := strings.IndexByte(token, ':'); colon >= 0 {
		name, value := token[:colon], token[colon+1:]
		v, err := parseFloatLoose(value)
		if err != nil {
			diags.Add(WARNING, line, module, section, "", "malformed animator sub-option value '"+token+"', ignored")
			return
		}
		switch name {
		case "shortlimit":
			rec.ShortLimit, rec.HasShort = v, true
		case "longlimit":
			rec.LongLimit, rec.HasLong = v, true
		default:
			diags.Add(WARNING, line, module, section, "", "unknown animator sub-option '"+name+"', ignored")
		}
		return
	}
	if dash := strings.LastIndexByte(token, '-'); dash > 0 {
		name, motor := token[:dash], token[dash+1:]
		if bit, ok := animatorAeroFlags[name]; ok {
			if n, err := parseIntLoose(motor); err == nil {
				rec.AeroFlags |= bit
				rec.Motor = n
				return
			}
		}
	}
	if bit, ok := animatorStandaloneFlags[token]; ok {
		rec.Flags |= bit
		return
	}
	diags.Add(WARNING, line, module, section, "", "unknown animator option '"+token+"', ignored")
}

// parseAnimatorLine implements `animators` (spec §3 Animator): two
// nodes, a lengthening factor, then `|`-separated option tokens
// (grounded: RigDefParser.cpp's ParseAnimator).
func (p *Parser) parseAnimatorLine(ev Event) {
	fields := SplitFieldsN(ev.Text, 4)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed animators line")
		return
	}
	rec := &AnimatorRec{
		Line:        ev.Line,
		NodeA:       ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
		NodeB:       ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags),
		DetacherGrp: p.defaults.DetacherGroup,
		Defaults:    p.defaults.Beam,
	}
	rec.LengtheningFactor, _ = parseFloatLoose(fields[2])
	if len(fields) >= 4 {
		for _, token := range strings.Split(fields[3], "|") {
			parseAnimatorToken(rec, token, ev.Line, p.curModuleName, p.curSection, &p.diags)
		}
	}
	p.curModule.Animators = append(p.curModule.Animators, rec)
}
