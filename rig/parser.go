package rig

import "strings"

// ParseResult wraps the module registry the parser produced (spec §2).
// Parse itself returns the registry and the diagnostics separately.
type ParseResult struct {
	Registry *Registry
}

// Parser holds the mutable state threaded through one parse (spec
// §4.2): current module, current section/subsection, the defaults
// stack, and the small set of transient accumulators flushed on
// section change.
type Parser struct {
	reg      *Registry
	kw       *KeywordTable
	defaults *DefaultsState
	diags    Diagnostics

	curModule     *Module
	curModuleName string
	curSection    string
	curSubsection string

	curSubmesh       *SubmeshRec
	curFlexbody      *FlexbodyRec
	awaitingForset   bool
	curCameraRail    *CameraRailRec
	lastPropIdx      int
	lastCommandIdx   int
	haveLastCommand  bool
	descBuf          []string
	inDescription    bool
}

// Parse runs the whole scanner -> classifier -> section-dispatch
// pipeline over a line iterator and returns the populated module
// registry plus the diagnostics stream (spec §2 pipeline, §4.5
// "isolated by try/catch" — here, recover() at the per-line boundary).
func Parse(iter LineIterator) (*Registry, Diagnostics) {
	p := &Parser{
		reg:      NewRegistry(),
		kw:       NewStandardKeywordTable(),
		defaults: NewDefaultsState(),
	}
	p.curModule = p.reg.Modules[RootModuleName]
	p.curModuleName = RootModuleName

	scanner := NewScanner(iter, p.kw)
	for {
		ev, ok := scanner.Next(&p.diags)
		if !ok {
			break
		}
		p.dispatch(ev)
	}
	if p.curSubmesh != nil {
		p.flushSubmesh()
	}
	return p.reg, p.diags
}

func (p *Parser) dispatch(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			p.diags.Add(INTERNAL_ERROR, ev.Line, p.curModuleName, p.curSection, p.curSubsection, panicMessage(r))
		}
	}()

	switch ev.Kind {
	case EvBlank, EvIgnored, EvBlockCommentBegin, EvBlockCommentEnd:
		return
	case EvDescription:
		p.descBuf = append(p.descBuf, ev.Text)
		return
	case EvSectionKeyword:
		p.handleSectionKeyword(ev)
		return
	case EvInlineDirective:
		p.handleDirective(ev)
		return
	case EvSectionBody:
		p.handleBody(ev)
		return
	}
}

func panicMessage(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return "internal error: unexpected panic during dispatch"
}

// handleSectionKeyword processes a keyword line that opens a new
// section, closes one, or switches modules (spec §4.5, §6 Module
// dispatch: "Nested sections are forbidden; a section inside a section
// implicitly closes the outer").
func (p *Parser) handleSectionKeyword(ev Event) {
	name := strings.ToLower(strings.Fields(ev.Text)[0])

	switch name {
	case "end_description":
		if p.haveLastCommand && len(p.descBuf) > 0 {
			p.curModule.Commands[p.lastCommandIdx].Description = strings.Join(p.descBuf, "\n")
		}
		p.descBuf = nil
		return
	case "description":
		p.descBuf = nil
		return
	case "section":
		p.flushTransient()
		fields := strings.Fields(ev.Text)
		// "section <ver> <name>" — version is parsed but unused (spec §6).
		var modName string
		if len(fields) >= 3 {
			modName = fields[2]
		} else if len(fields) == 2 {
			modName = fields[1]
		} else {
			p.diags.Add(ERROR, ev.Line, p.curModuleName, "section", "", "malformed section directive, ignored")
			return
		}
		p.curModule = p.reg.GetOrCreate(modName)
		p.curModuleName = modName
		p.curSection = ""
		p.curSubsection = ""
		return
	case "end_section":
		p.flushTransient()
		p.curModule = p.reg.Modules[RootModuleName]
		p.curModuleName = RootModuleName
		p.curSection = ""
		p.curSubsection = ""
		return
	case "backmesh":
		if p.curSubmesh != nil {
			p.curSubmesh.Backmesh = true
		} else {
			p.diags.Add(WARNING, ev.Line, p.curModuleName, "submesh", "", "backmesh outside a submesh block, ignored")
		}
		return
	case "texcoords", "cab":
		p.flushTransientExceptSubmesh()
		p.curSection = "submesh"
		p.curSubsection = name
		if p.curSubmesh == nil {
			p.curSubmesh = &SubmeshRec{Line: ev.Line}
		}
		return
	case "submesh":
		p.flushSubmesh()
		p.curSubmesh = &SubmeshRec{Line: ev.Line}
		p.curSection = "submesh"
		p.curSubsection = ""
		return
	case "forset":
		p.curSubsection = "forset"
		p.parseForset(ev)
		return
	case "flexbody_camera_mode":
		p.parseFlexbodyCameraMode(ev)
		return
	case "add_animation":
		p.parseAddAnimation(ev)
		return
	case "rescuer", "disabledefaultsounds", "enable_advanced_deformation",
		"slidenode_connect_instantly", "rollon", "forwardcommands",
		"importcommands", "lockgroup_default_nolock", "hideinchooser":
		p.curModule.GlobalFlags = append(p.curModule.GlobalFlags, GlobalFlag{Line: ev.Line, Name: name})
		if name == "enable_advanced_deformation" {
			p.defaults.Beam.AdvancedDeform = true
		}
		return
	case "fileformatversion", "guid":
		rest := p.restOf(ev)
		p.curModule.GlobalSettings = append(p.curModule.GlobalSettings, GlobalSetting{Line: ev.Line, Name: name, Value: rest})
		return
	}

	p.flushTransient()
	p.curSection = name
	p.curSubsection = ""

	// Sections whose own keyword line also carries data (cinecam is a
	// hybrid: keyword + same-line fields).
	if name == "cinecam" {
		p.parseCinecamLine(ev)
	}
}

// flushTransient clears every transient accumulator on a section
// change (spec §4.2 "flushed when the section changes").
func (p *Parser) flushTransient() {
	p.flushSubmesh()
	p.curFlexbody = nil
	p.awaitingForset = false
	p.curCameraRail = nil
}

func (p *Parser) flushTransientExceptSubmesh() {
	p.curFlexbody = nil
	p.awaitingForset = false
	p.curCameraRail = nil
}

func (p *Parser) flushSubmesh() {
	if p.curSubmesh == nil {
		return
	}
	p.curModule.Submeshes = append(p.curModule.Submeshes, p.curSubmesh)
	p.curSubmesh = nil
}

// handleDirective applies an inline directive to the defaults stack or
// current parser state (spec §4.2).
func (p *Parser) handleDirective(ev Event) {
	line := ev.Line
	raw := ev.Raw

	// ev.Text is already the matched directive's remainder from the
	// keyword table; we need the keyword itself, so re-classify here.
	trimmed := strings.TrimSpace(raw)
	kind, rest, _ := p.kw.Classify(trimmed)
	fields := SplitFields(rest)

	switch kind.Name {
	case "set_node_defaults":
		p.applySetNodeDefaults(fields, line)
	case "set_beam_defaults":
		p.applySetBeamDefaults(fields, line)
	case "set_beam_defaults_scale":
		p.applySetBeamDefaultsScale(fields, line)
	case "set_inertia_defaults":
		p.applySetInertiaDefaults(fields, line)
	case "set_managed_materials_options":
		p.applySetManagedMaterialsOptions(fields, line)
	case "detacher_group":
		if len(fields) >= 1 {
			if v, err := parseIntLoose(fields[0]); err == nil {
				p.defaults.DetacherGroup = v
			} else {
				p.diags.Add(WARNING, line, p.curModuleName, "detacher_group", "", "malformed detacher_group value, ignored")
			}
		}
	case "set_collision_range", "set_shadows", "set_default_minimass", "submesh_groundmodel":
		p.curModule.GlobalSettings = append(p.curModule.GlobalSettings, GlobalSetting{Line: line, Name: kind.Name, Value: rest})
	}
}

// restOf recovers the remainder of a keyword line that also carries
// inline data (cinecam, forset, add_animation, flexbody_camera_mode),
// since the scanner's EvSectionKeyword event only carries the matched
// keyword name in Text.
func (p *Parser) restOf(ev Event) string {
	_, rest, _ := p.kw.Classify(strings.TrimSpace(ev.Raw))
	return rest
}

func firstToken(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

func (p *Parser) applySetNodeDefaults(fields []string, line int) {
	nd := p.defaults.Node.Clone()
	if len(fields) >= 1 {
		if v, err := parseFloatLoose(fields[0]); err == nil {
			nd.LoadWeight = v
		}
	}
	if len(fields) >= 2 {
		if v, err := parseFloatLoose(fields[1]); err == nil {
			nd.Friction = v
		}
	}
	if len(fields) >= 3 {
		if v, err := parseFloatLoose(fields[2]); err == nil {
			nd.Volume = v
		}
	}
	if len(fields) >= 4 {
		if v, err := parseFloatLoose(fields[3]); err == nil {
			nd.Surface = v
		}
	}
	if len(fields) >= 5 {
		nd.Options = ParseOptions(fields[4], NodeOptionAlphabet, line, p.curModuleName, "set_node_defaults", &p.diags)
	}
	p.defaults.Node = nd
}

func (p *Parser) applySetBeamDefaults(fields []string, line int) {
	bd := p.defaults.Beam.Clone()
	apply := func(field BeamDefaultField, idx int) {
		if idx < len(fields) {
			if v, err := parseFloatLoose(fields[idx]); err == nil {
				bd.ApplyOverride(field, v)
			} else {
				p.diags.Add(WARNING, line, p.curModuleName, "set_beam_defaults", "", "malformed numeric field, ignored")
			}
		}
	}
	apply(BDSpring, 0)
	apply(BDDamp, 1)
	apply(BDDeformThreshold, 2)
	apply(BDBreakThreshold, 3)
	apply(BDDiameter, 4)
	apply(BDPlasticCoef, 5)
	p.defaults.Beam = bd
}

func (p *Parser) applySetBeamDefaultsScale(fields []string, line int) {
	bd := p.defaults.Beam.Clone()
	if len(fields) >= 1 {
		if v, err := parseFloatLoose(fields[0]); err == nil {
			bd.Scale.Spring = v
		}
	}
	if len(fields) >= 2 {
		if v, err := parseFloatLoose(fields[1]); err == nil {
			bd.Scale.Damp = v
		}
	}
	p.defaults.Beam = bd
}

func (p *Parser) applySetInertiaDefaults(fields []string, line int) {
	if len(fields) >= 1 {
		if v, err := parseFloatLoose(fields[0]); err == nil && v < 0 {
			p.defaults.Inertia = DefaultInertia()
			return
		}
	}
	in := p.defaults.Inertia.Clone()
	if len(fields) >= 1 {
		if v, err := parseFloatLoose(fields[0]); err == nil {
			in.StartDelay = v
		}
	}
	if len(fields) >= 2 {
		if v, err := parseFloatLoose(fields[1]); err == nil {
			in.StopDelay = v
		}
	}
	if len(fields) >= 3 {
		in.StartFn = fields[2]
	}
	if len(fields) >= 4 {
		in.StopFn = fields[3]
	}
	p.defaults.Inertia = in
}

func (p *Parser) applySetManagedMaterialsOptions(fields []string, line int) {
	mm := p.defaults.ManagedMat.Clone()
	if len(fields) >= 1 {
		if v, err := parseIntLoose(fields[0]); err == nil {
			mm.DoubleSided = v != 0
		}
	}
	p.defaults.ManagedMat = mm
}

// handleBody dispatches one section-body line to the matching
// per-section parser (spec §4.3 families).
func (p *Parser) handleBody(ev Event) {
	switch p.curSection {
	case "nodes", "nodes2":
		p.parseNodeLine(ev)
	case "beams":
		p.parseBeamLine(ev)
	case "shocks":
		p.parseShockLine(ev, false)
	case "shocks2":
		p.parseShockLine(ev, true)
	case "commands", "commands2":
		p.parseCommandLine(ev)
	case "ties":
		p.parseTieLine(ev)
	case "hydros":
		p.parseHydroLine(ev)
	case "animators":
		p.parseAnimatorLine(ev)
	case "wheels":
		p.parseWheelLine(ev, WheelsV1)
	case "wheels2":
		p.parseWheelLine(ev, WheelsV2)
	case "meshwheels":
		p.parseWheelLine(ev, MeshWheels)
	case "meshwheels2":
		p.parseWheelLine(ev, MeshWheels2)
	case "flexbodywheels":
		p.parseWheelLine(ev, FlexBodyWheels)
	case "triggers":
		p.parseTriggerLine(ev)
	case "rotators":
		p.parseRotatorLine(ev, false)
	case "rotators2":
		p.parseRotatorLine(ev, true)
	case "props":
		p.parsePropLine(ev)
	case "flexbodies":
		p.parseFlexbodyHeader(ev)
	case "submesh":
		p.parseSubmeshLine(ev)
	case "hooks":
		p.parseHookLine(ev)
	case "railgroups":
		p.parseRailGroupLine(ev)
	case "slidenodes":
		p.parseSlideNodeLine(ev)
	case "ropes":
		p.parseRopeLine(ev)
	case "ropables":
		p.parseRopableLine(ev)
	case "particles":
		p.parseParticleLine(ev)
	case "axles":
		p.parseAxleLine(ev)
	case "collisionboxes":
		p.parseCollisionBoxLine(ev)
	case "lockgroups":
		p.parseLockgroupLine(ev)
	case "contacters":
		p.parseContacterLine(ev)
	case "exhausts":
		p.parseExhaustLine(ev)
	case "flares2":
		p.parseFlareLine(ev)
	case "wings":
		p.parseWingLine(ev)
	case "turbojets":
		p.parseTurbojetLine(ev)
	case "turboprops2":
		p.parseTurbopropLine(ev)
	case "pistonprops":
		p.parsePistonpropLine(ev)
	case "screwprops":
		p.parseScrewpropLine(ev)
	case "fusedrag":
		p.parseFusedragLine(ev)
	case "airbrakes":
		p.parseAirbrakeLine(ev)
	case "cameras":
		p.parseCameraLine(ev, false)
	case "videocameras":
		p.parseCameraLine(ev, true)
	case "camerarails":
		p.parseCameraRailLine(ev)
	case "extcamera":
		p.parseExtCameraLine(ev)
	case "engine":
		p.parseEngineLine(ev)
	case "engoption":
		p.parseEngoptionLine(ev)
	case "brakes":
		p.parseBrakesLine(ev)
	case "tractioncontrol":
		p.parseTractionControlLine(ev)
	case "antilockbrakes":
		p.parseAntiLockBrakesLine(ev)
	case "slopebrake":
		p.parseSlopeBrakeLine(ev)
	case "torquecurve":
		p.parseTorqueCurveLine(ev)
	case "cruisecontrol":
		p.parseCruiseControlLine(ev)
	case "speedlimiter":
		p.parseSpeedLimiterLine(ev)
	case "materialflarebindings":
		p.parseMaterialFlareBindingLine(ev)
	case "soundsources", "soundsources2":
		p.parseSoundSourceLine(ev, p.curSection == "soundsources2")
	case "managedmaterials":
		p.parseManagedMaterialLine(ev)
	case "globals":
		p.parseGlobalsLine(ev)
	case "help":
		p.curModule.Help = &HelpRec{MaterialOrText: ev.Text}
	case "author":
		p.parseAuthorLine(ev)
	case "fileinfo":
		p.parseFileInfoLine(ev)
	case "guisettings":
		p.parseGuiSettingLine(ev)
	case "set_skeleton_settings":
		p.parseSkeletonSettingLine(ev)
	case "minimass":
		p.parseMinimassLine(ev)
	default:
		// Unknown/unsupported section body: spec §4.1 "Ignored with a
		// warning diagnostic if no rule matches" extends to bodies of
		// sections this module doesn't special-case.
		p.diags.Add(INFO, ev.Line, p.curModuleName, p.curSection, p.curSubsection, "unhandled section body, skipped")
	}
}
