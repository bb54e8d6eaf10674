package rig

import "strings"

// parsePropLine implements `props` (spec §3 Prop, §4.3.7): ref/x/y
// nodes, offset, rotation, mesh name, with a handful of special mesh
// names recognized for dashboards/mirrors/beacons/seats.
func (p *Parser) parsePropLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 10 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed props line")
		return
	}
	rec := &PropRec{Line: ev.Line}
	rec.RefNode = ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.XNode = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.YNode = ParseNodeId(fields[2], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.Offset.X, _ = parseFloatLoose(fields[3])
	rec.Offset.Y, _ = parseFloatLoose(fields[4])
	rec.Offset.Z, _ = parseFloatLoose(fields[5])
	rec.Rotation.X, _ = parseFloatLoose(fields[6])
	rec.Rotation.Y, _ = parseFloatLoose(fields[7])
	rec.Rotation.Z, _ = parseFloatLoose(fields[8])
	rec.MeshName = fields[9]

	rec.Special = classifyPropMesh(rec.MeshName)
	switch rec.Special {
	case PropDashboard, PropDashboardRH:
		if len(fields) >= 13 {
			rec.DashOffset.X, _ = parseFloatLoose(fields[10])
			rec.DashOffset.Y, _ = parseFloatLoose(fields[11])
			rec.DashOffset.Z, _ = parseFloatLoose(fields[12])
		}
		if len(fields) >= 14 {
			rec.DashRotation, _ = parseFloatLoose(fields[13])
		}
	case PropBeacon, PropRedBeacon:
		if len(fields) >= 11 {
			rec.FlareMaterial = fields[10]
		}
		if len(fields) >= 14 {
			rec.FlareColor[0], _ = parseFloatLoose(fields[11])
			rec.FlareColor[1], _ = parseFloatLoose(fields[12])
			rec.FlareColor[2], _ = parseFloatLoose(fields[13])
		}
	}

	p.curModule.Props = append(p.curModule.Props, rec)
	p.lastPropIdx = len(p.curModule.Props) - 1
}

func classifyPropMesh(name string) PropSpecialKind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "leftmirror"):
		return PropLeftMirror
	case strings.Contains(lower, "rightmirror"):
		return PropRightMirror
	case strings.Contains(lower, "dashboard-rh"):
		return PropDashboardRH
	case strings.Contains(lower, "dashboard"):
		return PropDashboard
	case strings.Contains(lower, "spinprop"):
		return PropSpinprop
	case strings.Contains(lower, "pale"):
		return PropPale
	case strings.Contains(lower, "seat2"):
		return PropSeat2
	case strings.Contains(lower, "seat"):
		return PropSeat
	case strings.Contains(lower, "redbeacon"):
		return PropRedBeacon
	case strings.Contains(lower, "lightbar"):
		return PropLightbar
	case strings.Contains(lower, "beacon"):
		return PropBeacon
	default:
		return PropPlain
	}
}

// parseAddAnimation handles an `add_animation` line trailing a `props`
// block (spec §4.3.7): ratio, lower_limit, upper_limit, then any number
// of source:/mode:/event: groups.
func (p *Parser) parseAddAnimation(ev Event) {
	if len(p.curModule.Props) == 0 {
		p.diags.Add(WARNING, ev.Line, p.curModuleName, "props", "add_animation", "add_animation with no preceding prop, ignored")
		return
	}
	rest := p.restOf(ev)
	fields := SplitFields(rest)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, "props", "add_animation", "malformed add_animation line")
		return
	}
	anim := AnimationRec{}
	anim.Ratio, _ = parseFloatLoose(fields[0])
	anim.LowerLimit, _ = parseFloatLoose(fields[1])
	anim.UpperLimit, _ = parseFloatLoose(fields[2])

	for _, tok := range fields[3:] {
		switch {
		case strings.HasPrefix(tok, "source:"):
			for _, s := range strings.Split(strings.TrimPrefix(tok, "source:"), "|") {
				src := AnimSource{Flag: s}
				anim.Sources = append(anim.Sources, src)
			}
		case strings.HasPrefix(tok, "mode:"):
			anim.Modes = append(anim.Modes, strings.Split(strings.TrimPrefix(tok, "mode:"), "|")...)
		case strings.HasPrefix(tok, "event:"):
			anim.Event = strings.TrimPrefix(tok, "event:")
			anim.HasEvent = true
		}
	}

	prop := p.curModule.Props[p.lastPropIdx]
	prop.Animations = append(prop.Animations, anim)
}

// parseForset handles a `flexbodies` block's `forset` line (spec §3
// Flexbody, §4.3.8): a comma-separated list of node ids and ranges.
func (p *Parser) parseForset(ev Event) {
	if p.curFlexbody == nil {
		p.diags.Add(WARNING, ev.Line, p.curModuleName, "flexbodies", "forset", "forset with no preceding flexbody, ignored")
		return
	}
	rest := p.restOf(ev)
	rest = strings.TrimPrefix(rest, "=")
	for _, tok := range strings.Split(rest, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		p.curFlexbody.Forset = append(p.curFlexbody.Forset, ParseNodeRangeOrSingle(tok, ev.Line, p.curModuleName, "flexbodies", &p.diags))
	}
}

// parseFlexbodyCameraMode handles the optional `flexbody_camera_mode`
// line following a flexbody (spec §3 Flexbody).
func (p *Parser) parseFlexbodyCameraMode(ev Event) {
	if p.curFlexbody == nil {
		p.diags.Add(WARNING, ev.Line, p.curModuleName, "flexbodies", "flexbody_camera_mode", "flexbody_camera_mode with no preceding flexbody, ignored")
		return
	}
	rest := p.restOf(ev)
	fields := SplitFields(rest)
	if len(fields) < 1 {
		return
	}
	if v, err := parseIntLoose(fields[0]); err == nil {
		p.curFlexbody.CameraMode = v
		p.curFlexbody.HasCamera = true
	}
}
