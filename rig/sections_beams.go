package rig

import "strings"

// parseBeamLine implements `beams`: `n1, n2 [, options [ extension_limit ]]`
// (spec §4.3.2). Options: i invisible, r rope-bounded, s support (then
// consumes an extension limit).
func (p *Parser) parseBeamLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 2 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed beams line, expected at least n1,n2")
		return
	}
	n1 := ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	n2 := ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)

	rec := &BeamRec{
		Line:        ev.Line,
		NodeA:       n1,
		NodeB:       n2,
		Kind:        NORMAL,
		Defaults:    p.defaults.Beam,
		DetacherGrp: p.defaults.DetacherGroup,
	}

	if len(fields) >= 3 {
		opts := ParseOptions(fields[2], "irs", ev.Line, p.curModuleName, p.curSection, &p.diags)
		if opts.Has('i') {
			rec.Kind = INVISIBLE
		}
		if opts.Has('r') {
			rec.SubKind = ROPE
		}
		if opts.Has('s') {
			rec.SubKind = SUPPORT
			if len(fields) >= 4 {
				if v, err := parseFloatLoose(fields[3]); err == nil {
					rec.ExtensionBreakLimit = v
					rec.HasExtBreakLimit = true
				} else {
					p.diags.Add(WARNING, ev.Line, p.curModuleName, p.curSection, "", "malformed extension_break_limit, ignored")
				}
			}
		}
	}

	p.curModule.Beams = append(p.curModule.Beams, rec)
}

// parseShockLine implements `shocks`/`shocks2` (spec §3 Shock/Shock2).
func (p *Parser) parseShockLine(ev Event, is2 bool) {
	fields := SplitFields(ev.Text)
	minFields := 8
	if is2 {
		minFields = 10
	}
	if len(fields) < minFields {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed shocks line")
		return
	}
	n1 := ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	n2 := ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	spring, _ := parseFloatLoose(fields[2])
	damp, _ := parseFloatLoose(fields[3])
	short, _ := parseFloatLoose(fields[4])
	long, _ := parseFloatLoose(fields[5])
	precompr, _ := parseFloatLoose(fields[6])

	rec := &ShockRec{
		Line:       ev.Line,
		NodeA:      n1,
		NodeB:      n2,
		SpringIn:   spring,
		DampIn:     damp,
		SpringOut:  spring,
		DampOut:    damp,
		ShortBound: short,
		LongBound:  long,
		Precompr:   precompr,
		Is2:        is2,
	}

	optIdx := 7
	if is2 {
		if so, err := parseFloatLoose(fields[7]); err == nil {
			rec.SpringOut = so
		}
		if do, err := parseFloatLoose(fields[8]); err == nil {
			rec.DampOut = do
		}
		optIdx = 9
	}
	if len(fields) > optIdx {
		opts := ParseOptions(fields[optIdx], "iMmLRn", ev.Line, p.curModuleName, p.curSection, &p.diags)
		if opts.Has('i') {
			rec.Flags |= ShockInvisible
		}
		if opts.Has('M') {
			rec.Flags |= ShockAbsMetricBound
		}
		if opts.Has('m') {
			rec.Flags |= ShockMetricBound
		}
		if opts.Has('L') {
			rec.Flags |= ShockActiveLeft
		}
		if opts.Has('R') {
			rec.Flags |= ShockActiveRight
		}
		if opts.Has('n') {
			rec.Flags |= ShockSoftBound
		}
	}

	p.curModule.Shocks = append(p.curModule.Shocks, rec)
}

// parseCinecamLine implements `cinecam`: one line carrying the camera
// position, 8 linking node ids, spring, damp (spec §3, §8 scenario 2).
func (p *Parser) parseCinecamLine(ev Event) {
	_, rest, _ := p.kw.Classify(strings.TrimSpace(ev.Raw))
	fields := SplitFields(rest)
	if len(fields) < 13 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, "cinecam", "", "malformed cinecam line, expected pos + 8 node links + spring + damp")
		return
	}
	x, _ := parseFloatLoose(fields[0])
	y, _ := parseFloatLoose(fields[1])
	z, _ := parseFloatLoose(fields[2])
	rec := &CinecamRec{Line: ev.Line, Position: Vec3{X: x, Y: y, Z: z}}
	for i := 0; i < 8; i++ {
		rec.Links[i] = ParseNodeId(fields[3+i], ev.Line, p.curModuleName, "cinecam", &p.diags)
	}
	rec.Spring, _ = parseFloatLoose(fields[11])
	rec.Damp, _ = parseFloatLoose(fields[12])
	p.curModule.Cinecams = append(p.curModule.Cinecams, rec)
}
