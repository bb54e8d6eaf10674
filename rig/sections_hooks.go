package rig

import "strings"

// parseHookLine implements `hooks` (spec §3 Hook, §4.3.1): a node id
// plus optional key=value tuning options, also the landing spot for
// the hooks synthesized from node option 'h'.
func (p *Parser) parseHookLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed hooks line")
		return
	}
	rec := &HookRec{
		Line: ev.Line,
		Node: ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
	}
	for _, tok := range fields[1:] {
		k, v, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "hooklock", "lock":
			rec.Lock, _ = parseFloatLoose(v)
		case "hookrange", "range":
			rec.Range, _ = parseFloatLoose(v)
		case "hookforce", "force":
			rec.Force, _ = parseFloatLoose(v)
		case "hookgroup", "group":
			if n, err := parseIntLoose(v); err == nil {
				rec.Group, rec.HasGroup = n, true
			}
		}
	}
	p.curModule.Hooks = append(p.curModule.Hooks, rec)
}

// parseRailGroupLine implements `railgroups` (spec §C supplement): a
// group id followed by beam-index ranges.
func (p *Parser) parseRailGroupLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 2 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed railgroups line")
		return
	}
	rec := &RailGroupRec{Line: ev.Line}
	if v, err := parseIntLoose(fields[0]); err == nil {
		rec.Id = v
	}
	for _, tok := range fields[1:] {
		if lo, hi, ok := strings.Cut(tok, "-"); ok && lo != "" && hi != "" {
			a, aerr := parseIntLoose(lo)
			b, berr := parseIntLoose(hi)
			if aerr == nil && berr == nil {
				for i := a; i <= b; i++ {
					rec.BeamIndices = append(rec.BeamIndices, i)
				}
				continue
			}
		}
		if v, err := parseIntLoose(tok); err == nil {
			rec.BeamIndices = append(rec.BeamIndices, v)
		}
	}
	p.curModule.RailGroups = append(p.curModule.RailGroups, rec)
}

// parseSlideNodeLine implements `slidenodes` (spec §C supplement).
func (p *Parser) parseSlideNodeLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 2 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed slidenodes line")
		return
	}
	rec := &SlideNodeRec{
		Line: ev.Line,
		Node: ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
	}
	if v, err := parseIntLoose(fields[1]); err == nil {
		rec.RailGroupId = v
	}
	if len(fields) >= 3 {
		rec.Spring, _ = parseFloatLoose(fields[2])
	}
	if len(fields) >= 4 {
		rec.Break, _ = parseFloatLoose(fields[3])
	}
	if len(fields) >= 5 {
		rec.Tolerance, _ = parseFloatLoose(fields[4])
	}
	if len(fields) >= 6 {
		rec.AttachRate, _ = parseFloatLoose(fields[5])
	}
	if len(fields) >= 7 {
		rec.AttachDist, _ = parseFloatLoose(fields[6])
	}
	p.curModule.SlideNodes = append(p.curModule.SlideNodes, rec)
}

// parseRopeLine implements `ropes` (spec §3 Rope family).
func (p *Parser) parseRopeLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 2 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed ropes line")
		return
	}
	rec := &RopeRec{
		Line:        ev.Line,
		NodeA:       ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
		NodeB:       ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags),
		DetacherGrp: p.defaults.DetacherGroup,
	}
	if len(fields) >= 3 {
		opts := ParseOptions(fields[2], "i", ev.Line, p.curModuleName, p.curSection, &p.diags)
		rec.Invisible = opts.Has('i')
	}
	p.curModule.Ropes = append(p.curModule.Ropes, rec)
}

// parseRopableLine implements `ropables` (spec §3 Rope family).
func (p *Parser) parseRopableLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed ropables line")
		return
	}
	rec := &RopableRec{
		Line: ev.Line,
		Node: ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
	}
	if len(fields) >= 2 {
		if v, err := parseIntLoose(fields[1]); err == nil {
			rec.Group = v
		}
	}
	if len(fields) >= 3 {
		if v, err := parseIntLoose(fields[2]); err == nil && v != 0 {
			rec.MultiLock = true
		}
	}
	p.curModule.Ropables = append(p.curModule.Ropables, rec)
}

// parseParticleLine implements `particles` (spec §C supplement).
func (p *Parser) parseParticleLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed particles line")
		return
	}
	rec := &ParticleRec{
		Line:          ev.Line,
		EmitterNode:   ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
		ReferenceNode: ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags),
		ParticleSystem: fields[2],
	}
	p.curModule.Particles = append(p.curModule.Particles, rec)
}

// parseAxleLine implements `axles` (spec §3 Wheel family, differential
// selection).
func (p *Parser) parseAxleLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 2 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed axles line")
		return
	}
	rec := &AxleRec{Line: ev.Line}
	if v, err := parseIntLoose(strings.TrimPrefix(fields[0], "w1(")); err == nil {
		rec.Wheel1 = v
	}
	if v, err := parseIntLoose(strings.TrimPrefix(fields[1], "w2(")); err == nil {
		rec.Wheel2 = v
	}
	for _, tok := range fields[2:] {
		tok = strings.TrimPrefix(tok, "d(")
		tok = strings.TrimSuffix(tok, ")")
		for i := 0; i < len(tok); i++ {
			rec.Options = append(rec.Options, tok[i])
		}
	}
	p.curModule.Axles = append(p.curModule.Axles, rec)
}

// parseCollisionBoxLine implements `collisionboxes` (spec §C
// supplement): a comma list of node ids.
func (p *Parser) parseCollisionBoxLine(ev Event) {
	fields := SplitFields(ev.Text)
	rec := &CollisionBoxRec{Line: ev.Line}
	for _, tok := range fields {
		rec.Nodes = append(rec.Nodes, ParseNodeId(tok, ev.Line, p.curModuleName, p.curSection, &p.diags))
	}
	p.curModule.CollisionBoxes = append(p.curModule.CollisionBoxes, rec)
}

// parseLockgroupLine implements `lockgroups` (spec §3 Tie family).
func (p *Parser) parseLockgroupLine(ev Event) {
	fields := SplitFields(ev.Text)
	for _, tok := range fields {
		if v, err := parseIntLoose(tok); err == nil {
			p.curModule.Lockgroups = append(p.curModule.Lockgroups, v)
		}
	}
}

// parseContacterLine implements `contacters` (spec §3 Node family): one
// node id per line that always participates in ground/self collision.
func (p *Parser) parseContacterLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 1 {
		return
	}
	p.curModule.Contacters = append(p.curModule.Contacters, ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags))
}
