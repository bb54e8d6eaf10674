package rig

// parseTriggerLine implements `triggers` (spec §3 Trigger, §4.3.4, §8
// scenario 4: a trigger's 'b' option blocks a command key).
func (p *Parser) parseTriggerLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 6 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed triggers line")
		return
	}
	rec := &TriggerRec{
		Line:        ev.Line,
		NodeA:       ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags),
		NodeB:       ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags),
		DetacherGrp: p.defaults.DetacherGroup,
		Defaults:    p.defaults.Beam,
	}
	rec.ContractLimit, _ = parseFloatLoose(fields[2])
	rec.ExpansionLimit, _ = parseFloatLoose(fields[3])
	if v, err := parseIntLoose(fields[4]); err == nil {
		rec.ShortKeyOrMotor = v
	}
	if v, err := parseIntLoose(fields[5]); err == nil {
		rec.LongKeyOrFunc = v
	}
	idx := 6
	if len(fields) > idx {
		opts := ParseOptions(fields[idx], "icxbBAshHtE", ev.Line, p.curModuleName, p.curSection, &p.diags)
		if opts.Has('i') {
			rec.Options |= TrgInvisible
		}
		if opts.Has('c') {
			rec.Options |= TrgCmdStyle
		}
		if opts.Has('x') {
			rec.Options |= TrgStartDisabled
		}
		if opts.Has('b') {
			rec.Options |= TrgBlockCmdKey
		}
		if opts.Has('B') {
			rec.Options |= TrgBlocker
		}
		if opts.Has('A') {
			rec.Options |= TrgBlockerInv
		}
		if opts.Has('s') {
			rec.Options |= TrgSwapShortLong
		}
		if opts.Has('h') {
			rec.Options |= TrgHookUnlock
		}
		if opts.Has('H') {
			rec.Options |= TrgHookLock
		}
		if opts.Has('t') {
			rec.Options |= TrgContinuous
		}
		if opts.Has('E') {
			rec.Options |= TrgEngine
		}
		idx++
	}
	if len(fields) > idx {
		if v, err := parseFloatLoose(fields[idx]); err == nil {
			rec.BoundaryTimer, rec.HasBoundary = v, true
		}
	}
	p.curModule.Triggers = append(p.curModule.Triggers, rec)
}

// parseRotatorLine implements `rotators`/`rotators2` (spec §3
// Rotator/Rotator2).
func (p *Parser) parseRotatorLine(ev Event, is2 bool) {
	fields := SplitFields(ev.Text)
	if len(fields) < 13 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed rotators line")
		return
	}
	rec := &RotatorRec{Line: ev.Line, Is2: is2}
	rec.Axis1 = ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)
	rec.Axis2 = ParseNodeId(fields[1], ev.Line, p.curModuleName, p.curSection, &p.diags)
	for i := 0; i < 4; i++ {
		rec.BaseNodes[i] = ParseNodeId(fields[2+i], ev.Line, p.curModuleName, p.curSection, &p.diags)
	}
	for i := 0; i < 4; i++ {
		rec.RotNodes[i] = ParseNodeId(fields[6+i], ev.Line, p.curModuleName, p.curSection, &p.diags)
	}
	rec.Rate, _ = parseFloatLoose(fields[10])
	if v, err := parseIntLoose(fields[11]); err == nil {
		rec.KeyLeft = v
	}
	if v, err := parseIntLoose(fields[12]); err == nil {
		rec.KeyRight = v
	}
	idx := 13
	if is2 && len(fields) > idx {
		rec.ForceTuning, _ = parseFloatLoose(fields[idx])
		idx++
	}
	if is2 && len(fields) > idx {
		rec.Tolerance, _ = parseFloatLoose(fields[idx])
		idx++
	}
	if len(fields) > idx {
		rec.Description = fields[idx]
	}
	p.curModule.Rotators = append(p.curModule.Rotators, rec)
}
