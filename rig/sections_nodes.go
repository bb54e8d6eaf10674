package rig

// parseNodeLine implements the `nodes`/`nodes2` grammar (spec §4.3.1):
// `id, x, y, z [, options [ load_weight ]]`.
func (p *Parser) parseNodeLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 4 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed nodes line, expected at least id,x,y,z")
		return
	}

	id := ParseNodeId(fields[0], ev.Line, p.curModuleName, p.curSection, &p.diags)

	if len(p.curModule.Nodes) == 0 && p.curModuleName == RootModuleName {
		if !id.IsNumbered || id.Num != 0 {
			p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "first node in section nodes must have numeric id 0")
		}
	}

	x, xerr := parseFloatLoose(fields[1])
	y, yerr := parseFloatLoose(fields[2])
	z, zerr := parseFloatLoose(fields[3])
	if xerr != nil || yerr != nil || zerr != nil {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed node position")
		return
	}

	rec := &NodeRec{
		Line:        ev.Line,
		Id:          id,
		Position:    Vec3{X: x, Y: y, Z: z},
		Defaults:    p.defaults.Node,
		DetacherGrp: p.defaults.DetacherGroup,
	}

	if len(fields) >= 5 {
		rec.Options = ParseOptions(fields[4], NodeOptionAlphabet, ev.Line, p.curModuleName, p.curSection, &p.diags)
		if rec.Options.Has(NodeLoadWeight) {
			if len(fields) >= 6 {
				if v, err := parseFloatLoose(fields[5]); err == nil {
					rec.LoadWeight = v
					rec.HasLoad = true
				} else {
					p.diags.Add(WARNING, ev.Line, p.curModuleName, p.curSection, "", "malformed load_weight, using node-defaults weight")
				}
			}
			// Without a trailing load-weight, 'l' keeps the node-defaults
			// weight (spec §4.3.1).
		}
	} else {
		rec.Options = OptionSet{}
	}

	p.curModule.Nodes = append(p.curModule.Nodes, rec)

	if rec.Options.Has(NodeHookPoint) {
		p.curModule.Hooks = append(p.curModule.Hooks, &HookRec{
			Line: ev.Line,
			Node: id,
			// Lock/range/force stay zero here; the builder copies them
			// onto its Hook as they are, without filling them from any
			// defaults (spec §4.3.1).
		})
	}
}
