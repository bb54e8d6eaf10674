package rig

// parseSubmeshLine dispatches a `submesh` block's body line to the
// texcoords or cab grammar depending on which keyword opened the
// current line (spec §3 Submesh, §4.3.9).
func (p *Parser) parseSubmeshLine(ev Event) {
	switch p.curSubsection {
	case "texcoords":
		p.parseTexcoordLine(ev)
	case "cab":
		p.parseCabLine(ev)
	default:
		p.diags.Add(INFO, ev.Line, p.curModuleName, "submesh", p.curSubsection, "submesh body line outside texcoords/cab, skipped")
	}
}

func (p *Parser) parseTexcoordLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, "submesh", "texcoords", "malformed texcoords line")
		return
	}
	if p.curSubmesh == nil {
		p.curSubmesh = &SubmeshRec{Line: ev.Line}
	}
	rec := TexcoordRec{Node: ParseNodeId(fields[0], ev.Line, p.curModuleName, "submesh", &p.diags)}
	rec.U, _ = parseFloatLoose(fields[1])
	rec.V, _ = parseFloatLoose(fields[2])
	p.curSubmesh.Texcoords = append(p.curSubmesh.Texcoords, rec)
}

func (p *Parser) parseCabLine(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 3 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, "submesh", "cab", "malformed cab line")
		return
	}
	if p.curSubmesh == nil {
		p.curSubmesh = &SubmeshRec{Line: ev.Line}
	}
	rec := CabRec{
		N1: ParseNodeId(fields[0], ev.Line, p.curModuleName, "submesh", &p.diags),
		N2: ParseNodeId(fields[1], ev.Line, p.curModuleName, "submesh", &p.diags),
		N3: ParseNodeId(fields[2], ev.Line, p.curModuleName, "submesh", &p.diags),
	}
	if len(fields) >= 4 {
		opts := ParseOptions(fields[3], "cbpuFS", ev.Line, p.curModuleName, "submesh", &p.diags)
		if opts.Has('c') {
			rec.Flags |= CabContact
		}
		if opts.Has('b') {
			rec.Flags |= CabBuoyant
		}
		if opts.Has('p') {
			rec.Flags |= CabTougher
		}
		if opts.Has('u') {
			rec.Flags |= CabInvulnerable
		}
		if opts.Has('F') {
			rec.Flags |= CabBuoyNoDrag
		}
		if opts.Has('S') {
			rec.Flags |= CabBuoyOnlyDrag
		}
	}
	p.curSubmesh.Cabs = append(p.curSubmesh.Cabs, rec)
}
