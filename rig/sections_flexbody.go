package rig

// parseFlexbodyHeader implements the first line of a `flexbodies`
// record: ref/x/y nodes, offset, rotation, mesh name (spec §3
// Flexbody, §4.3.8). The following `forset` line attaches the node set
// this mesh deforms against; `flexbody_camera_mode` optionally follows.
func (p *Parser) parseFlexbodyHeader(ev Event) {
	fields := SplitFields(ev.Text)
	if len(fields) < 10 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed flexbodies line")
		return
	}
	rec := &FlexbodyRec{Line: ev.Line}
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

	p.curModule.Flexbodies = append(p.curModule.Flexbodies, rec)
	p.curFlexbody = rec
}
