package builder

import (
	"math"

	"github.com/sixy6e/go-rigdef/rig"
)

// resolveBeamEnd implements the beam-specific flavor of tolerant lookup
// (spec §4.3.2): a numeric reference to a not-yet-existing node is
// accepted with a WARNING at parse time, and resolveTolerant emits its
// own WARNING when it tolerates such a reference at build time; the
// build step turns a reference that is still unresolved into an ERROR
// (spec §8 scenario 5).
func (r *Rig) resolveBeamEnd(id rig.NodeId, line int, module, section string) (int, bool) {
	idx, ok := r.resolveTolerant(id, line, module, section)
	if !ok {
		return 0, false
	}
	if idx < 0 || idx >= len(r.Nodes) {
		r.diags.Add(rig.ERROR, line, module, section, "", "node reference still unresolved at build time")
		return 0, false
	}
	return idx, true
}

func (r *Rig) addBeam(b *Beam) int {
	if len(r.Beams) >= MaxBeams {
		return -1
	}
	b.Index = len(r.Beams)
	r.Beams = append(r.Beams, b)
	return b.Index
}

// buildBeams materializes `beams` (spec §3 Beam, §4.3.2): refL is fixed
// at the nodes' build-time positions, never recomputed afterwards
// (spec §8 "b.refL = b.length" invariant).
func (r *Rig) buildBeams(modules []*rig.Module) {
	for _, m := range modules {
		for _, b := range m.Beams {
			a, aok := r.resolveBeamEnd(b.NodeA, b.Line, m.Name, "beams")
			c, cok := r.resolveBeamEnd(b.NodeB, b.Line, m.Name, "beams")
			if !aok || !cok {
				continue
			}
			if len(r.Beams) >= MaxBeams {
				r.diags.Add(rig.ERROR, b.Line, m.Name, "beams", "", "MAX_BEAMS exceeded, beam dropped")
				continue
			}
			refL := dist(r.Nodes[a].Position, r.Nodes[c].Position)
			beam := &Beam{
				NodeA:           a,
				NodeB:           c,
				RefL:            refL,
				Length:          refL,
				Spring:          b.Defaults.Spring * b.Defaults.Scale.Spring,
				Damp:            b.Defaults.Damp * b.Defaults.Scale.Damp,
				PlasticCoef:     b.Defaults.PlasticCoef,
				BreakThreshold:  b.Defaults.BreakThreshold,
				DeformThreshold: b.Defaults.DeformThreshold,
				Diameter:        b.Defaults.Diameter,
				Kind:            b.Kind,
				SubKind:         b.SubKind,
				DetacherGroup:   b.DetacherGrp,
				Material:        b.Material,
			}
			if b.SubKind == rig.SUPPORT && b.HasExtBreakLimit {
				beam.BreakThreshold = b.ExtensionBreakLimit
			}
			r.addBeam(beam)
		}

		r.buildShocksFor(m, false)
		r.buildShocksFor(m, true)
		r.buildCinecamsFor(m)
	}
}

// buildShocksFor wires `shocks`/`shocks2` to a synthesized beam tagged
// SHOCK1/SHOCK2 (spec §3 Shock/Shock2).
func (r *Rig) buildShocksFor(m *rig.Module, is2 bool) {
	for _, s := range m.Shocks {
		if s.Is2 != is2 {
			continue
		}
		a, aok := r.resolveBeamEnd(s.NodeA, s.Line, m.Name, "shocks")
		c, cok := r.resolveBeamEnd(s.NodeB, s.Line, m.Name, "shocks")
		if !aok || !cok {
			continue
		}
		refL := dist(r.Nodes[a].Position, r.Nodes[c].Position)
		subKind := rig.SHOCK1
		if is2 {
			subKind = rig.SHOCK2
		}
		beam := &Beam{
			NodeA: a, NodeB: c,
			RefL: refL, Length: refL,
			Spring: s.SpringIn, Damp: s.DampIn,
			SubKind: subKind,
		}
		bi := r.addBeam(beam)
		if bi < 0 {
			r.diags.Add(rig.ERROR, s.Line, m.Name, "shocks", "", "MAX_BEAMS exceeded, shock dropped")
			continue
		}
		if len(r.Shocks) >= MaxShocks {
			r.diags.Add(rig.ERROR, s.Line, m.Name, "shocks", "", "MAX_SHOCKS exceeded, shock dropped")
			continue
		}
		shock := &Shock{
			BeamIndex:  bi,
			ShortBound: s.ShortBound, LongBound: s.LongBound,
			SpringIn: s.SpringIn, DampIn: s.DampIn,
			SpringOut: s.SpringOut, DampOut: s.DampOut,
			Precompr: s.Precompr, Flags: s.Flags,
		}
		shock.Index = len(r.Shocks)
		r.Shocks = append(r.Shocks, shock)
		r.Beams[bi].ShockIndex = shock.Index
		r.Beams[bi].HasShock = true
	}
}

// buildCinecamsFor implements `cinecam` (spec §8 scenario 2): one
// generated node plus 8 invisible beams to the given links.
func (r *Rig) buildCinecamsFor(m *rig.Module) {
	for _, c := range m.Cinecams {
		if len(r.Nodes) >= MaxNodes {
			r.diags.Add(rig.ERROR, c.Line, m.Name, "cinecam", "", "MAX_NODES exceeded, cinecam node dropped")
			continue
		}
		node := &Node{
			Index:       len(r.Nodes),
			Position:    c.Position,
			WheelId:     -1,
			CollisionBoxId: -1,
			Contactless: true,
			Generated:   true,
		}
		r.Nodes = append(r.Nodes, node)

		for _, link := range c.Links {
			idx, ok := r.resolveBeamEnd(link, c.Line, m.Name, "cinecam")
			if !ok {
				continue
			}
			refL := dist(node.Position, r.Nodes[idx].Position)
			beam := &Beam{
				NodeA: node.Index, NodeB: idx,
				RefL: refL, Length: refL,
				Spring: c.Spring, Damp: c.Damp,
				Kind: rig.INVISIBLE,
			}
			r.addBeam(beam)
		}
	}
}

func dist(a, b rig.Vec3) float64 {
	d := a.Sub(b)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}
