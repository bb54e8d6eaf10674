package builder

import (
	"github.com/samber/lo"

	"github.com/sixy6e/go-rigdef/rig"
)

// buildHooks materializes `hooks`, one per node carrying the 'h' option
// or explicit hooks tuning line. Each hook owns a disabled rope-like
// beam to node 0 (or node 1 if the hook node itself is node 0), ready
// to be enabled on attach (spec §3 Hook).
func (r *Rig) buildHooks(modules []*rig.Module) {
	for _, m := range modules {
		for _, h := range m.Hooks {
			node, ok := r.resolveBeamEnd(h.Node, h.Line, m.Name, "hooks")
			if !ok {
				continue
			}
			anchor := 0
			if node == 0 {
				anchor = 1
			}
			if anchor >= len(r.Nodes) {
				r.diags.Add(rig.ERROR, h.Line, m.Name, "hooks", "", "rig has too few nodes for a hook anchor beam")
				continue
			}
			refL := dist(r.Nodes[node].Position, r.Nodes[anchor].Position)
			beam := &Beam{
				NodeA: node, NodeB: anchor, RefL: refL, Length: refL,
				Kind: rig.INVISIBLE, Disabled: true,
			}
			bi := r.addBeam(beam)
			if bi < 0 {
				r.diags.Add(rig.ERROR, h.Line, m.Name, "hooks", "", "MAX_BEAMS exceeded, hook beam dropped")
				continue
			}
			r.Hooks = append(r.Hooks, &Hook{
				Index: len(r.Hooks), NodeIndex: node, BeamIndex: bi,
				Lock: h.Lock, Range: h.Range, Force: h.Force, Group: h.Group,
			})
		}
	}
}

// buildRopes materializes each `ropes` line as an ordinary, enabled
// beam between its two resolved endpoints (spec §3 Rope — out of scope
// beyond endpoint resolution and bookkeeping, no runtime lock state).
func (r *Rig) buildRopes(modules []*rig.Module) {
	for _, m := range modules {
		for _, rp := range m.Ropes {
			a, aok := r.resolveBeamEnd(rp.NodeA, rp.Line, m.Name, "ropes")
			b, bok := r.resolveBeamEnd(rp.NodeB, rp.Line, m.Name, "ropes")
			if !aok || !bok {
				continue
			}
			refL := dist(r.Nodes[a].Position, r.Nodes[b].Position)
			kind := rig.NORMAL
			if rp.Invisible {
				kind = rig.INVISIBLE
			}
			beam := &Beam{
				NodeA: a, NodeB: b, RefL: refL, Length: refL,
				Kind: kind, DetacherGroup: rp.DetacherGrp,
			}
			r.addBeam(beam)
		}
	}
}

// buildRailGroups records each rail's beam-index list, and buildSlideNodes
// resolves the nodes that ride those rails (spec §3 per GLOSSARY Rail
// group).
func (r *Rig) buildRailGroups(modules []*rig.Module) {
	for _, m := range modules {
		for _, rg := range m.RailGroups {
			r.RailGroups[rg.Id] = rg.BeamIndices
		}
	}
}

func (r *Rig) buildSlideNodes(modules []*rig.Module) {
	for _, m := range modules {
		for _, sn := range m.SlideNodes {
			idx, ok := r.resolveBeamEnd(sn.Node, sn.Line, m.Name, "slidenodes")
			if !ok {
				continue
			}
			r.SlideNodes = append(r.SlideNodes, &SlideNode{
				Index: len(r.SlideNodes), NodeIndex: idx,
				RailGroupId: sn.RailGroupId, Spring: sn.Spring, Break: sn.Break,
				Tolerance: sn.Tolerance, AttachRate: sn.AttachRate, AttachDist: sn.AttachDist,
			})
		}
	}
}

func (r *Rig) buildRopables(modules []*rig.Module) {
	for _, m := range modules {
		for _, rp := range m.Ropables {
			idx, ok := r.resolveBeamEnd(rp.Node, rp.Line, m.Name, "ropables")
			if !ok {
				continue
			}
			r.Ropables = append(r.Ropables, &Ropable{
				Index: len(r.Ropables), NodeIndex: idx,
				Group: rp.Group, MultiLock: rp.MultiLock,
			})
		}
	}
}

func (r *Rig) buildMaterialFlareBindings(modules []*rig.Module) {
	for _, m := range modules {
		r.MatFlareBindings = append(r.MatFlareBindings, m.MatFlareBindings...)
	}
}

// buildLockgroups records lockgroup membership per node so finalize
// steps can consult it; lockgroup semantics themselves belong to the
// runtime, out of scope here (spec Non-goals).
func (r *Rig) buildLockgroups(modules []*rig.Module) {
	for _, m := range modules {
		for _, id := range m.Lockgroups {
			if idx, ok := r.numberedNodes[id]; ok {
				r.Nodes[idx].Lockgroup = id
			}
		}
	}
}

// buildCollisionBoxes resolves each box's node list and stamps every
// member node's CollisionBoxId, then computes the box's own bounding
// box inflated by 5cm (spec §4.5 finalize step).
func (r *Rig) buildCollisionBoxes(modules []*rig.Module) {
	for _, m := range modules {
		for _, cb := range m.CollisionBoxes {
			boxIdx := len(r.CollisionBoxBoxes)
			var box BoundingBox
			first := true
			for _, id := range cb.Nodes {
				idx, ok := r.resolveBeamEnd(id, cb.Line, m.Name, "collisionboxes")
				if !ok {
					continue
				}
				r.Nodes[idx].CollisionBoxId = boxIdx
				pos := r.Nodes[idx].Position
				if first {
					box = BoundingBox{Min: pos, Max: pos}
					first = false
					continue
				}
				box = growBox(box, pos)
			}
			box.Min = box.Min.Sub(rig.Vec3{X: 0.05, Y: 0.05, Z: 0.05})
			box.Max = box.Max.Add(rig.Vec3{X: 0.05, Y: 0.05, Z: 0.05})
			r.CollisionBoxBoxes = append(r.CollisionBoxBoxes, box)
		}
	}
}

func growBox(b BoundingBox, p rig.Vec3) BoundingBox {
	b.Min.X, b.Max.X = lo.Min([]float64{b.Min.X, p.X}), lo.Max([]float64{b.Max.X, p.X})
	b.Min.Y, b.Max.Y = lo.Min([]float64{b.Min.Y, p.Y}), lo.Max([]float64{b.Max.Y, p.Y})
	b.Min.Z, b.Max.Z = lo.Min([]float64{b.Min.Z, p.Z}), lo.Max([]float64{b.Max.Z, p.Z})
	return b
}

// buildAxles records propulsion-differential wiring between two wheel
// indices (spec §3 Axle).
func (r *Rig) buildAxles(modules []*rig.Module) {
	for _, m := range modules {
		r.Axles = append(r.Axles, m.Axles...)
	}
}
