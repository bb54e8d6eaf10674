package builder

import (
	"math"

	"github.com/sixy6e/go-rigdef/rig"
)

func cross(a, b rig.Vec3) rig.Vec3 {
	return rig.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func normalize(v rig.Vec3) rig.Vec3 {
	n := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// perpendicularTo returns an arbitrary unit vector orthogonal to axis
// (spec §4.3.3 step 2).
func perpendicularTo(axis rig.Vec3) rig.Vec3 {
	ref := rig.Vec3{X: 0, Y: 0, Z: 1}
	if math.Abs(axis.Z) > 0.9 {
		ref = rig.Vec3{X: 1, Y: 0, Z: 0}
	}
	return normalize(cross(axis, ref))
}

// rotateAround applies Rodrigues' rotation formula, rotating v by
// theta radians about the unit axis (spec §4.3.3 step 2 "rotation step
// Δθ... around axis").
func rotateAround(v, axis rig.Vec3, theta float64) rig.Vec3 {
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	term1 := v.Scale(cosT)
	term2 := cross(axis, v).Scale(sinT)
	term3 := axis.Scale(dot(axis, v) * (1 - cosT))
	return term1.Add(term2).Add(term3)
}

func dot(a, b rig.Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// wheelRing holds the generated node indices for one ring pass of
// step 3/4 (one ring for single-ring variants, called twice for
// two-ring ones).
type wheelRing struct {
	outer, inner []int // len == rays each
}

// buildWheelRing implements spec §4.3.3 steps 2-4 for one ring at the
// given radius, appending nodes to r.Nodes and beams to r.Beams.
func (r *Rig) buildWheelRing(w *Wheel, axis1, axis2 rig.Vec3, axis1Idx, axis2Idx int, radius, springOut, dampOut, springTang, dampTang float64, outerMassFrac, innerMassFrac float64, line int, module, section string) (wheelRing, bool) {
	axisVec := normalize(axis2.Sub(axis1))
	rayVec := perpendicularTo(axisVec).Scale(radius)
	dTheta := -2 * math.Pi / float64(2*w.NumRays)

	ring := wheelRing{outer: make([]int, w.NumRays), inner: make([]int, w.NumRays)}

	for i := 0; i < w.NumRays; i++ {
		if len(r.Nodes) >= MaxNodes {
			r.diags.Add(rig.ERROR, line, module, section, "", "MAX_NODES exceeded while generating wheel ring")
			return ring, false
		}
		outerPos := axis1.Add(rotateAround(rayVec, axisVec, float64(i)*2*dTheta))
		outerNode := &Node{
			Index: len(r.Nodes), Position: outerPos,
			Mass: w.Mass * outerMassFrac, WheelId: w.Index, IsWheel: 1,
			CollisionBoxId: -1, Generated: true,
		}
		r.Nodes = append(r.Nodes, outerNode)
		ring.outer[i] = outerNode.Index

		if len(r.Nodes) >= MaxNodes {
			r.diags.Add(rig.ERROR, line, module, section, "", "MAX_NODES exceeded while generating wheel ring")
			return ring, false
		}
		innerPos := axis2.Add(rotateAround(rayVec, axisVec, float64(i)*2*dTheta+dTheta))
		innerNode := &Node{
			Index: len(r.Nodes), Position: innerPos,
			Mass: w.Mass * innerMassFrac, WheelId: w.Index, IsWheel: 2,
			CollisionBoxId: -1, Generated: true,
		}
		r.Nodes = append(r.Nodes, innerNode)
		ring.inner[i] = innerNode.Index
	}

	for i := 0; i < w.NumRays; i++ {
		j := (i + 1) % w.NumRays
		oi, ii := ring.outer[i], ring.inner[i]
		oj, ij := ring.outer[j], ring.inner[j]

		// Radial: soft-supported connections back to the axis (spec
		// §4.3.3 step 4).
		radial := []struct {
			a, b   int
			soft   bool
		}{
			{axis1Idx, oi, true},
			{axis2Idx, ii, true},
			{axis1Idx, ii, false},
			{axis2Idx, oi, false},
		}
		for _, rb := range radial {
			beam := &Beam{
				NodeA: rb.a, NodeB: rb.b,
				RefL:   dist(r.Nodes[rb.a].Position, r.Nodes[rb.b].Position),
				Spring: springOut, Damp: dampOut,
			}
			beam.Length = beam.RefL
			if rb.soft {
				beam.SubKind = rig.NOSHOCK
			}
			r.addBeam(beam)
		}

		// Tangential/reinforcement ring beams (spec §4.3.3 step 4).
		for _, tb := range [4][2]int{{oi, ii}, {oi, oj}, {ii, ij}, {ii, oj}} {
			beam := &Beam{
				NodeA: tb[0], NodeB: tb[1],
				RefL:   dist(r.Nodes[tb[0]].Position, r.Nodes[tb[1]].Position),
				Spring: springTang, Damp: dampTang,
			}
			beam.Length = beam.RefL
			r.addBeam(beam)
		}
	}

	return ring, true
}

// buildWheel implements the whole wheel-family arithmetic core for one
// record, regardless of variant (spec §4.3.3, §9 Polymorphism).
func (r *Rig) buildWheel(wr *rig.WheelRec, line int, module string) {
	if wr.NumRays <= 0 {
		r.diags.Add(rig.ERROR, line, module, "wheels", "", "wheel with 0 rays, skipped")
		return
	}
	if len(r.Wheels) >= MaxWheels {
		r.diags.Add(rig.ERROR, line, module, "wheels", "", "MAX_WHEELS exceeded, wheel dropped")
		return
	}

	a1, ok1 := r.resolveBeamEnd(wr.Axis1, line, module, "wheels")
	a2, ok2 := r.resolveBeamEnd(wr.Axis2, line, module, "wheels")
	if !ok1 || !ok2 {
		return
	}
	// Canonical ordering: axis1.z < axis2.z (spec §4.3.3 step 1, §8
	// universal invariant).
	if r.Nodes[a1].Position.Z > r.Nodes[a2].Position.Z {
		a1, a2 = a2, a1
	}

	w := &Wheel{
		Index:      len(r.Wheels),
		Variant:    wr.Variant,
		NumRays:    wr.NumRays,
		Axis1:      a1, Axis2: a2,
		Braking:    wr.Braking,
		Propulsion: wr.Propulsion,
		Mass:       wr.Mass,
		Radius:     wr.Radius,
		TyreRadius: wr.TyreRadius,
		TwoRing:    wr.TwoRing,
	}
	if wr.HasRigidity {
		if idx, ok := r.resolveStrict(wr.Rigidity, line, module, "wheels"); ok {
			w.Rigidity, w.HasRigidity = idx, true
		}
	}
	if arm, ok := r.resolveTolerant(wr.ArmNode, line, module, "wheels"); ok {
		w.ArmNode = arm
	}

	axis1Pos, axis2Pos := r.Nodes[a1].Position, r.Nodes[a2].Position

	// Per-node mass fractions of w.Mass, already divided by ray count so
	// a ring's total generated mass stays equal to the authored
	// wheel_mass budget regardless of NumRays (spec §4.3.3 step 3;
	// RigSpawner.cpp:5050,5302,5442,5480-5504). For a single ring every
	// node gets an equal 1/(2*rays) share; for a two-ring wheel the flat
	// split belongs to the rim ring alone (1/(4*rays) each), while the
	// tyre ring keeps the 0.67/0.33 outer/inner split, each further
	// divided by 2*rays.
	rays := float64(w.NumRays)
	outerMassFrac, innerMassFrac := 1/(2*rays), 1/(2*rays)
	if w.TwoRing {
		outerMassFrac, innerMassFrac = 1/(4*rays), 1/(4*rays)
	}

	ringSpring, ringDamp := wr.SpringTyre, wr.DampTyre
	if w.TwoRing {
		ringSpring, ringDamp = wr.SpringRim, wr.DampRim
	}
	rimRing, ok := r.buildWheelRing(w, axis1Pos, axis2Pos, a1, a2, wr.Radius, ringSpring, ringDamp, ringSpring, ringDamp, outerMassFrac, innerMassFrac, line, module, "wheels")
	if !ok {
		return
	}
	w.NodeIndices = append(w.NodeIndices, rimRing.outer...)
	w.NodeIndices = append(w.NodeIndices, rimRing.inner...)

	if w.TwoRing {
		tyreOuterFrac, tyreInnerFrac := 0.67/(2*rays), 0.33/(2*rays)
		tyreRing, ok := r.buildWheelRing(w, axis1Pos, axis2Pos, a1, a2, wr.TyreRadius, wr.SpringTread, wr.DampTread, wr.SpringTread, wr.DampTread, tyreOuterFrac, tyreInnerFrac, line, module, "wheels")
		if !ok {
			r.Wheels = append(r.Wheels, w)
			return
		}
		w.NodeIndices = append(w.NodeIndices, tyreRing.outer...)
		w.NodeIndices = append(w.NodeIndices, tyreRing.inner...)

		shortBound := 1 - 0.95*wr.Radius/wr.TyreRadius
		for i := 0; i < w.NumRays; i++ {
			j := (i + 1) % w.NumRays
			crossPairs := [][2]int{
				{rimRing.outer[i], tyreRing.outer[i]},
				{rimRing.outer[i], tyreRing.inner[i]},
				{rimRing.inner[i], tyreRing.outer[i]},
				{rimRing.inner[i], tyreRing.inner[i]},
				{rimRing.outer[i], tyreRing.outer[j]},
				{rimRing.inner[i], tyreRing.inner[j]},
			}
			for _, c := range crossPairs {
				beam := &Beam{NodeA: c[0], NodeB: c[1], Spring: wr.SpringTread, Damp: wr.DampTread}
				beam.RefL = dist(r.Nodes[c[0]].Position, r.Nodes[c[1]].Position)
				beam.Length = beam.RefL
				r.addBeam(beam)
			}
			// Axial support beams keeping the tyre from intruding into
			// the rim (spec §4.3.3 step 5).
			support := [][2]int{
				{a1, tyreRing.outer[i]},
				{a2, tyreRing.inner[i]},
				{rimRing.outer[i], tyreRing.inner[j]},
			}
			for _, s := range support {
				beam := &Beam{
					NodeA: s[0], NodeB: s[1], Spring: wr.SpringTread, Damp: wr.DampTread,
					SubKind: rig.SUPPORT, SupportShortBound: shortBound,
				}
				beam.RefL = dist(r.Nodes[s[0]].Position, r.Nodes[s[1]].Position)
				beam.Length = beam.RefL
				r.addBeam(beam)
			}
		}
	}

	if w.HasRigidity {
		nearest := a1
		if dist(r.Nodes[w.Rigidity].Position, r.Nodes[a2].Position) < dist(r.Nodes[w.Rigidity].Position, r.Nodes[a1].Position) {
			nearest = a2
		}
		beam := &Beam{NodeA: w.Rigidity, NodeB: nearest, Kind: rig.VIRTUAL}
		beam.RefL = dist(r.Nodes[w.Rigidity].Position, r.Nodes[nearest].Position)
		beam.Length = beam.RefL
		r.addBeam(beam)
	}

	if w.Propulsion != rig.PropNone {
		r.PropWheels = append(r.PropWheels, w.Index)
	}
	if w.Braking != rig.BrakeNone {
		r.BrakedWheels = append(r.BrakedWheels, w.Index)
	}

	if dist(r.Nodes[w.ArmNode].Position, axis1Pos) <= dist(r.Nodes[w.ArmNode].Position, axis2Pos) {
		w.NearAttach = a1
	} else {
		w.NearAttach = a2
	}

	for _, idx := range w.NodeIndices {
		r.Nodes[idx].WheelId = w.Index
	}

	r.Wheels = append(r.Wheels, w)

	if r.sinks.Mesh != nil {
		r.sinks.Mesh.BuildFlexMeshWheel(w.Index, wr.FaceMaterial, wr.BandMaterial)
		if wr.Variant == rig.FlexBodyWheels {
			r.sinks.Mesh.BuildFlexBody(wr.FaceMaterial, append([]int{}, w.NodeIndices...))
		}
	}
}

// buildWheels processes the given wheel-family variants, in the order
// requested by the caller (spec §4.5 step 7: `wheels` builds early,
// `wheels2`/`meshwheels`/`meshwheels2`/`flexbodywheels` build later,
// after props/engine/brakes).
func (r *Rig) buildWheels(modules []*rig.Module, variants ...rig.WheelVariant) {
	for _, variant := range variants {
		for _, m := range modules {
			for _, wr := range m.Wheels {
				if wr.Variant != variant {
					continue
				}
				r.buildWheel(wr, wr.Line, m.Name)
			}
		}
	}
}
