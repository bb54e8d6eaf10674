package builder

import (
	"github.com/samber/lo"

	"github.com/sixy6e/go-rigdef/rig"
)

// WingSpan records one contiguous run of wing segments: the first and
// last segment of the run get induced drag enabled, spanning the
// distance between their outer wingtip nodes (spec §4.5 finalize step,
// spec.md:182).
type WingSpan struct {
	FirstWing, LastWing int
	Span                float64
}

// VehicleKind classifies the rig for default sound-source attachment
// (spec §4.5 finalize step: "based on vehicle kind (truck/car/boat/
// airplane) and features").
type VehicleKind int

const (
	KindLoad VehicleKind = iota
	KindTruck
	KindCar
	KindBoat
	KindAirplane
)

func (r *Rig) vehicleKind() VehicleKind {
	switch {
	case len(r.ScrewProps) > 0:
		return KindBoat
	case len(r.Wings) > 0 || len(r.TurboJets) > 0 || len(r.TurboProps) > 0 || len(r.PistonProps) > 0:
		return KindAirplane
	case r.Engine != nil:
		if r.Engoption != nil && r.Engoption.EngineType == 'c' {
			return KindCar
		}
		return KindTruck
	default:
		return KindLoad
	}
}

// wingTipIndex resolves one wing's outer wingtip node (index 1, the
// trailing edge of the first chord pair) into a node index for span
// distance purposes.
func (r *Rig) wingTipIndex(w *rig.WingRec) (int, bool) {
	return r.exhaustNodeIndex(w.Nodes[1])
}

// wingsShareNode reports whether two wing segments share any of their
// 8 corner nodes, the contiguity test for one span run.
func wingsShareNode(a, b *rig.WingRec) bool {
	sameId := func(na rig.NodeId, nb rig.NodeId) bool {
		if na.IsNumbered != nb.IsNumbered {
			return false
		}
		if na.IsNumbered {
			return na.Num == nb.Num
		}
		return na.Name == nb.Name
	}
	return lo.SomeBy(a.Nodes, func(na rig.NodeId) bool {
		return lo.SomeBy(b.Nodes, func(nb rig.NodeId) bool { return sameId(na, nb) })
	})
}

// finalizeWingSpans implements spec.md:182's wing-span pass.
func (r *Rig) finalizeWingSpans() {
	n := len(r.Wings)
	for i := 0; i < n; {
		j := i
		for j+1 < n && wingsShareNode(r.Wings[j], r.Wings[j+1]) {
			j++
		}
		firstIdx, firstOk := r.wingTipIndex(r.Wings[i])
		lastIdx, lastOk := r.wingTipIndex(r.Wings[j])
		if firstOk && lastOk {
			span := dist(r.Nodes[firstIdx].Position, r.Nodes[lastIdx].Position)
			r.WingSpans = append(r.WingSpans, WingSpan{FirstWing: i, LastWing: j, Span: span})
		}
		i = j + 1
	}
}

// finalizePositionLights synthesizes four beacon props at the
// outermost wingtips when the rig is an airplane with wings but no
// 'l'/'L' (left/right blinker) flares of its own (spec.md:182).
func (r *Rig) finalizePositionLights() {
	if !r.cfg.Lights || r.vehicleKind() != KindAirplane || len(r.Wings) == 0 {
		return
	}
	for _, f := range r.Flares {
		if f.Kind == 'l' || f.Kind == 'L' {
			return
		}
	}
	first, last := r.Wings[0], r.Wings[len(r.Wings)-1]
	tips := []rig.NodeId{first.Nodes[0], first.Nodes[1], last.Nodes[2], last.Nodes[3]}
	for _, tip := range tips {
		idx, ok := r.exhaustNodeIndex(tip)
		if !ok {
			continue
		}
		r.Props = append(r.Props, &Prop{
			Index: len(r.Props), RefNode: idx, XNode: idx, YNode: idx,
			Special: rig.PropBeacon,
		})
	}
}

// finalizeLowestNode finds the lowest node z for ground-spawn height
// (spec.md:182).
func (r *Rig) finalizeLowestNode() {
	if len(r.Nodes) == 0 {
		return
	}
	lowest := r.Nodes[0].Position.Z
	for _, n := range r.Nodes[1:] {
		if n.Position.Z < lowest {
			lowest = n.Position.Z
		}
	}
	r.LowestNodeZ = lowest
}

// finalizeBoundingBox computes the rig-wide bounding box, inflated 5cm
// like every per-collision-box box (spec.md:182).
func (r *Rig) finalizeBoundingBox() {
	if len(r.Nodes) == 0 {
		return
	}
	box := BoundingBox{Min: r.Nodes[0].Position, Max: r.Nodes[0].Position}
	for _, n := range r.Nodes[1:] {
		box = growBox(box, n.Position)
	}
	box.Min = box.Min.Sub(rig.Vec3{X: 0.05, Y: 0.05, Z: 0.05})
	box.Max = box.Max.Add(rig.Vec3{X: 0.05, Y: 0.05, Z: 0.05})
	r.BoundingBox = box
}

// finalizeDefaultSoundSources attaches a small default sound-source set
// keyed by vehicle kind and feature flags, when the author defined none
// of their own (spec.md:182).
func (r *Rig) finalizeDefaultSoundSources() {
	if len(r.SoundSources) > 0 || len(r.Nodes) == 0 {
		return
	}
	hasCommands := len(r.Commands) > 0
	hasTurbo := len(r.TurboJets) > 0 || len(r.TurboProps) > 0
	hasAir := r.Brakes != nil
	hasALB := r.AntiLockBr != nil
	hasTC := r.TractionCtl != nil

	add := func(script string) {
		r.SoundSources = append(r.SoundSources, &SoundSource{
			Index: len(r.SoundSources), NodeIndex: 0, SoundScript: script,
		})
	}

	switch r.vehicleKind() {
	case KindTruck, KindCar:
		add("default_truck_engine")
		if hasCommands {
			add("default_truck_pneumatics")
		}
		if hasAir {
			add("default_truck_air_brakes")
		}
		if hasALB {
			add("default_truck_alb")
		}
		if hasTC {
			add("default_truck_tc")
		}
	case KindBoat:
		add("default_boat_engine")
	case KindAirplane:
		if hasTurbo {
			add("default_airplane_turbine")
		} else {
			add("default_airplane_piston")
		}
	}
}

// finalize runs every spec.md:182 post-pass, in the order listed there.
func (r *Rig) finalize() {
	r.finalizeWingSpans()
	r.finalizePositionLights()
	r.finalizeLowestNode()
	r.finalizeBoundingBox()
	r.finalizeDefaultSoundSources()
}
