package rig

// NodeDefaults is the shared, immutable-once-captured snapshot that
// every `nodes`/`nodes2` line captures by reference at the time it is
// parsed (spec §4.2 Defaults-by-reference). Replacing the current
// default via `set_node_defaults` never mutates records that already
// captured the previous value.
type NodeDefaults struct {
	LoadWeight   float64
	Friction     float64
	Volume       float64
	Surface      float64
	Options      OptionSet
}

// DefaultNodeDefaults returns the system built-in node defaults.
func DefaultNodeDefaults() *NodeDefaults {
	return &NodeDefaults{
		LoadWeight: -1, // -1 == "no override, derive from mass distribution"
		Friction:   1,
		Volume:     1,
		Surface:    1,
		Options:    OptionSet{},
	}
}

// BeamDefaultField identifies one field of BeamDefaults for the purpose
// of the user-specified bitset (spec §4.2).
type BeamDefaultField int

const (
	BDSpring BeamDefaultField = iota
	BDDamp
	BDDeformThreshold
	BDBreakThreshold
	BDDiameter
	BDPlasticCoef
	bdFieldCount
)

// BeamDefaults is the shared, immutable-once-captured snapshot for
// `beams` lines (spec §3 Beam, §4.2). Spring and damping values are
// scaled by Scale at the point the builder materializes a beam, not at
// parse time, so a later `set_beam_defaults_scale` cannot retroactively
// change already-parsed beams (each snapshot owns its own Scale).
// PlasticCoef is not scaled; the builder copies it as it is.
type BeamDefaults struct {
	Spring          float64
	Damp            float64
	DeformThreshold float64
	BreakThreshold  float64
	Diameter        float64
	PlasticCoef     float64
	Scale           BeamDefaultsScale
	UserSpecified   [bdFieldCount]bool
	AdvancedDeform  bool // sticky; see spec §4.2 enable_advanced_deformation
}

// BeamDefaultsScale multiplies the spring and damping constants (spec
// §3 Beam); it has no plastic-deformation factor.
type BeamDefaultsScale struct {
	Spring float64
	Damp   float64
}

// DefaultBeamDefaults returns the system built-in beam defaults used by
// end-to-end scenario 1 of spec §8: spring/damp constants, a breaking
// threshold of 1e6, and a deformation threshold of 4e5.
func DefaultBeamDefaults() *BeamDefaults {
	return &BeamDefaults{
		Spring:          9_000_000,
		Damp:            12_000,
		DeformThreshold: 400_000,
		BreakThreshold:  1_000_000,
		Diameter:        0.05,
		PlasticCoef:     0,
		Scale:           BeamDefaultsScale{Spring: 1, Damp: 1},
	}
}

// ApplyOverride implements `set_beam_defaults`'s sign convention (spec
// §4.2): a negative value means "revert that field to the system
// default"; zero or positive overrides and marks the field
// user-specified. Reverting also clears UserSpecified for that field,
// matching idempotence property of spec §8 ("set_beam_defaults ... with
// all negative (reset) values restores exactly the prior defaults
// object") — reverted fields behave as if never overridden.
func (b *BeamDefaults) ApplyOverride(field BeamDefaultField, value float64) {
	base := DefaultBeamDefaults()
	var target *float64
	var fallback float64
	switch field {
	case BDSpring:
		target, fallback = &b.Spring, base.Spring
	case BDDamp:
		target, fallback = &b.Damp, base.Damp
	case BDDeformThreshold:
		target, fallback = &b.DeformThreshold, base.DeformThreshold
	case BDBreakThreshold:
		target, fallback = &b.BreakThreshold, base.BreakThreshold
	case BDDiameter:
		target, fallback = &b.Diameter, base.Diameter
	case BDPlasticCoef:
		target, fallback = &b.PlasticCoef, base.PlasticCoef
	default:
		return
	}
	if value < 0 {
		*target = fallback
		b.UserSpecified[field] = false
		return
	}
	*target = value
	b.UserSpecified[field] = true
}

// Clone returns a copy-of-value snapshot, used by `set_beam_defaults`
// / `set_node_defaults` to produce the "new current default" object
// that subsequent records will capture, while leaving any previously
// captured pointer untouched (spec §4.2 Defaults-by-reference).
func (b *BeamDefaults) Clone() *BeamDefaults {
	c := *b
	return &c
}

func (n *NodeDefaults) Clone() *NodeDefaults {
	c := *n
	opts := make(OptionSet, len(n.Options))
	for k, v := range n.Options {
		opts[k] = v
	}
	c.Options = opts
	return &c
}

// Inertia carries the default start/stop delay and start/stop easing
// function names applied to actuators unless overridden inline (spec
// §4.3 parse_inertia_tail, §8 "set_inertia_defaults -1 restores the
// built-in inertia defaults").
type Inertia struct {
	StartDelay float64
	StopDelay  float64
	StartFn    string
	StopFn     string
}

func DefaultInertia() *Inertia {
	return &Inertia{StartDelay: 0, StopDelay: 0, StartFn: "", StopFn: ""}
}

func (i *Inertia) Clone() *Inertia {
	c := *i
	return &c
}

// ManagedMaterialOptions is the current `set_managed_materials_options`
// snapshot (spec §4.3.1 family, §C managedmaterials).
type ManagedMaterialOptions struct {
	DoubleSided bool
}

func DefaultManagedMaterialOptions() *ManagedMaterialOptions {
	return &ManagedMaterialOptions{DoubleSided: false}
}

func (m *ManagedMaterialOptions) Clone() *ManagedMaterialOptions {
	c := *m
	return &c
}

// DefaultsState is the four-way "current default" context threaded
// through the parser (spec §4.2). It is mutated only by replacement
// (clone-and-replace); existing records keep their captured pointer.
type DefaultsState struct {
	Node           *NodeDefaults
	Beam           *BeamDefaults
	Inertia        *Inertia
	ManagedMat     *ManagedMaterialOptions
	DetacherGroup  int
}

// NewDefaultsState returns the built-in defaults used at the start of
// parsing, and whenever `set_*_defaults -1` resets them (spec §4.2,
// §8).
func NewDefaultsState() *DefaultsState {
	return &DefaultsState{
		Node:          DefaultNodeDefaults(),
		Beam:          DefaultBeamDefaults(),
		Inertia:       DefaultInertia(),
		ManagedMat:    DefaultManagedMaterialOptions(),
		DetacherGroup: 0,
	}
}
