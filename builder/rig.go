// Package builder consumes a parsed rig.Registry and materializes a
// Rig: fixed-capacity arrays of nodes, beams and every auxiliary
// subsystem, wired by cross-reference index rather than pointer cycles
// (spec §4.5, §9 Cyclic references).
package builder

import (
	"github.com/sixy6e/go-rigdef/config"
	"github.com/sixy6e/go-rigdef/rig"
)

// Capacity limits mirror the process-wide limit table (spec §5). Build
// steps that check one of these before appending a parsed record emit
// ERROR and drop the record once it is exceeded. Beams the builder
// generates itself (wheels, cinecams, ropes) are dropped by addBeam at
// MaxBeams without a diagnostic, and MaxTexcoords, MaxCParticles,
// MaxAeroEngines, MaxCameraRail and MaxScrewProps are not checked.
const (
	MaxNodes             = 66_000
	MaxBeams             = 112_000
	MaxShocks             = 16_000
	MaxWheels             = 64
	MaxHydros             = 256
	MaxProps              = 256
	MaxFlexbodies         = 64
	MaxCabs               = 40_000
	MaxTexcoords          = 20_000
	MaxRotators           = 64
	MaxCParticles         = 64
	MaxSoundScriptsPerTruck = 128
	MaxCommands           = 84
	MaxAeroEngines        = 8
	MaxAirbrakes          = 64
	MaxWings              = 64
	MaxCameraRail         = 32
	MaxScrewProps         = 8
)

// Node is a materialized point mass: parse-time NodeRec plus
// build-time wiring state (spec §3 Node, §4.4 Identifier Resolution).
type Node struct {
	Index          int
	Id             rig.NodeId
	Position       rig.Vec3
	Mass           float64
	Friction       float64
	Volume         float64
	Surface        float64
	Options        rig.OptionSet
	Lockgroup      int
	WheelId        int // -1 if none
	IsWheel        int // 0 none, 1 outer ring, 2 inner ring
	CollisionBoxId int // -1 if none
	Contactless    bool
	Generated      bool // true for wheel-ring/cinecam nodes: Id stays the zero NodeId, not in id maps (spec §4.4)
}

// Beam is a materialized constraint between two node indices (spec §3
// Beam).
type Beam struct {
	Index           int
	NodeA, NodeB    int
	RefL            float64
	Length          float64
	Spring          float64
	Damp            float64
	PlasticCoef     float64
	BreakThreshold  float64
	DeformThreshold float64
	Diameter        float64
	Material        string
	Kind            rig.BeamKind
	SubKind         rig.BeamSubKind
	DetacherGroup   int
	Disabled        bool
	ShockIndex      int
	HasShock        bool
	SupportShortBound float64 // SubKind==SUPPORT only: contraction limit fraction (spec §4.3.3 step 5)
}

// Shock is the nonlinear side-record a SHOCK1/SHOCK2 beam carries
// (spec §3 Shock/Shock2, §4.3.4 Triggers).
type Shock struct {
	Index           int
	BeamIndex       int
	ShortBound      float64
	LongBound       float64
	SpringIn, DampIn float64
	SpringOut, DampOut float64
	Precompr        float64
	Flags           int
	TriggerShortCmd int
	TriggerLongCmd  int
	HasTrigger      bool
}

// Wheel is the builder's uniform view of all five wheel-family variants
// (spec §9 Polymorphism).
type Wheel struct {
	Index        int
	Variant      rig.WheelVariant
	NumRays      int
	NodeIndices  []int // all generated ring nodes, outer/inner interleaved
	Axis1, Axis2 int
	Rigidity     int
	HasRigidity  bool
	ArmNode      int
	NearAttach   int
	Braking      rig.BrakeMode
	Propulsion   rig.Propulsion
	Mass         float64
	Radius       float64
	TyreRadius   float64
	TwoRing      bool
}

// CommandKeyState is the rig-level per-key registry commands attach to
// (spec §4.3.5, §8 scenario 4).
type CommandKeyState struct {
	BeamIndices             []int
	Signs                   []int // +1 extend, -1 contract, index-aligned with BeamIndices
	TriggerCmdKeyBlockState bool
}

// Command is a materialized commands/commands2 record (spec §3
// Command).
type Command struct {
	Index          int
	BeamIndex      int
	NodeA, NodeB   int
	MaxContraction float64
	MaxExtension   float64
	CenterLength   float64
	KeyExtend      int
	KeyContract    int
	Options        int
	Description    string
	NeedsEngine    bool
}

// Trigger is a materialized triggers record, always backed by a
// SHOCK2 beam (spec §4.3.4).
type Trigger struct {
	Index           int
	ShockIndex      int
	BeamIndex       int
	Options         int
	ShortKeyOrMotor int
	LongKeyOrFunc   int
	BoundaryTimer   float64
	HasBoundary     bool
}

// Hydro is a materialized hydros record (spec §3 Hydro).
type Hydro struct {
	Index     int
	BeamIndex int
	Rate      float64
	Flags     int
}

// Animator is a materialized animators record (spec §3 Animator).
type Animator struct {
	Index      int
	BeamIndex  int
	Flags      int
	AeroFlags  int
	Motor      int
	ShortLimit float64
	LongLimit  float64
}

// Rotator is a materialized rotators/rotators2 record (spec §3
// Rotator/Rotator2).
type Rotator struct {
	Index     int
	Axis1, Axis2 int
	BaseNodes [4]int
	RotNodes  [4]int
	Rate      float64
	KeyLeft   int
	KeyRight  int
	Is2       bool
}

// Hook is one hooks record, wired to the rope-like beam generated for
// node option 'h' (spec §3 Hook).
type Hook struct {
	Index     int
	NodeIndex int
	BeamIndex int
	Lock      float64
	Range     float64
	Force     float64
	Group     int
	Locked    bool
}

// Tie is a materialized ties record.
type Tie struct {
	Index        int
	NodeA, NodeB int
	MaxReach     float64
	AutoShorten  float64
	SpeedCoef    float64
	Group        int
}

// Prop is a materialized props record, its node references resolved to
// indices and its mesh handle obtained from the MeshFactorySink (spec
// §3 Prop).
type Prop struct {
	Index    int
	RefNode  int
	XNode    int
	YNode    int
	Offset   rig.Vec3
	Rotation rig.Vec3
	MeshName string
	Special  rig.PropSpecialKind
	Animations []rig.AnimationRec
	Handle   any // opaque mesh/entity handle from MeshFactorySink
}

// Flexbody is a materialized flexbodies record with its forset
// expanded to concrete node indices (spec §3 Flexbody).
type Flexbody struct {
	Index      int
	RefNode    int
	XNode      int
	YNode      int
	Offset     rig.Vec3
	Rotation   rig.Vec3
	MeshName   string
	Forset     []int
	CameraMode int
	HasCamera  bool
	Handle     any
}

// SlideNode is a materialized slidenodes record, riding the rail group
// its RailGroupId names (spec §3 per GLOSSARY Rail group).
type SlideNode struct {
	Index       int
	NodeIndex   int
	RailGroupId int
	Spring      float64
	Break       float64
	Tolerance   float64
	AttachRate  float64
	AttachDist  float64
}

// Ropable is a materialized ropables record: a node a rope end can
// lock onto.
type Ropable struct {
	Index     int
	NodeIndex int
	Group     int
	MultiLock bool
}

// SoundSource is a materialized soundsources/soundsources2 record.
type SoundSource struct {
	Index       int
	NodeIndex   int
	SoundScript string
	Mode        int
}

// BoundingBox is an axis-aligned box, inflated by 5cm for collision
// boxes per spec §4.5 finalize step.
type BoundingBox struct {
	Min, Max rig.Vec3
}

// Rig is the finalized object graph (spec §3 Rig): the physics
// runtime's sole input, safe for concurrent read-only access once
// Build returns (spec §5).
type Rig struct {
	Nodes      []*Node
	Beams      []*Beam
	Shocks     []*Shock
	Wheels     []*Wheel
	Commands   []*Command
	CommandKeys map[int]*CommandKeyState
	Triggers   []*Trigger
	Hydros     []*Hydro
	Animators  []*Animator
	Rotators   []*Rotator
	Hooks      []*Hook
	Ties       []*Tie
	Props      []*Prop
	Flexbodies []*Flexbody
	Submeshes  []*SubmeshInstance
	Exhausts   []*rig.ExhaustRec
	Particles  []*rig.ParticleRec
	Flares     []*rig.FlareRec
	Cameras    []*rig.CameraRec
	VideoCameras []*rig.CameraRec
	CameraRails []*rig.CameraRailRec
	ExtCamera  *rig.ExtCameraRec
	Wings      []*rig.WingRec
	Engine     *rig.EngineRec
	Engoption  *rig.EngoptionRec
	Brakes     *rig.BrakesRec
	Authors    []rig.AuthorRec
	FileInfo   *rig.FileInfoRec
	Guid       string
	MinimumMass float64
	BoundingBox BoundingBox
	CollisionBoxBoxes []BoundingBox
	LowestNodeZ float64
	PropWheels  []int
	BrakedWheels []int

	Axles        []*rig.AxleRec
	RailGroups   map[int][]int
	SlideNodes   []*SlideNode
	Ropables     []*Ropable
	MatFlareBindings []*rig.MaterialFlareBindingRec
	TurboJets    []*rig.TurbojetRec
	TurboProps   []*rig.TurbopropRec
	PistonProps  []*rig.PistonpropRec
	ScrewProps   []*rig.ScrewpropRec
	Fusedrags    []*rig.FusedragRec
	Contacters   []int
	Airbrakes    []*rig.AirbrakeRec
	TractionCtl  *rig.TractionControlRec
	AntiLockBr   *rig.AntiLockBrakesRec
	SlopeBrake   *rig.SlopeBrakeRec
	TorqueCurve  *rig.TorqueCurveRec
	CruiseCtl    *rig.CruiseControlRec
	SpeedLimiter *rig.SpeedLimiterRec
	ManagedMaterials []*rig.ManagedMaterialRec
	SoundSources []*SoundSource
	WingSpans    []WingSpan

	Help               *rig.HelpRec
	GuiSettings        map[string]string
	SkeletonSettings   map[string]float64
	SubmeshGroundModel string // last `submesh_groundmodel <material>` seen, spec §4.5 build order

	numberedNodes map[int]int
	namedNodes    map[string]int

	diags *rig.Diagnostics
	sinks Sinks
	cfg   config.TunableSet
}

// SubmeshInstance is one of the (up to three) virtual copies a
// `backmesh`-marked submesh expands into at finalize (spec §4.3.9,
// GLOSSARY Submesh).
type SubmeshInstance struct {
	Texcoords []rig.TexcoordRec
	Cabs      []rig.CabRec
	Kind      string // "front" | "transparent" | "back"
}

func newRig(diags *rig.Diagnostics, sinks Sinks) *Rig {
	return &Rig{
		CommandKeys:   map[int]*CommandKeyState{},
		numberedNodes: map[int]int{},
		namedNodes:    map[string]int{},
		diags:         diags,
		sinks:         sinks,
		CollisionBoxBoxes: nil,
		LowestNodeZ:   0,
		RailGroups:    map[int][]int{},
		GuiSettings:      map[string]string{},
		SkeletonSettings: map[string]float64{},
	}
}
