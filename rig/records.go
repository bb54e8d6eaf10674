package rig

// Vec3 is a plain 3-component vector; the core never needs more than
// addition/subtraction/scaling, so it stays a value type with free
// functions rather than a pulled-in linear algebra dependency (see
// DESIGN.md for the stdlib-math justification).
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// NodeOption flags, one bit per single-letter option (spec §3 Node).
const (
	NodeMouseGrab       = 'n'
	NodeNoMouseGrab     = 'm'
	NodeNoSparks        = 'f'
	NodeExhaustSource   = 'x'
	NodeExhaustDir      = 'y'
	NodeNoGroundContact = 'c'
	NodeHookPoint       = 'h'
	NodeTerrainEdit     = 'e'
	NodeExtraBuoyancy   = 'b'
	NodeNoParticles     = 'p'
	NodeLog             = 'L'
	NodeLoadWeight      = 'l'
)

const NodeOptionAlphabet = "nmfxychebpLl"

// NodeRec is one `nodes`/`nodes2` line (spec §3 Node, §4.3.1).
type NodeRec struct {
	Line        int
	Id          NodeId
	Position    Vec3
	Options     OptionSet
	LoadWeight  float64 // only meaningful if Options.Has('l') && HasLoadWeight
	HasLoad     bool
	Defaults    *NodeDefaults
	DetacherGrp int
}

// BeamKind tags a beam's role (spec §3 Beam).
type BeamKind int

const (
	NORMAL BeamKind = iota
	INVISIBLE
	HYDRO
	INVISIBLE_HYDRO
	VIRTUAL
	MARKED
)

// BeamSubKind further constrains a beam's bounds (spec §3 Beam).
type BeamSubKind int

const (
	NoSubKind BeamSubKind = iota
	ROPE
	SUPPORT
	SHOCK1
	SHOCK2
	NOSHOCK
)

// BeamRec is one `beams` line (spec §3 Beam, §4.3.2).
type BeamRec struct {
	Line                int
	NodeA, NodeB        NodeId
	Kind                BeamKind
	SubKind             BeamSubKind
	ExtensionBreakLimit float64
	HasExtBreakLimit    bool
	Defaults            *BeamDefaults
	DetacherGrp         int
	Material            string
}

// ShockOptions bit flags (spec §3 Shock/Shock2).
const (
	ShockInvisible = 1 << iota
	ShockSoftBound
	ShockMetricBound
	ShockAbsMetricBound
	ShockActiveLeft
	ShockActiveRight
	ShockTrgCmdBlocker // set on the shock underlying a trigger with option 'b'
)

// ShockRec describes the nonlinear spring/damp curve side-record
// carried by a beam tagged SHOCK1/SHOCK2 (spec §3 Shock/Shock2).
type ShockRec struct {
	Line         int
	BeamIndex    int // left unset; the builder's Shock records the materialized beam index
	NodeA, NodeB NodeId
	ShortBound   float64
	LongBound    float64
	SpringIn     float64
	DampIn       float64
	SpringOut    float64
	DampOut      float64
	Precompr     float64
	Flags        int
	Is2          bool
	// Trigger-specific fields, set only when this shock backs a Trigger.
	TriggerShortCmd int
	TriggerLongCmd  int
}

// BrakeMode enumerates a wheel's braking behaviour (spec §3 Wheel family).
type BrakeMode int

const (
	BrakeNone BrakeMode = iota
	BrakeYes
	BrakeDirLeft
	BrakeDirRight
	BrakeFootOnly
)

// Propulsion enumerates a wheel's drive behaviour (spec §3 Wheel family).
type Propulsion int

const (
	PropNone Propulsion = iota
	PropForward
	PropBackward
)

// WheelVariant names the five source sections sharing the wheel shape
// (spec §3 Wheel family, §9 Polymorphism).
type WheelVariant int

const (
	WheelsV1 WheelVariant = iota
	WheelsV2
	MeshWheels
	MeshWheels2
	FlexBodyWheels
)

// RigidityNoneSentinel is the legacy numeric value meaning "no rigidity
// node" on some wheel variants (spec §3, §8 boundary behaviour).
const RigidityNoneSentinel = 9999

// WheelRec is one wheel-family line, normalized to the common shape
// described in spec §9 regardless of which of the five sections it came
// from.
type WheelRec struct {
	Line        int
	Variant     WheelVariant
	NumRays     int
	Radius      float64
	TyreRadius  float64 // only for two-ring variants
	Width       float64
	Mass        float64
	Axis1, Axis2 NodeId
	Rigidity    NodeId
	HasRigidity bool
	ArmNode     NodeId
	Braking     BrakeMode
	Propulsion  Propulsion
	SpringTyre, DampTyre     float64
	SpringRim, DampRim       float64
	SpringTread, DampTread   float64
	DetacherGrp int
	FaceMaterial string
	BandMaterial string
	TwoRing     bool // false downgrades wheels2 -> wheels per spec §9
}

// CommandOptions bit flags (spec §3 Command/Command2; letter-to-bit
// mapping follows the original's Command2::OPTION_* table).
const (
	CmdInvisible = 1 << iota
	CmdRopeBounded
	CmdAutoCenter
	CmdForceRestricted
	CmdOnePressPlus
	CmdOnePressMinus
)

// CommandRec is one `commands`/`commands2` line (spec §3 Command,
// §4.3.5). Commands2 and Commands share this record; the builder
// merges both sections before wiring (spec §4.5 step 6).
type CommandRec struct {
	Line              int
	NodeA, NodeB      NodeId
	MaxContraction    float64
	MaxExtension      float64
	CenterLength      float64
	KeyExtend         int
	KeyContract       int
	Options           int
	Description       string
	Inertia           InertiaTail
	NeedsEngine       bool
	HasNeedsEngine    bool
	DetacherGrp       int
	Defaults          *BeamDefaults
	AffinityWarned    bool // true once the c-vs-p/o conflict warning fired
}

// HydroFlags bit flags (spec §3 Hydro; letter-to-bit mapping follows
// the original's Hydro::OPTION_* table, including the combined-axis
// flags u/v/x/y/g/h).
const (
	HydroAileron = 1 << iota
	HydroRudder
	HydroElevator
	HydroAileronElevator
	HydroInvAileronElevator
	HydroAileronRudder
	HydroInvAileronRudder
	HydroElevatorRudder
	HydroInvElevatorRudder
	HydroSpeed
)

// HydroRec is one `hydros` line (spec §3 Hydro, §4.3.6).
type HydroRec struct {
	Line         int
	NodeA, NodeB NodeId
	Rate         float64
	Flags        int
	Inertia      InertiaTail
	DetacherGrp  int
	Defaults     *BeamDefaults
}

// TriggerOptions bit flags (spec §3 Trigger, §4.3.4; letter-to-bit
// mapping follows the original's Trigger::OPTION_* table).
const (
	TrgInvisible = 1 << iota
	TrgCmdStyle
	TrgStartDisabled
	TrgBlockCmdKey
	TrgBlocker
	TrgBlockerInv
	TrgSwapShortLong
	TrgHookUnlock
	TrgHookLock
	TrgContinuous
	TrgEngine
)

// TriggerRec is one `triggers` line (spec §3 Trigger, §4.3.4).
type TriggerRec struct {
	Line            int
	NodeA, NodeB    NodeId
	ContractLimit   float64
	ExpansionLimit  float64
	ShortKeyOrMotor int
	LongKeyOrFunc   int
	Options         int
	BoundaryTimer   float64
	HasBoundary     bool
	DetacherGrp     int
	Defaults        *BeamDefaults
}

// AnimatorFlags bit flags for the standalone animators keyword tokens
// (spec §3 Animator; letter-to-bit mapping follows the original's
// Animator::OPTION_* table).
const (
	AnimVisible = 1 << iota
	AnimInvisible
	AnimAirspeed
	AnimVerticalVelocity
	AnimAltimeter100k
	AnimAltimeter10k
	AnimAltimeter1k
	AnimAngleOfAttack
	AnimFlap
	AnimAirBrake
	AnimRoll
	AnimPitch
	AnimBrakes
	AnimAccel
	AnimClutch
	AnimSpeedo
	AnimTacho
	AnimTurbo
	AnimParking
	AnimShifterLeftRight
	AnimShifterBackForth
	AnimSequentialShift
	AnimGearSelect
	AnimTorque
	AnimDiffLock
	AnimBoatRudder
	AnimBoatThrottle
)

// AeroAnimatorFlags bit flags for the motor-indexed aero keyword tokens
// (`throttle-N`, `rpm-N`, `aerotorq-N`, `aeropit-N`, `aerostatus-N`).
const (
	AeroThrottle = 1 << iota
	AeroRPM
	AeroTorque
	AeroPitch
	AeroStatus
)

// AnimatorRec is one `animators` line (spec §3 Animator). Options are
// `|`-separated tokens: standalone keywords set Flags, `name-N` tokens
// set AeroFlags/Motor, and `shortlimit:`/`longlimit:` tokens set the
// corresponding limit plus its Has* flag.
type AnimatorRec struct {
	Line              int
	NodeA, NodeB      NodeId
	LengtheningFactor float64
	Flags             int
	AeroFlags         int
	Motor             int
	ShortLimit        float64
	LongLimit         float64
	HasShort          bool
	HasLong           bool
	DetacherGrp       int
	Defaults          *BeamDefaults
}

// RotatorRec is one `rotators`/`rotators2` line (spec §3 Rotator/Rotator2).
type RotatorRec struct {
	Line        int
	Axis1, Axis2 NodeId
	BaseNodes   [4]NodeId
	RotNodes    [4]NodeId
	Rate        float64
	KeyLeft     int
	KeyRight    int
	Is2         bool
	ForceTuning float64
	Tolerance   float64
	Description string
}

// AnimSourceFlags and AnimModeFlags are unions parsed from `|`-separated
// tokens inside a prop's `add_animation` source:/mode: groups (spec §4.3.7).
type AnimSource struct {
	Flag      string
	MotorIdx  int
	HasMotor  bool
}

type AnimationRec struct {
	Ratio       float64
	LowerLimit  float64
	UpperLimit  float64
	Sources     []AnimSource
	Modes       []string
	Event       string
	HasEvent    bool
}

// PropSpecialKind recognizes fixed mesh-name prefixes (spec §3 Prop,
// §4.3.7).
type PropSpecialKind int

const (
	PropPlain PropSpecialKind = iota
	PropLeftMirror
	PropRightMirror
	PropDashboard
	PropDashboardRH
	PropSpinprop
	PropPale
	PropSeat
	PropSeat2
	PropBeacon
	PropRedBeacon
	PropLightbar
)

// PropRec is one `props` line plus any following `add_animation` lines
// (spec §3 Prop, §4.3.7).
type PropRec struct {
	Line        int
	RefNode     NodeId
	XNode       NodeId
	YNode       NodeId
	Offset      Vec3
	Rotation    Vec3
	MeshName    string
	Special     PropSpecialKind
	Animations  []AnimationRec
	// Special-kind extra fields.
	DashOffset   Vec3
	DashRotation float64
	FlareMaterial string
	FlareColor    [3]float64
}

// FlexbodyRec is the two-line `flexbodies`/`forset` record (spec §3
// Flexbody, §4.3.8).
type FlexbodyRec struct {
	Line        int
	RefNode     NodeId
	XNode       NodeId
	YNode       NodeId
	Offset      Vec3
	Rotation    Vec3
	MeshName    string
	Forset      []NodeRange
	CameraMode  int
	HasCamera   bool
}

// CabTriangleFlags bit flags (spec §4.3.9 Submesh).
const (
	CabContact = 1 << iota
	CabBuoyant
	CabTougher
	CabInvulnerable
	CabBuoyNoDrag
	CabBuoyOnlyDrag
)

type TexcoordRec struct {
	Node NodeId
	U, V float64
}

type CabRec struct {
	N1, N2, N3 NodeId
	Flags      int
}

// SubmeshRec accumulates one `submesh` block's texcoords and cab
// triangles (spec §3 Submesh, §4.3.9).
type SubmeshRec struct {
	Line       int
	Texcoords  []TexcoordRec
	Cabs       []CabRec
	Backmesh   bool
}

// HookRec is the auxiliary record enqueued for every node carrying the
// 'h' option (spec §3 Hook, §4.3.1).
type HookRec struct {
	Line        int
	Node        NodeId
	Lock        float64
	Range       float64
	Force       float64
	Group       int
	HasGroup    bool
	BeamIndex   int // left unset; the builder's Hook records the rope-like beam to node 0/1
}

type TieRec struct {
	Line         int
	NodeA, NodeB NodeId
	MaxReach     float64
	AutoShorten  float64
	SpeedCoef    float64
	Group        int
}

type RopeRec struct {
	Line         int
	NodeA, NodeB NodeId
	Invisible    bool
	DetacherGrp  int
}

type RopableRec struct {
	Line     int
	Node     NodeId
	Group    int
	MultiLock bool
}

type RailGroupRec struct {
	Line       int
	Id         int
	BeamIndices []int
}

type SlideNodeRec struct {
	Line            int
	Node            NodeId
	RailGroupId     int
	Spring          float64
	Break           float64
	Tolerance       float64
	AttachRate      float64
	AttachDist      float64
}

type CinecamRec struct {
	Line     int
	Position Vec3
	Links    [8]NodeId
	Spring   float64
	Damp     float64
}

type ParticleRec struct {
	Line          int
	EmitterNode   NodeId
	ReferenceNode NodeId
	ParticleSystem string
}

type ExhaustRec struct {
	Line        int
	RefNode     NodeId
	DirNode     NodeId
	MaterialName string
}

type FlareRec struct {
	Line      int
	RefNode   NodeId
	NodeX     NodeId
	NodeY     NodeId
	Offset    Vec3
	Kind      byte // 'f' head, 'r' brake, 'R' reverse, 'l'/'L' left/right blinker, 'u' user
	ControlNumber int
	Blink     bool
	MaterialName string
}

// Propulsion-family records (spec §C supplement; ordering spec §4.5).
type TurbojetRec struct {
	Line             int
	FrontNode, BackNode, RefNode NodeId
	IsReversable     bool
	MaxThrust        float64
	AfterburnerThrust float64
	FrontDiameter    float64
	BackDiameter     float64
	NozzleLength     float64
}

type TurbopropRec struct {
	Line        int
	RefNode     NodeId
	AxisNode    NodeId
	BladeTipNodes [4]NodeId
	NumBlades   int
	MaxRPM      float64
	FullPower   float64
	PropDiameter float64
}

type PistonpropRec struct {
	Line         int
	RefNode      NodeId
	AxisNode     NodeId
	BladeTipNodes [4]NodeId
	NumBlades    int
	MaxRPM       float64
	FullPower    float64
	PropDiameter float64
	PitchAngle   float64
}

type ScrewpropRec struct {
	Line      int
	RefNode   NodeId
	BackNode  NodeId
	TopNode   NodeId
	Power     float64
}

type FusedragRec struct {
	Line       int
	FrontNode  NodeId
	BackNode   NodeId
	Factor     float64
	MeshName   string
}

type WingRec struct {
	Line        int
	Nodes       [8]NodeId
	TexCoords   [8]float64
	Control     byte
	Chord       float64
	MinDeflection float64
	MaxDeflection float64
	Airfoil     string
	Efficiency  float64
}

type AirbrakeRec struct {
	Line         int
	RefNode      NodeId
	XNode, YNode NodeId
	Offset       Vec3
	Width, Height float64
	MaxAngle     float64
	TextureX1, TextureY1, TextureX2, TextureY2 float64
	Lift         float64
}

type CameraRec struct {
	Line                 int
	CenterNode, BackNode, LeftNode NodeId
}

type CameraRailRec struct {
	Line  int
	Nodes []NodeId
}

type ExtCameraMode int

const (
	ExtCameraClassic ExtCameraMode = iota
	ExtCameraCinecam
	ExtCameraNode
)

type ExtCameraRec struct {
	Mode ExtCameraMode
	Node NodeId
	HasNode bool
}

type AxleRec struct {
	Line         int
	Wheel1, Wheel2 int
	Options      []byte // open/locked/split differential selection, left to right priority
}

type SoundSourceRec struct {
	Line       int
	Node       NodeId
	SoundScript string
	Mode       int
	Is2        bool
}

type EngineRec struct {
	Line            int
	Shift           float64
	Clutch          float64
	TorqueCurve     string
	MinRPM, MaxRPM  float64
	MaxTorque       float64
	DiffRatio       float64
	GearRatios      []float64
	HasGears        bool
}

type EngoptionRec struct {
	Line          int
	EngineInertia float64
	EngineType    byte // 't' truck, 'c' car
	ClutchForce   float64
	ShiftTime     float64
	ClutchTime    float64
	PostShiftTime float64
	StallRPM      float64
	IdleRPM       float64
	MaxIdleMixture float64
	MinIdleMixture float64
}

type BrakesRec struct {
	Line            int
	MaxBrakeForce   float64
	ParkingBrakeForce float64
	HasParking      bool
}

type TorqueCurveRec struct {
	Line       int
	PredefinedCurve string
	Samples    [][2]float64 // (rpm percent, torque percent)
}

type CruiseControlRec struct {
	Line          int
	MinSpeed      float64
	AutoBrake     bool
}

type SpeedLimiterRec struct {
	Line  int
	MaxSpeed float64
}

type TractionControlRec struct {
	Line          int
	Regulation    float64
	WheelSlip     float64
	FadeSpeed     float64
	PulseScale    float64
	Mode          []byte
}

type AntiLockBrakesRec struct {
	Line       int
	Regulation float64
	MinSpeed   float64
	PulseScale float64
	Mode       []byte
}

type SlopeBrakeRec struct {
	Line          int
	RegulationForce float64
	AttachAngle     float64
	ReleaseAngle    float64
}

type CollisionBoxRec struct {
	Line  int
	Nodes []NodeId
}

type MaterialFlareBindingRec struct {
	Line        int
	FlareNumber int
	Material    string
}

type ManagedMaterialRec struct {
	Line     int
	Name     string
	Type     string
	Textures [3]string
	Options  *ManagedMaterialOptions
}

type GlobalsRec struct {
	Line         int
	DryMass      float64
	LoadMass     float64
	MaterialName string
}

type GlobalFlag struct {
	Line int
	Name string
}

type GlobalSetting struct {
	Line  int
	Name  string
	Value string
}

type FileInfoRec struct {
	UniqueId string
	Category int
	Version  int
}

type AuthorRec struct {
	Type  string
	Id    int
	Name  string
	Email string
}

type HelpRec struct {
	MaterialOrText string
}
