package builder

// SceneSink receives the handful of scene-graph side effects the
// builder produces; rendering/scene assembly is out of scope (spec §1,
// §9 "Mutable global state... model as injected sink interfaces").
type SceneSink interface {
	AttachMesh(nodeIndex int, meshName string, handle any)
}

// MaterialSink resolves material names to opaque handles and reports
// whether the built-in "beam.mesh" / base managed-material templates
// are present — their absence is the one condition the spec promotes
// to a fatal, non-diagnostic error (spec §7).
type MaterialSink interface {
	ResolveMaterial(name string) (any, bool)
	HasBeamMeshMaterial() bool
	HasManagedMaterialBase(kind string) bool
}

// SoundSink attaches a named sound script to a node; default
// sound-source selection by vehicle kind is a finalize-time step (spec
// §4.5).
type SoundSink interface {
	AttachSoundScript(nodeIndex int, script string, mode int)
}

// MeshFactorySink builds opaque render-mesh handles for props,
// flexbodies and the two wheel visual kinds (spec §4.3.3 step 8,
// §4.3.7 Prop).
type MeshFactorySink interface {
	BuildPropMesh(meshName string) any
	BuildFlexMeshWheel(wheelIndex int, faceMaterial, bandMaterial string) any
	BuildFlexMesh(wheelIndex int, faceMaterial, bandMaterial string) any
	BuildFlexBody(meshName string, boundNodes []int) any
}

// Sinks bundles every out-of-scope collaborator the builder calls into
// (spec §1).
type Sinks struct {
	Scene   SceneSink
	Material MaterialSink
	Sound   SoundSink
	Mesh    MeshFactorySink
}

// nopSinks is used when the caller supplies no collaborators; every
// call becomes a documented no-op rather than a nil panic, since a
// headless build (e.g. CLI validation) has no renderer at all.
type nopSinks struct{}

func (nopSinks) AttachMesh(int, string, any)                             {}
func (nopSinks) ResolveMaterial(string) (any, bool)                      { return nil, false }
func (nopSinks) HasBeamMeshMaterial() bool                               { return true }
func (nopSinks) HasManagedMaterialBase(string) bool                      { return true }
func (nopSinks) AttachSoundScript(int, string, int)                      {}
func (nopSinks) BuildPropMesh(string) any                                { return nil }
func (nopSinks) BuildFlexMeshWheel(int, string, string) any              { return nil }
func (nopSinks) BuildFlexMesh(int, string, string) any                   { return nil }
func (nopSinks) BuildFlexBody(string, []int) any                         { return nil }

// DefaultSinks returns a set of sinks that record nothing and always
// report success; useful for tests and for rigstore's offline
// analytics pipeline, which never renders.
func DefaultSinks() Sinks {
	n := nopSinks{}
	return Sinks{Scene: n, Material: n, Sound: n, Mesh: n}
}
