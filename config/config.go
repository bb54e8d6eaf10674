// Package config holds the handful of runtime tunables a rig build can
// be parameterized by (spec §6 Environment). The core parser/builder
// stays free of any file-reading concern; a ConfigProvider is the
// caller's business to implement, the same "empty uri -> default
// config" idiom the teacher repo uses for tiledb.Config.
package config

// TunableSet mirrors spec §6's environment knobs. Zero value is every
// tunable disabled/default, matching a bare rig-def with no loader
// configuration at all.
type TunableSet struct {
	Skidmarks            bool
	DisableCollisions    bool
	DisableSelfCollisions bool
	Particles            bool
	HeatHaze             bool
	DebugBeams           bool
	ShadowOptimizations  bool
	BeamBreakDebug       bool
	BeamDeformDebug      bool
	BeamTriggerDebug     bool
	SimpleMaterials      bool
	Lights               bool
}

// Default returns the tunable set a bare loader would use absent any
// explicit configuration.
func Default() TunableSet {
	return TunableSet{
		Particles: true,
		Lights:    true,
	}
}

// ConfigProvider supplies a TunableSet lazily, mirroring the teacher's
// pattern of accepting a config_uri string and only building the
// underlying config object when a build actually needs it.
type ConfigProvider interface {
	Tunables() (TunableSet, error)
}

// Static is a ConfigProvider that always returns a fixed TunableSet,
// useful for tests and for callers that already have one in hand.
type Static TunableSet

func (s Static) Tunables() (TunableSet, error) { return TunableSet(s), nil }
