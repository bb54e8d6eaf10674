package rig

import "errors"

// Sentinel errors for the small set of conditions that are allowed to
// abort a build outright (spec §7: "propagate only configuration
// failures ... as fatal"). Everything else becomes a Diagnostic.
var (
	ErrMissingBeamMaterial     = errors.New("missing built-in material \"beam.mesh\"")
	ErrMissingManagedMaterial  = errors.New("missing base managed-material template")
	ErrNilModuleRegistry       = errors.New("module registry not initialised")
	ErrUnknownSelectedModule   = errors.New("selected module not present in registry")
	ErrNestedSection           = errors.New("nested section directive")
	ErrEmptyLineIterator       = errors.New("line iterator produced no lines")
)
