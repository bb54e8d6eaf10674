package builder

import (
	"github.com/sixy6e/go-rigdef/config"
	"github.com/sixy6e/go-rigdef/rig"
)

// Build materializes a parsed module registry into a finalized Rig,
// following the fixed section build order (spec §4.5): node-producing
// sections first, then everything that references nodes, then the
// finalize post-passes. The build aborts outright only on a nil
// registry, an unknown selected module, or one of the
// configuration-fatal conditions named in spec §7 (missing beam or
// managed material); everything else becomes a Diagnostic on diags and
// the affected record is dropped.
func Build(registry *rig.Registry, selected []string, sinks Sinks, cfg config.TunableSet, diags *rig.Diagnostics) (*Rig, error) {
	if registry == nil {
		return nil, rig.ErrNilModuleRegistry
	}
	for _, name := range selected {
		if _, ok := registry.Modules[name]; !ok {
			return nil, rig.ErrUnknownSelectedModule
		}
	}
	modules := registry.Selected(selected)

	if sinks.Material != nil && !sinks.Material.HasBeamMeshMaterial() {
		return nil, rig.ErrMissingBeamMaterial
	}

	r := newRig(diags, sinks)
	r.cfg = cfg

	// Step 1: authors/fileinfo/guid/minimum-mass/globals/managed-materials.
	r.buildMeta(modules)
	if err := r.buildManagedMaterials(modules); err != nil {
		return nil, err
	}

	// Step 2: help/submesh groundmodel.
	for _, m := range modules {
		if m.Help != nil {
			r.Help = m.Help
		}
		for k, v := range m.GuiSettings {
			r.GuiSettings[k] = v
		}
		for _, gs := range m.GlobalSettings {
			if gs.Name == "submesh_groundmodel" {
				r.SubmeshGroundModel = gs.Value
			}
		}
	}

	// Step 4: nodes (+exhaust markers).
	r.buildNodes(modules)
	r.buildExhausts(modules)

	// Step 5: beams, cinecam, shocks, shocks2 (buildBeams drives all
	// three together since cinecam/shocks depend on the same per-module
	// iteration, spec §4.5 step 5).
	r.buildBeams(modules)

	// Step 6: commands2(merged)/ties/animators/hydros.
	r.buildCommands(modules)
	r.buildTies(modules)
	r.buildAnimators(modules)
	r.buildHydros(modules)

	// Step 7.
	r.buildWheels(modules, rig.WheelsV1)
	r.buildTurbojetsAndFusedrag(modules)
	r.buildWings(modules)
	r.buildContacters(modules)
	r.buildFlares(modules)
	r.buildCameras(modules)
	r.buildProps(modules)
	r.buildEngine(modules)
	r.buildWheels(modules, rig.WheelsV2, rig.MeshWheels, rig.MeshWheels2, rig.FlexBodyWheels)

	// Step 8.
	r.buildRotators(modules)
	r.buildTriggers(modules)
	r.buildLockgroups(modules)
	r.buildHooks(modules)
	r.buildRailGroups(modules)
	r.buildSlideNodes(modules)
	r.buildRopes(modules)
	r.buildRopables(modules)
	if r.cfg.Particles {
		r.buildParticles(modules)
	}
	r.buildPropellerFamilies(modules)
	r.buildAxles(modules)
	r.buildCollisionBoxes(modules)
	r.buildMaterialFlareBindings(modules)
	r.buildSubmeshes(modules)
	for _, sk := range modules {
		for k, v := range sk.SkeletonSettings {
			r.SkeletonSettings[k] = v
		}
	}
	r.buildAirbrakes(modules)
	r.buildSoundSources(modules)

	r.finalize()

	return r, nil
}

// buildMeta aggregates the scalar, module-independent records: the
// last module defining each wins, matching the "later directive
// overrides" rule the tokenizer already applies to defaults (spec
// §4.2).
func (r *Rig) buildMeta(modules []*rig.Module) {
	for _, m := range modules {
		r.Authors = append(r.Authors, m.Authors...)
		if m.FileInfo != nil {
			r.FileInfo = m.FileInfo
		}
		for _, gs := range m.GlobalSettings {
			if gs.Name == "guid" {
				r.Guid = gs.Value
			}
		}
		if m.HasMinimumMass {
			r.MinimumMass = m.MinimumMass
		}
	}
}

// buildExhausts resolves exhaust marker nodes (spec §4.5 step 4).
func (r *Rig) buildExhausts(modules []*rig.Module) {
	for _, m := range modules {
		for _, ex := range m.Exhausts {
			if _, ok := r.exhaustNodeIndex(ex.RefNode); !ok {
				r.diags.Add(rig.ERROR, ex.Line, m.Name, "exhausts", "", "exhaust reference node not found")
				continue
			}
			if _, ok := r.exhaustNodeIndex(ex.DirNode); !ok {
				r.diags.Add(rig.ERROR, ex.Line, m.Name, "exhausts", "", "exhaust direction node not found")
				continue
			}
			r.Exhausts = append(r.Exhausts, ex)
		}
	}
}

// buildParticles resolves `particles` emitter/reference nodes (spec §3
// per GLOSSARY).
func (r *Rig) buildParticles(modules []*rig.Module) {
	for _, m := range modules {
		for _, p := range m.Particles {
			if _, ok := r.exhaustNodeIndex(p.EmitterNode); !ok {
				continue
			}
			if _, ok := r.exhaustNodeIndex(p.ReferenceNode); !ok {
				continue
			}
			r.Particles = append(r.Particles, p)
		}
	}
}
