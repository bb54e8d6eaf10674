package builder

import "github.com/sixy6e/go-rigdef/rig"

// buildProps resolves each prop's three reference nodes and obtains its
// render handle from the MeshFactorySink (spec §3 Prop, §4.3.7).
func (r *Rig) buildProps(modules []*rig.Module) {
	for _, m := range modules {
		for _, pr := range m.Props {
			if len(r.Props) >= MaxProps {
				r.diags.Add(rig.ERROR, pr.Line, m.Name, "props", "", "MAX_PROPS exceeded, prop dropped")
				continue
			}
			ref, refOk := r.resolveBeamEnd(pr.RefNode, pr.Line, m.Name, "props")
			x, xOk := r.resolveBeamEnd(pr.XNode, pr.Line, m.Name, "props")
			y, yOk := r.resolveBeamEnd(pr.YNode, pr.Line, m.Name, "props")
			if !refOk || !xOk || !yOk {
				continue
			}
			p := &Prop{
				Index: len(r.Props), RefNode: ref, XNode: x, YNode: y,
				Offset: pr.Offset, Rotation: pr.Rotation,
				MeshName: pr.MeshName, Special: pr.Special,
				Animations: pr.Animations,
			}
			if r.sinks.Mesh != nil {
				p.Handle = r.sinks.Mesh.BuildPropMesh(pr.MeshName)
			}
			r.Props = append(r.Props, p)
		}
	}
}

// buildFlexbodies resolves each flexbody's reference nodes and its
// forset node ranges, then asks the MeshFactorySink to bind the mesh to
// those nodes (spec §3 Flexbody, §4.3.8).
func (r *Rig) buildFlexbodies(modules []*rig.Module) {
	for _, m := range modules {
		for _, fb := range m.Flexbodies {
			if len(r.Flexbodies) >= MaxFlexbodies {
				r.diags.Add(rig.ERROR, fb.Line, m.Name, "flexbodies", "", "MAX_FLEXBODIES exceeded, flexbody dropped")
				continue
			}
			ref, refOk := r.resolveBeamEnd(fb.RefNode, fb.Line, m.Name, "flexbodies")
			x, xOk := r.resolveBeamEnd(fb.XNode, fb.Line, m.Name, "flexbodies")
			y, yOk := r.resolveBeamEnd(fb.YNode, fb.Line, m.Name, "flexbodies")
			if !refOk || !xOk || !yOk {
				continue
			}
			var forset []int
			for _, rr := range fb.Forset {
				forset = append(forset, r.expandRange(rr, fb.Line, m.Name, "flexbodies")...)
			}
			f := &Flexbody{
				Index: len(r.Flexbodies), RefNode: ref, XNode: x, YNode: y,
				Offset: fb.Offset, Rotation: fb.Rotation, MeshName: fb.MeshName,
				Forset: forset, CameraMode: fb.CameraMode, HasCamera: fb.HasCamera,
			}
			if r.sinks.Mesh != nil {
				f.Handle = r.sinks.Mesh.BuildFlexBody(fb.MeshName, forset)
			}
			r.Flexbodies = append(r.Flexbodies, f)
		}
	}
}

// buildSubmeshes expands every submesh block into its (up to three)
// virtual copies: the plain cab, and if `backmesh` is set, a
// transparent duplicate and a back-facing duplicate (spec §4.3.9,
// GLOSSARY Submesh).
func (r *Rig) buildSubmeshes(modules []*rig.Module) {
	for _, m := range modules {
		for _, sm := range m.Submeshes {
			if len(r.Submeshes)+len(sm.Cabs) > MaxCabs {
				r.diags.Add(rig.ERROR, sm.Line, m.Name, "submesh", "", "MAX_CABS exceeded, submesh dropped")
				continue
			}
			r.Submeshes = append(r.Submeshes, &SubmeshInstance{
				Texcoords: sm.Texcoords, Cabs: sm.Cabs, Kind: "front",
			})
			if sm.Backmesh {
				r.Submeshes = append(r.Submeshes,
					&SubmeshInstance{Texcoords: sm.Texcoords, Cabs: sm.Cabs, Kind: "transparent"},
					&SubmeshInstance{Texcoords: sm.Texcoords, Cabs: sm.Cabs, Kind: "back"},
				)
			}
		}
	}
}

// buildFlares passes `flares2` through unmodified; flare behaviour
// (blink timing, light attachment) belongs to the runtime, not this
// builder (spec Non-goals).
func (r *Rig) buildFlares(modules []*rig.Module) {
	for _, m := range modules {
		r.Flares = append(r.Flares, m.Flares2...)
	}
}

// buildCameras collects `cameras`/`videocameras`/`camerarails`/
// `extcamera`; Build runs it before buildProps, so videocameras precede
// props in the build order (spec §4.5 step 7).
func (r *Rig) buildCameras(modules []*rig.Module) {
	for _, m := range modules {
		r.Cameras = append(r.Cameras, m.Cameras...)
		r.VideoCameras = append(r.VideoCameras, m.VideoCameras...)
		r.CameraRails = append(r.CameraRails, m.CameraRails...)
		if m.ExtCamera != nil {
			r.ExtCamera = m.ExtCamera
		}
	}
}

// buildContacters resolves `contacters`, the explicit extra-collision
// node list (spec §3 per GLOSSARY Contacter).
func (r *Rig) buildContacters(modules []*rig.Module) {
	for _, m := range modules {
		for _, id := range m.Contacters {
			if idx, ok := r.resolveBeamEnd(id, 0, m.Name, "contacters"); ok {
				r.Nodes[idx].Contactless = false
				r.Contacters = append(r.Contacters, idx)
			}
		}
	}
}

// buildWings passes `wings` through unresolved, checking only MaxWings;
// span grouping for induced-drag is computed at finalize once every
// wing across every module is known (spec §4.5 finalize step).
func (r *Rig) buildWings(modules []*rig.Module) {
	for _, m := range modules {
		for _, w := range m.Wings {
			if len(r.Wings) >= MaxWings {
				r.diags.Add(rig.ERROR, w.Line, m.Name, "wings", "", "MAX_WINGS exceeded, wing dropped")
				continue
			}
			r.Wings = append(r.Wings, w)
		}
	}
}

// buildTurbojetsAndFusedrag and buildEngine cover the step-7 propulsion
// records (spec §C supplement, §4.5 step 7 ordering); the remaining
// propeller families build later, in step 8.
func (r *Rig) buildTurbojetsAndFusedrag(modules []*rig.Module) {
	for _, m := range modules {
		r.TurboJets = append(r.TurboJets, m.Turbojets...)
		r.Fusedrags = append(r.Fusedrags, m.Fusedrags...)
	}
}

func (r *Rig) buildEngine(modules []*rig.Module) {
	for _, m := range modules {
		if m.Engine != nil {
			r.Engine = m.Engine
		}
		if m.Engoption != nil {
			r.Engoption = m.Engoption
		}
		if m.Brakes != nil {
			r.Brakes = m.Brakes
		}
		if m.TractionCtl != nil {
			r.TractionCtl = m.TractionCtl
		}
		if m.AntiLockBr != nil {
			r.AntiLockBr = m.AntiLockBr
		}
		if m.SlopeBrake != nil {
			r.SlopeBrake = m.SlopeBrake
		}
	}
}

// buildPropellerFamilies covers the step-8 propeller types plus the
// tunables that ride alongside them (spec §C supplement).
func (r *Rig) buildPropellerFamilies(modules []*rig.Module) {
	for _, m := range modules {
		r.PistonProps = append(r.PistonProps, m.Pistonprops...)
		r.TurboProps = append(r.TurboProps, m.Turboprops...)
		r.ScrewProps = append(r.ScrewProps, m.Screwprops...)
		if m.TorqueCurve != nil {
			r.TorqueCurve = m.TorqueCurve
		}
		if m.CruiseCtl != nil {
			r.CruiseCtl = m.CruiseCtl
		}
		if m.SpeedLimiter != nil {
			r.SpeedLimiter = m.SpeedLimiter
		}
	}
}

// buildAirbrakes resolves airbrake anchor nodes (spec §C supplement).
func (r *Rig) buildAirbrakes(modules []*rig.Module) {
	for _, m := range modules {
		for _, ab := range m.Airbrakes {
			if len(r.Airbrakes) >= MaxAirbrakes {
				r.diags.Add(rig.ERROR, ab.Line, m.Name, "airbrakes", "", "MAX_AIRBRAKES exceeded, airbrake dropped")
				continue
			}
			r.Airbrakes = append(r.Airbrakes, ab)
		}
	}
}

// buildManagedMaterials passes through managed-material definitions,
// checking the sink for base-template availability (spec §7 fatal
// error condition).
func (r *Rig) buildManagedMaterials(modules []*rig.Module) error {
	for _, m := range modules {
		for _, mm := range m.ManagedMaterials {
			if r.sinks.Material != nil && !r.sinks.Material.HasManagedMaterialBase(mm.Type) {
				return rig.ErrMissingManagedMaterial
			}
			r.ManagedMaterials = append(r.ManagedMaterials, mm)
		}
	}
	return nil
}

// buildSoundSources resolves soundsources/soundsources2 node references
// and forwards the attachment to the SoundSink (spec §3 per GLOSSARY).
func (r *Rig) buildSoundSources(modules []*rig.Module) {
	for _, m := range modules {
		for _, ss := range m.SoundSources {
			idx, ok := r.resolveBeamEnd(ss.Node, ss.Line, m.Name, "soundsources")
			if !ok {
				continue
			}
			if len(r.SoundSources) >= MaxSoundScriptsPerTruck {
				r.diags.Add(rig.ERROR, ss.Line, m.Name, "soundsources", "", "MAX_SOUNDSCRIPTS_PER_TRUCK exceeded, dropped")
				continue
			}
			r.SoundSources = append(r.SoundSources, &SoundSource{
				Index: len(r.SoundSources), NodeIndex: idx,
				SoundScript: ss.SoundScript, Mode: ss.Mode,
			})
			if r.sinks.Sound != nil {
				r.sinks.Sound.AttachSoundScript(idx, ss.SoundScript, ss.Mode)
			}
		}
	}
}
