package builder

import (
	"github.com/samber/lo"

	"github.com/sixy6e/go-rigdef/rig"
)

// registerCommandKey appends a signed beam index to the per-key
// registry a command's extend/contract key drives (spec §4.3.5, §8
// scenario 4: a trigger can flip TriggerCmdKeyBlockState to suppress
// every beam registered under a key).
func (r *Rig) registerCommandKey(key, beamIndex, sign int) {
	if key <= 0 {
		return
	}
	st, ok := r.CommandKeys[key]
	if !ok {
		st = &CommandKeyState{}
		r.CommandKeys[key] = st
	}
	if lo.Contains(st.BeamIndices, beamIndex) {
		return
	}
	st.BeamIndices = append(st.BeamIndices, beamIndex)
	st.Signs = append(st.Signs, sign)
}

// buildCommands materializes `commands`/`commands2` (already merged at
// parse time, spec §4.5 step 6) as a beam carrying contraction/extension
// limits plus two signed command-key registrations.
func (r *Rig) buildCommands(modules []*rig.Module) {
	for _, m := range modules {
		for _, c := range m.Commands {
			if len(r.Commands) >= MaxCommands {
				r.diags.Add(rig.ERROR, c.Line, m.Name, "commands", "", "MAX_COMMANDS exceeded, command dropped")
				continue
			}
			a, aok := r.resolveBeamEnd(c.NodeA, c.Line, m.Name, "commands")
			b, bok := r.resolveBeamEnd(c.NodeB, c.Line, m.Name, "commands")
			if !aok || !bok {
				continue
			}
			refL := dist(r.Nodes[a].Position, r.Nodes[b].Position)
			spring, damp := 0.0, 0.0
			if c.Defaults != nil {
				spring, damp = c.Defaults.Spring, c.Defaults.Damp
			}
			beam := &Beam{
				NodeA: a, NodeB: b,
				RefL: refL, Length: refL,
				Spring: spring, Damp: damp,
				DetacherGroup: c.DetacherGrp,
			}
			bi := r.addBeam(beam)
			if bi < 0 {
				r.diags.Add(rig.ERROR, c.Line, m.Name, "commands", "", "MAX_BEAMS exceeded, command beam dropped")
				continue
			}

			centerLength := c.CenterLength
			if centerLength == 0 {
				centerLength = refL
			}
			cmd := &Command{
				Index: len(r.Commands), BeamIndex: bi,
				NodeA: a, NodeB: b,
				MaxContraction: c.MaxContraction, MaxExtension: c.MaxExtension,
				CenterLength: centerLength,
				KeyExtend:    c.KeyExtend, KeyContract: c.KeyContract,
				Options: c.Options, Description: c.Description,
				NeedsEngine: c.NeedsEngine,
			}
			r.Commands = append(r.Commands, cmd)
			r.registerCommandKey(c.KeyExtend, bi, +1)
			r.registerCommandKey(c.KeyContract, bi, -1)
		}
	}
}

// buildTies materializes `ties`: unlike commands, a tie's beam is not
// present until the tie fires at runtime, so the builder only resolves
// its endpoints and records the tuning (spec §3 Tie).
func (r *Rig) buildTies(modules []*rig.Module) {
	for _, m := range modules {
		for _, t := range m.Ties {
			a, aok := r.resolveBeamEnd(t.NodeA, t.Line, m.Name, "ties")
			b, bok := r.resolveBeamEnd(t.NodeB, t.Line, m.Name, "ties")
			if !aok || !bok {
				continue
			}
			r.Ties = append(r.Ties, &Tie{
				Index: len(r.Ties), NodeA: a, NodeB: b,
				MaxReach: t.MaxReach, AutoShorten: t.AutoShorten,
				SpeedCoef: t.SpeedCoef, Group: t.Group,
			})
		}
	}
}

// buildHydros materializes `hydros` as a beam driven by a hydro rate
// (spec §3 Hydro).
func (r *Rig) buildHydros(modules []*rig.Module) {
	for _, m := range modules {
		for _, h := range m.Hydros {
			if len(r.Hydros) >= MaxHydros {
				r.diags.Add(rig.ERROR, h.Line, m.Name, "hydros", "", "MAX_HYDROS exceeded, hydro dropped")
				continue
			}
			a, aok := r.resolveBeamEnd(h.NodeA, h.Line, m.Name, "hydros")
			b, bok := r.resolveBeamEnd(h.NodeB, h.Line, m.Name, "hydros")
			if !aok || !bok {
				continue
			}
			refL := dist(r.Nodes[a].Position, r.Nodes[b].Position)
			spring, damp := 0.0, 0.0
			if h.Defaults != nil {
				spring, damp = h.Defaults.Spring, h.Defaults.Damp
			}
			beam := &Beam{
				NodeA: a, NodeB: b, RefL: refL, Length: refL,
				Spring: spring, Damp: damp, Kind: rig.INVISIBLE_HYDRO,
				DetacherGroup: h.DetacherGrp,
			}
			bi := r.addBeam(beam)
			if bi < 0 {
				r.diags.Add(rig.ERROR, h.Line, m.Name, "hydros", "", "MAX_BEAMS exceeded, hydro beam dropped")
				continue
			}
			r.Hydros = append(r.Hydros, &Hydro{
				Index: len(r.Hydros), BeamIndex: bi,
				Rate: h.Rate, Flags: h.Flags,
			})
		}
	}
}

// buildAnimators materializes `animators` as a beam whose length is
// driven by an animation source rather than the physics solver (spec
// §3 Animator).
func (r *Rig) buildAnimators(modules []*rig.Module) {
	for _, m := range modules {
		for _, an := range m.Animators {
			a, aok := r.resolveBeamEnd(an.NodeA, an.Line, m.Name, "animators")
			b, bok := r.resolveBeamEnd(an.NodeB, an.Line, m.Name, "animators")
			if !aok || !bok {
				continue
			}
			refL := dist(r.Nodes[a].Position, r.Nodes[b].Position)
			spring, damp := 0.0, 0.0
			if an.Defaults != nil {
				spring, damp = an.Defaults.Spring, an.Defaults.Damp
			}
			beam := &Beam{
				NodeA: a, NodeB: b, RefL: refL, Length: refL,
				Spring: spring, Damp: damp, DetacherGroup: an.DetacherGrp,
			}
			bi := r.addBeam(beam)
			if bi < 0 {
				r.diags.Add(rig.ERROR, an.Line, m.Name, "animators", "", "MAX_BEAMS exceeded, animator beam dropped")
				continue
			}
			r.Animators = append(r.Animators, &Animator{
				Index: len(r.Animators), BeamIndex: bi, Flags: an.Flags,
				AeroFlags: an.AeroFlags, Motor: an.Motor,
				ShortLimit: an.ShortLimit, LongLimit: an.LongLimit,
			})
		}
	}
}

// buildTriggers wires `triggers` to a SHOCK2 beam, the same flavor
// shocks get, and records which command keys it can block (spec §4.3.4,
// §8 scenario 4).
func (r *Rig) buildTriggers(modules []*rig.Module) {
	for _, m := range modules {
		for _, t := range m.Triggers {
			a, aok := r.resolveBeamEnd(t.NodeA, t.Line, m.Name, "triggers")
			b, bok := r.resolveBeamEnd(t.NodeB, t.Line, m.Name, "triggers")
			if !aok || !bok {
				continue
			}
			refL := dist(r.Nodes[a].Position, r.Nodes[b].Position)
			beam := &Beam{
				NodeA: a, NodeB: b, RefL: refL, Length: refL,
				SubKind: rig.SHOCK2, DetacherGroup: t.DetacherGrp,
			}
			bi := r.addBeam(beam)
			if bi < 0 {
				r.diags.Add(rig.ERROR, t.Line, m.Name, "triggers", "", "MAX_BEAMS exceeded, trigger beam dropped")
				continue
			}
			if len(r.Shocks) >= MaxShocks {
				r.diags.Add(rig.ERROR, t.Line, m.Name, "triggers", "", "MAX_SHOCKS exceeded, trigger dropped")
				continue
			}
			shock := &Shock{
				Index: len(r.Shocks), BeamIndex: bi,
				ShortBound: t.ContractLimit, LongBound: t.ExpansionLimit,
				HasTrigger: true,
				TriggerShortCmd: t.ShortKeyOrMotor, TriggerLongCmd: t.LongKeyOrFunc,
			}
			r.Shocks = append(r.Shocks, shock)
			r.Beams[bi].ShockIndex = shock.Index
			r.Beams[bi].HasShock = true

			r.Triggers = append(r.Triggers, &Trigger{
				Index: len(r.Triggers), ShockIndex: shock.Index, BeamIndex: bi,
				Options: t.Options,
				ShortKeyOrMotor: t.ShortKeyOrMotor, LongKeyOrFunc: t.LongKeyOrFunc,
				BoundaryTimer: t.BoundaryTimer, HasBoundary: t.HasBoundary,
			})

			if t.Options&(rig.TrgBlocker|rig.TrgBlockCmdKey|rig.TrgBlockerInv) != 0 {
				r.applyTriggerBlock(t)
			}
		}
	}
}

// applyTriggerBlock toggles TriggerCmdKeyBlockState for the key(s) a
// blocker trigger targets (spec §8 scenario 4: "a trigger configured as
// a command-key blocker must suppress every beam registered under that
// key while active").
func (r *Rig) applyTriggerBlock(t *rig.TriggerRec) {
	invert := t.Options&rig.TrgBlockerInv != 0
	for _, key := range []int{t.ShortKeyOrMotor, t.LongKeyOrFunc} {
		st, ok := r.CommandKeys[key]
		if !ok {
			continue
		}
		st.TriggerCmdKeyBlockState = !invert
	}
}

// buildRotators materializes `rotators`/`rotators2`, already
// distinguished by RotatorRec.Is2 at parse time (spec §3
// Rotator/Rotator2).
func (r *Rig) buildRotators(modules []*rig.Module) {
	for _, m := range modules {
		for _, rr := range m.Rotators {
			if len(r.Rotators) >= MaxRotators {
				r.diags.Add(rig.ERROR, rr.Line, m.Name, "rotators", "", "MAX_ROTATORS exceeded, rotator dropped")
				continue
			}
			axis1, a1ok := r.resolveBeamEnd(rr.Axis1, rr.Line, m.Name, "rotators")
			axis2, a2ok := r.resolveBeamEnd(rr.Axis2, rr.Line, m.Name, "rotators")
			if !a1ok || !a2ok {
				continue
			}
			rot := &Rotator{
				Index: len(r.Rotators), Axis1: axis1, Axis2: axis2,
				Rate: rr.Rate, KeyLeft: rr.KeyLeft, KeyRight: rr.KeyRight,
				Is2: rr.Is2,
			}
			ok := true
			for i, id := range rr.BaseNodes {
				idx, bok := r.resolveBeamEnd(id, rr.Line, m.Name, "rotators")
				if !bok {
					ok = false
					break
				}
				rot.BaseNodes[i] = idx
			}
			for i, id := range rr.RotNodes {
				idx, bok := r.resolveBeamEnd(id, rr.Line, m.Name, "rotators")
				if !bok {
					ok = false
					break
				}
				rot.RotNodes[i] = idx
			}
			if !ok {
				continue
			}
			r.Rotators = append(r.Rotators, rot)
		}
	}
}
