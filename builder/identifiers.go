package builder

import "github.com/sixy6e/go-rigdef/rig"

// registerNode inserts a newly materialized node into the id maps.
// Insertion is strict: a duplicate numeric or named id is an ERROR and
// the node is dropped from the maps (it still occupies its slot in
// r.Nodes, matching spec §4.4's "node is dropped" for the *duplicate*,
// not the original).
func (r *Rig) registerNode(n *Node, line int, module string) {
	if n.Id.IsNumbered {
		if _, exists := r.numberedNodes[n.Id.Num]; exists {
			r.diags.Add(rig.ERROR, line, module, "nodes", "", "duplicate numeric node id, dropped")
			return
		}
		r.numberedNodes[n.Id.Num] = n.Index
	} else {
		if _, exists := r.namedNodes[n.Id.Name]; exists {
			r.diags.Add(rig.ERROR, line, module, "nodes", "", "duplicate named node id, dropped")
			return
		}
		r.namedNodes[n.Id.Name] = n.Index
	}
}

// resolveStrict implements strict lookup (spec §4.4): absent id is an
// ERROR, caller must treat ok=false as "skip the record."
func (r *Rig) resolveStrict(id rig.NodeId, line int, module, section string) (int, bool) {
	if id.IsNumbered {
		if idx, ok := r.numberedNodes[id.Num]; ok {
			return idx, true
		}
		r.diags.Add(rig.ERROR, line, module, section, "", "unresolved numbered node reference")
		return 0, false
	}
	if idx, ok := r.namedNodes[id.Name]; ok {
		return idx, true
	}
	r.diags.Add(rig.ERROR, line, module, section, "", "unresolved named node reference")
	return 0, false
}

// resolveTolerant implements the legacy tolerant numbered lookup (spec
// §4.4, §8 scenario 5): an absent numeric id resolves to the number
// itself, with a WARNING, rather than failing. Named ids still require
// strict resolution.
func (r *Rig) resolveTolerant(id rig.NodeId, line int, module, section string) (int, bool) {
	if id.IsNumbered {
		if idx, ok := r.numberedNodes[id.Num]; ok {
			return idx, true
		}
		r.diags.Add(rig.WARNING, line, module, section, "", "reference to undefined numbered node, tolerated (legacy)")
		return id.Num, true
	}
	return r.resolveStrict(id, line, module, section)
}

// expandRange implements inclusive range expansion (spec §4.4),
// swapping start/end if given in reverse order. Each endpoint is
// resolved tolerantly, matching the legacy rule for out-of-range
// numeric bounds.
func (r *Rig) expandRange(rr rig.NodeRange, line int, module, section string) []int {
	if rr.Single {
		if idx, ok := r.resolveTolerant(rr.Start, line, module, section); ok {
			return []int{idx}
		}
		return nil
	}
	if rr.Start.IsNumbered && rr.End.IsNumbered {
		a, b := rr.Start.Num, rr.End.Num
		if b < a {
			a, b = b, a
		}
		out := make([]int, 0, b-a+1)
		for n := a; n <= b; n++ {
			idx, ok := r.resolveTolerant(rig.NodeId{IsNumbered: true, Num: n}, line, module, section)
			if ok {
				out = append(out, idx)
			}
		}
		return out
	}
	// A named endpoint can't be swapped/enumerated; resolve each side
	// independently as a best effort.
	var out []int
	if idx, ok := r.resolveStrict(rr.Start, line, module, section); ok {
		out = append(out, idx)
	}
	if idx, ok := r.resolveStrict(rr.End, line, module, section); ok {
		out = append(out, idx)
	}
	return out
}
