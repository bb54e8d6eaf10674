package builder

import "github.com/sixy6e/go-rigdef/rig"

// buildNodes materializes every nodes/nodes2 record across the
// selected modules in order, in strict accordance with the first-node
// invariant (spec §3 Node, §8 "first node... must have numeric id 0").
// Capacity overflow drops the last item with an ERROR and leaves the
// prior nodes intact (spec §8 Boundary behaviours).
func (r *Rig) buildNodes(modules []*rig.Module) {
	for _, m := range modules {
		for _, n := range m.Nodes {
			if len(r.Nodes) >= MaxNodes {
				r.diags.Add(rig.ERROR, n.Line, m.Name, "nodes", "", "MAX_NODES exceeded, node dropped")
				continue
			}
			mass := n.Defaults.LoadWeight
			if n.HasLoad {
				mass = n.LoadWeight
			}
			node := &Node{
				Index:          len(r.Nodes),
				Id:             n.Id,
				Position:       n.Position,
				Mass:           mass,
				Friction:       n.Defaults.Friction,
				Volume:         n.Defaults.Volume,
				Surface:        n.Defaults.Surface,
				Options:        n.Options,
				WheelId:        -1,
				CollisionBoxId: -1,
			}
			r.Nodes = append(r.Nodes, node)
			r.registerNode(node, n.Line, m.Name)
		}
	}
}

// exhaustNodeIndex resolves an exhaust-marker node ('x'/'y' options) to
// its index once every node has been materialized (spec §4.5 step 4).
func (r *Rig) exhaustNodeIndex(id rig.NodeId) (int, bool) {
	if id.IsNumbered {
		idx, ok := r.numberedNodes[id.Num]
		return idx, ok
	}
	idx, ok := r.namedNodes[id.Name]
	return idx, ok
}
