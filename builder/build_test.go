package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixy6e/go-rigdef/config"
	"github.com/sixy6e/go-rigdef/rig"
)

func parseAndBuild(t *testing.T, text string) (*Rig, rig.Diagnostics) {
	t.Helper()
	lines := strings.Split(strings.TrimLeft(text, "\n"), "\n")
	registry, parseDiags := rig.Parse(rig.NewSliceLineIterator(lines))
	diags := append(rig.Diagnostics{}, parseDiags...)
	r, err := Build(registry, nil, DefaultSinks(), config.Default(), &diags)
	require.NoError(t, err)
	return r, diags
}

// Scenario: a single beam's reference length is fixed at build time
// from the two nodes' positions (spec §8 scenario 1).
func TestBuildTwoNodeBeam(t *testing.T) {
	r, _ := parseAndBuild(t, `
Two Node Beam

nodes
0, 0, 0, 0
1, 3, 4, 0

beams
0, 1
`)
	require.Len(t, r.Nodes, 2)
	require.Len(t, r.Beams, 1)
	assert.InDelta(t, 5.0, r.Beams[0].RefL, 1e-9)
	assert.Equal(t, r.Beams[0].RefL, r.Beams[0].Length)
}

// Scenario: a cinecam line generates one node plus 8 invisible beams to
// its links (spec §8 scenario 2).
func TestBuildCinecam(t *testing.T) {
	r, _ := parseAndBuild(t, `
Cinecam Rig

nodes
0, 0, 0, 0
1, 1, 0, 0
2, 2, 0, 0
3, 3, 0, 0
4, 4, 0, 0
5, 5, 0, 0
6, 6, 0, 0
7, 7, 0, 0

cinecam
0, 0, 1, 0, 1, 2, 3, 4, 5, 6, 7, 10000, 500
`)
	assert.Len(t, r.Nodes, 9, "8 link nodes plus the generated cinecam node")
	assert.Len(t, r.Beams, 8)
	for _, b := range r.Beams {
		assert.Equal(t, rig.INVISIBLE, b.Kind)
	}
	assert.True(t, r.Nodes[8].Generated)
}

// Scenario: a single-ring WheelsV1 record with forward propulsion
// generates 2*rays nodes and registers the wheel in PropWheels (spec §8
// scenario 3, §9 Polymorphism).
func TestBuildSingleRingWheelWithPropulsion(t *testing.T) {
	r, diags := parseAndBuild(t, `
Wheel Rig

nodes
0, 0, 0, 0
1, 1, 0, 0
2, 0, 0, 1
3, 1, 0, 1
4, 0.5, 0, 0.5

wheels
0.5, 4, 2, 3, 9999, 1, 1, 4, 50, 9000, 500, tracks/wheelface, tracks/wheelband
`)
	require.False(t, diags.HasErrors(), diags.String())
	require.Len(t, r.Wheels, 1)
	w := r.Wheels[0]
	assert.False(t, w.TwoRing)
	assert.Len(t, w.NodeIndices, 8, "single-ring wheel with 4 rays generates 2*rays nodes")
	assert.Equal(t, rig.PropForward, w.Propulsion)
	assert.Contains(t, r.PropWheels, w.Index)
}

// Scenario: a trigger configured as a command-key blocker suppresses
// the key a command registered under (spec §8 scenario 4).
func TestBuildTriggerBlocksCommandKey(t *testing.T) {
	r, diags := parseAndBuild(t, `
Trigger Blocker Rig

nodes
0, 0, 0, 0
1, 1, 0, 0
2, 0, 1, 0
3, 1, 1, 0

commands2
0, 1, 0.5, 0.5, 1.0, 10, 11

triggers
2, 3, 0.5, 0.5, 10, 11, b
`)
	require.False(t, diags.HasErrors(), diags.String())
	require.Len(t, r.Commands, 1)
	require.Len(t, r.Triggers, 1)

	st, ok := r.CommandKeys[10]
	require.True(t, ok)
	assert.True(t, st.TriggerCmdKeyBlockState, "blocker trigger must suppress the key its short side names")
}

// Scenario: a flexbody's forset accepts an inclusive node range (spec
// §8 scenario 6, §4.4 Range expansion).
func TestBuildFlexbodyForsetRange(t *testing.T) {
	r, diags := parseAndBuild(t, `
Flexbody Rig

nodes
0, 0, 0, 0
1, 1, 0, 0
2, 2, 0, 0
3, 3, 0, 0
4, 4, 0, 0

flexbodies
0, 1, 2, 0, 0, 0, 0, 0, 0, flexbody_mesh.mesh
forset 0-3
`)
	require.False(t, diags.HasErrors(), diags.String())
	require.Len(t, r.Flexbodies, 1)
	assert.Equal(t, []int{0, 1, 2, 3}, r.Flexbodies[0].Forset)
}

// Scenario: legacy tolerant resolution accepts a beam endpoint that
// numerically matches an as-yet-unseen node id with a WARNING, and
// MAX_BEAMS overflow drops the offending beam with an ERROR rather than
// growing past capacity (spec §8 scenario 5, §5 capacity limits).
func TestBuildLegacyNumericToleranceAndCapacityOverflow(t *testing.T) {
	r := newTestRig()
	r.Nodes = append(r.Nodes,
		&Node{Index: 0, Position: rig.Vec3{X: 0, Y: 0, Z: 0}},
		&Node{Index: 1, Position: rig.Vec3{X: 1, Y: 0, Z: 0}},
	)
	r.numberedNodes[0] = 0
	r.numberedNodes[1] = 1

	// 1 resolves via the registered map, not tolerance.
	idx, ok := r.resolveBeamEnd(numberedId(1), 1, "root", "beams")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	// A reference to node id 5, with only 2 nodes materialized, is
	// tolerated at the identifier layer but still fails the build-time
	// bounds re-check (spec §8 scenario 5's "still unresolved" case).
	_, ok = r.resolveBeamEnd(numberedId(5), 1, "root", "beams")
	assert.False(t, ok)

	for i := 0; i < MaxBeams; i++ {
		bi := r.addBeam(&Beam{NodeA: 0, NodeB: 1})
		require.GreaterOrEqual(t, bi, 0)
	}
	overflowIdx := r.addBeam(&Beam{NodeA: 0, NodeB: 1})
	assert.Equal(t, -1, overflowIdx, "MAX_BEAMS exceeded must drop the new beam rather than grow past capacity")
	assert.Len(t, r.Beams, MaxBeams)
}

// Universal invariant: the 9999 and -1 wheel-rigidity sentinels are
// equivalent, both meaning "no rigidity node" (spec §3 Wheel, parser
// HasRigidity resolution).
func TestWheelRigiditySentinelEquivalence(t *testing.T) {
	for _, sentinel := range []string{"9999", "-1"} {
		text := `
Rigidity Sentinel Rig

nodes
0, 0, 0, 0
1, 1, 0, 0
2, 0, 0, 1
3, 1, 0, 1

wheels
0.5, 4, 2, 3, ` + sentinel + `, 0, 0, 0, 50, 9000, 500, tracks/wheelface, tracks/wheelband
`
		r, diags := parseAndBuild(t, text)
		require.False(t, diags.HasErrors(), diags.String())
		require.Len(t, r.Wheels, 1)
		assert.False(t, r.Wheels[0].HasRigidity, "sentinel %s must mean no rigidity node", sentinel)
	}
}
