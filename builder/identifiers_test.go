package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sixy6e/go-rigdef/rig"
)

func numberedId(n int) rig.NodeId { return rig.NodeId{IsNumbered: true, Num: n} }
func namedId(s string) rig.NodeId { return rig.NodeId{Name: s} }

func newTestRig() *Rig {
	diags := &rig.Diagnostics{}
	return newRig(diags, DefaultSinks())
}

func TestResolveStrictNumberedFound(t *testing.T) {
	r := newTestRig()
	r.numberedNodes[5] = 2
	idx, ok := r.resolveStrict(numberedId(5), 1, "root", "beams")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestResolveStrictUnresolvedIsError(t *testing.T) {
	r := newTestRig()
	_, ok := r.resolveStrict(numberedId(9), 1, "root", "beams")
	assert.False(t, ok)
	assert.True(t, r.diags.HasErrors())
}

func TestResolveTolerantFallsBackToNumber(t *testing.T) {
	r := newTestRig()
	idx, ok := r.resolveTolerant(numberedId(42), 1, "root", "beams")
	require.True(t, ok)
	assert.Equal(t, 42, idx, "legacy tolerance resolves an absent numeric id to the number itself")

	var found bool
	for _, d := range *r.diags {
		if d.Severity == rig.WARNING {
			found = true
		}
	}
	assert.True(t, found, "tolerant fallback must emit a WARNING, not silently succeed")
}

func TestResolveTolerantNamedStillStrict(t *testing.T) {
	r := newTestRig()
	_, ok := r.resolveTolerant(namedId("missing"), 1, "root", "beams")
	assert.False(t, ok, "named ids never get numeric-fallback tolerance")
}

func TestExpandRangeSwapsReversedBounds(t *testing.T) {
	r := newTestRig()
	for i := 0; i <= 5; i++ {
		r.numberedNodes[i] = i
	}
	got := r.expandRange(rig.NodeRange{Start: numberedId(3), End: numberedId(1)}, 1, "root", "flexbodies")
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestExpandRangeSingle(t *testing.T) {
	r := newTestRig()
	r.numberedNodes[7] = 3
	got := r.expandRange(rig.NodeRange{Start: numberedId(7), Single: true}, 1, "root", "flexbodies")
	assert.Equal(t, []int{3}, got)
}
