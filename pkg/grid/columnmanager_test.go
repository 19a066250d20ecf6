package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resolvedCols(keys ...string) []ResolvedColumn {
	out := make([]ResolvedColumn, len(keys))
	for i, k := range keys {
		out[i] = ResolvedColumn{Column: Column{Key: k}, Width: 5}
	}
	return out
}

func TestColumnManagerComposeHeaderJoinsCells(t *testing.T) {
	cm := NewColumnManager(fakeFactory{})
	assert.Equal(t, "a b", cm.ComposeHeader(resolvedCols("a", "b")))
}

func TestColumnManagerComposeSummaryNilRowIsEmpty(t *testing.T) {
	cm := NewColumnManager(fakeFactory{})
	assert.Equal(t, "", cm.ComposeSummary(resolvedCols("a"), nil))
}

// TestColumnManagerUpdateRecomposesInPlace is the C6 contract: a column
// change recomposes every cached line against the new resolved list
// without discarding the viewport's row-element cache or bumping the
// query generation (no page re-fetch, no full rebuild).
func TestColumnManagerUpdateRecomposesInPlace(t *testing.T) {
	strategy := &fakeStrategy{present: 10}
	vp := NewViewport(NewScroller(1, 10, 4, 0), strategy, testColumns(), fakeFactory{})
	vp.UpdateVisibleRows(0)
	before := vp.GetVisibleRows()
	gen := vp.Generation()

	cm := NewColumnManager(fakeFactory{})
	cm.Update(resolvedCols("b"), strategy, vp)

	assert.Equal(t, before, vp.GetVisibleRows())
	assert.Equal(t, gen, vp.Generation())
	for _, i := range vp.GetVisibleRows() {
		// fakeFactory renders a data cell as its column key.
		assert.Equal(t, "b", vp.visible[i].Line)
	}
}

func TestColumnManagerUpdateLeavesSkeletonsAsSkeletons(t *testing.T) {
	strategy := &fakeStrategy{present: 2}
	vp := NewViewport(NewScroller(1, 10, 4, 0), strategy, testColumns(), fakeFactory{})
	vp.UpdateVisibleRows(0)

	cm := NewColumnManager(fakeFactory{})
	cm.Update(resolvedCols("b"), strategy, vp)

	assert.True(t, vp.visible[3].Skeleton)
	assert.Equal(t, "skeleton", vp.visible[3].Line)
}
