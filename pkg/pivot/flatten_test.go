package pivot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomgrid/gridcore/pkg/grid"
)

func deptRegionData() []grid.Row {
	return []grid.Row{
		{"dept": "N", "region": "X", "salary": 10.0},
		{"dept": "N", "region": "Y", "salary": 20.0},
		{"dept": "S", "region": "X", "salary": 30.0},
	}
}

func deptRegionConfig() Config {
	return Config{
		RowGroups:     []string{"dept", "region"},
		ValueFields:   []ValueField{{Key: "salary", Aggregation: AggSum}},
		ShowSubtotals: true,
	}
}

// TestFlattenProducesSubtotalsAndGrandTotalInOrder traces the exact
// flattened row order for a two-level group-by with subtotals: each
// group's children, then its own subtotal, then the final grand total.
func TestFlattenProducesSubtotalsAndGrandTotalInOrder(t *testing.T) {
	root := BuildTree(deptRegionData(), deptRegionConfig())
	rows := Flatten(root, true)

	require.Len(t, rows, 8)

	expectTypes := []RowType{
		RowNormal, RowNormal, RowNormal, RowSubtotal,
		RowNormal, RowNormal, RowSubtotal,
		RowGrandTotal,
	}
	for i, want := range expectTypes {
		assert.Equalf(t, want, rows[i].Type, "row %d", i)
	}

	assert.Equal(t, "N", rows[0].GroupValue)
	assert.Equal(t, "X", rows[1].GroupValue)
	assert.Equal(t, "Y", rows[2].GroupValue)
	assert.Equal(t, 30.0, rows[3].Data["salary"]) // N subtotal
	assert.Equal(t, "S", rows[4].GroupValue)
	assert.Equal(t, "X", rows[5].GroupValue)
	assert.Equal(t, 30.0, rows[6].Data["salary"]) // S subtotal
	assert.Equal(t, 60.0, rows[7].Data["salary"]) // grand total
}

func TestFlattenWithoutSubtotalsOmitsThem(t *testing.T) {
	root := BuildTree(deptRegionData(), Config{
		RowGroups:   []string{"dept", "region"},
		ValueFields: []ValueField{{Key: "salary", Aggregation: AggSum}},
	})
	rows := Flatten(root, false)
	for _, r := range rows {
		assert.NotEqual(t, RowSubtotal, r.Type)
	}
	assert.Equal(t, RowGrandTotal, rows[len(rows)-1].Type)
}

func TestFlattenCollapsedGroupHidesChildren(t *testing.T) {
	root := BuildTree(deptRegionData(), deptRegionConfig())
	ok := ToggleNode(root, root.Children[0].ID) // collapse "N"
	require.True(t, ok)

	rows := Flatten(root, true)
	// "N" group row remains, but its two children and its own subtotal
	// (which requires descending into it) are gone.
	var sawYRegion bool
	for _, r := range rows {
		if r.GroupValue == "Y" {
			sawYRegion = true
		}
	}
	assert.False(t, sawYRegion)
}

func TestToggleNodeNotFoundReturnsFalse(t *testing.T) {
	root := BuildTree(deptRegionData(), deptRegionConfig())
	assert.False(t, ToggleNode(root, "does-not-exist"))
}

func TestAggregateRowSumCountAvgMinMax(t *testing.T) {
	rows := []grid.Row{{"v": 10.0}, {"v": 20.0}, {"v": 30.0}}
	fields := []ValueField{
		{Key: "v", Aggregation: AggSum},
	}
	agg := aggregateRow(rows, fields)
	assert.Equal(t, 60.0, agg["v"])

	countAgg := aggregateRow(rows, []ValueField{{Key: "v", Aggregation: AggCount}})
	assert.Equal(t, 3, countAgg["v"])

	avgAgg := aggregateRow(rows, []ValueField{{Key: "v", Aggregation: AggAvg}})
	assert.Equal(t, 20.0, avgAgg["v"])

	minAgg := aggregateRow(rows, []ValueField{{Key: "v", Aggregation: AggMin}})
	assert.Equal(t, 10.0, minAgg["v"])

	maxAgg := aggregateRow(rows, []ValueField{{Key: "v", Aggregation: AggMax}})
	assert.Equal(t, 30.0, maxAgg["v"])
}

func TestStickyGroupFindsNearestAncestor(t *testing.T) {
	root := BuildTree(deptRegionData(), deptRegionConfig())
	rows := Flatten(root, true)
	// rows[2] is "N/Y"; the nearest normal row above index 2 scanning
	// backward is rows[1] ("N/X").
	sticky, ok := StickyGroup(rows, 2)
	require.True(t, ok)
	assert.Equal(t, "X", sticky.GroupValue)
}

func TestStickyGroupAtTopHasNoOverlay(t *testing.T) {
	root := BuildTree(deptRegionData(), deptRegionConfig())
	rows := Flatten(root, true)
	_, ok := StickyGroup(rows, 0)
	assert.False(t, ok)
}

func TestBreadcrumbOutermostFirst(t *testing.T) {
	root := BuildTree(deptRegionData(), deptRegionConfig())
	rows := Flatten(root, true)
	// index 2 is "N/Y": its only enclosing group is N, so the chain
	// starts with N (the sibling "N/X" above it is not an ancestor).
	chain := Breadcrumb(rows, 2)
	require.NotEmpty(t, chain)
	assert.Equal(t, "N", chain[0].GroupValue)
}
