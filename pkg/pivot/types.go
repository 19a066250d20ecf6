// Package pivot implements the Pivot Engine: group tree construction,
// aggregation, explicit-stack flattening with subtotal/grand-total
// synthesis, and the sticky-group/breadcrumb overlay helpers a terminal
// host needs to render it.
package pivot

import "github.com/loomgrid/gridcore/pkg/grid"

// Aggregation selects how a ValueField is aggregated within a group.
type Aggregation string

const (
	AggSum   Aggregation = "sum"
	AggAvg   Aggregation = "avg"
	AggCount Aggregation = "count"
	AggMin   Aggregation = "min"
	AggMax   Aggregation = "max"
)

// ValueField names a column to aggregate and how.
type ValueField struct {
	Key         string
	Aggregation Aggregation
}

// Config describes a pivot view over a dataset.
type Config struct {
	RowGroups     []string // 1..5 keys, outermost first
	ValueFields   []ValueField
	ShowSubtotals bool
}

// RowType tags a flattened pivot row.
type RowType string

const (
	RowNormal     RowType = "normal"
	RowSubtotal   RowType = "subtotal"
	RowGrandTotal RowType = "grandtotal"
)

// FlatRow is one row of a flattened pivot tree, the unit a virtualized
// pivot viewport renders.
type FlatRow struct {
	NodeID     string
	Type       RowType
	Level      int
	GroupKey   string
	GroupValue string
	Data       grid.Row
	IsExpanded bool
}
