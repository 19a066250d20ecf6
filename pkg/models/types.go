// Package models holds the data model shared by the grid engine, its
// data-source strategies, and the hosts that embed them: rows, column
// descriptors, queries, and the page envelope remote sources speak. It
// sits below pkg/grid and pkg/grid/datastrategy so both can depend on
// the same types without depending on each other.
package models

// Row is one record of the underlying dataset, keyed by column key.
type Row map[string]any

// DataType describes how a column's values should be interpreted for
// sorting and summary aggregation.
type DataType string

const (
	DataTypeString  DataType = "string"
	DataTypeNumber  DataType = "number"
	DataTypeDate    DataType = "date"
	DataTypeBoolean DataType = "boolean"
)

// SummaryType selects the aggregation applied to a column in the summary
// row.
type SummaryType string

const (
	SummaryNone  SummaryType = "none"
	SummarySum   SummaryType = "sum"
	SummaryAvg   SummaryType = "avg"
	SummaryCount SummaryType = "count"
	SummaryMax   SummaryType = "max"
	SummaryMin   SummaryType = "min"
)

// CellRenderer renders a single cell of a column, used by custom columns
// that need more than a stringified value. The Element Factory's
// RenderDataCell calls this when set.
type CellRenderer func(col Column, row Row) string

// Column is a user-supplied column descriptor.
type Column struct {
	Key          string
	Title        string
	Width        int // 0 means "unset"; resolved width falls back to this
	MinWidth     int
	Flex         float64
	DataType     DataType
	SummaryType  SummaryType
	CellRenderer CellRenderer
}

// PageResponse is what a remote page loader returns.
type PageResponse struct {
	List      []Row
	TotalRows int
}
