// Package grid implements the core of a virtualized, sortable, filterable
// data-grid engine. The package is host-agnostic: it never touches a
// terminal or a browser DOM directly. internal/tui supplies the concrete
// rendering host; pkg/grid only produces composed line strings and window
// bookkeeping for that host to paint.
package grid

import (
	"fmt"

	"github.com/loomgrid/gridcore/pkg/models"
)

// The data model lives in pkg/models so the data-strategy package can
// share it without importing the engine. grid re-exports it so hosts and
// callers work against a single package.
type (
	Row               = models.Row
	DataType          = models.DataType
	SummaryType       = models.SummaryType
	CellRenderer      = models.CellRenderer
	Column            = models.Column
	Direction         = models.Direction
	Sort              = models.Sort
	Query             = models.Query
	ColumnFilter      = models.ColumnFilter
	SetFilter         = models.SetFilter
	TextFilter        = models.TextFilter
	DateRangeFilter   = models.DateRangeFilter
	NumberRangeFilter = models.NumberRangeFilter
	PageResponse      = models.PageResponse
)

const (
	DataTypeString  = models.DataTypeString
	DataTypeNumber  = models.DataTypeNumber
	DataTypeDate    = models.DataTypeDate
	DataTypeBoolean = models.DataTypeBoolean

	SummaryNone  = models.SummaryNone
	SummarySum   = models.SummarySum
	SummaryAvg   = models.SummaryAvg
	SummaryCount = models.SummaryCount
	SummaryMax   = models.SummaryMax
	SummaryMin   = models.SummaryMin

	Asc  = models.Asc
	Desc = models.Desc
)

// ResolvedColumn augments a Column with the definitive width and freeze
// status computed by ResolveColumns.
type ResolvedColumn struct {
	Column
	Width      int
	IsFrozen   bool
	LeftOffset int // cumulative left offset among frozen columns, in columns left of this one
}

// Mode records which Data Strategy variant backs the table. Immutable after
// bootstrap.
type Mode string

const (
	ModeClient Mode = "client"
	ModeServer Mode = "server"
)

// DuplicateKeyError is raised when two columns share a key.
type DuplicateKeyError struct {
	Key string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("grid: duplicate column key %q", e.Key)
}

// ConfigError marks a fatal configuration problem, surfaced on construction.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return "grid: configuration error: " + e.Reason
}
