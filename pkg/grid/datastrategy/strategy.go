// Package datastrategy implements C4: a uniform data-source contract with
// two variants, in-memory (InMemory) and paged-remote (PagedRemote). The
// Action Router and Query Coordinator depend only on the Strategy
// interface; they never know which variant backs a given table.
package datastrategy

import "github.com/loomgrid/gridcore/pkg/models"

// Strategy is the capability set every data source implements.
type Strategy interface {
	// Bootstrap performs whatever one-time setup is needed (for
	// PagedRemote, the first page fetch) and reports the initial total
	// row count.
	Bootstrap() (totalRows int, err error)

	// GetRow is synchronous and cheap: it must never block on I/O.
	GetRow(rowIndex int) (models.Row, bool)

	// EnsurePageForRow is idempotent: concurrent calls for the same row
	// (and hence the same page) collapse into a single underlying fetch.
	// It blocks the calling goroutine until the page is resident; the
	// caller (internal/tui) is expected to run it inside a tea.Cmd so it
	// does not block the bubbletea event loop.
	EnsurePageForRow(rowIndex int) error

	// ApplyQuery re-derives the strategy's view for a new sort/filter
	// query and reports the new filtered total and whether the scroll
	// position must reset.
	ApplyQuery(q models.Query) (totalRows int, shouldResetScroll bool, err error)

	// GetSummary computes one aggregated row over the current (or
	// explicitly supplied) query. A nil query means "the strategy's
	// current query".
	GetSummary(q *models.Query) (models.Row, error)

	GetTotalRows() int

	// GetFilterOptions returns the distinct stringified values of a
	// column, for column-filter UX (e.g. a checkbox list of set values).
	GetFilterOptions(key string) []string
}

// FetchPageFunc is the injected remote page loader PagedRemote calls. It
// mirrors the constructor config's fetchPage(pageIndex, query).
type FetchPageFunc func(pageIndex int, q models.Query) (models.PageResponse, error)
