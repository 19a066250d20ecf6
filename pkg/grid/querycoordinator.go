package grid

import "github.com/loomgrid/gridcore/pkg/grid/datastrategy"

// ScrollHost is the minimal surface the Query Coordinator needs from
// whatever owns the physical scroll position (internal/tui's bubbletea
// model, or a test double).
type ScrollHost interface {
	ScrollTop() int
	ResetScroll()
	SetSpacerHeight(height int)
}

// QueryCoordinator is C8: translates a state-level query into a Data
// Strategy call and reconciles the Scroller/Viewport afterward.
type QueryCoordinator struct {
	store      *Store
	strategy   datastrategy.Strategy
	viewport   *Viewport
	host       ScrollHost
	rowHeight  int
	vpHeight   int
	bufferRows int

	showSummary    bool
	summarySeq     int
	lastSummary    Row
	onSummaryReady func(Row)
}

// NewQueryCoordinator wires the collaborators the coordinator drives.
func NewQueryCoordinator(store *Store, strategy datastrategy.Strategy, viewport *Viewport, host ScrollHost, rowHeight, vpHeight, bufferRows int, showSummary bool) *QueryCoordinator {
	return &QueryCoordinator{
		store:       store,
		strategy:    strategy,
		viewport:    viewport,
		host:        host,
		rowHeight:   rowHeight,
		vpHeight:    vpHeight,
		bufferRows:  bufferRows,
		showSummary: showSummary,
	}
}

// OnSummaryReady registers a callback invoked with the latest-wins summary
// row once GetSummary resolves.
func (qc *QueryCoordinator) OnSummaryReady(fn func(Row)) {
	qc.onSummaryReady = fn
}

// ApplyQuery resets scroll, re-runs the strategy against the new query,
// reconciles the scroller/viewport if the row count changed, and
// refreshes the summary. It is synchronous here because Strategy's
// blocking calls are expected to run inside a host-supplied tea.Cmd; the
// in-process test path (InMemory) returns immediately.
func (qc *QueryCoordinator) ApplyQuery(q Query) error {
	qc.host.ResetScroll()

	totalRows, _, err := qc.strategy.ApplyQuery(q)
	if err != nil {
		return err
	}

	prevTotal := qc.store.State().Data.TotalRows
	if totalRows != prevTotal {
		qc.store.Dispatch(SetTotalRowsAction{TotalRows: totalRows})
		scroller := NewScroller(qc.rowHeight, totalRows, qc.vpHeight, qc.bufferRows)
		qc.viewport.SetScroller(scroller)
		qc.host.SetSpacerHeight(scroller.ScrollHeight())
	}

	qc.viewport.Refresh(qc.host.ScrollTop())

	if qc.showSummary {
		qc.refreshSummary(q)
	}

	return nil
}

// refreshSummary tags each summary request with a monotonic sequence
// number; a response whose sequence has since been superseded is dropped
// on arrival (latest-wins).
func (qc *QueryCoordinator) refreshSummary(q Query) {
	qc.summarySeq++
	seq := qc.summarySeq
	summary, err := qc.strategy.GetSummary(&q)
	if err != nil {
		return
	}
	if seq != qc.summarySeq {
		return // superseded by a newer query while this one was in flight
	}
	qc.lastSummary = summary
	if qc.onSummaryReady != nil {
		qc.onSummaryReady(summary)
	}
}

// LastSummary returns the most recently accepted summary row, or nil.
func (qc *QueryCoordinator) LastSummary() Row {
	return qc.lastSummary
}
