package grid

import (
	"fmt"

	"github.com/loomgrid/gridcore/pkg/grid/datastrategy"
	"github.com/loomgrid/gridcore/pkg/grid/persist"
)

// Config is the constructor config for a Table: every recognized option
// from the public API, minus the browser-only container/sizing concepts
// that a terminal host supplies instead (internal/tui passes its own
// viewport dimensions to NewTable).
type Config struct {
	TableWidth, TableHeight int
	RowHeight               int
	BufferRows              int
	Columns                 []Column
	FrozenColumns           int
	ShowSummary             bool

	PageSize       int
	MaxCachedPages int

	InitialData        []Row
	FetchPage          datastrategy.FetchPageFunc
	FetchSummary       func(q Query) (Row, error)
	FetchFilterOptions func(key string) []string

	TableID string

	Factory ElementFactory
	Host    ScrollHost
	Logger  Logger

	SidePanel *SidePanelConfig

	OnModeChange func(Mode)

	// OnPageChange fires when the page containing the first visible row
	// changes during scrolling (server-mode paging feedback). Requires a
	// positive PageSize.
	OnPageChange func(PageChangeInfo)

	// OnPageNeeded fires whenever the Viewport turns a row into a
	// skeleton for lack of a cached page. The host is expected to run
	// EnsurePageForRow(rowIndex) inside its own tea.Cmd and call
	// SettlePage with the same generation once it resolves.
	OnPageNeeded func(rowIndex, generation int)
}

// Table is C9, the Lifecycle/Orchestrator: the public handle returned to
// a host. Construction is two-phase: NewTable validates synchronously and
// returns immediately with a placeholder Scroller and a closed-over
// "ready" flag; Start runs the (potentially blocking, for PagedRemote)
// bootstrap and wires the rest of the engine together. Actions dispatched
// before Start completes are queued and replayed in order once ready.
type Table struct {
	cfg      Config
	store    *Store
	strategy datastrategy.Strategy
	scroller Scroller
	viewport *Viewport
	cm       *ColumnManager
	qc       *QueryCoordinator
	router   *Router
	mode     Mode

	ready     bool
	pending   []Action
	persisted *persist.Store

	lastPage         int
	sidePanelVisible bool
	activePanel      string
}

// SidePanelConfig declares the optional side panel: which named panels
// exist and whether the feature is on at all. The panel's rendering is
// the host's concern; the engine only validates and tracks state.
type SidePanelConfig struct {
	Enabled bool
	Panels  []string
}

// PageChangeInfo describes which page the viewport has scrolled into.
type PageChangeInfo struct {
	PageIndex int
	PageCount int
}

// NewTable validates cfg and constructs a Table in its pre-ready state.
// Configuration errors are returned immediately, matching the "fatal,
// surface on construction" taxonomy for duplicate keys, an empty column
// list, or neither InitialData nor FetchPage supplied.
func NewTable(cfg Config) (*Table, error) {
	if len(cfg.Columns) == 0 {
		return nil, ConfigError{Reason: "columns must not be empty"}
	}
	if cfg.InitialData == nil && cfg.FetchPage == nil {
		return nil, ConfigError{Reason: "either InitialData or FetchPage is required"}
	}
	if _, err := ResolveColumns(cfg.Columns, ColumnsState{}); err != nil {
		return nil, err
	}
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = 1
	}
	if cfg.Factory == nil {
		return nil, ConfigError{Reason: "a cell renderer (ElementFactory) is required"}
	}
	if cfg.Host == nil {
		return nil, ConfigError{Reason: "a ScrollHost is required"}
	}
	if sp := cfg.SidePanel; sp != nil && sp.Enabled {
		if len(sp.Panels) == 0 {
			return nil, ConfigError{Reason: "side panel enabled with no panels"}
		}
		seen := make(map[string]bool, len(sp.Panels))
		for _, id := range sp.Panels {
			if id == "" || seen[id] {
				return nil, ConfigError{Reason: fmt.Sprintf("invalid side panel id %q", id)}
			}
			seen[id] = true
		}
	}

	var persisted *persist.Store
	var persistedOrder []string
	var persistedWidths map[string]int
	if cfg.TableID != "" {
		if p, err := persist.NewStore(); err == nil {
			persisted = p
			persistedOrder = p.LoadOrder(cfg.TableID)
			persistedWidths = p.LoadWidths(cfg.TableID)
		} else if cfg.Logger != nil {
			cfg.Logger.Warnf("grid: persistence unavailable, starting without saved state: %v", err)
		}
	}

	initial := NewInitialState(cfg.Columns, persistedOrder, persistedWidths, cfg.FrozenColumns)
	store := NewStore(initial)

	t := &Table{
		cfg:       cfg,
		store:     store,
		scroller:  NewScroller(cfg.RowHeight, 0, cfg.TableHeight, cfg.BufferRows),
		persisted: persisted,
		lastPage:  -1,
	}

	return t, nil
}

// Start performs the async half of initialization: the Bootstrap Policy
// (whose first-page probe and strategy.Bootstrap may block on a remote
// fetch, so the host is expected to run Start inside a tea.Cmd), the
// construction of the Viewport/Column Manager/Query Coordinator/Router
// around the chosen strategy, and replay of anything dispatched before
// readiness.
func (t *Table) Start() error {
	cfg := t.cfg

	policy := BootstrapPolicy{
		Columns:        cfg.Columns,
		Data:           cfg.InitialData,
		FetchPage:      cfg.FetchPage,
		PageSize:       cfg.PageSize,
		MaxCachedPages: cfg.MaxCachedPages,
	}
	strategy, mode, err := policy.Resolve()
	if err != nil {
		return err
	}
	if pr, ok := strategy.(*datastrategy.PagedRemote); ok {
		if cfg.FetchSummary != nil {
			pr.WithSummaryFetcher(func(q Query) (Row, error) { return cfg.FetchSummary(q) })
		}
		if cfg.FetchFilterOptions != nil {
			pr.WithFilterOptionsFetcher(cfg.FetchFilterOptions)
		}
	}
	t.strategy = strategy
	t.mode = mode

	t.cm = NewColumnManager(cfg.Factory)
	t.viewport = NewViewport(t.scroller, strategy, func() []ResolvedColumn {
		r, _ := ResolveColumns(cfg.Columns, t.store.State().Columns)
		return r
	}, cfg.Factory)

	if cfg.OnPageNeeded != nil {
		t.viewport.OnPageSettled(cfg.OnPageNeeded)
	}

	t.qc = NewQueryCoordinator(t.store, strategy, t.viewport, cfg.Host, cfg.RowHeight, cfg.TableHeight, cfg.BufferRows, cfg.ShowSummary)

	t.router = NewRouter(RouterConfig{
		Original:         cfg.Columns,
		Store:            t.store,
		QueryCoordinator: t.qc,
		ColumnManager:    t.cm,
		Viewport:         t.viewport,
		Strategy:         strategy,
		Persistence:      t.persisted,
		TableID:          cfg.TableID,
		Logger:           cfg.Logger,
	})

	totalRows, err := strategy.Bootstrap()
	if err != nil {
		return err
	}
	t.store.Dispatch(SetModeAction{Mode: mode})
	t.store.Dispatch(SetTotalRowsAction{TotalRows: totalRows})
	t.scroller = NewScroller(cfg.RowHeight, totalRows, cfg.TableHeight, cfg.BufferRows)
	t.viewport.SetScroller(t.scroller)
	t.viewport.Refresh(0)

	if cfg.OnModeChange != nil {
		cfg.OnModeChange(mode)
	}

	t.ready = true
	pending := t.pending
	t.pending = nil
	for _, a := range pending {
		t.store.Dispatch(a)
	}
	return nil
}

// Ready reports whether Start has completed.
func (t *Table) Ready() bool {
	return t.ready
}

// Dispatch enqueues action if the table is not yet ready, otherwise
// applies it immediately.
func (t *Table) Dispatch(action Action) {
	if !t.ready {
		t.pending = append(t.pending, action)
		return
	}
	t.store.Dispatch(action)
}

// GetState returns the current state snapshot.
func (t *Table) GetState() State {
	return t.store.State()
}

// Sort is a convenience wrapper around Dispatch for SORT_SET/SORT_CLEAR.
func (t *Table) Sort(key string, dir Direction) {
	if key == "" {
		t.Dispatch(SortClearAction{})
		return
	}
	t.Dispatch(SortSetAction{Key: key, Direction: dir})
}

// Filter is a convenience wrapper around Dispatch for SET_FILTER_TEXT.
func (t *Table) Filter(text string) {
	t.Dispatch(SetFilterTextAction{Text: text})
}

// Viewport exposes the Viewport for the host to read composed lines from.
func (t *Table) Viewport() *Viewport {
	return t.viewport
}

// UpdateVisibleRows forwards a scroll position to the Viewport and fires
// the OnPageChange callback when the page under the first visible row
// moved. Hosts drive scrolling through this instead of the Viewport
// directly so paging feedback stays wired.
func (t *Table) UpdateVisibleRows(scrollTop int) {
	t.viewport.UpdateVisibleRows(scrollTop)
	t.notifyPageChange()
}

func (t *Table) notifyPageChange() {
	if t.cfg.OnPageChange == nil || t.cfg.PageSize <= 0 {
		return
	}
	start, _ := t.viewport.Window()
	page := start / t.cfg.PageSize
	if page == t.lastPage {
		return
	}
	t.lastPage = page
	total := t.store.State().Data.TotalRows
	count := (total + t.cfg.PageSize - 1) / t.cfg.PageSize
	t.cfg.OnPageChange(PageChangeInfo{PageIndex: page, PageCount: count})
}

// FilterOptions returns the distinct stringified values of a column, for
// column-filter UX.
func (t *Table) FilterOptions(key string) []string {
	return t.strategy.GetFilterOptions(key)
}

// ShowPanel makes the named side panel active and visible. It errors when
// the side panel feature is disabled or the id is not a configured panel.
func (t *Table) ShowPanel(id string) error {
	sp := t.cfg.SidePanel
	if sp == nil || !sp.Enabled {
		return fmt.Errorf("grid: side panel is not enabled")
	}
	for _, known := range sp.Panels {
		if known == id {
			t.activePanel = id
			t.sidePanelVisible = true
			return nil
		}
	}
	return fmt.Errorf("grid: unknown side panel %q", id)
}

// ToggleSidePanel flips the side panel's visibility, or forces it to show
// when passed explicitly. A table without an enabled side panel ignores
// the call.
func (t *Table) ToggleSidePanel(show ...bool) {
	sp := t.cfg.SidePanel
	if sp == nil || !sp.Enabled {
		return
	}
	if len(show) > 0 {
		t.sidePanelVisible = show[0]
	} else {
		t.sidePanelVisible = !t.sidePanelVisible
	}
	if t.sidePanelVisible && t.activePanel == "" {
		t.activePanel = sp.Panels[0]
	}
}

// SidePanelVisible reports whether the side panel is currently shown.
func (t *Table) SidePanelVisible() bool {
	return t.sidePanelVisible
}

// ActivePanel returns the id of the currently active side panel, or ""
// when none has been shown yet.
func (t *Table) ActivePanel() string {
	return t.activePanel
}

// EnsurePageForRow asks the Data Strategy to load the page containing
// rowIndex, blocking until it resolves. The host runs this inside its own
// tea.Cmd so the fetch never blocks the event loop.
func (t *Table) EnsurePageForRow(rowIndex int) error {
	return t.strategy.EnsurePageForRow(rowIndex)
}

// SettlePage tells the Viewport a page fetch for rowIndex has completed,
// at the given generation.
func (t *Table) SettlePage(rowIndex, generation int) {
	t.viewport.SettlePage(rowIndex, generation)
}

// ColumnManager exposes the Column Manager for the host's header/summary
// rendering.
func (t *Table) ColumnManager() *ColumnManager {
	return t.cm
}

// Mode reports which Data Strategy variant is active.
func (t *Table) Mode() Mode {
	return t.mode
}

// Summary returns the most recently accepted summary row (latest-wins),
// or nil if summaries are disabled or none has resolved yet.
func (t *Table) Summary() Row {
	return t.qc.LastSummary()
}

// Destroy performs full teardown. gridcore holds no goroutines or open
// files of its own (persistence writes are synchronous), so destroy is
// limited to dropping references so the Table is no longer usable.
func (t *Table) Destroy() {
	t.store = nil
	t.strategy = nil
	t.viewport = nil
	t.cm = nil
	t.qc = nil
	t.router = nil
	t.pending = nil
}
