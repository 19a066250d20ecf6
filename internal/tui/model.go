// Package tui wires pkg/grid, pkg/pivot, and pkg/grid/cellrender into an
// interactive bubbletea program: the concrete Lifecycle/Orchestrator
// host and the concrete Interaction Binders for a terminal.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/loomgrid/gridcore/pkg/grid"
	"github.com/loomgrid/gridcore/pkg/grid/cellrender"
	"github.com/loomgrid/gridcore/pkg/grid/gridlog"
	"github.com/loomgrid/gridcore/pkg/pivot"
)

// pageRequest is one "fetch this page" ask raised synchronously by the
// Viewport's OnPageSettled hook while a key/tick handler is running; the
// Update loop drains it into a tea.Cmd after the handler returns so the
// fetch runs off the event loop.
type pageRequest struct {
	rowIndex, generation int
}

const frameInterval = 16 * time.Millisecond

// StatusMsg surfaces a transient, auto-clearing banner.
type StatusMsg string

type clearStatusMsg struct{}

type tickMsg time.Time

type pageSettledMsg struct {
	rowIndex, generation int
}

type tableReadyMsg struct{}

type tableErrMsg struct{ err error }

type queryAppliedMsg struct{ label string }

// scrollHost adapts the model's own scroll position to grid.ScrollHost.
type scrollHost struct {
	m *Model
}

func (h scrollHost) ScrollTop() int        { return h.m.scrollTop }
func (h scrollHost) ResetScroll()          { h.m.scrollTop = 0 }
func (h scrollHost) SetSpacerHeight(n int) { h.m.spacerHeight = n }

// Model is gridcore's bubbletea program: the concrete host for a
// *grid.Table plus an optional pivot overlay.
type Model struct {
	table  *grid.Table
	cfg    grid.Config
	logger *gridlog.Writer

	width, height   int
	scrollTop       int
	spacerHeight    int
	ready           bool
	pendingPages    []pageRequest
	fetchesInFlight int
	pageSpinner     spinner.Model

	search *SearchBar

	// bodyViewport paints whatever grid.Viewport (or the pivot renderer)
	// has already windowed. gridcore's own virtualization decides which
	// rows exist at all, so bodyViewport never scrolls on its own: it is
	// sized to exactly the content it is handed and repainted in place.
	bodyViewport viewport.Model

	pivotMode bool
	pivotCfg  pivot.Config
	pivotRoot *pivot.Node
	pivotRows []pivot.FlatRow
	pivotTop  int

	statusMsg   string
	statusTimer *time.Timer
	pageInfo    *grid.PageChangeInfo

	sortCursor int
	err        error
}

// New constructs a Model from a grid.Config. The Host and OnPageNeeded
// fields of cfg are overwritten with the model's own wiring, since the
// terminal host (this package) is the only legitimate ScrollHost and the
// only place page-fetch tea.Cmds can be issued from.
func New(cfg grid.Config, pivotCfg pivot.Config) (*Model, error) {
	if cfg.Factory == nil {
		cfg.Factory = cellrender.New()
	}
	logger := gridlog.Default()
	if cfg.Logger == nil {
		cfg.Logger = logger
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := &Model{cfg: cfg, logger: logger, pivotCfg: pivotCfg, search: NewSearchBar(), bodyViewport: viewport.New(0, 0), pageSpinner: sp}
	cfg.Host = scrollHost{m: m}
	cfg.OnPageNeeded = func(rowIndex, generation int) {
		m.pendingPages = append(m.pendingPages, pageRequest{rowIndex: rowIndex, generation: generation})
	}
	cfg.OnPageChange = func(info grid.PageChangeInfo) {
		m.pageInfo = &info
	}

	table, err := grid.NewTable(cfg)
	if err != nil {
		return nil, err
	}
	m.table = table
	m.cfg = cfg
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startTable, m.scheduleTick())
}

func (m *Model) startTable() tea.Msg {
	if err := m.table.Start(); err != nil {
		return tableErrMsg{err: err}
	}
	return tableReadyMsg{}
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// resolvedColumns recomputes the current resolved column list against the
// table's live column state. Table itself doesn't expose this; it only
// ever needs it internally, so the host recomputes it the same way.
func (m *Model) resolvedColumns() []grid.ResolvedColumn {
	cols, err := grid.ResolveColumns(m.cfg.Columns, m.table.GetState().Columns)
	if err != nil {
		m.logger.Errorf("tui: resolve columns: %v", err)
		return nil
	}
	return cols
}

// bodyHeight is the number of data rows visible below the header (and
// summary, if shown).
func (m *Model) bodyHeight() int {
	h := m.height - 1 // header
	if m.cfg.ShowSummary {
		h--
	}
	h -= 3 // status/search/help lines
	if h < 1 {
		h = 1
	}
	return h
}

// drainPageCmds turns any page requests the Viewport raised during the
// last handler into tea.Cmds, so the Update loop can batch them onto its
// return value without the grid package ever knowing about tea.Cmd.
func (m *Model) drainPageCmds() []tea.Cmd {
	if len(m.pendingPages) == 0 {
		return nil
	}
	reqs := m.pendingPages
	m.pendingPages = nil
	wasIdle := m.fetchesInFlight == 0
	m.fetchesInFlight += len(reqs)
	cmds := make([]tea.Cmd, len(reqs), len(reqs)+1)
	for i, req := range reqs {
		req := req
		cmds[i] = func() tea.Msg {
			if err := m.table.EnsurePageForRow(req.rowIndex); err != nil {
				m.logger.Warnf("tui: ensure page for row %d: %v", req.rowIndex, err)
			}
			return pageSettledMsg{rowIndex: req.rowIndex, generation: req.generation}
		}
	}
	if wasIdle && len(reqs) > 0 {
		cmds = append(cmds, m.pageSpinner.Tick)
	}
	return cmds
}

// fetching reports whether a page request is currently in flight, for the
// header spinner.
func (m *Model) fetching() bool {
	return m.fetchesInFlight > 0
}

// setStatus shows a transient banner, clearing any prior timer so the
// replacement status gets the full display window.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	if m.statusTimer != nil {
		m.statusTimer.Stop()
	}
	m.statusTimer = time.NewTimer(3 * time.Second)
	return func() tea.Msg {
		<-m.statusTimer.C
		return clearStatusMsg{}
	}
}
