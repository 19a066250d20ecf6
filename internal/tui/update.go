package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/loomgrid/gridcore/pkg/grid"
	"github.com/loomgrid/gridcore/pkg/pivot"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.SetWidth(msg.Width)
		if m.ready {
			m.table.Dispatch(grid.TableResizeAction{Width: msg.Width})
			m.refreshViewport()
		}
		return m, nil

	case tableReadyMsg:
		m.ready = true
		m.refreshViewport()
		return m, tea.Batch(m.drainPageCmds()...)

	case tableErrMsg:
		m.err = msg.err
		return m, m.setStatus("error: " + msg.err.Error())

	case pageSettledMsg:
		m.table.SettlePage(msg.rowIndex, msg.generation)
		if m.fetchesInFlight > 0 {
			m.fetchesInFlight--
		}
		return m, nil

	case queryAppliedMsg:
		cmds := m.drainPageCmds()
		cmds = append(cmds, m.setStatus(msg.label))
		return m, tea.Batch(cmds...)

	case tickMsg:
		return m, m.scheduleTick()

	case spinner.TickMsg:
		if !m.fetching() {
			return m, nil
		}
		var cmd tea.Cmd
		m.pageSpinner, cmd = m.pageSpinner.Update(msg)
		return m, cmd

	case StatusMsg:
		return m, m.setStatus(string(msg))

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Active() {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		m.search.SetActive(true)
		return m, nil

	case "p":
		m.togglePivot()
		return m, nil

	case "s":
		m.table.ToggleSidePanel()
		return m, nil

	case "up", "k":
		m.scrollBy(-1)
		return m, tea.Batch(m.drainPageCmds()...)

	case "down", "j":
		m.scrollBy(1)
		return m, tea.Batch(m.drainPageCmds()...)

	case "pgup":
		m.scrollBy(-m.bodyHeight())
		return m, tea.Batch(m.drainPageCmds()...)

	case "pgdown":
		m.scrollBy(m.bodyHeight())
		return m, tea.Batch(m.drainPageCmds()...)

	case "home":
		m.scrollTo(0)
		return m, tea.Batch(m.drainPageCmds()...)

	case "end":
		m.scrollTo(m.maxScroll())
		return m, tea.Batch(m.drainPageCmds()...)

	case "tab":
		return m, m.cycleSort(1)

	case "shift+tab":
		return m, m.cycleSort(-1)

	case "x":
		m.table.Sort("", grid.Asc)
		return m, m.setStatus("sort cleared")

	case "<":
		m.resizeActiveColumn(-1)
		return m, nil

	case ">":
		m.resizeActiveColumn(1)
		return m, nil

	case "[":
		m.moveActiveColumn(-1)
		return m, nil

	case "]":
		m.moveActiveColumn(1)
		return m, nil

	case "enter":
		if m.pivotMode {
			m.toggleTopPivotGroup()
		}
		return m, nil
	}

	if key := msg.String(); m.table.SidePanelVisible() && len(key) == 1 && key >= "1" && key <= "9" {
		m.toggleColumnVisibility(int(key[0] - '1'))
	}
	return m, nil
}

// resizeActiveColumn grows or shrinks the column under the sort cursor by
// delta terminal columns, the keyboard stand-in for a resize drag.
func (m *Model) resizeActiveColumn(delta int) {
	if len(m.cfg.Columns) == 0 {
		return
	}
	key := m.cfg.Columns[m.sortCursor].Key
	for _, rc := range m.resolvedColumns() {
		if rc.Key == key {
			m.table.Dispatch(grid.ColumnResizeAction{Key: key, Width: rc.Width + delta})
			return
		}
	}
}

// moveActiveColumn shifts the column under the sort cursor one position
// left or right in the current order, the keyboard stand-in for a reorder
// drag.
func (m *Model) moveActiveColumn(dir int) {
	if len(m.cfg.Columns) == 0 {
		return
	}
	key := m.cfg.Columns[m.sortCursor].Key
	order := append([]string(nil), m.table.GetState().Columns.Order...)
	for i, k := range order {
		if k != key {
			continue
		}
		j := i + dir
		if j < 0 || j >= len(order) {
			return
		}
		order[i], order[j] = order[j], order[i]
		m.table.Dispatch(grid.ColumnOrderSetAction{Keys: order})
		return
	}
}

// toggleColumnVisibility flips the hidden state of the idx-th configured
// column, the side panel's column-menu interaction.
func (m *Model) toggleColumnVisibility(idx int) {
	if idx < 0 || idx >= len(m.cfg.Columns) {
		return
	}
	key := m.cfg.Columns[idx].Key
	if m.table.GetState().Columns.HiddenKeys[key] {
		m.table.Dispatch(grid.ColumnShowAction{Key: key})
	} else {
		m.table.Dispatch(grid.ColumnHideAction{Key: key})
	}
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.search.SetActive(false)
		text := m.search.Value()
		return m, func() tea.Msg {
			m.table.Filter(text)
			return queryAppliedMsg{label: "filter applied"}
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// cycleSort advances the sort column by dir positions through the
// configured column list, toggling ascending/descending when it wraps
// back onto the current key.
func (m *Model) cycleSort(dir int) tea.Cmd {
	cols := m.cfg.Columns
	if len(cols) == 0 {
		return nil
	}
	m.sortCursor = (m.sortCursor + dir + len(cols)) % len(cols)
	key := cols[m.sortCursor].Key

	direction := grid.Asc
	if current := m.table.GetState().Data.Sort; current != nil && current.Key == key && current.Direction == grid.Asc {
		direction = grid.Desc
	}
	return func() tea.Msg {
		m.table.Sort(key, direction)
		return queryAppliedMsg{label: "sorted by " + key}
	}
}

// scrollBy moves scrollTop by delta rows (gated implicitly: there is no
// frame-rate limiter here beyond the tea.Tick-driven redraw cadence,
// since row composition is cheap map lookups, not DOM patching).
func (m *Model) scrollBy(delta int) {
	m.scrollTo(m.scrollTop + delta)
}

func (m *Model) scrollTo(row int) {
	if row < 0 {
		row = 0
	}
	if max := m.maxScroll(); row > max {
		row = max
	}
	if m.pivotMode {
		m.pivotTop = row
		return
	}
	m.scrollTop = row
	m.refreshViewport()
}

func (m *Model) maxScroll() int {
	if m.pivotMode {
		n := len(m.pivotRows) - m.bodyHeight()
		if n < 0 {
			return 0
		}
		return n
	}
	total := m.table.GetState().Data.TotalRows
	n := total - m.bodyHeight()
	if n < 0 {
		return 0
	}
	return n
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.table.UpdateVisibleRows(m.scrollTop)
}

// togglePivot switches between the flat grid view and the pivot overlay.
// The pivot tree is built once, on the first toggle, over cfg.InitialData
// as configured: filters applied in the grid do not narrow it, and later
// toggles reuse the same tree. A table started without InitialData (such
// as one fed only by a paged-remote source) pivots over no rows.
func (m *Model) togglePivot() {
	m.pivotMode = !m.pivotMode
	if !m.pivotMode {
		return
	}
	if m.pivotRoot == nil {
		m.pivotRoot = pivot.BuildTree(m.cfg.InitialData, m.pivotCfg)
	}
	m.pivotRows = pivot.Flatten(m.pivotRoot, m.pivotCfg.ShowSubtotals)
	m.pivotTop = 0
}

// toggleTopPivotGroup toggles the expand state of the first normal group
// row visible at the top of the pivot viewport, so a user can drill in or
// collapse without any persisted row-selection state.
func (m *Model) toggleTopPivotGroup() {
	if m.pivotTop >= len(m.pivotRows) {
		return
	}
	row := m.pivotRows[m.pivotTop]
	if row.Type != pivot.RowNormal {
		return
	}
	pivot.ToggleNode(m.pivotRoot, row.NodeID)
	m.pivotRows = pivot.Flatten(m.pivotRoot, m.pivotCfg.ShowSubtotals)
}
