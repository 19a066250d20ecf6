package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/loomgrid/gridcore/pkg/grid"
	"github.com/loomgrid/gridcore/pkg/pivot"
)

var (
	pivotNormalStyle     = lipgloss.NewStyle()
	pivotSubtotalStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	pivotGrandTotalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	stickyOverlayStyle   = lipgloss.NewStyle().Background(lipgloss.Color("235")).Bold(true)
	breadcrumbStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Italic(true)
	statusStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	helpStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View composes the full frame: header, optional summary row, the
// virtualized body (grid.Viewport's composed lines or the pivot overlay),
// a status line, and the filter bar. Layout is driven entirely by what
// pkg/grid and pkg/pivot have already computed, not a hand-maintained
// render tree.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("gridcore: %v\n", m.err)
	}
	if !m.ready {
		return "loading…\n"
	}

	cols := m.resolvedColumns()

	var b strings.Builder
	b.WriteString(m.table.ColumnManager().ComposeHeader(cols))
	b.WriteString("\n")

	if m.cfg.ShowSummary && !m.pivotMode {
		b.WriteString(m.table.ColumnManager().ComposeSummary(cols, m.table.Summary()))
		b.WriteString("\n")
	}

	panelVisible := m.table.SidePanelVisible() && !m.pivotMode
	bodyWidth := m.width
	if panelVisible {
		bodyWidth -= sidePanelWidth + 1
	}
	m.bodyViewport.Width = bodyWidth
	m.bodyViewport.Height = m.bodyHeight()

	if m.pivotMode {
		if overlay := m.renderPivotOverlay(cols); overlay != "" {
			b.WriteString(overlay)
		}
		m.bodyViewport.SetContent(m.renderPivotBody(cols))
	} else {
		m.bodyViewport.SetContent(strings.Join(m.table.Viewport().Lines(), "\n"))
	}
	body := m.bodyViewport.View()
	if panelVisible {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderSidePanel())
	}
	b.WriteString(body)
	b.WriteString("\n")

	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.wrappedHelpLine()))
	return b.String()
}

// wrappedHelpLine wraps the key-binding summary to the current frame
// width so a narrow terminal breaks it onto a second line instead of
// letting it run off-screen or get hard-truncated.
func (m *Model) wrappedHelpLine() string {
	if m.width <= 0 {
		return m.helpLine()
	}
	return wordwrap.String(m.helpLine(), m.width)
}

// statusLine shows the transient banner when one is set, otherwise a
// steady-state summary of mode, row count, and scroll extent.
func (m *Model) statusLine() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	prefix := ""
	if m.fetching() {
		prefix = m.pageSpinner.View() + " fetching… "
	}
	total := m.table.GetState().Data.TotalRows
	if m.pivotMode {
		return prefix + fmt.Sprintf("pivot · %d rows flattened", len(m.pivotRows))
	}
	line := prefix + fmt.Sprintf("mode=%s rows=%d scrollHeight=%d", m.table.Mode(), total, m.spacerHeight)
	if m.pageInfo != nil {
		line += fmt.Sprintf(" page=%d/%d", m.pageInfo.PageIndex+1, m.pageInfo.PageCount)
	}
	return line
}

func (m *Model) helpLine() string {
	if m.search.Active() {
		return "enter: apply filter · esc: cancel"
	}
	if m.pivotMode {
		return "↑/↓ pgup/pgdn: scroll · enter: toggle group · p: exit pivot · q: quit"
	}
	return "↑/↓ pgup/pgdn home/end: scroll · tab: sort · x: clear sort · </>: resize · [/]: move · /: filter · s: columns panel · p: pivot · q: quit"
}

const sidePanelWidth = 24

var (
	sidePanelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(sidePanelWidth)
	sidePanelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))
)

// renderSidePanel draws the active panel next to the body: the column
// menu, listing every configured column with its visibility mark and the
// digit that toggles it.
func (m *Model) renderSidePanel() string {
	hidden := m.table.GetState().Columns.HiddenKeys
	var b strings.Builder
	b.WriteString(sidePanelTitleStyle.Render(m.table.ActivePanel()))
	b.WriteString("\n")
	for i, c := range m.cfg.Columns {
		mark := "x"
		if hidden[c.Key] {
			mark = " "
		}
		fmt.Fprintf(&b, "%d [%s] %s\n", i+1, mark, c.Title)
	}
	b.WriteString("\n1-9: toggle column")
	return sidePanelStyle.Render(b.String())
}

// renderPivotBody renders the window [pivotTop, pivotTop+bodyHeight) of
// the flattened pivot rows.
func (m *Model) renderPivotBody(cols []grid.ResolvedColumn) string {
	height := m.bodyHeight()
	end := m.pivotTop + height
	if end > len(m.pivotRows) {
		end = len(m.pivotRows)
	}
	if m.pivotTop >= end {
		return ""
	}
	lines := make([]string, 0, end-m.pivotTop)
	for i := m.pivotTop; i < end; i++ {
		lines = append(lines, m.renderPivotRow(cols, m.pivotRows[i]))
	}
	return strings.Join(lines, "\n")
}

// renderPivotOverlay composes the breadcrumb and sticky-group lines for
// the current pivotTop by scanning backward for the nearest ancestor
// group row, rendered as a fixed overlay above the scrolled body rather
// than by hoisting the real row out of its position.
func (m *Model) renderPivotOverlay(cols []grid.ResolvedColumn) string {
	var lines []string
	if chain := pivot.Breadcrumb(m.pivotRows, m.pivotTop); len(chain) > 0 {
		parts := make([]string, len(chain))
		for i, row := range chain {
			parts[i] = row.GroupValue
		}
		lines = append(lines, breadcrumbStyle.Render(strings.Join(parts, " › ")))
	}
	if sticky, ok := pivot.StickyGroup(m.pivotRows, m.pivotTop); ok {
		lines = append(lines, stickyOverlayStyle.Render(m.renderPivotRow(cols, sticky)))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

const pivotValueWidth = 14

func (m *Model) pivotLabelWidth() int {
	w := m.width - len(m.pivotCfg.ValueFields)*(pivotValueWidth+1)
	if w < 8 {
		w = 8
	}
	return w
}

// renderPivotRow formats one flattened pivot row: an indented, expand-
// state-marked label for normal group rows, and a right-aligned numeric
// cell per configured value field.
func (m *Model) renderPivotRow(cols []grid.ResolvedColumn, row pivot.FlatRow) string {
	labelWidth := m.pivotLabelWidth()
	indent := strings.Repeat("  ", maxInt(row.Level, 0))

	var label string
	style := pivotNormalStyle
	switch row.Type {
	case pivot.RowSubtotal:
		label = indent + "  Subtotal"
		style = pivotSubtotalStyle
	case pivot.RowGrandTotal:
		label = "Grand Total"
		style = pivotGrandTotalStyle
	default:
		marker := "▾"
		if !row.IsExpanded {
			marker = "▸"
		}
		label = fmt.Sprintf("%s%s %s: %s", indent, marker, row.GroupKey, row.GroupValue)
	}

	line := style.Width(labelWidth).MaxWidth(labelWidth).Render(truncatePivot(label, labelWidth))
	for _, vf := range m.pivotCfg.ValueFields {
		text := fmt.Sprintf("%v", row.Data[vf.Key])
		line += " " + style.Width(pivotValueWidth).MaxWidth(pivotValueWidth).Align(lipgloss.Right).Render(truncatePivot(text, pivotValueWidth))
	}
	return line
}

func truncatePivot(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
