// Package cellrender is the default ElementFactory: it turns a resolved
// column and a row value into a lipgloss-styled, fixed-width cell string,
// the terminal-host concrete adapter for gridcore's cell-renderer
// collaborator.
package cellrender

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/loomgrid/gridcore/pkg/grid"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	summaryStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	skeletonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
	numberStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	boolTrueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	boolFalseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Factory is the default ElementFactory implementation.
type Factory struct{}

// New constructs a cellrender Factory.
func New() *Factory {
	return &Factory{}
}

func (f *Factory) RenderHeaderCell(col grid.ResolvedColumn) string {
	title := col.Title
	if title == "" {
		title = col.Key
	}
	return headerStyle.Width(col.Width).MaxWidth(col.Width).Render(truncate(title, col.Width))
}

func (f *Factory) RenderDataCell(col grid.ResolvedColumn, row grid.Row) string {
	text := formatCell(col, row[col.Key])
	if col.CellRenderer != nil {
		text = col.CellRenderer(col.Column, row)
	}
	style := lipgloss.NewStyle().Width(col.Width).MaxWidth(col.Width)
	if col.DataType == grid.DataTypeNumber {
		style = numberStyle.Width(col.Width).MaxWidth(col.Width).Align(lipgloss.Right)
	}
	if col.DataType == grid.DataTypeBoolean {
		if text == "true" {
			style = boolTrueStyle.Width(col.Width).MaxWidth(col.Width)
		} else {
			style = boolFalseStyle.Width(col.Width).MaxWidth(col.Width)
		}
	}
	return style.Render(truncate(text, col.Width))
}

func (f *Factory) RenderSummaryCell(col grid.ResolvedColumn, summary grid.Row) string {
	if col.SummaryType == grid.SummaryNone || col.SummaryType == "" {
		return summaryStyle.Width(col.Width).MaxWidth(col.Width).Render("")
	}
	text := formatCell(col, summary[col.Key])
	return summaryStyle.Width(col.Width).MaxWidth(col.Width).Align(lipgloss.Right).Render(truncate(text, col.Width))
}

func (f *Factory) RenderSkeletonCell(col grid.ResolvedColumn) string {
	return skeletonStyle.Width(col.Width).MaxWidth(col.Width).Render(truncate(strings.Repeat("·", col.Width), col.Width))
}

// formatCell renders a raw cell value as text, applying humanize
// formatting for numbers so large summary values get thousands
// separators instead of bare digit runs.
func formatCell(col grid.ResolvedColumn, v any) string {
	if v == nil {
		return ""
	}
	switch col.DataType {
	case grid.DataTypeNumber:
		switch n := v.(type) {
		case float64:
			if n == float64(int64(n)) {
				return humanize.Comma(int64(n))
			}
			return humanize.Commaf(n)
		case int:
			return humanize.Comma(int64(n))
		case int64:
			return humanize.Comma(n)
		}
		if f, err := strconv.ParseFloat(toString(v), 64); err == nil {
			return humanize.Commaf(f)
		}
		return toString(v)
	case grid.DataTypeDate:
		if t, ok := v.(time.Time); ok {
			return humanize.Time(t)
		}
		return toString(v)
	default:
		return toString(v)
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

func truncate(s string, width int) string {
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
