package grid

import "github.com/loomgrid/gridcore/pkg/grid/datastrategy"

// rowElement is the terminal-host analogue of a DOM row element: a
// composed line string plus whether it is a placeholder awaiting a page
// fetch. The Viewport exclusively owns the rowIndex -> *rowElement
// mapping; nothing outside this package holds a reference into it, so an
// element dropped from the map has no back-reference and is immediately
// eligible for disposal.
type rowElement struct {
	Line     string
	Skeleton bool
}

// Viewport is C5: incremental visible-row diffing. It owns
// rowIndex -> element and reacts to scroll/refresh events.
type Viewport struct {
	scroller   Scroller
	strategy   datastrategy.Strategy
	columns    func() []ResolvedColumn
	factory    ElementFactory
	visible    map[int]*rowElement
	generation int

	startRow, endRow int

	// onPageSettled, when set, is invoked with (rowIndex, generation) by
	// UpdateVisibleRows each time a row is rendered as a skeleton, so the
	// host can issue the page fetch through its own tea.Cmd plumbing; the
	// Viewport itself never calls EnsurePageForRow.
	onPageSettled func(rowIndex, generation int)
}

// NewViewport constructs a Viewport. columns is a thunk so the Viewport
// always composes against the current resolved column list without the
// caller re-wiring it on every column change.
func NewViewport(scroller Scroller, strategy datastrategy.Strategy, columns func() []ResolvedColumn, factory ElementFactory) *Viewport {
	return &Viewport{
		scroller: scroller,
		strategy: strategy,
		columns:  columns,
		factory:  factory,
		visible:  make(map[int]*rowElement),
	}
}

// SetScroller swaps the Scroller, needed whenever TotalRows changes.
func (v *Viewport) SetScroller(s Scroller) {
	v.scroller = s
}

// OnPageSettled registers the host's callback for "this row just turned
// into a skeleton because its page isn't cached", invoked with the row
// index and the generation current at that moment. The host is expected
// to issue strategy.EnsurePageForRow(rowIndex) (in a tea.Cmd) and, on
// completion, call SettlePage with the same generation; SettlePage
// discards the result on its own if the generation has since moved on.
func (v *Viewport) OnPageSettled(fn func(rowIndex, generation int)) {
	v.onPageSettled = fn
}

// Generation returns the current query generation, bumped by every
// Refresh (the Query Coordinator refreshes after every applyQuery).
func (v *Viewport) Generation() int {
	return v.generation
}

func (v *Viewport) bumpGeneration() {
	v.generation++
}

// Window returns the last-computed [startRow, endRow] window.
func (v *Viewport) Window() (int, int) {
	return v.startRow, v.endRow
}

// UpdateVisibleRows is the heart of the virtualization pipeline. It is
// called on every scroll; internal/tui calls it directly for each scroll
// message and does not coalesce several scrolls into one frame.
func (v *Viewport) UpdateVisibleRows(scrollTop int) (translateY int, added, removed []int) {
	start, end, ty := v.scroller.Window(scrollTop)
	v.startRow, v.endRow = start, end

	for i := range v.visible {
		if i < start || i > end {
			removed = append(removed, i)
			delete(v.visible, i)
		}
	}

	if end < start {
		return ty, nil, removed
	}

	cols := v.columns()
	for i := start; i <= end; i++ {
		if _, ok := v.visible[i]; ok {
			continue
		}
		row, ok := v.strategy.GetRow(i)
		if ok {
			v.visible[i] = &rowElement{Line: composeRow(v.factory, cols, row)}
		} else {
			v.visible[i] = &rowElement{Line: composeSkeleton(v.factory, cols), Skeleton: true}
			gen := v.generation
			if v.onPageSettled != nil {
				v.onPageSettled(i, gen)
			}
		}
		added = append(added, i)
	}

	return ty, added, removed
}

// SettlePage is called once a page fetch for rowIndex's page has resolved.
// It re-checks that the row is still in the current window AND the
// generation still matches; otherwise the result is a stale fetch and is
// discarded without touching the map.
func (v *Viewport) SettlePage(rowIndex, generation int) {
	if generation != v.generation {
		return
	}
	if rowIndex < v.startRow || rowIndex > v.endRow {
		return
	}
	el, ok := v.visible[rowIndex]
	if !ok || !el.Skeleton {
		return
	}
	row, ok := v.strategy.GetRow(rowIndex)
	if !ok {
		return
	}
	v.visible[rowIndex] = &rowElement{Line: composeRow(v.factory, v.columns(), row)}
}

// Refresh discards all mapped elements and recomputes the window from
// scratch, used after a change that invalidates row content globally
// (e.g. after applyQuery).
func (v *Viewport) Refresh(scrollTop int) (translateY int, added, removed []int) {
	v.bumpGeneration()
	for i := range v.visible {
		removed = append(removed, i)
	}
	v.visible = make(map[int]*rowElement)
	ty, add, _ := v.UpdateVisibleRows(scrollTop)
	return ty, add, removed
}

// GetVisibleRows enumerates rendered lines in row-index order, for the
// Column Manager to recompose in place.
func (v *Viewport) GetVisibleRows() []int {
	rows := make([]int, 0, len(v.visible))
	for i := v.startRow; i <= v.endRow; i++ {
		if _, ok := v.visible[i]; ok {
			rows = append(rows, i)
		}
	}
	return rows
}

// Lines renders the current window top-to-bottom, in row-index order:
// the strings the host paints into its scroll container.
func (v *Viewport) Lines() []string {
	rows := v.GetVisibleRows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = v.visible[r].Line
	}
	return lines
}

func composeRow(factory ElementFactory, cols []ResolvedColumn, row Row) string {
	line := ""
	for i, c := range cols {
		if i > 0 {
			line += " "
		}
		line += factory.RenderDataCell(c, row)
	}
	return line
}

func composeSkeleton(factory ElementFactory, cols []ResolvedColumn) string {
	line := ""
	for i, c := range cols {
		if i > 0 {
			line += " "
		}
		line += factory.RenderSkeletonCell(c)
	}
	return line
}
