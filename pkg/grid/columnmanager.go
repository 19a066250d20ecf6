package grid

// ColumnManager is C6: applies a resolved-column list to already-rendered
// rows in place. In a terminal host there is no persistent DOM to
// patch, so "in place" means: recompose each cached row's line string from
// the new column list without discarding the Viewport's row-element cache
// or forcing a page re-fetch, so column changes stay cheap rather than
// forcing a full rebuild.
type ColumnManager struct {
	factory ElementFactory
}

// NewColumnManager constructs a ColumnManager using factory to render
// cells.
func NewColumnManager(factory ElementFactory) *ColumnManager {
	return &ColumnManager{factory: factory}
}

// ComposeHeader renders the header line for the given resolved columns.
func (cm *ColumnManager) ComposeHeader(cols []ResolvedColumn) string {
	line := ""
	for i, c := range cols {
		if i > 0 {
			line += " "
		}
		line += cm.factory.RenderHeaderCell(c)
	}
	return line
}

// ComposeSummary renders the summary line for the given resolved columns
// and aggregated row.
func (cm *ColumnManager) ComposeSummary(cols []ResolvedColumn, summary Row) string {
	if summary == nil {
		return ""
	}
	line := ""
	for i, c := range cols {
		if i > 0 {
			line += " "
		}
		line += cm.factory.RenderSummaryCell(c, summary)
	}
	return line
}

// Update recomposes every row currently resident in viewport's cache
// against the new resolved column list, in place. It never clears the
// visible-row map, so a column width/visibility/order change never
// forces a full viewport rebuild.
func (cm *ColumnManager) Update(cols []ResolvedColumn, strategy interface {
	GetRow(int) (Row, bool)
}, viewport *Viewport) {
	for _, i := range viewport.GetVisibleRows() {
		el := viewport.visible[i]
		if el.Skeleton {
			el.Line = composeSkeleton(cm.factory, cols)
			continue
		}
		row, ok := strategy.GetRow(i)
		if !ok {
			continue
		}
		el.Line = composeRow(cm.factory, cols, row)
	}
}
