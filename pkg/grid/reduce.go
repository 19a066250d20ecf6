package grid

// Reduce is the store's one reducer, exhaustive by concrete action type.
// It never mutates prev; it returns a new State built from a clone.
func Reduce(prev State, action Action) State {
	next := prev.clone()

	switch a := action.(type) {
	case SortSetAction:
		s := Sort{Key: a.Key, Direction: a.Direction}
		next.Data.Sort = &s

	case SortClearAction:
		next.Data.Sort = nil

	case SetFilterTextAction:
		next.Data.FilterText = a.Text

	case ColumnFilterSetAction:
		next.Data.ColumnFilters[a.Key] = a.Filter

	case ColumnFilterClearAction:
		delete(next.Data.ColumnFilters, a.Key)

	case SetTotalRowsAction:
		next.Data.TotalRows = a.TotalRows

	case ColumnResizeAction:
		width := a.Width
		if width < 1 {
			width = 1
		}
		next.Columns.WidthOverrides[a.Key] = width

	case ColumnShowAction:
		delete(next.Columns.HiddenKeys, a.Key)

	case ColumnHideAction:
		next.Columns.HiddenKeys[a.Key] = true

	case ColumnBatchShowAction:
		for _, k := range a.Keys {
			delete(next.Columns.HiddenKeys, k)
		}

	case ColumnBatchHideAction:
		for _, k := range a.Keys {
			next.Columns.HiddenKeys[k] = true
		}

	case ColumnsResetVisibilityAction:
		next.Columns.HiddenKeys = make(map[string]bool)

	case ColumnOrderSetAction:
		next.Columns.Order = reconcileOrder(a.Keys, prev.Columns.Order)

	case SetFrozenCountAction:
		next.Columns.FrozenCount = a.Count

	case TableResizeAction:
		// Table width itself is not stored on State (it is persisted
		// directly by the Persistence Adapter on receipt of this
		// action, see router.go); the reducer only needs to exist so
		// TableResizeAction classifies and subscribers are notified.

	case SetModeAction:
		next.Mode = a.Mode

	default:
		// Unknown action: no state change. The router separately logs
		// a development warning; the reducer itself stays silent so
		// replaying an action log from a newer build never panics.
		return prev
	}

	return next
}

// reconcileOrder implements COLUMN_ORDER_SET's contract: payload keys must
// be a permutation of known keys; unknown keys are dropped, missing known
// keys are appended in their previous relative order.
func reconcileOrder(payload, known []string) []string {
	knownSet := make(map[string]bool, len(known))
	for _, k := range known {
		knownSet[k] = true
	}
	seen := make(map[string]bool, len(payload))
	order := make([]string, 0, len(known))
	for _, k := range payload {
		if !knownSet[k] || seen[k] {
			continue
		}
		seen[k] = true
		order = append(order, k)
	}
	for _, k := range known {
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}
	return order
}
