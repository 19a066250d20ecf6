package grid

// DataState is the query-facing slice of the store: sort, text filter,
// per-column filters, and the filtered total as last reported by the Data
// Strategy.
type DataState struct {
	Sort          *Sort
	FilterText    string
	ColumnFilters map[string]ColumnFilter
	TotalRows     int
}

// ColumnsState is the column-layout slice of the store.
type ColumnsState struct {
	Order          []string
	WidthOverrides map[string]int
	HiddenKeys     map[string]bool
	FrozenCount    int
}

// State is the store's single value. It is never mutated in place outside
// the reducer; every dispatch produces a new State.
type State struct {
	Data    DataState
	Columns ColumnsState
	Mode    Mode
}

// Query projects the parts of State a Data Strategy cares about.
func (s State) Query() Query {
	return Query{
		Sort:          s.Data.Sort,
		FilterText:    s.Data.FilterText,
		ColumnFilters: s.Data.ColumnFilters,
	}
}

// clone returns a State whose nested maps/slices are independently
// mutable copies of the receiver's, used by the reducer so every action
// produces a state distinct from its predecessor (invariant: previous
// states handed to subscribers are never retroactively mutated).
func (s State) clone() State {
	next := State{
		Data: DataState{
			FilterText: s.Data.FilterText,
			TotalRows:  s.Data.TotalRows,
		},
		Columns: ColumnsState{
			FrozenCount: s.Columns.FrozenCount,
		},
		Mode: s.Mode,
	}
	if s.Data.Sort != nil {
		sort := *s.Data.Sort
		next.Data.Sort = &sort
	}
	next.Data.ColumnFilters = make(map[string]ColumnFilter, len(s.Data.ColumnFilters))
	for k, v := range s.Data.ColumnFilters {
		next.Data.ColumnFilters[k] = v
	}
	next.Columns.Order = append([]string(nil), s.Columns.Order...)
	next.Columns.WidthOverrides = make(map[string]int, len(s.Columns.WidthOverrides))
	for k, v := range s.Columns.WidthOverrides {
		next.Columns.WidthOverrides[k] = v
	}
	next.Columns.HiddenKeys = make(map[string]bool, len(s.Columns.HiddenKeys))
	for k, v := range s.Columns.HiddenKeys {
		next.Columns.HiddenKeys[k] = v
	}
	return next
}

// NewInitialState builds the store's starting value from the original
// column list, optional persisted overrides, and the initial frozen count.
func NewInitialState(columns []Column, persistedOrder []string, persistedWidths map[string]int, frozenCount int) State {
	order := persistedOrder
	if order == nil {
		order = make([]string, len(columns))
		for i, c := range columns {
			order[i] = c.Key
		}
	}
	widths := make(map[string]int, len(persistedWidths))
	for k, v := range persistedWidths {
		widths[k] = v
	}
	return State{
		Data: DataState{
			ColumnFilters: make(map[string]ColumnFilter),
		},
		Columns: ColumnsState{
			Order:          order,
			WidthOverrides: widths,
			HiddenKeys:     make(map[string]bool),
			FrozenCount:    frozenCount,
		},
		Mode: ModeClient,
	}
}
