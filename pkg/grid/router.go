package grid

import "github.com/loomgrid/gridcore/pkg/grid/persist"

// Logger is the minimal logging surface the router needs for development
// warnings on unknown actions and recoverable errors.
type Logger interface {
	Warnf(format string, args ...any)
}

// Router is C7: the single place rendering is triggered from state
// changes. It subscribes to the Store and classifies every
// dispatched action into exactly one effect class.
type Router struct {
	original []Column
	store    *Store
	qc       *QueryCoordinator
	cm       *ColumnManager
	viewport *Viewport
	strategy interface {
		GetRow(int) (Row, bool)
	}
	persistence *persist.Store
	tableID     string
	logger      Logger
	dev         bool

	onColumnsChanged   func([]ResolvedColumn)
	onStructureChanged func([]ResolvedColumn)
}

// RouterConfig bundles Router's collaborators.
type RouterConfig struct {
	Original           []Column
	Store              *Store
	QueryCoordinator   *QueryCoordinator
	ColumnManager      *ColumnManager
	Viewport           *Viewport
	Strategy           interface{ GetRow(int) (Row, bool) }
	Persistence        *persist.Store
	TableID            string
	Logger             Logger
	DevWarnings        bool
	OnColumnsChanged   func([]ResolvedColumn)
	OnStructureChanged func([]ResolvedColumn)
}

// NewRouter constructs a Router and subscribes it to cfg.Store.
func NewRouter(cfg RouterConfig) *Router {
	r := &Router{
		original:           cfg.Original,
		store:              cfg.Store,
		qc:                 cfg.QueryCoordinator,
		cm:                 cfg.ColumnManager,
		viewport:           cfg.Viewport,
		strategy:           cfg.Strategy,
		persistence:        cfg.Persistence,
		tableID:            cfg.TableID,
		logger:             cfg.Logger,
		dev:                cfg.DevWarnings,
		onColumnsChanged:   cfg.OnColumnsChanged,
		onStructureChanged: cfg.OnStructureChanged,
	}
	cfg.Store.Subscribe(r.handle)
	return r
}

// handle is the Store subscriber: look up action.Kind() in the effect
// class table and dispatch to exactly one handler branch.
func (r *Router) handle(next, prev State, action Action) {
	class, ok := classify(action)
	if !ok {
		if r.dev && r.logger != nil {
			r.logger.Warnf("grid: unknown action kind %v, no effect applied", action.Kind())
		}
		return
	}

	// SET_TOTAL_ROWS is classified Data-affecting by the action catalog,
	// but it is only ever dispatched by QueryCoordinator.ApplyQuery
	// itself after the query already resolved. Routing it back into
	// ApplyQuery would recurse forever, so the router treats it as
	// already handled: the scroller/viewport reconciliation happened
	// synchronously inside ApplyQuery before this dispatch was even
	// issued.
	if action.Kind() == ActionSetTotalRows {
		return
	}

	switch class {
	case DataEffect:
		r.handleData(next)
	case ColumnEffect:
		r.handleColumns(next, prev, action)
	case StructureEffect:
		r.handleStructure(next, prev, action)
	case StateOnlyEffect:
		// No render effect.
	}
}

func (r *Router) handleData(next State) {
	if err := r.qc.ApplyQuery(next.Query()); err != nil && r.logger != nil {
		r.logger.Warnf("grid: applyQuery failed: %v", err)
	}
}

func (r *Router) handleColumns(next, prev State, action Action) {
	resolved, err := ResolveColumns(r.original, next.Columns)
	if err != nil {
		if r.logger != nil {
			r.logger.Warnf("grid: resolve columns failed: %v", err)
		}
		return
	}
	r.cm.Update(resolved, r.strategy, r.viewport)
	if r.onColumnsChanged != nil {
		r.onColumnsChanged(resolved)
	}
	r.persistColumnChange(action, next)
}

func (r *Router) handleStructure(next, prev State, action Action) {
	resolved, err := ResolveColumns(r.original, next.Columns)
	if err != nil {
		if r.logger != nil {
			r.logger.Warnf("grid: resolve columns failed: %v", err)
		}
		return
	}
	r.viewport.Refresh(0)
	if r.onStructureChanged != nil {
		r.onStructureChanged(resolved)
	}
	r.persistColumnChange(action, next)

	if tr, ok := action.(TableResizeAction); ok && r.persistence != nil {
		if err := r.persistence.SaveTableWidth(r.tableID, tr.Width); err != nil && r.logger != nil {
			r.logger.Warnf("grid: persist table width failed: %v", err)
		}
	}
}

// persistColumnChange saves widths through the Persistence Adapter on
// COLUMN_RESIZE and the column order on COLUMN_ORDER_SET; other column- or
// structure-affecting actions save nothing here. Persistence failures are
// logged and otherwise ignored.
func (r *Router) persistColumnChange(action Action, next State) {
	if r.persistence == nil {
		return
	}
	switch action.(type) {
	case ColumnResizeAction:
		if err := r.persistence.SaveWidths(r.tableID, next.Columns.WidthOverrides); err != nil && r.logger != nil {
			r.logger.Warnf("grid: persist widths failed: %v", err)
		}
	case ColumnOrderSetAction:
		if err := r.persistence.SaveOrder(r.tableID, next.Columns.Order); err != nil && r.logger != nil {
			r.logger.Warnf("grid: persist order failed: %v", err)
		}
	}
}
