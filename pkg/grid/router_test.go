package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomgrid/gridcore/pkg/grid/persist"
)

// recordingLogger is a grid.Logger double that records every Warnf call.
type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, format)
}

func newTestRouter(t *testing.T, persistence *persist.Store, tableID string, devWarnings bool) (*Store, *recordingLogger) {
	t.Helper()
	store := NewStore(initialState())
	strategy := &fakeStrategy{present: 3}
	scroller := NewScroller(1, 3, 4, 0)
	vp := NewViewport(scroller, strategy, testColumns(), fakeFactory{})
	cm := NewColumnManager(fakeFactory{})
	host := &recordingHost{}
	qc := NewQueryCoordinator(store, strategy, vp, host, 1, 4, 0, false)
	logger := &recordingLogger{}

	NewRouter(RouterConfig{
		Original:         []Column{{Key: "a"}},
		Store:            store,
		QueryCoordinator: qc,
		ColumnManager:    cm,
		Viewport:         vp,
		Strategy:         strategy,
		Persistence:      persistence,
		TableID:          tableID,
		Logger:           logger,
		DevWarnings:      devWarnings,
	})
	return store, logger
}

func TestRouterDataActionRunsApplyQueryThroughCoordinator(t *testing.T) {
	store, _ := newTestRouter(t, nil, "", false)
	store.Dispatch(SortSetAction{Key: "a", Direction: Asc})
	assert.NotNil(t, store.State().Data.Sort)
}

func TestRouterSetTotalRowsIsANoOpToAvoidRecursion(t *testing.T) {
	store, logger := newTestRouter(t, nil, "", false)
	store.Dispatch(SetTotalRowsAction{TotalRows: 99})
	assert.Equal(t, 99, store.State().Data.TotalRows)
	assert.Empty(t, logger.warnings)
}

func TestRouterColumnResizePersistsWidths(t *testing.T) {
	dir := t.TempDir()
	persistence := persist.NewStoreAt(dir)
	store, _ := newTestRouter(t, persistence, "tbl-1", false)

	store.Dispatch(ColumnResizeAction{Key: "a", Width: 42})

	widths := persistence.LoadWidths("tbl-1")
	require.NotNil(t, widths)
	assert.Equal(t, 42, widths["a"])
}

func TestRouterColumnOrderPersistsOrder(t *testing.T) {
	dir := t.TempDir()
	persistence := persist.NewStoreAt(dir)
	store, _ := newTestRouter(t, persistence, "tbl-2", false)

	store.Dispatch(ColumnOrderSetAction{Keys: []string{"c", "a", "b"}})

	order := persistence.LoadOrder("tbl-2")
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestRouterTableResizePersistsTableWidth(t *testing.T) {
	dir := t.TempDir()
	persistence := persist.NewStoreAt(dir)
	store, _ := newTestRouter(t, persistence, "tbl-3", false)

	store.Dispatch(TableResizeAction{Width: 120})

	width, ok := persistence.LoadTableWidth("tbl-3")
	require.True(t, ok)
	assert.Equal(t, 120, width)
}

func TestRouterNoPersistenceSkipsSavesSilently(t *testing.T) {
	store, logger := newTestRouter(t, nil, "", false)
	store.Dispatch(ColumnResizeAction{Key: "a", Width: 10})
	assert.Empty(t, logger.warnings)
}

func TestRouterSetModeIsStateOnlyNoLoggedEffect(t *testing.T) {
	store, logger := newTestRouter(t, nil, "", true)
	store.Dispatch(SetModeAction{Mode: ModeServer})
	assert.Empty(t, logger.warnings)
}

// TestRouterUnknownActionKindWarnsOnlyWithDevWarnings reuses
// unknownAction (declared in reduce_test.go) to exercise the router's
// unknown-kind path.
func TestRouterUnknownActionKindWarnsOnlyWithDevWarnings(t *testing.T) {
	store, logger := newTestRouter(t, nil, "", false)
	store.Dispatch(unknownAction{})
	assert.Empty(t, logger.warnings, "dev warnings disabled must suppress the log")

	storeDev, loggerDev := newTestRouter(t, nil, "", true)
	storeDev.Dispatch(unknownAction{})
	assert.Len(t, loggerDev.warnings, 1)
}
