package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initialState() State {
	return NewInitialState([]Column{
		{Key: "a"}, {Key: "b"}, {Key: "c"},
	}, nil, nil, 0)
}

func TestReduceSortSetAndClear(t *testing.T) {
	s := initialState()
	next := Reduce(s, SortSetAction{Key: "a", Direction: Desc})
	require.NotNil(t, next.Data.Sort)
	assert.Equal(t, "a", next.Data.Sort.Key)
	assert.Equal(t, Desc, next.Data.Sort.Direction)

	cleared := Reduce(next, SortClearAction{})
	assert.Nil(t, cleared.Data.Sort)

	// previous states are never retroactively mutated
	assert.NotNil(t, next.Data.Sort)
}

func TestReduceColumnFilterSetAndClear(t *testing.T) {
	s := initialState()
	next := Reduce(s, ColumnFilterSetAction{Key: "a", Filter: TextFilter{Value: "x"}})
	assert.Equal(t, TextFilter{Value: "x"}, next.Data.ColumnFilters["a"])

	cleared := Reduce(next, ColumnFilterClearAction{Key: "a"})
	_, ok := cleared.Data.ColumnFilters["a"]
	assert.False(t, ok)
}

func TestReduceColumnResizeClampsToOne(t *testing.T) {
	s := initialState()
	next := Reduce(s, ColumnResizeAction{Key: "a", Width: -5})
	assert.Equal(t, 1, next.Columns.WidthOverrides["a"])
}

func TestReduceColumnHideShow(t *testing.T) {
	s := initialState()
	next := Reduce(s, ColumnHideAction{Key: "a"})
	assert.True(t, next.Columns.HiddenKeys["a"])

	shown := Reduce(next, ColumnShowAction{Key: "a"})
	assert.False(t, shown.Columns.HiddenKeys["a"])
}

func TestReduceColumnBatchHideShow(t *testing.T) {
	s := initialState()
	next := Reduce(s, ColumnBatchHideAction{Keys: []string{"a", "b"}})
	assert.True(t, next.Columns.HiddenKeys["a"])
	assert.True(t, next.Columns.HiddenKeys["b"])

	shown := Reduce(next, ColumnBatchShowAction{Keys: []string{"a"}})
	assert.False(t, shown.Columns.HiddenKeys["a"])
	assert.True(t, shown.Columns.HiddenKeys["b"])
}

func TestReduceColumnsResetVisibility(t *testing.T) {
	s := initialState()
	next := Reduce(s, ColumnBatchHideAction{Keys: []string{"a", "b"}})
	reset := Reduce(next, ColumnsResetVisibilityAction{})
	assert.Empty(t, reset.Columns.HiddenKeys)
}

func TestReduceColumnOrderSetReconciles(t *testing.T) {
	s := initialState() // order a,b,c
	// payload drops "b" and adds an unknown "z"
	next := Reduce(s, ColumnOrderSetAction{Keys: []string{"c", "z", "a"}})
	assert.Equal(t, []string{"c", "a", "b"}, next.Columns.Order)
}

func TestReduceUnknownActionIsNoOp(t *testing.T) {
	s := initialState()
	next := Reduce(s, unknownAction{})
	assert.Equal(t, s, next)
}

type unknownAction struct{}

func (unknownAction) Kind() ActionKind { return ActionKind(999) }

func TestReduceSetModeAndFrozenCount(t *testing.T) {
	s := initialState()
	next := Reduce(s, SetModeAction{Mode: ModeServer})
	assert.Equal(t, ModeServer, next.Mode)

	next = Reduce(next, SetFrozenCountAction{Count: 2})
	assert.Equal(t, 2, next.Columns.FrozenCount)
}

func TestStoreDispatchNotifiesSubscribersInOrder(t *testing.T) {
	store := NewStore(initialState())
	var seen []string
	unsub := store.Subscribe(func(next, prev State, action Action) {
		if a, ok := action.(SortSetAction); ok {
			seen = append(seen, a.Key)
		}
	})
	defer unsub()

	store.Dispatch(SortSetAction{Key: "a", Direction: Asc})
	store.Dispatch(SortSetAction{Key: "b", Direction: Asc})

	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, "b", store.State().Data.Sort.Key)
}

func TestStoreReentrantDispatchIsQueuedNotDropped(t *testing.T) {
	store := NewStore(initialState())
	var order []string
	store.Subscribe(func(next, prev State, action Action) {
		a, ok := action.(SetFilterTextAction)
		if !ok {
			return
		}
		order = append(order, a.Text)
		if a.Text == "first" {
			// dispatch from inside the notification: must be queued, not dropped,
			// and must not interleave with this notification.
			store.Dispatch(SetFilterTextAction{Text: "second"})
			order = append(order, "after-reentrant-call")
		}
	})

	store.Dispatch(SetFilterTextAction{Text: "first"})

	assert.Equal(t, []string{"first", "after-reentrant-call", "second"}, order)
	assert.Equal(t, "second", store.State().Data.FilterText)
}

func TestStoreUnsubscribeStopsNotifications(t *testing.T) {
	store := NewStore(initialState())
	calls := 0
	unsub := store.Subscribe(func(next, prev State, action Action) {
		calls++
	})
	store.Dispatch(SortSetAction{Key: "a", Direction: Asc})
	unsub()
	store.Dispatch(SortSetAction{Key: "b", Direction: Asc})
	unsub() // second call is a no-op

	assert.Equal(t, 1, calls)
}
