package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadWidthsRoundTrip(t *testing.T) {
	store := NewStoreAt(t.TempDir())
	widths := map[string]int{"name": 20, "salary": 12}
	require.NoError(t, store.SaveWidths("t1", widths))

	loaded := store.LoadWidths("t1")
	assert.Equal(t, widths, loaded)
}

func TestSaveLoadOrderRoundTrip(t *testing.T) {
	store := NewStoreAt(t.TempDir())
	order := []string{"b", "a", "c"}
	require.NoError(t, store.SaveOrder("t1", order))

	assert.Equal(t, order, store.LoadOrder("t1"))
}

func TestSaveLoadTableWidthRoundTrip(t *testing.T) {
	store := NewStoreAt(t.TempDir())
	require.NoError(t, store.SaveTableWidth("t1", 140))

	width, ok := store.LoadTableWidth("t1")
	require.True(t, ok)
	assert.Equal(t, 140, width)
}

func TestLoadMissingSlotReturnsNilWithoutError(t *testing.T) {
	store := NewStoreAt(t.TempDir())
	assert.Nil(t, store.LoadWidths("unknown"))
	assert.Nil(t, store.LoadOrder("unknown"))
	_, ok := store.LoadTableWidth("unknown")
	assert.False(t, ok)
}

func TestLoadCorruptYAMLReadsAsNoSavedState(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(dir)
	path := filepath.Join(dir, "t1.column-widths.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: [1, 2\n"), 0o644))

	assert.Nil(t, store.LoadWidths("t1"))
}

func TestClearRemovesAllSlots(t *testing.T) {
	store := NewStoreAt(t.TempDir())
	require.NoError(t, store.SaveWidths("t1", map[string]int{"a": 1}))
	require.NoError(t, store.SaveOrder("t1", []string{"a"}))
	require.NoError(t, store.SaveTableWidth("t1", 99))

	require.NoError(t, store.Clear("t1"))

	assert.Nil(t, store.LoadWidths("t1"))
	assert.Nil(t, store.LoadOrder("t1"))
	_, ok := store.LoadTableWidth("t1")
	assert.False(t, ok)
}

func TestClearOnMissingFilesIsNotAnError(t *testing.T) {
	store := NewStoreAt(t.TempDir())
	assert.NoError(t, store.Clear("never-saved"))
}
