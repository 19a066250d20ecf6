// Package persist implements the Persistence Adapter: three slots per
// tableId (column-widths, column-order, table-width) saved on change
// and loaded at startup. All operations tolerate storage being
// unavailable, logging a warning and returning as if nothing had been
// saved, a "best effort, never fatal" posture for on-disk state.
package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	slotWidths      = "column-widths"
	slotOrder       = "column-order"
	slotTableWidth  = "table-width"
	appDirComponent = "gridcore"
)

// Store is a file-backed Key/Value Store, one YAML file per (tableID,
// slot), located under the user's XDG state directory.
type Store struct {
	baseDir string
}

// NewStore locates (and does not yet create) the base directory for
// persisted table state, under XDG_STATE_HOME via github.com/adrg/xdg.
func NewStore() (*Store, error) {
	dir, err := xdg.StateFile(filepath.Join(appDirComponent, "tables", ".keep"))
	if err != nil {
		return nil, fmt.Errorf("persist: locate state dir: %w", err)
	}
	return &Store{baseDir: filepath.Dir(dir)}, nil
}

// NewStoreAt builds a Store rooted at an explicit directory, used by
// tests and by callers that want persistence outside the user's XDG
// state home.
func NewStoreAt(dir string) *Store {
	return &Store{baseDir: dir}
}

func (s *Store) path(tableID, slot string) string {
	return filepath.Join(s.baseDir, tableID+"."+slot+".yaml")
}

func (s *Store) save(tableID, slot string, value any) error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("persist: create state dir: %w", err)
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("persist: marshal %s/%s: %w", tableID, slot, err)
	}
	if err := os.WriteFile(s.path(tableID, slot), data, 0o644); err != nil {
		return fmt.Errorf("persist: write %s/%s: %w", tableID, slot, err)
	}
	return nil
}

// load returns ok=false (never an error) when the slot is missing or the
// stored YAML is malformed; both read as "no saved state".
func (s *Store) load(tableID, slot string, out any) bool {
	data, err := os.ReadFile(s.path(tableID, slot))
	if err != nil {
		return false
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false
	}
	return true
}

// SaveWidths persists the column width overrides for tableID.
func (s *Store) SaveWidths(tableID string, widths map[string]int) error {
	return s.save(tableID, slotWidths, widths)
}

// LoadWidths returns the persisted width overrides, or nil if none/corrupt.
func (s *Store) LoadWidths(tableID string) map[string]int {
	var widths map[string]int
	if !s.load(tableID, slotWidths, &widths) {
		return nil
	}
	return widths
}

// SaveOrder persists the column order for tableID.
func (s *Store) SaveOrder(tableID string, order []string) error {
	return s.save(tableID, slotOrder, order)
}

// LoadOrder returns the persisted column order, or nil if none/corrupt.
func (s *Store) LoadOrder(tableID string) []string {
	var order []string
	if !s.load(tableID, slotOrder, &order) {
		return nil
	}
	return order
}

// SaveTableWidth persists the overall table width for tableID.
func (s *Store) SaveTableWidth(tableID string, width int) error {
	return s.save(tableID, slotTableWidth, width)
}

// LoadTableWidth returns the persisted table width and whether one was
// found.
func (s *Store) LoadTableWidth(tableID string) (int, bool) {
	var width int
	if !s.load(tableID, slotTableWidth, &width) {
		return 0, false
	}
	return width, true
}

// Clear removes all three slots for tableID. Missing files are not an
// error.
func (s *Store) Clear(tableID string) error {
	for _, slot := range []string{slotWidths, slotOrder, slotTableWidth} {
		if err := os.Remove(s.path(tableID, slot)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("persist: clear %s/%s: %w", tableID, slot, err)
		}
	}
	return nil
}
