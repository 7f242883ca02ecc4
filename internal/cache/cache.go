// Package cache persists the reference dataset snapshot locally and
// resolves it against the remote store's copy. Snapshots are whole values:
// the newer one wins and the loser is discarded, never field-merged.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hayate-io/kintai/internal/model"
)

// Cache reads and writes the snapshot file.
type Cache struct {
	path string
}

// New creates a Cache at the given file path.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Load reads the local snapshot. A missing file is not an error — it
// returns (nil, nil); corrupt content is an error so the caller can log it
// and proceed as if no cache existed.
func (c *Cache) Load() (*model.ReferenceDataset, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: read %s: %w", c.path, err)
	}

	var ds model.ReferenceDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("cache: decode %s: %w", c.path, err)
	}
	rehydrate(ds.Events)
	return &ds, nil
}

// Save writes the snapshot, creating the parent directory if needed. A
// failed save must not block the run — callers log it and proceed with the
// in-memory dataset.
func (c *Cache) Save(ds model.ReferenceDataset) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("cache: mkdir: %w", err)
	}
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("cache: write %s: %w", c.path, err)
	}
	return nil
}

// Clear removes the snapshot file. Missing file is fine.
func (c *Cache) Clear() error {
	err := os.Remove(c.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cache: clear: %w", err)
	}
	return nil
}

// rehydrate restores the EventType enum from the serialized label — the
// wire and disk formats carry only the label string.
func rehydrate(events []model.Event) {
	for i := range events {
		events[i].Type = model.TypeFromLabel(events[i].TypeLabel)
	}
}
