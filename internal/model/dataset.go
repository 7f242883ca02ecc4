package model

import "time"

// ReferenceDataset is a snapshot of parsed reference CSV events. It is
// superseded wholesale by a newer upload or a newer remote snapshot, never
// patched incrementally.
type ReferenceDataset struct {
	Events    []Event   `json:"data"`
	Timestamp time.Time `json:"timestamp"` // when parsed or fetched
	FileCount int       `json:"fileCount"` // source files merged into this snapshot
}
