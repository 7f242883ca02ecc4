// Package session owns the mutable state of one reconciliation run: the
// effective reference dataset, its sync status, the target month, and the
// paid-leave balances. One owner, passed explicitly — replace-on-resync,
// no ambient globals.
package session

import (
	"strings"

	"github.com/hayate-io/kintai/internal/cache"
	"github.com/hayate-io/kintai/internal/model"
	"github.com/hayate-io/kintai/internal/normalize"
)

// Session is the state for one run.
type Session struct {
	month    string // YYYY-MM
	dataset  model.ReferenceDataset
	status   cache.Status
	balances map[string]float64 // normalized name -> remaining days
}

// New creates a Session for the target month.
func New(month string) *Session {
	return &Session{month: month}
}

// Month returns the target month (YYYY-MM).
func (s *Session) Month() string { return s.month }

// ReplaceDataset swaps in a new effective dataset wholesale.
func (s *Session) ReplaceDataset(ds model.ReferenceDataset, status cache.Status) {
	s.dataset = ds
	s.status = status
}

// Dataset returns the current effective dataset.
func (s *Session) Dataset() model.ReferenceDataset { return s.dataset }

// Status returns how the current dataset was resolved.
func (s *Session) Status() cache.Status { return s.status }

// MonthEvents returns the dataset's events filtered to the target month.
func (s *Session) MonthEvents() []model.Event {
	var events []model.Event
	for _, e := range s.dataset.Events {
		if strings.HasPrefix(e.Date, s.month) {
			events = append(events, e)
		}
	}
	return events
}

// SetBalances stores paid-leave balances, normalizing the sheet's raw name
// keys so they match normalized event persons.
func (s *Session) SetBalances(raw map[string]float64) {
	if len(raw) == 0 {
		return
	}
	s.balances = make(map[string]float64, len(raw))
	for name, days := range raw {
		s.balances[normalize.Name(name)] = days
	}
}

// Balance looks up the remaining paid-leave days for a normalized name.
func (s *Session) Balance(person string) (float64, bool) {
	days, ok := s.balances[person]
	return days, ok
}

// Clear discards the in-memory dataset and balances.
func (s *Session) Clear() {
	s.dataset = model.ReferenceDataset{}
	s.status = cache.StatusEmpty
	s.balances = nil
}
