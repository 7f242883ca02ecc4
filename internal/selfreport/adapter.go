// Package selfreport projects loosely-typed stored attendance records into
// normalized events. Which fields a record carries depends on the form it
// came from, and older records carry only the generic 勤怠 category — the
// classifier resolves each record to one explicit event type instead of
// letting field-presence checks leak into the reconciliation logic.
package selfreport

import (
	"strconv"
	"strings"

	"github.com/hayate-io/kintai/internal/model"
	"github.com/hayate-io/kintai/internal/normalize"
)

// Categories the record store uses. 勤怠 is the generic bucket older forms
// wrote; the three specific ones map straight to event types.
const (
	categoryGeneric   = "勤怠"
	categoryPaidLeave = "有給申請"
	categoryCompLeave = "代休申請"
	categoryLateEarly = "遅刻早退"
)

// Diagnostics counts records dropped because no recognized shape matched.
// The drop itself is silent by design; the count is for debugging.
type Diagnostics struct {
	Dropped int
}

// Classify resolves a record to an event type: the explicit type field
// first, then the category, then field-shape inference for generic or
// missing categories. Records that match nothing are Unclassified.
func Classify(r model.Record) model.EventType {
	if r.Type != "" {
		if t := model.TypeFromLabel(r.Type); t != model.Unclassified {
			return t
		}
	}

	switch {
	case strings.Contains(r.Category, "有給"):
		return model.PaidLeave
	case strings.Contains(r.Category, "代休"):
		return model.CompLeave
	case r.Category == categoryLateEarly:
		// Coarse category with no explicit type; Late is the fallback.
		return model.Late
	}

	if r.Category == categoryGeneric || r.Category == "" {
		switch {
		case r.LeaveDate != "":
			return model.CompLeave
		case r.StartDate != "" || (r.Days > 0 && r.Reason != ""):
			return model.PaidLeave
		case r.Type != "" || r.Minutes != "":
			return model.Late
		}
	}
	return model.Unclassified
}

// Project filters records to the target month (YYYY-MM, matched against the
// stored timestamp prefix) and projects each classifiable one into a
// normalized event. Unclassifiable records are dropped and counted.
func Project(records []model.Record, yearMonth string) ([]model.Event, Diagnostics) {
	var events []model.Event
	var diag Diagnostics

	for _, r := range records {
		if r.Timestamp == "" || !strings.HasPrefix(r.Timestamp, yearMonth) {
			continue
		}
		typ := Classify(r)
		if typ == model.Unclassified {
			diag.Dropped++
			continue
		}
		events = append(events, project(r, typ))
	}
	return events, diag
}

func project(r model.Record, typ model.EventType) model.Event {
	label := r.Type
	if label == "" {
		label = typ.Label()
	}

	date := r.Date
	if date == "" {
		switch typ {
		case model.PaidLeave:
			date = r.StartDate
		case model.CompLeave:
			date = r.LeaveDate
		}
	}
	if date == "" {
		date, _, _ = strings.Cut(r.Timestamp, "T")
	}

	var magnitude float64
	if typ.IsLeave() {
		magnitude = r.Days
		if magnitude == 0 {
			magnitude = 1
		}
	} else {
		if m, err := strconv.Atoi(strings.TrimSpace(r.Minutes)); err == nil {
			magnitude = float64(m)
		}
	}

	detail := r.Reason
	if detail == "" {
		detail = r.Note
	}

	return model.Event{
		Date:      normalize.Date(date),
		Person:    normalize.Name(r.UserName),
		Type:      typ,
		TypeLabel: label,
		Magnitude: magnitude,
		Detail:    detail,
		SourceID:  r.ID,
	}
}
