package model

import "strings"

// EventType is the attendance event category. Reference CSV columns and
// self-reported records both resolve to one of these.
type EventType int

const (
	Unclassified EventType = iota
	Late
	EarlyLeave
	OutDuringShift
	PaidLeave
	CompLeave
)

// labels are the Japanese source-locale strings. They double as CSV column
// keywords, type-compatibility labels, and display strings.
var labels = map[EventType]string{
	Unclassified:   "その他",
	Late:           "遅刻",
	EarlyLeave:     "早退",
	OutDuringShift: "中抜け",
	PaidLeave:      "有給",
	CompLeave:      "代休",
}

// Label returns the Japanese label for the event type.
func (t EventType) Label() string {
	return labels[t]
}

// IsLeave reports whether the type's magnitude is measured in days.
func (t EventType) IsLeave() bool {
	return t == PaidLeave || t == CompLeave
}

// IsTimeBased reports whether the type's magnitude is measured in minutes.
func (t EventType) IsTimeBased() bool {
	return t == Late || t == EarlyLeave || t == OutDuringShift
}

// TypeFromLabel resolves a raw label back to an EventType. Substring match
// in either direction, so coarse labels like 有給申請 or 有給休暇 resolve to
// PaidLeave. Unknown labels resolve to Unclassified.
func TypeFromLabel(label string) EventType {
	if label == "" {
		return Unclassified
	}
	for _, t := range []EventType{Late, EarlyLeave, OutDuringShift, PaidLeave, CompLeave} {
		if strings.Contains(label, labels[t]) || strings.Contains(labels[t], label) {
			return t
		}
	}
	return Unclassified
}

// Event is the normalized attendance event — the common currency of
// reconciliation. Reference-side and self-report-side events share this shape.
type Event struct {
	Date      string    `json:"date"`     // calendar date, YYYY-MM-DD
	Person    string    `json:"userName"` // canonical name, post-normalization
	Type      EventType `json:"-"`
	TypeLabel string    `json:"type"`               // raw source label; falls back to Type.Label()
	Magnitude float64   `json:"amount"`             // minutes for time types, days for leave types
	Detail    string    `json:"detail,omitempty"`   // original source annotation, display only
	SourceID  string    `json:"sourceId,omitempty"` // stored record id; empty for reference events
}

// DisplayLabel returns the label shown for the event: the raw source label
// when present, otherwise the canonical one.
func (e Event) DisplayLabel() string {
	if e.TypeLabel != "" {
		return e.TypeLabel
	}
	return e.Type.Label()
}
