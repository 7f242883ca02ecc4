package csvfile

import (
	"strconv"
	"strings"

	"github.com/hayate-io/kintai/internal/model"
	"github.com/hayate-io/kintai/internal/normalize"
)

// headerScanWindow is how many leading lines may precede the header row.
const headerScanWindow = 10

// Diagnostics counts rows dropped silently during parsing. The drops are
// deliberate (partial exports are expected); the counts exist so callers
// can surface them when debugging an export that "lost" rows.
type Diagnostics struct {
	ShortRows int // fewer fields than the person column requires
	BadDates  int // date cell did not parse
}

// Total returns the number of dropped rows.
func (d Diagnostics) Total() int { return d.ShortRows + d.BadDates }

// ParseResult is the outcome of parsing one file. Err is a value, not an
// error type: per-file failures are reported alongside other files'
// successes, never raised.
type ParseResult struct {
	Records []model.Event
	Err     string
	Skipped Diagnostics
}

// columns maps semantic fields to header indices. date and person are
// required (exact cell match); the five type columns are optional and
// resolved by substring, since header cells often carry unit annotations
// like 遅刻(h).
type columns struct {
	date, person int
	types        map[model.EventType]int
}

// Parse converts decoded CSV text into normalized events, preserving source
// line order. Structural failures (empty file, no header) set Err; row-level
// problems skip the row and count it in Skipped.
func Parse(content string) ParseResult {
	lines := splitLines(content)
	if len(lines) == 0 {
		return ParseResult{Err: "ファイルが空です"}
	}

	headerIdx, cols := findHeader(lines)
	if headerIdx < 0 {
		return ParseResult{Err: "ヘッダー「日付」「報告者」が見つかりません"}
	}

	var res ParseResult
	for _, line := range lines[headerIdx+1:] {
		values := splitFields(line)
		if len(values) <= cols.person {
			res.Skipped.ShortRows++
			continue
		}

		date := normalize.Date(values[cols.date])
		if !normalize.IsCanonical(date) {
			res.Skipped.BadDates++
			continue
		}
		person := normalize.Name(values[cols.person])

		res.Records = append(res.Records, rowEvents(values, cols, date, person)...)
	}
	return res
}

// rowEvents emits zero to five events for one data row — multiple event
// types can co-occur on the same day and person.
func rowEvents(values []string, cols columns, date, person string) []model.Event {
	var events []model.Event
	for _, typ := range []model.EventType{model.PaidLeave, model.CompLeave, model.Late, model.EarlyLeave, model.OutDuringShift} {
		idx, ok := cols.types[typ]
		if !ok || idx >= len(values) {
			continue
		}
		cell := values[idx]
		if cell == "" || cell == "-" || cell == "0" {
			continue
		}

		ev := model.Event{
			Date:      date,
			Person:    person,
			Type:      typ,
			TypeLabel: typ.Label(),
			Detail:    cell,
		}
		val, err := strconv.ParseFloat(cell, 64)
		if typ.IsLeave() {
			// Days; an unparseable cell (e.g. ○) still means one day taken.
			ev.Magnitude = val
			if err != nil {
				ev.Magnitude = 1
			}
		} else {
			// Hours in the export, minutes in the event.
			if err != nil || val <= 0 {
				continue
			}
			ev.Magnitude = val * 60
			ev.Detail = cell + "h"
		}
		events = append(events, ev)
	}
	return events
}

// findHeader scans the first headerScanWindow lines for a row containing
// both required keywords as standalone cells, and resolves column indices
// from it. Returns -1 if no header qualifies.
func findHeader(lines []string) (int, columns) {
	limit := len(lines)
	if limit > headerScanWindow {
		limit = headerScanWindow
	}
	for i := 0; i < limit; i++ {
		fields := splitFields(lines[i])
		dateIdx := indexExact(fields, dateKeyword)
		personIdx := indexExact(fields, personKeyword)
		if dateIdx < 0 || personIdx < 0 {
			continue
		}
		cols := columns{date: dateIdx, person: personIdx, types: make(map[model.EventType]int)}
		for _, typ := range []model.EventType{model.Late, model.EarlyLeave, model.OutDuringShift, model.PaidLeave, model.CompLeave} {
			if idx := indexSubstring(fields, typ.Label()); idx >= 0 {
				cols.types[typ] = idx
			}
		}
		return i, cols
	}
	return -1, columns{}
}

// splitLines splits on CRLF or LF, trims, and drops empty lines.
func splitLines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// splitFields splits a line on commas and strips surrounding quotes and
// whitespace per field. Deliberately not encoding/csv: the preamble lines
// before the header are not valid CSV and quotes appear mid-cell in the
// wild.
func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(strings.ReplaceAll(p, `"`, ""))
	}
	return parts
}

func indexExact(fields []string, keyword string) int {
	for i, f := range fields {
		if f == keyword {
			return i
		}
	}
	return -1
}

func indexSubstring(fields []string, keyword string) int {
	for i, f := range fields {
		if strings.Contains(f, keyword) {
			return i
		}
	}
	return -1
}
