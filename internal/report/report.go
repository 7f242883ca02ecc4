// Package report renders the reconciliation result as operator-facing
// text. The layout follows the review workflow: problems first
// (unreported, unreflected, magnitude drift), confirmations last.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hayate-io/kintai/internal/cache"
	"github.com/hayate-io/kintai/internal/model"
	"github.com/hayate-io/kintai/internal/store"
)

// Renderer writes report sections to w.
type Renderer struct {
	w       io.Writer
	balance func(string) (float64, bool) // remaining paid-leave days, nil if unknown
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBalances supplies a paid-leave balance lookup; leave rows are
// annotated with the remaining days when the person is known.
func WithBalances(fn func(string) (float64, bool)) Option {
	return func(r *Renderer) { r.balance = fn }
}

// New creates a Renderer writing to w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// UploadErrors lists per-file parse failures, if any.
func (r *Renderer) UploadErrors(errs []string) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(r.w, "! 一部のファイルでエラー")
	for _, e := range errs {
		fmt.Fprintf(r.w, "  - %s\n", e)
	}
	fmt.Fprintln(r.w)
}

// Summary prints the dataset overview line.
func (r *Renderer) Summary(eventCount, fileCount int, status cache.Status) {
	fmt.Fprintf(r.w, "%d 件のCBOデータ（%dファイル）と照合しました。[%s]\n\n", eventCount, fileCount, status)
}

// Diff renders the four reconciliation sections.
func (r *Renderer) Diff(rep model.Report) {
	if rep.Empty() {
		fmt.Fprintln(r.w, "この月の照合対象データはありません")
		return
	}

	r.section("アプリ未報告 (CBOのみ存在)", "未報告", eventRows(rep.ReferenceOnly), r.refOnlyDetail)
	r.section("CBO未反映 (アプリのみ存在)", "未反映", eventRows(rep.SelfReportOnly), r.selfOnlyDetail)
	r.section("時間ずれ (要確認)", "時間ずれ", pairRows(rep.ToleranceMismatches), r.pairDetail)
	r.section("照合OK", "OK", pairRows(rep.ExactMatches), r.pairDetail)
}

// row is one table line before detail formatting.
type row struct {
	date, person, label string
	event               model.Event       // display side
	pair                model.MatchedPair // set for matched sections
}

func eventRows(events []model.Event) []row {
	rows := make([]row, len(events))
	for i, e := range events {
		rows[i] = row{date: e.Date, person: e.Person, label: e.DisplayLabel(), event: e}
	}
	return rows
}

func pairRows(pairs []model.MatchedPair) []row {
	rows := make([]row, len(pairs))
	for i, p := range pairs {
		rows[i] = row{date: p.Ref.Date, person: p.Ref.Person, label: p.Ref.DisplayLabel(), pair: p}
	}
	return rows
}

func (r *Renderer) section(title, badge string, rows []row, detail func(row) string) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(r.w, "%s (%d件)\n", title, len(rows))
	for _, rw := range rows {
		d := detail(rw)
		if strings.Contains(rw.label, "有給") {
			d += r.balanceNote(rw.person)
		}
		fmt.Fprintf(r.w, "  %s  %s  %s  %s  [%s]\n", shortDate(rw.date), rw.person, rw.label, d, badge)
	}
	fmt.Fprintln(r.w)
}

func (r *Renderer) refOnlyDetail(rw row) string {
	return rw.event.Detail
}

func (r *Renderer) selfOnlyDetail(rw row) string {
	e := rw.event
	var parts []string
	if e.Type.IsLeave() {
		parts = append(parts, formatDays(e.Magnitude)+"日")
	} else if e.Magnitude > 0 {
		parts = append(parts, fmt.Sprintf("%d分", int(e.Magnitude)))
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) pairDetail(rw row) string {
	p := rw.pair
	var app string
	if p.Ref.Type.IsLeave() {
		app = formatDays(p.Self.Magnitude) + "日"
	} else {
		app = fmt.Sprintf("%d分", int(p.Self.Magnitude))
	}
	d := fmt.Sprintf("CSV: %s / App: %s", p.Ref.Detail, app)
	if p.Self.Detail != "" {
		d += fmt.Sprintf(" (%s)", p.Self.Detail)
	}
	return d
}

func (r *Renderer) balanceNote(person string) string {
	if r.balance == nil {
		return ""
	}
	days, ok := r.balance(person)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" (残:%s日)", formatDays(days))
}

// LateHistory renders the month's late-arrival records grouped per person,
// dates deduplicated and sorted.
func (r *Renderer) LateHistory(month string, arrivals []store.LateArrival) {
	if len(arrivals) == 0 {
		return
	}

	grouped := make(map[string][]string)
	var order []string
	for _, a := range arrivals {
		if _, seen := grouped[a.Person]; !seen {
			order = append(order, a.Person)
		}
		grouped[a.Person] = append(grouped[a.Person], a.Date)
	}

	fmt.Fprintf(r.w, "%s 遅刻記録一覧\n", month)
	for _, person := range order {
		dates := dedupeSorted(grouped[person])
		short := make([]string, len(dates))
		for i, d := range dates {
			short[i] = shortDate(d)
		}
		fmt.Fprintf(r.w, "  %s: %s (%d回)\n", person, strings.Join(short, ", "), len(dates))
	}
	fmt.Fprintln(r.w)
}

func dedupeSorted(dates []string) []string {
	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// shortDate compresses YYYY-MM-DD to MM/DD for display.
func shortDate(date string) string {
	if len(date) != 10 {
		return date
	}
	return strings.ReplaceAll(date[5:], "-", "/")
}

// formatDays prints a day count without trailing zeros (1, 0.5, 12.5).
func formatDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}
