// Package recon computes the symmetric diff between reference-side and
// self-report-side attendance events.
package recon

import (
	"math"
	"strings"

	"github.com/hayate-io/kintai/internal/model"
)

// Type-specific mismatch thresholds. A candidate pair whose magnitudes
// differ by at least the threshold is a tolerance mismatch (>= boundary).
const (
	leaveToleranceDays = 0.1
	timeToleranceMin   = 5.0
)

// Compare reconciles the two event lists. Pass 1 walks reference events and
// takes the FIRST self-report candidate — not the best one. Duplicate
// same-day/same-person/same-type events are rare enough that operators
// review them by hand; optimal assignment is not worth the machinery here.
// Pass 2 collects self-report events whose SourceID never matched.
// O(R·S), fine at a few thousand events per month.
func Compare(ref, self []model.Event) model.Report {
	var rep model.Report
	matched := make(map[string]bool, len(self))

	for _, r := range ref {
		idx := -1
		for i, s := range self {
			if candidate(r, s) {
				idx = i
				break
			}
		}
		if idx < 0 {
			rep.ReferenceOnly = append(rep.ReferenceOnly, r)
			continue
		}

		s := self[idx]
		pair := model.MatchedPair{Ref: r, Self: s}
		if mismatch(r, s) {
			pair.Diff = s.Magnitude - r.Magnitude
			rep.ToleranceMismatches = append(rep.ToleranceMismatches, pair)
		} else {
			rep.ExactMatches = append(rep.ExactMatches, pair)
		}
		matched[s.SourceID] = true
	}

	for _, s := range self {
		if !matched[s.SourceID] {
			rep.SelfReportOnly = append(rep.SelfReportOnly, s)
		}
	}
	return rep
}

// candidate reports whether the pair could describe the same real-world
// event: equal date, equal normalized person, compatible type. Types are
// compatible when one label is a substring of the other — self-reports can
// carry coarse or long-form labels (有給休暇 vs 有給).
func candidate(r, s model.Event) bool {
	if r.Date != s.Date || r.Person != s.Person {
		return false
	}
	rl, sl := r.DisplayLabel(), s.DisplayLabel()
	return strings.Contains(rl, sl) || strings.Contains(sl, rl)
}

func mismatch(r, s model.Event) bool {
	delta := math.Abs(r.Magnitude - s.Magnitude)
	if r.Type.IsLeave() {
		return delta >= leaveToleranceDays
	}
	return delta >= timeToleranceMin
}
