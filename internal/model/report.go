package model

// MatchedPair is a reference event and the self-report event it matched.
// Diff is selfMagnitude − refMagnitude, set only on tolerance mismatches.
type MatchedPair struct {
	Ref  Event
	Self Event
	Diff float64
}

// Report is the reconciliation output. Rebuilt from scratch on every run,
// never persisted.
type Report struct {
	ReferenceOnly       []Event       // in reference but not self-reported
	SelfReportOnly      []Event       // self-reported but not in reference
	ExactMatches        []MatchedPair // within tolerance
	ToleranceMismatches []MatchedPair // outside tolerance
}

// Empty reports whether the reconciliation produced nothing at all.
func (r Report) Empty() bool {
	return len(r.ReferenceOnly) == 0 && len(r.SelfReportOnly) == 0 &&
		len(r.ExactMatches) == 0 && len(r.ToleranceMismatches) == 0
}
