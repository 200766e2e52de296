// Package loader parses raw case and passenger-volume tables into the
// normalized records the analysis pipeline consumes. Sources are CSV files,
// Excel workbooks, or anything else implementing CaseSource/PaxSource (the
// database package provides a Postgres-backed pair).
//
// Rows with missing or non-numeric year/month are malformed data, not errors:
// they are dropped silently. An unreadable source is fatal and surfaces as a
// *SourceError.
package loader

import (
	"time"

	"inad-watch/analysis"
)

// Window is a [start, end] date filter. Zero bounds are open: the zero Window
// admits every record.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

// CaseSource yields normalized case records within a date window.
type CaseSource interface {
	LoadCases(w Window) ([]analysis.CaseRecord, error)
}

// PaxSource yields monthly passenger-volume records within a date window.
type PaxSource interface {
	LoadPax(w Window) ([]analysis.PaxRecord, error)
}
