// Package analysis implements the INAD route density pipeline: progressive
// airline and route screening, per-mille density classification with robust
// population thresholds, data-quality heuristics, multi-semester systemic case
// detection, and the summary projections consumed by review tooling.
//
// Everything in this package is a pure function of its inputs. Loading,
// caching and parallel orchestration live in the loader, cache and app
// packages.
package analysis

import (
	"sort"
	"strings"
	"time"
)

// CaseRecord is one inadmissible-passenger event, normalized at load time.
// Immutable once built; lifetime is a single analysis run.
type CaseRecord struct {
	Airline  string
	LastStop string // last transit airport before the destination
	Year     int
	Month    int
	Date     time.Time // first day of Year/Month, UTC
	Code     string    // disposition code, "Unknown" when blank
	Included bool      // code present and not excluded
	Category string    // disposition category, CategoryOther by default
}

// NewCaseRecord normalizes a raw case row and derives the inclusion flag and
// category. Airline, last stop and code are trimmed.
func NewCaseRecord(airline, lastStop string, year, month int, code string) CaseRecord {
	airline = strings.TrimSpace(airline)
	lastStop = strings.TrimSpace(lastStop)
	code = strings.TrimSpace(code)

	rec := CaseRecord{
		Airline:  airline,
		LastStop: lastStop,
		Year:     year,
		Month:    month,
		Date:     time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Code:     code,
		Included: IncludeCode(code),
		Category: ClassifyCode(code),
	}
	if rec.Code == "" {
		rec.Code = "Unknown"
	}
	return rec
}

// PaxRecord is one monthly passenger count for an (airline, airport) pair.
type PaxRecord struct {
	Airline string
	Airport string
	Year    int
	Month   int
	PAX     int64
}

// RouteKey identifies an (airline, airport) route pair.
type RouteKey struct {
	Airline string
	Airport string
}

// PartnerMap lists partner carrier codes per route, used to pool passenger
// volume across codeshare/interline partners serving the same physical route.
type PartnerMap map[RouteKey][]string

// Canonical flattens the mapping into sorted "carrier;route;partner" strings.
// Map iteration order never leaks, so the result is stable for hashing.
func (m PartnerMap) Canonical() []string {
	out := make([]string, 0, len(m))
	for key, partners := range m {
		for _, p := range partners {
			out = append(out, key.Airline+";"+key.Airport+";"+p)
		}
	}
	sort.Strings(out)
	return out
}

// monthKey identifies one month of PAX data for a route.
type monthKey struct {
	route RouteKey
	year  int
	month int
}

// PaxTable holds passenger volume aggregated per route over a period, with
// the monthly breakdown retained for quality checks.
type PaxTable struct {
	totals  map[RouteKey]int64
	monthly map[RouteKey][]int64 // one summed entry per month with data
	grand   int64
}

// BuildPaxTable aggregates monthly PAX records into a period lookup table.
// Records for the same route and month are summed into one monthly entry.
func BuildPaxTable(records []PaxRecord) *PaxTable {
	t := &PaxTable{
		totals:  make(map[RouteKey]int64),
		monthly: make(map[RouteKey][]int64),
	}

	perMonth := make(map[monthKey]int64)
	var order []monthKey
	for _, r := range records {
		key := RouteKey{Airline: strings.TrimSpace(r.Airline), Airport: strings.TrimSpace(r.Airport)}
		t.totals[key] += r.PAX
		t.grand += r.PAX

		mk := monthKey{route: key, year: r.Year, month: r.Month}
		if _, seen := perMonth[mk]; !seen {
			order = append(order, mk)
		}
		perMonth[mk] += r.PAX
	}
	for _, mk := range order {
		t.monthly[mk.route] = append(t.monthly[mk.route], perMonth[mk])
	}
	return t
}

// Total returns the summed PAX for a route over the period, 0 when absent.
func (t *PaxTable) Total(airline, airport string) int64 {
	if t == nil {
		return 0
	}
	return t.totals[RouteKey{Airline: airline, Airport: airport}]
}

// MonthlyTotals returns the per-month PAX sums recorded for a route. Months
// without data have no entry.
func (t *PaxTable) MonthlyTotals(airline, airport string) []int64 {
	if t == nil {
		return nil
	}
	return t.monthly[RouteKey{Airline: airline, Airport: airport}]
}

// GrandTotal returns the summed PAX across all routes in the period.
func (t *PaxTable) GrandTotal() int64 {
	if t == nil {
		return 0
	}
	return t.grand
}

// IncludedCases filters a case slice down to records that participate in
// density analysis.
func IncludedCases(cases []CaseRecord) []CaseRecord {
	out := make([]CaseRecord, 0, len(cases))
	for _, c := range cases {
		if c.Included {
			out = append(out, c)
		}
	}
	return out
}
