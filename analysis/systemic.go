package analysis

import "sort"

// RouteTrend is the density trend direction across a route's flagged periods.
type RouteTrend string

const (
	TrendImproving RouteTrend = "IMPROVING"
	TrendWorsening RouteTrend = "WORSENING"
	TrendNew       RouteTrend = "NEW"
	TrendUnknown   RouteTrend = "UNKNOWN"
)

// PeriodResult pairs a period label with its Step 3 table. The systemic
// detector requires these in chronological order.
type PeriodResult struct {
	Label       string
	Assessments []RouteAssessment
}

// Appearance is one flagged-period entry in a route's history.
type Appearance struct {
	Period   string
	Priority Priority
	Density  *float64
	INAD     int
	PAX      int64
}

// SystemicCase is the cross-period record for one route that was flagged
// HIGH_PRIORITY or WATCH_LIST in at least one period.
type SystemicCase struct {
	Airline          string
	LastStop         string
	TotalAppearances int
	// MaxConsecutive is the longest run of adjacent periods in which the
	// route was flagged. Adjacency is checked against the enumerated period
	// sequence, so a route flagged in periods 1 and 3 but not 2 has a run of
	// 1, not 2.
	MaxConsecutive int
	IsSystemic     bool
	Trend          RouteTrend
	TrendPercent   float64
	History        []Appearance
	LatestPriority Priority
	LatestDensity  *float64
	LatestINAD     int
}

type routeHistory struct {
	appearances []Appearance
	periods     []int // index into the ordered period list, ascending
}

// DetectSystemicCases walks the period-ordered Step 3 results and builds an
// appearance history for every route flagged HIGH_PRIORITY or WATCH_LIST in
// any period, then derives consecutive runs, the systemic flag and the
// density trend. Output is sorted by systemic flag, total appearances and
// latest density, all descending.
func DetectSystemicCases(periods []PeriodResult, s Settings) []SystemicCase {
	histories := make(map[RouteKey]*routeHistory)
	var order []RouteKey

	for idx, period := range periods {
		for _, row := range period.Assessments {
			if !row.Priority.Flagged() {
				continue
			}
			key := RouteKey{Airline: row.Airline, Airport: row.LastStop}
			h := histories[key]
			if h == nil {
				h = &routeHistory{}
				histories[key] = h
				order = append(order, key)
			}
			h.appearances = append(h.appearances, Appearance{
				Period:   period.Label,
				Priority: row.Priority,
				Density:  row.Density,
				INAD:     row.INAD,
				PAX:      row.PAX,
			})
			h.periods = append(h.periods, idx)
		}
	}

	cases := make([]SystemicCase, 0, len(order))
	for _, key := range order {
		h := histories[key]
		latest := h.appearances[len(h.appearances)-1]

		maxConsecutive := maxConsecutiveRun(h.periods)
		trend, trendPct := densityTrend(h.appearances)

		cases = append(cases, SystemicCase{
			Airline:          key.Airline,
			LastStop:         key.Airport,
			TotalAppearances: len(h.appearances),
			MaxConsecutive:   maxConsecutive,
			IsSystemic:       maxConsecutive >= s.SystemicSemesters,
			Trend:            trend,
			TrendPercent:     trendPct,
			History:          h.appearances,
			LatestPriority:   latest.Priority,
			LatestDensity:    latest.Density,
			LatestINAD:       latest.INAD,
		})
	}

	sort.Slice(cases, func(i, j int) bool {
		ci, cj := cases[i], cases[j]
		if ci.IsSystemic != cj.IsSystemic {
			return ci.IsSystemic
		}
		if ci.TotalAppearances != cj.TotalAppearances {
			return ci.TotalAppearances > cj.TotalAppearances
		}
		di, dj := ci.LatestDensity, cj.LatestDensity
		switch {
		case di != nil && dj != nil && *di != *dj:
			return *di > *dj
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		if ci.Airline != cj.Airline {
			return ci.Airline < cj.Airline
		}
		return ci.LastStop < cj.LastStop
	})
	return cases
}

// maxConsecutiveRun returns the longest run of adjacent indexes in an
// ascending index list.
func maxConsecutiveRun(indexes []int) int {
	best, run := 0, 0
	for i, idx := range indexes {
		if i > 0 && idx == indexes[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// densityTrend compares the last recorded density to the first. One
// appearance is NEW; multiple appearances without two comparable densities
// are UNKNOWN. The percentage is guarded against a zero baseline.
func densityTrend(history []Appearance) (RouteTrend, float64) {
	if len(history) < 2 {
		return TrendNew, 0
	}

	var densities []float64
	for _, a := range history {
		if a.Density != nil {
			densities = append(densities, *a.Density)
		}
	}
	if len(densities) < 2 {
		return TrendUnknown, 0
	}

	first, last := densities[0], densities[len(densities)-1]
	trend := TrendWorsening
	if last < first {
		trend = TrendImproving
	}
	pct := 0.0
	if first > 0 {
		pct = (last - first) / first * 100
	}
	return trend, pct
}
