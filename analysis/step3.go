package analysis

import (
	"fmt"
	"sort"
)

// Priority is the review tier assigned to an assessed route.
type Priority string

const (
	PriorityHigh       Priority = "HIGH_PRIORITY"
	PriorityWatch      Priority = "WATCH_LIST"
	PriorityUnreliable Priority = "UNRELIABLE"
	PriorityClear      Priority = "CLEAR"
	PriorityNoData     Priority = "NO_DATA"
)

// rank orders priorities by actionability for sorting and triage.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityWatch:
		return 1
	case PriorityUnreliable:
		return 2
	case PriorityClear:
		return 3
	default: // NO_DATA
		return 4
	}
}

// Flagged reports whether the tier warrants tracking across periods.
func (p Priority) Flagged() bool {
	return p == PriorityHigh || p == PriorityWatch
}

// RouteAssessment is one Step 3 output row: a fully classified (airline,
// route) pair for one period. Priority is a pure function of (density,
// reliable, case count, threshold, settings) and can be re-derived from the
// stamped fields.
type RouteAssessment struct {
	Airline         string
	LastStop        string
	INAD            int
	PAX             int64 // includes partner-carrier contributions
	Density         *float64
	Reliable        bool
	Confidence      int
	DataQuality     string // "" when no warning applies
	MonthsWithData  int
	CodeBreakdown   map[string]int // category -> included case count
	Priority        Priority
	AboveThreshold  bool
	Threshold       float64
	ThresholdMethod ThresholdMethod
}

// ClassifyPriority assigns the review tier for one route. The decision tree:
// no density -> NO_DATA; unreliable PAX -> UNRELIABLE; above threshold plus
// the density floor, the multiplier margin and the case-count floor ->
// HIGH_PRIORITY; above threshold alone -> WATCH_LIST; otherwise CLEAR.
func ClassifyPriority(density *float64, reliable bool, inadCount int, threshold float64, s Settings) Priority {
	if density == nil {
		return PriorityNoData
	}
	if !reliable {
		return PriorityUnreliable
	}

	aboveThreshold := *density >= threshold
	aboveMinDensity := *density >= s.MinDensity
	aboveMultiplier := *density >= threshold*s.HighPriorityMultiplier
	aboveMinINAD := inadCount >= s.HighPriorityMinINAD

	switch {
	case aboveThreshold && aboveMinDensity && aboveMultiplier && aboveMinINAD:
		return PriorityHigh
	case aboveThreshold:
		return PriorityWatch
	default:
		return PriorityClear
	}
}

// Step3 assesses every route that passed Step 2: resolve pooled passenger
// volume, evaluate data quality, compute density and confidence, derive the
// population threshold from reliable routes only, and classify each route.
// Output is sorted by priority tier, then density descending.
func Step3(step2 []RouteCount, pax *PaxTable, cases []CaseRecord, partners PartnerMap, s Settings) []RouteAssessment {
	// Included cases per route and category, for the breakdown column.
	breakdowns := make(map[RouteKey]map[string]int)
	for _, c := range cases {
		if !c.Included {
			continue
		}
		key := RouteKey{Airline: c.Airline, Airport: c.LastStop}
		if breakdowns[key] == nil {
			breakdowns[key] = make(map[string]int)
		}
		breakdowns[key][c.Category]++
	}

	var rows []RouteAssessment
	for _, route := range step2 {
		if !route.PassesThreshold {
			continue
		}

		key := RouteKey{Airline: route.Airline, Airport: route.LastStop}
		p := pax.Total(route.Airline, route.LastStop)
		for _, partner := range partners[key] {
			p += pax.Total(partner, route.LastStop)
		}

		quality := CheckPaxQuality(pax, route.Airline, route.LastStop,
			expectedMonthsPerSemester, s.PaxCompletenessMonths)

		// At most one warning per route; incomplete data outranks variance
		// outranks low volume.
		warning := ""
		switch {
		case !quality.IsComplete:
			warning = fmt.Sprintf("Incomplete PAX data (%d/%d months)",
				quality.MonthsWithData, quality.ExpectedMonths)
		case quality.HighVariance:
			warning = "High variance in monthly PAX data"
		case p < s.MinPAX:
			warning = fmt.Sprintf("Low PAX volume (<%d)", s.MinPAX)
		}

		// Density is still computed below the reliability floor so reviewers
		// can see it, but unreliable values never feed the threshold.
		var density *float64
		reliable := false
		if p > 0 {
			d := float64(route.INADCount) / float64(p) * 1000
			density = &d
			reliable = p >= s.MinPAX
		}

		rows = append(rows, RouteAssessment{
			Airline:        route.Airline,
			LastStop:       route.LastStop,
			INAD:           route.INADCount,
			PAX:            p,
			Density:        density,
			Reliable:       reliable,
			Confidence:     ConfidenceScore(route.INADCount, p, s.MinPAX),
			DataQuality:    warning,
			MonthsWithData: quality.MonthsWithData,
			CodeBreakdown:  breakdowns[key],
		})
	}

	if len(rows) == 0 {
		return rows
	}

	var reliableDensities []float64
	for _, r := range rows {
		if r.Reliable && r.Density != nil {
			reliableDensities = append(reliableDensities, *r.Density)
		}
	}
	threshold := RobustThreshold(reliableDensities, s.ThresholdMethod, s.TrimmedPercent)

	for i := range rows {
		rows[i].Priority = ClassifyPriority(rows[i].Density, rows[i].Reliable, rows[i].INAD, threshold, s)
		rows[i].AboveThreshold = rows[i].Density != nil && *rows[i].Density >= threshold
		rows[i].Threshold = threshold
		rows[i].ThresholdMethod = s.ThresholdMethod
	}

	sort.Slice(rows, func(i, j int) bool {
		ri, rj := rows[i], rows[j]
		if ri.Priority.rank() != rj.Priority.rank() {
			return ri.Priority.rank() < rj.Priority.rank()
		}
		di, dj := ri.Density, rj.Density
		switch {
		case di != nil && dj != nil && *di != *dj:
			return *di > *dj
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		if ri.Airline != rj.Airline {
			return ri.Airline < rj.Airline
		}
		return ri.LastStop < rj.LastStop
	})
	return rows
}
