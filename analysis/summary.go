package analysis

import (
	"sort"
	"time"
)

// RouteDigest is the condensed per-route view used in review summaries.
type RouteDigest struct {
	Airline    string
	LastStop   string
	INAD       int
	PAX        int64
	Density    *float64
	Confidence int
}

// QualityIssue lists a route whose assessment carried a data-quality warning.
type QualityIssue struct {
	Airline     string
	LastStop    string
	DataQuality string
}

// SystemicDigest is the condensed systemic-case view for review summaries.
type SystemicDigest struct {
	Airline          string
	LastStop         string
	TotalAppearances int
	Trend            RouteTrend
	TrendPercent     float64
}

// LegalSummary is the structured digest handed to legal review: headline
// counts plus the rows behind them.
type LegalSummary struct {
	TotalRoutesAnalyzed int
	HighPriorityCount   int
	WatchListCount      int
	ThresholdUsed       float64
	ThresholdMethod     ThresholdMethod
	HighPriorityRoutes  []RouteDigest
	WatchListRoutes     []RouteDigest
	DataQualityIssues   []QualityIssue
	SystemicCount       int
	SystemicCases       []SystemicDigest
}

// BuildLegalSummary projects a Step 3 table (optionally restricted to one
// airline) and optional systemic results into the review digest. Read-only;
// no reclassification happens here.
func BuildLegalSummary(step3 []RouteAssessment, systemic []SystemicCase, airline string) LegalSummary {
	rows := step3
	if airline != "" {
		rows = nil
		for _, r := range step3 {
			if r.Airline == airline {
				rows = append(rows, r)
			}
		}
	}

	sum := LegalSummary{TotalRoutesAnalyzed: len(rows)}
	if len(rows) > 0 {
		sum.ThresholdUsed = rows[0].Threshold
		sum.ThresholdMethod = rows[0].ThresholdMethod
	}

	for _, r := range rows {
		digest := RouteDigest{
			Airline:    r.Airline,
			LastStop:   r.LastStop,
			INAD:       r.INAD,
			PAX:        r.PAX,
			Density:    r.Density,
			Confidence: r.Confidence,
		}
		switch r.Priority {
		case PriorityHigh:
			sum.HighPriorityRoutes = append(sum.HighPriorityRoutes, digest)
		case PriorityWatch:
			sum.WatchListRoutes = append(sum.WatchListRoutes, digest)
		}
		if r.DataQuality != "" {
			sum.DataQualityIssues = append(sum.DataQualityIssues, QualityIssue{
				Airline:     r.Airline,
				LastStop:    r.LastStop,
				DataQuality: r.DataQuality,
			})
		}
	}
	sum.HighPriorityCount = len(sum.HighPriorityRoutes)
	sum.WatchListCount = len(sum.WatchListRoutes)

	for _, sc := range systemic {
		if !sc.IsSystemic {
			continue
		}
		sum.SystemicCases = append(sum.SystemicCases, SystemicDigest{
			Airline:          sc.Airline,
			LastStop:         sc.LastStop,
			TotalAppearances: sc.TotalAppearances,
			Trend:            sc.Trend,
			TrendPercent:     sc.TrendPercent,
		})
	}
	sum.SystemicCount = len(sum.SystemicCases)
	return sum
}

// PeriodSummary is one aggregate row per reporting period, feeding the
// multi-period trend view.
type PeriodSummary struct {
	Year          int
	Semester      int
	Label         string
	Start         time.Time
	End           time.Time
	TotalINAD     int
	TotalPAX      int64
	Step1Airlines int
	Step2Routes   int
	HighPriority  int
	WatchList     int
	Threshold     float64
	INADRate      float64 // included cases per million passengers
}

// BuildPeriodSummary aggregates one period's pipeline result into a summary
// row.
func BuildPeriodSummary(sem Semester, res *Result, cases []CaseRecord, pax *PaxTable) PeriodSummary {
	totalINAD := len(IncludedCases(cases))
	totalPAX := pax.GrandTotal()

	rate := 0.0
	if totalPAX > 0 {
		rate = float64(totalINAD) / float64(totalPAX) * 1_000_000
	}

	return PeriodSummary{
		Year:          sem.Year,
		Semester:      sem.Half,
		Label:         sem.Label(),
		Start:         sem.Start,
		End:           sem.End,
		TotalINAD:     totalINAD,
		TotalPAX:      totalPAX,
		Step1Airlines: CountPassing(res.Step1),
		Step2Routes:   CountPassingRoutes(res.Step2),
		HighPriority:  CountPriority(res.Step3, PriorityHigh),
		WatchList:     CountPriority(res.Step3, PriorityWatch),
		Threshold:     res.Threshold,
		INADRate:      rate,
	}
}

// AirlineComparison contextualizes one airline's flagged routes against the
// rest of its assessed routes, separating isolated corridors from
// airline-wide problems.
type AirlineComparison struct {
	TotalRoutes    int
	FlaggedRoutes  int
	FlaggedPercent float64
	AvgDensity     float64
}

// CompareAirline summarizes one airline's rows in a Step 3 table. Returns nil
// when the airline has no assessed routes. The average covers only routes
// with a computable density.
func CompareAirline(step3 []RouteAssessment, airline string) *AirlineComparison {
	var total, flagged, withDensity int
	var densitySum float64
	for _, r := range step3 {
		if r.Airline != airline {
			continue
		}
		total++
		if r.Priority.Flagged() {
			flagged++
		}
		if r.Density != nil {
			withDensity++
			densitySum += *r.Density
		}
	}
	if total == 0 {
		return nil
	}

	cmp := &AirlineComparison{
		TotalRoutes:    total,
		FlaggedRoutes:  flagged,
		FlaggedPercent: float64(flagged) / float64(total) * 100,
	}
	if withDensity > 0 {
		cmp.AvgDensity = densitySum / float64(withDensity)
	}
	return cmp
}

// CodeStat is one disposition-code statistics row.
type CodeStat struct {
	Code        string
	Included    bool
	Count       int
	Description string
}

// CodeStats counts cases per (disposition code, inclusion) pair with
// descriptions attached, sorted by count descending. Covers all loaded cases,
// excluded codes included, so reviewers can see what was filtered out.
func CodeStats(cases []CaseRecord) []CodeStat {
	type statKey struct {
		code     string
		included bool
	}
	counts := make(map[statKey]int)
	for _, c := range cases {
		counts[statKey{code: c.Code, included: c.Included}]++
	}

	out := make([]CodeStat, 0, len(counts))
	for key, n := range counts {
		out = append(out, CodeStat{
			Code:        key.code,
			Included:    key.included,
			Count:       n,
			Description: DescribeCode(key.code),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].Included && !out[j].Included
	})
	return out
}
