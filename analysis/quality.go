package analysis

import "math"

// Months in a semester period; the quality check measures completeness
// against this.
const expectedMonthsPerSemester = 6

// PaxQuality summarizes the monthly PAX data quality for one route.
type PaxQuality struct {
	MonthsWithData int
	ExpectedMonths int
	Completeness   float64
	IsComplete     bool
	TotalPAX       int64
	AvgMonthlyPAX  float64
	HighVariance   bool
}

// CheckPaxQuality evaluates the monthly PAX breakdown for a route. A route is
// complete when at least minMonths of the expected months have data, and high
// variance when the largest monthly count exceeds ten times the smallest (a
// month of zero counts as infinite variance).
func CheckPaxQuality(table *PaxTable, airline, airport string, expectedMonths, minMonths int) PaxQuality {
	monthly := table.MonthlyTotals(airline, airport)

	q := PaxQuality{
		MonthsWithData: len(monthly),
		ExpectedMonths: expectedMonths,
		IsComplete:     len(monthly) >= minMonths,
	}
	if expectedMonths > 0 {
		q.Completeness = float64(len(monthly)) / float64(expectedMonths)
	}

	for _, pax := range monthly {
		q.TotalPAX += pax
	}

	if len(monthly) > 0 {
		q.AvgMonthlyPAX = float64(q.TotalPAX) / float64(len(monthly))

		maxPax, minPax := monthly[0], monthly[0]
		for _, pax := range monthly[1:] {
			if pax > maxPax {
				maxPax = pax
			}
			if pax < minPax {
				minPax = pax
			}
		}
		varianceRatio := math.Inf(1)
		if minPax > 0 {
			varianceRatio = float64(maxPax) / float64(minPax)
		}
		q.HighVariance = varianceRatio > 10
	}
	return q
}
