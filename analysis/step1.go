package analysis

import "sort"

// AirlineCount is one Step 1 output row.
type AirlineCount struct {
	Airline         string
	INADCount       int
	PassesThreshold bool
}

// Step1 screens airlines: group included cases by airline, count, and flag
// airlines meeting the minimum case threshold. Output is sorted by count
// descending, airline code ascending on ties.
func Step1(cases []CaseRecord, minINAD int) []AirlineCount {
	counts := make(map[string]int)
	for _, c := range cases {
		if c.Included {
			counts[c.Airline]++
		}
	}

	out := make([]AirlineCount, 0, len(counts))
	for airline, n := range counts {
		out = append(out, AirlineCount{
			Airline:         airline,
			INADCount:       n,
			PassesThreshold: n >= minINAD,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].INADCount != out[j].INADCount {
			return out[i].INADCount > out[j].INADCount
		}
		return out[i].Airline < out[j].Airline
	})
	return out
}
