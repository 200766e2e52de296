package analysis

import "sort"

// RouteCount is one Step 2 output row.
type RouteCount struct {
	Airline         string
	LastStop        string
	INADCount       int
	PassesThreshold bool
}

// Step2 screens routes within airlines that passed Step 1: group their
// included cases by (airline, last stop), count, and apply the same minimum
// threshold. Restricting to Step 1 airlines keeps a single busy route from
// dragging an airline's unrelated routes into review, and vice versa.
func Step2(cases []CaseRecord, step1 []AirlineCount, minINAD int) []RouteCount {
	passing := make(map[string]bool, len(step1))
	for _, a := range step1 {
		if a.PassesThreshold {
			passing[a.Airline] = true
		}
	}

	counts := make(map[RouteKey]int)
	for _, c := range cases {
		if c.Included && passing[c.Airline] {
			counts[RouteKey{Airline: c.Airline, Airport: c.LastStop}]++
		}
	}

	out := make([]RouteCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, RouteCount{
			Airline:         key.Airline,
			LastStop:        key.Airport,
			INADCount:       n,
			PassesThreshold: n >= minINAD,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].INADCount != out[j].INADCount {
			return out[i].INADCount > out[j].INADCount
		}
		if out[i].Airline != out[j].Airline {
			return out[i].Airline < out[j].Airline
		}
		return out[i].LastStop < out[j].LastStop
	})
	return out
}
