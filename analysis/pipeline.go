package analysis

// Result bundles the three screening tables produced for one period.
type Result struct {
	Step1     []AirlineCount
	Step2     []RouteCount
	Step3     []RouteAssessment
	Threshold float64
	Settings  Settings
}

// Run executes the full Step1 -> Step2 -> Step3 pipeline for one period's
// records. Deterministic: identical inputs and settings yield identical
// tables. Empty inputs yield empty tables, not errors.
func Run(cases []CaseRecord, pax *PaxTable, partners PartnerMap, s Settings) *Result {
	step1 := Step1(cases, s.MinINAD)
	step2 := Step2(cases, step1, s.MinINAD)
	step3 := Step3(step2, pax, cases, partners, s)

	threshold := 0.0
	if len(step3) > 0 {
		threshold = step3[0].Threshold
	}

	return &Result{
		Step1:     step1,
		Step2:     step2,
		Step3:     step3,
		Threshold: threshold,
		Settings:  s,
	}
}

// CountPassing returns how many Step 1 rows pass the screening threshold.
func CountPassing(step1 []AirlineCount) int {
	n := 0
	for _, a := range step1 {
		if a.PassesThreshold {
			n++
		}
	}
	return n
}

// CountPassingRoutes returns how many Step 2 rows pass the screening
// threshold.
func CountPassingRoutes(step2 []RouteCount) int {
	n := 0
	for _, r := range step2 {
		if r.PassesThreshold {
			n++
		}
	}
	return n
}

// CountPriority returns how many Step 3 rows carry the given tier.
func CountPriority(step3 []RouteAssessment, p Priority) int {
	n := 0
	for _, r := range step3 {
		if r.Priority == p {
			n++
		}
	}
	return n
}
