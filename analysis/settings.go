package analysis

import "fmt"

// ThresholdMethod selects how the population density threshold is computed.
type ThresholdMethod string

const (
	ThresholdMean        ThresholdMethod = "mean"
	ThresholdMedian      ThresholdMethod = "median"
	ThresholdTrimmedMean ThresholdMethod = "trimmed_mean"
)

// Settings holds the analysis thresholds. Passed explicitly through the
// pipeline; never global state.
type Settings struct {
	// MinINAD is the minimum case count for the Step 1/2 screening threshold.
	MinINAD int `yaml:"min_inad"`
	// MinPAX is the minimum passenger volume for a density to be reliable.
	MinPAX int64 `yaml:"min_pax"`
	// MinDensity is the absolute density floor (per mille) for HIGH_PRIORITY.
	MinDensity float64 `yaml:"min_density"`
	// HighPriorityMultiplier scales the threshold for the HIGH_PRIORITY test.
	HighPriorityMultiplier float64 `yaml:"high_priority_multiplier"`
	// HighPriorityMinINAD is the minimum case count for HIGH_PRIORITY.
	HighPriorityMinINAD int `yaml:"high_priority_min_inad"`
	// ThresholdMethod picks the population threshold statistic.
	ThresholdMethod ThresholdMethod `yaml:"threshold_method"`
	// TrimmedPercent is the fraction trimmed from each tail for trimmed_mean.
	TrimmedPercent float64 `yaml:"trimmed_percent"`
	// SystemicSemesters is the minimum consecutive flagged periods for a route
	// to count as systemic.
	SystemicSemesters int `yaml:"systemic_semesters"`
	// PaxCompletenessMonths is the minimum months of PAX data for a route's
	// data to be considered complete within a semester.
	PaxCompletenessMonths int `yaml:"pax_completeness_months"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		MinINAD:                6,
		MinPAX:                 5000,
		MinDensity:             0.10,
		HighPriorityMultiplier: 1.5,
		HighPriorityMinINAD:    10,
		ThresholdMethod:        ThresholdMedian,
		TrimmedPercent:         0.1,
		SystemicSemesters:      2,
		PaxCompletenessMonths:  4,
	}
}

// Validate rejects settings no pipeline stage could honor.
func (s Settings) Validate() error {
	switch s.ThresholdMethod {
	case ThresholdMean, ThresholdMedian, ThresholdTrimmedMean:
	default:
		return fmt.Errorf("unknown threshold method %q", s.ThresholdMethod)
	}
	if s.TrimmedPercent < 0 || s.TrimmedPercent >= 0.5 {
		return fmt.Errorf("trimmed percent %v out of range [0, 0.5)", s.TrimmedPercent)
	}
	if s.MinINAD < 0 || s.HighPriorityMinINAD < 0 || s.MinPAX < 0 {
		return fmt.Errorf("screening thresholds must not be negative")
	}
	if s.SystemicSemesters < 1 {
		return fmt.Errorf("systemic semesters must be at least 1, got %d", s.SystemicSemesters)
	}
	return nil
}
