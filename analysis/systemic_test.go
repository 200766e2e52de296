package analysis

import (
	"math"
	"testing"
)

func flaggedRow(airline, lastStop string, density float64, inad int) RouteAssessment {
	d := density
	return RouteAssessment{
		Airline:  airline,
		LastStop: lastStop,
		INAD:     inad,
		Density:  &d,
		Reliable: true,
		Priority: PriorityWatch,
	}
}

func TestDetectSystemicConsecutivePeriods(t *testing.T) {
	periods := []PeriodResult{
		{Label: "2023 H2", Assessments: []RouteAssessment{flaggedRow("LX", "PRN", 0.30, 8)}},
		{Label: "2024 H1", Assessments: []RouteAssessment{flaggedRow("LX", "PRN", 0.20, 7)}},
	}

	cases := DetectSystemicCases(periods, DefaultSettings())
	if len(cases) != 1 {
		t.Fatalf("expected 1 route history, got %d", len(cases))
	}

	sc := cases[0]
	if !sc.IsSystemic {
		t.Error("two consecutive flagged periods must be systemic")
	}
	if sc.MaxConsecutive != 2 || sc.TotalAppearances != 2 {
		t.Errorf("expected run 2 of 2 appearances, got %d of %d", sc.MaxConsecutive, sc.TotalAppearances)
	}
	if sc.Trend != TrendImproving {
		t.Errorf("density fell 0.30 to 0.20, expected IMPROVING, got %s", sc.Trend)
	}
	if math.Abs(sc.TrendPercent-(-33.333333)) > 0.01 {
		t.Errorf("expected trend about -33.33%%, got %.4f", sc.TrendPercent)
	}
	if sc.LatestPriority != PriorityWatch || sc.LatestINAD != 7 {
		t.Errorf("latest snapshot must come from the last period: %+v", sc)
	}
}

func TestDetectSystemicSingleAppearance(t *testing.T) {
	periods := []PeriodResult{
		{Label: "2024 H1", Assessments: []RouteAssessment{flaggedRow("LX", "PRN", 0.30, 8)}},
	}

	cases := DetectSystemicCases(periods, DefaultSettings())
	if len(cases) != 1 {
		t.Fatalf("expected 1 route history, got %d", len(cases))
	}
	if cases[0].IsSystemic {
		t.Error("a single appearance is never systemic")
	}
	if cases[0].Trend != TrendNew {
		t.Errorf("expected NEW trend, got %s", cases[0].Trend)
	}
}

// A route flagged in the first and third of three periods did not persist: its
// appearances are not adjacent, so its longest run stays at 1.
func TestDetectSystemicGapBreaksRun(t *testing.T) {
	periods := []PeriodResult{
		{Label: "2023 H1", Assessments: []RouteAssessment{flaggedRow("LX", "PRN", 0.30, 8)}},
		{Label: "2023 H2", Assessments: nil},
		{Label: "2024 H1", Assessments: []RouteAssessment{flaggedRow("LX", "PRN", 0.45, 9)}},
	}

	cases := DetectSystemicCases(periods, DefaultSettings())
	if len(cases) != 1 {
		t.Fatalf("expected 1 route history, got %d", len(cases))
	}

	sc := cases[0]
	if sc.TotalAppearances != 2 {
		t.Errorf("expected 2 total appearances, got %d", sc.TotalAppearances)
	}
	if sc.MaxConsecutive != 1 {
		t.Errorf("gapped appearances must not count as a run, got %d", sc.MaxConsecutive)
	}
	if sc.IsSystemic {
		t.Error("route with a gap must not be systemic at the default run length")
	}
	if sc.Trend != TrendWorsening {
		t.Errorf("density rose 0.30 to 0.45, expected WORSENING, got %s", sc.Trend)
	}
	if math.Abs(sc.TrendPercent-50.0) > 0.01 {
		t.Errorf("expected trend +50%%, got %.4f", sc.TrendPercent)
	}
}

func TestDetectSystemicIgnoresUnflaggedRoutes(t *testing.T) {
	clearRow := flaggedRow("QR", "DOH", 0.05, 6)
	clearRow.Priority = PriorityClear
	noData := RouteAssessment{Airline: "EK", LastStop: "DXB", INAD: 6, Priority: PriorityNoData}

	periods := []PeriodResult{
		{Label: "2024 H1", Assessments: []RouteAssessment{
			flaggedRow("LX", "PRN", 0.30, 8), clearRow, noData,
		}},
	}

	cases := DetectSystemicCases(periods, DefaultSettings())
	if len(cases) != 1 || cases[0].Airline != "LX" {
		t.Errorf("only flagged routes belong in histories, got %+v", cases)
	}
}

func TestDetectSystemicSortsSystemicFirst(t *testing.T) {
	periods := []PeriodResult{
		{Label: "2023 H2", Assessments: []RouteAssessment{
			flaggedRow("LX", "PRN", 0.30, 8),
		}},
		{Label: "2024 H1", Assessments: []RouteAssessment{
			flaggedRow("LX", "PRN", 0.25, 7),
			flaggedRow("QR", "DOH", 0.90, 12),
		}},
	}

	cases := DetectSystemicCases(periods, DefaultSettings())
	if len(cases) != 2 {
		t.Fatalf("expected 2 route histories, got %d", len(cases))
	}
	if cases[0].Airline != "LX" || !cases[0].IsSystemic {
		t.Errorf("systemic route must sort first despite the lower density, got %+v", cases[0])
	}
}

func TestMaxConsecutiveRun(t *testing.T) {
	tests := []struct {
		name     string
		indexes  []int
		expected int
	}{
		{"empty", nil, 0},
		{"single", []int{3}, 1},
		{"adjacent", []int{0, 1, 2}, 3},
		{"gapped", []int{0, 2, 4}, 1},
		{"mixed", []int{0, 1, 3, 4, 5}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxConsecutiveRun(tt.indexes); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestDensityTrendUnknownWithoutDensities(t *testing.T) {
	history := []Appearance{
		{Period: "2023 H2", Priority: PriorityWatch},
		{Period: "2024 H1", Priority: PriorityWatch},
	}
	trend, pct := densityTrend(history)
	if trend != TrendUnknown || pct != 0 {
		t.Errorf("two appearances without densities must be UNKNOWN, got %s %.2f", trend, pct)
	}
}
