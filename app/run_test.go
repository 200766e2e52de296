package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"inad-watch/analysis"
	"inad-watch/config"
	"inad-watch/loader"
)

// memCaseSource serves case records from memory, honoring the window the way
// the file sources do.
type memCaseSource struct {
	records []analysis.CaseRecord
}

func (s memCaseSource) LoadCases(w loader.Window) ([]analysis.CaseRecord, error) {
	var out []analysis.CaseRecord
	for _, r := range s.records {
		if w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type memPaxSource struct {
	records []analysis.PaxRecord
}

func (s memPaxSource) LoadPax(w loader.Window) ([]analysis.PaxRecord, error) {
	var out []analysis.PaxRecord
	for _, r := range s.records {
		if w.Contains(time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)) {
			out = append(out, r)
		}
	}
	return out, nil
}

// failingPaxSource errors for any window starting in the second half of the
// year.
type failingPaxSource struct {
	inner memPaxSource
}

func (s failingPaxSource) LoadPax(w loader.Window) ([]analysis.PaxRecord, error) {
	if !w.Start.IsZero() && w.Start.Month() >= 7 {
		return nil, errors.New("source unavailable")
	}
	return s.inner.LoadPax(w)
}

func routeData(year int, months []int) ([]analysis.CaseRecord, []analysis.PaxRecord) {
	var cases []analysis.CaseRecord
	var pax []analysis.PaxRecord
	for _, m := range months {
		cases = append(cases, analysis.NewCaseRecord("LX", "PRN", year, m, "A1"))
		cases = append(cases, analysis.NewCaseRecord("LX", "PRN", year, m, "A1"))
		pax = append(pax, analysis.PaxRecord{Airline: "LX", Airport: "PRN", Year: year, Month: m, PAX: 1500})
	}
	return cases, pax
}

func testApp(cases loader.CaseSource, pax loader.PaxSource) *App {
	cfg := &config.Config{
		Workers:  2,
		Analysis: analysis.DefaultSettings(),
	}
	return &App{
		cfg:      cfg,
		cases:    cases,
		pax:      pax,
		partners: analysis.PartnerMap{},
	}
}

func TestRunPeriod(t *testing.T) {
	cases, pax := routeData(2024, []int{1, 2, 3, 4})

	a := testApp(memCaseSource{records: cases}, memPaxSource{records: pax})
	run, err := a.RunPeriod(context.Background(), analysis.SemesterFor(2024, 1))
	if err != nil {
		t.Fatal(err)
	}

	if run.Summary.TotalINAD != 8 || run.Summary.TotalPAX != 6000 {
		t.Errorf("unexpected totals: %+v", run.Summary)
	}
	if len(run.Result.Step3) != 1 {
		t.Fatalf("expected 1 assessed route, got %d", len(run.Result.Step3))
	}

	row := run.Result.Step3[0]
	if row.Priority != analysis.PriorityWatch {
		t.Errorf("8 cases per 6000 PAX at its own median must be WATCH_LIST, got %s", row.Priority)
	}
	if row.Density == nil || *row.Density < 1.33 || *row.Density > 1.34 {
		t.Errorf("expected density about 1.333, got %v", row.Density)
	}
}

func TestRunMultiSemesterSystemic(t *testing.T) {
	h1Cases, h1Pax := routeData(2024, []int{1, 2, 3, 4})
	h2Cases, h2Pax := routeData(2024, []int{7, 8, 9, 10})

	a := testApp(
		memCaseSource{records: append(h1Cases, h2Cases...)},
		memPaxSource{records: append(h1Pax, h2Pax...)},
	)

	result, err := a.RunMultiSemester(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Runs) != 2 || len(result.Summaries) != 2 {
		t.Fatalf("expected 2 period runs, got %d", len(result.Runs))
	}
	if result.Summaries[0].Label != "2024 H1" || result.Summaries[1].Label != "2024 H2" {
		t.Errorf("runs must come back in chronological order: %v, %v",
			result.Summaries[0].Label, result.Summaries[1].Label)
	}

	if len(result.Systemic) != 1 {
		t.Fatalf("expected 1 systemic history, got %d", len(result.Systemic))
	}
	sc := result.Systemic[0]
	if !sc.IsSystemic || sc.MaxConsecutive != 2 {
		t.Errorf("route flagged in both semesters must be systemic: %+v", sc)
	}
	if sc.TrendPercent != 0 {
		t.Errorf("identical densities must show a flat trend, got %v", sc.TrendPercent)
	}
}

func TestRunMultiSemesterSkipsFailingPeriod(t *testing.T) {
	h1Cases, h1Pax := routeData(2024, []int{1, 2, 3, 4})
	h2Cases, h2Pax := routeData(2024, []int{7, 8, 9, 10})

	a := testApp(
		memCaseSource{records: append(h1Cases, h2Cases...)},
		failingPaxSource{inner: memPaxSource{records: append(h1Pax, h2Pax...)}},
	)

	result, err := a.RunMultiSemester(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Runs) != 1 {
		t.Fatalf("expected the failing period to be skipped, got %d runs", len(result.Runs))
	}
	if result.Summaries[0].Label != "2024 H1" {
		t.Errorf("surviving period must be 2024 H1, got %s", result.Summaries[0].Label)
	}
}

func TestFileSourcesSelection(t *testing.T) {
	src := config.SourcesConfig{CaseCSV: "/data/cases.csv", PaxCSV: "/data/pax.csv"}
	cases, pax, err := fileSources(src)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cases.(loader.CSVCaseSource); !ok {
		t.Errorf("expected CSV case source, got %T", cases)
	}
	if _, ok := pax.(loader.CSVPaxSource); !ok {
		t.Errorf("expected CSV pax source, got %T", pax)
	}

	src.CaseXLSX = "/data/data.xlsx"
	src.PaxXLSX = "/data/data.xlsx"
	cases, pax, err = fileSources(src)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cases.(loader.ExcelCaseSource); !ok {
		t.Errorf("workbook path must win over CSV, got %T", cases)
	}
	if _, ok := pax.(loader.ExcelPaxSource); !ok {
		t.Errorf("workbook path must win over CSV, got %T", pax)
	}

	if _, _, err := fileSources(config.SourcesConfig{}); err == nil {
		t.Error("no configured sources must fail")
	}
}
