package app

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"inad-watch/analysis"
	"inad-watch/cache"
	"inad-watch/loader"
)

// PeriodRun is one semester's pipeline output plus its aggregate summary.
type PeriodRun struct {
	Semester analysis.Semester
	Result   *analysis.Result
	Summary  analysis.PeriodSummary
}

// MultiSemesterResult aggregates a full multi-period run.
type MultiSemesterResult struct {
	Runs      []*PeriodRun // chronological, failed periods omitted
	Summaries []analysis.PeriodSummary
	Systemic  []analysis.SystemicCase
}

// RunPeriod loads one semester's records and executes the pipeline. The
// result cache is consulted with a hash of the loaded inputs and settings, so
// a hit is only possible when the underlying data is unchanged.
func (a *App) RunPeriod(ctx context.Context, sem analysis.Semester) (*PeriodRun, error) {
	window := loader.Window{Start: sem.Start, End: sem.End}

	cases, err := a.cases.LoadCases(window)
	if err != nil {
		return nil, err
	}
	paxRecords, err := a.pax.LoadPax(window)
	if err != nil {
		return nil, err
	}
	paxTable := analysis.BuildPaxTable(paxRecords)

	// The partner map is flattened to its canonical string form; struct-keyed
	// maps are not JSON-marshalable and an unhashable input must disable the
	// cache, never collapse to a shared hash.
	hash, hashErr := cache.InputHash(struct {
		Cases    []analysis.CaseRecord
		Pax      []analysis.PaxRecord
		Partners []string
		Settings analysis.Settings
	}{cases, paxRecords, a.partners.Canonical(), a.cfg.Analysis})
	if hashErr != nil {
		log.Printf("⚠️  Input hashing failed for %s, caching disabled: %v", sem.Label(), hashErr)
	}

	var result *analysis.Result
	if hashErr == nil {
		if cached, hit := a.resultCache.Get(ctx, sem.Label(), hash); hit {
			result = cached
		}
	}
	if result == nil {
		result = analysis.Run(cases, paxTable, a.partners, a.cfg.Analysis)
		if hashErr == nil && a.resultCache != nil {
			if err := a.resultCache.Set(ctx, sem.Label(), hash, result); err != nil {
				log.Printf("⚠️  Failed to cache result for %s: %v", sem.Label(), err)
			}
		}
	}

	return &PeriodRun{
		Semester: sem,
		Result:   result,
		Summary:  analysis.BuildPeriodSummary(sem, result, cases, paxTable),
	}, nil
}

// RunMultiSemester enumerates every semester present in the case source and
// runs the pipeline for each. Periods are independent, so they fan out across
// bounded workers; results are joined back in chronological order before the
// systemic detector. A failing period is logged and omitted rather than
// aborting the run.
func (a *App) RunMultiSemester(ctx context.Context) (*MultiSemesterResult, error) {
	allCases, err := a.cases.LoadCases(loader.Window{})
	if err != nil {
		return nil, err
	}

	semesters := analysis.EnumerateSemesters(allCases)
	// EnumerateSemesters returns most recent first; the detector needs
	// chronological order.
	chronological := make([]analysis.Semester, len(semesters))
	for i, sem := range semesters {
		chronological[len(semesters)-1-i] = sem
	}

	runs := make([]*PeriodRun, len(chronological))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, sem := range chronological {
		i, sem := i, sem
		g.Go(func() error {
			run, err := a.RunPeriod(gctx, sem)
			if err != nil {
				log.Printf("⚠️  Skipping period %s: %v", sem.Label(), err)
				return nil
			}
			mu.Lock()
			runs[i] = run
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &MultiSemesterResult{}
	var periodResults []analysis.PeriodResult
	for _, run := range runs {
		if run == nil {
			continue
		}
		out.Runs = append(out.Runs, run)
		out.Summaries = append(out.Summaries, run.Summary)
		periodResults = append(periodResults, analysis.PeriodResult{
			Label:       run.Semester.Label(),
			Assessments: run.Result.Step3,
		})
	}

	out.Systemic = analysis.DetectSystemicCases(periodResults, a.cfg.Analysis)
	return out, nil
}
