package main

import (
	"context"
	"log"
	"os"

	"inad-watch/analysis"
	"inad-watch/app"
	"inad-watch/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("INAD_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer application.Close()

	result, err := application.RunMultiSemester(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	for _, summary := range result.Summaries {
		log.Printf("📊 %s: %d cases, %d PAX, %d airlines passed, %d routes passed, %d HIGH_PRIORITY, %d WATCH_LIST (threshold %.4f‰)",
			summary.Label, summary.TotalINAD, summary.TotalPAX,
			summary.Step1Airlines, summary.Step2Routes,
			summary.HighPriority, summary.WatchList, summary.Threshold)
	}

	systemic := 0
	for _, sc := range result.Systemic {
		if sc.IsSystemic {
			systemic++
			log.Printf("🚨 Systemic: %s via %s, %d appearances, trend %s (%.1f%%)",
				sc.Airline, sc.LastStop, sc.TotalAppearances, sc.Trend, sc.TrendPercent)
		}
	}

	if len(result.Runs) > 0 {
		latest := result.Runs[len(result.Runs)-1]
		summary := analysis.BuildLegalSummary(latest.Result.Step3, result.Systemic, "")
		log.Printf("✅ Latest period %s: %d routes analyzed, %d high priority, %d watch list, %d systemic",
			latest.Semester.Label(), summary.TotalRoutesAnalyzed,
			summary.HighPriorityCount, summary.WatchListCount, systemic)
	}
}
