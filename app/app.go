// Package app wires sources, cache and the analysis pipeline into single-
// period and multi-semester runs.
package app

import (
	"fmt"
	"log"
	"time"

	"inad-watch/analysis"
	"inad-watch/cache"
	"inad-watch/config"
	"inad-watch/database"
	"inad-watch/loader"
)

// App owns the record sources and the optional period-result cache for one
// process.
type App struct {
	cfg      *config.Config
	cases    loader.CaseSource
	pax      loader.PaxSource
	partners analysis.PartnerMap

	db          *database.Database
	redis       *cache.RedisClient
	resultCache *cache.ResultCache
}

// New builds an App from configuration: picks the record sources (Postgres
// when enabled, otherwise workbook or CSV files), loads the partner-carrier
// map, and connects the optional Redis result cache.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	if cfg.Database.Enabled {
		log.Println("🗄️  Connecting to database...")
		db, err := database.Connect(
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.Name,
			cfg.Database.User,
			cfg.Database.Password,
		)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		a.db = db

		repo := database.NewRecordRepository(db)
		if err := repo.InitSchema(); err != nil {
			a.Close()
			return nil, fmt.Errorf("schema initialization failed: %w", err)
		}
		a.cases = repo
		a.pax = repo
	} else {
		caseSource, paxSource, err := fileSources(cfg.Sources)
		if err != nil {
			return nil, err
		}
		a.cases = caseSource
		a.pax = paxSource
	}

	partners, err := loader.LoadPartnerMap(cfg.Sources.PartnerMap)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.partners = partners

	if cfg.Redis.Enabled {
		a.redis = cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password)
		if a.redis == nil {
			log.Println("⚠️  Redis connection failed. Result caching disabled.")
		} else {
			a.resultCache = cache.NewResultCache(a.redis, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)
		}
	}

	return a, nil
}

// fileSources selects the file-backed sources; a workbook path wins over a
// CSV path for the same table.
func fileSources(src config.SourcesConfig) (loader.CaseSource, loader.PaxSource, error) {
	var cases loader.CaseSource
	switch {
	case src.CaseXLSX != "":
		cases = loader.ExcelCaseSource{Path: src.CaseXLSX, Sheet: src.CaseSheet}
	case src.CaseCSV != "":
		cases = loader.CSVCaseSource{Path: src.CaseCSV}
	default:
		return nil, nil, fmt.Errorf("no case source configured")
	}

	var pax loader.PaxSource
	switch {
	case src.PaxXLSX != "":
		pax = loader.ExcelPaxSource{Path: src.PaxXLSX, Sheet: src.PaxSheet}
	case src.PaxCSV != "":
		pax = loader.CSVPaxSource{Path: src.PaxCSV}
	default:
		return nil, nil, fmt.Errorf("no passenger-volume source configured")
	}

	return cases, pax, nil
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
		a.db = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("Error closing redis: %v", err)
		}
		a.redis = nil
	}
}
