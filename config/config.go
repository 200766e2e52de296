package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"inad-watch/analysis"
)

// Config holds application configuration
type Config struct {
	Sources  SourcesConfig     `yaml:"sources"`
	Database DatabaseConfig    `yaml:"database"`
	Redis    RedisConfig       `yaml:"redis"`
	Workers  int               `yaml:"workers"`
	Analysis analysis.Settings `yaml:"analysis"`
}

// SourcesConfig points at the raw input tables. When a workbook path is set
// it takes precedence over the CSV path for the same table.
type SourcesConfig struct {
	CaseCSV    string `yaml:"case_csv"`
	PaxCSV     string `yaml:"pax_csv"`
	CaseXLSX   string `yaml:"case_xlsx"`
	PaxXLSX    string `yaml:"pax_xlsx"`
	CaseSheet  string `yaml:"case_sheet"`
	PaxSheet   string `yaml:"pax_sheet"`
	PartnerMap string `yaml:"partner_map"`
}

// DatabaseConfig configures the optional Postgres record source. When
// enabled it replaces the file sources.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// RedisConfig configures the optional period-result cache.
type RedisConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	Password   string `yaml:"password"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// Load builds the configuration: documented defaults, then the YAML file (if
// one exists at path), then environment overrides. A missing .env file is
// fine; a missing explicit config file is not.
func Load(path string) (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
			Name: "inad_watch",
			User: "inad",
		},
		Redis: RedisConfig{
			Host:       "localhost",
			Port:       "6379",
			TTLMinutes: 60,
		},
		Workers:  4,
		Analysis: analysis.DefaultSettings(),
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Analysis.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis settings: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

// applyEnv layers environment variables over the current values.
func (c *Config) applyEnv() {
	c.Sources.CaseCSV = getEnvOrDefault("INAD_CASE_CSV", c.Sources.CaseCSV)
	c.Sources.PaxCSV = getEnvOrDefault("INAD_PAX_CSV", c.Sources.PaxCSV)
	c.Sources.CaseXLSX = getEnvOrDefault("INAD_CASE_XLSX", c.Sources.CaseXLSX)
	c.Sources.PaxXLSX = getEnvOrDefault("INAD_PAX_XLSX", c.Sources.PaxXLSX)
	c.Sources.CaseSheet = getEnvOrDefault("INAD_CASE_SHEET", c.Sources.CaseSheet)
	c.Sources.PaxSheet = getEnvOrDefault("INAD_PAX_SHEET", c.Sources.PaxSheet)
	c.Sources.PartnerMap = getEnvOrDefault("INAD_PARTNER_MAP", c.Sources.PartnerMap)

	c.Database.Enabled = getEnvOrDefault("DB_ENABLED", boolString(c.Database.Enabled)) == "true"
	c.Database.Host = getEnvOrDefault("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.Name = getEnvOrDefault("DB_NAME", c.Database.Name)
	c.Database.User = getEnvOrDefault("DB_USER", c.Database.User)
	c.Database.Password = getEnvOrDefault("DB_PASSWORD", c.Database.Password)

	c.Redis.Enabled = getEnvOrDefault("REDIS_ENABLED", boolString(c.Redis.Enabled)) == "true"
	c.Redis.Host = getEnvOrDefault("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnvOrDefault("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.TTLMinutes = getEnvInt("REDIS_TTL_MINUTES", c.Redis.TTLMinutes)

	c.Workers = getEnvInt("ANALYSIS_WORKERS", c.Workers)

	c.Analysis.MinINAD = getEnvInt("ANALYSIS_MIN_INAD", c.Analysis.MinINAD)
	c.Analysis.MinPAX = int64(getEnvInt("ANALYSIS_MIN_PAX", int(c.Analysis.MinPAX)))
	c.Analysis.MinDensity = getEnvFloat("ANALYSIS_MIN_DENSITY", c.Analysis.MinDensity)
	c.Analysis.HighPriorityMultiplier = getEnvFloat("ANALYSIS_HIGH_PRIORITY_MULTIPLIER", c.Analysis.HighPriorityMultiplier)
	c.Analysis.HighPriorityMinINAD = getEnvInt("ANALYSIS_HIGH_PRIORITY_MIN_INAD", c.Analysis.HighPriorityMinINAD)
	c.Analysis.ThresholdMethod = analysis.ThresholdMethod(
		getEnvOrDefault("ANALYSIS_THRESHOLD_METHOD", string(c.Analysis.ThresholdMethod)))
	c.Analysis.TrimmedPercent = getEnvFloat("ANALYSIS_TRIMMED_PERCENT", c.Analysis.TrimmedPercent)
	c.Analysis.SystemicSemesters = getEnvInt("ANALYSIS_SYSTEMIC_SEMESTERS", c.Analysis.SystemicSemesters)
	c.Analysis.PaxCompletenessMonths = getEnvInt("ANALYSIS_PAX_COMPLETENESS_MONTHS", c.Analysis.PaxCompletenessMonths)
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat gets environment variable as float64 or returns default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var floatValue float64
	if _, err := fmt.Sscanf(value, "%f", &floatValue); err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
