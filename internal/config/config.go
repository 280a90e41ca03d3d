// Package config loads seeder settings from an optional YAML file with
// SEEDER_* environment overrides on top.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/creature-seeder/internal/catalog/moves"
	"github.com/KirkDiggler/creature-seeder/internal/clients/creatures"
	"github.com/KirkDiggler/creature-seeder/internal/clients/rest"
	"github.com/KirkDiggler/creature-seeder/internal/clients/store"
	"github.com/KirkDiggler/creature-seeder/internal/entities"
	"github.com/KirkDiggler/creature-seeder/internal/errors"
	"github.com/KirkDiggler/creature-seeder/internal/orchestrators/seed"
	runreport "github.com/KirkDiggler/creature-seeder/internal/repositories/run_report"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "SEEDER_"

// Report store backends
const (
	ReportStoreNone   = "none"
	ReportStoreRedis  = "redis"
	ReportStoreSQLite = "sqlite"
)

// Config is the full process configuration
type Config struct {
	MovesPath        string        `yaml:"moves_path" env:"MOVES_PATH"`
	InsertCount      int           `yaml:"insert_count" env:"INSERT_COUNT"`
	MovesPerCreature int           `yaml:"moves_per_creature" env:"MOVES_PER_CREATURE"`
	PlaceholderID    int           `yaml:"placeholder_id" env:"PLACEHOLDER_ID"`
	Seed             uint64        `yaml:"seed" env:"SEED"`
	HTTPTimeout      time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT"`
	LogLevel         string        `yaml:"log_level" env:"LOG_LEVEL"`

	Catalog CatalogConfig `yaml:"catalog" envPrefix:"CATALOG_"`
	Store   StoreConfig   `yaml:"store" envPrefix:"STORE_"`
	Reports ReportsConfig `yaml:"reports" envPrefix:"REPORTS_"`
}

// CatalogConfig points at the creature catalog API
type CatalogConfig struct {
	BaseURL    string `yaml:"base_url" env:"BASE_URL"`
	SpeciesURL string `yaml:"species_url" env:"SPECIES_URL"`
}

// StoreConfig points at the destination store
type StoreConfig struct {
	URL string `yaml:"url" env:"URL"`
}

// ReportsConfig selects where run reports are kept
type ReportsConfig struct {
	Backend    string        `yaml:"backend" env:"BACKEND"`
	RedisURL   string        `yaml:"redis_url" env:"REDIS_URL"`
	SQLitePath string        `yaml:"sqlite_path" env:"SQLITE_PATH"`
	TTL        time.Duration `yaml:"ttl" env:"TTL"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		MovesPath:        moves.DefaultPath,
		InsertCount:      seed.DefaultInsertCount,
		MovesPerCreature: entities.MovesPerCreature,
		PlaceholderID:    seed.DefaultPlaceholderID,
		HTTPTimeout:      rest.DefaultTimeout,
		LogLevel:         "info",
		Catalog: CatalogConfig{
			BaseURL:    creatures.DefaultBaseURL,
			SpeciesURL: creatures.DefaultSpeciesURL,
		},
		Store: StoreConfig{
			URL: store.DefaultURL,
		},
		Reports: ReportsConfig{
			Backend:    ReportStoreNone,
			RedisURL:   "localhost:6379",
			SQLitePath: "seed_reports.db",
			TTL:        runreport.DefaultRedisTTL,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is set) and the environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeConfig, "failed to read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeConfig, "failed to parse config %s", path)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfig, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combined configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("MovesPath", c.MovesPath, vb)
	errors.ValidateMin("InsertCount", c.InsertCount, 1, vb)
	errors.ValidateMin("MovesPerCreature", c.MovesPerCreature, 1, vb)
	errors.ValidateMin("PlaceholderID", c.PlaceholderID, 1, vb)
	if c.HTTPTimeout <= 0 {
		vb.Field("HTTPTimeout", "must be positive")
	}
	errors.ValidateEnum("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateHTTPURL("Catalog.BaseURL", c.Catalog.BaseURL, vb)
	errors.ValidateHTTPURL("Catalog.SpeciesURL", c.Catalog.SpeciesURL, vb)
	errors.ValidateHTTPURL("Store.URL", c.Store.URL, vb)

	errors.ValidateEnum("Reports.Backend", c.Reports.Backend,
		[]string{ReportStoreNone, ReportStoreRedis, ReportStoreSQLite}, vb)
	switch c.Reports.Backend {
	case ReportStoreRedis:
		errors.ValidateRequired("Reports.RedisURL", c.Reports.RedisURL, vb)
	case ReportStoreSQLite:
		errors.ValidateRequired("Reports.SQLitePath", c.Reports.SQLitePath, vb)
	}

	if err := vb.Build(); err != nil {
		return errors.WrapWithCode(err, errors.CodeConfig, "invalid configuration")
	}
	return nil
}
