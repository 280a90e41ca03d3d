package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/creature-seeder/internal/catalog/moves"
	"github.com/KirkDiggler/creature-seeder/internal/clients/creatures"
	"github.com/KirkDiggler/creature-seeder/internal/clients/store"
	"github.com/KirkDiggler/creature-seeder/internal/config"
	"github.com/KirkDiggler/creature-seeder/internal/errors"
	"github.com/KirkDiggler/creature-seeder/internal/orchestrators/seed"
	"github.com/KirkDiggler/creature-seeder/internal/pkg/clock"
	"github.com/KirkDiggler/creature-seeder/internal/pkg/idgen"
	"github.com/KirkDiggler/creature-seeder/internal/pkg/random"
	"github.com/KirkDiggler/creature-seeder/internal/redis"
	runreport "github.com/KirkDiggler/creature-seeder/internal/repositories/run_report"
	"github.com/KirkDiggler/creature-seeder/internal/services/conversion"
)

// newOrchestrator wires the seed orchestrator from configuration. reports may
// be nil.
func newOrchestrator(cfg *config.Config, logger *zap.Logger, reports runreport.Repository) (seed.Service, error) {
	loader, err := moves.NewFileLoader(&moves.Config{
		Path:     cfg.MovesPath,
		MinMoves: cfg.MovesPerCreature,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create moves loader")
	}

	creatureClient, err := creatures.New(&creatures.Config{
		BaseURL:       cfg.Catalog.BaseURL,
		SpeciesURL:    cfg.Catalog.SpeciesURL,
		HTTPTimeout:   cfg.HTTPTimeout,
		MinPopulation: cfg.InsertCount,
		Logger:        logger.Named("creatures"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create creature client")
	}

	storeClient, err := store.New(&store.Config{
		URL:         cfg.Store.URL,
		HTTPTimeout: cfg.HTTPTimeout,
		Logger:      logger.Named("store"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create store client")
	}

	return seed.New(&seed.Config{
		MovesLoader:      loader,
		CreatureClient:   creatureClient,
		StoreClient:      storeClient,
		Converter:        conversion.NewPayloadConverter(),
		Roller:           random.NewRoller(cfg.Seed),
		ReportRepo:       reports,
		Clock:            clock.New(),
		IDGenerator:      idgen.NewUUID("run"),
		Logger:           logger.Named("seed"),
		InsertCount:      cfg.InsertCount,
		MovesPerCreature: cfg.MovesPerCreature,
		PlaceholderID:    cfg.PlaceholderID,
	})
}

// openReportRepo opens the configured report store. It returns a nil
// repository when reports are disabled. The returned func releases it.
func openReportRepo(ctx context.Context, cfg *config.Config, logger *zap.Logger) (runreport.Repository, func(), error) {
	switch cfg.Reports.Backend {
	case config.ReportStoreRedis:
		client, err := redis.NewClient(cfg.Reports.RedisURL, nil)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create redis client")
		}
		repo, err := runreport.NewRedisRepository(&runreport.RedisConfig{
			Client: client,
			TTL:    cfg.Reports.TTL,
			Logger: logger.Named("reports"),
		})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repo, func() { _ = client.Close() }, nil

	case config.ReportStoreSQLite:
		repo, err := runreport.NewSQLiteRepository(ctx, &runreport.SQLiteConfig{Path: cfg.Reports.SQLitePath})
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil

	default:
		return nil, func() {}, nil
	}
}
