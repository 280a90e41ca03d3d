// Package seed drives a seed run: it loads the move catalog, discovers the
// creature population, samples ids, inserts one payload per id and finally
// removes the placeholder row from the store.
package seed

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.uber.org/zap"

	"github.com/KirkDiggler/creature-seeder/internal/catalog/moves"
	"github.com/KirkDiggler/creature-seeder/internal/clients/creatures"
	"github.com/KirkDiggler/creature-seeder/internal/clients/store"
	"github.com/KirkDiggler/creature-seeder/internal/entities"
	"github.com/KirkDiggler/creature-seeder/internal/errors"
	"github.com/KirkDiggler/creature-seeder/internal/pkg/clock"
	"github.com/KirkDiggler/creature-seeder/internal/pkg/idgen"
	"github.com/KirkDiggler/creature-seeder/internal/pkg/random"
	runreport "github.com/KirkDiggler/creature-seeder/internal/repositories/run_report"
	"github.com/KirkDiggler/creature-seeder/internal/services/conversion"
)

const (
	// DefaultInsertCount is the number of creatures seeded per run
	DefaultInsertCount = 8
	// DefaultPlaceholderID is the row removed at the end of a run
	DefaultPlaceholderID = 1
)

// Service defines the seed operations
type Service interface {
	// Run performs a full seed run. Per-creature failures are recorded in the
	// report and do not fail the run; catalog, population and cleanup
	// failures do.
	Run(ctx context.Context, input *RunInput) (*RunOutput, error)

	// Cleanup only deletes the placeholder row
	Cleanup(ctx context.Context, input *CleanupInput) (*CleanupOutput, error)
}

// Config holds the dependencies for the seed orchestrator
type Config struct {
	MovesLoader    moves.Loader
	CreatureClient creatures.Client
	StoreClient    store.Client
	Converter      conversion.PayloadConverter
	Roller         dice.Roller
	// ReportRepo persists run reports (optional)
	ReportRepo  runreport.Repository
	Clock       clock.Clock
	IDGenerator idgen.Generator
	Logger      *zap.Logger

	// InsertCount (optional, defaults to DefaultInsertCount)
	InsertCount int
	// MovesPerCreature (optional, defaults to entities.MovesPerCreature)
	MovesPerCreature int
	// PlaceholderID (optional, defaults to DefaultPlaceholderID)
	PlaceholderID int
}

// Validate ensures all required dependencies are provided and applies defaults
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	if c.Converter == nil {
		c.Converter = conversion.NewPayloadConverter()
	}
	if c.Roller == nil {
		c.Roller = random.NewRoller(0)
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.IDGenerator == nil {
		c.IDGenerator = idgen.NewUUID("run")
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.InsertCount == 0 {
		c.InsertCount = DefaultInsertCount
	}
	if c.MovesPerCreature == 0 {
		c.MovesPerCreature = entities.MovesPerCreature
	}
	if c.PlaceholderID == 0 {
		c.PlaceholderID = DefaultPlaceholderID
	}

	vb := errors.NewValidationBuilder()

	if c.MovesLoader == nil {
		vb.RequiredField("MovesLoader")
	}
	if c.CreatureClient == nil {
		vb.RequiredField("CreatureClient")
	}
	if c.StoreClient == nil {
		vb.RequiredField("StoreClient")
	}
	errors.ValidateMin("InsertCount", c.InsertCount, 1, vb)
	errors.ValidateMin("MovesPerCreature", c.MovesPerCreature, 1, vb)
	errors.ValidateMin("PlaceholderID", c.PlaceholderID, 1, vb)

	return vb.Build()
}

type orchestrator struct {
	movesLoader      moves.Loader
	creatureClient   creatures.Client
	storeClient      store.Client
	converter        conversion.PayloadConverter
	roller           dice.Roller
	reportRepo       runreport.Repository
	clock            clock.Clock
	idGen            idgen.Generator
	logger           *zap.Logger
	insertCount      int
	movesPerCreature int
	placeholderID    int
}

// New creates a new seed orchestrator with the provided dependencies
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		movesLoader:      cfg.MovesLoader,
		creatureClient:   cfg.CreatureClient,
		storeClient:      cfg.StoreClient,
		converter:        cfg.Converter,
		roller:           cfg.Roller,
		reportRepo:       cfg.ReportRepo,
		clock:            cfg.Clock,
		idGen:            cfg.IDGenerator,
		logger:           cfg.Logger,
		insertCount:      cfg.InsertCount,
		movesPerCreature: cfg.MovesPerCreature,
		placeholderID:    cfg.PlaceholderID,
	}, nil
}

// Run performs a full seed run
func (o *orchestrator) Run(ctx context.Context, input *RunInput) (*RunOutput, error) {
	if input == nil {
		input = &RunInput{}
	}

	report := &runreport.RunReport{
		RunID:     o.idGen.Generate(),
		StartedAt: o.clock.Now(),
		DryRun:    input.DryRun,
		Requested: o.insertCount,
	}
	log := o.logger.With(zap.String("run_id", report.RunID))

	enterPhase(log, PhaseLoadingCatalog)
	catalog, err := o.loadCatalog(ctx)
	if err != nil {
		return nil, fatal(log, PhaseLoadingCatalog, err)
	}
	log.Info("moves catalog loaded", zap.Int("moves", len(catalog)))

	enterPhase(log, PhaseDiscoveringPopulation)
	population, err := o.discoverPopulation(ctx)
	if err != nil {
		return nil, fatal(log, PhaseDiscoveringPopulation, err)
	}
	report.Population = population
	log.Info("population discovered", zap.Int("population", population))

	enterPhase(log, PhaseSampling)
	ids, err := random.SampleUnique(o.roller, o.insertCount, population)
	if err != nil {
		return nil, fatal(log, PhaseSampling, errors.Wrap(err, "failed to sample creature ids"))
	}
	log.Debug("creature ids sampled", zap.Ints("creature_ids", ids))

	enterPhase(log, PhaseSeeding)
	var runErr error
	for i, id := range ids {
		if ctxErr := ctx.Err(); ctxErr != nil {
			runErr = errors.WrapWithCode(ctxErr, errors.CodeCanceled, "seed run canceled")
			for _, remaining := range ids[i:] {
				report.Results = append(report.Results, failedResult(remaining, runErr))
			}
			log.Warn("seeding stopped", zap.Int("remaining", len(ids)-i), zap.Error(ctxErr))
			break
		}

		report.Results = append(report.Results, o.seedOne(ctx, log, i, id, catalog, input.DryRun))
	}
	if ctxErr := ctx.Err(); ctxErr != nil && runErr == nil {
		runErr = errors.WrapWithCode(ctxErr, errors.CodeCanceled, "seed run canceled")
	}

	log.Info("seeding finished",
		zap.Int("inserted", report.Inserted()),
		zap.Int("requested", report.Requested),
		zap.Ints("failed_ids", report.FailedIDs()),
	)

	enterPhase(log, PhaseCleaningUp)
	switch {
	case runErr != nil, input.DryRun, input.SkipCleanup:
		report.Cleanup = runreport.CleanupSkipped
		log.Info("cleanup skipped", zap.Int("placeholder_id", o.placeholderID))
	default:
		result, err := o.deletePlaceholder(ctx, log, o.placeholderID)
		if err != nil {
			report.Cleanup = runreport.CleanupFailed
			report.CleanupError = err.Error()
			runErr = err
		} else {
			report.Cleanup = runreport.CleanupStatus(result)
		}
	}

	report.FinishedAt = o.clock.Now()
	o.saveReport(ctx, log, report)

	if runErr != nil {
		log.Error("seed run failed", zap.String("phase", string(PhaseCleaningUp)), zap.Error(runErr))
		return &RunOutput{Report: report}, runErr
	}

	enterPhase(log, PhaseDone)
	return &RunOutput{Report: report}, nil
}

// Cleanup only deletes the placeholder row
func (o *orchestrator) Cleanup(ctx context.Context, input *CleanupInput) (*CleanupOutput, error) {
	id := o.placeholderID
	if input != nil && input.PlaceholderID != 0 {
		id = input.PlaceholderID
	}
	if id < 1 {
		return nil, errors.InvalidArgumentf("placeholder id must be positive, got %d", id)
	}

	result, err := o.deletePlaceholder(ctx, o.logger, id)
	if err != nil {
		return nil, err
	}

	return &CleanupOutput{PlaceholderID: id, Result: result}, nil
}

func (o *orchestrator) loadCatalog(ctx context.Context) ([]entities.Move, error) {
	catalog, err := o.movesLoader.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load moves catalog")
	}
	if len(catalog) < o.movesPerCreature {
		return nil, errors.ConfigErrorf("moves catalog has %d entries, need at least %d",
			len(catalog), o.movesPerCreature)
	}
	return catalog, nil
}

// discoverPopulation guards SampleUnique, which never returns when the
// population is smaller than the insert count.
func (o *orchestrator) discoverPopulation(ctx context.Context) (int, error) {
	population, err := o.creatureClient.FetchTotalCount(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to discover creature population")
	}
	if population < o.insertCount {
		return 0, errors.DataShapeErrorf("creature population %d is smaller than insert count %d",
			population, o.insertCount)
	}
	return population, nil
}

func (o *orchestrator) seedOne(
	ctx context.Context, log *zap.Logger, index, id int, catalog []entities.Move, dryRun bool,
) runreport.ItemResult {
	log = log.With(zap.Int("index", index), zap.Int("creature_id", id))

	creature, err := o.creatureClient.FetchCreature(ctx, id)
	if err != nil {
		return itemFailed(log, id, errors.Wrapf(err, "failed to fetch creature %d", id))
	}

	sample, err := random.Pick(o.roller, catalog, o.movesPerCreature)
	if err != nil {
		return itemFailed(log, id, errors.Wrapf(err, "failed to pick moves for creature %d", id))
	}

	payload := o.converter.ToSeedPayload(creature, sample)
	if payload == nil {
		return itemFailed(log, id, errors.DataShapeErrorf("creature %d produced no payload", id))
	}

	if dryRun {
		log.Info("creature mapped (dry run)", zap.String("name", payload.Name))
		return runreport.ItemResult{CreatureID: id, OK: true, Payload: payload}
	}

	record, err := o.storeClient.Insert(ctx, payload)
	if err != nil {
		return itemFailed(log, id, errors.Wrapf(err, "failed to insert creature %d", id))
	}

	log.Info("creature inserted", zap.String("name", payload.Name), zap.Int("record_id", record.ID))
	return runreport.ItemResult{CreatureID: id, OK: true, Payload: payload, RecordID: record.ID}
}

func (o *orchestrator) deletePlaceholder(ctx context.Context, log *zap.Logger, id int) (store.DeleteResult, error) {
	result, err := o.storeClient.DeleteByID(ctx, id)
	if err != nil {
		return "", errors.Wrapf(err, "failed to delete placeholder %d", id)
	}

	log.Info("placeholder removed", zap.Int("placeholder_id", id), zap.String("result", string(result)))
	return result, nil
}

// saveReport persists the report. The run outcome does not depend on it, and
// it still runs when ctx has been canceled.
func (o *orchestrator) saveReport(ctx context.Context, log *zap.Logger, report *runreport.RunReport) {
	if o.reportRepo == nil {
		return
	}

	_, err := o.reportRepo.Save(context.WithoutCancel(ctx), runreport.SaveInput{Report: report})
	if err != nil {
		log.Warn("failed to save run report", zap.Error(err))
		return
	}
	log.Debug("run report saved")
}

func enterPhase(log *zap.Logger, phase Phase) {
	log.Info("entering phase", zap.String("phase", string(phase)))
}

func fatal(log *zap.Logger, phase Phase, err error) error {
	log.Error("seed run failed",
		zap.String("phase", string(phase)),
		zap.String("next_phase", string(PhaseFatalFailure)),
		zap.Error(err),
	)
	return err
}

func itemFailed(log *zap.Logger, id int, err error) runreport.ItemResult {
	log.Warn("creature failed", zap.Error(err))
	return failedResult(id, err)
}

func failedResult(id int, err error) runreport.ItemResult {
	return runreport.ItemResult{
		CreatureID: id,
		Error:      err.Error(),
		ErrorCode:  errors.GetCode(err).String(),
	}
}
