package seed

import (
	"github.com/KirkDiggler/creature-seeder/internal/clients/store"
	runreport "github.com/KirkDiggler/creature-seeder/internal/repositories/run_report"
)

// Phase names a step of a seed run
type Phase string

const (
	PhaseLoadingCatalog        Phase = "loading_catalog"
	PhaseDiscoveringPopulation Phase = "discovering_population"
	PhaseSampling              Phase = "sampling"
	PhaseSeeding               Phase = "seeding"
	PhaseCleaningUp            Phase = "cleaning_up"
	PhaseDone                  Phase = "done"
	PhaseFatalFailure          Phase = "fatal_failure"
)

// RunInput contains per-run switches
type RunInput struct {
	// DryRun fetches and maps creatures but writes nothing to the store
	DryRun bool
	// SkipCleanup leaves the placeholder row in place
	SkipCleanup bool
}

// RunOutput contains the report of a completed run
type RunOutput struct {
	Report *runreport.RunReport
}

// CleanupInput contains parameters for a standalone cleanup
type CleanupInput struct {
	// PlaceholderID overrides the configured placeholder (optional)
	PlaceholderID int
}

// CleanupOutput contains the cleanup outcome
type CleanupOutput struct {
	PlaceholderID int
	Result        store.DeleteResult
}
