package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/creature-seeder/internal/config"
	"github.com/KirkDiggler/creature-seeder/internal/orchestrators/seed"
	runreport "github.com/KirkDiggler/creature-seeder/internal/repositories/run_report"
)

type seedFlags struct {
	movesPath     string
	count         int
	seed          uint64
	placeholderID int
	reportStore   string
	timeout       time.Duration
	dryRun        bool
	skipCleanup   bool
	jsonOutput    bool
}

func (a *app) newSeedCmd() *cobra.Command {
	f := &seedFlags{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert random creatures and remove the placeholder row",
		Long: `Runs one seed pass: loads the moves catalog, discovers the creature
population, samples unique ids and inserts one record per id. Failed ids are
reported but do not fail the run. The placeholder row is deleted at the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.apply(cmd, a.cfg); err != nil {
				return err
			}
			return a.runSeed(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.movesPath, "moves", "", "path to the moves catalog JSON")
	flags.IntVar(&f.count, "count", 0, "number of creatures to insert")
	flags.Uint64Var(&f.seed, "seed", 0, "random seed; 0 seeds from the clock")
	flags.IntVar(&f.placeholderID, "placeholder-id", 0, "store row removed after seeding")
	flags.StringVar(&f.reportStore, "report-store", "", "where to keep run reports: none, redis or sqlite")
	flags.DurationVar(&f.timeout, "timeout", 0, "per-request HTTP timeout, e.g. 10s")
	flags.BoolVar(&f.dryRun, "dry-run", false, "fetch and map creatures without writing to the store")
	flags.BoolVar(&f.skipCleanup, "skip-cleanup", false, "leave the placeholder row in place")
	flags.BoolVar(&f.jsonOutput, "json", false, "print the run report as JSON")

	return cmd
}

// apply copies explicitly set flags over the loaded configuration
func (f *seedFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("moves") {
		cfg.MovesPath = f.movesPath
	}
	if flags.Changed("count") {
		cfg.InsertCount = f.count
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("placeholder-id") {
		cfg.PlaceholderID = f.placeholderID
	}
	if flags.Changed("report-store") {
		cfg.Reports.Backend = f.reportStore
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = f.timeout
	}
	return cfg.Validate()
}

func (a *app) runSeed(cmd *cobra.Command, f *seedFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reports, closeReports, err := openReportRepo(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer closeReports()

	orchestrator, err := newOrchestrator(a.cfg, a.logger, reports)
	if err != nil {
		return err
	}

	out, runErr := orchestrator.Run(ctx, &seed.RunInput{
		DryRun:      f.dryRun,
		SkipCleanup: f.skipCleanup,
	})
	if out != nil {
		if err := printReport(cmd.OutOrStdout(), out.Report, f.jsonOutput); err != nil {
			return err
		}
	}
	return runErr
}

func printReport(w io.Writer, report *runreport.RunReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(w, "run %s: inserted %d/%d (population %d)\n",
		report.RunID, report.Inserted(), report.Requested, report.Population)
	for _, res := range report.Results {
		if res.OK {
			fmt.Fprintf(w, "  ok     %5d  %s\n", res.CreatureID, res.Payload.Name)
			continue
		}
		fmt.Fprintf(w, "  failed %5d  %s\n", res.CreatureID, res.Error)
	}
	fmt.Fprintf(w, "cleanup: %s\n", report.Cleanup)
	return nil
}
