package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/creature-seeder/internal/config"
	"github.com/KirkDiggler/creature-seeder/internal/errors"
	runreport "github.com/KirkDiggler/creature-seeder/internal/repositories/run_report"
)

func (a *app) newReportsCmd() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Inspect stored run reports",
	}
	cmd.PersistentFlags().StringVar(&backend, "report-store", "", "report store to read: redis or sqlite")

	// withRepo opens the report store for one subcommand
	withRepo := func(cmd *cobra.Command, fn func(ctx context.Context, repo runreport.Repository) error) error {
		if cmd.Flags().Changed("report-store") {
			a.cfg.Reports.Backend = backend
			if err := a.cfg.Validate(); err != nil {
				return err
			}
		}
		if a.cfg.Reports.Backend == config.ReportStoreNone {
			return errors.ConfigError("no report store configured; set --report-store or SEEDER_REPORTS_BACKEND")
		}

		repo, closeRepo, err := openReportRepo(cmd.Context(), a.cfg, a.logger)
		if err != nil {
			return err
		}
		defer closeRepo()

		return fn(cmd.Context(), repo)
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd, func(ctx context.Context, repo runreport.Repository) error {
				out, err := repo.ListRecent(ctx, runreport.ListRecentInput{Limit: limit})
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, r := range out.Reports {
					fmt.Fprintf(w, "%s  %s  inserted %d/%d  cleanup %s\n",
						r.RunID, r.StartedAt.Format(time.RFC3339), r.Inserted(), r.Requested, r.Cleanup)
				}
				return nil
			})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to show")

	var asJSON bool
	showCmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Print one run report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd, func(ctx context.Context, repo runreport.Repository) error {
				out, err := repo.Get(ctx, runreport.GetInput{RunID: args[0]})
				if err != nil {
					return err
				}
				return printReport(cmd.OutOrStdout(), out.Report, asJSON)
			})
		},
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}
