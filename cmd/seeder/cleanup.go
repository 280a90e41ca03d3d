package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/creature-seeder/internal/orchestrators/seed"
)

func (a *app) newCleanupCmd() *cobra.Command {
	var placeholderID int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete the placeholder row without seeding",
		Long:  `Deletes the placeholder row from the store. A row that is already gone is not an error.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			orchestrator, err := newOrchestrator(a.cfg, a.logger, nil)
			if err != nil {
				return err
			}

			out, err := orchestrator.Cleanup(ctx, &seed.CleanupInput{PlaceholderID: placeholderID})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "placeholder %d: %s\n", out.PlaceholderID, out.Result)
			return nil
		},
	}

	cmd.Flags().IntVar(&placeholderID, "placeholder-id", 0, "row to delete (defaults to the configured placeholder)")

	return cmd
}
