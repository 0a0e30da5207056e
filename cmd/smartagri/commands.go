package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"smart-agriculture/internal/app"
)

func migrateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(_ context.Context, a *app.App) error {
				if err := a.Migrate(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema migrated")
				return nil
			})
		},
	}
}

func seedCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the demo dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app.App) error {
				if err := a.Migrate(); err != nil {
					return err
				}
				summary, err := a.Seed(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d farms, %d crops, %d irrigation records, %d inventory lots, %d other records\n",
					summary.Farms, summary.Crops, summary.IrrigationRecords, summary.Inventory, summary.Other)
				return nil
			})
		},
	}
}

func sweepCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one recompute sweep and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app.App) error {
				ctx, cancel := context.WithTimeout(ctx, a.Config.Sweep.Timeout)
				defer cancel()

				result, err := a.Sweep.Run(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "checked %d inventory lots, %d changed, %d recommendations expired, %d alerts deactivated, %d policies expired\n",
					result.InventoryChecked, result.InventoryChanged, result.RecommendationsExpired, result.AlertsDeactivated, result.PoliciesExpired)
				return err
			})
		},
	}
}
