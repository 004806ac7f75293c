package main

import (
	"fmt"

	"github.com/castlemilk/pfinance-forecast/internal/demo"
	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	opts := demo.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "seed <user-id>",
		Short: "Write a reproducible demo expense history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now, err := a.clock()
			if err != nil {
				return err
			}

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			records := demo.Generate(args[0], now, opts)
			if err := s.CreateExpenses(ctx, records); err != nil {
				return fmt.Errorf("seeding expenses: %w", err)
			}
			a.logger.WithField("user_id", args[0]).WithField("records", len(records)).Info("seeded demo expenses")
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d expenses for %s\n", len(records), args[0])
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Months, "months", opts.Months, "Months of history before the current month")
	cmd.Flags().IntVar(&opts.PerMonth, "per-month", opts.PerMonth, "Draws per category and month")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "Random seed")
	return cmd
}
