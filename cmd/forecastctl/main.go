// Command forecastctl runs predictions, seeds demo data and inspects the
// calendar against the configured store.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/config"
	"github.com/castlemilk/pfinance-forecast/internal/logging"
	"github.com/castlemilk/pfinance-forecast/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// app carries what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	now    string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "forecastctl",
		Short:         "Per-category spending forecasts",
		Long:          "Run next-month spending predictions, seed demo expenses and inspect the event calendar.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cfg.LogLevel, cfg.LogFormat)
			a.logger.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.now, "now", "", "Reference date (YYYY-MM-DD), defaults to today")

	root.AddCommand(
		newPredictCmd(a),
		newSeedCmd(a),
		newCalendarCmd(a),
	)
	return root
}

// clock returns the reference time selected by --now.
func (a *app) clock() (time.Time, error) {
	if a.now == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(dateLayout, a.now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", a.now, err)
	}
	return t, nil
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, a.cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", a.cfg.StoreBackend, err)
	}
	return s, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
