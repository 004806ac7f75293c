package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/castlemilk/pfinance-forecast/internal/cache"
	"github.com/castlemilk/pfinance-forecast/internal/calendar"
	"github.com/castlemilk/pfinance-forecast/internal/forecast"
	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/castlemilk/pfinance-forecast/internal/oracle"
	"github.com/castlemilk/pfinance-forecast/internal/service"
	"github.com/spf13/cobra"
)

func newPredictCmd(a *app) *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "predict <user-id>",
		Short: "Predict next month's spending per category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				predictions []model.CategoryPrediction
				err         error
			)
			if serverURL != "" {
				predictions, err = a.predictRemote(cmd, serverURL, args[0])
			} else {
				predictions, err = a.predictLocal(cmd, args[0])
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(service.PredictExpensesResponse{Predictions: predictions})
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "Call a running forecast server instead of the local store")
	return cmd
}

func (a *app) predictLocal(cmd *cobra.Command, userID string) ([]model.CategoryPrediction, error) {
	ctx := cmd.Context()
	now, err := a.clock()
	if err != nil {
		return nil, err
	}

	s, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	cal, err := calendar.FromSource(ctx, a.cfg.CalendarFile)
	if err != nil {
		return nil, err
	}

	f := forecast.NewForecaster(oracle.NewRegression(), cal, a.logger, forecast.Options{
		Currency:        a.cfg.Currency,
		Concurrency:     a.cfg.Concurrency,
		CategoryTimeout: a.cfg.CategoryTimeout,
	})
	svc := service.NewPredictionService(s, f, a.logger, cache.WithClock(func() time.Time { return now }))
	return svc.Predict(ctx, userID)
}

func (a *app) predictRemote(cmd *cobra.Command, serverURL, userID string) ([]model.CategoryPrediction, error) {
	client := service.NewForecastServiceClient(http.DefaultClient, serverURL)
	resp, err := client.PredictExpenses(cmd.Context(), connect.NewRequest(&service.PredictExpensesRequest{UserID: userID}))
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", serverURL, err)
	}
	return resp.Msg.Predictions, nil
}
