package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/castlemilk/pfinance-forecast/internal/model"
)

const (
	// ForecastServiceName is the fully-qualified name of the RPC service.
	ForecastServiceName = "forecast.v1.ForecastService"
	// PredictExpensesProcedure is the route of ForecastService.PredictExpenses.
	PredictExpensesProcedure = "/forecast.v1.ForecastService/PredictExpenses"
)

type PredictExpensesRequest struct {
	UserID string `json:"user_id"`
}

type PredictExpensesResponse struct {
	Predictions []model.CategoryPrediction `json:"predictions"`
}

// jsonCodec lets plain Go structs travel over Connect in place of the
// protobuf codecs.
type jsonCodec struct {
	name string
}

func (c jsonCodec) Name() string { return c.name }

func (c jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func jsonHandlerOptions() []connect.HandlerOption {
	return []connect.HandlerOption{
		connect.WithCodec(jsonCodec{name: "json"}),
		connect.WithCodec(jsonCodec{name: "json; charset=utf-8"}),
	}
}

// PredictExpenses is the Connect entry point for Predict.
func (s *PredictionService) PredictExpenses(ctx context.Context, req *connect.Request[PredictExpensesRequest]) (*connect.Response[PredictExpensesResponse], error) {
	predictions, err := s.Predict(ctx, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if predictions == nil {
		predictions = []model.CategoryPrediction{}
	}
	return connect.NewResponse(&PredictExpensesResponse{Predictions: predictions}), nil
}

// NewForecastServiceHandler builds an HTTP handler serving ForecastService.
// It returns the path on which to mount the handler.
func NewForecastServiceHandler(svc *PredictionService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(jsonHandlerOptions(), opts...)
	predict := connect.NewUnaryHandler(PredictExpensesProcedure, svc.PredictExpenses, opts...)

	return "/" + ForecastServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PredictExpensesProcedure:
			predict.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ForecastServiceClient calls ForecastService over Connect with JSON payloads.
type ForecastServiceClient struct {
	predict *connect.Client[PredictExpensesRequest, PredictExpensesResponse]
}

// NewForecastServiceClient creates a client for the service at baseURL.
func NewForecastServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ForecastServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{name: "json"})}, opts...)
	return &ForecastServiceClient{
		predict: connect.NewClient[PredictExpensesRequest, PredictExpensesResponse](
			httpClient,
			baseURL+PredictExpensesProcedure,
			opts...,
		),
	}
}

// PredictExpenses calls forecast.v1.ForecastService.PredictExpenses.
func (c *ForecastServiceClient) PredictExpenses(ctx context.Context, req *connect.Request[PredictExpensesRequest]) (*connect.Response[PredictExpensesResponse], error) {
	return c.predict.CallUnary(ctx, req)
}

// toConnectError maps pipeline errors onto Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ErrMissingUserID):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ErrNoData):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
