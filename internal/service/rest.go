package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RESTHandler serves the plain HTTP prediction route.
type RESTHandler struct {
	svc *PredictionService
	log *logrus.Logger
}

// NewRESTHandler creates a handler backed by svc.
func NewRESTHandler(svc *PredictionService, log *logrus.Logger) *RESTHandler {
	return &RESTHandler{svc: svc, log: log}
}

// Register mounts the REST routes on r.
func (h *RESTHandler) Register(r *mux.Router) {
	r.HandleFunc("/predict/{userID}", h.Predict).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

// NewRouter returns a router with the REST routes and request logging.
func NewRouter(svc *PredictionService, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(log))
	NewRESTHandler(svc, log).Register(r)
	return r
}

// Predict handles GET /predict/{userID}.
func (h *RESTHandler) Predict(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	predictions, err := h.svc.Predict(r.Context(), userID)
	switch {
	case errors.Is(err, ErrNoData):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	case errors.Is(err, ErrMissingUserID):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	case err != nil:
		loggerFrom(r.Context(), h.log).WithError(err).Error("prediction failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if predictions == nil {
		predictions = []model.CategoryPrediction{}
	}
	writeJSON(w, http.StatusOK, PredictExpensesResponse{Predictions: predictions})
}

// Health handles GET /health.
func (h *RESTHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
