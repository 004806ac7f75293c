package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRESTPredict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := func() time.Time { return testNow }

	t.Run("ok", func(t *testing.T) {
		s := store.NewMemoryStore()
		require.NoError(t, s.CreateExpenses(context.Background(), sampleExpenses()))
		router := NewRouter(newTestService(s, &constOracle{perDay: 4}, clock), testLogger())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict/user-123", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

		var body struct {
			Predictions []map[string]any `json:"predictions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Predictions, 2)
		assert.Equal(t, "Groceries", body.Predictions[0]["category"])
		assert.Equal(t, 120.0, body.Predictions[0]["predicted_total"])
		assert.Contains(t, body.Predictions[0], "explanation")
		assert.NotContains(t, body.Predictions[0], "error")
	})

	t.Run("not found", func(t *testing.T) {
		router := NewRouter(newTestService(store.NewMemoryStore(), &constOracle{}, clock), testLogger())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict/ghost", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"no expenses found for user"}`, rec.Body.String())
	})

	t.Run("internal error", func(t *testing.T) {
		mockStore := store.NewMockStore(ctrl)
		mockStore.EXPECT().GetCachedResult(gomock.Any(), "u1").Return(nil, errors.New("firestore down"))
		router := NewRouter(newTestService(mockStore, &constOracle{}, clock), testLogger())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict/u1", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"failed to get cached result: firestore down"}`, rec.Body.String())
	})

	t.Run("request id is echoed", func(t *testing.T) {
		router := NewRouter(newTestService(store.NewMemoryStore(), &constOracle{}, clock), testLogger())

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
		assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
	})

	t.Run("wrong method", func(t *testing.T) {
		router := NewRouter(newTestService(store.NewMemoryStore(), &constOracle{}, clock), testLogger())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/predict/u1", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
