package service

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request id in and out of both surfaces.
const RequestIDHeader = "X-Request-Id"

type loggerKey struct{}

func withLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, entry)
}

// loggerFrom returns the request-scoped entry, or one on fallback.
func loggerFrom(ctx context.Context, fallback *logrus.Logger) *logrus.Entry {
	if entry, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(fallback)
}

func requestID(h http.Header) string {
	if id := h.Get(RequestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

// LoggingInterceptor creates a Connect interceptor that tags each call with a
// request id and logs its outcome.
func LoggingInterceptor(log *logrus.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			id := requestID(req.Header())
			entry := log.WithFields(logrus.Fields{
				"request_id": id,
				"procedure":  req.Spec().Procedure,
			})

			resp, err := next(withLogger(ctx, entry), req)

			entry = entry.WithField("duration", time.Since(start).String())
			if err != nil {
				entry.WithError(err).WithField("code", connect.CodeOf(err).String()).Warn("request failed")
				return nil, err
			}
			resp.Header().Set(RequestIDHeader, id)
			entry.Info("request completed")
			return resp, nil
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware is the REST counterpart of LoggingInterceptor.
func LoggingMiddleware(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := requestID(r.Header)
			r.Header.Set(RequestIDHeader, id)
			w.Header().Set(RequestIDHeader, id)

			entry := log.WithFields(logrus.Fields{
				"request_id": id,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(withLogger(r.Context(), entry)))

			entry.WithFields(logrus.Fields{
				"status":   rec.status,
				"duration": time.Since(start).String(),
			}).Info("request completed")
		})
	}
}
