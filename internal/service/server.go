package service

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// NewHTTPHandler serves the Connect service, the REST routes and /health on
// one handler, with CORS for allowedOrigins and HTTP/2 cleartext support.
func NewHTTPHandler(svc *PredictionService, log *logrus.Logger, allowedOrigins []string) http.Handler {
	path, handler := NewForecastServiceHandler(
		svc,
		connect.WithInterceptors(LoggingInterceptor(log)),
	)

	router := NewRouter(svc, log)
	router.PathPrefix(path).Handler(handler)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
			"Content-Type",
			"User-Agent",
			RequestIDHeader,
		},
		ExposedHeaders: []string{
			RequestIDHeader,
		},
	})

	return h2c.NewHandler(c.Handler(router), &http2.Server{})
}
