// Package api exposes the aggregator over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"car-aggregator/utils"
)

// NewRouter wires the routes. loader may be nil, in which case archived
// searches are not served.
func NewRouter(searcher Searcher, loader SearchLoader, logger *utils.Logger, timeout time.Duration) http.Handler {
	h := NewSearchHandler(searcher, loader, logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/providers", h.Providers)
		r.Post("/search", h.Search)
		if loader != nil {
			r.Get("/searches/{id}", h.GetSearch)
		}
	})

	return r
}

func requestLogger(logger *utils.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("[api] %s %s %d %dB %v (req %s)",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(),
				time.Since(start).Round(time.Millisecond), middleware.GetReqID(r.Context()))
		})
	}
}
