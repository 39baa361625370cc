// Package server exposes the dashboard's HTTP API: aggregate overviews,
// platform and location breakdowns, trend analytics, data freshness and
// CSV uploads.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/maxzihq/maxzi-analytics/internal/models"
	"github.com/maxzihq/maxzi-analytics/internal/refdata"
	"github.com/maxzihq/maxzi-analytics/internal/store"
)

// Server wires the order buffer and reference data behind the REST API.
type Server struct {
	cfg     *models.Config
	logger  zerolog.Logger
	buffer  *store.Buffer
	refdata *refdata.Store
	now     func() time.Time
}

func New(cfg *models.Config, logger zerolog.Logger, buffer *store.Buffer, ref *refdata.Store) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		buffer:  buffer,
		refdata: ref,
		now:     time.Now,
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/overview", s.handleOverview)
		r.Get("/locations", s.handleLocations)
		r.Get("/locations/{name}", s.handleLocationDetail)
		r.Get("/platforms", s.handlePlatforms)
		r.Get("/social-media", s.handleSocialMedia)
		r.Get("/gmb", s.handleGMB)
		r.Get("/ai-insights", s.handleAIInsights)
		r.Get("/realtime", s.handleRealtime)
		r.Get("/analytics/revenue-trend", s.handleRevenueTrend)
		r.Get("/analytics/category-performance", s.handleCategoryPerformance)
		r.Get("/data-status", s.handleDataStatus)
		r.Get("/data-status/summary", s.handleDataStatusSummary)
		r.Get("/data-status/platform/{name}", s.handleDataStatusPlatform)

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(s.cfg.Server.UploadRateLimit, time.Minute))
			r.Post("/uploads/{platform}", s.handleUpload)
			r.Get("/export/report", s.handleExportReport)
		})
	})
	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("api server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("shutting down api server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// requestLogger emits one structured line per request.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
