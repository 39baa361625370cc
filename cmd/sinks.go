package cmd

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maxzihq/maxzi-analytics/internal/models"
	"github.com/maxzihq/maxzi-analytics/internal/store"
	"github.com/maxzihq/maxzi-analytics/internal/store/postgres"
	"github.com/maxzihq/maxzi-analytics/internal/stream"
)

// buildSinks attaches the configured Postgres mirror and Kafka publisher.
// Every command that replaces platform data goes through this so the
// mirrors see CLI ingestion the same as API uploads. The returned cleanup
// closes whatever was opened and is safe to call with no sinks enabled.
func buildSinks(ctx context.Context, cfg *models.Config, logger zerolog.Logger) ([]store.Sink, func(), error) {
	var sinks []store.Sink
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Database.Enabled {
		pool, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, pool.Close)
		repo := postgres.NewOrderRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, cleanup, err
		}
		sinks = append(sinks, repo)
		logger.Info().Str("host", cfg.Database.Host).Msg("postgres mirror enabled")
	}

	if cfg.Kafka.Enabled {
		publisher, err := stream.NewPublisher(cfg.Kafka, logger)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { _ = publisher.Close() })
		sinks = append(sinks, publisher)
	}

	return sinks, cleanup, nil
}
