package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maxzihq/maxzi-analytics/internal/refdata"
	"github.com/maxzihq/maxzi-analytics/internal/server"
	"github.com/maxzihq/maxzi-analytics/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sinks, cleanup, err := buildSinks(ctx, cfg, logger)
		defer cleanup()
		if err != nil {
			return err
		}

		buffer := store.NewBuffer(store.NewSnapshotStore(cfg.DataDir), logger, sinks...)
		buffer.Load()

		ref := refdata.NewStore(cfg.SocialDataFile, cfg.GMBDataFile, logger)
		return server.New(cfg, logger, buffer, ref).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
