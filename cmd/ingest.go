package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxzihq/maxzi-analytics/internal/ingest"
	"github.com/maxzihq/maxzi-analytics/internal/models"
	"github.com/maxzihq/maxzi-analytics/internal/store"
)

var ingestPlatform string

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.csv>",
	Short: "Load one platform's CSV export into the local snapshot",
	Long: `Reads a platform CSV export, normalizes it and replaces that platform's
bucket in the persisted snapshot. Existing data for the platform is
discarded, matching an upload through the API.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		platform, err := models.ParsePlatform(ingestPlatform)
		if err != nil {
			return err
		}

		rows, err := ingest.ReadFileWithProgress(args[0], os.Stderr)
		if err != nil {
			return err
		}
		records := ingest.NewNormalizer().NormalizeAll(rows, platform)

		ctx := context.Background()
		sinks, cleanup, err := buildSinks(ctx, cfg, logger)
		defer cleanup()
		if err != nil {
			return err
		}

		buffer := store.NewBuffer(store.NewSnapshotStore(cfg.DataDir), logger, sinks...)
		buffer.Load()
		buffer.Replace(ctx, platform, records)

		fmt.Printf("replaced %s with %d records from %s\n", platform.DisplayName(), len(records), args[0])
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestPlatform, "platform", "", "Platform the file belongs to (deliveroo, talabat, noon, sapaad)")
	ingestCmd.MarkFlagRequired("platform")
	rootCmd.AddCommand(ingestCmd)
}
