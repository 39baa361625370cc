package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxzihq/maxzi-analytics/internal/export"
	"github.com/maxzihq/maxzi-analytics/internal/models"
	"github.com/maxzihq/maxzi-analytics/internal/store"
)

var (
	exportFormat string
	exportDest   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the current data as an HTML report, parquet or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if exportFormat != "" {
			cfg.Export.Format = exportFormat
		}
		if exportDest != "" {
			cfg.Export.Destination = exportDest
		}

		buffer := store.NewBuffer(store.NewSnapshotStore(cfg.DataDir), logger)
		buffer.Load()
		records := buffer.Records(models.FilterSelection{})

		ctx := context.Background()
		var uploader export.Uploader
		if cfg.Export.Destination == "s3" {
			uploader, err = export.NewS3Uploader(ctx, cfg.CloudStorage.Region, cfg.CloudStorage.BucketName, "exports")
			if err != nil {
				return err
			}
		}

		exporter := export.NewExporter(cfg.Export, cfg.Currency, uploader, logger)
		path, err := exporter.Run(ctx, records, cfg.TrendWindowDays, time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("exported %d records to %s\n", len(records), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Export format (html, parquet, csv)")
	exportCmd.Flags().StringVar(&exportDest, "destination", "", "Export destination (local, s3)")
	rootCmd.AddCommand(exportCmd)
}
