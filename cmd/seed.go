package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxzihq/maxzi-analytics/internal/models"
	"github.com/maxzihq/maxzi-analytics/internal/sample"
	"github.com/maxzihq/maxzi-analytics/internal/store"
)

var seedWriteCSV bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate sample order data for every platform",
	Long: `Fills the local snapshot with seeded random orders across all four
platforms so the dashboard has data to show without real exports.
Optionally also writes each platform's data as its native CSV shape.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		gen := sample.NewGenerator(cfg.Sample.Seed)
		dataset := gen.Dataset(cfg.Sample.Days, cfg.Sample.OrdersPerDay, time.Now())

		buffer := store.NewBuffer(store.NewSnapshotStore(cfg.DataDir), logger)
		for _, p := range models.AllPlatforms() {
			buffer.Replace(context.Background(), p, dataset[p])
			fmt.Printf("seeded %s with %d records\n", p.DisplayName(), len(dataset[p]))

			if seedWriteCSV {
				path := filepath.Join(cfg.DataDir, fmt.Sprintf("sample_%s.csv", p))
				if err := sample.WriteCSV(path, p, dataset[p]); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", path)
			}
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedWriteCSV, "write-csv", false, "Also write per-platform CSV files into the data directory")
	rootCmd.AddCommand(seedCmd)
}
