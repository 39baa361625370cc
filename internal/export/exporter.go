// Package export renders dashboard data into shareable artifacts: a
// self-contained HTML report, parquet files for the warehouse, and flat
// CSV dumps, with optional delivery to S3.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxzihq/maxzi-analytics/internal/aggregate"
	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// Supported export formats.
const (
	FormatHTML    = "html"
	FormatParquet = "parquet"
	FormatCSV     = "csv"
)

// Uploader delivers a finished local file to remote storage.
type Uploader interface {
	UploadFile(ctx context.Context, localPath, name string) (string, error)
}

// Exporter renders filtered order data into one artifact per run.
type Exporter struct {
	cfg      models.ExportConfig
	currency string
	uploader Uploader
	logger   zerolog.Logger
}

func NewExporter(cfg models.ExportConfig, currency string, uploader Uploader, logger zerolog.Logger) *Exporter {
	return &Exporter{cfg: cfg, currency: currency, uploader: uploader, logger: logger}
}

// Run writes the configured artifact from records and returns the local
// path written. When an uploader is configured the file is also pushed to
// remote storage.
func (e *Exporter) Run(ctx context.Context, records []models.OrderRecord, trendDays int, now time.Time) (string, error) {
	if err := os.MkdirAll(e.cfg.OutputPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("maxzi_report_%s.%s", now.Format("20060102_150405"), e.cfg.Format)
	path := filepath.Join(e.cfg.OutputPath, name)

	switch e.cfg.Format {
	case FormatHTML:
		snap := aggregate.Summarize(records, now)
		trend := aggregate.TimeSeries(records, trendDays, now)
		growth := aggregate.Growth(records, now.AddDate(0, 0, -(trendDays-1)), now)
		if err := WriteHTML(path, e.currency, snap, growth, trend); err != nil {
			return "", err
		}
	case FormatParquet:
		if err := WriteParquet(path, records); err != nil {
			return "", err
		}
	case FormatCSV:
		if err := writeCSV(path, records); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported export format: %s", e.cfg.Format)
	}

	e.logger.Info().Str("path", path).Int("records", len(records)).Msg("export written")

	if e.cfg.Destination == "s3" && e.uploader != nil {
		key, err := e.uploader.UploadFile(ctx, path, name)
		if err != nil {
			return path, err
		}
		e.logger.Info().Str("key", key).Msg("export uploaded")
	}
	return path, nil
}

// writeCSV dumps records in the normalized flat shape, all platforms in
// one file.
func writeCSV(path string, records []models.OrderRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"platform", "date", "order_id", "location", "revenue", "orders", "aov", "rating"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			string(r.Platform),
			r.Date.Format("2006-01-02"),
			r.OrderID,
			r.Location,
			strconv.FormatFloat(r.Revenue, 'f', 2, 64),
			strconv.Itoa(r.Orders),
			strconv.FormatFloat(r.AOV, 'f', 2, 64),
			strconv.FormatFloat(r.Rating, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
