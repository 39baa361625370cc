package export

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// parquetRow is the flattened record shape written to parquet exports.
type parquetRow struct {
	Platform string  `parquet:"name=platform, type=BYTE_ARRAY, convertedtype=UTF8"`
	Date     string  `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderID  string  `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Location string  `parquet:"name=location, type=BYTE_ARRAY, convertedtype=UTF8"`
	Revenue  float64 `parquet:"name=revenue, type=DOUBLE"`
	Orders   int64   `parquet:"name=orders, type=INT64"`
	AOV      float64 `parquet:"name=aov, type=DOUBLE"`
	Rating   float64 `parquet:"name=rating, type=DOUBLE"`
}

func toParquetRow(r models.OrderRecord) parquetRow {
	return parquetRow{
		Platform: string(r.Platform),
		Date:     r.Date.Format("2006-01-02"),
		OrderID:  r.OrderID,
		Location: r.Location,
		Revenue:  r.Revenue,
		Orders:   int64(r.Orders),
		AOV:      r.AOV,
		Rating:   r.Rating,
	}
}

// WriteParquet writes records as a parquet file at path.
func WriteParquet(path string, records []models.OrderRecord) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file writer: %w", err)
	}
	return writeParquetTo(fw, records)
}

func writeParquetTo(fw source.ParquetFile, records []models.OrderRecord) error {
	pw, err := writer.NewParquetWriter(fw, new(parquetRow), 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	for _, r := range records {
		if err := pw.Write(toParquetRow(r)); err != nil {
			fw.Close()
			return fmt.Errorf("failed to write parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return fw.Close()
}
