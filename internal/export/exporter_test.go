package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxzihq/maxzi-analytics/internal/aggregate"
	"github.com/maxzihq/maxzi-analytics/internal/models"
)

var exportNow = time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

func exportRecords() []models.OrderRecord {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return []models.OrderRecord{
		{Platform: models.PlatformDeliveroo, Date: day, OrderID: "d1", Location: "Al Quoz", Revenue: 120, Orders: 1, AOV: 120, Rating: 4.5},
		{Platform: models.PlatformTalabat, Date: day.AddDate(0, 0, -1), OrderID: "t1", Location: "Dubai Marina", Revenue: 90, Orders: 2, AOV: 45},
	}
}

func TestRenderHTMLContainsKeyFigures(t *testing.T) {
	records := exportRecords()
	snap := aggregate.Summarize(records, exportNow)
	trend := aggregate.TimeSeries(records, 7, exportNow)

	var buf bytes.Buffer
	err := RenderHTML(&buf, "AED", snap, models.GrowthSummary{Revenue: "+5.0%", Orders: "N/A", AOV: "N/A"}, trend)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "MAXZI Performance Report")
	assert.Contains(t, html, "AED 210.00")
	assert.Contains(t, html, "Deliveroo")
	assert.Contains(t, html, "Dine-In (SAPAAD)")
	assert.Contains(t, html, "Al Quoz")
	assert.Contains(t, html, "#00CCBC")
}

func TestExporterWritesHTMLFile(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(models.ExportConfig{OutputPath: dir, Format: FormatHTML, Destination: "local"}, "AED", nil, zerolog.Nop())

	path, err := e.Run(context.Background(), exportRecords(), 7, exportNow)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".html"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "MAXZI Performance Report")
}

func TestExporterWritesCSVFile(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(models.ExportConfig{OutputPath: dir, Format: FormatCSV}, "AED", nil, zerolog.Nop())

	path, err := e.Run(context.Background(), exportRecords(), 7, exportNow)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "platform,date,order_id,location,revenue,orders,aov,rating", lines[0])
	assert.Contains(t, lines[1], "deliveroo,2024-01-15,d1,Al Quoz,120.00,1,120.00,4.5")
}

func TestExporterRejectsUnknownFormat(t *testing.T) {
	e := NewExporter(models.ExportConfig{OutputPath: t.TempDir(), Format: "xlsx"}, "AED", nil, zerolog.Nop())
	_, err := e.Run(context.Background(), nil, 7, exportNow)
	assert.ErrorContains(t, err, "unsupported export format")
}

type captureUploader struct {
	localPath string
	name      string
}

func (c *captureUploader) UploadFile(_ context.Context, localPath, name string) (string, error) {
	c.localPath = localPath
	c.name = name
	return "exports/" + name, nil
}

func TestExporterUploadsWhenDestinationIsS3(t *testing.T) {
	dir := t.TempDir()
	up := &captureUploader{}
	e := NewExporter(models.ExportConfig{OutputPath: dir, Format: FormatCSV, Destination: "s3"}, "AED", up, zerolog.Nop())

	path, err := e.Run(context.Background(), exportRecords(), 7, exportNow)
	require.NoError(t, err)
	assert.Equal(t, path, up.localPath)
	assert.Equal(t, filepath.Base(path), up.name)
}
