package sample

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxzihq/maxzi-analytics/internal/ingest"
	"github.com/maxzihq/maxzi-analytics/internal/models"
)

var genNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func TestRecordsCountAndWindow(t *testing.T) {
	g := NewGenerator(42)
	records := g.Records(models.PlatformDeliveroo, 7, 10, genNow)

	require.Len(t, records, 70)
	first := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, r := range records {
		assert.Equal(t, models.PlatformDeliveroo, r.Platform)
		assert.False(t, r.Date.Before(first))
		assert.False(t, r.Date.After(last))
		assert.Greater(t, r.Revenue, 0.0)
		assert.NotEmpty(t, r.OrderID)
		assert.Contains(t, Locations, r.Location)
	}
}

func TestSameSeedSameData(t *testing.T) {
	a := NewGenerator(7).Records(models.PlatformTalabat, 3, 5, genNow)
	b := NewGenerator(7).Records(models.PlatformTalabat, 3, 5, genNow)
	assert.Equal(t, a, b)
}

func TestDatasetCoversAllPlatforms(t *testing.T) {
	ds := NewGenerator(1).Dataset(2, 3, genNow)
	require.Len(t, ds, 4)
	for _, p := range models.AllPlatforms() {
		assert.Len(t, ds[p], 6)
	}
}

func TestWriteCSVRoundTripsThroughNormalizer(t *testing.T) {
	g := NewGenerator(42)
	for _, p := range models.AllPlatforms() {
		records := g.Records(p, 2, 4, genNow)
		path := filepath.Join(t.TempDir(), string(p)+".csv")
		require.NoError(t, WriteCSV(path, p, records))

		f, err := os.Open(path)
		require.NoError(t, err)
		rows, err := ingest.ReadRows(f)
		f.Close()
		require.NoError(t, err)
		require.Len(t, rows, len(records))

		parsed := ingest.NewNormalizer().NormalizeAll(rows, p)
		for i, got := range parsed {
			assert.Equal(t, p, got.Platform)
			assert.Equal(t, records[i].Date.Format("2006-01-02"), got.Date.Format("2006-01-02"))
			assert.InDelta(t, records[i].Revenue, got.Revenue, 0.01)
			assert.Equal(t, records[i].Orders, got.Orders)
		}
	}
}
