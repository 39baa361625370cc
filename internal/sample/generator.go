// Package sample produces realistic demo datasets so the dashboard and the
// ingestion pipeline can be exercised without real platform exports.
package sample

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// Locations is the branch list used for generated data.
var Locations = []string{
	"Al Quoz",
	"Circle Mall (JVC)",
	"Yas Mall",
	"Al Jada (Sharjah)",
	"Dubai Marina",
	"Business Bay",
}

// Generator builds seeded random order data. The same seed always yields
// the same dataset.
type Generator struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	src := rand.NewSource(seed)
	return &Generator{
		fake: faker.NewWithSeed(src),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Records generates ordersPerDay records per calendar day over the past
// days days for the given platform, ending at now.
func (g *Generator) Records(platform models.Platform, days, ordersPerDay int, now time.Time) []models.OrderRecord {
	if days <= 0 {
		days = 7
	}
	if ordersPerDay <= 0 {
		ordersPerDay = 20
	}
	records := make([]models.OrderRecord, 0, days*ordersPerDay)
	start := now.AddDate(0, 0, -(days - 1))
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)
		for i := 0; i < ordersPerDay; i++ {
			records = append(records, g.record(platform, day))
		}
	}
	return records
}

// Dataset generates records for every platform.
func (g *Generator) Dataset(days, ordersPerDay int, now time.Time) map[models.Platform][]models.OrderRecord {
	out := make(map[models.Platform][]models.OrderRecord, len(models.AllPlatforms()))
	for _, p := range models.AllPlatforms() {
		out[p] = g.Records(p, days, ordersPerDay, now)
	}
	return out
}

func (g *Generator) record(platform models.Platform, day time.Time) models.OrderRecord {
	revenue := g.fake.Float64(2, 45, 280)
	orders := 1
	// Aggregated exports carry multi-order rows.
	if platform == models.PlatformTalabat || platform == models.PlatformNoon {
		orders = g.rng.Intn(4) + 1
		revenue *= float64(orders)
	}
	rec := models.OrderRecord{
		Platform: platform,
		Date:     time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
		OrderID:  cuid.New(),
		Location: Locations[g.rng.Intn(len(Locations))],
		Revenue:  round2(revenue),
		Orders:   orders,
		Rating:   g.fake.Float64(1, 35, 50) / 10,
	}
	if rec.Orders > 0 {
		rec.AOV = round2(rec.Revenue / float64(rec.Orders))
	}
	return rec
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// csvColumns returns the header row each platform's export uses, matching
// the column names the normalizer resolves for that platform.
func csvColumns(platform models.Platform) []string {
	switch platform {
	case models.PlatformDeliveroo:
		return []string{"date_submitted", "order_number", "subtotal", "location_name", "rating"}
	case models.PlatformTalabat:
		return []string{"transaction_date", "order_value", "order_count", "Restaurant"}
	case models.PlatformNoon:
		return []string{"transaction_date", "order_value", "order_count"}
	case models.PlatformSapaad:
		return []string{"sale_date", "total_sales", "order_count", "location_name"}
	}
	return []string{"Date", "Revenue", "Orders", "Location"}
}

func csvRow(platform models.Platform, r models.OrderRecord) []string {
	date := r.Date.Format("2006-01-02")
	revenue := strconv.FormatFloat(r.Revenue, 'f', 2, 64)
	orders := strconv.Itoa(r.Orders)
	switch platform {
	case models.PlatformDeliveroo:
		return []string{date, r.OrderID, revenue, r.Location, strconv.FormatFloat(r.Rating, 'f', 1, 64)}
	case models.PlatformTalabat:
		return []string{date, revenue, orders, r.Location}
	case models.PlatformNoon:
		return []string{date, revenue, orders}
	case models.PlatformSapaad:
		return []string{date, revenue, orders, r.Location}
	}
	return []string{date, revenue, orders, r.Location}
}

// WriteCSV writes records as the platform's native CSV export shape.
func WriteCSV(path string, platform models.Platform, records []models.OrderRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns(platform)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(csvRow(platform, r)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
