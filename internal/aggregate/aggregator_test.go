package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

var testNow = time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

func rec(platform models.Platform, date time.Time, revenue float64, orders int) models.OrderRecord {
	r := models.OrderRecord{
		Platform: platform,
		Date:     date,
		Revenue:  revenue,
		Orders:   orders,
	}
	if orders > 0 {
		r.AOV = revenue / float64(orders)
	}
	return r
}

func TestSummarizeScenario(t *testing.T) {
	// the two-row Deliveroo upload from the reference scenario:
	// AED 100 over two orders plus 50 over one
	records := []models.OrderRecord{
		rec(models.PlatformDeliveroo, testNow, 100, 2),
		rec(models.PlatformDeliveroo, testNow, 50, 1),
	}

	snap := Summarize(records, testNow)
	assert.Equal(t, 150.0, snap.TotalRevenue)
	assert.Equal(t, 3, snap.TotalOrders)
	assert.Equal(t, 50.0, snap.AvgOrderValue)

	deliveroo := snap.PerPlatform[models.PlatformDeliveroo]
	assert.Equal(t, 150.0, deliveroo.Revenue)
	assert.Equal(t, 3, deliveroo.Orders)
	assert.Equal(t, 50.0, deliveroo.AOV)
	assert.Equal(t, 100.0, deliveroo.MarketShare)
}

func TestSummarizeEmptyInputHasNoDivisionErrors(t *testing.T) {
	snap := Summarize(nil, testNow)
	assert.Zero(t, snap.TotalRevenue)
	assert.Zero(t, snap.TotalOrders)
	assert.Zero(t, snap.AvgOrderValue)
	assert.Zero(t, snap.AvgRating)

	// every platform card is present, zero-valued
	require.Len(t, snap.PerPlatform, 4)
	for _, p := range models.AllPlatforms() {
		assert.Zero(t, snap.PerPlatform[p].AOV)
		assert.Zero(t, snap.PerPlatform[p].MarketShare)
	}
}

func TestSummarizeZeroOrdersYieldsZeroAOV(t *testing.T) {
	records := []models.OrderRecord{rec(models.PlatformNoon, testNow, 75, 0)}
	snap := Summarize(records, testNow)
	assert.Equal(t, 75.0, snap.TotalRevenue)
	assert.Zero(t, snap.TotalOrders)
	assert.Zero(t, snap.AvgOrderValue)
	assert.Zero(t, snap.PerPlatform[models.PlatformNoon].AOV)
}

func TestSummarizePerLocationSortedByRevenue(t *testing.T) {
	a := rec(models.PlatformDeliveroo, testNow, 40, 1)
	a.Location = "Yas Mall"
	b := rec(models.PlatformTalabat, testNow, 120, 2)
	b.Location = "Al Quoz"
	c := rec(models.PlatformDeliveroo, testNow, 60, 1)
	c.Location = "Al Quoz"

	snap := Summarize([]models.OrderRecord{a, b, c}, testNow)
	require.Len(t, snap.PerLocation, 2)
	assert.Equal(t, "Al Quoz", snap.PerLocation[0].Location)
	assert.Equal(t, 180.0, snap.PerLocation[0].Revenue)
	assert.Equal(t, 3, snap.PerLocation[0].Orders)
	assert.Equal(t, 60.0, snap.PerLocation[0].AOV)
	assert.Equal(t, "Yas Mall", snap.PerLocation[1].Location)
}

func TestSummarizeAvgRatingSkipsUnrated(t *testing.T) {
	a := rec(models.PlatformDeliveroo, testNow, 10, 1)
	a.Rating = 4.0
	b := rec(models.PlatformDeliveroo, testNow, 10, 1)
	b.Rating = 5.0
	c := rec(models.PlatformDeliveroo, testNow, 10, 1) // unrated

	snap := Summarize([]models.OrderRecord{a, b, c}, testNow)
	assert.Equal(t, 4.5, snap.AvgRating)
}

func TestFilterEmptySetsMatchAll(t *testing.T) {
	records := []models.OrderRecord{
		rec(models.PlatformDeliveroo, testNow, 100, 1),
		rec(models.PlatformTalabat, testNow, 50, 1),
		rec(models.PlatformNoon, testNow, 25, 1),
		rec(models.PlatformSapaad, testNow, 10, 1),
	}

	unfiltered := Summarize(models.FilterSelection{}.Apply(records), testNow)
	allNamed := Summarize(models.FilterSelection{Platforms: models.AllPlatforms()}.Apply(records), testNow)
	assert.Equal(t, unfiltered.TotalRevenue, allNamed.TotalRevenue)
	assert.Equal(t, unfiltered.TotalOrders, allNamed.TotalOrders)
}

func TestFilterDateRangeInclusive(t *testing.T) {
	filter := models.FilterSelection{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC),
	}

	inside := rec(models.PlatformDeliveroo, time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC), 100, 1)
	outside := rec(models.PlatformDeliveroo, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), 100, 1)
	boundary := rec(models.PlatformDeliveroo, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 100, 1)

	snap := Summarize(filter.Apply([]models.OrderRecord{inside, outside, boundary}), testNow)
	assert.Equal(t, 200.0, snap.TotalRevenue)
}

func TestGrowth(t *testing.T) {
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	records := []models.OrderRecord{
		// previous window
		rec(models.PlatformDeliveroo, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 100, 2),
		// current window
		rec(models.PlatformDeliveroo, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 150, 2),
	}

	growth := Growth(records, start, end)
	assert.Equal(t, "+50.0%", growth.Revenue)
	assert.Equal(t, "+0.0%", growth.Orders)
	assert.Equal(t, "+50.0%", growth.AOV)
}

func TestGrowthWithoutPriorData(t *testing.T) {
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	records := []models.OrderRecord{
		rec(models.PlatformDeliveroo, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 150, 2),
	}
	growth := Growth(records, start, end)
	assert.Equal(t, "N/A", growth.Revenue)
}
