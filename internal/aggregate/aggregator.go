package aggregate

import (
	"sort"
	"time"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// Summarize recomputes the aggregate snapshot from the records in scope.
// Every call is a full recompute from source; realistic per-platform
// volumes are small enough that caching would buy nothing.
func Summarize(records []models.OrderRecord, now time.Time) models.AggregateSnapshot {
	snap := models.AggregateSnapshot{
		PerPlatform: make(map[models.Platform]models.PlatformMetrics, 4),
		GeneratedAt: now,
	}

	type locAcc struct {
		revenue     float64
		orders      int
		ratingSum   float64
		ratingCount int
	}
	platAcc := make(map[models.Platform]*locAcc, 4)
	for _, p := range models.AllPlatforms() {
		platAcc[p] = &locAcc{}
	}
	locations := make(map[string]*locAcc)

	var ratingSum float64
	var ratingCount int

	for _, r := range records {
		snap.TotalRevenue += r.Revenue
		snap.TotalOrders += r.Orders
		if r.Rating > 0 {
			ratingSum += r.Rating
			ratingCount++
		}

		if acc, ok := platAcc[r.Platform]; ok {
			acc.revenue += r.Revenue
			acc.orders += r.Orders
			if r.Rating > 0 {
				acc.ratingSum += r.Rating
				acc.ratingCount++
			}
		}

		if r.Location != "" {
			acc := locations[r.Location]
			if acc == nil {
				acc = &locAcc{}
				locations[r.Location] = acc
			}
			acc.revenue += r.Revenue
			acc.orders += r.Orders
			if r.Rating > 0 {
				acc.ratingSum += r.Rating
				acc.ratingCount++
			}
		}
	}

	snap.AvgOrderValue = safeDivide(snap.TotalRevenue, float64(snap.TotalOrders))
	snap.AvgRating = safeDivide(ratingSum, float64(ratingCount))

	for _, p := range models.AllPlatforms() {
		acc := platAcc[p]
		share := 0.0
		if snap.TotalRevenue > 0 {
			share = acc.revenue / snap.TotalRevenue * 100
		}
		snap.PerPlatform[p] = models.PlatformMetrics{
			Revenue:     acc.revenue,
			Orders:      acc.orders,
			AOV:         safeDivide(acc.revenue, float64(acc.orders)),
			Rating:      safeDivide(acc.ratingSum, float64(acc.ratingCount)),
			MarketShare: share,
		}
	}

	snap.PerLocation = make([]models.LocationMetrics, 0, len(locations))
	for name, acc := range locations {
		snap.PerLocation = append(snap.PerLocation, models.LocationMetrics{
			Location: name,
			Revenue:  acc.revenue,
			Orders:   acc.orders,
			AOV:      safeDivide(acc.revenue, float64(acc.orders)),
			Rating:   safeDivide(acc.ratingSum, float64(acc.ratingCount)),
		})
	}
	sort.Slice(snap.PerLocation, func(i, j int) bool {
		if snap.PerLocation[i].Revenue != snap.PerLocation[j].Revenue {
			return snap.PerLocation[i].Revenue > snap.PerLocation[j].Revenue
		}
		return snap.PerLocation[i].Location < snap.PerLocation[j].Location
	})

	return snap
}

// safeDivide guards the aov = revenue / orders invariant: a zero
// denominator yields 0, never a division error.
func safeDivide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
