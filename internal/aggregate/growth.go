package aggregate

import (
	"fmt"
	"time"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// Growth compares the filtered window against the window of equal length
// immediately before it and formats the movement for the overview cards.
// With no prior data the cards show a placeholder rather than a
// misleading percentage.
func Growth(records []models.OrderRecord, start, end time.Time) models.GrowthSummary {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return models.GrowthSummary{Revenue: "N/A", Orders: "N/A", AOV: "N/A"}
	}

	window := end.Sub(start)
	current := models.FilterSelection{Start: start, End: end}.Apply(records)
	previous := models.FilterSelection{Start: start.Add(-window), End: start.Add(-time.Nanosecond)}.Apply(records)

	curr := Summarize(current, end)
	prev := Summarize(previous, end)

	return models.GrowthSummary{
		Revenue: growthLabel(curr.TotalRevenue, prev.TotalRevenue),
		Orders:  growthLabel(float64(curr.TotalOrders), float64(prev.TotalOrders)),
		AOV:     growthLabel(curr.AvgOrderValue, prev.AvgOrderValue),
	}
}

func growthLabel(current, previous float64) string {
	if previous == 0 {
		return "N/A"
	}
	pct := (current - previous) / previous * 100
	return fmt.Sprintf("%+.1f%%", pct)
}
