package models

import "time"

// OrderRecord is the canonical row shape every platform export is
// normalised into. Records are immutable once normalised; uploading a new
// file for a platform replaces its records wholesale.
type OrderRecord struct {
	Platform Platform  `json:"platform"`
	Date     time.Time `json:"date"`
	OrderID  string    `json:"order_id"`
	Location string    `json:"location"`
	Revenue  float64   `json:"revenue"`
	Orders   int       `json:"orders"`
	AOV      float64   `json:"aov"`
	Rating   float64   `json:"rating,omitempty"`
	// Raw keeps the original parsed row for traceability.
	Raw map[string]string `json:"raw_data,omitempty"`
}

// PlatformMetrics holds the sum/average figures for one platform bucket.
type PlatformMetrics struct {
	Revenue     float64 `json:"revenue"`
	Orders      int     `json:"orders"`
	AOV         float64 `json:"aov"`
	Rating      float64 `json:"rating"`
	MarketShare float64 `json:"market_share"`
}

// LocationMetrics holds the aggregated figures for one location.
type LocationMetrics struct {
	Location string  `json:"location_name"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	AOV      float64 `json:"aov"`
	Rating   float64 `json:"rating"`
}

// AggregateSnapshot is the fully recomputed summary over the records in
// scope. It is derived, never stored: every data or filter change triggers
// a recompute from the raw buckets.
type AggregateSnapshot struct {
	TotalRevenue  float64                      `json:"total_revenue"`
	TotalOrders   int                          `json:"total_orders"`
	AvgOrderValue float64                      `json:"avg_order_value"`
	AvgRating     float64                      `json:"avg_rating"`
	PerPlatform   map[Platform]PlatformMetrics `json:"per_platform"`
	PerLocation   []LocationMetrics            `json:"per_location"`
	GeneratedAt   time.Time                    `json:"generated_at"`
}

// TrendPoint is one calendar-day bucket of the revenue time series.
type TrendPoint struct {
	Date    time.Time `json:"date"`
	Label   string    `json:"label"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
}

// TrendSeries is the windowed per-day revenue series behind the chart.
type TrendSeries struct {
	WindowDays int          `json:"window_days"`
	Points     []TrendPoint `json:"points"`
}

// GrowthSummary carries period-over-period movement strings for the
// overview cards, e.g. "+24.9%".
type GrowthSummary struct {
	Revenue string `json:"revenue"`
	Orders  string `json:"orders"`
	AOV     string `json:"aov"`
}
