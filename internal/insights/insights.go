package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// Insight is one generated observation with a severity and category.
type Insight struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Impact   string `json:"impact"`
}

// Report is the full rule-based insight set for a snapshot.
type Report struct {
	Summary         string    `json:"summary"`
	Predictions     []Insight `json:"predictions"`
	Recommendations []Insight `json:"recommendations"`
	Alerts          []Insight `json:"alerts"`
	GeneratedAt     string    `json:"generated_at"`
}

// Insight types.
const (
	TypePositive = "positive"
	TypeNeutral  = "neutral"
	TypeWarning  = "warning"
)

// Generate derives plain-language observations from an aggregate snapshot
// and the growth comparison against the preceding window. Rules only, no
// model calls: the dashboard needs deterministic, explainable output.
func Generate(snap models.AggregateSnapshot, growth models.GrowthSummary, now time.Time) *Report {
	rpt := &Report{GeneratedAt: now.Format(time.RFC3339)}

	top, bottom, ok := rankPlatforms(snap)
	if snap.TotalOrders == 0 || !ok {
		rpt.Summary = "No order data in the selected window. Upload platform reports to unlock insights."
		rpt.Alerts = append(rpt.Alerts, Insight{
			Type:     TypeWarning,
			Category: "data",
			Title:    "No data available",
			Message:  "No orders matched the current filters. Check platform uploads and the selected date range.",
			Impact:   "high",
		})
		return rpt
	}
	rpt.Summary = fmt.Sprintf(
		"AED %.2f in revenue across %d orders. %s leads with %.1f%% of revenue; average order value is AED %.2f.",
		snap.TotalRevenue, snap.TotalOrders,
		top.DisplayName(), snap.PerPlatform[top].MarketShare, snap.AvgOrderValue,
	)

	rpt.Predictions = predictions(snap, growth, top)
	rpt.Recommendations = recommendations(snap, top, bottom)
	rpt.Alerts = alerts(snap, growth)
	return rpt
}

// rankPlatforms returns the highest and lowest revenue platforms that have
// any orders at all. Bottom falls back to top when only one platform has
// data. ok is false when no known platform has orders, which can happen
// when every counted order sits under an out-of-enum platform tag in a
// hand-edited or tampered snapshot.
func rankPlatforms(snap models.AggregateSnapshot) (top, bottom models.Platform, ok bool) {
	active := make([]models.Platform, 0, len(snap.PerPlatform))
	for p, m := range snap.PerPlatform {
		if m.Orders > 0 {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return "", "", false
	}
	sort.Slice(active, func(i, j int) bool {
		a, b := snap.PerPlatform[active[i]], snap.PerPlatform[active[j]]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return active[i] < active[j]
	})
	return active[0], active[len(active)-1], true
}

func predictions(snap models.AggregateSnapshot, growth models.GrowthSummary, top models.Platform) []Insight {
	var out []Insight
	if growth.Revenue != "" && growth.Revenue != "N/A" {
		kind := TypePositive
		if growth.Revenue[0] == '-' {
			kind = TypeWarning
		}
		out = append(out, Insight{
			Type:     kind,
			Category: "revenue",
			Title:    "Revenue trajectory",
			Message:  fmt.Sprintf("Revenue is tracking %s against the previous period.", growth.Revenue),
			Impact:   "high",
		})
	}
	out = append(out, Insight{
		Type:     TypeNeutral,
		Category: "platform",
		Title:    "Channel concentration",
		Message: fmt.Sprintf("%s is expected to remain the primary channel at %.1f%% of revenue.",
			top.DisplayName(), snap.PerPlatform[top].MarketShare),
		Impact: "medium",
	})
	return out
}

func recommendations(snap models.AggregateSnapshot, top, bottom models.Platform) []Insight {
	var out []Insight
	if bottom != top && snap.PerPlatform[bottom].MarketShare < 10 {
		out = append(out, Insight{
			Type:     TypeNeutral,
			Category: "platform",
			Title:    fmt.Sprintf("Grow %s", bottom.DisplayName()),
			Message: fmt.Sprintf("%s contributes only %.1f%% of revenue. Consider promotions or menu visibility on that channel.",
				bottom.DisplayName(), snap.PerPlatform[bottom].MarketShare),
			Impact: "medium",
		})
	}
	if snap.PerPlatform[top].MarketShare > 60 {
		out = append(out, Insight{
			Type:     TypeWarning,
			Category: "risk",
			Title:    "Channel dependency",
			Message: fmt.Sprintf("Over %.0f%% of revenue comes from %s. Diversifying reduces exposure to commission or policy changes.",
				snap.PerPlatform[top].MarketShare, top.DisplayName()),
			Impact: "high",
		})
	}
	if len(snap.PerLocation) > 1 {
		lead := snap.PerLocation[0]
		out = append(out, Insight{
			Type:     TypeNeutral,
			Category: "location",
			Title:    "Replicate top location playbook",
			Message: fmt.Sprintf("%s is the strongest location at AED %.2f. Review its menu mix and hours for rollout to other branches.",
				lead.Location, lead.Revenue),
			Impact: "medium",
		})
	}
	return out
}

func alerts(snap models.AggregateSnapshot, growth models.GrowthSummary) []Insight {
	var out []Insight
	if growth.Orders != "" && growth.Orders != "N/A" && growth.Orders[0] == '-' {
		out = append(out, Insight{
			Type:     TypeWarning,
			Category: "orders",
			Title:    "Order volume declining",
			Message:  fmt.Sprintf("Order count is down %s versus the previous period.", growth.Orders),
			Impact:   "high",
		})
	}
	for _, p := range models.AllPlatforms() {
		if snap.PerPlatform[p].Orders == 0 {
			out = append(out, Insight{
				Type:     TypeWarning,
				Category: "data",
				Title:    fmt.Sprintf("%s has no data", p.DisplayName()),
				Message:  fmt.Sprintf("No %s orders in the selected window. Upload the latest report if one is available.", p.DisplayName()),
				Impact:   "medium",
			})
		}
	}
	if snap.AvgRating > 0 && snap.AvgRating < 4.0 {
		out = append(out, Insight{
			Type:     TypeWarning,
			Category: "quality",
			Title:    "Ratings below target",
			Message:  fmt.Sprintf("Average rating is %.2f, under the 4.0 target. Review recent reviews for recurring complaints.", snap.AvgRating),
			Impact:   "medium",
		})
	}
	return out
}
