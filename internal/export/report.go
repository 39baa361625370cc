package export

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// reportData feeds the HTML report template.
type reportData struct {
	Title       string
	Currency    string
	GeneratedAt string
	Snapshot    models.AggregateSnapshot
	Growth      models.GrowthSummary
	Trend       models.TrendSeries
	Platforms   []platformCard
}

type platformCard struct {
	Name    string
	Color   string
	Metrics models.PlatformMetrics
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, Segoe UI, sans-serif; margin: 2rem; color: #1f2937; }
h1 { font-size: 1.5rem; }
.cards { display: flex; gap: 1rem; flex-wrap: wrap; }
.card { border: 1px solid #e5e7eb; border-radius: 8px; padding: 1rem; min-width: 180px; }
.card h3 { margin: 0 0 .5rem; border-left: 4px solid var(--accent); padding-left: .5rem; }
table { border-collapse: collapse; margin-top: 1rem; }
td, th { border: 1px solid #e5e7eb; padding: .35rem .75rem; text-align: right; }
th { background: #f9fafb; }
td:first-child, th:first-child { text-align: left; }
.muted { color: #6b7280; font-size: .85rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="muted">Generated {{.GeneratedAt}}</p>

<div class="cards">
<div class="card"><h3 style="--accent:#1f2937">Totals</h3>
<p>Revenue: {{.Currency}} {{printf "%.2f" .Snapshot.TotalRevenue}} ({{.Growth.Revenue}})</p>
<p>Orders: {{.Snapshot.TotalOrders}} ({{.Growth.Orders}})</p>
<p>Avg order value: {{.Currency}} {{printf "%.2f" .Snapshot.AvgOrderValue}} ({{.Growth.AOV}})</p>
<p>Avg rating: {{printf "%.2f" .Snapshot.AvgRating}}</p>
</div>
{{range .Platforms}}
<div class="card"><h3 style="--accent:{{.Color}}">{{.Name}}</h3>
<p>Revenue: {{$.Currency}} {{printf "%.2f" .Metrics.Revenue}}</p>
<p>Orders: {{.Metrics.Orders}}</p>
<p>AOV: {{$.Currency}} {{printf "%.2f" .Metrics.AOV}}</p>
<p>Share: {{printf "%.1f" .Metrics.MarketShare}}%</p>
</div>
{{end}}
</div>

<h2>Daily trend ({{.Trend.WindowDays}} days)</h2>
<table>
<tr><th>Day</th><th>Revenue</th><th>Orders</th></tr>
{{range .Trend.Points}}
<tr><td>{{.Label}}</td><td>{{printf "%.2f" .Revenue}}</td><td>{{.Orders}}</td></tr>
{{end}}
</table>

<h2>Locations</h2>
<table>
<tr><th>Location</th><th>Revenue</th><th>Orders</th><th>AOV</th></tr>
{{range .Snapshot.PerLocation}}
<tr><td>{{.Location}}</td><td>{{printf "%.2f" .Revenue}}</td><td>{{.Orders}}</td><td>{{printf "%.2f" .AOV}}</td></tr>
{{end}}
</table>
</body>
</html>
`))

// RenderHTML writes a self-contained HTML performance report.
func RenderHTML(w io.Writer, currency string, snap models.AggregateSnapshot, growth models.GrowthSummary, trend models.TrendSeries) error {
	data := reportData{
		Title:       "MAXZI Performance Report",
		Currency:    currency,
		GeneratedAt: snap.GeneratedAt.Format(time.RFC1123),
		Snapshot:    snap,
		Growth:      growth,
		Trend:       trend,
	}
	for _, p := range models.AllPlatforms() {
		data.Platforms = append(data.Platforms, platformCard{
			Name:    p.DisplayName(),
			Color:   p.BrandColor(),
			Metrics: snap.PerPlatform[p],
		})
	}
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteHTML renders the report to a file.
func WriteHTML(path, currency string, snap models.AggregateSnapshot, growth models.GrowthSummary, trend models.TrendSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return RenderHTML(f, currency, snap, growth, trend)
}
