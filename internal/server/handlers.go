package server

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maxzihq/maxzi-analytics/internal/aggregate"
	"github.com/maxzihq/maxzi-analytics/internal/datastatus"
	"github.com/maxzihq/maxzi-analytics/internal/export"
	"github.com/maxzihq/maxzi-analytics/internal/insights"
	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// parseFilter builds a record filter from query parameters. Absent
// parameters fall back to the default window ending today; explicit empty
// values mean unrestricted.
func (s *Server) parseFilter(r *http.Request) (models.FilterSelection, error) {
	q := r.URL.Query()
	filter := models.DefaultFilter(s.now())

	if q.Has("start") || q.Has("end") {
		filter.Start, filter.End = time.Time{}, time.Time{}
	}
	if v := q.Get("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, fmt.Errorf("invalid start date %q, want YYYY-MM-DD", v)
		}
		filter.Start = t
	}
	if v := q.Get("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, fmt.Errorf("invalid end date %q, want YYYY-MM-DD", v)
		}
		filter.End = t
	}
	if !filter.Start.IsZero() && !filter.End.IsZero() && filter.End.Before(filter.Start) {
		return filter, fmt.Errorf("end date precedes start date")
	}

	for _, raw := range q["locations"] {
		for _, loc := range strings.Split(raw, ",") {
			if loc = strings.TrimSpace(loc); loc != "" {
				filter.Locations = append(filter.Locations, loc)
			}
		}
	}
	for _, raw := range q["platforms"] {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			p, err := models.ParsePlatform(name)
			if err != nil {
				return filter, err
			}
			filter.Platforms = append(filter.Platforms, p)
		}
	}
	return filter, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": s.now().Format(time.RFC3339),
		"version":   "2.0",
	})
}

// overviewResponse is the dashboard's primary payload.
type overviewResponse struct {
	Snapshot  models.AggregateSnapshot `json:"snapshot"`
	Growth    models.GrowthSummary     `json:"growth"`
	Trend     models.TrendSeries       `json:"trend"`
	Locations []string                 `json:"locations"`
	Currency  string                   `json:"currency"`
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		respondProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	days := s.trendDays(r, models.DefaultFilterWindowDays)
	records := s.buffer.Records(filter)

	respondJSON(w, http.StatusOK, overviewResponse{
		Snapshot:  aggregate.Summarize(records, s.now()),
		Growth:    aggregate.Growth(s.buffer.Records(dateless(filter)), filter.Start, filter.End),
		Trend:     aggregate.TimeSeries(records, days, s.now()),
		Locations: s.buffer.Locations(),
		Currency:  s.cfg.Currency,
	})
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		respondProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	snap := aggregate.Summarize(s.buffer.Records(filter), s.now())
	respondJSON(w, http.StatusOK, snap.PerLocation)
}

// locationDetailResponse pairs one location's summary with its daily
// trend.
type locationDetailResponse struct {
	Location models.LocationMetrics `json:"location"`
	Trend    models.TrendSeries     `json:"trend"`
}

func (s *Server) handleLocationDetail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	filter, err := s.parseFilter(r)
	if err != nil {
		respondProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	filter.Locations = []string{name}
	records := s.buffer.Records(filter)
	snap := aggregate.Summarize(records, s.now())

	for _, loc := range snap.PerLocation {
		if loc.Location == name {
			respondJSON(w, http.StatusOK, locationDetailResponse{
				Location: loc,
				Trend:    aggregate.TimeSeries(records, s.trendDays(r, 30), s.now()),
			})
			return
		}
	}
	respondProblem(w, http.StatusNotFound, "Unknown location",
		fmt.Sprintf("no records for location %q in the selected window", name))
}

// platformCard is one delivery channel's dashboard card.
type platformCard struct {
	Platform models.Platform `json:"platform"`
	Name     string          `json:"name"`
	Color    string          `json:"color"`
	Revenue  float64         `json:"revenue"`
	Orders   int             `json:"orders"`
	AOV      float64         `json:"aov"`
	Rating   float64         `json:"rating"`
	Growth   string          `json:"growth"`
	Share    float64         `json:"market_share"`
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		respondProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	snap := aggregate.Summarize(s.buffer.Records(filter), s.now())

	cards := make([]platformCard, 0, len(models.AllPlatforms()))
	for _, p := range models.AllPlatforms() {
		perPlatform := dateless(filter)
		perPlatform.Platforms = []models.Platform{p}
		growth := aggregate.Growth(s.buffer.Records(perPlatform), filter.Start, filter.End)

		m := snap.PerPlatform[p]
		cards = append(cards, platformCard{
			Platform: p,
			Name:     p.DisplayName(),
			Color:    p.BrandColor(),
			Revenue:  m.Revenue,
			Orders:   m.Orders,
			AOV:      m.AOV,
			Rating:   m.Rating,
			Growth:   growth.Revenue,
			Share:    m.MarketShare,
		})
	}
	respondJSON(w, http.StatusOK, cards)
}

func (s *Server) handleSocialMedia(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.refdata.Social())
}

func (s *Server) handleGMB(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.refdata.GMB())
}

func (s *Server) handleAIInsights(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		respondProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	snap := aggregate.Summarize(s.buffer.Records(filter), s.now())
	growth := aggregate.Growth(s.buffer.Records(dateless(filter)), filter.Start, filter.End)
	respondJSON(w, http.StatusOK, insights.Generate(snap, growth, s.now()))
}

// handleRealtime reports today's live activity. Order counts come from
// the buffer; kitchen figures have no upload path yet and are simulated
// within realistic bounds.
func (s *Server) handleRealtime(w http.ResponseWriter, _ *http.Request) {
	now := s.now()
	today := models.FilterSelection{
		Start: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		End:   now,
	}
	snap := aggregate.Summarize(s.buffer.Records(today), now)

	respondJSON(w, http.StatusOK, map[string]any{
		"live_orders":        snap.TotalOrders,
		"revenue_today":      snap.TotalRevenue,
		"active_staff":       12,
		"avg_prep_time":      round1(15 + rand.Float64()*5),
		"kitchen_efficiency": round1(92 + rand.Float64()*6),
		"timestamp":          now.Format(time.RFC3339),
	})
}

func (s *Server) handleRevenueTrend(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		respondProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	days := s.trendDays(r, s.cfg.TrendWindowDays)
	// Trend windows are anchored to today, not the filter range.
	filter.Start, filter.End = time.Time{}, time.Time{}
	respondJSON(w, http.StatusOK, aggregate.TimeSeries(s.buffer.Records(filter), days, s.now()))
}

// handleExportReport renders the self-contained HTML report over the
// currently filtered data, same document the export CLI command writes.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		respondProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	records := s.buffer.Records(filter)
	snap := aggregate.Summarize(records, s.now())
	trend := aggregate.TimeSeries(records, s.trendDays(r, models.DefaultFilterWindowDays), s.now())
	growth := aggregate.Growth(s.buffer.Records(dateless(filter)), filter.Start, filter.End)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := export.RenderHTML(w, s.cfg.Currency, snap, growth, trend); err != nil {
		s.logger.Error().Err(err).Msg("failed to render export report")
	}
}

func (s *Server) handleCategoryPerformance(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.refdata.Categories())
}

func (s *Server) handleDataStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, datastatus.Evaluate(s.buffer.All(), s.now()))
}

func (s *Server) handleDataStatusSummary(w http.ResponseWriter, _ *http.Request) {
	ov := datastatus.Evaluate(s.buffer.All(), s.now())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(datastatus.Summary(ov)))
}

func (s *Server) handleDataStatusPlatform(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	platform, err := models.ParsePlatform(name)
	if err != nil {
		respondProblem(w, http.StatusNotFound, "Unknown platform", err.Error())
		return
	}
	ov := datastatus.Evaluate(s.buffer.All(), s.now())
	respondJSON(w, http.StatusOK, ov.Platforms[platform])
}

// dateless strips the date bounds from a filter so growth comparisons can
// see the period preceding the selected window.
func dateless(f models.FilterSelection) models.FilterSelection {
	f.Start, f.End = time.Time{}, time.Time{}
	return f
}

// trendDays reads the days query parameter, falling back to def.
func (s *Server) trendDays(r *http.Request, def int) int {
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			return n
		}
	}
	if def <= 0 {
		return models.DefaultFilterWindowDays
	}
	return def
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
