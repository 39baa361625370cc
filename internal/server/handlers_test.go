package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxzihq/maxzi-analytics/internal/datastatus"
	"github.com/maxzihq/maxzi-analytics/internal/models"
	"github.com/maxzihq/maxzi-analytics/internal/refdata"
	"github.com/maxzihq/maxzi-analytics/internal/store"
)

var serverNow = time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &models.Config{
		Currency:        "AED",
		TrendWindowDays: 30,
		Server: models.ServerConfig{
			Addr:            ":0",
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: time.Second,
			UploadRateLimit: 100,
		},
	}
	buffer := store.NewBuffer(store.NewSnapshotStore(t.TempDir()), zerolog.Nop())
	s := New(cfg, zerolog.Nop(), buffer, refdata.NewStore("", "", zerolog.Nop()))
	s.now = func() time.Time { return serverNow }
	return s
}

func seedOrders(t *testing.T, s *Server) {
	t.Helper()
	day := func(d string) time.Time {
		parsed, err := time.Parse("2006-01-02", d)
		require.NoError(t, err)
		return parsed
	}
	s.buffer.Replace(context.Background(), models.PlatformDeliveroo, []models.OrderRecord{
		{Platform: models.PlatformDeliveroo, Date: day("2024-01-15"), OrderID: "d1", Location: "Al Quoz", Revenue: 100, Orders: 1, Rating: 4.5},
		{Platform: models.PlatformDeliveroo, Date: day("2024-01-14"), OrderID: "d2", Location: "Dubai Marina", Revenue: 80, Orders: 1, Rating: 4.0},
	})
	s.buffer.Replace(context.Background(), models.PlatformTalabat, []models.OrderRecord{
		{Platform: models.PlatformTalabat, Date: day("2024-01-15"), Location: "Al Quoz", Revenue: 60, Orders: 2},
	})
}

func doGet(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestOverviewAggregatesBufferedOrders(t *testing.T) {
	s := testServer(t)
	seedOrders(t, s)

	rec := doGet(t, s, "/api/overview")
	require.Equal(t, http.StatusOK, rec.Code)

	var body overviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 240.0, body.Snapshot.TotalRevenue)
	assert.Equal(t, 4, body.Snapshot.TotalOrders)
	assert.Equal(t, "AED", body.Currency)
	assert.Equal(t, []string{"Al Quoz", "Dubai Marina"}, body.Locations)
	require.Len(t, body.Trend.Points, 7)
}

func TestOverviewFiltersByPlatformAndLocation(t *testing.T) {
	s := testServer(t)
	seedOrders(t, s)

	rec := doGet(t, s, "/api/overview?platforms=talabat")
	require.Equal(t, http.StatusOK, rec.Code)
	var body overviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 60.0, body.Snapshot.TotalRevenue)

	rec = doGet(t, s, "/api/overview?locations=Dubai+Marina")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 80.0, body.Snapshot.TotalRevenue)
}

func TestOverviewExplicitRangeOverridesDefaultWindow(t *testing.T) {
	s := testServer(t)
	seedOrders(t, s)

	rec := doGet(t, s, "/api/overview?start=2024-01-14&end=2024-01-14")
	require.Equal(t, http.StatusOK, rec.Code)
	var body overviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 80.0, body.Snapshot.TotalRevenue)
}

func TestOverviewRejectsBadDates(t *testing.T) {
	s := testServer(t)

	rec := doGet(t, s, "/api/overview?start=15-01-2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	rec = doGet(t, s, "/api/overview?start=2024-01-15&end=2024-01-10")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlatformsReturnsAllFourCards(t *testing.T) {
	s := testServer(t)
	seedOrders(t, s)

	rec := doGet(t, s, "/api/platforms")
	require.Equal(t, http.StatusOK, rec.Code)

	var cards []platformCard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	require.Len(t, cards, 4)
	assert.Equal(t, "Deliveroo", cards[0].Name)
	assert.Equal(t, "#00CCBC", cards[0].Color)
	assert.Equal(t, 90.0, cards[0].AOV)
	assert.Equal(t, 0.0, cards[2].Revenue, "noon has no data")
}

func TestLocationDetail(t *testing.T) {
	s := testServer(t)
	seedOrders(t, s)

	rec := doGet(t, s, "/api/locations/Al%20Quoz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body locationDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Al Quoz", body.Location.Location)
	assert.Equal(t, 160.0, body.Location.Revenue)
	assert.Equal(t, 3, body.Location.Orders)

	rec = doGet(t, s, "/api/locations/Nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSocialMediaAndGMBAndCategories(t *testing.T) {
	s := testServer(t)

	rec := doGet(t, s, "/api/social-media")
	require.Equal(t, http.StatusOK, rec.Code)
	var social refdata.SocialMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &social))
	assert.Equal(t, 27190, social.Instagram.Followers)

	rec = doGet(t, s, "/api/gmb")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(t, s, "/api/analytics/category-performance")
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []refdata.CategoryPerformance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.NotEmpty(t, cats)
}

func TestRevenueTrendDaysParameter(t *testing.T) {
	s := testServer(t)
	seedOrders(t, s)

	rec := doGet(t, s, "/api/analytics/revenue-trend?days=14")
	require.Equal(t, http.StatusOK, rec.Code)

	var trend models.TrendSeries
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trend))
	assert.Equal(t, 14, trend.WindowDays)
	require.Len(t, trend.Points, 14)
	assert.Equal(t, 160.0, trend.Points[13].Revenue)
	assert.Equal(t, 80.0, trend.Points[12].Revenue)
}

func TestRealtimeReportsTodayOrders(t *testing.T) {
	s := testServer(t)
	seedOrders(t, s)

	rec := doGet(t, s, "/api/realtime")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3.0, body["live_orders"], "deliveroo 1 + talabat 2 today")
	assert.Equal(t, 160.0, body["revenue_today"])
}

func TestAIInsightsEndpoint(t *testing.T) {
	s := testServer(t)
	seedOrders(t, s)

	rec := doGet(t, s, "/api/ai-insights")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Summary, "Deliveroo")
}

func TestExportReportRendersHTML(t *testing.T) {
	s := testServer(t)
	seedOrders(t, s)

	rec := doGet(t, s, "/api/export/report")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	html := rec.Body.String()
	assert.Contains(t, html, "MAXZI Performance Report")
	assert.Contains(t, html, "AED 240.00")
	assert.Contains(t, html, "Al Quoz")

	rec = doGet(t, s, "/api/export/report?start=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDataStatusEndpoints(t *testing.T) {
	s := testServer(t)
	seedOrders(t, s)

	rec := doGet(t, s, "/api/data-status")
	require.Equal(t, http.StatusOK, rec.Code)
	var ov datastatus.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ov))
	require.Len(t, ov.Platforms, 4)
	assert.Equal(t, datastatus.StatusCurrent, ov.Platforms[models.PlatformDeliveroo].Status)
	assert.Equal(t, datastatus.StatusNoData, ov.Platforms[models.PlatformNoon].Status)

	rec = doGet(t, s, "/api/data-status/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DATA STATUS SUMMARY")

	rec = doGet(t, s, "/api/data-status/platform/talabat")
	require.Equal(t, http.StatusOK, rec.Code)
	var st datastatus.PlatformStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, models.PlatformTalabat, st.Platform)

	rec = doGet(t, s, "/api/data-status/platform/ubereats")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
