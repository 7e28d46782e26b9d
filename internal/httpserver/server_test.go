package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightloop/pulseboard/internal/config"
	"github.com/brightloop/pulseboard/internal/insight"
	"github.com/brightloop/pulseboard/internal/models"
)

func testServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Auth.Enabled = false
	cfg.RateLimit.Enabled = false
	cfg.Metrics.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	// Nil DB/Redis: in-memory storage, no cache, nil metrics.
	handler := NewServer(&Dependencies{
		Config: cfg,
		Logger: zap.NewNop(),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSummaryEndToEnd(t *testing.T) {
	srv := testServer(t, nil)

	rows := []models.DailyMetricRow{
		{Date: "2025-07-01", AdSpend: 1000, AdConversionValue: 500, OrderRevenue: 2000, OrderCount: 10},
		{Date: "2025-07-02", AdSpend: 1000, AdConversionValue: 1500, OrderRevenue: 2000, OrderCount: 10},
		{Date: "2025-07-03", AdSpend: 1000, AdConversionValue: 1000, OrderRevenue: 2000, OrderCount: 10},
	}
	resp := postJSON(t, srv.URL+"/api/reports/daily", rows)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/reports/summary?from=2025-07-01&to=2025-07-03")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s models.WeeklySummary
	decodeJSON(t, resp, &s)
	assert.Equal(t, 3000.0, s.AdSpend)
	assert.Equal(t, 1.0, s.ROAS)
	assert.Equal(t, 2.0, s.MER)
	assert.Equal(t, 200.0, s.AOV)
}

func TestSummaryRejectsBadRange(t *testing.T) {
	srv := testServer(t, nil)

	for _, query := range []string{
		"",                                  // missing both
		"?from=2025-07-01",                  // missing to
		"?from=2025-7-1&to=2025-07-03",      // malformed date
		"?from=2025-07-09&to=2025-07-03",    // inverted range
	} {
		resp, err := http.Get(srv.URL + "/api/reports/summary" + query)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "query %q", query)
	}
}

func TestIngestRejectsBadDate(t *testing.T) {
	srv := testServer(t, nil)

	resp := postJSON(t, srv.URL+"/api/reports/daily", []models.DailyMetricRow{{Date: "not-a-date"}})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdsEndToEnd(t *testing.T) {
	srv := testServer(t, nil)
	week := "2025-06-30"

	rows := []models.RawAdRow{
		{ID: "r1", AdID: "ad-1", AdName: "Hero [1/2]",
			Metrics: json.RawMessage(`{"spend":1000,"impressions":1000,"clicks":50,"purchases":5,"conversion_value":2000}`)},
		{ID: "r2", AdID: "v2", Tags: []string{"original_ad_id:ad-1"},
			Metrics: json.RawMessage(`{"spend":1,"impressions":1}`)},
	}
	resp := postJSON(t, srv.URL+"/api/ads?week_start="+week, rows)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/ads?week_start=" + week)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []models.AdMetrics
	decodeJSON(t, resp, &out)
	require.Len(t, out, 1)
	assert.Equal(t, "ad-1", out[0].AdID)
	assert.Equal(t, "Hero", out[0].AdName)
	assert.Equal(t, 5.0, out[0].CTR)
	assert.Equal(t, 2.0, out[0].ROAS)
}

func TestAdsetsEndToEnd(t *testing.T) {
	srv := testServer(t, nil)
	week := "2025-06-30"

	rows := []models.AdsetRow{{
		ID: "1", AdsetID: "as-1", AdsetName: "Prospecting",
		Spend: 1000, Impressions: 1000, Clicks: 50, Purchases: 5,
		Targeting: json.RawMessage(`{"age_range":"18+"}`),
	}}
	resp := postJSON(t, srv.URL+"/api/adsets?week_start="+week, rows)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/adsets?week_start=" + week)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []insight.AdsetReport
	decodeJSON(t, resp, &out)
	require.Len(t, out, 1)
	assert.Equal(t, 5.0, out[0].CTR)
	// 18+ age range, no interests: 5 - 1 - 1 = 3.0
	assert.InDelta(t, 3.0, out[0].Assessment.Score, 1e-9)
}

func TestAuthMiddlewareEnforced(t *testing.T) {
	srv := testServer(t, func(cfg *config.Config) {
		cfg.Auth.Enabled = true
		cfg.Auth.APIKey = "secret"
		cfg.Auth.SkipPaths = []string{"/health"}
	})

	// Health is skipped.
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// API paths require the key.
	resp, err = http.Get(srv.URL + "/api/reports/summary?from=2025-07-01&to=2025-07-03")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/reports/summary?from=2025-07-01&to=2025-07-03", nil)
	require.NoError(t, err)
	req.Header.Set("X-API-Key", "secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestIDHeader(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
