package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/brightloop/pulseboard/internal/cache"
	"github.com/brightloop/pulseboard/internal/config"
	"github.com/brightloop/pulseboard/internal/database"
	"github.com/brightloop/pulseboard/internal/insight"
	"github.com/brightloop/pulseboard/internal/metrics"
	"github.com/brightloop/pulseboard/internal/middleware"
	"github.com/brightloop/pulseboard/internal/models"
	"github.com/brightloop/pulseboard/internal/storage"
)

// Dependencies holds all external dependencies for the server.  DB and
// Redis may be nil; the server then falls back to in-memory storage and
// no caching, which keeps local development and tests self-contained.
type Dependencies struct {
	DB      *database.PostgresDB
	Redis   *database.RedisDB
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Server wraps HTTP handlers and the insight services.
type Server struct {
	reports *insight.ReportService
	ads     *insight.AdService
	logger  *zap.Logger
	config  *config.Config
}

// NewServer constructs an http.Handler with all routes registered.
func NewServer(deps *Dependencies) http.Handler {
	// Initialize repositories
	var dailyRepo storage.DailyMetricsRepo
	var adRepo storage.AdRepo

	if deps.DB != nil {
		dailyRepo = storage.NewPostgresDailyMetricsRepo(deps.DB.Pool)
		adRepo = storage.NewPostgresAdRepo(deps.DB.Pool)
	} else {
		dailyRepo = storage.NewInMemoryDailyMetricsRepo()
		adRepo = storage.NewInMemoryAdRepo()
	}

	// Initialize summary cache
	var summaryCache cache.SummaryCache
	if deps.Redis != nil {
		summaryCache = cache.NewRedisSummaryCache(deps.Redis.Client, deps.Config.Report.SummaryCacheTTL, deps.Logger)
	} else {
		summaryCache = cache.NewNoopSummaryCache()
	}

	s := &Server{
		reports: insight.NewReportService(dailyRepo, summaryCache, deps.Metrics, deps.Logger),
		ads:     insight.NewAdService(adRepo, deps.Metrics, deps.Logger),
		logger:  deps.Logger,
		config:  deps.Config,
	}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	if deps.Config.Metrics.Enabled {
		mux.Handle(deps.Config.Metrics.Path, metrics.Handler())
	}

	// Reports
	mux.HandleFunc("/api/reports/daily", s.handleDailyReports)
	mux.HandleFunc("/api/reports/summary", s.handleSummary)

	// Ads
	mux.HandleFunc("/api/ads", s.handleAds)
	mux.HandleFunc("/api/adsets", s.handleAdsets)

	// Middleware chain: recovery wraps everything, request IDs before
	// logging so log lines carry them.
	var handler http.Handler = mux
	handler = middleware.NewAuthMiddleware(deps.Config.Auth, deps.Logger).Handler(handler)
	handler = middleware.NewRateLimitMiddleware(deps.Config.RateLimit, deps.Logger, deps.Metrics).Handler(handler)
	handler = middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics).Handler(handler)
	handler = middleware.NewRequestIDMiddleware().Handler(handler)
	handler = middleware.NewRecoveryMiddleware(deps.Logger).Handler(handler)

	return handler
}

// ---- Health Check ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- Daily Reports ----

func (s *Server) handleDailyReports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		from, to, err := dateRangeParams(r)
		if err != nil {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		rows, err := s.reports.ListDaily(r.Context(), from, to)
		if err != nil {
			s.logger.Error("list daily failed", zap.Error(err))
			s.errorResponse(w, "failed to load daily metrics", http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		var rows []models.DailyMetricRow
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		for _, row := range rows {
			if _, err := time.Parse("2006-01-02", row.Date); err != nil {
				s.errorResponse(w, "invalid date: "+row.Date, http.StatusBadRequest)
				return
			}
		}
		if err := s.reports.UpsertDaily(r.Context(), rows); err != nil {
			s.logger.Error("upsert daily failed", zap.Error(err))
			s.errorResponse(w, "failed to store daily metrics", http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]int{"upserted": len(rows)})

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	from, to, err := dateRangeParams(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	summary, err := s.reports.Summary(r.Context(), from, to)
	if err != nil {
		s.logger.Error("summary failed", zap.Error(err))
		s.errorResponse(w, "failed to compute summary", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// ---- Ads ----

func (s *Server) handleAds(w http.ResponseWriter, r *http.Request) {
	weekStart, err := weekStartParam(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		out, err := s.ads.WeeklyAds(r.Context(), weekStart)
		if err != nil {
			s.logger.Error("weekly ads failed", zap.Error(err))
			s.errorResponse(w, "failed to load ads", http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, out)

	case http.MethodPost:
		var rows []models.RawAdRow
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := s.ads.ReplaceWeeklyAds(r.Context(), weekStart, rows); err != nil {
			s.logger.Error("replace ads failed", zap.Error(err))
			s.errorResponse(w, "failed to store ads", http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]int{"stored": len(rows)})

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdsets(w http.ResponseWriter, r *http.Request) {
	weekStart, err := weekStartParam(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		out, err := s.ads.WeeklyAdsets(r.Context(), weekStart)
		if err != nil {
			s.logger.Error("weekly adsets failed", zap.Error(err))
			s.errorResponse(w, "failed to load adsets", http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, out)

	case http.MethodPost:
		var rows []models.AdsetRow
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := s.ads.ReplaceWeeklyAdsets(r.Context(), weekStart, rows); err != nil {
			s.logger.Error("replace adsets failed", zap.Error(err))
			s.errorResponse(w, "failed to store adsets", http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]int{"stored": len(rows)})

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Helpers ----

func dateRangeParams(r *http.Request) (from, to string, err error) {
	from = r.URL.Query().Get("from")
	to = r.URL.Query().Get("to")
	if _, perr := time.Parse("2006-01-02", from); perr != nil {
		return "", "", errBadParam("from")
	}
	if _, perr := time.Parse("2006-01-02", to); perr != nil {
		return "", "", errBadParam("to")
	}
	if from > to {
		return "", "", errBadParam("from..to")
	}
	return from, to, nil
}

func weekStartParam(r *http.Request) (string, error) {
	weekStart := r.URL.Query().Get("week_start")
	if _, err := time.Parse("2006-01-02", weekStart); err != nil {
		return "", errBadParam("week_start")
	}
	return weekStart, nil
}

type paramError string

func errBadParam(name string) error { return paramError(name) }

func (e paramError) Error() string {
	return "missing or invalid " + string(e) + " parameter (expected YYYY-MM-DD)"
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
