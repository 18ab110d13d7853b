package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vbonduro/fieldlog/internal/service"
)

type Server struct {
	service *service.FieldService
	mux     *http.ServeMux
	logger  *slog.Logger
}

// NewServer builds the JSON API. Metrics from gatherer are exposed on
// /metrics; pass nil to disable the endpoint.
func NewServer(svc *service.FieldService, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	s := &Server{
		service: svc,
		mux:     http.NewServeMux(),
		logger:  logger,
	}
	s.registerRoutes()
	if gatherer != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/categories", s.handleListCategories)
	s.mux.HandleFunc("GET /api/categories/impact", s.handleReferenceCounts)
	s.mux.HandleFunc("POST /api/categories", s.handleSaveCategory)
	s.mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)
	s.mux.HandleFunc("GET /api/categories/{id}/impact", s.handleCategoryImpact)
	s.mux.HandleFunc("GET /api/categories/{id}/records", s.handleCategoryRecords)

	s.mux.HandleFunc("GET /api/crews", s.handleListCrews)
	s.mux.HandleFunc("POST /api/crews", s.handleSaveCrew)
	s.mux.HandleFunc("DELETE /api/crews/{id}", s.handleDeleteCrew)
	s.mux.HandleFunc("GET /api/crews/{id}/impact", s.handleCrewImpact)

	s.mux.HandleFunc("GET /api/records", s.handleListRecords)
	s.mux.HandleFunc("POST /api/records", s.handleCreateRecord)
	s.mux.HandleFunc("GET /api/records/{id}", s.handleGetRecord)
	s.mux.HandleFunc("DELETE /api/records/{id}", s.handleDeleteRecord)

	s.mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /api/reports", s.handleReport)
	s.mux.HandleFunc("GET /api/reports/export.csv", s.handleExportCSV)
	s.mux.HandleFunc("POST /api/reports/archive", s.handleArchiveReport)
	s.mux.HandleFunc("GET /api/reports/archive", s.handleListArchive)
	s.mux.HandleFunc("GET /api/reports/archive/{key...}", s.handleGetArchived)
	s.mux.HandleFunc("DELETE /api/reports/archive/{key...}", s.handleDeleteArchived)

	s.mux.HandleFunc("POST /api/captions", s.handleCaption)

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// HTTPServer returns an *http.Server for addr with the default timeouts.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
