package web

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/vbonduro/fieldlog/internal/report"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.service.Dashboard(r.Context())
	if err != nil {
		s.writeError(w, "dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// reportFilter reads the filter from the query string. With no dates given
// the report covers the current month, as the report page does.
func reportFilter(r *http.Request) (report.Filter, error) {
	f, err := filterFromQuery(r)
	if err != nil {
		return f, err
	}
	q := r.URL.Query()
	if !q.Has("startDate") && !q.Has("endDate") {
		def := report.DefaultRange(time.Now())
		f.StartDate, f.EndDate = def.StartDate, def.EndDate
	}
	return f, nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	f, err := reportFilter(r)
	if err != nil {
		s.writeError(w, "report", err)
		return
	}
	rep, err := s.service.Report(r.Context(), f)
	if err != nil {
		s.writeError(w, "report", err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	f, err := reportFilter(r)
	if err != nil {
		s.writeError(w, "export report", err)
		return
	}
	// Render fully before writing so a storage failure still gets a
	// proper status code.
	var buf bytes.Buffer
	if err := s.service.WriteReportCSV(r.Context(), f, &buf); err != nil {
		s.writeError(w, "export report", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName(f, "csv")+`"`)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("write csv failed", "error", err)
	}
}

type archiveResponse struct {
	Key string `json:"key"`
}

func (s *Server) handleArchiveReport(w http.ResponseWriter, r *http.Request) {
	f, err := reportFilter(r)
	if err != nil {
		s.writeError(w, "archive report", err)
		return
	}
	key, err := s.service.ExportReport(r.Context(), f)
	if err != nil {
		s.writeError(w, "archive report", err)
		return
	}
	writeJSON(w, http.StatusCreated, archiveResponse{Key: key})
}

func (s *Server) handleListArchive(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.ListArchivedReports(r.Context())
	if err != nil {
		s.writeError(w, "list archive", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetArchived(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	rc, contentType, err := s.service.OpenArchivedReport(r.Context(), key)
	if err != nil {
		s.writeError(w, "get archived report", err)
		return
	}
	defer closeWithLog(rc, "archived report", s.logger)

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error("write archived report failed", "key", key, "error", err)
	}
}

func (s *Server) handleDeleteArchived(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteArchivedReport(r.Context(), r.PathValue("key")); err != nil {
		s.writeError(w, "delete archived report", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
