package web

import (
	"net/http"

	"github.com/vbonduro/fieldlog/internal/report"
	"github.com/vbonduro/fieldlog/internal/service"
)

// handleListRecords lists every record, or the filtered subset when any of
// startDate, endDate or categoryId is given.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		s.writeError(w, "list records", err)
		return
	}
	if f.IsZero() {
		records, err := s.service.ListRecords(r.Context())
		if err != nil {
			s.writeError(w, "list records", err)
			return
		}
		writeJSON(w, http.StatusOK, records)
		return
	}

	rep, err := s.service.Report(r.Context(), f)
	if err != nil {
		s.writeError(w, "list records", err)
		return
	}
	writeJSON(w, http.StatusOK, rep.Records)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var in service.RecordInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, "create record", err)
		return
	}
	rec, err := s.service.CreateRecord(r.Context(), in)
	if err != nil {
		s.writeError(w, "create record", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.service.GetRecord(r.Context(), pathID(r))
	if err != nil {
		s.writeError(w, "get record", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteRecord(r.Context(), pathID(r)); err != nil {
		s.writeError(w, "delete record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (report.Filter, error) {
	q := r.URL.Query()
	return report.ParseFilter(q.Get("startDate"), q.Get("endDate"), q.Get("categoryId"))
}
