package web

import (
	"net/http"

	"github.com/vbonduro/fieldlog/internal/domain"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.service.ListCategories(r.Context())
	if err != nil {
		s.writeError(w, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// handleSaveCategory creates a category, or replaces one when the body
// carries an existing id.
func (s *Server) handleSaveCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.ServiceCategory
	if err := decodeJSON(w, r, &c); err != nil {
		s.writeError(w, "save category", err)
		return
	}
	saved, err := s.service.CreateCategory(r.Context(), c)
	if err != nil {
		s.writeError(w, "save category", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteCategory(r.Context(), pathID(r)); err != nil {
		s.writeError(w, "delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type impactResponse struct {
	CategoryID domain.ID `json:"categoryId"`
	Records    int       `json:"records"`
}

func (s *Server) handleCategoryImpact(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	n, err := s.service.DeletionImpact(r.Context(), id)
	if err != nil {
		s.writeError(w, "category impact", err)
		return
	}
	writeJSON(w, http.StatusOK, impactResponse{CategoryID: id, Records: n})
}

// handleReferenceCounts returns the referencing-record count of every
// category, keyed by category id.
func (s *Server) handleReferenceCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.service.ReferenceCounts(r.Context())
	if err != nil {
		s.writeError(w, "reference counts", err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleCategoryRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListRecordsByCategory(r.Context(), pathID(r))
	if err != nil {
		s.writeError(w, "list category records", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleListCrews(w http.ResponseWriter, r *http.Request) {
	crews, err := s.service.ListCrews(r.Context())
	if err != nil {
		s.writeError(w, "list crews", err)
		return
	}
	writeJSON(w, http.StatusOK, crews)
}

func (s *Server) handleSaveCrew(w http.ResponseWriter, r *http.Request) {
	var c domain.Crew
	if err := decodeJSON(w, r, &c); err != nil {
		s.writeError(w, "save crew", err)
		return
	}
	saved, err := s.service.SaveCrew(r.Context(), c)
	if err != nil {
		s.writeError(w, "save crew", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteCrew(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteCrew(r.Context(), pathID(r)); err != nil {
		s.writeError(w, "delete crew", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type crewImpactResponse struct {
	CrewID  domain.ID `json:"crewId"`
	Records int       `json:"records"`
}

func (s *Server) handleCrewImpact(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	n, err := s.service.CrewImpact(r.Context(), id)
	if err != nil {
		s.writeError(w, "crew impact", err)
		return
	}
	writeJSON(w, http.StatusOK, crewImpactResponse{CrewID: id, Records: n})
}

func pathID(r *http.Request) domain.ID {
	return domain.ID(r.PathValue("id"))
}
