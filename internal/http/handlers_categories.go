package http

import (
	"log/slog"
	"net/http"

	"zhangben/internal/core"
	"zhangben/internal/log"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListCategories(w, r)
	case http.MethodPost:
		s.handleCreateCategory(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.ledger.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories", "error", err)
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []core.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	category, err := s.ledger.AddCategory(r.Context(), formValue(r, "name"))
	if err != nil {
		slog.WarnContext(r.Context(), "Category rejected", "error", err)
		writeError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "Category created",
		log.FieldComponent, log.ComponentHTTP,
		log.FieldCategoryID, category.ID,
		log.FieldCategory, category.Name)
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, http.MethodDelete) {
		return
	}

	id := formValue(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing id"})
		return
	}

	if err := s.ledger.DeleteCategory(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete category",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldCategoryID, id,
			log.FieldError, err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
