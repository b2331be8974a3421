package handler

import (
	"net/http"

	"codetrail/internal/common"
	"codetrail/internal/domain/curriculum"

	"github.com/go-chi/chi/v5"
)

// AssignmentHandler serves public exercise content straight from the catalog.
type AssignmentHandler struct {
	catalog curriculum.Catalog
}

func NewAssignmentHandler(catalog curriculum.Catalog) *AssignmentHandler {
	return &AssignmentHandler{catalog: catalog}
}

func (h *AssignmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/demo", h.getDemo)             // GET /assignments/demo
	r.Get("/{track}/{slug}", h.getByPath) // GET /assignments/ruby/one
}

func (h *AssignmentHandler) getByPath(w http.ResponseWriter, r *http.Request) {
	track := chi.URLParam(r, "track")
	slug := chi.URLParam(r, "slug")

	if !h.catalog.TrackExists(track) {
		common.RespondWithError(w, http.StatusBadRequest, common.ErrUnknownTrack.Error())
		return
	}
	assignment, ok := h.catalog.Assignment(track, slug)
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, common.ErrUnknownExercise.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) getDemo(w http.ResponseWriter, r *http.Request) {
	demo := h.catalog.Demo()
	if demo == nil {
		common.RespondWithError(w, http.StatusInternalServerError, "demo assignment is not configured")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, demo)
}
