package handler

import (
	"encoding/json"
	"net/http"

	"codetrail/internal/app/service"
	"codetrail/internal/common"

	"github.com/go-chi/chi/v5"
)

// ReviewHandler receives evaluation results from the external reviewer.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(rs *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: rs}
}

func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Post("/review", h.handleReviewResult)
}

func (h *ReviewHandler) handleReviewResult(w http.ResponseWriter, r *http.Request) {
	var req service.ReviewResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.reviewService.HandleReviewResult(r.Context(), req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}
