package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apimiddleware "codetrail/internal/api/middleware"
	"codetrail/internal/app/service"
	"codetrail/internal/common"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

// UserAssignmentHandler serves the per-user assignment surface: current and
// completed listings, submission, and unsubmit.
type UserAssignmentHandler struct {
	progressService   *service.ProgressService
	submissionService *service.SubmissionService
	unsubmitService   *service.UnsubmitService
	userRepo          repository.UserRepository
}

func NewUserAssignmentHandler(
	ps *service.ProgressService,
	ss *service.SubmissionService,
	us *service.UnsubmitService,
	userRepo repository.UserRepository,
) *UserAssignmentHandler {
	return &UserAssignmentHandler{
		progressService:   ps,
		submissionService: ss,
		unsubmitService:   us,
		userRepo:          userRepo,
	}
}

func (h *UserAssignmentHandler) RegisterRoutes(r chi.Router) {
	// The old "peek next assignment" endpoint is permanently retired.
	r.Get("/next", h.retiredPeek)

	// Submit and unsubmit carry the key themselves (body or query).
	r.Post("/", h.createSubmission)
	r.Delete("/", h.unsubmit)

	r.Group(func(keyed chi.Router) {
		keyed.Use(apimiddleware.KeyAuthenticator(h.userRepo))
		keyed.Get("/current", h.currentAssignments)
		keyed.Get("/completed", h.completedAssignments)
	})
}

func (h *UserAssignmentHandler) retiredPeek(w http.ResponseWriter, r *http.Request) {
	common.RespondWithError(w, http.StatusGone, common.ErrGone.Error())
}

func (h *UserAssignmentHandler) currentAssignments(w http.ResponseWriter, r *http.Request) {
	user, ok := apimiddleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	current, err := h.progressService.Current(r.Context(), user)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, current)
}

func (h *UserAssignmentHandler) completedAssignments(w http.ResponseWriter, r *http.Request) {
	user, ok := apimiddleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	completed, err := h.progressService.Completed(r.Context(), user)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"assignments": completed})
}

type createSubmissionRequest struct {
	Key  string `json:"key"`
	Code string `json:"code"`
	Path string `json:"path"`
}

func (h *UserAssignmentHandler) createSubmission(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	user, err := h.resolveUser(r, req.Key)
	if err != nil {
		respondKeyError(w, err)
		return
	}

	submission, err := h.submissionService.Submit(r.Context(), user, req.Code, req.Path)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, submissionSummary(submission))
}

type unsubmitRequest struct {
	Key string `json:"key"`
}

func (h *UserAssignmentHandler) unsubmit(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" && r.Body != nil {
		var req unsubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			key = req.Key
		}
	}
	user, err := h.resolveUser(r, key)
	if err != nil {
		respondKeyError(w, err)
		return
	}

	if err := h.unsubmitService.Unsubmit(r.Context(), user); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *UserAssignmentHandler) resolveUser(r *http.Request, key string) (*model.User, error) {
	if key == "" {
		return nil, common.ErrUnauthorized
	}
	return h.userRepo.FindByKey(r.Context(), key)
}

// respondKeyError maps a failed key lookup. Only a missing or unknown key is
// unauthorized; a lookup infrastructure failure keeps its own status.
func respondKeyError(w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrUnauthorized) {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid API key")
		return
	}
	common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
}

func submissionSummary(sub *model.Submission) map[string]interface{} {
	return map[string]interface{}{
		"id":           sub.ID,
		"track":        sub.Track,
		"slug":         sub.Slug,
		"state":        sub.State,
		"submitted_at": sub.CreatedAt,
	}
}
