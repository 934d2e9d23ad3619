package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SyntaxStrategist/genuity-ai/internal/api/validation"
	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/SyntaxStrategist/genuity-ai/internal/service"
	"github.com/SyntaxStrategist/genuity-ai/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AccountabilityHandler handles follow-up check and effectiveness endpoints.
type AccountabilityHandler struct {
	service service.AccountabilityService
}

func NewAccountabilityHandler(service service.AccountabilityService) *AccountabilityHandler {
	return &AccountabilityHandler{service: service}
}

// List handles GET /v1/users/{userId}/accountability
// @Summary List accountability checks
// @Description Fetch the user's accountability checks. Pass pending=true to return only checks awaiting follow-up.
// @Tags accountability
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param pending query boolean false "Only return checks awaiting follow-up" default(false)
// @Success 200 {array} domain.AccountabilityCheck "Accountability checks"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/accountability [get]
func (h *AccountabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	pendingOnly := r.URL.Query().Get("pending") == "true"

	checks, err := h.service.List(r.Context(), userID, pendingOnly)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list accountability checks").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(checks)
}

// SubmitFollowUp handles POST /v1/users/{userId}/accountability/{checkId}/follow-up
// @Summary Submit a follow-up check
// @Description Record which intervention steps were completed and the actual mood for the predicted day. Completes the check and appends an effectiveness report. Each check accepts exactly one follow-up.
// @Tags accountability
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param checkId path string true "Check UUID" format(uuid)
// @Param request body domain.FollowUpRequest true "Step completions and actual mood"
// @Success 200 {object} domain.AccountabilityCheck "Completed check"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "Check not found"
// @Failure 409 {object} problem.Problem "Check already completed or step completions do not match the plan"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/accountability/{checkId}/follow-up [post]
func (h *AccountabilityHandler) SubmitFollowUp(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	checkID, err := uuid.Parse(chi.URLParam(r, "checkId"))
	if err != nil {
		problem.BadRequest("Invalid check ID format").Write(w)
		return
	}

	var req domain.FollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	check, err := h.service.SubmitFollowUp(r.Context(), userID, checkID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Accountability check not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrCheckCompleted) {
			problem.Conflict("Follow-up already submitted for this check").Write(w)
			return
		}
		if errors.Is(err, domain.ErrStepMismatch) {
			problem.Conflict("Step completions do not match the intervention plan").Write(w)
			return
		}
		problem.InternalError("Failed to submit follow-up").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(check)
}

// ListReports handles GET /v1/users/{userId}/effectiveness
// @Summary List effectiveness reports
// @Description Fetch reports comparing each prediction against the reported outcome, including accuracy, improvement, and compliance.
// @Tags accountability
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {array} domain.EffectivenessReportResponse "Effectiveness reports"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/effectiveness [get]
func (h *AccountabilityHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	reports, err := h.service.ListReports(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list effectiveness reports").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}
