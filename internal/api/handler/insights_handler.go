package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SyntaxStrategist/genuity-ai/internal/api/validation"
	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/SyntaxStrategist/genuity-ai/internal/langfuse"
	"github.com/SyntaxStrategist/genuity-ai/internal/service"
	"github.com/SyntaxStrategist/genuity-ai/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// InsightsHandler handles pattern and prediction endpoints.
type InsightsHandler struct {
	patternService    service.PatternService
	predictionService service.PredictionService
	langfuseClient    langfuse.Client
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(
	patternService service.PatternService,
	predictionService service.PredictionService,
	langfuseClient langfuse.Client,
) *InsightsHandler {
	return &InsightsHandler{
		patternService:    patternService,
		predictionService: predictionService,
		langfuseClient:    langfuseClient,
	}
}

// GetPatterns handles GET /v1/users/{userId}/patterns
// @Summary Get detected mood patterns
// @Description Analyze the user's recent mood history and return detected patterns (day-of-week, sleep, exercise, activity, time-of-day). Empty until at least 7 entries exist.
// @Tags insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param days query integer false "Number of days to analyze" default(30) minimum(1) maximum(365)
// @Success 200 {object} domain.PatternListResponse "Detected patterns"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/patterns [get]
func (h *InsightsHandler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	days := parseIntParam(r, "days", service.DefaultPatternWindowDays)
	if days < 1 || days > 365 {
		problem.BadRequest("days must be between 1 and 365").Write(w)
		return
	}

	result, err := h.patternService.Detect(r.Context(), userID, days)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to detect patterns").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// CreatePrediction handles POST /v1/users/{userId}/predictions
// @Summary Generate a mood forecast
// @Description Forecast the user's mood for a target date. When the forecast is positive with no risk factors, no prediction is stored and 204 is returned. Otherwise the prediction is persisted together with an intervention plan and a scheduled follow-up check.
// @Tags insights
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.PredictionRequest true "Target date"
// @Success 200 {object} domain.MoodPrediction "Prediction with intervention plan"
// @Success 204 "Nothing to report (good mood predicted or not enough history)"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/predictions [post]
func (h *InsightsHandler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	prediction, err := h.predictionService.Generate(r.Context(), userID, req.TargetDate)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to generate prediction").Write(w)
		return
	}

	if prediction == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prediction)
}

// ListPredictions handles GET /v1/users/{userId}/predictions
// @Summary List stored predictions
// @Description Fetch the user's stored mood predictions, newest target date first.
// @Tags insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {array} domain.MoodPrediction "Stored predictions"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/predictions [get]
func (h *InsightsHandler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	predictions, err := h.predictionService.List(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list predictions").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(predictions)
}

// PlanFeedbackRequest is the request body for intervention plan feedback.
// @Description Request body for submitting feedback on an intervention plan.
type PlanFeedbackRequest struct {
	// Prediction ID the plan belongs to
	PredictionID string `json:"predictionId" validate:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Rating score (1-5)
	Score int `json:"score" validate:"required,min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Optional comment
	Comment string `json:"comment,omitempty" validate:"omitempty,max=2000" example:"The morning walk suggestion really worked."`
}

// PostPlanFeedback handles POST /v1/users/{userId}/plans/feedback
// @Summary Submit feedback on an intervention plan
// @Description Submit a user rating and optional comment for a generated intervention plan. The score is forwarded to Langfuse for prompt quality tracking.
// @Tags insights
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param body body PlanFeedbackRequest true "Feedback request"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/plans/feedback [post]
func (h *InsightsHandler) PostPlanFeedback(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req PlanFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid request body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	// Record the rating in Langfuse (errors are logged but don't fail the request)
	_, _ = h.langfuseClient.CreateTrace(r.Context(), langfuse.TraceInput{
		ID:     req.PredictionID,
		UserID: userID.String(),
		Name:   "intervention-plan-feedback",
	})
	_ = h.langfuseClient.CreateScore(r.Context(), langfuse.ScoreInput{
		TraceID: req.PredictionID,
		Name:    "plan_rating",
		Value:   float64(req.Score),
		Comment: req.Comment,
	})

	w.WriteHeader(http.StatusNoContent)
}
