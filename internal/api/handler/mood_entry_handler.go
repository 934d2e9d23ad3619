package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SyntaxStrategist/genuity-ai/internal/api/validation"
	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/SyntaxStrategist/genuity-ai/internal/service"
	"github.com/SyntaxStrategist/genuity-ai/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type MoodEntryHandler struct {
	service service.MoodEntryService
}

func NewMoodEntryHandler(service service.MoodEntryService) *MoodEntryHandler {
	return &MoodEntryHandler{service: service}
}

// Create handles POST /v1/users/{userId}/entries
// @Summary Log a mood check-in
// @Description Record a mood entry. Use client_request_id for safe retries (idempotency). Returns 200 if duplicate request, 201 if new.
// @Tags mood-entries
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.CreateMoodEntryRequest true "Mood check-in data"
// @Success 201 {object} domain.MoodEntry "New mood entry created"
// @Success 200 {object} domain.MoodEntry "Existing entry returned (idempotent duplicate)"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/entries [post]
func (h *MoodEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.CreateMoodEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	entry, isExisting, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to create mood entry").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if isExisting {
		w.WriteHeader(http.StatusOK) // Return 200 for idempotent duplicate
	} else {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(entry)
}

// List handles GET /v1/users/{userId}/entries
// @Summary List mood entries
// @Description Fetch paginated mood history. Filter by date range. Results sorted by timestamp descending (newest first).
// @Tags mood-entries
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of date range (RFC3339, UTC recommended for consistent filtering)" format(date-time) example(2024-01-01T00:00:00Z)
// @Param to query string false "End of date range (RFC3339, UTC recommended for consistent filtering)" format(date-time) example(2024-01-31T23:59:59Z)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's nextCursor"
// @Success 200 {object} domain.MoodEntryListResponse "Mood entries with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/entries [get]
func (h *MoodEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseListFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list mood entries").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Delete handles DELETE /v1/users/{userId}/entries/{entryId}
// @Summary Delete a mood entry
// @Description Remove a mood entry from the user's history.
// @Tags mood-entries
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param entryId path string true "Entry UUID" format(uuid)
// @Success 204 "Entry deleted"
// @Failure 400 {object} problem.Problem "Invalid ID format"
// @Failure 404 {object} problem.Problem "Entry not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/entries/{entryId} [delete]
func (h *MoodEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entryId"))
	if err != nil {
		problem.BadRequest("Invalid entry ID format").Write(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, entryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Mood entry not found").Write(w)
			return
		}
		problem.InternalError("Failed to delete mood entry").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateHealth handles PATCH /v1/users/{userId}/entries/{entryId}/health
// @Summary Attach health context to an entry
// @Description Set or update sleep hours, exercise minutes, and step count on an existing mood entry. Only provided fields are changed.
// @Tags mood-entries
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param entryId path string true "Entry UUID" format(uuid)
// @Param request body domain.UpdateHealthContextRequest true "Health context fields"
// @Success 200 {object} domain.MoodEntry "Updated entry"
// @Failure 400 {object} problem.Problem "Invalid request body or no fields provided"
// @Failure 404 {object} problem.Problem "Entry not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/entries/{entryId}/health [patch]
func (h *MoodEntryHandler) UpdateHealth(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entryId"))
	if err != nil {
		problem.BadRequest("Invalid entry ID format").Write(w)
		return
	}

	var req domain.UpdateHealthContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	entry, err := h.service.UpdateHealth(r.Context(), userID, entryID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Mood entry not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("At least one health field must be provided").Write(w)
			return
		}
		problem.InternalError("Failed to update health context").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// Summary handles GET /v1/users/{userId}/mood/summary
// @Summary Get mood summary
// @Description Average mood and trend direction over a recent window of days.
// @Tags mood-entries
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param days query integer false "Window size in days" default(7) minimum(1) maximum(365)
// @Success 200 {object} domain.MoodSummary "Mood summary"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/mood/summary [get]
func (h *MoodEntryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	days := parseIntParam(r, "days", service.DefaultSummaryWindowDays)
	if days < 1 || days > 365 {
		problem.BadRequest("days must be between 1 and 365").Write(w)
		return
	}

	summary, err := h.service.Summary(r.Context(), userID, days)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute mood summary").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

func parseListFilter(r *http.Request) (domain.MoodEntryFilter, []problem.FieldError) {
	var filter domain.MoodEntryFilter
	var fieldErrors []problem.FieldError

	// Parse 'from' parameter
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "from",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.From = &from
		}
	}

	// Parse 'to' parameter
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "to",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.To = &to
		}
	}

	// Parse 'limit' parameter
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	// Parse 'cursor' parameter
	filter.Cursor = r.URL.Query().Get("cursor")

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}

	return filter, nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultValue int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
