package service

import (
	"context"
	"time"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/SyntaxStrategist/genuity-ai/internal/repository"
	"github.com/SyntaxStrategist/genuity-ai/pkg/pagination"
	"github.com/google/uuid"
)

const (
	// DefaultSummaryWindowDays is the default window for the mood summary.
	DefaultSummaryWindowDays = 7

	// trendThreshold: the half-over-half average must move by more than
	// this to count as improving or declining.
	trendThreshold = 0.5
)

type MoodEntryService interface {
	// Create logs a mood check-in.
	// Returns (entry, isExisting, error) - isExisting is true when an
	// existing entry is returned due to client_request_id idempotency.
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMoodEntryRequest) (*domain.MoodEntry, bool, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.MoodEntryFilter) (*domain.MoodEntryListResponse, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
	// UpdateHealth attaches sleep/exercise/step context to an entry.
	UpdateHealth(ctx context.Context, userID, entryID uuid.UUID, req *domain.UpdateHealthContextRequest) (*domain.MoodEntry, error)
	Summary(ctx context.Context, userID uuid.UUID, days int) (*domain.MoodSummary, error)
}

type moodEntryService struct {
	repo     repository.MoodEntryRepository
	userRepo repository.UserRepository
}

func NewMoodEntryService(repo repository.MoodEntryRepository, userRepo repository.UserRepository) MoodEntryService {
	return &moodEntryService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *moodEntryService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMoodEntryRequest) (*domain.MoodEntry, bool, error) {
	// Load user to confirm existence and get their home timezone
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, err
	}

	localTZ := user.EntryTimezone(req.LocalTimezone)

	loggedAt := time.Now().UTC()
	if req.Timestamp != nil {
		loggedAt = req.Timestamp.UTC()
	}

	// Check for idempotency (duplicate client_request_id)
	if req.ClientRequestID != nil && *req.ClientRequestID != "" {
		existing, err := s.repo.GetByClientRequestID(ctx, userID, *req.ClientRequestID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil // Return existing entry
		}
	}

	entry := &domain.MoodEntry{
		UserID:          userID,
		LoggedAt:        loggedAt,
		MoodScore:       domain.ClampMoodScore(req.MoodScore),
		Notes:           req.Notes,
		Activities:      dedupeActivities(req.Activities),
		SleepHours:      req.SleepHours,
		ExerciseMinutes: req.ExerciseMinutes,
		StepCount:       req.StepCount,
		LocalTimezone:   localTZ,
		ClientRequestID: req.ClientRequestID,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, false, err
	}

	return entry, false, nil
}

func (s *moodEntryService) List(ctx context.Context, userID uuid.UUID, filter domain.MoodEntryFilter) (*domain.MoodEntryListResponse, error) {
	// Check if user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	entries, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(entries) > limit

	// Trim to actual limit
	if hasMore {
		entries = entries[:limit]
	}

	response := &domain.MoodEntryListResponse{
		Data: entries,
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	// Set next cursor if there are more results
	if hasMore && len(entries) > 0 {
		lastEntry := entries[len(entries)-1]
		cursor := &pagination.Cursor{
			ID:       lastEntry.ID,
			LoggedAt: lastEntry.LoggedAt,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}

func (s *moodEntryService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}

	// Verify ownership
	if entry.UserID != userID {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, entryID)
}

func (s *moodEntryService) UpdateHealth(ctx context.Context, userID, entryID uuid.UUID, req *domain.UpdateHealthContextRequest) (*domain.MoodEntry, error) {
	if req.SleepHours == nil && req.ExerciseMinutes == nil && req.StepCount == nil {
		return nil, domain.ErrInvalidInput
	}

	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	// Verify ownership
	if entry.UserID != userID {
		return nil, domain.ErrNotFound
	}

	// Apply updates; fields left nil keep their current value
	if req.SleepHours != nil {
		entry.SleepHours = req.SleepHours
	}
	if req.ExerciseMinutes != nil {
		entry.ExerciseMinutes = req.ExerciseMinutes
	}
	if req.StepCount != nil {
		entry.StepCount = req.StepCount
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *moodEntryService) Summary(ctx context.Context, userID uuid.UUID, days int) (*domain.MoodSummary, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if days <= 0 {
		days = DefaultSummaryWindowDays
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	entries, err := s.repo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	return &domain.MoodSummary{
		WindowDays:  days,
		EntryCount:  len(entries),
		AverageMood: meanMood(entries),
		Trend:       moodTrend(entries),
	}, nil
}

// moodTrend compares the first and second half of the window (entries arrive
// newest first) and flags moves larger than half a mood point.
func moodTrend(entries []domain.MoodEntry) domain.MoodTrend {
	if len(entries) < 2 {
		return domain.TrendStable
	}

	// Oldest first for the half-over-half comparison
	ordered := make([]domain.MoodEntry, len(entries))
	for i, entry := range entries {
		ordered[len(entries)-1-i] = entry
	}

	halfCount := len(ordered) / 2
	firstAvg := meanMood(ordered[:halfCount])
	secondAvg := meanMood(ordered[len(ordered)-halfCount:])

	switch {
	case secondAvg > firstAvg+trendThreshold:
		return domain.TrendImproving
	case secondAvg < firstAvg-trendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// dedupeActivities drops repeated tags while preserving first-seen order.
func dedupeActivities(activities []string) []string {
	if len(activities) == 0 {
		return activities
	}

	seen := make(map[string]struct{}, len(activities))
	result := make([]string, 0, len(activities))
	for _, activity := range activities {
		if _, ok := seen[activity]; ok {
			continue
		}
		seen[activity] = struct{}{}
		result = append(result, activity)
	}
	return result
}
