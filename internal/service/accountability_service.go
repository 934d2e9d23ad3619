package service

import (
	"context"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/SyntaxStrategist/genuity-ai/internal/repository"
	"github.com/google/uuid"
)

// effectivenessBaselineMood is the fixed predicted-mood baseline reports are
// scored against, rather than the original forecast's value.
const effectivenessBaselineMood = 2.5

// AccountabilityService tracks whether intervention plans were followed and
// derives effectiveness reports from completed follow-ups. A check moves from
// scheduled to completed exactly once; there is no re-opening and no partial
// update.
type AccountabilityService interface {
	List(ctx context.Context, userID uuid.UUID, pendingOnly bool) ([]domain.AccountabilityCheck, error)
	// SubmitFollowUp records the per-step completions and the actual mood,
	// completes the check, and appends an effectiveness report.
	SubmitFollowUp(ctx context.Context, userID, checkID uuid.UUID, req *domain.FollowUpRequest) (*domain.AccountabilityCheck, error)
	ListReports(ctx context.Context, userID uuid.UUID) ([]domain.EffectivenessReportResponse, error)
}

type accountabilityService struct {
	checkRepo  repository.AccountabilityRepository
	reportRepo repository.EffectivenessRepository
	userRepo   repository.UserRepository
}

// NewAccountabilityService creates a new AccountabilityService.
func NewAccountabilityService(
	checkRepo repository.AccountabilityRepository,
	reportRepo repository.EffectivenessRepository,
	userRepo repository.UserRepository,
) AccountabilityService {
	return &accountabilityService{
		checkRepo:  checkRepo,
		reportRepo: reportRepo,
		userRepo:   userRepo,
	}
}

func (s *accountabilityService) List(ctx context.Context, userID uuid.UUID, pendingOnly bool) ([]domain.AccountabilityCheck, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	return s.checkRepo.ListByUser(ctx, userID, pendingOnly)
}

func (s *accountabilityService) SubmitFollowUp(ctx context.Context, userID, checkID uuid.UUID, req *domain.FollowUpRequest) (*domain.AccountabilityCheck, error) {
	check, err := s.checkRepo.GetByID(ctx, checkID)
	if err != nil {
		return nil, err
	}

	// Verify ownership
	if check.UserID != userID {
		return nil, domain.ErrNotFound
	}

	if check.Completed {
		return nil, domain.ErrCheckCompleted
	}

	completions, err := matchCompletions(check.FollowThrough, req.StepCompletions)
	if err != nil {
		return nil, err
	}

	actualMood := domain.ClampMoodScore(req.ActualMood)

	check.FollowThrough = completions
	check.Completed = true
	check.ActualMood = &actualMood

	if err := s.checkRepo.Update(ctx, check); err != nil {
		return nil, err
	}

	report := buildEffectivenessReport(check, actualMood)
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return check, nil
}

func (s *accountabilityService) ListReports(ctx context.Context, userID uuid.UUID) ([]domain.EffectivenessReportResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	reports, err := s.reportRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.EffectivenessReportResponse, len(reports))
	for i := range reports {
		responses[i] = reports[i].ToResponse()
	}
	return responses, nil
}

// matchCompletions pairs the submitted completions with the seeded list 1:1
// by step ID, preserving the plan's step order. A length mismatch, unknown
// step ID, or duplicate submission for the same step is a caller contract
// violation.
func matchCompletions(seeded []domain.StepCompletion, submitted []domain.StepCompletionInput) ([]domain.StepCompletion, error) {
	if len(submitted) != len(seeded) {
		return nil, domain.ErrStepMismatch
	}

	byStep := make(map[uuid.UUID]domain.StepCompletionInput, len(submitted))
	for _, input := range submitted {
		if _, dup := byStep[input.StepID]; dup {
			return nil, domain.ErrStepMismatch
		}
		byStep[input.StepID] = input
	}

	result := make([]domain.StepCompletion, len(seeded))
	for i, completion := range seeded {
		input, ok := byStep[completion.StepID]
		if !ok {
			return nil, domain.ErrStepMismatch
		}
		result[i] = domain.StepCompletion{
			StepID:    completion.StepID,
			Completed: input.Completed,
			Notes:     input.Notes,
		}
	}

	return result, nil
}

func buildEffectivenessReport(check *domain.AccountabilityCheck, actualMood int) *domain.EffectivenessReport {
	stepsCompleted := 0
	for _, completion := range check.FollowThrough {
		if completion.Completed {
			stepsCompleted++
		}
	}

	return &domain.EffectivenessReport{
		ID:               uuid.New(),
		UserID:           check.UserID,
		Date:             check.ScheduledDate,
		PredictedMood:    effectivenessBaselineMood,
		ActualMood:       float64(actualMood),
		InterventionUsed: stepsCompleted > 0,
		StepsCompleted:   stepsCompleted,
		TotalSteps:       len(check.FollowThrough),
	}
}
