package service

import (
	"context"
	"fmt"
	"time"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/SyntaxStrategist/genuity-ai/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// riskFactorThreshold: a matching day-of-week impact more negative than this
// becomes a named risk factor on the forecast.
const riskFactorThreshold = -0.5

// followUpHour is the local hour of the target date at which the
// accountability follow-up is scheduled.
const followUpHour = 20

// PredictionService forecasts a target date's mood from the entry history,
// attaches an intervention plan, and schedules the follow-up check.
type PredictionService interface {
	// Generate returns the persisted forecast, or nil when the history is
	// too short or the forecast has no bad news to report.
	Generate(ctx context.Context, userID uuid.UUID, targetDate time.Time) (*domain.MoodPrediction, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.MoodPrediction, error)
}

type predictionService struct {
	entryRepo           repository.MoodEntryRepository
	userRepo            repository.UserRepository
	predictionRepo      repository.PredictionRepository
	interventionService InterventionService
	accountabilityRepo  repository.AccountabilityRepository
}

// NewPredictionService creates a new PredictionService.
func NewPredictionService(
	entryRepo repository.MoodEntryRepository,
	userRepo repository.UserRepository,
	predictionRepo repository.PredictionRepository,
	interventionService InterventionService,
	accountabilityRepo repository.AccountabilityRepository,
) PredictionService {
	return &predictionService{
		entryRepo:           entryRepo,
		userRepo:            userRepo,
		predictionRepo:      predictionRepo,
		interventionService: interventionService,
		accountabilityRepo:  accountabilityRepo,
	}
}

func (s *predictionService) Generate(ctx context.Context, userID uuid.UUID, targetDate time.Time) (*domain.MoodPrediction, error) {
	// Validate user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	entries, err := s.entryRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	tracer := otel.Tracer("genuity-ai-api/predictions")
	ctx, span := tracer.Start(ctx, "PredictionService.Generate",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("target.date", targetDate.Format(time.DateOnly)),
			attribute.Int("entries.count", len(entries)),
		),
	)
	defer span.End()

	patterns := DetectPatterns(entries)

	prediction := Predict(userID, targetDate, entries, patterns)
	if prediction == nil {
		span.SetAttributes(attribute.Bool("prediction.suppressed", true))
		return nil, nil
	}

	// The planner never fails: it degrades to the template path internally.
	plan := s.interventionService.Plan(ctx, prediction, patterns)
	prediction.InterventionPlan = &plan

	if err := s.predictionRepo.Create(ctx, prediction); err != nil {
		return nil, err
	}

	// Schedule the follow-up for the evening of the predicted day.
	check := domain.NewAccountabilityCheck(userID, prediction.ID, plan, followUpTime(targetDate))
	if err := s.accountabilityRepo.Create(ctx, check); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("prediction.mood", prediction.PredictedMood),
		attribute.String("prediction.risk", string(prediction.RiskLevel)),
	)

	return prediction, nil
}

func (s *predictionService) List(ctx context.Context, userID uuid.UUID) ([]domain.MoodPrediction, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	return s.predictionRepo.ListByUser(ctx, userID)
}

// Predict combines the overall mood baseline with the target weekday's
// pattern (extension point for other pattern types) to forecast the date's
// mood. Returns nil for short histories, and for forecasts with no risk
// factors and a predicted mood of 3.5 or better: good news is not surfaced.
func Predict(userID uuid.UUID, targetDate time.Time, entries []domain.MoodEntry, patterns []domain.DetectedPattern) *domain.MoodPrediction {
	if len(entries) < MinEntriesForAnalysis {
		return nil
	}

	predictedMood := meanMood(entries)
	var riskFactors []domain.RiskFactor

	dayName := targetDate.Weekday().String()
	for _, pattern := range patterns {
		if pattern.Type != domain.PatternDayOfWeek || pattern.Trigger != dayName {
			continue
		}

		predictedMood += pattern.Impact

		if pattern.Impact < riskFactorThreshold {
			riskFactors = append(riskFactors, domain.NewRiskFactor(
				fmt.Sprintf("%ss are typically challenging for you", dayName),
				pattern.Impact,
				pattern.Confidence,
				fmt.Sprintf("Based on %d past %ss", pattern.SampleSize, dayName),
			))
		}
		break
	}

	// Sleep and other pattern types are not wired into the forecast yet.

	if len(riskFactors) == 0 && predictedMood >= 3.5 {
		return nil
	}

	return domain.NewMoodPrediction(userID, targetDate, predictedMood, riskFactors)
}

// followUpTime places the accountability check at 20:00 on the target date,
// in the target date's location.
func followUpTime(targetDate time.Time) time.Time {
	year, month, day := targetDate.Date()
	return time.Date(year, month, day, followUpHour, 0, 0, 0, targetDate.Location())
}
