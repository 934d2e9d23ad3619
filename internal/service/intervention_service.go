package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/SyntaxStrategist/genuity-ai/internal/llm"
)

const (
	// llmTimeout bounds the AI step-generation call. Any failure inside the
	// window degrades to the template plan.
	llmTimeout = 30 * time.Second

	// positiveActivityThreshold selects which activity patterns qualify as
	// "what helps this user" for the morning step.
	positiveActivityThreshold = 0.5

	// defaultPredictedImprovement is used when no positive activity pattern
	// exists to anchor the estimate.
	defaultPredictedImprovement = 1.0

	tonightReminderHour   = 21
	tonightReminderMinute = 30
	morningReminderHour   = 7
)

// InterventionService builds a plan of timed steps to counteract a predicted
// mood dip. The template path is deterministic and always available; the AI
// path replaces the step list when the generation call succeeds and yields at
// least one well-formed step.
type InterventionService interface {
	Plan(ctx context.Context, prediction *domain.MoodPrediction, patterns []domain.DetectedPattern) domain.InterventionPlan
}

type interventionService struct {
	llmClient llm.InterventionLLM
	now       func() time.Time
}

// NewInterventionService creates a new InterventionService. A nil LLM client
// pins the service to the template path.
func NewInterventionService(llmClient llm.InterventionLLM) InterventionService {
	return &interventionService{
		llmClient: llmClient,
		now:       time.Now,
	}
}

func (s *interventionService) Plan(ctx context.Context, prediction *domain.MoodPrediction, patterns []domain.DetectedPattern) domain.InterventionPlan {
	plan := BuildTemplatePlan(s.now(), patterns)

	if s.llmClient == nil {
		return plan
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	response, err := s.llmClient.GenerateInterventionSteps(ctx, prediction, patterns)
	if err != nil {
		log.Printf("AI intervention generation failed, using template: %v", err)
		return plan
	}

	steps := ParseInterventionSteps(response)
	if len(steps) == 0 {
		log.Printf("AI intervention response had no usable steps, using template")
		return plan
	}

	// The predicted improvement intentionally stays at the template
	// calculation even when the AI steps are adopted.
	plan.Steps = steps
	plan.GeneratedBy = domain.GeneratedByAI
	return plan
}

// BuildTemplatePlan produces the deterministic three-step fallback plan:
// sleep preparation tonight, the user's best positive activity (or a walk)
// tomorrow morning, and breaks during the day.
func BuildTemplatePlan(now time.Time, patterns []domain.DetectedPattern) domain.InterventionPlan {
	positiveActivities := positiveActivityPatterns(patterns)

	steps := make([]domain.InterventionStep, 0, 3)

	tonight := reminderAt(now, 0, tonightReminderHour, tonightReminderMinute)
	steps = append(steps, domain.NewInterventionStep(
		"Tonight",
		"Go to bed early to get 8+ hours of sleep",
		"Good sleep is the foundation for better mood",
		&tonight,
	))

	tomorrowMorning := reminderAt(now, 1, morningReminderHour, 0)
	if len(positiveActivities) > 0 {
		best := positiveActivities[0]
		steps = append(steps, domain.NewInterventionStep(
			"Tomorrow morning",
			fmt.Sprintf("Try %s before starting your day", strings.ToLower(best.Trigger)),
			fmt.Sprintf("%s boosts your mood by %.1f points", best.Trigger, best.Impact),
			&tomorrowMorning,
		))
	} else {
		steps = append(steps, domain.NewInterventionStep(
			"Tomorrow morning",
			"Take a 10-minute walk or do light exercise",
			"Physical activity typically improves mood",
			&tomorrowMorning,
		))
	}

	steps = append(steps, domain.NewInterventionStep(
		"During the day",
		"Take 5-minute breaks between tasks",
		"Prevents mood crashes during stressful periods",
		nil,
	))

	predictedImprovement := defaultPredictedImprovement
	if len(positiveActivities) > 0 {
		predictedImprovement = positiveActivities[0].Impact
	}

	return domain.InterventionPlan{
		Steps:                steps,
		PredictedImprovement: predictedImprovement,
		GeneratedBy:          domain.GeneratedByTemplate,
		CreatedAt:            now,
	}
}

// ParseInterventionSteps extracts steps from a pipe-delimited AI response.
// Lines that do not split into exactly timing|action|reason are discarded.
func ParseInterventionSteps(response string) []domain.InterventionStep {
	var steps []domain.InterventionStep

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}

		timing := strings.TrimSpace(parts[0])
		action := strings.TrimSpace(parts[1])
		reason := strings.TrimSpace(parts[2])
		if timing == "" || action == "" {
			continue
		}

		steps = append(steps, domain.NewInterventionStep(timing, action, reason, nil))
	}

	return steps
}

// positiveActivityPatterns returns activity patterns with impact above the
// positive threshold, strongest first.
func positiveActivityPatterns(patterns []domain.DetectedPattern) []domain.DetectedPattern {
	var positive []domain.DetectedPattern
	for _, pattern := range patterns {
		if pattern.Type == domain.PatternActivity && pattern.Impact > positiveActivityThreshold {
			positive = append(positive, pattern)
		}
	}
	sort.Slice(positive, func(i, j int) bool {
		return positive[i].Impact > positive[j].Impact
	})
	return positive
}

func reminderAt(now time.Time, daysAhead, hour, minute int) time.Time {
	day := now.AddDate(0, 0, daysAhead)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
