package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/google/uuid"
)

func fixedNow() time.Time {
	return time.Date(2024, 1, 21, 15, 0, 0, 0, time.UTC)
}

func activityPattern(trigger string, impact float64) domain.DetectedPattern {
	return domain.NewDetectedPattern(domain.PatternActivity, trigger, impact, 0.8, 6, "")
}

func lowMoodPrediction() *domain.MoodPrediction {
	return domain.NewMoodPrediction(uuid.New(), time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), 2.2, nil)
}

func TestBuildTemplatePlan_NoPatterns(t *testing.T) {
	plan := BuildTemplatePlan(fixedNow(), nil)

	if len(plan.Steps) != 3 {
		t.Fatalf("got %d steps, want 3", len(plan.Steps))
	}
	if plan.GeneratedBy != domain.GeneratedByTemplate {
		t.Errorf("GeneratedBy = %q, want Template", plan.GeneratedBy)
	}
	if !almostEqual(plan.PredictedImprovement, 1.0) {
		t.Errorf("PredictedImprovement = %v, want 1.0", plan.PredictedImprovement)
	}

	timings := []string{"Tonight", "Tomorrow morning", "During the day"}
	for i, want := range timings {
		if plan.Steps[i].Timing != want {
			t.Errorf("Steps[%d].Timing = %q, want %q", i, plan.Steps[i].Timing, want)
		}
	}

	if plan.Steps[1].Action != "Take a 10-minute walk or do light exercise" {
		t.Errorf("fallback morning action = %q", plan.Steps[1].Action)
	}

	wantTonight := time.Date(2024, 1, 21, 21, 30, 0, 0, time.UTC)
	if plan.Steps[0].ReminderTime == nil || !plan.Steps[0].ReminderTime.Equal(wantTonight) {
		t.Errorf("tonight reminder = %v, want %v", plan.Steps[0].ReminderTime, wantTonight)
	}
	wantMorning := time.Date(2024, 1, 22, 7, 0, 0, 0, time.UTC)
	if plan.Steps[1].ReminderTime == nil || !plan.Steps[1].ReminderTime.Equal(wantMorning) {
		t.Errorf("morning reminder = %v, want %v", plan.Steps[1].ReminderTime, wantMorning)
	}
	if plan.Steps[2].ReminderTime != nil {
		t.Errorf("day step reminder = %v, want nil", plan.Steps[2].ReminderTime)
	}
}

func TestBuildTemplatePlan_UsesBestPositiveActivity(t *testing.T) {
	patterns := []domain.DetectedPattern{
		activityPattern("Social", 0.8),
		activityPattern("Running", 1.2),
		activityPattern("Doomscrolling", -1.5),
		activityPattern("Stretching", 0.4), // below the positive threshold
	}

	plan := BuildTemplatePlan(fixedNow(), patterns)

	if plan.Steps[1].Action != "Try running before starting your day" {
		t.Errorf("morning action = %q, want running suggestion", plan.Steps[1].Action)
	}
	if plan.Steps[1].Reason != "Running boosts your mood by 1.2 points" {
		t.Errorf("morning reason = %q", plan.Steps[1].Reason)
	}
	if !almostEqual(plan.PredictedImprovement, 1.2) {
		t.Errorf("PredictedImprovement = %v, want 1.2", plan.PredictedImprovement)
	}
}

func TestParseInterventionSteps(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
	}{
		{
			name:     "three well-formed lines",
			response: "Tonight|Sleep by 22:00|Rest is key\nMorning|Walk 10 minutes|Starts the day well\nAfternoon|Take a break|Prevents crashes",
			want:     3,
		},
		{
			name:     "malformed lines are skipped",
			response: "Tonight|Sleep by 22:00|Rest is key\nnot a step\nMorning|Walk",
			want:     1,
		},
		{
			name:     "empty response",
			response: "",
			want:     0,
		},
		{
			name:     "blank lines ignored",
			response: "\n\nTonight|Sleep early|Rest\n\n",
			want:     1,
		},
		{
			name:     "missing action is discarded",
			response: "Tonight||Rest",
			want:     0,
		},
		{
			name:     "too many fields is discarded",
			response: "Tonight|Sleep|Rest|Extra",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := ParseInterventionSteps(tt.response)
			if len(steps) != tt.want {
				t.Errorf("got %d steps, want %d", len(steps), tt.want)
			}
		})
	}
}

func TestParseInterventionSteps_TrimsFields(t *testing.T) {
	steps := ParseInterventionSteps("  Tonight  |  Sleep early  |  Rest matters  ")
	if len(steps) != 1 {
		t.Fatalf("got %d steps, want 1", len(steps))
	}
	if steps[0].Timing != "Tonight" || steps[0].Action != "Sleep early" || steps[0].Reason != "Rest matters" {
		t.Errorf("fields not trimmed: %+v", steps[0])
	}
}

func TestPlan_NilClientUsesTemplate(t *testing.T) {
	svc := &interventionService{llmClient: nil, now: fixedNow}

	plan := svc.Plan(context.Background(), lowMoodPrediction(), nil)
	if plan.GeneratedBy != domain.GeneratedByTemplate {
		t.Errorf("GeneratedBy = %q, want Template", plan.GeneratedBy)
	}
	if len(plan.Steps) != 3 {
		t.Errorf("got %d steps, want 3", len(plan.Steps))
	}
}

func TestPlan_AIStepsAdopted(t *testing.T) {
	mock := &MockInterventionLLM{
		response: "Tonight|Wind down by 21:00|Earlier sleep lifts tomorrow's mood\nMorning|Call a friend|Social contact helps you",
	}
	svc := &interventionService{llmClient: mock, now: fixedNow}

	plan := svc.Plan(context.Background(), lowMoodPrediction(), nil)
	if plan.GeneratedBy != domain.GeneratedByAI {
		t.Errorf("GeneratedBy = %q, want AI", plan.GeneratedBy)
	}
	if len(plan.Steps) != 2 {
		t.Errorf("got %d steps, want 2", len(plan.Steps))
	}
	if mock.calls != 1 {
		t.Errorf("LLM called %d times, want 1", mock.calls)
	}
}

func TestPlan_PartiallyMalformedResponseKeepsGoodSteps(t *testing.T) {
	mock := &MockInterventionLLM{
		response: "Tonight|Wind down|Rest\ngarbage line\nMorning|Walk|Mood boost",
	}
	svc := &interventionService{llmClient: mock, now: fixedNow}

	plan := svc.Plan(context.Background(), lowMoodPrediction(), nil)
	if plan.GeneratedBy != domain.GeneratedByAI {
		t.Errorf("GeneratedBy = %q, want AI", plan.GeneratedBy)
	}
	if len(plan.Steps) != 2 {
		t.Errorf("got %d steps, want 2", len(plan.Steps))
	}
}

func TestPlan_LLMErrorFallsBackToTemplate(t *testing.T) {
	mock := &MockInterventionLLM{err: errors.New("rate limited")}
	svc := &interventionService{llmClient: mock, now: fixedNow}

	plan := svc.Plan(context.Background(), lowMoodPrediction(), nil)
	if plan.GeneratedBy != domain.GeneratedByTemplate {
		t.Errorf("GeneratedBy = %q, want Template", plan.GeneratedBy)
	}
	if len(plan.Steps) != 3 {
		t.Errorf("got %d steps, want 3", len(plan.Steps))
	}
}

func TestPlan_UnusableResponseFallsBackToTemplate(t *testing.T) {
	mock := &MockInterventionLLM{response: "I cannot help with that."}
	svc := &interventionService{llmClient: mock, now: fixedNow}

	plan := svc.Plan(context.Background(), lowMoodPrediction(), nil)
	if plan.GeneratedBy != domain.GeneratedByTemplate {
		t.Errorf("GeneratedBy = %q, want Template", plan.GeneratedBy)
	}
}

func TestPlan_AIPredictedImprovementUnchanged(t *testing.T) {
	// The improvement estimate is anchored to the template's best positive
	// activity and is not recomputed when AI steps replace the template.
	patterns := []domain.DetectedPattern{activityPattern("Running", 1.5)}
	mock := &MockInterventionLLM{response: "Tonight|Wind down|Rest"}
	svc := &interventionService{llmClient: mock, now: fixedNow}

	plan := svc.Plan(context.Background(), lowMoodPrediction(), patterns)
	if plan.GeneratedBy != domain.GeneratedByAI {
		t.Fatalf("GeneratedBy = %q, want AI", plan.GeneratedBy)
	}
	if !almostEqual(plan.PredictedImprovement, 1.5) {
		t.Errorf("PredictedImprovement = %v, want 1.5", plan.PredictedImprovement)
	}
}
