package domain

import (
	"time"

	"github.com/google/uuid"
)

// StepCompletion records whether one plan step was actually followed.
type StepCompletion struct {
	StepID    uuid.UUID `json:"stepId"`
	Completed bool      `json:"completed"`
	Notes     *string   `json:"notes,omitempty"`
}

// AccountabilityCheck is the scheduled follow-up for an intervention plan.
// It owns a full copy of the plan it was built from; plans are never mutated
// after a check captures them. The check transitions exactly once, from
// scheduled to completed, when the follow-up is submitted.
type AccountabilityCheck struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"userId"`
	PredictionID     uuid.UUID        `gorm:"type:uuid;not null" json:"predictionId"`
	InterventionPlan InterventionPlan `gorm:"serializer:json" json:"interventionPlan"`
	ScheduledDate    time.Time        `gorm:"not null" json:"scheduledDate"`
	Completed        bool             `gorm:"not null;default:false" json:"completed"`
	FollowThrough    []StepCompletion `gorm:"serializer:json" json:"actualFollowThrough"`
	ActualMood       *int             `json:"actualMood,omitempty"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"createdAt"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AccountabilityCheck) TableName() string {
	return "accountability_checks"
}

// NewAccountabilityCheck seeds one all-false completion per plan step,
// mirroring the plan 1:1 by step ID.
func NewAccountabilityCheck(userID, predictionID uuid.UUID, plan InterventionPlan, scheduledDate time.Time) *AccountabilityCheck {
	completions := make([]StepCompletion, len(plan.Steps))
	for i, step := range plan.Steps {
		completions[i] = StepCompletion{StepID: step.ID, Completed: false}
	}

	return &AccountabilityCheck{
		ID:               uuid.New(),
		UserID:           userID,
		PredictionID:     predictionID,
		InterventionPlan: plan,
		ScheduledDate:    scheduledDate,
		Completed:        false,
		FollowThrough:    completions,
	}
}

// StepCompletionInput marks one step followed or skipped at follow-up time.
// @Description Completion state for a single plan step.
type StepCompletionInput struct {
	// ID of the plan step this completion refers to
	StepID uuid.UUID `json:"stepId" validate:"required"`
	// Whether the step was actually done
	Completed bool `json:"completed"`
	// Optional note on what happened
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// FollowUpRequest is the one-shot follow-up submission for a check.
// @Description Follow-up submission: per-step completions plus the actual mood.
type FollowUpRequest struct {
	// One completion per plan step, matched by step ID
	StepCompletions []StepCompletionInput `json:"stepCompletions" validate:"required,min=1,dive"`
	// Self-reported actual mood for the predicted day (1-5)
	ActualMood int `json:"actualMood" validate:"required,min=1,max=5" example:"3"`
}

// EffectivenessReport compares a prediction against the reported outcome.
// Accuracy, improvement, compliance, and effectiveness are derived on read,
// never stored.
type EffectivenessReport struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Date             time.Time `gorm:"not null" json:"date"`
	PredictedMood    float64   `gorm:"not null" json:"predictedMood"`
	ActualMood       float64   `gorm:"not null" json:"actualMood"`
	InterventionUsed bool      `gorm:"not null" json:"interventionUsed"`
	StepsCompleted   int       `gorm:"not null" json:"stepsCompleted"`
	TotalSteps       int       `gorm:"not null" json:"totalSteps"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EffectivenessReport) TableName() string {
	return "effectiveness_reports"
}

// Accuracy scores how close the forecast was, on a 0-1 scale.
func (r *EffectivenessReport) Accuracy() float64 {
	diff := r.PredictedMood - r.ActualMood
	if diff < 0 {
		diff = -diff
	}
	return 1.0 - diff/5.0
}

// Improvement is actual minus predicted mood, defined only when the
// intervention was used.
func (r *EffectivenessReport) Improvement() (float64, bool) {
	if !r.InterventionUsed {
		return 0, false
	}
	return r.ActualMood - r.PredictedMood, true
}

// ComplianceRate is the fraction of plan steps completed.
func (r *EffectivenessReport) ComplianceRate() float64 {
	if r.TotalSteps == 0 {
		return 0
	}
	return float64(r.StepsCompleted) / float64(r.TotalSteps)
}

// WasEffective is true when the intervention was used and mood came in more
// than half a point above the forecast.
func (r *EffectivenessReport) WasEffective() bool {
	improvement, ok := r.Improvement()
	return ok && improvement > 0.5
}

// EffectivenessReportResponse is a report plus its derived metrics.
// @Description Effectiveness report with computed accuracy and compliance.
type EffectivenessReportResponse struct {
	ID               uuid.UUID `json:"id"`
	Date             time.Time `json:"date"`
	PredictedMood    float64   `json:"predictedMood"`
	ActualMood       float64   `json:"actualMood"`
	InterventionUsed bool      `json:"interventionUsed"`
	StepsCompleted   int       `json:"stepsCompleted"`
	TotalSteps       int       `json:"totalSteps"`
	Accuracy         float64   `json:"accuracy"`
	Improvement      *float64  `json:"improvement,omitempty"`
	ComplianceRate   float64   `json:"complianceRate"`
	WasEffective     bool      `json:"wasEffective"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (r *EffectivenessReport) ToResponse() EffectivenessReportResponse {
	resp := EffectivenessReportResponse{
		ID:               r.ID,
		Date:             r.Date,
		PredictedMood:    r.PredictedMood,
		ActualMood:       r.ActualMood,
		InterventionUsed: r.InterventionUsed,
		StepsCompleted:   r.StepsCompleted,
		TotalSteps:       r.TotalSteps,
		Accuracy:         r.Accuracy(),
		ComplianceRate:   r.ComplianceRate(),
		WasEffective:     r.WasEffective(),
		CreatedAt:        r.CreatedAt,
	}
	if improvement, ok := r.Improvement(); ok {
		resp.Improvement = &improvement
	}
	return resp
}
