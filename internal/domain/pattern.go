package domain

import (
	"time"

	"github.com/google/uuid"
)

// PatternType categorizes the context variable a pattern correlates with mood.
// @Description Pattern category: dayOfWeek, timeOfDay, activity, sleep, social, weather, custom.
type PatternType string

const (
	PatternDayOfWeek PatternType = "dayOfWeek"
	PatternTimeOfDay PatternType = "timeOfDay"
	PatternActivity  PatternType = "activity"
	PatternSleep     PatternType = "sleep"
	PatternSocial    PatternType = "social"
	PatternWeather   PatternType = "weather"
	PatternCustom    PatternType = "custom"
)

// DetectedPattern is one statistically-notable mood correlation. Patterns are
// recomputed from the entry history on every analysis run and never persisted.
type DetectedPattern struct {
	ID          uuid.UUID   `json:"id"`
	Type        PatternType `json:"type"`
	Trigger     string      `json:"trigger"`
	Impact      float64     `json:"impact"`
	Confidence  float64     `json:"confidence"`
	SampleSize  int         `json:"sampleSize"`
	Description string      `json:"description"`
}

// NewDetectedPattern assigns a fresh ID to a detected correlation.
func NewDetectedPattern(pt PatternType, trigger string, impact, confidence float64, sampleSize int, description string) DetectedPattern {
	return DetectedPattern{
		ID:          uuid.New(),
		Type:        pt,
		Trigger:     trigger,
		Impact:      impact,
		Confidence:  confidence,
		SampleSize:  sampleSize,
		Description: description,
	}
}

// RiskLevel classifies a predicted mood.
// @Description Risk classification derived from the predicted mood.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevelFor derives the risk band from a predicted mood score.
// The level is a pure function of the mood; it is never set independently.
func RiskLevelFor(predictedMood float64) RiskLevel {
	switch {
	case predictedMood < 2.5:
		return RiskHigh
	case predictedMood < 3.5:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskFactor names one contributor to a low forecast. Identity is the ID:
// two factors with identical content but different IDs are distinct.
type RiskFactor struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Impact     float64   `json:"impact"`
	Confidence float64   `json:"confidence"`
	Source     string    `json:"source"`
}

// NewRiskFactor builds a risk factor with a fresh ID.
func NewRiskFactor(name string, impact, confidence float64, source string) RiskFactor {
	return RiskFactor{
		ID:         uuid.New(),
		Name:       name,
		Impact:     impact,
		Confidence: confidence,
		Source:     source,
	}
}

// MoodPrediction is a persisted forecast for a target date.
type MoodPrediction struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"userId"`
	TargetDate       time.Time         `gorm:"not null" json:"date"`
	PredictedMood    float64           `gorm:"not null" json:"predictedMood"`
	RiskLevel        RiskLevel         `gorm:"type:varchar(10);not null" json:"riskLevel"`
	RiskFactors      []RiskFactor      `gorm:"serializer:json" json:"riskFactors"`
	InterventionPlan *InterventionPlan `gorm:"serializer:json" json:"interventionPlan,omitempty"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"createdAt"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MoodPrediction) TableName() string {
	return "mood_predictions"
}

// NewMoodPrediction clamps the forecast to the mood scale and derives the
// risk level from the clamped value.
func NewMoodPrediction(userID uuid.UUID, targetDate time.Time, predictedMood float64, riskFactors []RiskFactor) *MoodPrediction {
	clamped := predictedMood
	if clamped < float64(MinMoodScore) {
		clamped = float64(MinMoodScore)
	}
	if clamped > float64(MaxMoodScore) {
		clamped = float64(MaxMoodScore)
	}

	return &MoodPrediction{
		ID:            uuid.New(),
		UserID:        userID,
		TargetDate:    targetDate,
		PredictedMood: clamped,
		RiskLevel:     RiskLevelFor(clamped),
		RiskFactors:   riskFactors,
	}
}

// InterventionStep is one timed action in a plan.
type InterventionStep struct {
	ID           uuid.UUID  `json:"id"`
	Timing       string     `json:"timing"`
	Action       string     `json:"action"`
	Reason       string     `json:"reason"`
	ReminderTime *time.Time `json:"reminderTime,omitempty"`
}

// NewInterventionStep builds a step with a fresh ID.
func NewInterventionStep(timing, action, reason string, reminderTime *time.Time) InterventionStep {
	return InterventionStep{
		ID:           uuid.New(),
		Timing:       timing,
		Action:       action,
		Reason:       reason,
		ReminderTime: reminderTime,
	}
}

// Plan generator tags.
const (
	GeneratedByAI       = "AI"
	GeneratedByTemplate = "Template"
)

// InterventionPlan is an ordered list of steps meant to counteract a
// predicted mood dip.
type InterventionPlan struct {
	Steps                []InterventionStep `json:"steps"`
	PredictedImprovement float64            `json:"predictedImprovement"`
	GeneratedBy          string             `json:"generatedBy"`
	CreatedAt            time.Time          `json:"createdAt"`
}

// PredictionRequest is the request body for generating a forecast.
// @Description Request payload for generating a mood prediction.
type PredictionRequest struct {
	// Date to forecast (RFC3339; time portion is ignored)
	TargetDate time.Time `json:"targetDate" validate:"required" example:"2024-01-22T00:00:00Z"`
}

// PatternListResponse wraps the detected patterns for a user.
// @Description Detected mood patterns over the analysis window.
type PatternListResponse struct {
	// Number of days of history analyzed
	WindowDays int `json:"windowDays" example:"30"`
	// Entries that backed the analysis
	EntryCount int `json:"entryCount" example:"24"`
	// Detected patterns (empty when history has fewer than 7 entries)
	Patterns []DetectedPattern `json:"patterns"`
}
