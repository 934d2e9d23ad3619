package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinMoodScore and MaxMoodScore bound the 1-5 mood scale.
	MinMoodScore = 1
	MaxMoodScore = 5
)

// MoodEntry is a single mood check-in. The score and activities are fixed at
// creation; the health context fields (sleep, exercise, steps) may be attached
// shortly afterwards via the health patch endpoint.
type MoodEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_mood_entries_user_logged" json:"userId"`
	LoggedAt        time.Time `gorm:"not null;index:idx_mood_entries_user_logged,sort:desc" json:"timestamp"`
	MoodScore       int       `gorm:"type:smallint;not null" json:"moodScore"`
	Notes           string    `gorm:"type:text;not null;default:''" json:"notes"`
	Activities      []string  `gorm:"serializer:json" json:"activities"`
	SleepHours      *float64  `json:"sleepHours,omitempty"`
	ExerciseMinutes *int      `json:"exerciseMinutes,omitempty"`
	StepCount       *int      `json:"stepCount,omitempty"`
	LocalTimezone   string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"localTimezone"`
	ClientRequestID *string   `gorm:"type:varchar(255);uniqueIndex:idx_entry_client_request,where:client_request_id IS NOT NULL" json:"clientRequestId,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}

// ClampMoodScore forces a score onto the 1-5 scale.
func ClampMoodScore(score int) int {
	if score < MinMoodScore {
		return MinMoodScore
	}
	if score > MaxMoodScore {
		return MaxMoodScore
	}
	return score
}

// LocalTime returns the entry's timestamp in its recorded timezone. Falls
// back to UTC when the timezone name no longer resolves.
func (e *MoodEntry) LocalTime() time.Time {
	loc := time.UTC
	if e.LocalTimezone != "" {
		if l, err := time.LoadLocation(e.LocalTimezone); err == nil {
			loc = l
		}
	}
	return e.LoggedAt.In(loc)
}

// CreateMoodEntryRequest is the request body for logging a mood check-in.
// @Description Request payload for recording a mood check-in.
type CreateMoodEntryRequest struct {
	// Check-in time in RFC3339 format (defaults to now when omitted)
	Timestamp *time.Time `json:"timestamp,omitempty" example:"2024-01-15T08:30:00Z"`
	// Mood score from 1 (low) to 5 (great)
	MoodScore int `json:"moodScore" validate:"required,min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Free-text notes from the check-in message
	Notes string `json:"notes" validate:"max=2000" example:"Morning run really helped!"`
	// Activity tags extracted from the check-in (duplicates are dropped)
	Activities []string `json:"activities" validate:"omitempty,max=20,dive,min=1,max=64" example:"Exercise,Work"`
	// Optional hours slept the night before
	SleepHours *float64 `json:"sleepHours,omitempty" validate:"omitempty,gte=0,lte=24" example:"7.5"`
	// Optional minutes of exercise that day
	ExerciseMinutes *int `json:"exerciseMinutes,omitempty" validate:"omitempty,gte=0" example:"45"`
	// Optional step count that day
	StepCount *int `json:"stepCount,omitempty" validate:"omitempty,gte=0" example:"8900"`
	// Optional client-generated ID for idempotent requests (max 255 chars)
	ClientRequestID *string `json:"clientRequestId,omitempty" validate:"omitempty,max=255" example:"client-uuid-12345"`
	// Optional IANA timezone for local-time analysis (defaults to user's timezone)
	LocalTimezone *string `json:"localTimezone,omitempty" validate:"omitempty,timezone" example:"Europe/Prague"`
}

// UpdateHealthContextRequest attaches health metrics to an existing entry.
// @Description Health context (sleep, exercise, steps) recorded after creation.
type UpdateHealthContextRequest struct {
	SleepHours      *float64 `json:"sleepHours,omitempty" validate:"omitempty,gte=0,lte=24" example:"6.2"`
	ExerciseMinutes *int     `json:"exerciseMinutes,omitempty" validate:"omitempty,gte=0" example:"20"`
	StepCount       *int     `json:"stepCount,omitempty" validate:"omitempty,gte=0" example:"3200"`
}

// MoodEntryListResponse is the response body for listing mood entries.
// @Description Paginated list of mood entries, newest first.
type MoodEntryListResponse struct {
	// Array of mood entries
	Data []MoodEntry `json:"data"`
	// Pagination metadata
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"nextCursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"hasMore" example:"true"`
}

// MoodEntryFilter contains filter parameters for listing mood entries
type MoodEntryFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}

// MoodSummary reports average mood and trend over a recent window.
// @Description Average mood and trend direction over the requested window.
type MoodSummary struct {
	// Number of days covered
	WindowDays int `json:"windowDays" example:"7"`
	// Entries found in the window
	EntryCount int `json:"entryCount" example:"12"`
	// Mean mood score across the window (0 when empty)
	AverageMood float64 `json:"averageMood" example:"3.4"`
	// Trend direction: improving, declining, or stable
	Trend MoodTrend `json:"trend" example:"improving"`
}

// MoodTrend classifies the direction of recent mood movement.
type MoodTrend string

const (
	TrendImproving MoodTrend = "improving"
	TrendDeclining MoodTrend = "declining"
	TrendStable    MoodTrend = "stable"
)
