package domain

import (
	"time"

	"github.com/google/uuid"
)

// User owns a mood history. The timezone is the default zone new check-ins
// are recorded in when the client does not send one.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// EntryTimezone picks the zone a new check-in is recorded in: an explicit
// client override wins, then the user's stored timezone, then UTC.
func (u *User) EntryTimezone(override *string) string {
	if override != nil && *override != "" {
		return *override
	}
	if u.Timezone != "" {
		return u.Timezone
	}
	return "UTC"
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Timezone string `json:"timezone" validate:"required,timezone"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
	}
}
