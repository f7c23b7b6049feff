package models

import "time"

// UserRecord captures application-facing fields for an authenticated identity.
// ID is assigned once at creation and never reused. Email is unique across all
// records, compared case-sensitively as stored.
type UserRecord struct {
	ID           string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Goals        string    `json:"fitness_goals,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastActive   time.Time `json:"last_active"`
	Active       bool      `json:"is_active"`
}

// UserStats aggregates a user's conversation activity.
type UserStats struct {
	UserID      string    `json:"user_id"`
	TurnCount   int       `json:"total_conversations"`
	DaysActive  int       `json:"days_active"`
	MemberSince time.Time `json:"member_since"`
	LastActive  time.Time `json:"last_active"`
}
