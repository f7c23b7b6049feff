package models

import "time"

// ConversationTurn is one message/response exchange in a user's history.
// A turn belongs to exactly one user and is immutable once appended. The
// timestamp is assigned by the store at append time and is non-decreasing
// within a user's sequence.
type ConversationTurn struct {
	ConversationID string         `json:"conversation_id"`
	UserMessage    string         `json:"user_message"`
	Response       string         `json:"ai_response"`
	Timestamp      time.Time      `json:"timestamp"`
	TokensUsed     int            `json:"tokens_used"`
	ResponseTimeMs int64          `json:"response_time_ms,omitempty"`
	Context        map[string]any `json:"context,omitempty"`
}
