package dto

import (
	"time"

	"github.com/fitcoach/fitcoach-be/internal/models"
)

type ChatRequest struct {
	Message        string         `json:"message"`
	ConversationID string         `json:"conversation_id,omitempty"`
	Context        map[string]any `json:"context,omitempty"`
}

type ChatResponse struct {
	Message        string    `json:"message"`
	Response       string    `json:"response"`
	ConversationID string    `json:"conversation_id"`
	Timestamp      time.Time `json:"timestamp"`
	TokensUsed     int       `json:"tokens_used"`
	ResponseTimeMs int64     `json:"response_time_ms"`
}

// HistoryResponse is a page of a user's conversation history. Total always
// reflects the full stored length regardless of the requested slice.
type HistoryResponse struct {
	UserID        string                    `json:"user_id"`
	Total         int                       `json:"total_conversations"`
	Limit         int                       `json:"limit"`
	Offset        int                       `json:"offset"`
	Conversations []models.ConversationTurn `json:"conversations"`
}
