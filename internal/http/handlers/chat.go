package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fitcoach/fitcoach-be/internal/http/respond"
	"github.com/fitcoach/fitcoach-be/internal/middleware"
	"github.com/fitcoach/fitcoach-be/internal/models/dto"
	"github.com/fitcoach/fitcoach-be/internal/session"
)

const maxMessageLen = 2000

const (
	defaultHistoryLimit  = 50
	defaultHistoryOffset = 0
)

// ChatHandler owns the chat and history endpoints. Both sit behind the auth
// middleware.
type ChatHandler struct {
	sessions *session.Service
}

// NewChatHandler constructs the handler.
func NewChatHandler(sessions *session.Service) *ChatHandler {
	return &ChatHandler{sessions: sessions}
}

func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req dto.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Message) == "" || len(req.Message) > maxMessageLen {
		respond.Error(w, http.StatusBadRequest,
			fmt.Sprintf("message must be 1-%d characters", maxMessageLen))
		return
	}

	turn, err := h.sessions.RecordTurn(r.Context(), userID, req.Message, req.ConversationID, req.Context)
	if err != nil {
		writeSessionError(w, err, http.StatusInternalServerError, "failed to generate response")
		return
	}

	respond.JSON(w, http.StatusOK, dto.ChatResponse{
		Message:        turn.UserMessage,
		Response:       turn.Response,
		ConversationID: turn.ConversationID,
		Timestamp:      turn.Timestamp,
		TokensUsed:     turn.TokensUsed,
		ResponseTimeMs: turn.ResponseTimeMs,
	})
}

// HandleHistory serves a page of the target user's history; only the owner
// may read it.
func (h *ChatHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	targetID := r.PathValue("user_id")

	limit := queryInt(r, "limit", defaultHistoryLimit)
	offset := queryInt(r, "offset", defaultHistoryOffset)

	turns, total, err := h.sessions.History(r.Context(), requesterID, targetID, limit, offset)
	if err != nil {
		if errors.Is(err, session.ErrForbidden) {
			respond.Error(w, http.StatusForbidden, "access denied: can only access your own conversation history")
			return
		}
		writeSessionError(w, err, http.StatusInternalServerError, "failed to fetch history")
		return
	}

	respond.JSON(w, http.StatusOK, dto.HistoryResponse{
		UserID:        targetID,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
		Conversations: turns,
	})
}
