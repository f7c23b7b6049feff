package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/fitcoach/fitcoach-be/internal/models/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_RecordsTurn(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	creds := registerAlice(t, ts.URL)

	resp := postJSON(t, ts.URL+"/chat", creds.AccessToken, dto.ChatRequest{
		Message: "suggest a workout",
		Context: map[string]any{"user_level": "beginner"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	chat := decodeBody[dto.ChatResponse](t, resp)

	assert.Equal(t, "suggest a workout", chat.Message)
	assert.Contains(t, chat.Response, "workout plan")
	assert.NotEmpty(t, chat.ConversationID)
	assert.Positive(t, chat.TokensUsed)

	// Continuing with the returned conversation id keeps the thread.
	resp = postJSON(t, ts.URL+"/chat", creds.AccessToken, dto.ChatRequest{
		Message:        "and nutrition?",
		ConversationID: chat.ConversationID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	followUp := decodeBody[dto.ChatResponse](t, resp)
	assert.Equal(t, chat.ConversationID, followUp.ConversationID)
}

func TestChat_RejectsEmptyMessage(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	creds := registerAlice(t, ts.URL)

	resp := postJSON(t, ts.URL+"/chat", creds.AccessToken, dto.ChatRequest{Message: "   "})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistory_PaginationAndDefaults(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	creds := registerAlice(t, ts.URL)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, ts.URL+"/chat", creds.AccessToken, dto.ChatRequest{
			Message: fmt.Sprintf("message number %d", i),
		})
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	url := fmt.Sprintf("%s/chat/history/%s?limit=2&offset=1", ts.URL, creds.UserID)
	resp := getWithToken(t, url, creds.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodeBody[dto.HistoryResponse](t, resp)

	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Conversations, 2)
	assert.Equal(t, "message number 1", page.Conversations[0].UserMessage)
	assert.Equal(t, "message number 2", page.Conversations[1].UserMessage)

	// Defaults apply when the query params are absent.
	resp = getWithToken(t, fmt.Sprintf("%s/chat/history/%s", ts.URL, creds.UserID), creds.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	full := decodeBody[dto.HistoryResponse](t, resp)
	assert.Equal(t, 50, full.Limit)
	assert.Len(t, full.Conversations, 3)
}

func TestHistory_ForbiddenForOtherUsers(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	alice := registerAlice(t, ts.URL)

	resp := postJSON(t, ts.URL+"/auth/register", "", dto.RegisterRequest{
		Email:     "bob@example.com",
		Password:  "Passw0rd1",
		FirstName: "Bob",
		LastName:  "B",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bob := decodeBody[dto.TokenResponse](t, resp)

	url := fmt.Sprintf("%s/chat/history/%s", ts.URL, alice.UserID)
	resp = getWithToken(t, url, bob.AccessToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	creds := registerAlice(t, ts.URL)

	resp := postJSON(t, ts.URL+"/chat", creds.AccessToken, dto.ChatRequest{Message: "hello"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	statsResp := getWithToken(t, ts.URL+"/stats", creds.AccessToken)
	require.Equal(t, http.StatusOK, statsResp.StatusCode)
	stats := decodeBody[map[string]any](t, statsResp)

	assert.Equal(t, creds.UserID, stats["user_id"])
	assert.EqualValues(t, 1, stats["total_conversations"])
	assert.EqualValues(t, 1, stats["days_active"])
	assert.NotEmpty(t, stats["member_since"])
}

func TestProfile_GetAndPartialUpdate(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	creds := registerAlice(t, ts.URL)

	resp := getWithToken(t, ts.URL+"/profile", creds.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "alice@example.com", profile["email"])
	assert.Equal(t, "Alice", profile["first_name"])

	goals := "swim twice a week"
	putResp := putJSON(t, ts.URL+"/profile", creds.AccessToken, map[string]any{"fitness_goals": goals})
	require.Equal(t, http.StatusOK, putResp.StatusCode)
	updated := decodeBody[map[string]any](t, putResp)

	assert.Equal(t, goals, updated["fitness_goals"])
	assert.Equal(t, "Alice", updated["first_name"], "omitted fields stay untouched")
}
