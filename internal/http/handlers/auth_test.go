package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fitcoach/fitcoach-be/internal/auth"
	"github.com/fitcoach/fitcoach-be/internal/coach"
	"github.com/fitcoach/fitcoach-be/internal/config"
	"github.com/fitcoach/fitcoach-be/internal/models/dto"
	"github.com/fitcoach/fitcoach-be/internal/server"
	"github.com/fitcoach/fitcoach-be/internal/session"
	"github.com/fitcoach/fitcoach-be/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer stands up the full route/middleware chain over in-memory
// stores, so handler tests exercise exactly what production serves.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		Port:        "0",
		Environment: "test",
		CORSOrigins: []string{"*"},
	}
	store := memory.NewStore()
	generator := coach.NewKeywordGenerator()
	sessions := session.NewService(
		store, store,
		auth.NewSaltedHasher("test-salt"),
		auth.NewTokenManager("test-secret", time.Hour),
		auth.NewMemoryDenylist(),
		generator,
	)

	ts := httptest.NewServer(server.New(cfg, sessions, generator).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, token string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func putJSON(t *testing.T, url, token string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getWithToken(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerAlice(t *testing.T, baseURL string) dto.TokenResponse {
	t.Helper()
	resp := postJSON(t, baseURL+"/auth/register", "", dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "Passw0rd1",
		FirstName: "Alice",
		LastName:  "A",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[dto.TokenResponse](t, resp)
}

func TestRegisterLoginFlow(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	registered := registerAlice(t, ts.URL)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.UserID)
	assert.Equal(t, "bearer", registered.TokenType)
	assert.Equal(t, 3600, registered.ExpiresIn)

	// Wrong password is rejected without hinting which part was wrong.
	resp := postJSON(t, ts.URL+"/auth/login", "", dto.LoginRequest{
		Email: "alice@example.com", Password: "WrongPass1",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/auth/login", "", dto.LoginRequest{
		Email: "alice@example.com", Password: "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loggedIn := decodeBody[dto.TokenResponse](t, resp)
	assert.Equal(t, registered.UserID, loggedIn.UserID)
	assert.NotEmpty(t, loggedIn.AccessToken)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	registerAlice(t, ts.URL)

	resp := postJSON(t, ts.URL+"/auth/register", "", dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "Other0pass",
		FirstName: "Another",
		LastName:  "Alice",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	tests := []struct {
		name string
		req  dto.RegisterRequest
	}{
		{"missing email", dto.RegisterRequest{Password: "Passw0rd1", FirstName: "A", LastName: "B"}},
		{"short password", dto.RegisterRequest{Email: "a@b.c", Password: "Ab1", FirstName: "A", LastName: "B"}},
		{"no digit in password", dto.RegisterRequest{Email: "a@b.c", Password: "Password", FirstName: "A", LastName: "B"}},
		{"no letter in password", dto.RegisterRequest{Email: "a@b.c", Password: "12345678", FirstName: "A", LastName: "B"}},
		{"empty first name", dto.RegisterRequest{Email: "a@b.c", Password: "Passw0rd1", LastName: "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/auth/register", "", tt.req)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLogout_TokenStopsWorking(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	creds := registerAlice(t, ts.URL)

	resp := getWithToken(t, ts.URL+"/profile", creds.AccessToken)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/auth/logout", creds.AccessToken, struct{}{})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getWithToken(t, ts.URL+"/profile", creds.AccessToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	for _, path := range []string{"/profile", "/stats", "/chat/history/u1"} {
		resp := getWithToken(t, ts.URL+path, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}

	resp := postJSON(t, ts.URL+"/chat", "garbage-token", dto.ChatRequest{Message: "hi"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/auth/login", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	resp := getWithToken(t, fmt.Sprintf("%s/health/live", ts.URL), "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
