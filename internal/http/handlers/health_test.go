package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	resp := getWithToken(t, ts.URL+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	root := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "running", root["status"])
	assert.NotEmpty(t, root["version"])

	resp = getWithToken(t, ts.URL+"/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	health := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "healthy", health["status"])
	assert.EqualValues(t, 2, health["checks_passed"])
	require.Contains(t, health, "system_metrics")

	resp = getWithToken(t, ts.URL+"/health/ready", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ready := decodeBody[map[string]any](t, resp)
	assert.Equal(t, true, ready["ready"])

	resp = getWithToken(t, ts.URL+"/health/live", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	live := decodeBody[map[string]any](t, resp)
	assert.Equal(t, true, live["alive"])
}
