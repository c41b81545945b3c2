package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(Config{
		ServiceName: "trackside-test",
		Version:     "test",
		Port:        "0",
	})
}

func TestHandleHealthAlwaysOK(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trackside-test", resp.Service)
}

func TestHandleReadyNotReadyByDefault(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleReadyWithComponentChecks(t *testing.T) {
	s := newTestServer()
	s.SetReady(true)
	s.AddCheck("odds_feed", func(ctx context.Context) error { return nil })

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Checks["odds_feed"])
}

func TestHandleReadyFailingCheck(t *testing.T) {
	s := newTestServer()
	s.SetReady(true)
	s.AddCheck("odds_feed", func(ctx context.Context) error {
		return errors.New("stream disconnected")
	})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Checks["odds_feed"], "stream disconnected")
}
