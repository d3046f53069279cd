package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekchotaliya/botmaster-twitter/internal/platform/config"
)

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()

	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleReadiness_NoChecks(t *testing.T) {
	srv := newTestServer(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadiness_FailingCheck(t *testing.T) {
	cfg := &config.Config{AppEnv: "test", Port: "0", ConsumerSecret: "s", OwnerID: "999"}
	checks := []HealthCheck{
		{Name: "upstream", Check: func(context.Context) error { return errors.New("unreachable") }},
	}
	srv := NewServer(cfg, nil, nil, checks)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "upstream", body["failed_check"])
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()

	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "dev", body["version"])
	assert.NotEmpty(t, body["go_version"])
}
