package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"checker/internal/api"
	"checker/internal/api/handler/v1handler"
	"checker/pkg/domain"

	"github.com/stretchr/testify/require"
)

type staticChecker struct {
	result *domain.BatchResult
}

func (s *staticChecker) Run(context.Context, []string) (*domain.BatchResult, error) {
	return s.result, nil
}

func newTestServer() *http.Server {
	deps := api.Deps{Deps: v1handler.Deps{Checker: &staticChecker{
		result: &domain.BatchResult{Results: []domain.Outcome{{Valid: false, Error: "Unauthorized"}}},
	}}}

	return api.NewServer(deps, api.Options{
		Addr:           ":0",
		RequestTimeout: time.Second,
		MetricsPath:    "/metrics",
	})
}

func TestServerHealthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])

	_, err := time.Parse(time.RFC3339, body["timestamp"])
	require.NoError(t, err)
}

func TestServerRoutesV1Check(t *testing.T) {
	t.Parallel()

	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(`{"credentials":["x"]}`))
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Unauthorized"`)
}

func TestServerMetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServerPprof(t *testing.T) {
	t.Parallel()

	srv := newTestServer()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}
