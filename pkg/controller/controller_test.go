package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"checker/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestWithCORS_Preflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
	rec := httptest.NewRecorder()

	controller.WithCORS(next).ServeHTTP(rec, req)

	require.False(t, called, "next handler should not be called for OPTIONS preflight")
	res := rec.Result()
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, res.Header.Get("Access-Control-Allow-Methods"))
}

func TestWithCORS_NormalRequest(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()

	controller.WithCORS(next).ServeHTTP(rec, req)

	require.True(t, called)
	require.Equal(t, http.StatusTeapot, rec.Result().StatusCode)
}

func TestWithLogger_PassesThroughStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotNil(t, r.Context().Value(controller.RequestIDKey), "request ID should be in context")
		w.WriteHeader(http.StatusAccepted)
	})

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	rec := httptest.NewRecorder()

	controller.WithLogger(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Result().StatusCode)
}

func TestWithLogger_ReusesIncomingRequestID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(controller.RequestIDKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	req.Header.Set("X-Request-Id", "req-42")
	controller.WithLogger(next).ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "req-42", seen)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	require.Equal(t, "10.0.0.1", controller.GetClientIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "10.0.0.3")
	require.Equal(t, "10.0.0.3", controller.GetClientIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.4:1234"
	require.Equal(t, "10.0.0.4", controller.GetClientIP(req))
}

func TestPprofMux(t *testing.T) {
	mux := controller.PprofMux()

	req := httptest.NewRequest(http.MethodGet, "/cmdline", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Result().StatusCode)
}
