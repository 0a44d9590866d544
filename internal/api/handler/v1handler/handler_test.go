package v1handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"checker/internal/api/handler/v1handler"
	"checker/internal/checker"
	"checker/pkg/domain"
	"checker/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// checkerFunc adapts a function to the checker.Checker interface.
type checkerFunc func(ctx context.Context, credentials []string) (*domain.BatchResult, error)

func (f checkerFunc) Run(ctx context.Context, credentials []string) (*domain.BatchResult, error) {
	return f(ctx, credentials)
}

var _ checker.Checker = (checkerFunc)(nil)

func newRouter(run checkerFunc) http.Handler {
	return v1handler.New(v1handler.Deps{Checker: run}).Routes()
}

func postCheck(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestCheckBatch(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	batchID := uuid.New()
	router := newRouter(func(_ context.Context, credentials []string) (*domain.BatchResult, error) {
		require.Equal(t, []string{"cred-a", "cred-b"}, credentials)

		return &domain.BatchResult{
			ID: batchID,
			Results: []domain.Outcome{
				{Valid: true, Credential: "masked-a", Account: &domain.AccountRecord{ValueScore: 42.5}, CheckedAt: now},
				{Valid: false, Credential: "masked-b", Error: "Unauthorized", CheckedAt: now},
			},
			StartedAt:   now,
			CompletedAt: now,
		}, nil
	})

	rec := postCheck(t, router, `{"credentials":["cred-a","cred-b"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp v1handler.CheckBatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, batchID, resp.ID)
	require.Equal(t, 2, resp.Total)
	require.Equal(t, 1, resp.Valid)
	require.Equal(t, 1, resp.Invalid)
	require.Len(t, resp.Results, 2)
	require.Equal(t, "Unauthorized", resp.Results[1].Error)
}

func TestCheckBatchUndecodableBody(t *testing.T) {
	t.Parallel()

	router := newRouter(func(context.Context, []string) (*domain.BatchResult, error) {
		t.Fatal("checker must not run on an undecodable request")

		return nil, nil
	})

	rec := postCheck(t, router, `{"credentials": not-json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp["error"], "could not decode request body")
}

func TestCheckBatchBadRequest(t *testing.T) {
	t.Parallel()

	router := newRouter(func(context.Context, []string) (*domain.BatchResult, error) {
		return nil, serrors.With(serrors.ErrBadRequest, "empty batch")
	})

	rec := postCheck(t, router, `{"credentials":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp["error"], "empty batch")
}

func TestCheckBatchInternalErrorIsOpaque(t *testing.T) {
	t.Parallel()

	router := newRouter(func(context.Context, []string) (*domain.BatchResult, error) {
		return nil, serrors.With(serrors.ErrInternal, "connection pool exhausted")
	})

	rec := postCheck(t, router, `{"credentials":["cred-a"]}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection pool", "internals never leak to clients")
}
