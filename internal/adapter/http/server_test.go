package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/seismoworks/smconv/internal/adapter/http"
)

type stubReadiness struct {
	err error
}

func (s *stubReadiness) CheckReadiness(_ context.Context) error { return s.err }

func do(t *testing.T, srv *httpadapter.Server, path string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]string
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealthz(t *testing.T) {
	srv := httpadapter.NewServer(":0", &stubReadiness{}, slog.Default())
	rec, body := do(t, srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("batch processing", func(t *testing.T) {
		srv := httpadapter.NewServer(":0", &stubReadiness{}, slog.Default())
		rec, body := do(t, srv, "/readyz")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", body["status"])
	})

	t.Run("batch not started", func(t *testing.T) {
		srv := httpadapter.NewServer(":0", &stubReadiness{err: errors.New("batch has not started")}, slog.Default())
		rec, body := do(t, srv, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "not ready", body["status"])
		assert.Equal(t, "batch has not started", body["error"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := httpadapter.NewServer(":0", &stubReadiness{}, slog.Default())
	rec, _ := do(t, srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}
