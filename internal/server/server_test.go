package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature_go/internal/config"
	"signature_go/internal/models"
)

func newTestServer(t *testing.T, role string) *Server {
	t.Helper()
	cfg, err := config.LoadFile("arquivo-inexistente.yaml")
	require.NoError(t, err)
	cfg.Server.Role = role

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServerHealthPerRole(t *testing.T) {
	for _, role := range []string{config.RoleGateway, config.RoleValidator, config.RoleStandalone} {
		t.Run(role, func(t *testing.T) {
			srv := newTestServer(t, role)

			rec := get(t, srv.Handler(), "/health")
			require.Equal(t, http.StatusOK, rec.Code)

			var health models.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
			assert.Equal(t, role, health.Role)
			assert.Equal(t, role != config.RoleGateway, health.ModelLoaded)
			assert.Equal(t, "disabled", health.Services["redis"])
			assert.Equal(t, "ok", health.Services["websocket"])

			if role == config.RoleGateway {
				assert.Equal(t, "http://localhost:8081/api/biometric/validate", health.Services["validator"])
			}
		})
	}
}

func TestServerInfoAndWebSocketHealth(t *testing.T) {
	srv := newTestServer(t, config.RoleStandalone)

	rec := get(t, srv.Handler(), "/info")
	require.Equal(t, http.StatusOK, rec.Code)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, config.RoleStandalone, info["role"])
	assert.Contains(t, info, "stats")
	assert.Contains(t, info, "validator")

	rec = get(t, srv.Handler(), "/ws/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"clients":0`)
}
