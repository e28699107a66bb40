package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rishav-026/Gamified-Coding-platform/internal/assistant"
	"github.com/rishav-026/Gamified-Coding-platform/internal/auth"
	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

type stubPool struct {
	err error
}

func (p stubPool) Ping(ctx context.Context) error { return p.err }
func (p stubPool) Close()                         {}

// stubAuth only verifies tokens; registration is not reachable in these tests
type stubAuth struct {
	stubVerifier
}

func (stubAuth) Register(ctx context.Context, username, email, password string) (*auth.Result, error) {
	return nil, domain.ErrInvalidInput
}

func (stubAuth) Login(ctx context.Context, identifier, password string) (*auth.Result, error) {
	return nil, domain.ErrInvalidCredentials
}

func newTestServer() *Server {
	return NewServer(Options{
		Port:        0,
		AdminAPIKey: "admin-key",
		CORSOrigins: []string{"http://localhost:5173"},
	}, stubPool{}, Services{
		Auth:      stubAuth{stubVerifier{"good-token": "user-1"}},
		Assistant: assistant.NewService(nil, nil, clock.NewReal()),
	})
}

func TestRouter(t *testing.T) {
	h := newTestServer().Handler()

	tests := []struct {
		name           string
		method         string
		path           string
		headers        map[string]string
		expectedStatus int
	}{
		{"Liveness is public", http.MethodGet, "/healthz", nil, http.StatusOK},
		{"Readiness pings the pool", http.MethodGet, "/readyz", nil, http.StatusOK},
		{"Version is public", http.MethodGet, "/version", nil, http.StatusOK},
		{"Profile needs a token", http.MethodGet, "/api/v1/users/me", nil, http.StatusUnauthorized},
		{"Forged token", http.MethodGet, "/api/v1/users/me", map[string]string{HeaderAuthorization: "Bearer nope"}, http.StatusUnauthorized},
		{"Clear history with token", http.MethodPost, "/api/v1/ai/clear-history", map[string]string{HeaderAuthorization: "Bearer good-token"}, http.StatusOK},
		{"Chat with an empty body", http.MethodPost, "/api/v1/ai/chat", map[string]string{HeaderAuthorization: "Bearer good-token"}, http.StatusBadRequest},
		{"Admin needs the key", http.MethodGet, "/api/v1/admin/cache/stats", map[string]string{HeaderAuthorization: "Bearer good-token"}, http.StatusUnauthorized},
		{"Login is public", http.MethodPost, "/api/v1/auth/login", nil, http.StatusBadRequest},
		{"Unknown route", http.MethodGet, "/api/v1/nowhere", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestServer().Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequestIDHeader(t *testing.T) {
	h := newTestServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get(HeaderRequestID), "quiet paths are not tagged")
}
