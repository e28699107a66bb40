package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rishav-026/Gamified-Coding-platform/internal/auth"
)

func TestAPIKeyMiddleware(t *testing.T) {
	apiKey := "secret-key"

	tests := []struct {
		name           string
		configuredKey  string
		providedKey    string
		expectedStatus int
	}{
		{"Valid API Key", apiKey, apiKey, http.StatusOK},
		{"Invalid API Key", apiKey, "wrong-key", http.StatusUnauthorized},
		{"Missing API Key", apiKey, "", http.StatusUnauthorized},
		{"Unconfigured key rejects everything", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := NewSuspiciousActivityDetector()
			handler := APIKeyMiddleware(tt.configuredKey, nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/cache/stats", nil)
			req.RemoteAddr = "10.0.0.1:4000"
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Equal(t, 1, detector.failedAuthCount("10.0.0.1"))
			}
		})
	}
}

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func TestBearerAuthMiddleware(t *testing.T) {
	verifier := stubVerifier{"good-token": "user-1"}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedUser   string
	}{
		{"Valid token", "Bearer good-token", http.StatusOK, "user-1"},
		{"Lowercase scheme", "bearer good-token", http.StatusOK, "user-1"},
		{"Unknown token", "Bearer forged", http.StatusUnauthorized, ""},
		{"Missing header", "", http.StatusUnauthorized, ""},
		{"Wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"Empty token", "Bearer ", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			handler := BearerAuthMiddleware(verifier, nil, NewSuspiciousActivityDetector())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = auth.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.header != "" {
				req.Header.Set(HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedUser, gotUser)
		})
	}
}

func TestExtractIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	req.Header.Set(HeaderForwardedFor, "203.0.113.9, 198.51.100.2")

	assert.Equal(t, "10.0.0.5", extractIP(req, nil), "untrusted peer ignores forwarded header")
	assert.Equal(t, "198.51.100.2", extractIP(req, []string{"10.0.0.5"}))
}
