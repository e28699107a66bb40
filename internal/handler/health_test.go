package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPool answers Ping with ping and remembers the deadline it was given
type stubPool struct {
	ping     func(ctx context.Context) error
	deadline time.Time
	bounded  bool
	pings    int
}

func (p *stubPool) Ping(ctx context.Context) error {
	p.pings++
	p.deadline, p.bounded = ctx.Deadline()
	if p.ping == nil {
		return nil
	}
	return p.ping(ctx)
}

func (p *stubPool) Close() {}

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, HealthResponse{Status: HealthStatusOK}, decodeHealth(t, w))
}

func TestHandleReadyz(t *testing.T) {
	waitForDeadline := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	tests := []struct {
		name           string
		ping           func(ctx context.Context) error
		requestTimeout time.Duration
		expectedStatus int
		expected       HealthResponse
	}{
		{
			name:           "Database reachable",
			expectedStatus: http.StatusOK,
			expected:       HealthResponse{Status: HealthStatusOK},
		},
		{
			name:           "Ping fails",
			ping:           func(context.Context) error { return errors.New("connection refused") },
			expectedStatus: http.StatusServiceUnavailable,
			expected:       HealthResponse{Status: HealthStatusUnavailable, Message: HealthMsgDatabaseDown},
		},
		{
			name:           "Request deadline cuts the ping short",
			ping:           waitForDeadline,
			requestTimeout: 10 * time.Millisecond,
			expectedStatus: http.StatusServiceUnavailable,
			expected:       HealthResponse{Status: HealthStatusUnavailable, Message: HealthMsgDatabaseDown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := &stubPool{ping: tt.ping}
			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			if tt.requestTimeout > 0 {
				ctx, cancel := context.WithTimeout(req.Context(), tt.requestTimeout)
				defer cancel()
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			start := time.Now()
			HandleReadyz(pool).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expected, decodeHealth(t, w))
			assert.Equal(t, 1, pool.pings)
			assert.Less(t, time.Since(start), ReadyTimeout)
		})
	}
}

func TestHandleReadyz_PingIsBoundedByReadyTimeout(t *testing.T) {
	pool := &stubPool{}
	before := time.Now()

	w := httptest.NewRecorder()
	HandleReadyz(pool).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, pool.bounded, "ping must carry a deadline")
	assert.WithinDuration(t, before.Add(ReadyTimeout), pool.deadline, time.Second)
}
