package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/metrics"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit_AuthEndpoints(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRateLimit = "2-M"
	m := metrics.New()
	users := &fakeAuth{login: func(context.Context, string, string) (string, *models.User, error) {
		return "", nil, common.ErrInvalidCredentials
	}}
	r, err := NewRouter(cfg, users, &fakeBookings{}, logging.Nop{}, m)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		w := do(r, http.MethodPost, "/api/auth/login", "", `{"email":"a@x.com","password":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := do(r, http.MethodPost, "/api/auth/login", "", `{"email":"a@x.com","password":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, msgTooManyRequests, decode(t, w)["error"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitedHits))

	// ping is not limited
	w = do(r, http.MethodGet, "/api/ping", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_InvalidRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRateLimit = "lots"

	_, err := NewRouter(cfg, &fakeAuth{}, &fakeBookings{}, logging.Nop{}, nil)
	require.Error(t, err)
}

func TestCORS(t *testing.T) {
	cfg := testConfig()
	cfg.AllowedOrigins = []string{"http://localhost:5173"}
	r, err := NewRouter(cfg, &fakeAuth{}, &fakeBookings{}, logging.Nop{}, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCorsConfig(t *testing.T) {
	_, ok := corsConfig(nil)
	assert.False(t, ok)

	c, ok := corsConfig([]string{"*"})
	require.True(t, ok)
	assert.True(t, c.AllowAllOrigins)
	assert.False(t, c.AllowCredentials)

	c, ok = corsConfig([]string{"http://a.example"})
	require.True(t, ok)
	assert.Equal(t, []string{"http://a.example"}, c.AllowOrigins)
	assert.True(t, c.AllowCredentials)
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	r, err := NewRouter(testConfig(), &fakeAuth{}, &fakeBookings{}, logging.Nop{}, m)
	require.NoError(t, err)

	do(r, http.MethodGet, "/api/ping", "", "")
	do(r, http.MethodGet, "/api/nowhere", "", "")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/ping", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))

	w := do(r, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "hotelbook_http_requests_total"))
}

func TestAccessLog_LevelFollowsStatus(t *testing.T) {
	var buf strings.Builder
	l := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	users := &fakeAuth{getUser: func(context.Context, string) (*models.User, error) {
		return nil, common.ErrorUnauthorized
	}}
	r, err := NewRouter(testConfig(), users, &fakeBookings{}, l, nil)
	require.NoError(t, err)

	do(r, http.MethodGet, "/api/ping", "", "")
	do(r, http.MethodGet, "/api/auth/user", "bad", "")

	out := buf.String()
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"path":"/api/auth/user"`)
}

func TestStatusLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, statusLevel(http.StatusOK))
	assert.Equal(t, slog.LevelWarn, statusLevel(http.StatusNotFound))
	assert.Equal(t, slog.LevelError, statusLevel(http.StatusBadGateway))
}
