package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/metrics"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// userIDKey holds the authenticated user id in the gin context.
const userIDKey = "userID"

// requireSession rejects requests without a valid bearer session and
// stores the session's user id under userIDKey.
func requireSession(users AuthService, l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: msgNoToken})
			return
		}

		userID, err := users.VerifySession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: msgInvalidToken})
				return
			}
			l.Error(c.Request.Context(), "session verification failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// rateLimit allows rate requests per client IP and answers 429 beyond it.
// rate uses the limiter format, e.g. "20-M".
func rateLimit(rate string, m *metrics.Metrics) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("rate limit %q: %w", rate, err)
	}

	instance := limiter.New(memory.NewStore(), r)

	return func(c *gin.Context) {
		ctx, err := instance.Get(c, c.ClientIP())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", ctx.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", ctx.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", ctx.Reset))

		if ctx.Reached {
			m.RecordRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: msgTooManyRequests})
			return
		}

		c.Next()
	}, nil
}

// accessLog logs one line per request at a level derived from the status.
func accessLog(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
			"latency", time.Since(start).String(),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			args = append(args, "errors", errs)
		}

		ctx := c.Request.Context()
		switch level := statusLevel(status); level {
		case slog.LevelError:
			l.Error(ctx, "request", args...)
		case slog.LevelWarn:
			l.Warn(ctx, "request", args...)
		default:
			l.Info(ctx, "request", args...)
		}
	}
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// instrument records request counts and latency per route template.
func instrument(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
