package httpapi

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/config"
	"github.com/dmitrijs2005/hotelbook/internal/server/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine serving the API described by cfg.
// m may be nil, in which case no metrics are recorded and /metrics is not
// mounted.
func NewRouter(cfg *config.Config, users AuthService, bookings BookingService, l logging.Logger, m *metrics.Metrics) (*gin.Engine, error) {
	l = l.With("module", "http")

	h := &handlers{
		users:       users,
		bookings:    bookings,
		logger:      l,
		pingMessage: cfg.PingMessage,
	}

	authLimit, err := rateLimit(cfg.AuthRateLimit, m)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(accessLog(l))
	r.Use(gin.Recovery())
	r.Use(instrument(m))

	// only loopback proxies are trusted for X-Forwarded-For
	if err := r.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		return nil, err
	}

	if c, ok := corsConfig(cfg.AllowedOrigins); ok {
		l.Info(context.Background(), "Allowing origins", "origins", cfg.AllowedOrigins)
		r.Use(cors.New(c))
	}

	api := r.Group("/api")
	api.GET("/ping", h.ping)

	{
		a := api.Group("/auth")
		a.POST("/register", authLimit, h.register)
		a.POST("/login", authLimit, h.login)
		a.POST("/logout", h.logout)
		a.GET("/user", h.getUser)
		a.PUT("/user", h.updateUser)
	}

	{
		b := api.Group("/bookings")
		b.Use(requireSession(users, l))
		b.POST("", h.createBooking)
		b.GET("", h.listBookings)
		b.GET("/:bookingId", h.getBooking)
		b.DELETE("/:bookingId", h.cancelBooking)
	}

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	return r, nil
}

// corsConfig returns the CORS settings for origins. An empty list disables
// CORS handling and "*" allows every origin.
func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}

	c := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: 12 * time.Hour,
	}

	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}

	return c, true
}
