package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/dmitrijs2005/hotelbook/internal/server/services"
	"github.com/gin-gonic/gin"
)

// AuthService is the account and session API the handlers depend on.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Logout(ctx context.Context, token string) error
	VerifySession(ctx context.Context, token string) (string, error)
	GetUser(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error)
}

// BookingService is the reservation API the handlers depend on.
type BookingService interface {
	Create(ctx context.Context, userID string, in services.BookingInput) (*models.Booking, error)
	List(ctx context.Context, userID string) ([]*models.Booking, error)
	Get(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, userID, bookingID string) (*models.Booking, error)
}

type handlers struct {
	users       AuthService
	bookings    BookingService
	logger      logging.Logger
	pingMessage string
}

func (h *handlers) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.pingMessage})
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}

	token, user, err := h.users.Register(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: user.Public()})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: user.Public()})
}

// logout succeeds whatever the state of the presented token.
func (h *handlers) logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context(), bearer(c)); err != nil {
		h.fail(c, err, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) getUser(c *gin.Context) {
	token := bearer(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: msgNoToken})
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, userResponse{User: user.Public()})
}

func (h *handlers) updateUser(c *gin.Context) {
	token := bearer(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: msgNoToken})
		return
	}

	// an unusable session wins over a bad body
	if _, err := h.users.VerifySession(c.Request.Context(), token); err != nil {
		h.fail(c, err, msgUserNotFound)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), token, req.update())
	if err != nil {
		h.fail(c, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, userResponse{User: user.Public()})
}

func (h *handlers) createBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}

	in, err := req.input()
	if err != nil {
		h.fail(c, err, msgBookingNotFound)
		return
	}

	b, err := h.bookings.Create(c.Request.Context(), c.GetString(userIDKey), in)
	if err != nil {
		h.fail(c, err, msgBookingNotFound)
		return
	}

	c.JSON(http.StatusOK, bookingResponse{Booking: b, Message: "Booking created successfully"})
}

func (h *handlers) listBookings(c *gin.Context) {
	list, err := h.bookings.List(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.fail(c, err, msgBookingNotFound)
		return
	}
	c.JSON(http.StatusOK, bookingsResponse{Bookings: list})
}

func (h *handlers) getBooking(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), c.GetString(userIDKey), c.Param("bookingId"))
	if err != nil {
		h.fail(c, err, msgBookingNotFound)
		return
	}
	c.JSON(http.StatusOK, bookingResponse{Booking: b})
}

func (h *handlers) cancelBooking(c *gin.Context) {
	b, err := h.bookings.Cancel(c.Request.Context(), c.GetString(userIDKey), c.Param("bookingId"))
	if err != nil {
		h.fail(c, err, msgBookingNotFound)
		return
	}
	c.JSON(http.StatusOK, bookingResponse{Booking: b, Message: "Booking cancelled successfully"})
}

func bearer(c *gin.Context) string {
	return common.BearerToken(c.GetHeader(common.AuthorizationHeaderName))
}
