package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/gin-gonic/gin"
)

// Client-facing messages.
const (
	msgNoToken         = "No token provided"
	msgInvalidToken    = "Invalid or expired token"
	msgInvalidBody     = "Invalid request body"
	msgDuplicateEmail  = "Email already registered"
	msgInvalidLogin    = "Invalid email or password"
	msgInternal        = "Internal server error"
	msgTooManyRequests = "Too many requests, please try again later"
	msgUserNotFound    = "User not found"
	msgBookingNotFound = "Booking not found"
)

// statusFor maps a service error to an HTTP status and client message.
// notFound is the message used for common.ErrorNotFound.
func statusFor(err error, notFound string) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, common.ErrDuplicateEmail):
		return http.StatusBadRequest, msgDuplicateEmail
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidLogin
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, notFound
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// validationMessage turns "validation error: all fields are required" into
// "All fields are required".
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, common.ErrorValidation.Error()+": "); i >= 0 {
		msg = msg[i+len(common.ErrorValidation.Error())+2:]
	}
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

// fail writes the error response for err and aborts the chain. Server-side
// failures are logged with their cause; clients only see a generic message.
func (h *handlers) fail(c *gin.Context, err error, notFound string) {
	status, msg := statusFor(err, notFound)
	if status == http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}
