package client

import (
	"context"

	"github.com/dmitrijs2005/hotelbook/internal/client/models"
)

// Client is the hotelbook API as seen by the CLI. Methods taking a token
// send it as the bearer session token.
type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Logout(ctx context.Context, token string) error
	User(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error)
	CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*models.Booking, error)
	ListBookings(ctx context.Context, token string) ([]*models.Booking, error)
	CancelBooking(ctx context.Context, token, bookingID string) (*models.Booking, error)
}
