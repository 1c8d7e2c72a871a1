package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/hotelbook/internal/client/client"
	"github.com/dmitrijs2005/hotelbook/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	PingErr error

	RegisterToken string
	RegisterUser  *models.User
	RegisterErr   error
	LastRegister  models.RegisterRequest

	LoginToken    string
	LoginUser     *models.User
	LoginErr      error
	LastLoginUser string
	LastLoginPass string

	LogoutErr    error
	LogoutTokens []string

	UserRet   *models.User
	UserErr   error
	LastToken string

	UpdateRet  *models.User
	UpdateErr  error
	LastUpdate models.ProfileUpdate

	Bookings     []*models.Booking
	BookingErr   error
	LastBooking  models.BookingRequest
	LastCancelID string
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (string, *models.User, error) {
	f.LastRegister = req
	return f.RegisterToken, f.RegisterUser, f.RegisterErr
}

func (f *fakeClient) Login(_ context.Context, email, password string) (string, *models.User, error) {
	f.LastLoginUser, f.LastLoginPass = email, password
	return f.LoginToken, f.LoginUser, f.LoginErr
}

func (f *fakeClient) Logout(_ context.Context, token string) error {
	f.LogoutTokens = append(f.LogoutTokens, token)
	return f.LogoutErr
}

func (f *fakeClient) User(_ context.Context, token string) (*models.User, error) {
	f.LastToken = token
	return f.UserRet, f.UserErr
}

func (f *fakeClient) UpdateUser(_ context.Context, token string, upd models.ProfileUpdate) (*models.User, error) {
	f.LastToken, f.LastUpdate = token, upd
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) CreateBooking(_ context.Context, token string, req models.BookingRequest) (*models.Booking, error) {
	f.LastToken, f.LastBooking = token, req
	if f.BookingErr != nil {
		return nil, f.BookingErr
	}
	return &models.Booking{ID: "b1", HotelName: req.HotelName, Status: "confirmed"}, nil
}

func (f *fakeClient) ListBookings(_ context.Context, token string) ([]*models.Booking, error) {
	f.LastToken = token
	return f.Bookings, f.BookingErr
}

func (f *fakeClient) CancelBooking(_ context.Context, token, bookingID string) (*models.Booking, error) {
	f.LastToken, f.LastCancelID = token, bookingID
	if f.BookingErr != nil {
		return nil, f.BookingErr
	}
	return &models.Booking{ID: bookingID, Status: "cancelled"}, nil
}
