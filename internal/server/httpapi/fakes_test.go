package httpapi

import (
	"context"

	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/dmitrijs2005/hotelbook/internal/server/services"
)

type fakeAuth struct {
	register      func(ctx context.Context, in services.RegisterInput) (string, *models.User, error)
	login         func(ctx context.Context, email, password string) (string, *models.User, error)
	logout        func(ctx context.Context, token string) error
	verifySession func(ctx context.Context, token string) (string, error)
	getUser       func(ctx context.Context, token string) (*models.User, error)
	updateProfile func(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error)
}

func (f *fakeAuth) Register(ctx context.Context, in services.RegisterInput) (string, *models.User, error) {
	return f.register(ctx, in)
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuth) Logout(ctx context.Context, token string) error {
	if f.logout == nil {
		return nil
	}
	return f.logout(ctx, token)
}

func (f *fakeAuth) VerifySession(ctx context.Context, token string) (string, error) {
	return f.verifySession(ctx, token)
}

func (f *fakeAuth) GetUser(ctx context.Context, token string) (*models.User, error) {
	return f.getUser(ctx, token)
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error) {
	return f.updateProfile(ctx, token, upd)
}

type fakeBookings struct {
	create func(ctx context.Context, userID string, in services.BookingInput) (*models.Booking, error)
	list   func(ctx context.Context, userID string) ([]*models.Booking, error)
	get    func(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	cancel func(ctx context.Context, userID, bookingID string) (*models.Booking, error)
}

func (f *fakeBookings) Create(ctx context.Context, userID string, in services.BookingInput) (*models.Booking, error) {
	return f.create(ctx, userID, in)
}

func (f *fakeBookings) List(ctx context.Context, userID string) ([]*models.Booking, error) {
	return f.list(ctx, userID)
}

func (f *fakeBookings) Get(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	return f.get(ctx, userID, bookingID)
}

func (f *fakeBookings) Cancel(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	return f.cancel(ctx, userID, bookingID)
}
