package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hotelbook/internal/client/client"
	"github.com/dmitrijs2005/hotelbook/internal/client/models"
)

// BookingService manages the bookings of the logged-in user.
type BookingService interface {
	Book(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	List(ctx context.Context) ([]*models.Booking, error)
	Cancel(ctx context.Context, bookingID string) (*models.Booking, error)
}

type bookingService struct {
	client  client.Client
	session sessionStore
}

func NewBookingService(client client.Client, db *sql.DB) BookingService {
	return &bookingService{client: client, session: sessionStore{db: db}}
}

func (s *bookingService) Book(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	token, err := s.session.token(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.client.CreateBooking(ctx, token, req)
	if err != nil {
		return nil, s.session.forgetIfRevoked(ctx, err)
	}
	return b, nil
}

func (s *bookingService) List(ctx context.Context) ([]*models.Booking, error) {
	token, err := s.session.token(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.client.ListBookings(ctx, token)
	if err != nil {
		return nil, s.session.forgetIfRevoked(ctx, err)
	}
	return list, nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	token, err := s.session.token(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.client.CancelBooking(ctx, token, bookingID)
	if err != nil {
		return nil, s.session.forgetIfRevoked(ctx, err)
	}
	return b, nil
}
