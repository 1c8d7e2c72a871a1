// Package bookings persists hotel reservations. Every read and write is
// scoped to the owning user: a booking of another user is reported as
// not found.
package bookings

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	// ListByUser returns the user's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Booking, error)
	Get(ctx context.Context, userID, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, userID, id string, status models.BookingStatus, at time.Time) (*models.Booking, error)
}

const bookingColumns = `id, user_id, hotel_id, hotel_name, hotel_location, hotel_price,
	check_in, check_out, guests, first_name, last_name, email, phone,
	special_requests, total_price, status, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (*models.Booking, error) {
	b := &models.Booking{}
	var status string
	err := s.Scan(&b.ID, &b.UserID, &b.HotelID, &b.HotelName, &b.HotelLocation, &b.HotelPrice,
		&b.CheckIn, &b.CheckOut, &b.Guests, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
		&b.SpecialRequests, &b.TotalPrice, &status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Status = models.BookingStatus(status)
	return b, nil
}
