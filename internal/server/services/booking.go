package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/metrics"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// BookingInput is the payload of a new booking.
type BookingInput struct {
	HotelID         string
	HotelName       string
	HotelLocation   string
	HotelPrice      float64
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	SpecialRequests string
}

// BookingService manages the reservations of authenticated users. All
// methods take the user id returned by UserService.VerifySession.
type BookingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	metrics     *metrics.Metrics

	now   func() time.Time
	newID func() string
}

func NewBookingService(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger, m *metrics.Metrics) *BookingService {
	return &BookingService{
		db:          db,
		repomanager: rm,
		log:         log.With("module", "bookings"),
		metrics:     m,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Nights is the number of billed nights between checkIn and checkOut:
// partial days round up and a stay is never shorter than one night.
func Nights(checkIn, checkOut time.Time) int {
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}

func (in *BookingInput) normalize() {
	in.HotelID = strings.TrimSpace(in.HotelID)
	in.HotelName = strings.TrimSpace(in.HotelName)
	in.HotelLocation = strings.TrimSpace(in.HotelLocation)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = common.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.SpecialRequests = strings.TrimSpace(in.SpecialRequests)
}

func (in *BookingInput) validate() error {
	switch {
	case in.HotelID == "" || in.HotelName == "" || in.CheckIn.IsZero() || in.CheckOut.IsZero() ||
		in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "":
		return fmt.Errorf("%w: missing required fields", common.ErrorValidation)
	case in.Guests < 1:
		return fmt.Errorf("%w: at least one guest is required", common.ErrorValidation)
	case in.HotelPrice < 0 || math.IsNaN(in.HotelPrice) || math.IsInf(in.HotelPrice, 0):
		return fmt.Errorf("%w: invalid hotel price", common.ErrorValidation)
	case !in.CheckOut.After(in.CheckIn):
		return fmt.Errorf("%w: check-out must be after check-in", common.ErrorValidation)
	}
	return nil
}

// Create books the stay for userID. The booking is confirmed immediately.
func (s *BookingService) Create(ctx context.Context, userID string, in BookingInput) (*models.Booking, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		s.metrics.RecordBooking("create", metrics.ResultInvalid)
		return nil, err
	}

	b := &models.Booking{
		ID:              s.newID(),
		UserID:          userID,
		HotelID:         in.HotelID,
		HotelName:       in.HotelName,
		HotelLocation:   in.HotelLocation,
		HotelPrice:      in.HotelPrice,
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		Guests:          in.Guests,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Phone:           in.Phone,
		SpecialRequests: in.SpecialRequests,
		TotalPrice:      in.HotelPrice * float64(Nights(in.CheckIn, in.CheckOut)),
		Status:          models.BookingConfirmed,
		CreatedAt:       s.now(),
	}

	created, err := s.repomanager.Bookings(s.db).Create(ctx, b)
	if err != nil {
		s.metrics.RecordBooking("create", metrics.ResultError)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.metrics.RecordBooking("create", metrics.ResultOK)
	s.log.Info(ctx, "booking created", "user_id", userID, "booking_id", created.ID, "hotel_id", created.HotelID)
	return created, nil
}

// List returns the user's bookings, newest first.
func (s *BookingService) List(ctx context.Context, userID string) ([]*models.Booking, error) {
	return s.repomanager.Bookings(s.db).ListByUser(ctx, userID)
}

// Get returns common.ErrorNotFound for unknown ids and for bookings of
// other users alike.
func (s *BookingService) Get(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	if !isBookingID(bookingID) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Bookings(s.db).Get(ctx, userID, bookingID)
}

// Cancel marks the booking cancelled. Cancelling twice is harmless.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	if !isBookingID(bookingID) {
		s.metrics.RecordBooking("cancel", metrics.ResultError)
		return nil, common.ErrorNotFound
	}

	b, err := s.repomanager.Bookings(s.db).UpdateStatus(ctx, userID, bookingID, models.BookingCancelled, s.now())
	if err != nil {
		s.metrics.RecordBooking("cancel", metrics.ResultError)
		return nil, err
	}

	s.metrics.RecordBooking("cancel", metrics.ResultOK)
	s.log.Info(ctx, "booking cancelled", "user_id", userID, "booking_id", bookingID)
	return b, nil
}

// isBookingID reports whether id can name a stored booking; ids are UUIDs.
func isBookingID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
