package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/dmitrijs2005/hotelbook/internal/server/services"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (r registerRequest) input() services.RegisterInput {
	return services.RegisterInput{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateProfileRequest lists the only mutable fields. Anything else in the
// body, email and password included, is ignored.
type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (r updateProfileRequest) update() models.ProfileUpdate {
	return models.ProfileUpdate{FirstName: r.FirstName, LastName: r.LastName, Phone: r.Phone}
}

type authResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type userResponse struct {
	User models.PublicUser `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type bookingRequest struct {
	HotelID         string  `json:"hotelId"`
	HotelName       string  `json:"hotelName"`
	HotelLocation   string  `json:"hotelLocation"`
	HotelPrice      float64 `json:"hotelPrice"`
	CheckIn         string  `json:"checkIn"`
	CheckOut        string  `json:"checkOut"`
	Guests          int     `json:"guests"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	SpecialRequests string  `json:"specialRequests"`
}

func (r bookingRequest) input() (services.BookingInput, error) {
	checkIn, err := parseDate("checkIn", r.CheckIn)
	if err != nil {
		return services.BookingInput{}, err
	}
	checkOut, err := parseDate("checkOut", r.CheckOut)
	if err != nil {
		return services.BookingInput{}, err
	}

	return services.BookingInput{
		HotelID:         r.HotelID,
		HotelName:       r.HotelName,
		HotelLocation:   r.HotelLocation,
		HotelPrice:      r.HotelPrice,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          r.Guests,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// parseDate accepts "2006-01-02" and RFC 3339 timestamps. An empty value
// yields the zero time, which booking validation reports as missing.
func parseDate(field, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be a date (YYYY-MM-DD)", common.ErrorValidation, field)
}

type bookingResponse struct {
	Booking *models.Booking `json:"booking"`
	Message string          `json:"message,omitempty"`
}

type bookingsResponse struct {
	Bookings []*models.Booking `json:"bookings"`
}
