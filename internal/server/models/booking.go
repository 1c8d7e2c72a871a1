package models

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a hotel reservation owned by a user. The hotel fields are a
// snapshot taken when the booking was made.
type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	HotelID         string        `json:"hotelId"`
	HotelName       string        `json:"hotelName"`
	HotelLocation   string        `json:"hotelLocation"`
	HotelPrice      float64       `json:"hotelPrice"`
	CheckIn         time.Time     `json:"checkIn"`
	CheckOut        time.Time     `json:"checkOut"`
	Guests          int           `json:"guests"`
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	SpecialRequests string        `json:"specialRequests"`
	TotalPrice      float64       `json:"totalPrice"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
