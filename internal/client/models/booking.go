package models

import (
	"fmt"
	"time"
)

type Booking struct {
	ID              string    `json:"id"`
	HotelID         string    `json:"hotelId"`
	HotelName       string    `json:"hotelName"`
	HotelLocation   string    `json:"hotelLocation"`
	HotelPrice      float64   `json:"hotelPrice"`
	CheckIn         time.Time `json:"checkIn"`
	CheckOut        time.Time `json:"checkOut"`
	Guests          int       `json:"guests"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	SpecialRequests string    `json:"specialRequests"`
	TotalPrice      float64   `json:"totalPrice"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Summary renders the booking as a single line.
func (b *Booking) Summary() string {
	return fmt.Sprintf("%s  %-10s %s (%s)  %s -> %s  guests=%d  total=%.2f",
		b.ID, b.Status, b.HotelName, b.HotelLocation,
		b.CheckIn.Format(time.DateOnly), b.CheckOut.Format(time.DateOnly),
		b.Guests, b.TotalPrice)
}

// BookingRequest is the payload of a new booking. Dates use "2006-01-02".
type BookingRequest struct {
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
