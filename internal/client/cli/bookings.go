package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/client/client"
	"github.com/dmitrijs2005/hotelbook/internal/client/models"
)

func (a *App) ListBookings(ctx context.Context) error {
	list, err := a.bookingService.List(ctx)
	if err != nil {
		a.forgetOnAuthError(err)
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No bookings yet")
		return nil
	}
	for _, b := range list {
		fmt.Fprintln(a.out, b.Summary())
	}
	return nil
}

// Book prompts for a stay and makes the booking. Guest contact details
// default to the logged-in user's profile.
func (a *App) Book(ctx context.Context) error {
	user, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.forgetOnAuthError(err)
		return err
	}

	req := models.BookingRequest{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	}

	if req.HotelID, err = getSimpleText(a.reader, "Hotel id", a.out); err != nil {
		return err
	}
	if req.HotelName, err = getSimpleText(a.reader, "Hotel name", a.out); err != nil {
		return err
	}
	if req.HotelLocation, err = getSimpleText(a.reader, "Hotel location", a.out); err != nil {
		return err
	}
	if req.HotelPrice, err = GetAmount(a.reader, "Price per night", a.out); err != nil {
		return err
	}
	if req.CheckIn, err = a.getDate("Check-in date (YYYY-MM-DD)"); err != nil {
		return err
	}
	if req.CheckOut, err = a.getDate("Check-out date (YYYY-MM-DD)"); err != nil {
		return err
	}
	if req.Guests, err = GetInt(a.reader, "Guests", 1, a.out); err != nil {
		return err
	}
	if req.SpecialRequests, err = getSimpleText(a.reader, "Special requests", a.out); err != nil {
		return err
	}

	b, err := a.bookingService.Book(ctx, req)
	if err != nil {
		a.forgetOnAuthError(err)
		return err
	}

	fmt.Fprintf(a.out, "Booking created: %s\n", b.Summary())
	return nil
}

func (a *App) Cancel(ctx context.Context, bookingID string) error {
	b, err := a.bookingService.Cancel(ctx, bookingID)
	if err != nil {
		a.forgetOnAuthError(err)
		return err
	}

	fmt.Fprintf(a.out, "Booking cancelled: %s\n", b.Summary())
	return nil
}

func (a *App) getDate(prompt string) (string, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "", fmt.Errorf("%q is not a date", s)
	}
	return s, nil
}

// forgetOnAuthError drops the prompt's user once the server has rejected
// the session; the services already cleared the stored token.
func (a *App) forgetOnAuthError(err error) {
	if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrNotLoggedIn) {
		a.userName = ""
	}
}
