package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/hotelbook/internal/client/client"
	"github.com/dmitrijs2005/hotelbook/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookings struct {
	list    []*models.Booking
	err     error
	booked  models.BookingRequest
	cancels []string
}

func (f *fakeBookings) Book(_ context.Context, req models.BookingRequest) (*models.Booking, error) {
	f.booked = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Booking{ID: "b1", HotelName: req.HotelName, Status: "confirmed"}, nil
}

func (f *fakeBookings) List(context.Context) ([]*models.Booking, error) { return f.list, f.err }

func (f *fakeBookings) Cancel(_ context.Context, id string) (*models.Booking, error) {
	f.cancels = append(f.cancels, id)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Booking{ID: id, Status: "cancelled"}, nil
}

func TestListBookings(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		a := &App{bookingService: &fakeBookings{}, out: &out}

		require.NoError(t, a.ListBookings(context.Background()))
		assert.Equal(t, "No bookings yet\n", out.String())
	})

	t.Run("rows", func(t *testing.T) {
		var out bytes.Buffer
		fb := &fakeBookings{list: []*models.Booking{{ID: "b1", HotelName: "Grand"}, {ID: "b2", HotelName: "Plaza"}}}
		a := &App{bookingService: fb, out: &out}

		require.NoError(t, a.ListBookings(context.Background()))
		assert.Equal(t, 2, strings.Count(out.String(), "\n"))
		assert.Contains(t, out.String(), "Plaza")
	})

	t.Run("not logged in clears prompt user", func(t *testing.T) {
		a := &App{bookingService: &fakeBookings{err: client.ErrNotLoggedIn}, userName: "x", out: io.Discard}

		require.ErrorIs(t, a.ListBookings(context.Background()), client.ErrNotLoggedIn)
		assert.False(t, a.isLoggedIn())
	})
}

func TestBook_PrefillsGuestFromProfile(t *testing.T) {
	fb := &fakeBookings{}
	fa := &fakeAuth{user: &models.User{Email: "alice@x.com", FirstName: "Alice", LastName: "A", Phone: "1"}}
	var out bytes.Buffer
	a := &App{
		authService:    fa,
		bookingService: fb,
		out:            &out,
		reader:         bufio.NewReader(strings.NewReader("120\n2\n")),
	}

	// price and guests are read from a.reader, the text answers from the stub
	stubInputs(t, nil, "h1", "Grand", "Riga", "2026-07-01", "2026-07-03", "late arrival")

	require.NoError(t, a.Book(context.Background()))

	assert.Equal(t, models.BookingRequest{
		HotelID:         "h1",
		HotelName:       "Grand",
		HotelLocation:   "Riga",
		HotelPrice:      120,
		CheckIn:         "2026-07-01",
		CheckOut:        "2026-07-03",
		Guests:          2,
		FirstName:       "Alice",
		LastName:        "A",
		Email:           "alice@x.com",
		Phone:           "1",
		SpecialRequests: "late arrival",
	}, fb.booked)
	assert.Contains(t, out.String(), "Booking created")
}

func TestBook_RejectsBadDate(t *testing.T) {
	fb := &fakeBookings{}
	a := &App{
		authService:    &fakeAuth{user: &models.User{}},
		bookingService: fb,
		out:            io.Discard,
		reader:         bufio.NewReader(strings.NewReader("120\n")),
	}

	stubInputs(t, nil, "h1", "Grand", "Riga", "tomorrow")

	require.Error(t, a.Book(context.Background()))
	assert.Equal(t, models.BookingRequest{}, fb.booked)
}

func TestCancel(t *testing.T) {
	fb := &fakeBookings{}
	var out bytes.Buffer
	a := &App{bookingService: fb, out: &out}

	require.NoError(t, a.Cancel(context.Background(), "b7"))
	assert.Equal(t, []string{"b7"}, fb.cancels)
	assert.Contains(t, out.String(), "cancelled")
}
