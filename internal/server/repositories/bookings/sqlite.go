package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
)

// SQLiteRepository implements booking storage on the embedded backend.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	created := b.CreatedAt.UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.HotelID, b.HotelName, b.HotelLocation, b.HotelPrice,
		b.CheckIn.UTC(), b.CheckOut.UTC(), b.Guests, b.FirstName, b.LastName, b.Email, b.Phone,
		b.SpecialRequests, b.TotalPrice, string(b.Status), created, created)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	b.UpdatedAt = b.CreatedAt
	return b, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, userID, id string) (*models.Booking, error) {
	return scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ? AND user_id = ?`, id, userID))
}

func (r *SQLiteRepository) UpdateStatus(ctx context.Context, userID, id string, status models.BookingStatus, at time.Time) (*models.Booking, error) {
	return scanOne(r.db.QueryRowContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND user_id = ? RETURNING `+bookingColumns,
		string(status), at.UTC(), id, userID))
}
