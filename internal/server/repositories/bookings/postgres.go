package bookings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository implements booking storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (id, user_id, hotel_id, hotel_name, hotel_location, hotel_price,
			check_in, check_out, guests, first_name, last_name, email, phone,
			special_requests, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.HotelID, b.HotelName, b.HotelLocation, b.HotelPrice,
		b.CheckIn, b.CheckOut, b.Guests, b.FirstName, b.LastName, b.Email, b.Phone,
		b.SpecialRequests, b.TotalPrice, string(b.Status), b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	b.UpdatedAt = b.CreatedAt
	return b, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
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

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE id = $1 AND user_id = $2`

	return scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, userID, id string, status models.BookingStatus, at time.Time) (*models.Booking, error) {
	query := `UPDATE bookings SET status = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
		RETURNING ` + bookingColumns

	return scanOne(r.db.QueryRowContext(ctx, query, id, userID, string(status), at))
}

func scanOne(row *sql.Row) (*models.Booking, error) {
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		// id is not a valid uuid, so no such booking
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}
