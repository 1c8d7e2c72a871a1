package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/server/dbtest"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepository(t *testing.T) {
	db := dbtest.NewSQLite(t)
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"u1", "u2"} {
		_, err := db.Exec(`INSERT INTO users (id, email, password_hash, first_name, last_name, phone, created_at, updated_at)
			VALUES (?, ?, 'h', 'F', 'L', 'P', ?, ?)`, id, id+"@x.com", now, now)
		require.NoError(t, err)
	}

	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, testBooking("b1", now))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testBooking("b2", now.Add(time.Minute)))
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b2", list[0].ID)
	assert.Equal(t, "b1", list[1].ID)
	assert.Equal(t, 200.0, list[0].TotalPrice)
	assert.True(t, list[0].CheckIn.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))

	other, err := repo.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = repo.Get(ctx, "u2", "b1")
	require.ErrorIs(t, err, common.ErrorNotFound)

	cancelled, err := repo.UpdateStatus(ctx, "u1", "b1", models.BookingCancelled, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.True(t, cancelled.UpdatedAt.After(cancelled.CreatedAt))

	_, err = repo.UpdateStatus(ctx, "u2", "b2", models.BookingCancelled, now)
	require.ErrorIs(t, err, common.ErrorNotFound)

	got, err := repo.Get(ctx, "u1", "b2")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)
}
