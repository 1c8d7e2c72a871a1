package httpapi

import (
	"net/http"
	"testing"

	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/dbtest"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hotelbook/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAPI_EndToEnd drives the real services over a SQLite database.
func TestAPI_EndToEnd(t *testing.T) {
	db := dbtest.NewSQLite(t)
	rm := repomanager.NewSQLiteRepositoryManager()
	cfg := testConfig()
	users := services.NewUserService(db, rm, cfg, logging.Nop{}, nil)
	bookings := services.NewBookingService(db, rm, logging.Nop{}, nil)

	r, err := NewRouter(cfg, users, bookings, logging.Nop{}, nil)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/api/auth/register", "",
		`{"email":" Alice@X.com ","password":"pw1","firstName":"Alice","lastName":"A","phone":"1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	t1 := decode(t, w)["token"].(string)

	w = do(r, http.MethodPost, "/api/auth/register", "",
		`{"email":"alice@x.com","password":"pw2","firstName":"B","lastName":"B","phone":"2"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", "", `{"email":"alice@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	t2 := decode(t, w)["token"].(string)
	assert.NotEqual(t, t1, t2)

	w = do(r, http.MethodPost, "/api/bookings", t2,
		`{"hotelId":"h1","hotelName":"Grand","hotelLocation":"Riga","hotelPrice":80,"checkIn":"2026-07-01","checkOut":"2026-07-04","guests":2,"firstName":"Alice","lastName":"A","email":"alice@x.com","phone":"1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	booking := decode(t, w)["booking"].(map[string]any)
	assert.Equal(t, 240.0, booking["totalPrice"])
	id := booking["id"].(string)

	w = do(r, http.MethodPost, "/api/auth/logout", t1, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/auth/user", t1, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/bookings/"+id, t1, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPut, "/api/auth/user", t2, `{"phone":"555"}`)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "555", user["phone"])
	assert.Equal(t, "Alice", user["firstName"])
	assert.Equal(t, "alice@x.com", user["email"])

	w = do(r, http.MethodDelete, "/api/bookings/"+id, t2, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decode(t, w)["booking"].(map[string]any)["status"])

	w = do(r, http.MethodGet, "/api/bookings", t2, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["bookings"], 1)
}
