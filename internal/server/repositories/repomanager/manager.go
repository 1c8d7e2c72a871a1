// Package repomanager vends storage-backend specific repositories bound to a
// dbx.DBTX, so that services can run several repositories inside one
// transaction, and applies the backend's schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Bookings(db dbx.DBTX) bookings.Repository
}
