package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	bookingsrepo "github.com/dmitrijs2005/hotelbook/internal/server/repositories/bookings"
	sessionsrepo "github.com/dmitrijs2005/hotelbook/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/hotelbook/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	createErr error
	getOut    *models.User
	getErr    error
	byIDErr   error
	created   []*models.User
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetUserByID(context.Context, string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Update(context.Context, string, models.ProfileUpdate) (*models.User, error) {
	return f.getOut, f.byIDErr
}

type fakeSessionsRepo struct {
	mu sync.Mutex

	// createErrs are returned by successive Create calls, then nil.
	createErrs []error
	created    []*models.Session

	findOut *models.Session
	findErr error
	delErr  error

	expiredN   int64
	expiredErr error
	sweeps     int
}

func (f *fakeSessionsRepo) Create(_ context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSessionsRepo) Find(context.Context, string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.findOut == nil {
		return nil, common.ErrorNotFound
	}
	return f.findOut, nil
}

func (f *fakeSessionsRepo) Delete(context.Context, string) error { return f.delErr }

func (f *fakeSessionsRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	return f.expiredN, f.expiredErr
}

func (f *fakeSessionsRepo) sweepCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sweeps
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.u }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessionsrepo.Repository    { return m.s }
func (m *fakeRepoManager) Bookings(dbx.DBTX) bookingsrepo.Repository    { return nil }
