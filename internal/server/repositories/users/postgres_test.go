package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertUserQ = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*password_hash,\s*first_name,\s*last_name,\s*phone\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+created_at,\s*updated_at\s*$`
	selectByEmailQ = `(?s)^SELECT\s+id,\s*email,\s*password_hash,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	selectByIDQ    = `(?s)^SELECT\s+id,\s*email,\s*password_hash,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	updateUserQ    = `(?s)^UPDATE\s+users\s+SET.*COALESCE\(NULLIF\(\$2,\s*''\),\s*first_name\).*WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,.*$`
)

var userCols = []string{"id", "email", "password_hash", "first_name", "last_name", "phone", "created_at", "updated_at"}

func aliceUser() *models.User {
	return &models.User{
		ID: "u-1", Email: "alice@x.com", PasswordHash: "$2a$hash",
		FirstName: "Alice", LastName: "A", Phone: "1",
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(insertUserQ).
		WithArgs("u-1", "alice@x.com", "$2a$hash", "Alice", "A", "1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(ts, ts))

	got, err := repo.Create(context.Background(), aliceUser())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" || !got.CreatedAt.Equal(ts) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUserQ).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), aliceUser())
	if !errors.Is(err, common.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUserQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), aliceUser())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetUserByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := time.Now().UTC()
	mock.ExpectQuery(selectByEmailQ).
		WithArgs("alice@x.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u-1", "alice@x.com", "h", "Alice", "A", "1", ts, ts))

	got, err := repo.GetUserByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail error: %v", err)
	}
	if got.ID != "u-1" || got.PasswordHash != "h" || got.FirstName != "Alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailQ).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetUserByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByIDQ).
		WithArgs("u-1").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByID(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := time.Now().UTC()
	mock.ExpectQuery(updateUserQ).
		WithArgs("u-1", "", "B", "").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u-1", "alice@x.com", "h", "Alice", "B", "1", ts, ts))

	got, err := repo.Update(context.Background(), "u-1", models.ProfileUpdate{LastName: "B"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.FirstName != "Alice" || got.LastName != "B" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(updateUserQ).
		WithArgs("nope", "X", "", "").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.Update(context.Background(), "nope", models.ProfileUpdate{FirstName: "X"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
