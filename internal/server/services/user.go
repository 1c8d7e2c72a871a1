// Package services contains server-side business logic. UserService owns
// the account and session lifecycle; every other caller only needs its
// VerifySession contract.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/auth"
	"github.com/dmitrijs2005/hotelbook/internal/server/config"
	"github.com/dmitrijs2005/hotelbook/internal/server/metrics"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// RegisterInput is the payload of a registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// UserService provides authentication-related operations:
// - Register / Login: create or check credentials and open a session
// - Logout: revoke a session
// - VerifySession: resolve a bearer token to a user id
// - GetUser / UpdateProfile: token-scoped profile access
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	sessionTTL  time.Duration
	log         logging.Logger
	metrics     *metrics.Metrics

	now          func() time.Time
	newToken     func() (string, error)
	newID        func() string
	retryBackoff func() retry.Backoff

	// dummyDigest is compared against when the email is unknown so that
	// both login failures cost one bcrypt comparison.
	dummyDigest string
}

// NewUserService constructs a UserService using repositories and server config.
// m may be nil.
func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, log logging.Logger, m *metrics.Metrics) *UserService {
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	dummy, _ := hasher.Hash("hotelbook-unknown-user")

	return &UserService{
		db:          db,
		repomanager: rm,
		hasher:      hasher,
		sessionTTL:  cfg.SessionTTL,
		log:         log.With("module", "users"),
		metrics:     m,
		now:         time.Now,
		newToken:    auth.GenerateSessionToken,
		newID:       uuid.NewString,
		retryBackoff: func() retry.Backoff {
			return retry.WithMaxRetries(3, retry.NewConstant(10*time.Millisecond))
		},
		dummyDigest: dummy,
	}
}

// Register creates the account and its first session in one transaction
// and returns the plaintext bearer token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (string, *models.User, error) {
	in.Email = common.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Email == "" || strings.TrimSpace(in.Password) == "" ||
		in.FirstName == "" || in.LastName == "" || in.Phone == "" {
		s.metrics.RecordAuth("register", metrics.ResultInvalid)
		return "", nil, fmt.Errorf("%w: all fields are required", common.ErrorValidation)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.metrics.RecordAuth("register", metrics.ResultInvalid)
		return "", nil, err
	}

	var (
		token string
		user  *models.User
	)

	// a token collision aborts the transaction, so the whole unit is retried
	err = s.withCollisionRetry(ctx, func(ctx context.Context) error {
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			created, err := s.repomanager.Users(tx).Create(ctx, &models.User{
				ID:           s.newID(),
				Email:        in.Email,
				PasswordHash: digest,
				FirstName:    in.FirstName,
				LastName:     in.LastName,
				Phone:        in.Phone,
			})
			if err != nil {
				return err
			}

			t, err := s.createSession(ctx, tx, created.ID)
			if err != nil {
				return err
			}

			token, user = t, created
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			s.metrics.RecordAuth("register", metrics.ResultInvalid)
			return "", nil, err
		}
		s.metrics.RecordAuth("register", metrics.ResultError)
		return "", nil, fmt.Errorf("register: %w", err)
	}

	s.metrics.RecordAuth("register", metrics.ResultOK)
	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return token, user, nil
}

// Login checks the credentials and opens a new session. Unknown emails and
// wrong passwords both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = common.NormalizeEmail(email)
	if email == "" || password == "" {
		s.metrics.RecordAuth("login", metrics.ResultInvalid)
		return "", nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyDigest)
			s.metrics.RecordAuth("login", metrics.ResultUnauthorized)
			return "", nil, common.ErrInvalidCredentials
		}
		s.metrics.RecordAuth("login", metrics.ResultError)
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.metrics.RecordAuth("login", metrics.ResultUnauthorized)
		return "", nil, common.ErrInvalidCredentials
	}

	var token string
	err = s.withCollisionRetry(ctx, func(ctx context.Context) error {
		t, err := s.createSession(ctx, s.db, user.ID)
		token = t
		return err
	})
	if err != nil {
		s.metrics.RecordAuth("login", metrics.ResultError)
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.metrics.RecordAuth("login", metrics.ResultOK)
	s.log.Debug(ctx, "session opened", "user_id", user.ID)
	return token, user, nil
}

// Logout revokes the session of token. Unknown or empty tokens are not an
// error; only storage failures are reported.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		s.metrics.RecordAuth("logout", metrics.ResultOK)
		return nil
	}

	if err := s.repomanager.Sessions(s.db).Delete(ctx, auth.HashSessionToken(token)); err != nil {
		s.metrics.RecordAuth("logout", metrics.ResultError)
		return fmt.Errorf("logout: %w", err)
	}

	s.metrics.RecordAuth("logout", metrics.ResultOK)
	return nil
}

// VerifySession resolves token to the owning user id. Empty, unknown and
// expired tokens yield common.ErrorUnauthorized.
func (s *UserService) VerifySession(ctx context.Context, token string) (string, error) {
	if token == "" {
		s.metrics.RecordAuth("verify", metrics.ResultUnauthorized)
		return "", common.ErrorUnauthorized
	}

	sess, err := s.repomanager.Sessions(s.db).Find(ctx, auth.HashSessionToken(token))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.metrics.RecordAuth("verify", metrics.ResultUnauthorized)
			return "", common.ErrorUnauthorized
		}
		s.metrics.RecordAuth("verify", metrics.ResultError)
		return "", fmt.Errorf("verify session: %w", err)
	}

	if !sess.ValidAt(s.now()) {
		s.metrics.RecordAuth("verify", metrics.ResultUnauthorized)
		return "", common.ErrorUnauthorized
	}

	s.metrics.RecordAuth("verify", metrics.ResultOK)
	return sess.UserID, nil
}

// GetUser returns the account behind token. A valid session whose user row
// is gone yields common.ErrorNotFound.
func (s *UserService) GetUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.VerifySession(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Users(s.db).GetUserByID(ctx, userID)
}

// UpdateProfile applies the non-empty fields of upd to the account behind
// token. Email and password cannot be changed here.
func (s *UserService) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error) {
	userID, err := s.VerifySession(ctx, token)
	if err != nil {
		return nil, err
	}

	upd.FirstName = strings.TrimSpace(upd.FirstName)
	upd.LastName = strings.TrimSpace(upd.LastName)
	upd.Phone = strings.TrimSpace(upd.Phone)

	users := s.repomanager.Users(s.db)
	if upd.IsEmpty() {
		return users.GetUserByID(ctx, userID)
	}

	user, err := users.Update(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "profile updated", "user_id", userID)
	return user, nil
}

// --- helpers below ---

func (s *UserService) createSession(ctx context.Context, db dbx.DBTX, userID string) (string, error) {
	token, err := s.newToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	now := s.now()
	err = s.repomanager.Sessions(db).Create(ctx, &models.Session{
		TokenHash: auth.HashSessionToken(token),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *UserService) withCollisionRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, s.retryBackoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, common.ErrTokenCollision) {
			s.log.Warn(ctx, "session token collision, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
