package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/metrics"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/repomanager"
)

// SessionSweeper periodically deletes expired sessions. Expired rows are
// already rejected by VerifySession; sweeping only reclaims space.
type SessionSweeper struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	interval    time.Duration
	log         logging.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewSessionSweeper(db *sql.DB, rm repomanager.RepositoryManager, interval time.Duration, log logging.Logger, m *metrics.Metrics) *SessionSweeper {
	return &SessionSweeper{
		db:          db,
		repomanager: rm,
		interval:    interval,
		log:         log.With("module", "sweeper"),
		metrics:     m,
		now:         time.Now,
	}
}

// Sweep removes the sessions that are expired now.
func (s *SessionSweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Sessions(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	s.metrics.RecordSwept(n)
	return n, nil
}

// Run sweeps every interval until ctx is cancelled. A non-positive
// interval disables the sweeper. Failed sweeps are logged and retried on
// the next tick.
func (s *SessionSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info(ctx, "session sweeper disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				s.log.Error(ctx, "session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				s.log.Info(ctx, "expired sessions removed", "count", n)
			}
		}
	}
}
