package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/client/client"
	"github.com/dmitrijs2005/hotelbook/internal/client/config"
	"github.com/dmitrijs2005/hotelbook/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config         *config.Config
	db             *sql.DB
	authService    services.AuthService
	bookingService services.BookingService
	userName       string

	modeMu sync.Mutex
	Mode   Mode

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.StatePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:         c,
		db:             db,
		authService:    services.NewAuthService(apiClient, db),
		bookingService: services.NewBookingService(apiClient, db),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

// Run resumes a saved session if there is one and serves the REPL until
// the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to hotelbook CLI (type 'help' for commands)")

	if email, err := a.authService.SessionEmail(ctx); err == nil {
		a.userName = email
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	a.modeMu.Lock()
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	a.modeMu.Unlock()
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and switches
// Mode accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil && errors.Is(err, client.ErrUnavailable) {
				a.setMode(ModeOffline)
			} else if err == nil {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// describe turns a command error into a message for the user.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "Please log in first"
	case errors.Is(err, client.ErrUnauthorized):
		return "Not authorized, please log in again"
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return err.Error()
	}
}
