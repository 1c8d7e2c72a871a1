package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/client/models"
	"github.com/dmitrijs2005/hotelbook/internal/common"
)

// HTTPClient implements Client over the JSON HTTP API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type userResponse struct {
	User *models.User `json:"user"`
}

type bookingResponse struct {
	Booking *models.Booking `json:"booking"`
}

type bookingsResponse struct {
	Bookings []*models.Booking `json:"bookings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", "", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	req := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

func (c *HTTPClient) User(ctx context.Context, token string) (*models.User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/user", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodPut, "/api/auth/user", token, upd, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*models.Booking, error) {
	var resp bookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/bookings", token, req, &resp); err != nil {
		return nil, err
	}
	return resp.Booking, nil
}

func (c *HTTPClient) ListBookings(ctx context.Context, token string) ([]*models.Booking, error) {
	var resp bookingsResponse
	if err := c.do(ctx, http.MethodGet, "/api/bookings", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bookings, nil
}

func (c *HTTPClient) CancelBooking(ctx context.Context, token, bookingID string) (*models.Booking, error) {
	var resp bookingResponse
	path := "/api/bookings/" + url.PathEscape(bookingID)
	if err := c.do(ctx, http.MethodDelete, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Booking, nil
}

// do sends body as JSON and decodes a 2xx response into out when out is
// non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapStatus(resp *http.Response) error {
	var e errorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)
	if e.Error == "" {
		e.Error = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, e.Error)
	case resp.StatusCode >= 500 && resp.StatusCode != http.StatusInternalServerError:
		// gateways and proxies in front of the server
		return fmt.Errorf("%w: %s", ErrUnavailable, e.Error)
	default:
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}
}
