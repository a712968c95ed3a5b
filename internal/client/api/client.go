// Package api is a client for the movieapi HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/netx"
)

// Client keeps the access token of the last successful login and sends it
// on gated calls. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(t string) {
	c.mu.Lock()
	c.token = t
	c.mu.Unlock()
}

func (c *Client) Register(ctx context.Context, email, name, password string) (*User, error) {
	body := map[string]string{"email": email, "name": name, "password": password}

	var u User
	if err := c.do(ctx, http.MethodPost, "/api/register", false, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login stores the returned token for later gated calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", false, body, &res); err != nil {
		return err
	}
	c.setToken(res.Token)
	return nil
}

// Logout tells the server and forgets the token even if the call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.setToken("")
	return c.do(ctx, http.MethodPost, "/api/logout", true, nil, nil)
}

func (c *Client) UserInfo(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/user-info", true, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var list []User
	if err := c.do(ctx, http.MethodGet, "/api/users", true, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/api/change-password", true, body, nil)
}

func (c *Client) Movies(ctx context.Context) ([]Movie, error) {
	var list []Movie
	if err := c.do(ctx, http.MethodGet, "/api/movies", false, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) MovieTypes(ctx context.Context) ([]MovieType, error) {
	var list []MovieType
	if err := c.do(ctx, http.MethodGet, "/api/movie-types", false, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateMovieType(ctx context.Context, name string) (*MovieType, error) {
	var t MovieType
	if err := c.do(ctx, http.MethodPost, "/api/movie-types", true, map[string]string{"name": name}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UploadPoster asks the server for a presigned URL for movieID and PUTs
// data there. It returns the URL the poster is served from.
func (c *Client) UploadPoster(ctx context.Context, movieID int64, contentType string, data []byte) (string, error) {
	var up PosterUpload
	path := fmt.Sprintf("/api/movies/%d/poster", movieID)
	if err := c.do(ctx, http.MethodPost, path, true, map[string]string{"contentType": contentType}, &up); err != nil {
		return "", err
	}

	if err := netx.UploadToPresignedURL(ctx, c.http, up.UploadURL, contentType, data); err != nil {
		return "", err
	}
	return up.PosterURL, nil
}

// Health returns nil when the server and its database are up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", false, nil, nil)
}

// do sends body as JSON and decodes the "data" field of a 2xx answer into
// out. Gated calls without a token fail with ErrNotLoggedIn before any I/O.
func (c *Client) do(ctx context.Context, method, path string, gated bool, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if gated {
		token := c.Token()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error decoding response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
