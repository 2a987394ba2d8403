package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrUnavailable = errors.New("server unavailable")

// Client sends API requests with the current bearer token.
type Client struct {
	http     *http.Client
	tokens   TokenSource
	baseURL  string
	pingPath string
}

// NewClient returns a Client for the API at baseURL. tokens may be nil.
func NewClient(baseURL, pingPath string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		baseURL:  strings.TrimRight(baseURL, "/") + "/",
		pingPath: strings.TrimLeft(pingPath, "/"),
	}
}

// Do sends req, adding an Authorization header unless the caller set one.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.tokens != nil && req.Header.Get("Authorization") == "" {
		token, err := c.tokens.Token(req.Context())
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return c.http.Do(req)
}

// Ping checks that the server answers its liveness endpoint with a 2xx.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.pingPath, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}
	return nil
}
