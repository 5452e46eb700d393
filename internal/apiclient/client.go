// Package apiclient is the shared request layer for the marketplace API. Every
// call carries the persisted bearer token, and any 401 answer invalidates the
// session before the error is returned.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Credentials is the client's view of the session: where the bearer token
// comes from and who to tell when the API rejects it.
type Credentials interface {
	Token() (string, bool)
	Invalidate()
}

// Client calls the marketplace API at a single base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      Credentials
}

// New creates a Client. creds may be nil for purely anonymous use.
func New(baseURL string, creds Credentials, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// send attaches the bearer token, performs req and decodes a 2xx body into
// out (when out is non-nil). Non-2xx answers become *APIError.
func (c *Client) send(req *http.Request, out interface{}) error {
	if c.creds != nil {
		if token, ok := c.creds.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s %s response: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.creds != nil {
		log.Printf("%s %s answered 401, invalidating session", req.Method, req.URL.Path)
		c.creds.Invalidate()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp.StatusCode),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
