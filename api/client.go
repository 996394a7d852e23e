// Package api is a client for the playback, view and season endpoints of the provider.
//
// Every endpoint answers with an envelope {code, message, data|result}; a non-zero
// code is reported as *Error, distinct from transport failures.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/util"
)

// Error is an application-level failure reported inside a successful HTTP response.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Result  json.RawMessage `json:"result"`
}

func (e *envelope) payload() json.RawMessage {
	if len(e.Data) > 0 && string(e.Data) != "null" {
		return e.Data
	}
	return e.Result
}

// Client talks to the provider API over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	session string
}

// New creates a client for baseURL, for example "https://api.bilibili.com".
func New(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// WithSession returns a copy of the client that sends the given session cookie.
// Login- and subscription-gated qualities are only granted to authenticated requests.
func (c *Client) WithSession(session string) *Client {
	clone := *c
	clone.session = session
	return &clone
}

// Authenticated reports whether a session cookie is attached.
func (c *Client) Authenticated() bool {
	return c.session != ""
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Referer", constant.Referer)
	req.Header.Set("Accept", "application/json")
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "SESSDATA", Value: c.session})
	}

	log.WithField("url", endpoint).Debug("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}

	if env.Code != 0 {
		return &Error{Code: env.Code, Message: env.Message}
	}

	payload := env.payload()
	if len(payload) == 0 {
		return fmt.Errorf("parse %s response: empty payload", path)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("parse %s payload: %w", path, err)
	}
	return nil
}
