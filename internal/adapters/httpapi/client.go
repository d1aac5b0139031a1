// Package httpapi is the JSON client for the employees API.
//
// Every request carries the default content type and, when the token store
// has one, a bearer token. Failures come back as *domain.APIError:
// with a status when the server answered, without one when it did not. The
// client never retries; retry policy belongs to the caller.
package httpapi

import (
	"bytes"
	"errors"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/rs/zerolog"

	"github.com/csg33k/employee-directory/internal/domain"
	"github.com/csg33k/employee-directory/internal/ports"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultContentType = "application/json"

	MessageAPIError     = "API Error"
	MessageServerError  = "Server error"
	MessageNetworkError = "Network error"
	MessageInvalidBody  = "Invalid response body"
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	ContentType string

	// Tokens is consulted before every request.
	Tokens ports.TokenStore

	// OnUnauthorized runs once for every 401 response.
	OnUnauthorized func(ctx context.Context)

	Logger zerolog.Logger

	// HTTP overrides the underlying client; its Timeout is left untouched.
	HTTP *http.Client
}

type Client struct {
	baseURL        string
	contentType    string
	http           *http.Client
	tokens         ports.TokenStore
	onUnauthorized func(ctx context.Context)
	log            zerolog.Logger
}

var _ ports.APIClient = (*Client)(nil)

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ContentType == "" {
		opts.ContentType = DefaultContentType
	}
	hc := opts.HTTP
	if hc == nil {
		hc = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}
	return &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		contentType:    opts.ContentType,
		http:           hc,
		tokens:         opts.Tokens,
		onUnauthorized: opts.OnUnauthorized,
		log:            opts.Logger,
	}
}

// BaseURL reports the configured API root; "" means unconfigured.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues a GET and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Do sends body (JSON-encoded when non-nil) and decodes a successful JSON
// response into out (skipped when out is nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.networkError(req, err)
	}
	raw, err := readAndClose(resp)
	if err != nil {
		return c.networkError(req, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(ctx, req, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := decodeJSON(raw, out); err != nil {
		status := resp.StatusCode
		c.log.Warn().Err(err).Str("url", req.URL.String()).Str("body", snippet(raw, 300)).Msg(MessageInvalidBody)
		return &domain.APIError{Status: &status, Message: MessageInvalidBody, Data: string(raw)}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("httpapi: encode request body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), rdr)
	if err != nil {
		return nil, fmt.Errorf("httpapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", c.contentType)
	req.Header.Set("Accept", c.contentType)
	req.Header.Set("Accept-Encoding", "br, gzip")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.log.Debug().Err(err).Msg("token lookup failed; sending request without credentials")
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) url(path string) string {
	if path == "" {
		return c.baseURL
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) networkError(req *http.Request, err error) *domain.APIError {
	apiErr := &domain.APIError{Message: MessageNetworkError}
	c.log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg(apiErr.Message)
	return apiErr
}

// responseError normalizes a non-2xx response and applies the per-status
// side effects: 401 runs OnUnauthorized, 403 and 500 are logged.
func (c *Client) responseError(ctx context.Context, req *http.Request, status int, raw []byte) *domain.APIError {
	var data any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			data = string(raw)
		}
	}
	message := messageOf(data)

	switch status {
	case http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
	case http.StatusForbidden, http.StatusInternalServerError:
		logged := message
		if logged == "" {
			logged = MessageServerError
		}
		c.log.Error().Int("status", status).Str("method", req.Method).Str("url", req.URL.String()).Msg(logged)
	}

	if message == "" {
		message = MessageAPIError
	}
	return &domain.APIError{Status: &status, Message: message, Data: data}
}

func messageOf(data any) string {
	m, ok := data.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m["message"].(string)
	return strings.TrimSpace(s)
}

// readAndClose drains the body, decoding br and gzip encodings. The full read
// lets the transport reuse the connection.
func readAndClose(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	var r io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		r = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("httpapi: gzip body: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(r)
}

// decodeJSON decodes exactly one JSON value. Numbers landing in interface
// values stay json.Number so large integer ids survive untouched.
func decodeJSON(raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

// StaticToken is a TokenStore holding a fixed token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }
