package backend

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds every backend round trip when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// Client wraps the delivery REST API. Unauthenticated calls (login, register) live
// here; everything else goes through a SessionClient obtained from ForSession.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	toggleMethod string
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the transport used for backend calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithStoreToggleMethod selects the HTTP verb used for /store/open and /store/close.
func WithStoreToggleMethod(method string) Option {
	return func(c *Client) {
		method = strings.ToUpper(strings.TrimSpace(method))
		if method == http.MethodPut || method == http.MethodPost {
			c.toggleMethod = method
		}
	}
}

// NewClient instantiates the backend client with sane defaults.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("backend base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend base URL %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		toggleMethod: http.MethodPut,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// StoreToggleMethod reports the verb configured for store open/close commands.
func (c *Client) StoreToggleMethod() string {
	return c.toggleMethod
}

// ForSession binds the bearer token of a console session to the client.
func (c *Client) ForSession(token string) *SessionClient {
	return &SessionClient{client: c, token: strings.TrimSpace(token)}
}

// SessionClient performs authenticated calls on behalf of one console session.
type SessionClient struct {
	client *Client
	token  string
}

type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, payload any) (request, error) {
	req := request{method: method, path: path}
	if payload == nil {
		return req, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode %s %s payload: %w", method, path, err)
	}
	req.body = bytes.NewReader(raw)
	req.contentType = "application/json"
	return req, nil
}

// do executes the request and decodes a JSON body into out when out is non-nil.
// Any non-2xx answer becomes an *Error carrying the raw response body.
func (c *Client) do(ctx context.Context, r request, out any) error {
	if c == nil || c.httpClient == nil {
		return errors.New("backend client not configured")
	}
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL.String()+r.path, r.body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call backend %s %s: %w", r.method, r.path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return newError(r.method, r.path, res)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.method, r.path, err)
	}
	return nil
}

func (s *SessionClient) do(ctx context.Context, r request, out any) error {
	if s == nil || s.client == nil {
		return errors.New("backend session client not configured")
	}
	r.token = s.token
	return s.client.do(ctx, r, out)
}
