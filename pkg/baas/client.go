// Package baas is a small Go SDK for the hosted Backend-as-a-Service the blog
// runs on: the auth API under /auth/v1 and the table API under /rest/v1.
package baas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inkpress/pkg/logger"
)

const (
	authPath = "/auth/v1"
	restPath = "/rest/v1"

	defaultTimeout = 30 * time.Second
)

type Client struct {
	baseURL        string
	anonKey        string
	httpClient     *http.Client
	log            *logger.Logger
	persistSession bool
	auth           *AuthClient
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithoutSessionPersistence stops the client from remembering the session
// returned by sign-in. Servers acting for many users use this and attach each
// caller's token to the request context instead.
func WithoutSessionPersistence() Option {
	return func(c *Client) {
		c.persistSession = false
	}
}

func New(baseURL, anonKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q", ErrInvalidConfig, baseURL)
	}
	if strings.TrimSpace(anonKey) == "" {
		return nil, fmt.Errorf("%w: anon key is required", ErrInvalidConfig)
	}

	c := &Client{
		baseURL:        baseURL,
		anonKey:        anonKey,
		httpClient:     &http.Client{Timeout: defaultTimeout},
		log:            logger.NewNop(),
		persistSession: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.auth = &AuthClient{client: c}

	return c, nil
}

func (c *Client) Auth() *AuthClient {
	return c.auth
}

// From starts a query against a table.
func (c *Client) From(table string) *QueryBuilder {
	return newQueryBuilder(c, table)
}

type ctxKey struct{}

// ContextWithAccessToken attaches a user's access token to ctx. Requests made
// with that context authenticate as that user regardless of the stored session.
func ContextWithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ctxKey{}).(string)
	return token, ok && token != ""
}

// userToken returns the token identifying the caller, or "" when the request
// would only carry the anon key.
func (c *Client) userToken(ctx context.Context) string {
	if token, ok := AccessTokenFromContext(ctx); ok {
		return token
	}
	if s := c.auth.Session(); s != nil {
		return s.AccessToken
	}
	return ""
}

type request struct {
	method  string
	path    string
	query   url.Values
	body    interface{}
	headers map[string]string
}

// do sends the request and returns the response for 2xx statuses. Any other
// status is decoded into an *APIError and the body is closed.
func (c *Client) do(ctx context.Context, r request) (*http.Response, error) {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	token := c.userToken(ctx)
	if token == "" {
		token = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	c.log.Debug("baas %s %s", r.method, r.path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := decodeAPIError(resp)
		c.log.Debug("baas %s %s failed: %v", r.method, r.path, apiErr)
		return nil, apiErr
	}

	return resp, nil
}

// decodeJSON reads a successful response into dest and closes the body. Empty
// bodies leave dest untouched.
func decodeJSON(resp *http.Response, dest interface{}) error {
	defer resp.Body.Close()

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
