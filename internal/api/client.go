package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"coachboard/internal/metrics"
	"coachboard/internal/middleware"
)

const (
	apiPrefix      = "/api"
	defaultTimeout = 30 * time.Second
)

// Client is a typed client for the coaching backend. It holds no state
// between calls beyond its configuration; the session credential lives in
// the HTTP client's cookie jar.
type Client struct {
	baseURL    string
	httpClient *http.Client
	jar        http.CookieJar
	headers    http.Header
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its jar carries the
// session cookie.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithJar sets the cookie jar used to carry the session credential
func WithJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHeader adds a default header sent on every request
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// RequestOption adjusts a single request
type RequestOption func(*http.Request)

// WithRequestHeader overrides a header for one request
func WithRequestHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// New creates a client for the backend at origin (e.g.
// "http://localhost:8001"). Every call goes to {origin}/api{path}.
func New(origin string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(origin, "/") + apiPrefix,
		headers: make(http.Header),
		logger:  slog.Default(),
	}
	c.httpClient = &http.Client{Timeout: defaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.httpClient
	if c.jar != nil {
		hc.Jar = c.jar
	}
	hc.Transport = middleware.WrapTransport(c.logger, hc.Transport)
	c.httpClient = &hc
	return c
}

// BaseURL returns the resolved API base address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one request and returns the raw body of a 2xx response.
// There are no retries.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, opts []RequestOption) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range c.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	for _, opt := range opts {
		opt(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(op, metrics.StatusNetworkError).Inc()
		metrics.APIRequestDuration.WithLabelValues(op, metrics.StatusNetworkError).Observe(duration.Seconds())
		c.logger.Error("api request failed", "operation", op, "method", method, "path", path, "error", err, "duration_ms", duration.Milliseconds())
		return 0, nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	statusStr := strconv.Itoa(resp.StatusCode)
	metrics.APIRequestsTotal.WithLabelValues(op, statusStr).Inc()
	metrics.APIRequestDuration.WithLabelValues(op, statusStr).Observe(duration.Seconds())
	c.logger.Debug("api_request", "operation", op, "method", method, "path", path, "status", resp.StatusCode, "duration_ms", duration.Milliseconds())

	data, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if err != nil {
			return resp.StatusCode, nil, &APIError{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
		}
		return resp.StatusCode, nil, &APIError{Status: resp.StatusCode, Message: string(data)}
	}
	if err != nil {
		return resp.StatusCode, nil, &NetworkError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return resp.StatusCode, data, nil
}

// doJSON performs a request and decodes a validated T from the response
func doJSON[T any](ctx context.Context, c *Client, op, method, path string, query url.Values, body any, opts []RequestOption) (T, error) {
	var out T

	status, data, err := c.do(ctx, op, method, path, query, body, opts)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, c.invalid(op, status, fmt.Errorf("failed to decode response: %w", err))
	}
	if err := validatePayload(out); err != nil {
		return out, c.invalid(op, status, err)
	}
	return out, nil
}

// doMessage performs a void request. An empty body or 204 is accepted;
// otherwise the body must be a {"message": ...} ack.
func (c *Client) doMessage(ctx context.Context, op, method, path string, body any, opts []RequestOption) error {
	status, data, err := c.do(ctx, op, method, path, nil, body, opts)
	if err != nil {
		return err
	}
	if status == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var ack messageResponse
	if err := json.Unmarshal(data, &ack); err != nil {
		return c.invalid(op, status, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) invalid(op string, status int, cause error) error {
	metrics.APIInvalidPayloadsTotal.WithLabelValues(op).Inc()
	c.logger.Warn("invalid api payload", "operation", op, "status", status, "error", cause)
	return &APIError{
		Status:  status,
		Message: cause.Error(),
		Err:     fmt.Errorf("%w: %w", ErrInvalidPayload, cause),
	}
}

// filterQuery builds a query from key/value pairs, dropping empty values
func filterQuery(pairs ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			q.Set(pairs[i], pairs[i+1])
		}
	}
	return q
}

func byID(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}
