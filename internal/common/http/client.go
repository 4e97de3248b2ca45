// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	apperrors "pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/metrics"
)

// RequestIDHeader correlates client log lines with server logs.
const RequestIDHeader = "X-Request-ID"

// TokenFunc returns the bearer credential to attach, or "" for none.
type TokenFunc func(ctx context.Context) (string, error)

// Client sends JSON requests to the pizza service. It never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      TokenFunc
	logger     logger.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenSource(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a request and decodes a successful JSON response into out.
// out may be nil when the response body is not needed.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	status, raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.NewInvalidResponseError(status, err)
	}
	return nil
}

// Raw sends a request and returns the undecoded JSON payload, nil for an
// empty body.
func (c *Client) Raw(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	_, raw, err := c.send(ctx, method, path, body)
	return raw, err
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (int, json.RawMessage, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := c.logger.WithFields(map[string]interface{}{
		"method":    method,
		"path":      path,
		"requestId": requestID,
	})

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, metrics.StatusLabel, start)
		log.Warn("Request failed before a response", map[string]interface{}{"error": err.Error()})
		return 0, nil, apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, metrics.StatusLabel, start)
		return 0, nil, apperrors.NewNetworkError(err)
	}

	c.observe(method, strconv.Itoa(resp.StatusCode), start)
	log.Debug("Request completed", map[string]interface{}{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	data = bytes.TrimSpace(data)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, c.apiError(resp.StatusCode, data)
	}
	if len(data) == 0 {
		return resp.StatusCode, nil, nil
	}
	if !json.Valid(data) {
		return resp.StatusCode, nil, apperrors.NewInvalidResponseError(resp.StatusCode, fmt.Errorf("body is not JSON"))
	}
	return resp.StatusCode, json.RawMessage(data), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.NewInvalidRequestError(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, apperrors.NewInvalidRequestError(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read session credential: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// apiError prefers the server's "message" field wherever it sits in a JSON
// body and falls back to a generic description.
func (c *Client) apiError(status int, data []byte) *apperrors.ApiError {
	message := ""
	if json.Valid(data) {
		if res := gjson.GetBytes(data, "message"); res.Exists() {
			message = res.String()
		}
	}
	apiErr := apperrors.NewAPIError(status, message)
	if message == "" && len(data) > 0 {
		apiErr.Details = truncate(string(data), 256)
	}
	return apiErr
}

func (c *Client) observe(method, status string, start time.Time) {
	metrics.APIRequests.WithLabelValues(method, status).Inc()
	metrics.APIRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
