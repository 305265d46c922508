// Package agent talks to the trip-planning agent's query endpoint and holds
// the chat transcript types.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripplanner/pkg/config"
	"tripplanner/pkg/logging"
	"tripplanner/pkg/trip"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	queryPath        = "/query"
	maxResponseBytes = 4 << 20
)

// ErrMalformedResponse is returned when the endpoint body is not valid JSON.
var ErrMalformedResponse = errors.New("malformed response body")

// StatusError reports a non-2xx answer from the endpoint.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("query endpoint returned %s", e.Status)
}

// Querier is the query endpoint as seen by the UI.
type Querier interface {
	Plan(ctx context.Context, q trip.Query) (string, error)
	Ask(ctx context.Context, query string) (string, error)
}

// Client issues GET requests against the query endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	timeout    time.Duration
}

// NewClient creates a client from config.
func NewClient(cfg config.QueryConfig) (*Client, error) {
	return newClientWithHTTPClient(cfg, &http.Client{})
}

func newClientWithHTTPClient(cfg config.QueryConfig, httpClient *http.Client) (*Client, error) {
	raw := strings.TrimSpace(cfg.URL)
	if raw == "" {
		return nil, fmt.Errorf("query url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid query url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("query url must be http or https, got %q", raw)
	}
	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("request_timeout_seconds must not be negative")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		timeout:    time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}, nil
}

// Plan sends a trip-planning request.
func (c *Client) Plan(ctx context.Context, q trip.Query) (string, error) {
	return c.get(ctx, "plan", q.Params())
}

// Ask sends a free-form chat query. The text is sent exactly as given.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.get(ctx, "chat", params)
}

// Endpoint returns the URL requests are sent to, without parameters.
func (c *Client) Endpoint() string {
	return c.endpoint(nil).String()
}

func (c *Client) endpoint(params url.Values) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + queryPath
	u.RawQuery = params.Encode()
	return &u
}

func (c *Client) get(ctx context.Context, kind string, params url.Values) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	target := c.endpoint(params)
	logger := slog.Default().With("request_id", requestID, "kind", kind)
	logger.Debug("query_request_start", "url", target.String())
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	logger.Log(ctx, logging.LevelTrace, "query_response_body",
		"status", resp.StatusCode,
		"body", string(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	text, err := parseResponse(body)
	if err != nil {
		return "", err
	}

	logger.Debug("query_request_done",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(text),
	)
	return text, nil
}

// parseResponse extracts the response field. A valid body without a string
// response field yields "".
func parseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("decode response: %w", ErrMalformedResponse)
	}
	field := gjson.GetBytes(body, "response")
	if field.Type != gjson.String {
		return "", nil
	}
	return field.String(), nil
}
