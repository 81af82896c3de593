// Package client talks to the calculator API: the compute service
// (POST /api/calculate) and the history service (GET/DELETE /api/history).
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/history"
	"keypad-calculator/internal/observability"

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Fallback texts used when a failed response carries no detail.
const (
	fallbackCalculate = "Calculation failed"
	fallbackList      = "Failed to load history"
	fallbackClear     = "Failed to clear history"
)

// APIError is a non-2xx response. Its Error text is what the user sees.
type APIError struct {
	Status int
	Detail string

	fallback string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s (HTTP %d)", e.fallback, e.Status)
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL. A zero timeout leaves
// calls unbounded.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// BaseURL is the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Evaluate asks the compute service for a op b. The service records the
// calculation in history before answering.
func (c *Client) Evaluate(ctx context.Context, a, b float64, op calculator.Op) (float64, error) {
	body := calculator.CalcRequest{A: &a, B: &b, Op: string(op)}

	var resp calculator.CalcResponse
	if err := c.do(ctx, http.MethodPost, "/api/calculate", body, &resp, fallbackCalculate); err != nil {
		return 0, err
	}
	return resp.Result, nil
}

// List returns up to limit history entries, newest first.
func (c *Client) List(ctx context.Context, limit int) ([]history.Entry, error) {
	path := "/api/history"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	var resp history.ListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, fallbackList); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		return []history.Entry{}, nil
	}
	return resp.Items, nil
}

// Clear deletes all stored history.
func (c *Client) Clear(ctx context.Context) error {
	var resp history.ClearResponse
	return c.do(ctx, http.MethodDelete, "/api/history", nil, &resp, fallbackClear)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := observability.NewRequestID()
	req.Header.Set(observability.RequestIDHeader, requestID)

	logger := observability.LoggerWithTrace(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("api request failed", zap.Error(err))
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("api response unreadable", zap.Int("status", resp.StatusCode), zap.Error(err))
		return fmt.Errorf("%s: %w", fallback, err)
	}

	logger.Debug("api request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, fallback: fallback}
		var payload handlers.ErrorResponse
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Detail = payload.Detail
		}
		logger.Warn("api request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", fallback, err)
	}
	return nil
}
