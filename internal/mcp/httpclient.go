package mcp

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

	"github.com/claude/gtg/internal/app"
	"github.com/claude/gtg/internal/models"
	"github.com/claude/gtg/internal/reminder"
	"github.com/claude/gtg/internal/stats"
)

// HTTPClient implements DataSource by calling the GTG REST API. Used for
// remote MCP mode where the binary runs locally (stdio) but data lives on
// the server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key may be empty when the server does not require one.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) Today(ctx context.Context) (app.TodayView, error) {
	var view app.TodayView
	err := c.do(ctx, http.MethodGet, "/api/v1/today", nil, &view)
	return view, err
}

func (c *HTTPClient) AddSet(ctx context.Context, reps int) (app.TodayView, error) {
	var view app.TodayView
	err := c.do(ctx, http.MethodPost, "/api/v1/today/sets", map[string]int{"reps": reps}, &view)
	return view, err
}

func (c *HTTPClient) RemoveSet(ctx context.Context, index int) (app.TodayView, error) {
	var view app.TodayView
	err := c.do(ctx, http.MethodDelete, "/api/v1/today/sets/"+strconv.Itoa(index), nil, &view)
	return view, err
}

func (c *HTTPClient) ReminderState(ctx context.Context) (reminder.Snapshot, error) {
	var snap reminder.Snapshot
	err := c.do(ctx, http.MethodGet, "/api/v1/reminder", nil, &snap)
	return snap, err
}

func (c *HTTPClient) DismissReminder(ctx context.Context) (reminder.Snapshot, error) {
	var snap reminder.Snapshot
	err := c.do(ctx, http.MethodPost, "/api/v1/reminder/dismiss", nil, &snap)
	return snap, err
}

func (c *HTTPClient) Statistics(ctx context.Context) (stats.Snapshot, error) {
	var snap stats.Snapshot
	err := c.do(ctx, http.MethodGet, "/api/v1/stats", nil, &snap)
	return snap, err
}

func (c *HTTPClient) Config(ctx context.Context) (models.Config, error) {
	var cfg models.Config
	err := c.do(ctx, http.MethodGet, "/api/v1/config", nil, &cfg)
	return cfg, err
}

func (c *HTTPClient) SetReminderInterval(ctx context.Context, minutes int) (models.Config, error) {
	cfg, err := c.Config(ctx)
	if err != nil {
		return models.Config{}, err
	}
	cfg.ReminderIntervalMinutes = minutes

	var saved models.Config
	err = c.do(ctx, http.MethodPut, "/api/v1/config", cfg, &saved)
	return saved, err
}

func (c *HTTPClient) MaxReps(ctx context.Context) (models.MaxRepsData, error) {
	var data models.MaxRepsData
	err := c.do(ctx, http.MethodGet, "/api/v1/maxreps", nil, &data)
	return data, err
}

func (c *HTTPClient) SetMaxReps(ctx context.Context, exercise string, maxReps int) (models.MaxRepsData, error) {
	var data models.MaxRepsData
	err := c.do(ctx, http.MethodPut, "/api/v1/maxreps", map[string]any{
		"exercise": exercise,
		"maxReps":  maxReps,
	}, &data)
	return data, err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("httpclient: encode body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("httpclient: decode %s response: %w", path, err)
		}
	}
	return nil
}
