package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KoBe1628/ai-fitness-tracker/internal/engine"
	"github.com/KoBe1628/ai-fitness-tracker/internal/exercise"
	"github.com/KoBe1628/ai-fitness-tracker/internal/ledger"
)

// HTTPClient implements DataSource by calling the fittrack REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the session lives on the tracker server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) Progress(ctx context.Context) (ledger.Snapshot, error) {
	body, err := c.get(ctx, "/api/v1/progress", nil)
	if err != nil {
		return ledger.Snapshot{}, err
	}

	var snap ledger.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return ledger.Snapshot{}, fmt.Errorf("httpclient: decode progress: %w", err)
	}
	return snap, nil
}

func (c *HTTPClient) History(ctx context.Context, exerciseID string) ([]ledger.SetRecord, error) {
	params := url.Values{}
	params.Set("exercise", exerciseID)

	body, err := c.get(ctx, "/api/v1/history", params)
	if err != nil {
		return nil, err
	}

	var records []ledger.SetRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode history: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) Exercises(ctx context.Context) ([]exercise.Profile, error) {
	body, err := c.get(ctx, "/api/v1/exercises", nil)
	if err != nil {
		return nil, err
	}

	var profiles []exercise.Profile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return profiles, nil
}

func (c *HTTPClient) State(ctx context.Context) (engine.State, error) {
	body, err := c.get(ctx, "/api/v1/state", nil)
	if err != nil {
		return engine.State{}, err
	}

	var st engine.State
	if err := json.Unmarshal(body, &st); err != nil {
		return engine.State{}, fmt.Errorf("httpclient: decode state: %w", err)
	}
	return st, nil
}
