package cli

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

	"github.com/mcoot/playeradmin/internal/api/request"
)

const playersPath = "/api/v1/players"

// Client talks to the player admin JSON API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL. A non-empty token is
// sent as a bearer credential on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ResponseError is returned when the server answers with a 4xx or 5xx status
type ResponseError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ResponseError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func playerPath(id string) string {
	return playersPath + "/" + url.PathEscape(id)
}

// ListPlayers fetches one page of players matching query
func (c *Client) ListPlayers(ctx context.Context, query url.Values) ([]Player, error) {
	var players []Player
	err := c.do(ctx, http.MethodGet, playersPath, query, nil, &players)
	return players, err
}

// CountPlayers counts players matching query
func (c *Client) CountPlayers(ctx context.Context, query url.Values) (int, error) {
	var count int
	err := c.do(ctx, http.MethodGet, playersPath+"/count", query, nil, &count)
	return count, err
}

// GetPlayer fetches a player by id
func (c *Client) GetPlayer(ctx context.Context, id string) (Player, error) {
	var p Player
	err := c.do(ctx, http.MethodGet, playerPath(id), nil, nil, &p)
	return p, err
}

// CreatePlayer creates a player from a full request body
func (c *Client) CreatePlayer(ctx context.Context, body request.PlayerRequest) (Player, error) {
	var p Player
	err := c.do(ctx, http.MethodPost, playersPath, nil, body, &p)
	return p, err
}

// UpdatePlayer sends a partial update
func (c *Client) UpdatePlayer(ctx context.Context, id string, body request.PlayerRequest) (Player, error) {
	var p Player
	err := c.do(ctx, http.MethodPatch, playerPath(id), nil, body, &p)
	return p, err
}

// DeletePlayer removes a player
func (c *Client) DeletePlayer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, playerPath(id), nil, nil, nil)
}

// Health queries the health endpoint
func (c *Client) Health(ctx context.Context) (HealthResult, error) {
	var h HealthResult
	err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, nil, &h)
	return h, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeResponseError(resp.StatusCode, data)
	}
	if result == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeResponseError(status int, data []byte) error {
	var envelope struct {
		Error ResponseError `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Code != "" {
		envelope.Error.Status = status
		return &envelope.Error
	}
	return &ResponseError{Status: status, Message: strings.TrimSpace(string(data))}
}
