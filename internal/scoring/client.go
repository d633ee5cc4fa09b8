package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API paths served by the scorer.
const (
	PathPoints      = "/api/task2/points"
	PathWords       = "/api/task2/words"
	PathScore       = "/api/task2/score"
	PathLeaderboard = "/api/leaderboard"
	PathHealth      = "/api/health"
)

// Client talks to a remote scorer over HTTP. It never retries; callers
// decide what a failure means.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the scorer at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the scorer address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Score posts a scoring request.
func (c *Client) Score(ctx context.Context, req Request) (Response, error) {
	var resp Response
	if err := c.post(ctx, PathPoints, req, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Words fetches the word pool for a theme.
func (c *Client) Words(ctx context.Context, theme string) ([]string, error) {
	var resp WordsResponse
	if err := c.post(ctx, PathWords, WordsRequest{TaskID: TaskWords, Theme: theme}, &resp); err != nil {
		return nil, err
	}
	return resp.WordArray, nil
}

// SubmitResult posts a finished round.
func (c *Client) SubmitResult(ctx context.Context, res FinalResult) error {
	return c.post(ctx, PathScore, res, nil)
}

// Leaderboard fetches the best rounds, at most limit entries.
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	u := c.baseURL + PathLeaderboard + "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("scoring: build request: %w", err)
	}

	var entries []LeaderboardEntry
	if err := c.do(req, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("scoring: encode %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("scoring: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("scoring: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("scoring: %s %s: %s: %s", req.Method, req.URL.Path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("scoring: %s %s: %s", req.Method, req.URL.Path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("scoring: decode %s: %w", req.URL.Path, err)
	}
	return nil
}
