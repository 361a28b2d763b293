// Package xapi fetches recent tweets for monitored accounts from a
// twitterapi.io-compatible endpoint.
package xapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"warroom-monitor/internal/types"
)

const defaultBaseURL = "https://api.twitterapi.io"

// Client is the fetch capability consumed by the monitor.
type Client struct {
	baseURL string
	apiKey  string
	hc      *retryablehttp.Client
}

// NewClient builds a client with a bounded per-call timeout so a hung
// upstream cannot stall a whole cycle.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	hc := retryablehttp.NewClient()
	hc.Logger = nil
	hc.HTTPClient.Timeout = 30 * time.Second
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		hc:      hc,
	}
}

// UserTweets returns the latest tweets for handle, newest-first.
func (c *Client) UserTweets(ctx context.Context, handle string) ([]types.Tweet, error) {
	params := url.Values{"userName": {handle}}
	u := fmt.Sprintf("%s/twitter/user/last_tweets?%s", c.baseURL, params.Encode())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch @%s: %w", handle, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("fetch @%s: status %d: %s", handle, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw tweetsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("fetch @%s: decode response: %w", handle, err)
	}
	if raw.Status != "200" && raw.Status != "success" {
		return nil, fmt.Errorf("fetch @%s: api status %q: %s", handle, raw.Status, raw.Msg)
	}

	out := make([]types.Tweet, 0, len(raw.Tweets))
	for _, t := range raw.Tweets {
		out = append(out, normalize(t, handle))
	}
	return out, nil
}
