package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dghubble/oauth1"
	"github.com/hashicorp/go-retryablehttp"
)

// Credentials holds the OAuth 1.0a user-context keys needed to post.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

// Complete reports whether every key is present.
func (c Credentials) Complete() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// NewPoster returns a function that publishes a status update using Twitter
// API v2, signing each request with the user-context credentials.
func NewPoster(baseURL string, creds Credentials) func(ctx context.Context, text string) error {
	cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient = cfg.Client(oauth1.NoContext, token)

	return func(ctx context.Context, text string) error {
		url := fmt.Sprintf("%s/tweets", baseURL)
		payload, err := json.Marshal(map[string]any{"text": text})
		if err != nil {
			return err
		}

		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			return fmt.Errorf("twitter post failed: status %d", resp.StatusCode)
		}
		return nil
	}
}
