package intel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultOpenRouterBase = "https://openrouter.ai/api/v1"
	defaultModel          = "openai/gpt-4o-mini"
)

// Message is one chat turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult carries the model's answer plus usage accounting.
type ChatResult struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// OpenRouterClient routes chat calls through OpenRouter so the underlying
// model can change without touching analyst logic.
type OpenRouterClient struct {
	baseURL string
	apiKey  string
	model   string
	hc      *retryablehttp.Client
}

func NewOpenRouterClient(apiKey, model string) *OpenRouterClient {
	return NewOpenRouterClientWithBase(defaultOpenRouterBase, apiKey, model)
}

func NewOpenRouterClientWithBase(baseURL, apiKey, model string) *OpenRouterClient {
	if model == "" {
		model = defaultModel
	}
	hc := retryablehttp.NewClient()
	hc.Logger = nil
	hc.HTTPClient.Timeout = 120 * time.Second
	return &OpenRouterClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		hc:      hc,
	}
}

// Chat sends the messages and returns the first choice.
func (c *OpenRouterClient) Chat(ctx context.Context, messages []Message, temperature float64) (ChatResult, error) {
	payload, err := json.Marshal(map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": temperature,
		"max_tokens":  4096,
	})
	if err != nil {
		return ChatResult{}, fmt.Errorf("openrouter: marshal request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return ChatResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return ChatResult{}, fmt.Errorf("openrouter: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return ChatResult{}, fmt.Errorf("openrouter: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ChatResult{}, fmt.Errorf("openrouter: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return ChatResult{}, fmt.Errorf("openrouter: empty choices")
	}

	model := out.Model
	if model == "" {
		model = c.model
	}
	return ChatResult{
		Content:          out.Choices[0].Message.Content,
		Model:            model,
		PromptTokens:     out.Usage.PromptTokens,
		CompletionTokens: out.Usage.CompletionTokens,
	}, nil
}
