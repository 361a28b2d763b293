package intel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsModelAndAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model       string    `json:"model"`
			Messages    []Message `json:"messages"`
			Temperature float64   `json:"temperature"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test/model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.InDelta(t, 0.2, req.Temperature, 0.001)

		_, _ = w.Write([]byte(`{
			"model": "test/model",
			"choices": [{"message": {"content": "the brief"}}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 45}
		}`))
	}))
	defer srv.Close()

	c := NewOpenRouterClientWithBase(srv.URL, "test-key", "test/model")
	res, err := c.Chat(context.Background(), []Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hello"},
	}, 0.2)
	require.NoError(t, err)
	assert.Equal(t, "the brief", res.Content)
	assert.Equal(t, "test/model", res.Model)
	assert.Equal(t, 120, res.PromptTokens)
	assert.Equal(t, 45, res.CompletionTokens)
}

func TestChatErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "bad key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewOpenRouterClientWithBase(srv.URL, "bad-key", "test/model")
	_, err := c.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0.3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := NewOpenRouterClientWithBase(srv.URL, "k", "test/model")
	_, err := c.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0.3)
	assert.Error(t, err)
}
