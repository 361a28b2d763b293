package xapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lastTweetsBody = `{
  "status": "200",
  "msg": "",
  "tweets": [
    {
      "type": "tweet",
      "id": "184467440737095516151",
      "url": "https://x.com/alpha/status/184467440737095516151",
      "text": "shipping the new build today",
      "retweetCount": 4,
      "replyCount": 2,
      "likeCount": 31,
      "quoteCount": 1,
      "viewCount": 900,
      "bookmarkCount": 3,
      "createdAt": "Tue Feb 10 12:00:00 +0000 2026",
      "isReply": false,
      "inReplyToId": null,
      "author": {"userName": "alpha", "name": "Alpha"},
      "entities": {
        "hashtags": [{"text": "buildinpublic"}],
        "urls": [{"expanded_url": "https://alpha.dev/launch"}],
        "user_mentions": [{"screen_name": "forgepad"}]
      }
    },
    {
      "type": "retweet",
      "id": "184467440737095516140",
      "text": "RT something",
      "author": {"userName": "", "name": ""},
      "entities": {"hashtags": [], "urls": [], "user_mentions": []}
    }
  ],
  "has_next_page": false,
  "next_cursor": ""
}`

func TestUserTweetsNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/twitter/user/last_tweets", r.URL.Path)
		assert.Equal(t, "alpha", r.URL.Query().Get("userName"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(lastTweetsBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	tweets, err := c.UserTweets(context.Background(), "alpha")
	require.NoError(t, err)
	require.Len(t, tweets, 2)

	first := tweets[0]
	assert.Equal(t, "184467440737095516151", first.ID)
	assert.Equal(t, "alpha", first.AuthorHandle)
	assert.Equal(t, "Alpha", first.AuthorName)
	assert.Equal(t, 31, first.Metrics.Likes)
	assert.Equal(t, 4, first.Metrics.Reposts)
	assert.Equal(t, 900, first.Metrics.Views)
	assert.False(t, first.IsRepost)
	assert.Equal(t, []string{"https://alpha.dev/launch"}, first.URLs)
	assert.Equal(t, []string{"buildinpublic"}, first.Hashtags)
	assert.Equal(t, []string{"forgepad"}, first.Mentions)

	second := tweets[1]
	assert.True(t, second.IsRepost)
	// Author fields fall back to the queried handle.
	assert.Equal(t, "alpha", second.AuthorHandle)
	assert.Contains(t, second.URL, "/alpha/status/")
}

func TestUserTweetsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such user", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.UserTweets(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestUserTweetsAPIStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "429", "msg": "rate limited", "tweets": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.UserTweets(context.Background(), "alpha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestUserTweetsEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "success", "tweets": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	tweets, err := c.UserTweets(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Empty(t, tweets)
}
