package xapi

import (
	"fmt"

	"warroom-monitor/internal/types"
)

// tweetsResponse is the raw last_tweets envelope.
type tweetsResponse struct {
	Status      string     `json:"status"`
	Msg         string     `json:"msg"`
	Tweets      []rawTweet `json:"tweets"`
	HasNextPage bool       `json:"has_next_page"`
	NextCursor  string     `json:"next_cursor"`
}

type rawTweet struct {
	Type          string      `json:"type"`
	ID            string      `json:"id"`
	URL           string      `json:"url"`
	Text          string      `json:"text"`
	RetweetCount  int         `json:"retweetCount"`
	ReplyCount    int         `json:"replyCount"`
	LikeCount     int         `json:"likeCount"`
	QuoteCount    int         `json:"quoteCount"`
	ViewCount     int         `json:"viewCount"`
	BookmarkCount int         `json:"bookmarkCount"`
	CreatedAt     string      `json:"createdAt"`
	IsReply       bool        `json:"isReply"`
	InReplyToID   string      `json:"inReplyToId"`
	Author        rawAuthor   `json:"author"`
	Entities      rawEntities `json:"entities"`
	RetweetedOf   *rawTweet   `json:"retweeted_tweet"`
}

type rawAuthor struct {
	UserName string `json:"userName"`
	Name     string `json:"name"`
}

type rawEntities struct {
	Hashtags []struct {
		Text string `json:"text"`
	} `json:"hashtags"`
	URLs []struct {
		ExpandedURL string `json:"expanded_url"`
	} `json:"urls"`
	UserMentions []struct {
		ScreenName string `json:"screen_name"`
	} `json:"user_mentions"`
}

// normalize maps the raw API shape into the internal tweet type, filling
// author fields from the queried handle when the payload omits them.
func normalize(raw rawTweet, fallbackHandle string) types.Tweet {
	handle := raw.Author.UserName
	if handle == "" {
		handle = fallbackHandle
	}
	name := raw.Author.Name
	if name == "" {
		name = fallbackHandle
	}
	link := raw.URL
	if link == "" {
		link = fmt.Sprintf("https://x.com/%s/status/%s", handle, raw.ID)
	}

	t := types.Tweet{
		ID:           raw.ID,
		Text:         raw.Text,
		CreatedAt:    raw.CreatedAt,
		AuthorHandle: handle,
		AuthorName:   name,
		URL:          link,
		Metrics: types.Metrics{
			Likes:     raw.LikeCount,
			Reposts:   raw.RetweetCount,
			Replies:   raw.ReplyCount,
			Views:     raw.ViewCount,
			Quotes:    raw.QuoteCount,
			Bookmarks: raw.BookmarkCount,
		},
		IsRepost: raw.Type == "retweet" || raw.RetweetedOf != nil,
		IsReply:  raw.IsReply || raw.InReplyToID != "",
	}
	for _, u := range raw.Entities.URLs {
		if u.ExpandedURL != "" {
			t.URLs = append(t.URLs, u.ExpandedURL)
		}
	}
	for _, h := range raw.Entities.Hashtags {
		if h.Text != "" {
			t.Hashtags = append(t.Hashtags, h.Text)
		}
	}
	for _, m := range raw.Entities.UserMentions {
		if m.ScreenName != "" {
			t.Mentions = append(t.Mentions, m.ScreenName)
		}
	}
	return t
}
