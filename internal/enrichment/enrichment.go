// Package enrichment supplements detected video titles with context fetched
// from the YouTube Data API: a video id resolved by title search, and a
// handful of relevant viewer comments. Enrichment is strictly best-effort;
// every failure degrades the caller to title-only classification.
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sigmacoders/guardian/internal/config"
	"github.com/sigmacoders/guardian/internal/credentials"
)

// ErrFailed indicates enrichment could not complete. Callers log it and
// continue with the bare title.
var ErrFailed = errors.New("enrichment failed")

const (
	maxCommentsFetched = 10
	minCommentLength   = 15
)

// Client fetches video metadata and comments from the YouTube Data API.
type Client struct {
	http    *http.Client
	baseURL string
	keyName string
	keys    credentials.Source
	logger  *slog.Logger
}

// NewClient creates an enrichment client from configuration.
func NewClient(cfg *config.YouTubeConfig, keys credentials.Source, logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL: cfg.BaseURL,
		keyName: cfg.KeyName,
		keys:    keys,
		logger:  logger.With("system", "enrichment"),
	}
}

// Enrich resolves comments for a detected title. When no video id is supplied
// one is searched by title first. Any failure (missing key, no match, fetch
// error) wraps ErrFailed.
func (c *Client) Enrich(ctx context.Context, title, videoID string) ([]string, error) {
	key, err := c.keys.Key(ctx, c.keyName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailed, err)
	}

	if videoID == "" {
		videoID, err = c.searchVideoID(ctx, key, title)
		if err != nil {
			return nil, err
		}
		if videoID == "" {
			return nil, fmt.Errorf("%w: no video match for title", ErrFailed)
		}
	}

	return c.comments(ctx, key, videoID)
}

func (c *Client) searchVideoID(ctx context.Context, key, title string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", title)
	params.Set("type", "video")
	params.Set("maxResults", "1")
	params.Set("key", key)

	var payload struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := c.get(ctx, "/search", params, &payload); err != nil {
		return "", err
	}

	if len(payload.Items) == 0 {
		return "", nil
	}
	return payload.Items[0].ID.VideoID, nil
}

// comments returns the most relevant comments longer than minCommentLength
// characters, fetched from a pool of at most maxCommentsFetched.
func (c *Client) comments(ctx context.Context, key, videoID string) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("maxResults", fmt.Sprintf("%d", maxCommentsFetched))
	params.Set("order", "relevance")
	params.Set("textFormat", "plainText")
	params.Set("key", key)

	var payload struct {
		Items []struct {
			Snippet struct {
				TopLevelComment struct {
					Snippet struct {
						TextDisplay string `json:"textDisplay"`
					} `json:"snippet"`
				} `json:"topLevelComment"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := c.get(ctx, "/commentThreads", params, &payload); err != nil {
		return nil, err
	}

	var comments []string
	for _, item := range payload.Items {
		text := item.Snippet.TopLevelComment.Snippet.TextDisplay
		if len(text) > minCommentLength {
			comments = append(comments, text)
		}
	}

	return comments, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(),
		nil,
	)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d from %s", ErrFailed, resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrFailed, err)
	}

	return nil
}
