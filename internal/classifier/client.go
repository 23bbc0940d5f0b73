package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sigmacoders/guardian/internal/config"
	"github.com/sigmacoders/guardian/internal/credentials"
)

// Client calls the zero-shot classification endpoint with bearer-token
// authentication. The API key is resolved per pass so rotated keys take
// effect without restart.
type Client struct {
	http    *http.Client
	url     string
	keyName string
	keys    credentials.Source
	logger  *slog.Logger
}

// NewClient creates a classifier client from configuration.
func NewClient(cfg *config.ClassifierConfig, keys credentials.Source, logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		url:     cfg.URL,
		keyName: cfg.KeyName,
		keys:    keys,
		logger:  logger.With("system", "classifier"),
	}
}

type request struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		CandidateLabels []string `json:"candidate_labels"`
	} `json:"parameters"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// ResolveKey looks up the API key for this client. Callers resolve the key
// before any other remote work so a missing credential fails the whole pass
// up front.
func (c *Client) ResolveKey(ctx context.Context) (string, error) {
	return c.keys.Key(ctx, c.keyName)
}

// Classify submits text with the fixed candidate label set and parses the
// response, authenticating with a key from ResolveKey.
func (c *Client) Classify(ctx context.Context, key, text string) (*Response, error) {
	var payload request
	payload.Inputs = text
	payload.Parameters.CandidateLabels = Labels
	payload.Options.WaitForModel = true

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode classification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build classification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	return parse(data)
}

// parse accepts both response shapes: a JSON array of {label, score} sorted
// descending by score, or an object with parallel labels/scores arrays. An
// object carrying a loading status is a transient failure.
func parse(data []byte) (*Response, error) {
	var ranked []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(data, &ranked); err == nil && len(ranked) > 0 {
		return &Response{
			Category:   Normalize(ranked[0].Label),
			Confidence: ranked[0].Score,
		}, nil
	}

	var obj struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
		Error  string    `json:"error"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: unrecognized response body", ErrUnavailable)
	}

	if obj.Error != "" {
		if strings.Contains(strings.ToLower(obj.Error), "loading") {
			return nil, fmt.Errorf("%w: model loading", ErrUnavailable)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, obj.Error)
	}

	if len(obj.Labels) == 0 || len(obj.Labels) != len(obj.Scores) {
		return nil, fmt.Errorf("%w: unrecognized response body", ErrUnavailable)
	}

	scores := make(map[string]float64, len(obj.Labels))
	top := Response{Scores: scores}
	for i, label := range obj.Labels {
		name := Normalize(label)
		scores[name] = obj.Scores[i]
		if i == 0 || obj.Scores[i] > top.Confidence {
			top.Category = name
			top.Confidence = obj.Scores[i]
		}
	}

	return &top, nil
}
