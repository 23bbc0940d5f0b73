package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sigmacoders/guardian/internal/config"
	"github.com/sigmacoders/guardian/internal/features"
)

// Gateway persists a scored risk level. Satisfied by the children system.
type Gateway interface {
	SetRiskLevel(ctx context.Context, parentID, childID, level string) error
}

// Client calls the remote risk-scoring endpoint. Each evaluation is a single
// POST with a bounded timeout; no internal retry is performed — the scheduler's
// periodic cadence is the retry mechanism.
type Client struct {
	http    *http.Client
	url     string
	gateway Gateway
	logger  *slog.Logger
}

// NewClient creates a scoring client from configuration.
func NewClient(cfg *config.ScoringConfig, gateway Gateway, logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		url:     cfg.URL,
		gateway: gateway,
		logger:  logger.With("system", "scoring"),
	}
}

// Score posts a feature vector and maps the response to a risk level.
// Any transport failure, non-2xx status, or unparsable body yields
// ErrUnavailable.
func (c *Client) Score(ctx context.Context, vector features.Vector) (Level, error) {
	body, err := json.Marshal(vector)
	if err != nil {
		return Unknown, fmt.Errorf("encode feature vector: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Unknown, fmt.Errorf("build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Unknown, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload struct {
		RiskLevel *int `json:"risk_level"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Unknown, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	return levelFromCode(payload.RiskLevel), nil
}

// Evaluate scores a vector and, on a successful round-trip, merges the
// resulting level into the child record. On ErrUnavailable nothing is
// written and the last known level stands.
func (c *Client) Evaluate(ctx context.Context, parentID, childID string, vector features.Vector) (Level, error) {
	level, err := c.Score(ctx, vector)
	if err != nil {
		return Unknown, err
	}

	if err := c.gateway.SetRiskLevel(ctx, parentID, childID, string(level)); err != nil {
		return level, fmt.Errorf("persist risk level: %w", err)
	}

	c.logger.Info("risk level scored", "parent", parentID, "child", childID, "level", level)
	return level, nil
}
