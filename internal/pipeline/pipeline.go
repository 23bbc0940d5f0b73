// Package pipeline orchestrates content classification for detected video
// titles: a per-child dedup gate, up-front credential resolution, best-effort
// comment enrichment, zero-shot classification, safety derivation, and
// append-only recording. Detections
// are accepted synchronously and classified in the background; distinct
// titles proceed concurrently while repeats of the last classified title are
// dropped regardless of in-flight state.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sigmacoders/guardian/internal/classifier"
	"github.com/sigmacoders/guardian/internal/videolog"
)

const maxCommentsUsed = 5

// Classifier is the zero-shot classification dependency. ResolveKey is
// called before any other remote work in a pass; a missing credential stops
// the pass before enrichment spends network calls.
type Classifier interface {
	ResolveKey(ctx context.Context) (string, error)
	Classify(ctx context.Context, key, text string) (*classifier.Response, error)
}

// Enricher supplies supplementary comments for a detected title.
type Enricher interface {
	Enrich(ctx context.Context, title, videoID string) ([]string, error)
}

// Detection is the ingest payload for one detected on-screen video.
type Detection struct {
	Title   string `json:"title"`
	VideoID string `json:"video_id,omitempty"`
	Channel string `json:"channel,omitempty"`
}

// Result is the outcome of one classification pass.
type Result struct {
	Title      string            `json:"title"`
	Channel    string            `json:"channel"`
	Category   string            `json:"category"`
	Confidence float64           `json:"confidence"`
	Safety     classifier.Safety `json:"safety"`
}

// Pipeline holds the per-child dedup state and the stage dependencies.
// The last classified title is the only mutable state shared between
// detection events.
type Pipeline struct {
	classifier Classifier
	enricher   Enricher
	log        videolog.System
	logger     *slog.Logger
	base       context.Context

	mu        sync.Mutex
	lastTitle map[string]string
}

// New creates a Pipeline. Background classification passes derive from base,
// so they stop when the coordinator shuts down.
func New(
	base context.Context,
	cls Classifier,
	enr Enricher,
	log videolog.System,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		classifier: cls,
		enricher:   enr,
		log:        log,
		logger:     logger.With("system", "pipeline"),
		base:       base,
		lastTitle:  make(map[string]string),
	}
}

// Submit validates and dedups a detection, then classifies it in the
// background. It reports whether a classification pass was started; a
// repeated title is dropped without remote calls.
func (p *Pipeline) Submit(parentID, childID string, det Detection) (bool, error) {
	det.Title = strings.TrimSpace(det.Title)

	if parentID == "" || childID == "" {
		return false, ErrInvalidDetection
	}
	if !ValidTitle(det.Title) {
		return false, ErrInvalidTitle
	}

	if !p.checkAndSet(parentID, childID, det.Title) {
		p.logger.Debug("duplicate title dropped", "parent", parentID, "child", childID)
		return false, nil
	}

	go func() {
		if _, err := p.Classify(p.base, parentID, childID, det); err != nil {
			p.logger.Error(
				"classification pass failed",
				"parent", parentID,
				"child", childID,
				"error", err,
			)
		}
	}()

	return true, nil
}

// Classify runs one synchronous classification pass: resolve the
// classification credential, enrich (best-effort), classify, derive the
// verdict, and record the entry. An unavailable credential aborts the pass
// before enrichment. Recording failure is logged and does not affect the
// returned result.
func (p *Pipeline) Classify(ctx context.Context, parentID, childID string, det Detection) (*Result, error) {
	key, err := p.classifier.ResolveKey(ctx)
	if err != nil {
		return nil, err
	}

	text := p.enrichedText(ctx, det)

	resp, err := p.classifier.Classify(ctx, key, text)
	if err != nil {
		return nil, err
	}

	channel := det.Channel
	if channel == "" {
		channel = videolog.UnknownChannel
	}

	result := &Result{
		Title:      det.Title,
		Channel:    channel,
		Category:   resp.Category,
		Confidence: resp.Confidence,
		Safety:     resp.Verdict(),
	}

	if _, err := p.log.Append(ctx, videolog.AppendCommand{
		ParentID:   parentID,
		ChildID:    childID,
		Title:      result.Title,
		Channel:    result.Channel,
		Category:   result.Category,
		Confidence: result.Confidence,
		Safety:     string(result.Safety),
	}); err != nil {
		p.logger.Error("video log append failed", "title", result.Title, "error", err)
	}

	p.logger.Info(
		"content classified",
		"parent", parentID,
		"child", childID,
		"category", result.Category,
		"safety", result.Safety,
	)
	return result, nil
}

// enrichedText builds the classifier input. Enrichment failure degrades to
// the title and channel alone.
func (p *Pipeline) enrichedText(ctx context.Context, det Detection) string {
	channel := det.Channel
	if channel == "" {
		channel = videolog.UnknownChannel
	}
	base := fmt.Sprintf("%s. Channel: %s", det.Title, channel)

	comments, err := p.enricher.Enrich(ctx, det.Title, det.VideoID)
	if err != nil {
		p.logger.Warn("enrichment failed, classifying title only", "error", err)
		return base
	}
	if len(comments) == 0 {
		return base
	}
	if len(comments) > maxCommentsUsed {
		comments = comments[:maxCommentsUsed]
	}

	return base + ". User comments: " + strings.Join(comments, " ")
}

// checkAndSet atomically compares the incoming title against the child's
// last classified title, recording it when new.
func (p *Pipeline) checkAndSet(parentID, childID, title string) bool {
	key := parentID + "/" + childID

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastTitle[key] == title {
		return false
	}
	p.lastTitle[key] = title
	return true
}
