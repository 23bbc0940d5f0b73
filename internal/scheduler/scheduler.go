// Package scheduler drives the recurring usage evaluation chain: current-day
// summary → feature vector → risk scoring. Each child gets one loop with an
// immediate first run and a fixed period; requesting a schedule for a child
// that already has one keeps the existing loop. Failed passes are logged and
// left to the next tick — the cadence itself is the retry mechanism.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sigmacoders/guardian/internal/children"
	"github.com/sigmacoders/guardian/internal/config"
	"github.com/sigmacoders/guardian/internal/features"
	"github.com/sigmacoders/guardian/internal/scoring"
	"github.com/sigmacoders/guardian/internal/usage"
)

const startupConcurrency = 8

const dateFormat = "2006-01-02"

// Scorer evaluates a feature vector and persists the result.
type Scorer interface {
	Evaluate(ctx context.Context, parentID, childID string, vector features.Vector) (scoring.Level, error)
}

// Scheduler owns the per-child evaluation loops.
type Scheduler struct {
	usage    usage.System
	scorer   Scorer
	children children.System
	interval time.Duration
	enabled  bool
	logger   *slog.Logger
	base     context.Context

	mu     sync.Mutex
	active map[string]struct{}
}

// New creates a Scheduler. Loops derive from base and stop when the
// coordinator shuts down.
func New(
	base context.Context,
	cfg *config.SchedulerConfig,
	usageSys usage.System,
	scorer Scorer,
	childSys children.System,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		usage:    usageSys,
		scorer:   scorer,
		children: childSys,
		interval: cfg.IntervalDuration(),
		enabled:  cfg.IsEnabled(),
		logger:   logger.With("system", "scheduler"),
		base:     base,
		active:   make(map[string]struct{}),
	}
}

// Start resumes recurring evaluation for every known child. Initial passes
// fan out with bounded concurrency; periodic loops then take over. Pass
// failures are logged, not returned — only the child listing itself can fail
// startup.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.enabled {
		s.logger.Info("scheduler disabled")
		return nil
	}

	refs, err := s.children.Refs(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(startupConcurrency)

	for _, ref := range refs {
		if !s.register(ref.ParentID, ref.ChildID) {
			continue
		}

		g.Go(func() error {
			s.runOnce(gctx, ref.ParentID, ref.ChildID)
			return nil
		})
		go s.loop(ref.ParentID, ref.ChildID, false)
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info("scheduler started", "children", len(refs), "interval", s.interval)
	return nil
}

// Schedule starts a recurring evaluation loop for a child. An existing loop
// for the same child is kept, never replaced.
func (s *Scheduler) Schedule(parentID, childID string) {
	if !s.enabled {
		return
	}
	if !s.register(parentID, childID) {
		return
	}

	s.logger.Info("evaluation scheduled", "parent", parentID, "child", childID)
	go s.loop(parentID, childID, true)
}

// Active reports whether a child currently has an evaluation loop.
func (s *Scheduler) Active(parentID, childID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[parentID+"/"+childID]
	return ok
}

func (s *Scheduler) register(parentID, childID string) bool {
	key := parentID + "/" + childID

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[key]; ok {
		return false
	}
	s.active[key] = struct{}{}
	return true
}

func (s *Scheduler) loop(parentID, childID string, immediate bool) {
	if immediate {
		s.runOnce(s.base, parentID, childID)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.base.Done():
			return
		case <-ticker.C:
			s.runOnce(s.base, parentID, childID)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, parentID, childID string) {
	if err := s.evaluate(ctx, parentID, childID); err != nil {
		s.logger.Warn(
			"evaluation pass failed",
			"parent", parentID,
			"child", childID,
			"error", err,
		)
	}
}

// evaluate runs one pass over the current day's stored samples. A child with
// no samples today is skipped silently; scoring failures surface to the
// caller and leave the persisted risk level untouched.
func (s *Scheduler) evaluate(ctx context.Context, parentID, childID string) error {
	date := time.Now().UTC().Format(dateFormat)

	summary, err := s.usage.SummaryForDay(ctx, parentID, childID, date)
	if errors.Is(err, usage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	vector := features.Derive(*summary)
	_, err = s.scorer.Evaluate(ctx, parentID, childID, vector)
	return err
}
