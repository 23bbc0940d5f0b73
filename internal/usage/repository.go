package usage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sigmacoders/guardian/internal/children"
	"github.com/sigmacoders/guardian/pkg/repository"
	"github.com/sigmacoders/guardian/pkg/storage"
)

const dateFormat = "2006-01-02"

type repo struct {
	db       *sql.DB
	storage  storage.System
	children children.System
	cat      Categorizer
	logger   *slog.Logger
}

// New creates a usage repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	childSys children.System,
	cat Categorizer,
	logger *slog.Logger,
) System {
	return &repo{
		db:       db,
		storage:  store,
		children: childSys,
		cat:      cat,
		logger:   logger.With("system", "usage"),
	}
}

func (r *repo) Handler(maxBodySize int64, registrar Registrar) *Handler {
	return NewHandler(r, r.logger, maxBodySize, registrar)
}

// Ingest validates and stores a day's raw samples, aggregates them, and
// merges the resulting summary into the child record. The raw report is
// archived to blob storage on a best-effort basis.
func (r *repo) Ingest(ctx context.Context, parentID, childID string, report Report) (*Summary, error) {
	if parentID == "" || childID == "" {
		return nil, fmt.Errorf("%w: missing parent or child id", ErrInvalidReport)
	}

	if report.PermissionDenied {
		r.logger.Warn("usage access revoked on device", "parent", parentID, "child", childID)
		return nil, ErrPermissionDenied
	}

	if _, err := time.Parse(dateFormat, report.Date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidReport, report.Date)
	}

	for _, s := range report.Samples {
		if s.AppID == "" {
			return nil, fmt.Errorf("%w: sample missing app id", ErrInvalidReport)
		}
		if s.ForegroundMillis < 0 {
			return nil, fmt.Errorf("%w: negative foreground time for %s", ErrInvalidReport, s.AppID)
		}
	}

	r.archive(ctx, parentID, childID, report)

	if err := r.replaceDay(ctx, parentID, childID, report); err != nil {
		return nil, err
	}

	summary := Aggregate(report.Samples, report.Date, r.cat, time.Now().UTC())

	raw, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	if err := r.children.SetUsage(ctx, parentID, childID, raw); err != nil {
		return nil, err
	}

	r.logger.Info(
		"usage report ingested",
		"parent", parentID,
		"child", childID,
		"date", report.Date,
		"apps", len(report.Samples),
		"total_minutes", summary.TotalMinutes,
	)
	return &summary, nil
}

func (r *repo) SamplesForDay(ctx context.Context, parentID, childID, date string) ([]Sample, error) {
	q := `
		SELECT app_id, app_name, foreground_ms
		FROM usage_samples
		WHERE parent_id = $1 AND child_id = $2 AND date = $3
		ORDER BY foreground_ms DESC`

	samples, err := repository.QueryMany(
		ctx, r.db, q,
		[]any{parentID, childID, date},
		func(s repository.Scanner) (Sample, error) {
			var smp Sample
			err := s.Scan(&smp.AppID, &smp.AppName, &smp.ForegroundMillis)
			return smp, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	return samples, nil
}

func (r *repo) SummaryForDay(ctx context.Context, parentID, childID, date string) (*Summary, error) {
	samples, err := r.SamplesForDay(ctx, parentID, childID, date)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNotFound
	}

	summary := Aggregate(samples, date, r.cat, time.Now().UTC())
	return &summary, nil
}

// replaceDay swaps the stored sample set for (parent, child, date) with the
// report's samples. Zero-foreground samples are dropped at this boundary.
func (r *repo) replaceDay(ctx context.Context, parentID, childID string, report Report) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(
			ctx,
			"DELETE FROM usage_samples WHERE parent_id = $1 AND child_id = $2 AND date = $3",
			parentID, childID, report.Date,
		); err != nil {
			return struct{}{}, fmt.Errorf("clear day samples: %w", err)
		}

		q := `
			INSERT INTO usage_samples(parent_id, child_id, date, app_id, app_name, foreground_ms)
			VALUES ($1, $2, $3, $4, $5, $6)`

		for _, s := range report.Samples {
			if s.ForegroundMillis == 0 {
				continue
			}
			if _, err := tx.ExecContext(
				ctx, q,
				parentID, childID, report.Date, s.AppID, s.AppName, s.ForegroundMillis,
			); err != nil {
				return struct{}{}, fmt.Errorf("insert sample %s: %w", s.AppID, err)
			}
		}

		return struct{}{}, nil
	})
	return err
}

// RawReport streams the archived raw report for a stored day. The archive
// holds the last report received for the day, mirroring replaceDay.
func (r *repo) RawReport(ctx context.Context, parentID, childID, date string) (io.ReadCloser, error) {
	reader, err := r.storage.Download(ctx, archiveKey(parentID, childID, date))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download archived report: %w", err)
	}
	return reader, nil
}

func (r *repo) archive(ctx context.Context, parentID, childID string, report Report) {
	data, err := json.Marshal(report)
	if err != nil {
		r.logger.Warn("archive encode failed", "error", err)
		return
	}

	key := archiveKey(parentID, childID, report.Date)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		r.logger.Warn("archive upload failed", "key", key, "error", err)
	}
}

func archiveKey(parentID, childID, date string) string {
	return fmt.Sprintf("usage/%s/%s/%s.json", parentID, childID, date)
}
