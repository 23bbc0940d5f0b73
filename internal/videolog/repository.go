package videolog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sigmacoders/guardian/pkg/pagination"
	"github.com/sigmacoders/guardian/pkg/query"
	"github.com/sigmacoders/guardian/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a video log repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "videolog"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Channel")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count video logs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query video logs: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Append(ctx context.Context, cmd AppendCommand) (*Entry, error) {
	if cmd.ParentID == "" || cmd.ChildID == "" || cmd.Title == "" {
		return nil, ErrInvalid
	}

	channel := cmd.Channel
	if channel == "" {
		channel = UnknownChannel
	}

	q := `
		INSERT INTO video_logs(id, parent_id, child_id, title, channel, category, confidence, safety)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, parent_id, child_id, title, channel, category, confidence, safety, detected_at`

	insertArgs := []any{
		uuid.New(),
		cmd.ParentID,
		cmd.ChildID,
		cmd.Title,
		channel,
		cmd.Category,
		cmd.Confidence,
		cmd.Safety,
	}

	e, err := repository.QueryOne(ctx, r.db, q, insertArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("append video log: %w", err)
	}

	r.logger.Info(
		"video log appended",
		"parent", e.ParentID,
		"child", e.ChildID,
		"category", e.Category,
		"safety", e.Safety,
	)
	return &e, nil
}
