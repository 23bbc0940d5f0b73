package children

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sigmacoders/guardian/pkg/pagination"
	"github.com/sigmacoders/guardian/pkg/query"
	"github.com/sigmacoders/guardian/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a child repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "children"),
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
) (*pagination.PageResult[Child], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "ChildID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count children: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanChild)
	if err != nil {
		return nil, fmt.Errorf("query children: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, parentID, childID string) (*Child, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ParentID", parentID).
		WhereEquals("ChildID", childID).
		Build()

	c, err := repository.QueryOne(ctx, r.db, q, args, scanChild)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Child, error) {
	if cmd.ParentID == "" || cmd.ChildID == "" {
		return nil, ErrInvalid
	}

	q := `
		INSERT INTO children(parent_id, child_id, name)
		VALUES ($1, $2, $3)
		RETURNING parent_id, child_id, name, risk_level, usage, created_at, updated_at`

	insertArgs := []any{cmd.ParentID, cmd.ChildID, cmd.Name}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Child, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanChild)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("child created", "parent", c.ParentID, "child", c.ChildID)
	return &c, nil
}

func (r *repo) Refs(ctx context.Context) ([]Ref, error) {
	refs, err := repository.QueryMany(
		ctx, r.db,
		"SELECT parent_id, child_id FROM children ORDER BY parent_id, child_id",
		nil,
		func(s repository.Scanner) (Ref, error) {
			var ref Ref
			err := s.Scan(&ref.ParentID, &ref.ChildID)
			return ref, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query child refs: %w", err)
	}
	return refs, nil
}

func (r *repo) SetUsage(ctx context.Context, parentID, childID string, usage json.RawMessage) error {
	if parentID == "" || childID == "" {
		return ErrInvalid
	}

	q := `
		INSERT INTO children(parent_id, child_id, name, usage)
		VALUES ($1, $2, '', $3)
		ON CONFLICT (parent_id, child_id)
		DO UPDATE SET usage = EXCLUDED.usage, updated_at = now()`

	if _, err := r.db.ExecContext(ctx, q, parentID, childID, []byte(usage)); err != nil {
		return fmt.Errorf("merge usage summary: %w", err)
	}

	r.logger.Info("usage summary merged", "parent", parentID, "child", childID)
	return nil
}

func (r *repo) SetRiskLevel(ctx context.Context, parentID, childID, level string) error {
	if parentID == "" || childID == "" {
		return ErrInvalid
	}

	q := `
		INSERT INTO children(parent_id, child_id, name, risk_level)
		VALUES ($1, $2, '', $3)
		ON CONFLICT (parent_id, child_id)
		DO UPDATE SET risk_level = EXCLUDED.risk_level, updated_at = now()`

	if _, err := r.db.ExecContext(ctx, q, parentID, childID, level); err != nil {
		return fmt.Errorf("merge risk level: %w", err)
	}

	r.logger.Info("risk level merged", "parent", parentID, "child", childID, "level", level)
	return nil
}
