// Package credentials resolves named third-party API keys from the
// application configuration store. Keys are provisioned out of band and
// looked up by logical name (e.g. "huggingface", "youtube") at call time.
package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// ErrKeyUnavailable indicates a named key is absent or empty.
var ErrKeyUnavailable = errors.New("api key unavailable")

// Source resolves API keys by logical name.
type Source interface {
	Key(ctx context.Context, name string) (string, error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a credential source backed by the app_config table.
func New(db *sql.DB, logger *slog.Logger) Source {
	return &repo{
		db:     db,
		logger: logger.With("system", "credentials"),
	}
}

func (r *repo) Key(ctx context.Context, name string) (string, error) {
	var value string
	err := r.db.QueryRowContext(
		ctx,
		"SELECT value FROM app_config WHERE name = $1",
		name,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrKeyUnavailable, name)
	}
	if err != nil {
		return "", fmt.Errorf("lookup key %s: %w", name, err)
	}
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrKeyUnavailable, name)
	}

	return value, nil
}
