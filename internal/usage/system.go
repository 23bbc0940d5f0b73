package usage

import (
	"context"
	"io"
)

// Registrar schedules recurring risk evaluation for a child after a
// successful ingest. Scheduling an already-registered child is a no-op.
type Registrar interface {
	Schedule(parentID, childID string)
}

// System defines the public contract for usage domain operations.
type System interface {
	Handler(maxBodySize int64, registrar Registrar) *Handler

	Ingest(ctx context.Context, parentID, childID string, report Report) (*Summary, error)
	SamplesForDay(ctx context.Context, parentID, childID, date string) ([]Sample, error)
	SummaryForDay(ctx context.Context, parentID, childID, date string) (*Summary, error)
	RawReport(ctx context.Context, parentID, childID, date string) (io.ReadCloser, error)
}
