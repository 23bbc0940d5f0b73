package videolog

import (
	"context"

	"github.com/sigmacoders/guardian/pkg/pagination"
)

// System defines the public contract for video log operations. The log is
// append-only; entries are never updated or deleted.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entry], error)

	Append(ctx context.Context, cmd AppendCommand) (*Entry, error)
}
