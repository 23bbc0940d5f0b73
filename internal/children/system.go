package children

import (
	"context"
	"encoding/json"

	"github.com/sigmacoders/guardian/pkg/pagination"
)

// System defines the public contract for child record operations.
// SetUsage and SetRiskLevel are merge writes: they create the record if
// absent and overwrite only their own field.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Child], error)

	Find(ctx context.Context, parentID, childID string) (*Child, error)
	Create(ctx context.Context, cmd CreateCommand) (*Child, error)
	Refs(ctx context.Context) ([]Ref, error)

	SetUsage(ctx context.Context, parentID, childID string, usage json.RawMessage) error
	SetRiskLevel(ctx context.Context, parentID, childID, level string) error
}
