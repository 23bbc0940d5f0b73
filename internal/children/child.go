// Package children implements the child record domain for Guardian.
// A child record is keyed by (parentId, childId) and carries the merged
// daily usage summary and the latest risk level. Writers touch only their
// own column, so concurrent usage and risk updates never clobber each other.
package children

import (
	"encoding/json"
	"time"
)

// RiskUnknown is the default risk level for new records and the fallback
// on any scoring failure.
const RiskUnknown = "Unknown"

// Child is a monitored child record.
type Child struct {
	ParentID  string          `json:"parent_id"`
	ChildID   string          `json:"child_id"`
	Name      string          `json:"name"`
	RiskLevel string          `json:"risk_level"`
	Usage     json.RawMessage `json:"usage,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Ref identifies a child record without its payload.
type Ref struct {
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
}

// CreateCommand carries the data needed to register a new child.
type CreateCommand struct {
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
	Name     string `json:"name"`
}
