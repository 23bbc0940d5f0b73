// Package videolog implements the append-only log of classified video
// content. Entries are immutable once written; an append failure never
// propagates back into the classification pipeline's result.
package videolog

import (
	"time"

	"github.com/google/uuid"
)

// UnknownChannel is recorded when the detection carried no channel name.
const UnknownChannel = "Unknown"

// Entry is one classified video detection.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	ParentID   string    `json:"parent_id"`
	ChildID    string    `json:"child_id"`
	Title      string    `json:"title"`
	Channel    string    `json:"channel"`
	Category   string    `json:"category"`
	Confidence float64   `json:"confidence"`
	Safety     string    `json:"safety"`
	DetectedAt time.Time `json:"detected_at"`
}

// AppendCommand carries the data needed to record a classified detection.
type AppendCommand struct {
	ParentID   string
	ChildID    string
	Title      string
	Channel    string
	Category   string
	Confidence float64
	Safety     string
}
