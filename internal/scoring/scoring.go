// Package scoring submits derived feature vectors to the remote risk-scoring
// endpoint and persists the resulting risk level on the child record.
package scoring

import "errors"

// ErrUnavailable indicates the scoring round-trip failed. The previously
// persisted risk level stands; the next scheduled evaluation retries.
var ErrUnavailable = errors.New("risk scoring unavailable")

// Level is the coarse risk indicator derived from a child's usage pattern.
type Level string

const (
	Low     Level = "Low"
	Medium  Level = "Medium"
	High    Level = "High"
	Unknown Level = "Unknown"
)

// levelFromCode maps the endpoint's integer code to a Level. Codes outside
// {0,1,2} and absent codes map to Unknown.
func levelFromCode(code *int) Level {
	if code == nil {
		return Unknown
	}
	switch *code {
	case 0:
		return Low
	case 1:
		return Medium
	case 2:
		return High
	default:
		return Unknown
	}
}
