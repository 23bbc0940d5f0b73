// Package classifier calls the remote zero-shot text classification endpoint
// and derives content safety verdicts from its label scores. The endpoint has
// returned two response shapes over time (a ranked label list and a parallel
// labels/scores object); both are parsed into one Response type.
package classifier

import (
	"errors"
	"strings"
)

// ErrUnavailable indicates the classification round-trip failed or returned
// an unparsable body. A model-loading status is treated the same way: the
// next distinct title starts fresh.
var ErrUnavailable = errors.New("content classification unavailable")

// Labels is the fixed candidate label set submitted with every request.
// "safe" acts as the catch-all.
var Labels = []string{
	"educational",
	"entertainment",
	"gaming",
	"violent",
	"adult",
	"harmful",
	"safe",
}

// Safety is the binary verdict attached to one piece of detected content.
type Safety string

const (
	Safe   Safety = "safe"
	Unsafe Safety = "unsafe"
)

// Per-label score thresholds for the richer response shape.
const (
	adultThreshold   = 0.40
	harmfulThreshold = 0.35
	violentThreshold = 0.35
)

var unsafeCategories = map[string]bool{
	"violent": true,
	"adult":   true,
	"harmful": true,
}

// Response is one classification result. Category and Confidence always hold
// the top-ranked label; Scores is populated only when the endpoint returned
// per-label scores.
type Response struct {
	Category   string
	Confidence float64
	Scores     map[string]float64
}

// Verdict derives the safety verdict. When per-label scores are available the
// threshold rule decides; otherwise the verdict is unsafe exactly when the
// top category is one of the unsafe labels.
func (r *Response) Verdict() Safety {
	if r.Scores != nil {
		if r.Scores["adult"] > adultThreshold ||
			r.Scores["harmful"] > harmfulThreshold ||
			r.Scores["violent"] > violentThreshold {
			return Unsafe
		}
		return Safe
	}

	if unsafeCategories[Normalize(r.Category)] {
		return Unsafe
	}
	return Safe
}

// Normalize canonicalizes a label for comparison against the label set.
func Normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
