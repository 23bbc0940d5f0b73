package pipeline

import (
	"regexp"
	"strings"
)

const minTitleLength = 8

// UI chrome strings the on-screen detector is known to pick up.
var titleBlocklist = map[string]bool{
	"live":          true,
	"comments":      true,
	"shorts":        true,
	"home":          true,
	"library":       true,
	"subscriptions": true,
	"trending":      true,
	"search":        true,
	"share":         true,
	"like":          true,
	"dislike":       true,
}

var timestampPattern = regexp.MustCompile(`^\d{1,2}:\d{2}`)

// ValidTitle reports whether a detected title looks like real video content
// rather than UI chrome: long enough, multi-word, not a playback timestamp,
// and not a known chrome string.
func ValidTitle(title string) bool {
	t := strings.TrimSpace(title)

	if len(t) < minTitleLength {
		return false
	}
	if timestampPattern.MatchString(t) {
		return false
	}
	if !strings.Contains(t, " ") {
		return false
	}
	if titleBlocklist[strings.ToLower(t)] {
		return false
	}

	return true
}
