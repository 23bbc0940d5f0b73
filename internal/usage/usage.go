// Package usage implements the usage telemetry domain for Guardian.
// It ingests per-day application usage samples reported by device agents,
// stores the raw samples, and aggregates them into bounded daily summaries.
package usage

import "time"

// Sample is one application's foreground time within a reported day.
// AppName may be empty; DisplayName derives a fallback from the identifier.
type Sample struct {
	AppID            string `json:"app_id"`
	AppName          string `json:"app_name,omitempty"`
	ForegroundMillis int64  `json:"foreground_ms"`
}

// Report is the ingest payload a device agent posts for the current local day.
// PermissionDenied marks a pass where the agent could not read usage
// statistics; such reports carry no samples and are not persisted.
type Report struct {
	Date             string    `json:"date"`
	CollectedAt      time.Time `json:"collected_at"`
	PermissionDenied bool      `json:"permission_denied,omitempty"`
	Samples          []Sample  `json:"samples"`
}

// TopApp is one entry of a summary's ranked application list.
type TopApp struct {
	AppName      string   `json:"app_name"`
	UsageMinutes int      `json:"usage_minutes"`
	Category     Category `json:"category"`
}

// Summary is the bounded per-day aggregate merged into the child record.
// TopApps is sorted descending by minutes and capped at five entries;
// TotalMinutes covers every sampled application, not just the top five.
type Summary struct {
	TotalMinutes  int       `json:"total_minutes"`
	TopApps       []TopApp  `json:"top_apps"`
	SocialMinutes int       `json:"social_minutes"`
	GamingMinutes int       `json:"gaming_minutes"`
	Date          string    `json:"date"`
	LastUpdated   time.Time `json:"last_updated"`
}
