// Package features derives fixed-schema feature vectors from daily usage
// summaries. The vector field set matches the risk-scoring endpoint's request
// schema; fields not derivable from usage telemetry are filled from declared
// defaults until a real behavioral signal source exists.
package features

import "github.com/sigmacoders/guardian/internal/usage"

// Defaults for features no device signal currently supplies. Callers that
// obtain real values override them through DeriveWith.
const (
	DefaultNightUsageHours    = 1.5
	DefaultPhoneChecksPerDay  = 30.0
	DefaultNightUsageRatio    = 0.2
	DefaultAgeYears           = 10.0
	engagementIntensityFactor = 50.0
)

// Vector is the feature map posted to the scoring endpoint. Field order and
// names are part of the wire contract.
type Vector struct {
	AvgScreenTime       float64 `json:"avg_screen_time"`
	SocialMediaHours    float64 `json:"social_media_hours"`
	GamingHours         float64 `json:"gaming_hours"`
	NightUsage          float64 `json:"night_usage"`
	PhoneChecksPerDay   float64 `json:"phone_checks_per_day"`
	Age                 float64 `json:"age"`
	EntertainmentRatio  float64 `json:"entertainment_ratio"`
	NightUsageRatio     float64 `json:"night_usage_ratio"`
	EngagementIntensity float64 `json:"engagement_intensity"`
	GamingRatio         float64 `json:"gaming_ratio"`
	SocialRatio         float64 `json:"social_ratio"`
}

// Overrides supplies values for features that usage telemetry cannot derive.
type Overrides struct {
	NightUsageHours   float64
	PhoneChecksPerDay float64
	NightUsageRatio   float64
	AgeYears          float64
}

// DefaultOverrides returns the declared placeholder values.
func DefaultOverrides() Overrides {
	return Overrides{
		NightUsageHours:   DefaultNightUsageHours,
		PhoneChecksPerDay: DefaultPhoneChecksPerDay,
		NightUsageRatio:   DefaultNightUsageRatio,
		AgeYears:          DefaultAgeYears,
	}
}

// Derive converts a usage summary into a feature vector using the default
// placeholder overrides.
func Derive(summary usage.Summary) Vector {
	return DeriveWith(summary, DefaultOverrides())
}

// DeriveWith converts a usage summary into a feature vector. All ratios are 0
// when total usage is 0.
func DeriveWith(summary usage.Summary, ov Overrides) Vector {
	totalHours := float64(summary.TotalMinutes) / 60
	socialHours := float64(summary.SocialMinutes) / 60
	gamingHours := float64(summary.GamingMinutes) / 60

	v := Vector{
		AvgScreenTime:       totalHours,
		SocialMediaHours:    socialHours,
		GamingHours:         gamingHours,
		NightUsage:          ov.NightUsageHours,
		PhoneChecksPerDay:   ov.PhoneChecksPerDay,
		Age:                 ov.AgeYears,
		NightUsageRatio:     ov.NightUsageRatio,
		EngagementIntensity: totalHours * engagementIntensityFactor,
	}

	if totalHours > 0 {
		v.EntertainmentRatio = (socialHours + gamingHours) / totalHours
		v.GamingRatio = gamingHours / totalHours
		v.SocialRatio = socialHours / totalHours
	}

	return v
}
