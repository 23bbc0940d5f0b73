package features_test

import (
	"math"
	"testing"

	"github.com/sigmacoders/guardian/internal/features"
	"github.com/sigmacoders/guardian/internal/usage"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDeriveZeroTotalGuard(t *testing.T) {
	v := features.Derive(usage.Summary{})

	if v.EntertainmentRatio != 0 {
		t.Errorf("EntertainmentRatio = %v, want 0", v.EntertainmentRatio)
	}
	if v.GamingRatio != 0 {
		t.Errorf("GamingRatio = %v, want 0", v.GamingRatio)
	}
	if v.SocialRatio != 0 {
		t.Errorf("SocialRatio = %v, want 0", v.SocialRatio)
	}
	if v.EngagementIntensity != 0 {
		t.Errorf("EngagementIntensity = %v, want 0", v.EngagementIntensity)
	}
}

func TestDeriveFormulas(t *testing.T) {
	summary := usage.Summary{
		TotalMinutes:  240,
		SocialMinutes: 60,
		GamingMinutes: 30,
	}

	v := features.Derive(summary)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"avg_screen_time", v.AvgScreenTime, 4.0},
		{"social_media_hours", v.SocialMediaHours, 1.0},
		{"gaming_hours", v.GamingHours, 0.5},
		{"entertainment_ratio", v.EntertainmentRatio, 1.5 / 4.0},
		{"gaming_ratio", v.GamingRatio, 0.5 / 4.0},
		{"social_ratio", v.SocialRatio, 1.0 / 4.0},
		{"engagement_intensity", v.EngagementIntensity, 200.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !almostEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestDerivePlaceholderDefaults(t *testing.T) {
	v := features.Derive(usage.Summary{TotalMinutes: 60})

	if v.NightUsage != features.DefaultNightUsageHours {
		t.Errorf("NightUsage = %v, want default %v", v.NightUsage, features.DefaultNightUsageHours)
	}
	if v.PhoneChecksPerDay != features.DefaultPhoneChecksPerDay {
		t.Errorf("PhoneChecksPerDay = %v, want default %v", v.PhoneChecksPerDay, features.DefaultPhoneChecksPerDay)
	}
	if v.NightUsageRatio != features.DefaultNightUsageRatio {
		t.Errorf("NightUsageRatio = %v, want default %v", v.NightUsageRatio, features.DefaultNightUsageRatio)
	}
	if v.Age != features.DefaultAgeYears {
		t.Errorf("Age = %v, want default %v", v.Age, features.DefaultAgeYears)
	}
}

func TestDeriveWithOverrides(t *testing.T) {
	ov := features.Overrides{
		NightUsageHours:   3.0,
		PhoneChecksPerDay: 80,
		NightUsageRatio:   0.5,
		AgeYears:          14,
	}

	v := features.DeriveWith(usage.Summary{TotalMinutes: 120}, ov)

	if v.NightUsage != 3.0 || v.PhoneChecksPerDay != 80 || v.NightUsageRatio != 0.5 || v.Age != 14 {
		t.Errorf("overrides not applied: %+v", v)
	}
	if v.AvgScreenTime != 2.0 {
		t.Errorf("AvgScreenTime = %v, want 2", v.AvgScreenTime)
	}
}
