package usage_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/sigmacoders/guardian/internal/usage"
)

var testTime = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestAggregateScenario(t *testing.T) {
	samples := []usage.Sample{
		{AppID: "com.example.appa", AppName: "AppA", ForegroundMillis: 90 * 60 * 1000},
		{AppID: "com.example.appb", AppName: "AppB", ForegroundMillis: 45 * 60 * 1000},
		{AppID: "com.example.appc", AppName: "AppC", ForegroundMillis: 0},
	}

	summary := usage.Aggregate(samples, "2026-08-31", usage.DefaultCategorizer(), testTime)

	if summary.TotalMinutes != 135 {
		t.Errorf("TotalMinutes = %d, want 135", summary.TotalMinutes)
	}
	if len(summary.TopApps) != 2 {
		t.Fatalf("len(TopApps) = %d, want 2", len(summary.TopApps))
	}
	if summary.TopApps[0].AppName != "AppA" || summary.TopApps[0].UsageMinutes != 90 {
		t.Errorf("TopApps[0] = %+v, want AppA/90", summary.TopApps[0])
	}
	if summary.TopApps[1].AppName != "AppB" || summary.TopApps[1].UsageMinutes != 45 {
		t.Errorf("TopApps[1] = %+v, want AppB/45", summary.TopApps[1])
	}
	if summary.Date != "2026-08-31" {
		t.Errorf("Date = %q", summary.Date)
	}
}

func TestAggregateTopAppProperties(t *testing.T) {
	var samples []usage.Sample
	for i := range 12 {
		samples = append(samples, usage.Sample{
			AppID:            fmt.Sprintf("com.example.app%d", i),
			ForegroundMillis: int64(i) * 10 * 60 * 1000,
		})
	}

	summary := usage.Aggregate(samples, "2026-08-31", usage.DefaultCategorizer(), testTime)

	if len(summary.TopApps) > 5 {
		t.Fatalf("len(TopApps) = %d, want <= 5", len(summary.TopApps))
	}

	topTotal := 0
	for i, app := range summary.TopApps {
		if app.UsageMinutes == 0 {
			t.Errorf("TopApps[%d] has zero minutes", i)
		}
		if i > 0 && app.UsageMinutes > summary.TopApps[i-1].UsageMinutes {
			t.Errorf("TopApps not sorted descending at %d", i)
		}
		topTotal += app.UsageMinutes
	}

	if topTotal > summary.TotalMinutes {
		t.Errorf("top app minutes %d exceed total %d", topTotal, summary.TotalMinutes)
	}
}

func TestAggregateTotalCoversAllApps(t *testing.T) {
	var samples []usage.Sample
	for i := range 8 {
		samples = append(samples, usage.Sample{
			AppID:            fmt.Sprintf("com.example.app%d", i),
			ForegroundMillis: 10 * 60 * 1000,
		})
	}

	summary := usage.Aggregate(samples, "2026-08-31", usage.DefaultCategorizer(), testTime)

	if summary.TotalMinutes != 80 {
		t.Errorf("TotalMinutes = %d, want 80 (all eight apps)", summary.TotalMinutes)
	}
	if len(summary.TopApps) != 5 {
		t.Errorf("len(TopApps) = %d, want 5", len(summary.TopApps))
	}
}

func TestAggregateCategoryRollups(t *testing.T) {
	samples := []usage.Sample{
		{AppID: "com.instagram.android", ForegroundMillis: 60 * 60 * 1000},
		{AppID: "com.snapchat.android", ForegroundMillis: 30 * 60 * 1000},
		{AppID: "com.roblox.client", ForegroundMillis: 45 * 60 * 1000},
		{AppID: "com.android.chrome", ForegroundMillis: 15 * 60 * 1000},
	}

	summary := usage.Aggregate(samples, "2026-08-31", usage.DefaultCategorizer(), testTime)

	if summary.SocialMinutes != 90 {
		t.Errorf("SocialMinutes = %d, want 90", summary.SocialMinutes)
	}
	if summary.GamingMinutes != 45 {
		t.Errorf("GamingMinutes = %d, want 45", summary.GamingMinutes)
	}
	if summary.TotalMinutes != 150 {
		t.Errorf("TotalMinutes = %d, want 150", summary.TotalMinutes)
	}
}

func TestAggregateSubMinuteSamplesExcludedFromTopApps(t *testing.T) {
	samples := []usage.Sample{
		{AppID: "com.example.big", AppName: "Big", ForegroundMillis: 5 * 60 * 1000},
		{AppID: "com.example.tiny", AppName: "Tiny", ForegroundMillis: 30 * 1000},
		{AppID: "com.example.small", AppName: "Small", ForegroundMillis: 45 * 1000},
	}

	summary := usage.Aggregate(samples, "2026-08-31", usage.DefaultCategorizer(), testTime)

	if len(summary.TopApps) != 1 {
		t.Fatalf("len(TopApps) = %d, want 1 (sub-minute samples excluded)", len(summary.TopApps))
	}
	if summary.TopApps[0].AppName != "Big" {
		t.Errorf("TopApps[0] = %+v, want Big", summary.TopApps[0])
	}
	for _, app := range summary.TopApps {
		if app.UsageMinutes == 0 {
			t.Errorf("TopApps contains zero-minute entry: %+v", app)
		}
	}

	// 5min + 30s + 45s = 375s; sub-minute samples still count toward the total.
	if summary.TotalMinutes != 6 {
		t.Errorf("TotalMinutes = %d, want 6", summary.TotalMinutes)
	}
}

func TestAggregateSubMinuteSamplesDoNotConsumeTopSlots(t *testing.T) {
	samples := []usage.Sample{
		{AppID: "com.example.tiny", ForegroundMillis: 59 * 1000},
	}
	for i := range 5 {
		samples = append(samples, usage.Sample{
			AppID:            fmt.Sprintf("com.example.app%d", i),
			ForegroundMillis: int64(i+1) * 60 * 1000,
		})
	}

	summary := usage.Aggregate(samples, "2026-08-31", usage.DefaultCategorizer(), testTime)

	if len(summary.TopApps) != 5 {
		t.Fatalf("len(TopApps) = %d, want 5", len(summary.TopApps))
	}
	for _, app := range summary.TopApps {
		if app.UsageMinutes == 0 {
			t.Errorf("zero-minute entry holds a top slot: %+v", app)
		}
	}
}

func TestAggregateMillisecondTruncation(t *testing.T) {
	samples := []usage.Sample{
		{AppID: "com.example.app", ForegroundMillis: 90*1000 + 500},
	}

	summary := usage.Aggregate(samples, "2026-08-31", usage.DefaultCategorizer(), testTime)

	if summary.TopApps[0].UsageMinutes != 1 {
		t.Errorf("UsageMinutes = %d, want 1 (integer division)", summary.TopApps[0].UsageMinutes)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	samples := []usage.Sample{
		{AppID: "com.instagram.android", ForegroundMillis: 42 * 60 * 1000},
		{AppID: "com.roblox.client", ForegroundMillis: 17 * 60 * 1000},
		{AppID: "com.example.other", ForegroundMillis: 5 * 60 * 1000},
	}

	first := usage.Aggregate(samples, "2026-08-31", usage.DefaultCategorizer(), testTime)
	second := usage.Aggregate(samples, "2026-08-31", usage.DefaultCategorizer(), testTime.Add(time.Hour))

	first.LastUpdated = time.Time{}
	second.LastUpdated = time.Time{}

	if fmt.Sprintf("%+v", first) != fmt.Sprintf("%+v", second) {
		t.Errorf("re-aggregation differs:\n%+v\n%+v", first, second)
	}
}

func TestDisplayNameFallback(t *testing.T) {
	tests := []struct {
		name   string
		sample usage.Sample
		want   string
	}{
		{"reported name wins", usage.Sample{AppID: "com.example.app", AppName: "My App"}, "My App"},
		{"derives from identifier", usage.Sample{AppID: "com.instagram.android"}, "Android"},
		{"single segment", usage.Sample{AppID: "youtube"}, "Youtube"},
		{"trailing dot keeps identifier", usage.Sample{AppID: "com.example."}, "com.example."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sample.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"permission denied", usage.ErrPermissionDenied, http.StatusForbidden},
		{"invalid report", usage.ErrInvalidReport, http.StatusBadRequest},
		{"not found", usage.ErrNotFound, http.StatusNotFound},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped invalid", fmt.Errorf("decode failed: %w", usage.ErrInvalidReport), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
