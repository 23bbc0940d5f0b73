package usage

import (
	"sort"
	"time"
)

const topAppLimit = 5

// Aggregate reduces a day's raw samples into a Summary. Samples with zero
// foreground time are excluded; the top five by foreground time become
// TopApps with millisecond durations converted to whole minutes, skipping
// samples that round down to zero minutes; total and per-category minutes
// cover every sample. Aggregating the same samples twice yields identical
// summaries except for LastUpdated.
func Aggregate(samples []Sample, date string, cat Categorizer, now time.Time) Summary {
	active := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.ForegroundMillis > 0 {
			active = append(active, s)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].ForegroundMillis > active[j].ForegroundMillis
	})

	summary := Summary{
		TopApps:     []TopApp{},
		Date:        date,
		LastUpdated: now,
	}

	var totalMillis, socialMillis, gamingMillis int64
	for _, s := range active {
		category := cat.Categorize(s.AppID)

		totalMillis += s.ForegroundMillis
		switch category {
		case CategorySocial:
			socialMillis += s.ForegroundMillis
		case CategoryGame:
			gamingMillis += s.ForegroundMillis
		}

		mins := minutes(s.ForegroundMillis)
		if mins > 0 && len(summary.TopApps) < topAppLimit {
			summary.TopApps = append(summary.TopApps, TopApp{
				AppName:      s.DisplayName(),
				UsageMinutes: mins,
				Category:     category,
			})
		}
	}

	summary.TotalMinutes = minutes(totalMillis)
	summary.SocialMinutes = minutes(socialMillis)
	summary.GamingMinutes = minutes(gamingMillis)

	return summary
}

func minutes(millis int64) int {
	return int(millis / 1000 / 60)
}
