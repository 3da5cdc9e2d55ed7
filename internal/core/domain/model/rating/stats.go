package rating

import (
	"math"
	"time"
)

// trailingWindow is the length of the recent-activity window in Stats.
const trailingWindow = 30 * 24 * time.Hour

// WindowStats summarizes the ratings inside the trailing window.
type WindowStats struct {
	Count   int
	Average float64
}

// Stats is the aggregated view over one party's received ratings.
type Stats struct {
	Total   int
	Average float64

	// Histogram counts ratings per score; index 0 holds score 1.
	Histogram [ScoreMax]int

	// CategoryAverages averages each category over the ratings that carry
	// it; ratings without the category do not count toward its denominator.
	CategoryAverages map[string]float64

	// Last30Days covers the ratings submitted within the trailing 30 days
	// measured backwards from the instant the stats were computed.
	Last30Days WindowStats
}

// Average returns the mean score of the ratings rounded to one decimal,
// or 0 for an empty set. This is the value written to the rated aggregate's
// reputation.
func Average(ratings []*Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.score
	}
	return round1(float64(sum) / float64(len(ratings)))
}

// StatsFor computes the full aggregated view over one party's ratings.
// The trailing window is measured from now, so the same record set can
// produce different window stats at different instants.
func StatsFor(ratings []*Rating, now time.Time) Stats {
	stats := Stats{
		Total:            len(ratings),
		Average:          Average(ratings),
		CategoryAverages: map[string]float64{},
	}

	categorySums := map[string]int{}
	categoryCounts := map[string]int{}
	windowSum := 0
	windowStart := now.Add(-trailingWindow)

	for _, r := range ratings {
		stats.Histogram[r.score-ScoreMin]++

		for name, score := range r.categories {
			categorySums[name] += score
			categoryCounts[name]++
		}

		if !r.createdAt.Before(windowStart) && !r.createdAt.After(now) {
			stats.Last30Days.Count++
			windowSum += r.score
		}
	}

	for name, sum := range categorySums {
		stats.CategoryAverages[name] = round1(float64(sum) / float64(categoryCounts[name]))
	}
	if stats.Last30Days.Count > 0 {
		stats.Last30Days.Average = round1(float64(windowSum) / float64(stats.Last30Days.Count))
	}

	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
