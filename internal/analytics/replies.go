package analytics

import (
	"sort"
	"time"

	"karmaforge/internal/model"
)

// HourlyReplies aggregates posted replies into per-hour buckets keyed by
// the UTC hour they were posted in.
func HourlyReplies(events []model.ReplyEvent) map[time.Time]int {
	buckets := make(map[time.Time]int)
	for _, e := range events {
		ts := e.Timestamp.UTC()
		key := time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), 0, 0, 0, time.UTC)
		buckets[key]++
	}
	return buckets
}

// BySubreddit counts posted replies per subreddit.
func BySubreddit(events []model.ReplyEvent) map[string]int {
	out := make(map[string]int)
	for _, e := range events {
		out[e.Subreddit]++
	}
	return out
}

// SortedBucketKeys returns sorted hour keys.
func SortedBucketKeys(m map[time.Time]int) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
