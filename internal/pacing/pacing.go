package pacing

import (
	"math/rand/v2"
	"time"
)

// Cooldown draws a uniformly random delay in [minSeconds, maxSeconds],
// inclusive on both ends. This is the spacing between consecutive reply
// attempts.
func Cooldown(minSeconds, maxSeconds int) time.Duration {
	if maxSeconds < minSeconds {
		maxSeconds = minSeconds
	}
	n := minSeconds + rand.IntN(maxSeconds-minSeconds+1)
	return time.Duration(n) * time.Second
}

// NextActiveWindow returns the next time at or after now whose UTC hour
// is not in quietHours.
func NextActiveWindow(now time.Time, quietHours []int) time.Time {
	isQuiet := func(h int) bool {
		for _, q := range quietHours {
			if q == h {
				return true
			}
		}
		return false
	}
	now = now.UTC()
	if !isQuiet(now.Hour()) {
		return now
	}
	cand := now.Truncate(time.Hour)
	for i := 1; i <= 24; i++ {
		cand = cand.Add(time.Hour)
		if !isQuiet(cand.Hour()) {
			return cand
		}
	}
	return now // every hour quiet: do not stall forever
}
