// Package quota enforces the daily reply cap. The counter lives in
// memory only and resets on UTC calendar-day rollover; the rollover is
// checked on every read, never on a timer.
package quota

import (
	"sync"
	"time"
)

// Tracker counts replies issued against a daily limit.
type Tracker struct {
	mu         sync.Mutex
	dailyLimit int
	posted     int
	lastReset  time.Time // truncated to a UTC date
	now        func() time.Time
}

// New returns a tracker for the given daily limit. nowFn defaults to
// time.Now and exists for tests.
func New(dailyLimit int, nowFn func() time.Time) *Tracker {
	if nowFn == nil {
		nowFn = time.Now
	}
	t := &Tracker{dailyLimit: dailyLimit, now: nowFn}
	t.lastReset = dateOf(nowFn())
	return t
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// rollover resets the counter when the UTC date has changed since the
// last reset. Callers must hold mu.
func (t *Tracker) rollover() {
	today := dateOf(t.now())
	if !today.Equal(t.lastReset) {
		t.posted = 0
		t.lastReset = today
	}
}

// CanPost reports whether another reply may be posted today.
func (t *Tracker) CanPost() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return t.posted < t.dailyLimit
}

// RecordPost increments today's counter. The caller is expected to have
// confirmed CanPost; a combined check lives in TryConsume.
func (t *Tracker) RecordPost() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	t.posted++
}

// TryConsume atomically checks the budget and claims one reply slot.
func (t *Tracker) TryConsume() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	if t.posted >= t.dailyLimit {
		return false
	}
	t.posted++
	return true
}

// Posted returns the number of replies issued so far today.
func (t *Tracker) Posted() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return t.posted
}

// Remaining returns how many replies are left in today's budget.
func (t *Tracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	if t.posted >= t.dailyLimit {
		return 0
	}
	return t.dailyLimit - t.posted
}

// Limit returns the configured daily limit.
func (t *Tracker) Limit() int { return t.dailyLimit }
