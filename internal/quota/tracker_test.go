package quota

import (
	"testing"
	"time"
)

func TestCanPostUpToLimit(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tr := New(2, func() time.Time { return now })
	if !tr.CanPost() {
		t.Fatal("expected open quota")
	}
	tr.RecordPost()
	if !tr.CanPost() {
		t.Fatal("expected one slot left")
	}
	if tr.Remaining() != 1 {
		t.Fatalf("remaining = %d", tr.Remaining())
	}
	tr.RecordPost()
	if tr.CanPost() {
		t.Fatal("expected exhausted quota")
	}
	if tr.Posted() != 2 {
		t.Fatalf("posted = %d", tr.Posted())
	}
}

func TestDayRolloverResetsCounter(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 50, 0, 0, time.UTC)
	tr := New(1, func() time.Time { return now })
	tr.RecordPost()
	if tr.CanPost() {
		t.Fatal("expected exhausted quota")
	}
	// cross midnight UTC
	now = time.Date(2025, 3, 11, 0, 5, 0, 0, time.UTC)
	if !tr.CanPost() {
		t.Fatal("expected reset on new day")
	}
	if tr.Posted() != 0 {
		t.Fatalf("posted after rollover = %d", tr.Posted())
	}
}

func TestRolloverHappensExactlyOnce(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tr := New(5, func() time.Time { return now })
	tr.RecordPost()
	now = now.Add(24 * time.Hour)
	if !tr.CanPost() {
		t.Fatal("expected open after rollover")
	}
	tr.RecordPost()
	// further reads on the same day must not reset again
	if tr.Posted() != 1 {
		t.Fatalf("posted = %d, want 1", tr.Posted())
	}
}

func TestTryConsume(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tr := New(1, func() time.Time { return now })
	if !tr.TryConsume() {
		t.Fatal("first consume should succeed")
	}
	if tr.TryConsume() {
		t.Fatal("second consume should fail")
	}
}
