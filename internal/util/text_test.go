package util

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 250)
	got := Truncate(long, 200)
	if len(got) != 203 {
		t.Fatalf("len = %d, want 203", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("missing ellipsis: %q", got[190:])
	}
	if got := Truncate("short", 200); got != "short" {
		t.Fatalf("short string changed: %q", got)
	}
	if got := Truncate(strings.Repeat("y", 200), 200); strings.HasSuffix(got, "...") {
		t.Fatalf("exact-length string should not be truncated")
	}
}

func TestDedupeTrimmed(t *testing.T) {
	in := []string{" golang ", "", "AskReddit", "golang", "  ", "pics", "AskReddit"}
	got := DedupeTrimmed(in)
	want := []string{"golang", "AskReddit", "pics"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	if got := NormalizeWhitespace("  a\n\tb   c "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}
