package model

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestUpvotePotentialDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := Submission{Score: 1000, NumComments: 50, CreatedAt: now}
	// popularity 1.0*30 + activity 1.0*30 + ratio 0.05*100*20 + recency 1.5*20
	want := 30.0 + 30.0 + 100.0 + 30.0
	if got := UpvotePotential(s, now); !almostEqual(got, want) {
		t.Fatalf("score = %v, want %v", got, want)
	}
	if got := UpvotePotential(s, now); !almostEqual(got, want) {
		t.Fatalf("second call differed: %v", got)
	}
}

func TestUpvotePotentialCaps(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := Submission{Score: 50000, NumComments: 5000, CreatedAt: now}
	// popularity capped at 5, activity capped at 2, ratio 0.1, recency max
	want := 5.0*30 + 2.0*30 + 0.1*100*20 + 1.5*20
	if got := UpvotePotential(s, now); !almostEqual(got, want) {
		t.Fatalf("score = %v, want %v", got, want)
	}
}

func TestUpvotePotentialClampsNonPositive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := Submission{Score: -10, NumComments: 0, CreatedAt: now}
	// both clamp to 1: popularity 0.001*30 + activity 0.02*30 + ratio 1*2000 + 30
	want := 0.001*30 + (1.0/50.0)*30 + 1.0*100*20 + 1.5*20
	if got := UpvotePotential(s, now); !almostEqual(got, want) {
		t.Fatalf("score = %v, want %v", got, want)
	}
}

func TestRecencyDecayBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	base := Submission{Score: 1000, NumComments: 50}

	fresh := base
	fresh.CreatedAt = now
	stale := base
	stale.CreatedAt = now.Add(-4 * time.Hour)
	older := base
	older.CreatedAt = now.Add(-24 * time.Hour)

	if got, want := UpvotePotential(fresh, now), 190.0; !almostEqual(got, want) {
		t.Fatalf("fresh = %v, want %v", got, want)
	}
	// at exactly 4h the bonus term is zero, and never negative after that
	if got, want := UpvotePotential(stale, now), 160.0; !almostEqual(got, want) {
		t.Fatalf("4h old = %v, want %v", got, want)
	}
	if got := UpvotePotential(older, now); !almostEqual(got, UpvotePotential(stale, now)) {
		t.Fatalf("recency went negative: %v", got)
	}
}

func TestRankByPotentialStable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-6 * time.Hour)
	// identical metadata yields identical scores; order must be preserved
	subs := []Submission{
		{ID: "a", Score: 100, NumComments: 10, CreatedAt: created},
		{ID: "b", Score: 9000, NumComments: 500, CreatedAt: created},
		{ID: "c", Score: 100, NumComments: 10, CreatedAt: created},
	}
	ranked := RankByPotential(subs, now)
	if ranked[0].Submission.ID != "b" {
		t.Fatalf("expected b first, got %s", ranked[0].Submission.ID)
	}
	if ranked[1].Submission.ID != "a" || ranked[2].Submission.ID != "c" {
		t.Fatalf("tie order not preserved: %s, %s", ranked[1].Submission.ID, ranked[2].Submission.ID)
	}
}
