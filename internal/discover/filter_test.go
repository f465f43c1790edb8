package discover

import (
	"testing"

	"karmaforge/internal/model"
)

func TestAdmitThresholdsInclusive(t *testing.T) {
	f := NewFilter(100, 10)
	at := model.Submission{ID: "a", Score: 100, NumComments: 10}
	below := model.Submission{ID: "b", Score: 99, NumComments: 10}
	few := model.Submission{ID: "c", Score: 500, NumComments: 9}
	if !f.Admit(at) {
		t.Fatal("submission at threshold must be accepted")
	}
	if f.Admit(below) {
		t.Fatal("submission below score threshold must be rejected")
	}
	if f.Admit(few) {
		t.Fatal("submission below comment threshold must be rejected")
	}
}

func TestAdmitRejectsStickied(t *testing.T) {
	f := NewFilter(0, 0)
	if f.Admit(model.Submission{ID: "a", Score: 1000, NumComments: 100, Stickied: true}) {
		t.Fatal("stickied submission must be rejected")
	}
}

func TestAdmitDedupesAcrossSources(t *testing.T) {
	f := NewFilter(0, 0)
	s := model.Submission{ID: "dup", Score: 10, NumComments: 5, Subreddit: "golang"}
	if !f.Admit(s) {
		t.Fatal("first sighting must be accepted")
	}
	s.Subreddit = "programming"
	if f.Admit(s) {
		t.Fatal("same id from second source must be rejected")
	}
}

func TestStickiedNotMarkedSeen(t *testing.T) {
	f := NewFilter(0, 0)
	s := model.Submission{ID: "a", Score: 10, NumComments: 5}
	pinned := s
	pinned.Stickied = true
	if f.Admit(pinned) {
		t.Fatal("stickied rejected")
	}
	if !f.Admit(s) {
		t.Fatal("rejection for stickiness must not poison the seen set")
	}
}
