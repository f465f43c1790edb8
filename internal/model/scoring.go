package model

import (
	"sort"
	"time"
)

// UpvotePotential scores how likely a fresh comment on the submission is
// to collect upvotes. Uses only listing metadata so ranking a whole page
// costs no extra API calls.
//
// Factors: post popularity (visibility), comment activity, comments per
// upvote (discussion heat), and a recency bonus that decays linearly to
// zero once the post is four hours old. The weights are fixed; they are
// part of the ranking contract, not configuration.
func UpvotePotential(s Submission, now time.Time) float64 {
	score := s.Score
	if score < 1 {
		score = 1
	}
	comments := s.NumComments
	if comments < 1 {
		comments = 1
	}

	engagementRatio := float64(comments) / float64(score)

	commentActivity := float64(comments) / 50.0
	if commentActivity > 2.0 {
		commentActivity = 2.0
	}

	hoursOld := now.Sub(s.CreatedAt).Hours()
	recencyBonus := 1.5 - hoursOld/4.0
	if recencyBonus < 0 {
		recencyBonus = 0
	}

	popularity := float64(score) / 1000.0
	if popularity > 5.0 {
		popularity = 5.0
	}

	return popularity*30 + commentActivity*30 + engagementRatio*100*20 + recencyBonus*20
}

// RankByPotential scores every submission against now and returns a
// descending order that is stable: equal scores keep their input order.
func RankByPotential(subs []Submission, now time.Time) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(subs))
	for _, s := range subs {
		out = append(out, ScoredCandidate{Submission: s, Score: UpvotePotential(s, now)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
