package model

import "time"

// Submission represents a subset of Reddit post fields used by the bot.
type Submission struct {
	ID          string
	Fullname    string // thing id with kind prefix, e.g. t3_abc123
	Subreddit   string
	Title       string
	SelfText    string
	URL         string
	Permalink   string
	Score       int
	NumComments int
	CreatedAt   time.Time
	IsSelf      bool
	Stickied    bool
}

// Comment is a top-level comment on a submission.
type Comment struct {
	Body  string
	Score int
}

// Reply is the result of posting a comment.
type Reply struct {
	ID        string
	Permalink string
}

// ScoredCandidate pairs a submission with its computed upvote potential.
// Created transiently while ranking, discarded after ordering.
type ScoredCandidate struct {
	Submission Submission
	Score      float64
}

// ReplyEvent captures a reply we posted, for the audit log.
type ReplyEvent struct {
	Timestamp    time.Time
	SubmissionID string
	Subreddit    string
	Permalink    string
	ReplyChars   int
}
