// Package engage drives one reply session: it walks the discovered
// candidates in order, drafts a reply for each, posts it, and paces
// itself with a randomized cooldown until the daily quota runs out, the
// candidates do, or the caller cancels.
package engage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"karmaforge/internal/discover"
	"karmaforge/internal/events"
	"karmaforge/internal/metrics"
	"karmaforge/internal/model"
	"karmaforge/internal/oracle"
	"karmaforge/internal/pacing"
	"karmaforge/internal/quota"
	"karmaforge/internal/reddit"
)

const (
	commentFetchLimit = 20
	commentKeepTop    = 10
)

// ReplyLog receives successfully posted replies. A nil log disables the
// audit trail.
type ReplyLog interface {
	PutReply(ctx context.Context, e model.ReplyEvent) error
}

// Summary reports what a session did.
type Summary struct {
	Replied int
	Skipped int
	Errored int
}

// Runner executes reply sessions. One outbound post is in flight at a
// time; the cooldown sleep suspends only this worker, never the caller.
type Runner struct {
	discoverer *discover.Discoverer
	client     reddit.SourceClient
	gen        oracle.Oracle
	tracker    *quota.Tracker
	log        ReplyLog
	emit       *events.Emitter

	language        string
	minDelaySeconds int
	maxDelaySeconds int

	sleep func(ctx context.Context, d time.Duration) error
}

func NewRunner(
	discoverer *discover.Discoverer,
	client reddit.SourceClient,
	gen oracle.Oracle,
	tracker *quota.Tracker,
	log ReplyLog,
	emit *events.Emitter,
	language string,
	minDelaySeconds, maxDelaySeconds int,
) *Runner {
	return &Runner{
		discoverer:      discoverer,
		client:          client,
		gen:             gen,
		tracker:         tracker,
		log:             log,
		emit:            emit,
		language:        language,
		minDelaySeconds: minDelaySeconds,
		maxDelaySeconds: maxDelaySeconds,
		sleep:           sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run walks one discovery pass and posts replies until the quota is
// exhausted, the candidates run out, or ctx is cancelled. Per-candidate
// failures never abort the session; the returned error is reserved for
// failures of the session itself.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	defer metrics.ObserveSessionDuration(start)

	var sum Summary
	if !r.tracker.CanPost() {
		r.emit.Warning("daily limit already reached, nothing to do", nil)
		return sum, nil
	}
	r.emit.Info(fmt.Sprintf("starting session: %d replies remaining today", r.tracker.Remaining()), nil)

	for s := range r.discoverer.Discover(ctx) {
		if ctx.Err() != nil {
			r.emit.Warning("automation stopped by caller", nil)
			return sum, nil
		}

		done := r.processCandidate(ctx, s, &sum)
		if done {
			break
		}

		cd := pacing.Cooldown(r.minDelaySeconds, r.maxDelaySeconds)
		r.emit.Info(fmt.Sprintf("cooldown: %ds", int(cd.Seconds())), nil)
		if err := r.sleep(ctx, cd); err != nil {
			r.emit.Warning("automation stopped by caller", nil)
			return sum, nil
		}
	}

	r.emit.Success(fmt.Sprintf("session complete! %d comments posted", sum.Replied), nil)
	return sum, nil
}

// processCandidate handles one submission and reports whether the
// session should stop.
func (r *Runner) processCandidate(ctx context.Context, s model.Submission, sum *Summary) bool {
	title := strings.TrimSpace(s.Title)
	body := ExtractBody(s)
	comments := r.extractComments(ctx, s)

	text, err := r.gen.Generate(ctx, oracle.Request{
		Title:    title,
		Body:     body,
		Comments: comments,
		Language: r.language,
	})
	if err != nil {
		metrics.IncOracleCall("error")
		r.emit.Warning(fmt.Sprintf("comment generation failed, skipping: %v", err), nil)
		sum.Skipped++
		metrics.RepliesSkipped.Inc()
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.IncOracleCall("empty")
		r.emit.Warning("model returned empty comment, skipping", nil)
		sum.Skipped++
		metrics.RepliesSkipped.Inc()
		return false
	}
	metrics.IncOracleCall("ok")

	reply, err := r.client.SubmitReply(ctx, s.Fullname, text)
	if err != nil {
		sum.Errored++
		metrics.ReplyErrors.Inc()
		r.emit.Error(fmt.Sprintf("failed to comment on %s: %v", s.ID, err), map[string]any{"submission": s.ID})
		return false
	}

	r.tracker.RecordPost()
	sum.Replied++
	metrics.RepliesPosted.Inc()
	link := ""
	if reply.Permalink != "" {
		link = "https://reddit.com" + reply.Permalink
	}
	r.emit.Success(fmt.Sprintf("comment posted (%d/%d) -> %s", r.tracker.Posted(), r.tracker.Limit(), link), nil)

	if r.log != nil {
		if err := r.log.PutReply(ctx, model.ReplyEvent{
			Timestamp:    time.Now().UTC(),
			SubmissionID: s.ID,
			Subreddit:    s.Subreddit,
			Permalink:    reply.Permalink,
			ReplyChars:   len(text),
		}); err != nil {
			r.emit.Warning(fmt.Sprintf("reply log write failed: %v", err), nil)
		}
	}

	if !r.tracker.CanPost() {
		r.emit.Warning("daily limit reached, stopping", nil)
		return true
	}
	return false
}

// ExtractBody returns the reply context for a submission: its trimmed
// selftext, or a link placeholder for posts that have no text of their own.
func ExtractBody(s model.Submission) string {
	if s.IsSelf {
		return strings.TrimSpace(s.SelfText)
	}
	return strings.TrimSpace("[Link Post] " + s.URL)
}

// extractComments fetches up to 20 first-level comments, drops empty
// bodies, and keeps the 10 highest-scoring. Fetch failures degrade to an
// empty list; the candidate still gets a reply attempt.
func (r *Runner) extractComments(ctx context.Context, s model.Submission) []model.Comment {
	raw, err := r.client.FetchTopLevelComments(ctx, s.ID, commentFetchLimit)
	if err != nil {
		r.emit.Warning(fmt.Sprintf("failed to read comments on %s: %v", s.ID, err), nil)
		return nil
	}
	out := make([]model.Comment, 0, len(raw))
	for _, c := range raw {
		body := strings.TrimSpace(c.Body)
		if body == "" {
			continue
		}
		out = append(out, model.Comment{Body: body, Score: c.Score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > commentKeepTop {
		out = out[:commentKeepTop]
	}
	return out
}
