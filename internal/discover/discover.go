// Package discover finds reply candidates across the configured
// subreddits and optionally ranks them by upvote potential.
package discover

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"time"

	"karmaforge/internal/events"
	"karmaforge/internal/metrics"
	"karmaforge/internal/model"
	"karmaforge/internal/reddit"
	"karmaforge/internal/util"
)

// Options configure a discovery pass.
type Options struct {
	Subreddits  []string
	FetchLimit  int
	MinScore    int
	MinComments int
	UpvoteMode  bool
}

// Discoverer pulls candidates from a SourceClient.
type Discoverer struct {
	client reddit.SourceClient
	opts   Options
	emit   *events.Emitter
	now    func() time.Time
}

func New(client reddit.SourceClient, opts Options, emit *events.Emitter, nowFn func() time.Time) *Discoverer {
	if nowFn == nil {
		nowFn = time.Now
	}
	if opts.FetchLimit <= 0 {
		opts.FetchLimit = 25
	}
	return &Discoverer{client: client, opts: opts, emit: emit, now: nowFn}
}

// Discover fetches and filters the configured sources, then yields
// candidates one at a time so the consumer can stop early. A source that
// fails to fetch is skipped with a warning; it never aborts the pass.
// Each call re-fetches.
func (d *Discoverer) Discover(ctx context.Context) iter.Seq[model.Submission] {
	return func(yield func(model.Submission) bool) {
		candidates := d.collect(ctx)
		if d.opts.UpvoteMode && len(candidates) > 0 {
			candidates = d.rank(candidates)
		}
		for _, s := range candidates {
			if !yield(s) {
				return
			}
		}
	}
}

func (d *Discoverer) collect(ctx context.Context) []model.Submission {
	metrics.DiscoveryRuns.Inc()
	filter := NewFilter(d.opts.MinScore, d.opts.MinComments)
	var out []model.Submission
	for _, sub := range d.opts.Subreddits {
		if ctx.Err() != nil {
			return out
		}
		listing, err := d.client.FetchHot(ctx, sub, d.opts.FetchLimit)
		if err != nil {
			metrics.SourcesSkipped.Inc()
			d.emit.Warning(fmt.Sprintf("failed to fetch from r/%s: %v", sub, err), nil)
			continue
		}
		for _, s := range listing {
			if filter.Admit(s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// rank orders candidates by upvote potential, highest first, keeping
// discovery order for ties.
func (d *Discoverer) rank(candidates []model.Submission) []model.Submission {
	d.emit.Info("upvote mode: analyzing posts for comment upvote potential", nil)
	now := d.now()
	scored := make([]model.ScoredCandidate, 0, len(candidates))
	for i, s := range candidates {
		scored = append(scored, model.ScoredCandidate{Submission: s, Score: model.UpvotePotential(s, now)})
		if (i+1)%10 == 0 {
			d.emit.Info(fmt.Sprintf("analyzed %d/%d posts", i+1, len(candidates)), nil)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	d.emit.Success(fmt.Sprintf("sorted %d posts by upvote potential", len(scored)), nil)
	top := len(scored)
	if top > 5 {
		top = 5
	}
	for i := 0; i < top; i++ {
		sc := scored[i]
		d.emit.Info(fmt.Sprintf("%d. [%.1f] %s (r/%s | %d upvotes, %d comments)",
			i+1, sc.Score, util.Truncate(sc.Submission.Title, 60),
			sc.Submission.Subreddit, sc.Submission.Score, sc.Submission.NumComments), nil)
	}

	out := make([]model.Submission, len(scored))
	for i, sc := range scored {
		out[i] = sc.Submission
	}
	return out
}
