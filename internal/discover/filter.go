package discover

import "karmaforge/internal/model"

// Filter applies the candidate admission rules: pinned posts are out,
// each submission id is admitted at most once across sources, and both
// thresholds are inclusive lower bounds.
type Filter struct {
	MinScore    int
	MinComments int

	seen map[string]struct{}
}

// NewFilter returns a filter whose seen-set spans one discovery pass.
func NewFilter(minScore, minComments int) *Filter {
	return &Filter{
		MinScore:    minScore,
		MinComments: minComments,
		seen:        make(map[string]struct{}),
	}
}

// Admit reports whether the submission qualifies as a candidate, and
// records its id so later sources cannot re-introduce it.
func (f *Filter) Admit(s model.Submission) bool {
	if s.Stickied {
		return false
	}
	if _, ok := f.seen[s.ID]; ok {
		return false
	}
	if s.Score < f.MinScore {
		return false
	}
	if s.NumComments < f.MinComments {
		return false
	}
	f.seen[s.ID] = struct{}{}
	return true
}
