package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/posting"
)

type dedupeKey struct {
	title   string
	company string
}

type dedupeFilter struct {
	disabled bool
	reason   string
}

// NewDedupe creates a filter that keeps the first posting of every exact
// (title, company) pair.
func NewDedupe() Filter {
	return &dedupeFilter{}
}

func (f *dedupeFilter) Name() string { return "dedupe" }

func (f *dedupeFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *dedupeFilter) IsEnabled() bool { return !f.disabled }

func (f *dedupeFilter) Validate(*Config) error { return nil }

func (f *dedupeFilter) Apply(_ context.Context, deps Deps, postings []posting.Posting) ([]posting.Posting, Step, error) {
	initial := len(postings)
	seen := make(map[dedupeKey]struct{}, initial)

	kept, dropped := keep(postings, func(p posting.Posting) bool {
		key := dedupeKey{title: p.Title, company: p.Company}
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		return true
	})

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Debug("excluding duplicate postings", zap.Strings("excluded_postings", dropped))
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *dedupeFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
