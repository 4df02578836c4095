package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/posting"
)

type activeFilter struct {
	disabled bool
	reason   string
}

// NewActive creates a filter that removes inactive and expired postings.
func NewActive() Filter {
	return &activeFilter{}
}

func (f *activeFilter) Name() string { return "active" }

func (f *activeFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *activeFilter) IsEnabled() bool { return !f.disabled }

func (f *activeFilter) Validate(*Config) error { return nil }

func (f *activeFilter) Apply(_ context.Context, deps Deps, postings []posting.Posting) ([]posting.Posting, Step, error) {
	initial := len(postings)
	kept, dropped := keep(postings, func(p posting.Posting) bool {
		return p.Open(deps.Now)
	})

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Debug("excluding closed postings", zap.Strings("excluded_postings", dropped))
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *activeFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
