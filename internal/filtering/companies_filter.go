package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/posting"
)

type companiesFilter struct {
	companies map[string]struct{}
	names     []string
	disabled  bool
	reason    string
}

// NewCompanies creates a filter that removes postings by companies configured in the config.
func NewCompanies() Filter {
	return &companiesFilter{}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *companiesFilter) IsEnabled() bool { return !f.disabled }

func (f *companiesFilter) Validate(cfg *Config) error {
	f.companies = make(map[string]struct{})
	f.names = nil
	if cfg == nil {
		return nil
	}
	for _, name := range cfg.ExcludedCompanies {
		if name = strings.TrimSpace(name); name != "" {
			f.companies[strings.ToLower(name)] = struct{}{}
			f.names = append(f.names, name)
		}
	}
	return nil
}

func (f *companiesFilter) Apply(_ context.Context, deps Deps, postings []posting.Posting) ([]posting.Posting, Step, error) {
	initial := len(postings)
	if len(f.companies) == 0 {
		return postings, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept, dropped := keep(postings, func(p posting.Posting) bool {
		_, excluded := f.companies[strings.ToLower(strings.TrimSpace(p.Company))]
		return !excluded
	})

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding postings by companies",
			zap.Strings("excluded_companies", f.names),
			zap.Strings("excluded_postings", dropped),
			zap.Int("postings_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.names) > 0 {
		details["companies"] = strings.Join(f.names, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
