package filtering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/posting"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func titles(postings []posting.Posting) []string {
	out := make([]string, 0, len(postings))
	for _, p := range postings {
		out = append(out, p.Title+"@"+p.Company)
	}
	return out
}

func deps() Deps {
	return Deps{Logger: zap.NewNop(), Now: now}
}

func TestActiveFilter(t *testing.T) {
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	postings := []posting.Posting{
		{Title: "open", Active: true},
		{Title: "future", Active: true, ExpiresAt: &future},
		{Title: "expired", Active: true, ExpiresAt: &past},
		{Title: "exact", Active: true, ExpiresAt: &now},
		{Title: "inactive", Active: false},
	}

	got, step, err := NewActive().Apply(context.Background(), deps(), postings)
	require.NoError(t, err)
	assert.Equal(t, []string{"open@", "future@"}, titles(got))
	assert.Equal(t, Step{Initial: 5, Dropped: 3, Left: 2}, step)
}

func TestDedupeFirstWins(t *testing.T) {
	postings := []posting.Posting{
		{ID: 1, Title: "Go Developer", Company: "Acme"},
		{ID: 2, Title: "Go Developer", Company: "Acme"},
		{ID: 3, Title: "Go Developer", Company: "acme"},
		{ID: 4, Title: "Go Developer", Company: "Initech"},
	}

	got, step, err := NewDedupe().Apply(context.Background(), deps(), postings)
	require.NoError(t, err)

	ids := make([]int64, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{1, 3, 4}, ids)
	assert.Equal(t, Step{Initial: 4, Dropped: 1, Left: 3}, step)
}

func TestCompaniesFilter(t *testing.T) {
	f := NewCompanies()
	require.NoError(t, f.Validate(&Config{ExcludedCompanies: []string{" Initech ", ""}}))

	postings := []posting.Posting{
		{Title: "a", Company: "Acme"},
		{Title: "b", Company: "initech"},
	}

	got, step, err := f.Apply(context.Background(), deps(), postings)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@Acme"}, titles(got))
	assert.Equal(t, 1, step.Dropped)

	status := f.(statusProvider).Status()
	assert.Equal(t, "Initech", status.Details["companies"])
}

func TestCompaniesFilterWithoutConfig(t *testing.T) {
	f := NewCompanies()
	require.NoError(t, f.Validate(nil))

	postings := []posting.Posting{{Title: "a", Company: "Acme"}}
	got, step, err := f.Apply(context.Background(), deps(), postings)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, Step{Initial: 1, Dropped: 0, Left: 1}, step)
}

func TestRunDefaultSteps(t *testing.T) {
	past := now.Add(-time.Minute)
	postings := []posting.Posting{
		{Title: "Go Developer", Company: "Acme", Active: true},
		{Title: "Go Developer", Company: "Acme", Active: true},
		{Title: "Rust Developer", Company: "Acme", Active: true, ExpiresAt: &past},
		{Title: "Java Developer", Company: "Initech", Active: true},
	}

	got, err := Run(context.Background(), &Config{ExcludedCompanies: []string{"Initech"}}, deps(), Default(), postings)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go Developer@Acme"}, titles(got))
}

type failingFilter struct {
	disabled bool
}

func (f *failingFilter) Name() string { return "failing" }

func (f *failingFilter) Disable(string) { f.disabled = true }

func (f *failingFilter) IsEnabled() bool { return !f.disabled }

func (f *failingFilter) Validate(*Config) error { return errors.New("bad config") }

func (f *failingFilter) Apply(_ context.Context, _ Deps, p []posting.Posting) ([]posting.Posting, Step, error) {
	return p, Step{}, nil
}

func TestRunValidationError(t *testing.T) {
	_, err := Run(context.Background(), &Config{}, deps(), []Filter{NewActive(), &failingFilter{}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing: bad config")
}

func TestDisableByName(t *testing.T) {
	steps := []Filter{NewActive(), &failingFilter{}}
	assert.True(t, DisableByName(steps, "failing", "not needed"))
	assert.True(t, DisableByName(steps, "active", "keep everything"))
	assert.False(t, DisableByName(steps, "salary", "unknown"))

	inactive := []posting.Posting{{Title: "closed"}}
	got, err := Run(context.Background(), &Config{}, deps(), steps, inactive)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	statuses := Describe(steps)
	require.Len(t, statuses, 2)
	assert.Equal(t, Status{Name: "active", Enabled: false, Reason: "keep everything"}, statuses[0])
	assert.Equal(t, Status{Name: "failing", Enabled: false}, statuses[1])
}

func TestDisableDefaultSteps(t *testing.T) {
	postings := []posting.Posting{
		{Title: "Go Developer", Company: "Acme", Active: true},
		{Title: "Go Developer", Company: "Acme", Active: true},
		{Title: "Java Developer", Company: "Initech", Active: true},
	}

	steps := Default()
	require.True(t, DisableByName(steps, "dedupe", "show every copy"))
	require.True(t, DisableByName(steps, "companies", "show every company"))

	got, err := Run(context.Background(), &Config{ExcludedCompanies: []string{"Initech"}}, deps(), steps, postings)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go Developer@Acme", "Go Developer@Acme", "Java Developer@Initech"}, titles(got))

	statuses := Describe(steps)
	require.Len(t, statuses, 3)
	assert.True(t, statuses[0].Enabled)
	assert.Equal(t, Status{Name: "companies", Enabled: false, Reason: "show every company", Details: map[string]string{}}, statuses[1])
	assert.Equal(t, Status{Name: "dedupe", Enabled: false, Reason: "show every copy"}, statuses[2])
}
