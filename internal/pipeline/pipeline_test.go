package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/assessment"
	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/heuristics"
	"github.com/spigell/devmatch/internal/jobs"
	"github.com/spigell/devmatch/internal/posting"
	"github.com/spigell/devmatch/internal/profile"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type stubProfiles struct {
	snapshot *profile.Snapshot
	err      error
}

func (s *stubProfiles) Aggregate(_ context.Context, _ string) (*profile.Snapshot, error) {
	return s.snapshot, s.err
}

type stubCollector struct {
	postings []posting.Posting
	hint     string
	calls    atomic.Int32
}

func (s *stubCollector) Collect(_ context.Context, hint string) []posting.Posting {
	s.calls.Add(1)
	s.hint = hint
	return s.postings
}

func strPtr(s string) *string { return &s }

func snapshot() *profile.Snapshot {
	return &profile.Snapshot{
		Username:    "octocat",
		Location:    strPtr("Berlin, Germany"),
		PublicRepos: 8,
		Followers:   3,
		CreatedAt:   now.AddDate(-3, 0, 0),
		Languages: profile.LanguageWeights{
			{Name: "Go", Weight: 20},
			{Name: "Python", Weight: 5},
		},
		TotalCommits: 120,
		AnalyzedAt:   now,
	}
}

func newTestPipeline(profiles ProfileAggregator, collector Collector) *Pipeline {
	p := New(profiles, assessment.NewEngine(nil, zap.NewNop()), collector, zap.NewNop())
	p.now = func() time.Time { return now }
	p.newID = func() string { return "run-1" }
	return p
}

func TestRunWithoutCredentials(t *testing.T) {
	collector := &stubCollector{postings: jobs.SamplePostings(now)}

	result, err := newTestPipeline(&stubProfiles{snapshot: snapshot()}, collector).Run(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, "Berlin, Germany", collector.hint)
	assert.Equal(t, 5, result.Postings)
	require.Len(t, result.Matches, 5)

	a := result.Assessment
	require.NotNil(t, a)
	assert.Equal(t, assessment.SourceHeuristic, a.Source)
	assert.Contains(t, []heuristics.Level{heuristics.Junior, heuristics.Mid, heuristics.Senior}, a.ExperienceLevel)
	assert.GreaterOrEqual(t, a.OverallScore, 0.0)
	assert.LessOrEqual(t, a.OverallScore, 1.0)

	for i := 1; i < len(result.Matches); i++ {
		assert.GreaterOrEqual(t, result.Matches[i-1].Score, result.Matches[i].Score)
	}
	assert.Equal(t, now, result.AnalyzedAt)

	top := result.Job(result.Matches[0].JobID)
	require.NotNil(t, top)
	assert.Equal(t, result.Matches[0].JobTitle, top.Title)
	assert.Nil(t, result.Job(404))
}

func TestRunProfileNotFound(t *testing.T) {
	collector := &stubCollector{}
	profiles := &stubProfiles{err: errs.NotFound("github", "get user")}

	_, err := newTestPipeline(profiles, collector).Run(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.Equal(t, int32(0), collector.calls.Load())
}

func TestAnalyze(t *testing.T) {
	collector := &stubCollector{}

	analysis, err := newTestPipeline(&stubProfiles{snapshot: snapshot()}, collector).Analyze(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "run-1", analysis.RunID)
	assert.Equal(t, "octocat", analysis.Assessment.Username)
	assert.Equal(t, int32(0), collector.calls.Load())
}
