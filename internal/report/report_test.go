package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/devmatch/internal/assessment"
	"github.com/spigell/devmatch/internal/heuristics"
	"github.com/spigell/devmatch/internal/matching"
	"github.com/spigell/devmatch/internal/pipeline"
	"github.com/spigell/devmatch/internal/posting"
	"github.com/spigell/devmatch/internal/profile"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func result() *pipeline.Result {
	return &pipeline.Result{
		RunID: "run-1",
		Snapshot: &profile.Snapshot{
			Username:  "octocat",
			Name:      "The Octocat",
			HTMLURL:   "https://github.com/octocat",
			Location:  strPtr("San Francisco"),
			Languages: profile.LanguageWeights{{Name: "Go", Weight: 3}},
		},
		Assessment: &assessment.Assessment{
			Username:        "octocat",
			Summary:         "Active Go developer.",
			Skills:          []string{"Go", "Docker"},
			ExperienceLevel: heuristics.Mid,
			OverallScore:    0.71,
			Source:          assessment.SourceHeuristic,
		},
		Matches: []matching.Match{
			{JobID: 1, JobTitle: "Go Developer", Company: "Acme", Score: 0.9, MatchingSkills: []string{"Go"}},
		},
		Postings: 3,
	}
}

func TestResultPlain(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, ColorNever).Result(result())

	out := buf.String()
	assert.Contains(t, out, "Profile The Octocat")
	assert.Contains(t, out, "location: San Francisco")
	assert.Contains(t, out, "languages: Go")
	assert.Contains(t, out, "Assessment Mid, score 0.71 (heuristic)")
	assert.Contains(t, out, "skills: Go, Docker")
	assert.Contains(t, out, "Matches (1 of 3 postings scored)")
	assert.Contains(t, out, "Go Developer")
	assert.NotContains(t, out, "\x1b[")
}

func TestResultColored(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, ColorAlways).Matches(result().Matches)
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestPostings(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, ColorNever).Postings([]posting.Posting{{
		ID:              7,
		Title:           "Go Developer",
		Company:         "Acme",
		ExperienceLevel: strPtr("Senior"),
		SalaryMin:       floatPtr(50000),
		SalaryMax:       floatPtr(80000),
		Source:          posting.SourceStore,
		PostedAt:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}})

	out := buf.String()
	assert.Contains(t, out, "50000-80000")
	assert.Contains(t, out, "2025-03-01")
	assert.Contains(t, out, "Senior")
}

func TestMatchDetails(t *testing.T) {
	var buf bytes.Buffer
	post := &posting.Posting{Location: strPtr("Remote"), RemoteOptions: posting.RemoteOnly, URL: "https://example.com/1"}
	New(&buf, ColorNever).Match(matching.Match{JobTitle: "Go Developer", Company: "Acme", Score: 0.5, Reason: "Potential match."}, post)

	out := buf.String()
	assert.Contains(t, out, "Match Go Developer at Acme")
	assert.Contains(t, out, "Potential match.")
	assert.Contains(t, out, "location: Remote (Remote)")
	assert.Contains(t, out, "https://example.com/1")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, result()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["runId"])
	assert.Contains(t, decoded, "matches")
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, colorGood, ScoreColor(0.8))
	assert.Equal(t, colorFair, ScoreColor(0.6))
	assert.Equal(t, colorWeak, ScoreColor(0.4))
	assert.Equal(t, colorPoor, ScoreColor(0.39))
}

func TestNormalizeColorMode(t *testing.T) {
	assert.Equal(t, ColorAlways, NormalizeColorMode(" Always "))
	assert.Equal(t, ColorNever, NormalizeColorMode("never"))
	assert.Equal(t, ColorAuto, NormalizeColorMode("sometimes"))
}
