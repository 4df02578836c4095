package assessment

import (
	"fmt"
	"strings"
	"time"

	"github.com/spigell/devmatch/internal/heuristics"
	"github.com/spigell/devmatch/internal/profile"
)

const heuristicLanguages = 3

var improvementAreas = []string{"API Documentation", "Testing Coverage", "Code Comments"}

var defaultStrengths = []string{"Active GitHub user", "Open source contributor"}

// Heuristic builds a deterministic assessment from the snapshot alone.
func Heuristic(s *profile.Snapshot, now time.Time) *Assessment {
	languages := s.Languages.Names(heuristicLanguages)

	skills := append(append([]string{}, languages...), heuristics.InferSkills(languages)...)

	focus := strings.Join(languages, ", ")
	if focus == "" {
		focus = "a variety of technologies"
	}

	return &Assessment{
		Username: s.Username,
		Summary: fmt.Sprintf("Active developer with %d public repositories, primarily working with %s. "+
			"Shows consistent contribution patterns and engagement with the developer community.",
			s.PublicRepos, focus),
		Skills:           heuristics.Distinct(skills),
		ExperienceLevel:  heuristics.ExperienceLevel(now.Sub(s.CreatedAt), s.PublicRepos, s.TotalCommits),
		PrimaryLanguages: languages,
		TechStack:        heuristics.InferTechStack(languages),
		Strengths:        strengths(s),
		ImprovementAreas: append([]string{}, improvementAreas...),
		OverallScore:     OverallScore(s.PublicRepos, len(s.Languages), s.Followers, s.TotalCommits),
		AnalyzedAt:       now,
		Source:           SourceHeuristic,
	}
}

func strengths(s *profile.Snapshot) []string {
	var out []string
	if s.PublicRepos > 10 {
		out = append(out, "Prolific contributor")
	}
	if s.Followers > 20 {
		out = append(out, "Strong community presence")
	}
	if len(s.Languages) > 3 {
		out = append(out, "Multi-language proficiency")
	}
	if s.TotalCommits > 100 {
		out = append(out, "Consistent development activity")
	}
	if len(out) == 0 {
		return append([]string{}, defaultStrengths...)
	}
	return out
}

// OverallScore rates a profile in [0.5, 1.0] from repository count, distinct
// languages, followers and estimated commits.
func OverallScore(repos, languages, followers, commits int) float64 {
	score := 0.5
	score += min(0.20, float64(max(repos, 0))*0.01)
	score += min(0.15, float64(max(languages, 0))*0.03)
	score += min(0.10, float64(max(followers, 0))*0.002)
	score += min(0.05, float64(max(commits, 0))*0.0001)
	return min(1.0, score)
}
