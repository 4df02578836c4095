// Package matching scores postings against an assessment and explains
// every score.
package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spigell/devmatch/internal/assessment"
	"github.com/spigell/devmatch/internal/posting"
	"github.com/spigell/devmatch/internal/utils"
)

const (
	// MaxPostings is the number of leading postings that get scored.
	MaxPostings = 10

	baseScore     = 0.3
	skillsWeight  = 0.4
	levelBonus    = 0.2
	languageBonus = 0.1
)

type Match struct {
	JobID          int64    `json:"jobId"`
	JobTitle       string   `json:"jobTitle"`
	Company        string   `json:"company"`
	Score          float64  `json:"matchScore"`
	MatchingSkills []string `json:"matchingSkills"`
	MissingSkills  []string `json:"missingSkills"`
	Reason         string   `json:"matchReason"`
}

// Rank scores the first MaxPostings postings and orders them by score,
// keeping input order for equal scores.
func Rank(a *assessment.Assessment, postings []posting.Posting) []Match {
	postings = utils.Take(postings, MaxPostings)

	matches := make([]Match, 0, len(postings))
	for _, p := range postings {
		matches = append(matches, Score(a, p))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Score computes the fit of a single posting.
func Score(a *assessment.Assessment, p posting.Posting) Match {
	skills := lowerSet(a.Skills)
	matching, missing := split(p.RequiredSkills, skills)

	score := baseScore
	if required := len(matching) + len(missing); required > 0 {
		score += skillsWeight * float64(len(matching)) / float64(required)
	}
	if p.ExperienceLevel != nil && strings.EqualFold(string(a.ExperienceLevel), *p.ExperienceLevel) {
		score += levelBonus
	}
	if overlaps(p.RequiredSkills, lowerSet(a.PrimaryLanguages)) {
		score += languageBonus
	}
	score = math.Min(1, math.Round(score*1e4)/1e4)

	return Match{
		JobID:          p.ID,
		JobTitle:       p.Title,
		Company:        p.Company,
		Score:          score,
		MatchingSkills: matching,
		MissingSkills:  missing,
		Reason:         Reason(score, matching, missing),
	}
}

// Reason renders the rationale tier for score.
func Reason(score float64, matching, missing []string) string {
	switch {
	case score >= 0.8:
		return fmt.Sprintf("Excellent match! You have %d of the required skills including %s.",
			len(matching), join(matching, 3))
	case score >= 0.6:
		return fmt.Sprintf("Good match. You have key skills: %s. Consider learning: %s.",
			join(matching, 3), join(missing, 2))
	case score >= 0.4:
		return fmt.Sprintf("Potential match. You have some relevant skills: %s. Key skills to develop: %s.",
			join(matching, 2), join(missing, 3))
	default:
		return fmt.Sprintf("This role requires skills you're still developing: %s.", join(missing, 3))
	}
}

// split partitions required skills into those present in skills and those
// absent, case-insensitively, in required order without repeats.
func split(required []string, skills map[string]struct{}) (matching, missing []string) {
	matching = make([]string, 0, len(required))
	missing = make([]string, 0, len(required))
	seen := make(map[string]struct{}, len(required))

	for _, skill := range required {
		key := strings.ToLower(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := skills[key]; ok {
			matching = append(matching, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matching, missing
}

func overlaps(items []string, set map[string]struct{}) bool {
	for _, item := range items {
		if _, ok := set[strings.ToLower(item)]; ok {
			return true
		}
	}
	return false
}

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}

func join(items []string, n int) string {
	return strings.Join(utils.Take(items, n), ", ")
}
