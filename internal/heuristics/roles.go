package heuristics

import (
	"strings"
	"time"
)

// Level is the experience tier of a developer or a posting.
type Level string

const (
	Junior Level = "Junior"
	Mid    Level = "Mid"
	Senior Level = "Senior"
)

// DeveloperKeywords is the broad query sent to the job-search source.
const DeveloperKeywords = "software developer OR web developer OR full stack developer OR frontend developer OR " +
	"backend developer OR mobile developer OR react developer OR javascript developer OR python developer OR " +
	"java developer OR .net developer OR php developer OR node.js developer OR angular developer OR vue developer OR " +
	"software engineer OR programming OR coding"

var developerTerms = []string{
	"developer", "programmer", "engineer", "coding", "programming", "software", "web development",
	"frontend", "backend", "full stack", "fullstack", "react", "javascript", "python", "java",
	"c#", ".net", "php", "node.js", "angular", "vue", "mobile app", "android", "ios",
}

var excludedTerms = []string{
	"sales", "marketing", "hr", "human resources", "admin", "administration", "manager",
	"director", "ceo", "cto", "accountant", "finance", "legal", "lawyer", "designer",
}

var remoteTerms = []string{"remote", "work from home", "wfh"}

// IsDeveloperRole reports whether a posting looks like a developer role: the
// text carries a developer term and no excluded term. An excluded term that also
// appears as "software <term>" does not exclude.
func IsDeveloperRole(title, description string) bool {
	text := strings.ToLower(title + " " + description)

	hasDeveloperTerm := false
	for _, term := range developerTerms {
		if strings.Contains(text, term) {
			hasDeveloperTerm = true
			break
		}
	}
	if !hasDeveloperTerm {
		return false
	}

	for _, term := range excludedTerms {
		if strings.Contains(text, term) && !strings.Contains(text, "software "+term) {
			return false
		}
	}
	return true
}

// LevelFromTitle infers the tier of a posting from its title keywords.
func LevelFromTitle(title string) Level {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, "senior", "lead", "principal"):
		return Senior
	case containsAny(lower, "junior", "entry", "graduate"):
		return Junior
	default:
		return Mid
	}
}

// IsRemote reports whether location or title advertise remote work.
func IsRemote(location, title string) bool {
	return containsAny(strings.ToLower(location+" "+title), remoteTerms...)
}

// ExperienceLevel classifies a developer from account age, public repository
// count and estimated commits.
func ExperienceLevel(accountAge time.Duration, repos, commits int) Level {
	days := int(accountAge.Hours() / 24)

	if days < 365 || repos < 5 || commits < 50 {
		return Junior
	}
	if days > 1825 && repos > 20 && commits > 500 {
		return Senior
	}
	return Mid
}

// ParseLevel canonicalises a free-form tier. Unknown values map to Mid.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "junior", "entry", "entry-level":
		return Junior
	case "senior", "lead", "principal":
		return Senior
	default:
		return Mid
	}
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
