package assessment

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/spigell/devmatch/internal/profile"
	"github.com/spigell/devmatch/internal/utils"
)

// SystemPrompt frames the reasoning service as a recruiter.
const SystemPrompt = "You are an expert technical recruiter and software developer analyst. " +
	"Provide accurate, professional assessments of GitHub profiles."

const (
	promptLanguages    = 5
	promptRepositories = 10
	notProvided        = "Not provided"
)

//go:embed prompt.md
var promptTemplate string

// BuildPrompt renders the profile, its heaviest languages and its most
// recently updated repositories into the analysis prompt.
func BuildPrompt(s *profile.Snapshot) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{PROFILE}}", profileSection(s))
	prompt = strings.ReplaceAll(prompt, "{{LANGUAGES}}", languagesSection(s))
	prompt = strings.ReplaceAll(prompt, "{{REPOSITORIES}}", repositoriesSection(s))
	return prompt
}

func profileSection(s *profile.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profile: %s (%s)\n", s.DisplayName(), s.Username)
	fmt.Fprintf(&b, "Bio: %s\n", orNotProvided(s.Bio))
	fmt.Fprintf(&b, "Location: %s\n", orNotProvided(s.Location))
	fmt.Fprintf(&b, "Company: %s\n", orNotProvided(s.Company))
	fmt.Fprintf(&b, "Public Repositories: %d\n", s.PublicRepos)
	fmt.Fprintf(&b, "Followers: %d\n", s.Followers)
	fmt.Fprintf(&b, "Account Created: %s", s.CreatedAt.Format("2006-01-02"))
	return b.String()
}

func languagesSection(s *profile.Snapshot) string {
	lines := make([]string, 0, promptLanguages)
	for _, lang := range utils.Take(s.Languages, promptLanguages) {
		lines = append(lines, fmt.Sprintf("- %s: %d points", lang.Name, lang.Weight))
	}
	if len(lines) == 0 {
		return "- none"
	}
	return strings.Join(lines, "\n")
}

func repositoriesSection(s *profile.Snapshot) string {
	lines := make([]string, 0, promptRepositories)
	for _, repo := range utils.Take(s.Repositories, promptRepositories) {
		language := "Unknown"
		if repo.Language != nil && *repo.Language != "" {
			language = *repo.Language
		}
		line := fmt.Sprintf("- %s (%s) - Stars: %d, Forks: %d", repo.Name, language, repo.Stars, repo.Forks)
		if repo.Description != nil && *repo.Description != "" {
			line += "\n  Description: " + *repo.Description
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "- none"
	}
	return strings.Join(lines, "\n")
}

func orNotProvided(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return notProvided
	}
	return *v
}
