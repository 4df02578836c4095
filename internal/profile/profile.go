// Package profile collects a developer's public code-hosting signals into an
// immutable Snapshot.
package profile

import (
	"time"
)

// Snapshot is the normalised profile of one developer at one point in time.
type Snapshot struct {
	Username     string          `json:"username"`
	Name         string          `json:"name"`
	Bio          *string         `json:"bio,omitempty"`
	Location     *string         `json:"location,omitempty"`
	Company      *string         `json:"company,omitempty"`
	Blog         *string         `json:"blog,omitempty"`
	PublicRepos  int             `json:"publicRepos"`
	Followers    int             `json:"followers"`
	Following    int             `json:"following"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	AvatarURL    string          `json:"avatarUrl"`
	HTMLURL      string          `json:"htmlUrl"`
	Repositories []Repository    `json:"repositories"`
	Languages    LanguageWeights `json:"languages"`
	TotalCommits int             `json:"totalCommits"`
	AnalyzedAt   time.Time       `json:"analyzedAt"`
}

type Repository struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Language    *string    `json:"language,omitempty"`
	Stars       int        `json:"stars"`
	Forks       int        `json:"forks"`
	Size        int        `json:"size"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PushedAt    *time.Time `json:"pushedAt,omitempty"`
	HTMLURL     string     `json:"htmlUrl"`
	Fork        bool       `json:"fork"`
}

// DisplayName returns the profile name, or the login when no name is set.
func (s *Snapshot) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Username
}

// LocationHint returns the free-form profile location or an empty string.
func (s *Snapshot) LocationHint() string {
	if s.Location == nil {
		return ""
	}
	return *s.Location
}

// AccountAge is the time between account creation and the analysis.
func (s *Snapshot) AccountAge() time.Duration {
	return s.AnalyzedAt.Sub(s.CreatedAt)
}
