// Package posting defines the normalised job posting shared by every source.
package posting

import "time"

const (
	SourceStore  = "store"
	SourceJooble = "jooble"
	SourceSample = "sample"

	RemoteOnly = "Remote"
	OnSite     = "On-site"
	Hybrid     = "Hybrid"
)

type Posting struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        *string    `json:"location,omitempty"`
	Description     *string    `json:"description,omitempty"`
	RequiredSkills  []string   `json:"requiredSkills"`
	PreferredSkills []string   `json:"preferredSkills"`
	ExperienceLevel *string    `json:"experienceLevel,omitempty"`
	SalaryMin       *float64   `json:"salaryMin,omitempty"`
	SalaryMax       *float64   `json:"salaryMax,omitempty"`
	Remote          bool       `json:"remote"`
	RemoteOptions   string     `json:"remoteOptions"`
	PostedAt        time.Time  `json:"postedAt"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	Active          bool       `json:"active"`
	Source          string     `json:"source"`
	URL             string     `json:"url,omitempty"`
}

// Open reports whether the posting is active and not expired at now.
func (p Posting) Open(now time.Time) bool {
	return p.Active && (p.ExpiresAt == nil || p.ExpiresAt.After(now))
}
