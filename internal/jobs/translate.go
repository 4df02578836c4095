package jobs

import (
	"hash/fnv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/spigell/devmatch/internal/heuristics"
	"github.com/spigell/devmatch/internal/jooble"
	"github.com/spigell/devmatch/internal/posting"
	"github.com/spigell/devmatch/internal/utils"
)

const (
	requiredSkills  = 5
	preferredSkills = 5
)

// FromJooble translates a search result. Results that are not developer
// roles report false.
func FromJooble(job jooble.Job, now time.Time) (posting.Posting, bool) {
	snippet := stripHTML(job.Snippet)
	if !heuristics.IsDeveloperRole(job.Title, snippet) {
		return posting.Posting{}, false
	}

	skills := heuristics.ExtractSkills(job.Title + " " + snippet)
	required := utils.Take(skills, requiredSkills)
	preferred := utils.Take(skills[len(required):], preferredSkills)

	salaryMin, salaryMax := heuristics.ParseSalary(job.Salary)
	level := string(heuristics.LevelFromTitle(job.Title))

	remote := heuristics.IsRemote(job.Location, job.Title)
	remoteOptions := posting.OnSite
	if remote {
		remoteOptions = posting.RemoteOnly
	}

	company := job.Company
	if company == "" {
		company = job.Source
	}

	p := posting.Posting{
		ID:              jobID(string(job.ID)),
		Title:           job.Title,
		Company:         company,
		RequiredSkills:  required,
		PreferredSkills: preferred,
		ExperienceLevel: &level,
		SalaryMin:       salaryMin,
		SalaryMax:       salaryMax,
		Remote:          remote,
		RemoteOptions:   remoteOptions,
		PostedAt:        heuristics.ParseUpdated(job.Updated, now),
		Active:          true,
		Source:          posting.SourceJooble,
		URL:             job.Link,
	}
	if job.Location != "" {
		p.Location = &job.Location
	}
	if snippet != "" {
		p.Description = &snippet
	}

	return p, true
}

// jobID maps the opaque identifier to a stable non-negative number.
func jobID(id string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int64(h.Sum32())
}

// stripHTML returns the text content of a snippet that may carry markup.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
