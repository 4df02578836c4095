package store

import (
	"database/sql"
	"time"

	"github.com/spigell/devmatch/internal/posting"
)

const postingColumns = `id, title, company, location, description, required_skills, preferred_skills,
	experience_level, salary_min, salary_max, remote_options, posted_at, expires_at, is_active, url`

// row is satisfied by both pgx.Row and *sql.Row/*sql.Rows.
type row interface {
	Scan(dest ...any) error
}

// scanPosting reads one row selected with postingColumns. Timestamps are
// read through parse so the sqlite backend can keep them as text.
func scanPosting(r row, parse func(any) (*time.Time, error)) (posting.Posting, error) {
	var (
		p                     posting.Posting
		location, description sql.NullString
		required, preferred   string
		level                 sql.NullString
		salaryMin, salaryMax  sql.NullFloat64
		postedRaw, expiresRaw any
		url                   sql.NullString
	)

	if err := r.Scan(
		&p.ID, &p.Title, &p.Company, &location, &description, &required, &preferred,
		&level, &salaryMin, &salaryMax, &p.RemoteOptions, &postedRaw, &expiresRaw, &p.Active, &url,
	); err != nil {
		return posting.Posting{}, err
	}

	posted, err := parse(postedRaw)
	if err != nil {
		return posting.Posting{}, err
	}
	if posted != nil {
		p.PostedAt = *posted
	}
	if p.ExpiresAt, err = parse(expiresRaw); err != nil {
		return posting.Posting{}, err
	}

	p.Location = nullString(location)
	p.Description = nullString(description)
	p.ExperienceLevel = nullString(level)
	p.SalaryMin = nullFloat(salaryMin)
	p.SalaryMax = nullFloat(salaryMax)
	p.RequiredSkills = splitSkills(required)
	p.PreferredSkills = splitSkills(preferred)
	p.Remote = p.RemoteOptions == posting.RemoteOnly
	p.URL = url.String
	p.Source = posting.SourceStore

	return p, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
