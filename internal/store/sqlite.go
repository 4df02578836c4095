package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/posting"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS job_postings (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	title            TEXT NOT NULL,
	company          TEXT NOT NULL,
	location         TEXT,
	description      TEXT,
	required_skills  TEXT NOT NULL DEFAULT '',
	preferred_skills TEXT NOT NULL DEFAULT '',
	experience_level TEXT,
	salary_min       REAL,
	salary_max       REAL,
	remote_options   TEXT NOT NULL DEFAULT 'On-site',
	posted_at        TEXT NOT NULL,
	expires_at       TEXT,
	is_active        INTEGER NOT NULL DEFAULT 1,
	url              TEXT
)`

// Fixed-width so that text comparison orders timestamps.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite stores postings in a single database file. Timestamps are kept as
// UTC text in sqliteTimeLayout.
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// OpenSQLite opens (and migrates) the database at path. ":memory:" is valid.
func OpenSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQLite, error) {
	if path == "" {
		return nil, errs.Misconfigured(source, "open sqlite", errors.New("dsn is required"))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Misconfigured(source, "open sqlite", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	logger.Debug("sqlite store ready", zap.String("path", path))

	return &SQLite{db: db, logger: logger, now: time.Now}, nil
}

func (s *SQLite) ListActive(ctx context.Context, now time.Time) ([]posting.Posting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postingColumns+` FROM job_postings
		 WHERE is_active = 1 AND (expires_at IS NULL OR expires_at > ?)
		 ORDER BY posted_at DESC, id DESC`,
		formatTime(now),
	)
	if err != nil {
		return nil, errs.Upstream(source, "list active", 0, err)
	}
	defer rows.Close()

	out := make([]posting.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows, parseTime)
		if err != nil {
			return nil, errs.Parse(source, "list active", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Upstream(source, "list active", 0, err)
	}
	return out, nil
}

func (s *SQLite) Get(ctx context.Context, id int64) (*posting.Posting, error) {
	p, err := scanPosting(
		s.db.QueryRowContext(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE id = ?`, id),
		parseTime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("get", id)
	}
	if err != nil {
		return nil, errs.Upstream(source, "get", 0, err)
	}
	return &p, nil
}

func (s *SQLite) Create(ctx context.Context, in PostingInput) (*posting.Posting, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := in.toPosting(0, s.now().UTC())
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO job_postings (title, company, location, description, required_skills, preferred_skills,
			experience_level, salary_min, salary_max, remote_options, posted_at, expires_at, is_active, url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		p.Title, p.Company, p.Location, p.Description, joinSkills(p.RequiredSkills), joinSkills(p.PreferredSkills),
		p.ExperienceLevel, p.SalaryMin, p.SalaryMax, p.RemoteOptions, formatTime(p.PostedAt), formatTimePtr(p.ExpiresAt), p.URL,
	)
	if err != nil {
		return nil, errs.Upstream(source, "create", 0, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, errs.Upstream(source, "create", 0, err)
	}
	return s.Get(ctx, id)
}

func (s *SQLite) Update(ctx context.Context, id int64, in PostingInput) (*posting.Posting, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := in.toPosting(id, time.Time{})
	res, err := s.db.ExecContext(ctx,
		`UPDATE job_postings SET title = ?, company = ?, location = ?, description = ?, required_skills = ?,
			preferred_skills = ?, experience_level = ?, salary_min = ?, salary_max = ?, remote_options = ?,
			expires_at = ?, url = ?
		 WHERE id = ?`,
		p.Title, p.Company, p.Location, p.Description, joinSkills(p.RequiredSkills), joinSkills(p.PreferredSkills),
		p.ExperienceLevel, p.SalaryMin, p.SalaryMax, p.RemoteOptions, formatTimePtr(p.ExpiresAt), p.URL, id,
	)
	if err != nil {
		return nil, errs.Upstream(source, "update", 0, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, notFound("update", id)
	}
	return s.Get(ctx, id)
}

func (s *SQLite) Deactivate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE job_postings SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return errs.Upstream(source, "deactivate", 0, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("deactivate", id)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(v any) (*time.Time, error) {
	var text string
	switch val := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &val, nil
	case string:
		text = val
	case []byte:
		text = string(val)
	default:
		return nil, fmt.Errorf("unexpected time value %T", v)
	}

	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
