package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/posting"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS job_postings (
	id               BIGSERIAL PRIMARY KEY,
	title            TEXT NOT NULL,
	company          TEXT NOT NULL,
	location         TEXT,
	description      TEXT,
	required_skills  TEXT NOT NULL DEFAULT '',
	preferred_skills TEXT NOT NULL DEFAULT '',
	experience_level TEXT,
	salary_min       DOUBLE PRECISION,
	salary_max       DOUBLE PRECISION,
	remote_options   TEXT NOT NULL DEFAULT 'On-site',
	posted_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at       TIMESTAMPTZ,
	is_active        BOOLEAN NOT NULL DEFAULT TRUE,
	url              TEXT
)`

type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// OpenPostgres connects to dsn, verifies the connection and creates the
// postings table when missing.
func OpenPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*Postgres, error) {
	if dsn == "" {
		return nil, errs.Misconfigured(source, "connect postgres", errors.New("dsn is required"))
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errs.Misconfigured(source, "connect postgres", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errs.Upstream(source, "ping postgres", 0, err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}

	logger.Debug("postgres store ready")

	return &Postgres{pool: pool, logger: logger}, nil
}

func (s *Postgres) ListActive(ctx context.Context, now time.Time) ([]posting.Posting, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+postingColumns+` FROM job_postings
		 WHERE is_active AND (expires_at IS NULL OR expires_at > $1)
		 ORDER BY posted_at DESC, id DESC`,
		now,
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

func (s *Postgres) Get(ctx context.Context, id int64) (*posting.Posting, error) {
	p, err := scanPosting(
		s.pool.QueryRow(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE id = $1`, id),
		parseTime,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("get", id)
	}
	if err != nil {
		return nil, errs.Upstream(source, "get", 0, err)
	}
	return &p, nil
}

func (s *Postgres) Create(ctx context.Context, in PostingInput) (*posting.Posting, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := in.toPosting(0, time.Time{})
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO job_postings (title, company, location, description, required_skills, preferred_skills,
			experience_level, salary_min, salary_max, remote_options, expires_at, url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		p.Title, p.Company, p.Location, p.Description, joinSkills(p.RequiredSkills), joinSkills(p.PreferredSkills),
		p.ExperienceLevel, p.SalaryMin, p.SalaryMax, p.RemoteOptions, p.ExpiresAt, p.URL,
	).Scan(&id)
	if err != nil {
		return nil, errs.Upstream(source, "create", 0, err)
	}
	return s.Get(ctx, id)
}

func (s *Postgres) Update(ctx context.Context, id int64, in PostingInput) (*posting.Posting, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := in.toPosting(id, time.Time{})
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_postings SET title = $1, company = $2, location = $3, description = $4, required_skills = $5,
			preferred_skills = $6, experience_level = $7, salary_min = $8, salary_max = $9, remote_options = $10,
			expires_at = $11, url = $12
		 WHERE id = $13`,
		p.Title, p.Company, p.Location, p.Description, joinSkills(p.RequiredSkills), joinSkills(p.PreferredSkills),
		p.ExperienceLevel, p.SalaryMin, p.SalaryMax, p.RemoteOptions, p.ExpiresAt, p.URL, id,
	)
	if err != nil {
		return nil, errs.Upstream(source, "update", 0, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, notFound("update", id)
	}
	return s.Get(ctx, id)
}

func (s *Postgres) Deactivate(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `UPDATE job_postings SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return errs.Upstream(source, "deactivate", 0, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("deactivate", id)
	}
	return nil
}

func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}
