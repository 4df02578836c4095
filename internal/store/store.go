// Package store persists job postings. Postings are never removed;
// Deactivate hides them from ListActive.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/posting"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	source = "store"
)

type Store interface {
	// ListActive returns active postings that have not expired at now,
	// newest first.
	ListActive(ctx context.Context, now time.Time) ([]posting.Posting, error)
	Get(ctx context.Context, id int64) (*posting.Posting, error)
	Create(ctx context.Context, in PostingInput) (*posting.Posting, error)
	Update(ctx context.Context, id int64, in PostingInput) (*posting.Posting, error)
	Deactivate(ctx context.Context, id int64) error
	Close() error
}

type Config struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Open returns the store selected by cfg.Driver. An empty driver means memory.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN, logger)
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.DSN, logger)
	default:
		return nil, errs.Misconfigured(source, "open", fmt.Errorf("unsupported driver %q", cfg.Driver))
	}
}

// PostingInput is the caller-supplied part of a posting.
type PostingInput struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Company         string     `json:"company" validate:"required,max=200"`
	Location        *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	Description     *string    `json:"description,omitempty"`
	RequiredSkills  []string   `json:"requiredSkills" validate:"dive,required,excludesall=0x2C"`
	PreferredSkills []string   `json:"preferredSkills" validate:"dive,required,excludesall=0x2C"`
	ExperienceLevel *string    `json:"experienceLevel,omitempty" validate:"omitempty,oneof=Junior Mid Senior"`
	SalaryMin       *float64   `json:"salaryMin,omitempty" validate:"omitempty,gte=0"`
	SalaryMax       *float64   `json:"salaryMax,omitempty" validate:"omitempty,gte=0"`
	RemoteOptions   string     `json:"remoteOptions" validate:"omitempty,oneof=Remote On-site Hybrid"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	URL             string     `json:"url,omitempty" validate:"omitempty,url"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(salaryRange, PostingInput{})
	return v
}

func salaryRange(sl validator.StructLevel) {
	in := sl.Current().Interface().(PostingInput)
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMax < *in.SalaryMin {
		sl.ReportError(in.SalaryMax, "SalaryMax", "SalaryMax", "gtefield", "SalaryMin")
	}
}

// Validate checks the input and returns an errs.ErrInvalidInput error.
func (in PostingInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return errs.Invalid(source, "validate", err)
	}
	return nil
}

// posting builds a stored posting from the input.
func (in PostingInput) toPosting(id int64, postedAt time.Time) posting.Posting {
	remote := in.RemoteOptions
	if remote == "" {
		remote = posting.OnSite
	}

	return posting.Posting{
		ID:              id,
		Title:           strings.TrimSpace(in.Title),
		Company:         strings.TrimSpace(in.Company),
		Location:        in.Location,
		Description:     in.Description,
		RequiredSkills:  nonNil(in.RequiredSkills),
		PreferredSkills: nonNil(in.PreferredSkills),
		ExperienceLevel: in.ExperienceLevel,
		SalaryMin:       in.SalaryMin,
		SalaryMax:       in.SalaryMax,
		Remote:          remote == posting.RemoteOnly,
		RemoteOptions:   remote,
		PostedAt:        postedAt,
		ExpiresAt:       in.ExpiresAt,
		Active:          true,
		Source:          posting.SourceStore,
		URL:             in.URL,
	}
}

// Skills are stored as one comma separated column.
func joinSkills(skills []string) string {
	return strings.Join(skills, ",")
}

func splitSkills(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return append([]string{}, items...)
}

func notFound(op string, id int64) error {
	return fmt.Errorf("posting %d: %w", id, errs.NotFound(source, op))
}
