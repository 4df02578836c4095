// Package jobs gathers postings from every configured source into one
// normalised, filtered and ordered list.
package jobs

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/filtering"
	"github.com/spigell/devmatch/internal/heuristics"
	"github.com/spigell/devmatch/internal/logger"
	"github.com/spigell/devmatch/internal/posting"
)

const DefaultSourceTimeout = 15 * time.Second

// Source is one fallible origin of postings.
type Source interface {
	Name() string
	Fetch(ctx context.Context, location string) ([]posting.Posting, error)
}

type Config struct {
	// SourceTimeout bounds every single source fetch.
	SourceTimeout time.Duration
	Filtering     filtering.Config
}

type Aggregator struct {
	sources []Source
	cfg     Config
	steps   []filtering.Filter
	logger  *zap.Logger
	now     func() time.Time
}

func NewAggregator(log *zap.Logger, cfg Config, sources ...Source) *Aggregator {
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = DefaultSourceTimeout
	}

	return &Aggregator{
		sources: sources,
		cfg:     cfg,
		steps:   filtering.Default(),
		logger:  logger.WithFields(log).Named("jobs"),
		now:     time.Now,
	}
}

// Collect never fails. When no source yields anything the sample set is
// returned.
func (a *Aggregator) Collect(ctx context.Context, locationHint string) []posting.Posting {
	now := a.now()
	location := heuristics.ResolveSearchLocation(locationHint)

	gathered, reports := Gather(ctx, a.logger, a.cfg.SourceTimeout, location, a.sources...)
	for _, r := range reports {
		a.logger.Debug("source report",
			zap.String("source", r.Source),
			zap.Int("postings", r.Count),
			zap.Duration("elapsed", r.Elapsed),
			zap.Error(r.Err),
		)
	}

	if len(gathered) == 0 {
		a.logger.Info("no postings from any source, using sample set", zap.String("location", location))
		return SamplePostings(now)
	}

	postings, err := filtering.Run(ctx, &a.cfg.Filtering, filtering.Deps{Logger: a.logger, Now: now}, a.steps, gathered)
	if err != nil {
		// Filters only fail on invalid configuration; keep the raw list.
		a.logger.Warn("filtering failed", zap.Error(err))
		postings = gathered
	}

	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].PostedAt.After(postings[j].PostedAt)
	})

	a.logger.Info("postings collected",
		zap.String("location", location),
		zap.Int("gathered", len(gathered)),
		zap.Int("kept", len(postings)),
	)

	return postings
}

// DisableFilter turns off the named filter step. It reports whether the
// step exists.
func (a *Aggregator) DisableFilter(name, reason string) bool {
	return filtering.DisableByName(a.steps, name, reason)
}

// Filters exposes the filter steps so callers can describe them.
func (a *Aggregator) Filters() []filtering.Filter {
	return a.steps
}
