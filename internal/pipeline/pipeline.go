// Package pipeline runs a full match: profile, then assessment and postings
// side by side, then ranking.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/devmatch/internal/assessment"
	"github.com/spigell/devmatch/internal/logger"
	"github.com/spigell/devmatch/internal/matching"
	"github.com/spigell/devmatch/internal/posting"
	"github.com/spigell/devmatch/internal/profile"
)

type ProfileAggregator interface {
	Aggregate(ctx context.Context, username string) (*profile.Snapshot, error)
}

type Assessor interface {
	Assess(ctx context.Context, snapshot *profile.Snapshot) *assessment.Assessment
}

type Collector interface {
	Collect(ctx context.Context, locationHint string) []posting.Posting
}

// Result is the combined answer of one run.
type Result struct {
	RunID      string                 `json:"runId"`
	Snapshot   *profile.Snapshot      `json:"profile"`
	Assessment *assessment.Assessment `json:"assessment"`
	Matches    []matching.Match       `json:"matches"`
	Postings   int                    `json:"postings"`
	AnalyzedAt time.Time              `json:"analyzedAt"`
	// Jobs are the collected postings the matches were scored from.
	Jobs []posting.Posting `json:"-"`
}

// Job returns the collected posting with id.
func (r *Result) Job(id int64) *posting.Posting {
	for i := range r.Jobs {
		if r.Jobs[i].ID == id {
			return &r.Jobs[i]
		}
	}
	return nil
}

// Analysis is a profile with its assessment and no postings.
type Analysis struct {
	RunID      string                 `json:"runId"`
	Snapshot   *profile.Snapshot      `json:"profile"`
	Assessment *assessment.Assessment `json:"assessment"`
}

type Pipeline struct {
	profiles  ProfileAggregator
	assessor  Assessor
	collector Collector
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func New(profiles ProfileAggregator, assessor Assessor, collector Collector, log *zap.Logger) *Pipeline {
	return &Pipeline{
		profiles:  profiles,
		assessor:  assessor,
		collector: collector,
		logger:    logger.WithFields(log).Named("pipeline"),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// Run produces ranked matches for username. Only a failed profile lookup is
// returned as an error.
func (p *Pipeline) Run(ctx context.Context, username string) (*Result, error) {
	runID := p.newID()
	log := logger.WithRun(p.logger, runID, username)
	log.Info("run started")

	snapshot, err := p.profiles.Aggregate(ctx, username)
	if err != nil {
		log.Warn("profile lookup failed", zap.Error(err))
		return nil, fmt.Errorf("aggregate profile %q: %w", username, err)
	}

	var (
		judged   *assessment.Assessment
		postings []posting.Posting
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		judged = p.assessor.Assess(gctx, snapshot)
		return nil
	})
	g.Go(func() error {
		postings = p.collector.Collect(gctx, snapshot.LocationHint())
		return nil
	})
	_ = g.Wait()

	matches := matching.Rank(judged, postings)

	log.Info("run finished",
		zap.String("experience_level", string(judged.ExperienceLevel)),
		zap.String("assessment_source", judged.Source),
		zap.Int("postings", len(postings)),
		zap.Int("matches", len(matches)),
	)

	return &Result{
		RunID:      runID,
		Snapshot:   snapshot,
		Assessment: judged,
		Matches:    matches,
		Postings:   len(postings),
		AnalyzedAt: p.now(),
		Jobs:       postings,
	}, nil
}

// Analyze aggregates and assesses username without touching job sources.
func (p *Pipeline) Analyze(ctx context.Context, username string) (*Analysis, error) {
	runID := p.newID()
	log := logger.WithRun(p.logger, runID, username)

	snapshot, err := p.profiles.Aggregate(ctx, username)
	if err != nil {
		log.Warn("profile lookup failed", zap.Error(err))
		return nil, fmt.Errorf("aggregate profile %q: %w", username, err)
	}

	judged := p.assessor.Assess(ctx, snapshot)
	log.Info("profile analyzed", zap.String("experience_level", string(judged.ExperienceLevel)))

	return &Analysis{RunID: runID, Snapshot: snapshot, Assessment: judged}, nil
}
