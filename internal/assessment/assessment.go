// Package assessment turns a profile snapshot into a skills and experience
// judgement, asking a reasoning service first and falling back to local
// heuristics whenever that is not possible.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/ai"
	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/heuristics"
	"github.com/spigell/devmatch/internal/logger"
	"github.com/spigell/devmatch/internal/profile"
	"github.com/spigell/devmatch/internal/utils"
)

const (
	SourceReasoning = "reasoning"
	SourceHeuristic = "heuristic"

	defaultLogLength = 200

	// DefaultTimeout bounds one reasoning service call.
	DefaultTimeout = 30 * time.Second
)

type Assessment struct {
	Username         string           `json:"username"`
	Summary          string           `json:"summary"`
	Skills           []string         `json:"skills"`
	ExperienceLevel  heuristics.Level `json:"experienceLevel"`
	PrimaryLanguages []string         `json:"primaryLanguages"`
	TechStack        []string         `json:"techStack"`
	Strengths        []string         `json:"strengths"`
	ImprovementAreas []string         `json:"improvementAreas"`
	OverallScore     float64          `json:"overallScore"`
	AnalyzedAt       time.Time        `json:"analyzedAt"`
	Source           string           `json:"source"`
}

// OutcomeKind tells which branch produced an assessment.
type OutcomeKind int

const (
	Parsed OutcomeKind = iota
	Fallback
)

func (k OutcomeKind) String() string {
	if k == Parsed {
		return "parsed"
	}
	return "fallback"
}

// Outcome is the tagged result of one evaluation. Cause is set for Fallback
// outcomes and explains why the reasoning service answer was not used.
type Outcome struct {
	Kind       OutcomeKind
	Assessment *Assessment
	Cause      error
}

type Engine struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
	timeout   time.Duration
	now       func() time.Time
}

// NewEngine creates an Engine. A nil generator means heuristic-only mode.
func NewEngine(generator ai.Generator, log *zap.Logger) *Engine {
	log = logger.WithFields(log).Named("assessment")
	if generator != nil {
		log = logger.WithCommonFields(log, ai.ProviderOf(generator), generator.Model())
	}

	return &Engine{
		generator: generator,
		logger:    log,
		maxLogLen: defaultLogLength,
		timeout:   DefaultTimeout,
		now:       time.Now,
	}
}

// WithTimeout sets the deadline of a reasoning service call. Non-positive
// values keep the current one.
func (e *Engine) WithTimeout(d time.Duration) *Engine {
	if d > 0 {
		e.timeout = d
	}
	return e
}

// Assess always returns a usable assessment.
func (e *Engine) Assess(ctx context.Context, snapshot *profile.Snapshot) *Assessment {
	outcome := e.Evaluate(ctx, snapshot)

	if outcome.Kind == Fallback {
		level := e.logger.Warn
		if errors.Is(outcome.Cause, errs.ErrMisconfigured) {
			level = e.logger.Info
		}
		level("using heuristic assessment",
			zap.String(logger.FieldUsername, snapshot.Username),
			zap.Error(outcome.Cause),
		)
	}

	return outcome.Assessment
}

// Evaluate runs the reasoning service and reports which branch was taken.
func (e *Engine) Evaluate(ctx context.Context, snapshot *profile.Snapshot) Outcome {
	now := e.now()

	fallback := func(cause error) Outcome {
		return Outcome{Kind: Fallback, Assessment: Heuristic(snapshot, now), Cause: cause}
	}

	if e.generator == nil {
		return fallback(errs.Misconfigured("assessment", "evaluate", errors.New("no reasoning service configured")))
	}

	prompt := BuildPrompt(snapshot)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.generator.GenerateContent(callCtx, SystemPrompt, prompt)
	if err != nil {
		// A deadline counts as a transport failure.
		if ctxErr := callCtx.Err(); ctxErr != nil {
			if !errors.Is(err, ctxErr) {
				err = fmt.Errorf("%w: %w", ctxErr, err)
			}
			err = errs.Upstream(ai.ProviderOf(e.generator), "generate content", 0, err)
		}
		return fallback(err)
	}

	e.logger.Debug("reasoning service answered",
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	assessment, err := ParseResponse(snapshot.Username, raw, now)
	if err != nil {
		return fallback(err)
	}

	return Outcome{Kind: Parsed, Assessment: assessment}
}
