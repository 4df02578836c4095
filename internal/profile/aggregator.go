package profile

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/github"
	"github.com/spigell/devmatch/internal/logger"
)

const (
	DefaultMaxPages     = 5
	DefaultPacing       = 100 * time.Millisecond
	MaxConcurrency      = 3
	maxRepositories     = 50
	maxCommitRepos      = 10
	commitActivityYears = 2
	minCommitsPerRepo   = 2
	sizePerCommitGuess  = 100
)

// Client is the part of the GitHub client the aggregator needs.
type Client interface {
	GetUser(ctx context.Context, username string) (*github.User, error)
	ListRepositories(ctx context.Context, username string, page, perPage int) ([]github.Repository, error)
	ListContributors(ctx context.Context, owner, repo string) (github.Contributors, error)
}

type Config struct {
	PerPage  int
	MaxPages int
	// Pacing is waited after every contributor lookup.
	Pacing time.Duration
	// Concurrency bounds parallel contributor lookups. 1 means sequential.
	Concurrency int
}

type Aggregator struct {
	client Client
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

func NewAggregator(client Client, log *zap.Logger, cfg Config) *Aggregator {
	if cfg.PerPage <= 0 || cfg.PerPage > github.MaxPerPage {
		cfg.PerPage = github.MaxPerPage
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.Pacing < 0 {
		cfg.Pacing = 0
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Concurrency > MaxConcurrency {
		cfg.Concurrency = MaxConcurrency
	}

	return &Aggregator{
		client: client,
		cfg:    cfg,
		logger: logger.WithFields(log).Named("profile"),
		now:    time.Now,
	}
}

// Aggregate builds the Snapshot of username. Only the profile lookup can fail
// the call; repository and commit collection degrade to partial data.
func (a *Aggregator) Aggregate(ctx context.Context, username string) (*Snapshot, error) {
	user, err := a.client.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	now := a.now()
	repos := a.repositories(ctx, username)
	languages := ComputeLanguageWeights(repos)
	commits := a.EstimateCommits(ctx, username, repos, now)

	snapshot := &Snapshot{
		Username:     user.Login,
		Bio:          user.Bio,
		Location:     user.Location,
		Company:      user.Company,
		Blog:         user.Blog,
		PublicRepos:  user.PublicRepos,
		Followers:    user.Followers,
		Following:    user.Following,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
		AvatarURL:    user.AvatarURL,
		HTMLURL:      user.HTMLURL,
		Repositories: repos,
		Languages:    languages,
		TotalCommits: commits,
		AnalyzedAt:   now,
	}
	if user.Name != nil {
		snapshot.Name = *user.Name
	}
	if snapshot.Username == "" {
		snapshot.Username = username
	}

	a.logger.Info("profile aggregated",
		zap.String(logger.FieldUsername, snapshot.Username),
		zap.Int("repositories", len(repos)),
		zap.Int("languages", len(languages)),
		zap.Int("commits", commits),
	)

	return snapshot, nil
}

// Exists reports whether username resolves to a profile.
func (a *Aggregator) Exists(ctx context.Context, username string) (bool, error) {
	if _, err := a.client.GetUser(ctx, username); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// repositories pages through the user's repositories, drops forks nobody
// starred and keeps the most recently updated ones.
func (a *Aggregator) repositories(ctx context.Context, username string) []Repository {
	var collected []Repository

	for page := 1; page <= a.cfg.MaxPages; page++ {
		items, err := a.client.ListRepositories(ctx, username, page, a.cfg.PerPage)
		if err != nil {
			a.logger.Warn("list repositories failed, keeping collected pages",
				zap.Int("page", page),
				zap.Error(err),
			)
			break
		}
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			if item.Fork && item.StargazersCount == 0 {
				continue
			}
			collected = append(collected, fromGitHub(item))
		}
	}

	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].UpdatedAt.After(collected[j].UpdatedAt)
	})

	if len(collected) > maxRepositories {
		collected = collected[:maxRepositories]
	}
	return collected
}

func fromGitHub(r github.Repository) Repository {
	return Repository{
		Name:        r.Name,
		Description: r.Description,
		Language:    r.Language,
		Stars:       r.StargazersCount,
		Forks:       r.ForksCount,
		Size:        r.Size,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		PushedAt:    r.PushedAt,
		HTMLURL:     r.HTMLURL,
		Fork:        r.Fork,
	}
}
