package profile

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/utils"
)

// EstimateCommits approximates the user's commit count from contributor
// statistics of up to ten repositories pushed within the last two years. A
// failed lookup counts max(1, size/100) for that repository. The result is
// never below two commits per repository.
func (a *Aggregator) EstimateCommits(ctx context.Context, username string, repos []Repository, now time.Time) int {
	cutoff := now.AddDate(-commitActivityYears, 0, 0)

	candidates := make([]Repository, 0, maxCommitRepos)
	for _, repo := range repos {
		if repo.PushedAt == nil || !repo.PushedAt.After(cutoff) {
			continue
		}
		candidates = append(candidates, repo)
		if len(candidates) == maxCommitRepos {
			break
		}
	}

	counts := make([]int, len(candidates))
	p := pool.New().WithMaxGoroutines(a.cfg.Concurrency)
	for i, repo := range candidates {
		p.Go(func() {
			counts[i] = a.repositoryCommits(ctx, username, repo)
			// Paced per worker.
			_ = utils.WaitFor(ctx, a.cfg.Pacing)
		})
	}
	p.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}

	return max(total, minCommitsPerRepo*len(repos))
}

func (a *Aggregator) repositoryCommits(ctx context.Context, username string, repo Repository) int {
	contributors, err := a.client.ListContributors(ctx, username, repo.Name)
	if err != nil {
		a.logger.Debug("contributor lookup failed, estimating from size",
			zap.String("repository", repo.Name),
			zap.Error(err),
		)
		return max(1, repo.Size/sizePerCommitGuess)
	}

	count, _ := contributors.ContributionsOf(username)
	return count
}
