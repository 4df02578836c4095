package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/devmatch/internal/posting"
)

// Report is the outcome of a single source fetch.
type Report struct {
	Source  string
	Count   int
	Elapsed time.Duration
	Err     error
}

// Gather fetches every source concurrently, each under its own timeout, and
// returns the successes concatenated in source order. A failing source is
// logged and skipped.
func Gather(ctx context.Context, log *zap.Logger, timeout time.Duration, location string, sources ...Source) ([]posting.Posting, []Report) {
	if log == nil {
		log = zap.NewNop()
	}

	results := make([][]posting.Posting, len(sources))
	reports := make([]Report, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			fetchCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			started := time.Now()
			items, err := src.Fetch(fetchCtx, location)
			reports[i] = Report{Source: src.Name(), Count: len(items), Elapsed: time.Since(started), Err: err}
			if err != nil {
				log.Warn("source failed", zap.String("source", src.Name()), zap.Error(err))
				reports[i].Count = 0
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	var out []posting.Posting
	for _, items := range results {
		out = append(out, items...)
	}
	return out, reports
}
