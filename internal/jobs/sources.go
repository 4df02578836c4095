package jobs

import (
	"context"
	"time"

	"github.com/spigell/devmatch/internal/heuristics"
	"github.com/spigell/devmatch/internal/jooble"
	"github.com/spigell/devmatch/internal/posting"
)

// ActiveLister is the part of the posting store used as a source.
type ActiveLister interface {
	ListActive(ctx context.Context, now time.Time) ([]posting.Posting, error)
}

// Searcher is the part of the Jooble client used as a source.
type Searcher interface {
	Search(ctx context.Context, params jooble.SearchParams) (*jooble.Response, error)
}

type StoreSource struct {
	store ActiveLister
	now   func() time.Time
}

func NewStoreSource(store ActiveLister) *StoreSource {
	return &StoreSource{store: store, now: time.Now}
}

func (s *StoreSource) Name() string { return posting.SourceStore }

// Fetch ignores location; stored postings are not searched by place.
func (s *StoreSource) Fetch(ctx context.Context, _ string) ([]posting.Posting, error) {
	return s.store.ListActive(ctx, s.now())
}

type JoobleSource struct {
	client Searcher
	now    func() time.Time
}

func NewJoobleSource(client Searcher) *JoobleSource {
	return &JoobleSource{client: client, now: time.Now}
}

func (s *JoobleSource) Name() string { return posting.SourceJooble }

func (s *JoobleSource) Fetch(ctx context.Context, location string) ([]posting.Posting, error) {
	return Search(ctx, s.client, heuristics.DeveloperKeywords, location, 1, s.now())
}

// Search runs a keyword search and translates the developer roles found.
func Search(ctx context.Context, client Searcher, keywords, location string, page int, now time.Time) ([]posting.Posting, error) {
	resp, err := client.Search(ctx, jooble.SearchParams{
		Keywords: keywords,
		Location: location,
		Page:     page,
	})
	if err != nil {
		return nil, err
	}

	postings := make([]posting.Posting, 0, len(resp.Jobs))
	for _, job := range resp.Jobs {
		if p, ok := FromJooble(job, now); ok {
			postings = append(postings, p)
		}
	}
	return postings, nil
}
