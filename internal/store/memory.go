package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spigell/devmatch/internal/posting"
)

// Memory keeps postings in process memory. It starts empty.
type Memory struct {
	mu       sync.RWMutex
	nextID   int64
	postings map[int64]posting.Posting
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		nextID:   1,
		postings: make(map[int64]posting.Posting),
		now:      time.Now,
	}
}

func (m *Memory) ListActive(_ context.Context, now time.Time) ([]posting.Posting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]posting.Posting, 0, len(m.postings))
	for _, p := range m.postings {
		if p.Open(now) {
			out = append(out, clone(p))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PostedAt.Equal(out[j].PostedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].PostedAt.After(out[j].PostedAt)
	})

	return out, nil
}

func (m *Memory) Get(_ context.Context, id int64) (*posting.Posting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.postings[id]
	if !ok {
		return nil, notFound("get", id)
	}
	p = clone(p)
	return &p, nil
}

func (m *Memory) Create(_ context.Context, in PostingInput) (*posting.Posting, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p := in.toPosting(m.nextID, m.now())
	m.postings[p.ID] = p
	m.nextID++

	p = clone(p)
	return &p, nil
}

func (m *Memory) Update(_ context.Context, id int64, in PostingInput) (*posting.Posting, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.postings[id]
	if !ok {
		return nil, notFound("update", id)
	}

	p := in.toPosting(id, existing.PostedAt)
	p.Active = existing.Active
	m.postings[id] = p

	p = clone(p)
	return &p, nil
}

func (m *Memory) Deactivate(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.postings[id]
	if !ok {
		return notFound("deactivate", id)
	}
	p.Active = false
	m.postings[id] = p
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func clone(p posting.Posting) posting.Posting {
	p.RequiredSkills = nonNil(p.RequiredSkills)
	p.PreferredSkills = nonNil(p.PreferredSkills)
	return p
}
