package jooble

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/errs"
)

const searchBody = `{
	"totalCount": 2,
	"jobs": [
		{"id": "-123456789", "title": "Go Developer", "company": "Acme", "source": "board.example",
		 "location": "Remote", "snippet": "<b>Go</b> and Docker", "salary": "$100k - $120k",
		 "type": "Full-time", "link": "https://jooble.org/a", "updated": "2025-05-30T10:00:00.0000000"},
		{"id": 987654321, "title": "Python Developer", "company": "", "source": "jobs.example",
		 "location": "Berlin", "snippet": "", "salary": "", "updated": ""}
	]
}`

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = value
	return nil
}

func newTestClient(t *testing.T, key string, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(zap.NewNop(), key, 0)
	c.APIURL = srv.URL + "/api/"
	return c, calls
}

func TestSearch(t *testing.T) {
	c, _ := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/secret", r.URL.Path)
		assert.Equal(t, contentType, r.Header.Get("Content-Type"))

		var params SearchParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, SearchParams{Keywords: "go developer", Location: "remote", Radius: 50, Page: 1}, params)

		w.Write([]byte(searchBody))
	})

	resp, err := c.Search(context.Background(), SearchParams{Keywords: "go developer", Location: "remote"})
	require.NoError(t, err)

	require.Len(t, resp.Jobs, 2)
	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, ID("-123456789"), resp.Jobs[0].ID)
	assert.Equal(t, ID("987654321"), resp.Jobs[1].ID)
	assert.Equal(t, "jobs.example", resp.Jobs[1].Source)
}

func TestSearchWithoutKey(t *testing.T) {
	c, calls := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {})

	_, err := c.Search(context.Background(), SearchParams{Keywords: "go"})
	assert.True(t, errors.Is(err, errs.ErrMisconfigured))
	assert.EqualValues(t, 0, calls.Load())
}

func TestSearchFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{name: "forbidden", status: http.StatusForbidden, kind: errs.ErrUpstreamUnavailable},
		{name: "server error", status: http.StatusInternalServerError, kind: errs.ErrUpstreamUnavailable},
		{name: "malformed", status: http.StatusOK, body: `{"jobs": [`, kind: errs.ErrParseFailure},
		{name: "bad id", status: http.StatusOK, body: `{"jobs": [{"id": true}]}`, kind: errs.ErrParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, "secret", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Search(context.Background(), SearchParams{Keywords: "go"})
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestSearchUsesCache(t *testing.T) {
	c, calls := newTestClient(t, "secret", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(searchBody))
	})
	cache := &memoryCache{}
	c.WithCache(cache)

	params := SearchParams{Keywords: "go", Location: "remote"}
	first, err := c.Search(context.Background(), params)
	require.NoError(t, err)
	second, err := c.Search(context.Background(), params)
	require.NoError(t, err)

	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, first, second)

	_, err = c.Search(context.Background(), SearchParams{Keywords: "go", Location: "remote", Page: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestCacheKey(t *testing.T) {
	a := cacheKey(SearchParams{Keywords: "go", Location: "remote", Page: 1})
	b := cacheKey(SearchParams{Keywords: "go", Location: "remote", Page: 1, Radius: 10})
	c := cacheKey(SearchParams{Keywords: "go", Location: "berlin", Page: 1})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "jooble:search:")
}
