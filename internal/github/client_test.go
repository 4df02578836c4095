package github

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/errs"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(zap.NewNop(), "secret", 0)
	c.APIURL = srv.URL
	return c
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "token secret" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Fatalf("unexpected user agent %q", got)
		}
		w.Write([]byte(`{"login":"octocat","name":"The Octocat","bio":null,"location":"San Francisco",
			"public_repos":8,"followers":100,"following":9,"created_at":"2011-01-25T18:44:36Z",
			"updated_at":"2024-01-22T12:00:00Z","avatar_url":"https://a","html_url":"https://h"}`))
	})

	user, err := c.GetUser(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Login != "octocat" || user.PublicRepos != 8 || user.Followers != 100 {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Bio != nil {
		t.Fatalf("expected nil bio")
	}
	if user.Location == nil || *user.Location != "San Francisco" {
		t.Fatalf("unexpected location: %v", user.Location)
	}
	if user.CreatedAt.Year() != 2011 {
		t.Fatalf("unexpected created at: %v", user.CreatedAt)
	}
}

func TestGetUserStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{name: "not found", status: http.StatusNotFound, kind: errs.ErrNotFound},
		{name: "rate limited", status: http.StatusForbidden, kind: errs.ErrUpstreamUnavailable},
		{name: "server error", status: http.StatusBadGateway, kind: errs.ErrUpstreamUnavailable},
		{name: "malformed body", status: http.StatusOK, body: "{", kind: errs.ErrParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.GetUser(context.Background(), "ghost")
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestListRepositoriesQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("per_page") != "100" || q.Get("sort") != "updated" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"name":"a","language":"Go","stargazers_count":3,"forks_count":1,"size":2048,
			"fork":false,"created_at":"2020-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z","pushed_at":null}]`))
	})

	repos, err := c.ListRepositories(context.Background(), "octocat", 2, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repos) != 1 || repos[0].Name != "a" || *repos[0].Language != "Go" || repos[0].PushedAt != nil {
		t.Fatalf("unexpected repos: %+v", repos)
	}
}

func TestListContributorsGzip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/hello/contributors" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(`[{"login":"someone","contributions":5},{"login":"Octocat","contributions":"42"}]`))
		gz.Close()
	})

	contributors, err := c.ListContributors(context.Background(), "octocat", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, ok := contributors.ContributionsOf("octocat")
	if !ok || count != 42 {
		t.Fatalf("expected 42 contributions, got %d (found=%v)", count, ok)
	}

	if _, ok := contributors.ContributionsOf("nobody"); ok {
		t.Fatalf("did not expect unknown login")
	}
}
