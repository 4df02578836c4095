package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type Repository struct {
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	Language        *string    `json:"language"`
	Fork            bool       `json:"fork"`
	StargazersCount int        `json:"stargazers_count"`
	ForksCount      int        `json:"forks_count"`
	Size            int        `json:"size"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PushedAt        *time.Time `json:"pushed_at"`
	HTMLURL         string     `json:"html_url"`
}

// ListRepositories returns a single page of the user's repositories sorted by
// last update. Pages start at 1.
func (c *Client) ListRepositories(ctx context.Context, username string, page, perPage int) ([]Repository, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if perPage <= 0 || perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("sort", "updated")

	var repos []Repository
	path := fmt.Sprintf("/users/%s/repos", url.PathEscape(username))
	if err := c.getJSON(ctx, "list repositories", path, q, &repos); err != nil {
		return nil, err
	}

	return repos, nil
}
