package github

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type User struct {
	Login       string    `json:"login"`
	Name        *string   `json:"name"`
	Bio         *string   `json:"bio"`
	Location    *string   `json:"location"`
	Company     *string   `json:"company"`
	Blog        *string   `json:"blog"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
}

// GetUser returns the public profile of username.
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	var user User
	if err := c.getJSON(ctx, "get user", "/users/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
