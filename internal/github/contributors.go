package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/devmatch/internal/errs"
)

type Contributor struct {
	Login         string `mapstructure:"login"`
	Contributions int    `mapstructure:"contributions"`
}

type Contributors []Contributor

// ListContributors returns per-contributor commit attribution for owner/repo.
func (c *Client) ListContributors(ctx context.Context, owner, repo string) (Contributors, error) {
	path := fmt.Sprintf("/repos/%s/%s/contributors", url.PathEscape(owner), url.PathEscape(repo))

	// An empty repository answers 204 with no body; getJSON treats that as
	// a bad status which is fine for the estimate's fallback.
	var items []any
	if err := c.getJSON(ctx, "list contributors", path, nil, &items); err != nil {
		return nil, err
	}

	var contributors Contributors
	cfg := &mapstructure.DecoderConfig{
		Result:           &contributors,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, errs.Parse(source, "list contributors", err)
	}
	if err := decoder.Decode(items); err != nil {
		return nil, errs.Parse(source, "list contributors", err)
	}

	return contributors, nil
}

// ContributionsOf returns the contribution count of login and whether the login was present.
func (c Contributors) ContributionsOf(login string) (int, bool) {
	for _, contributor := range c {
		if strings.EqualFold(contributor.Login, login) {
			return contributor.Contributions, true
		}
	}
	return 0, false
}
