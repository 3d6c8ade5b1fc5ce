package github

import (
	"context"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v67/github"
)

// Repo summarizes a repository visible to the authenticated user.
type Repo struct {
	FullName      string `json:"fullName"`
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	DefaultBranch string `json:"defaultBranch"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"htmlURL"`
}

// ListUserRepos fetches /user/repos. Unlike the bare verbs it fails on a
// non-2xx status, returning an error that carries the status.
func (c *Client) ListUserRepos(ctx context.Context) (*Response, error) {
	return c.call(ctx, "list_user_repos", http.MethodGet, "/user/repos", nil)
}

// UserRepos returns the first page of repositories for the authenticated
// user.
func (c *Client) UserRepos(ctx context.Context) ([]Repo, error) {
	resp, err := c.ListUserRepos(ctx)
	if err != nil {
		return nil, err
	}
	var repos []*gh.Repository
	if err := json.Unmarshal(resp.Body, &repos); err != nil {
		return nil, parseError("list_user_repos", fmt.Sprintf("decoding repository list: %v", err))
	}
	out := make([]Repo, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		out = append(out, convertRepository(r))
	}
	return out, nil
}

func convertRepository(r *gh.Repository) Repo {
	repo := Repo{
		FullName:      r.GetFullName(),
		Name:          r.GetName(),
		Description:   r.GetDescription(),
		DefaultBranch: r.GetDefaultBranch(),
		Private:       r.GetPrivate(),
		HTMLURL:       r.GetHTMLURL(),
	}
	if owner := r.GetOwner(); owner != nil {
		repo.Owner = owner.GetLogin()
	}
	return repo
}
