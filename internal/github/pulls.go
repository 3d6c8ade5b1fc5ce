package github

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v67/github"
)

// PullRequest summarizes a created pull request.
type PullRequest struct {
	Number  int    `json:"number"`
	State   string `json:"state,omitempty"`
	HTMLURL string `json:"htmlURL,omitempty"`
}

// CreatePullRequest opens a pull request merging head into base. The
// returned summary is filled from whatever the response body provides.
func (c *Client) CreatePullRequest(ctx context.Context, owner, repo, base, head, title, body string) (*PullRequest, error) {
	req := &gh.NewPullRequest{
		Title: gh.String(title),
		Body:  gh.String(body),
		Base:  gh.String(base),
		Head:  gh.String(head),
	}
	resp, err := c.call(ctx, "create_pull_request", http.MethodPost, repoPath(owner, repo, "/pulls"), req)
	if err != nil {
		return nil, err
	}

	var pr gh.PullRequest
	if err := json.Unmarshal(resp.Body, &pr); err != nil {
		return &PullRequest{}, nil
	}
	return &PullRequest{
		Number:  pr.GetNumber(),
		State:   pr.GetState(),
		HTMLURL: pr.GetHTMLURL(),
	}, nil
}
