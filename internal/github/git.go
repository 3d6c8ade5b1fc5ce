package github

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v67/github"
)

// File mode and object type for a regular, non-executable file entry.
const (
	fileMode = "100644"
	blobType = "blob"
)

type createRefRequest struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

type updateRefRequest struct {
	SHA   string `json:"sha"`
	Force bool   `json:"force"`
}

type createTreeRequest struct {
	BaseTree string          `json:"base_tree"`
	Entries  []*gh.TreeEntry `json:"tree"`
}

type createCommitRequest struct {
	Message string   `json:"message"`
	Tree    string   `json:"tree"`
	Parents []string `json:"parents"`
}

// GetBaseBranchSHA returns the SHA of the commit branch points at.
func (c *Client) GetBaseBranchSHA(ctx context.Context, owner, repo, branch string) (string, error) {
	const op = "get_base_branch_sha"
	resp, err := c.call(ctx, op, http.MethodGet, repoPath(owner, repo, "/git/ref/heads/"+escapeRef(branch)), nil)
	if err != nil {
		return "", err
	}
	return extractString(op, resp.Body, "object", "sha")
}

// CreateBranch creates refs/heads/name pointing at baseSHA.
func (c *Client) CreateBranch(ctx context.Context, owner, repo, name, baseSHA string) error {
	body := createRefRequest{
		Ref: "refs/heads/" + name,
		SHA: baseSHA,
	}
	_, err := c.call(ctx, "create_branch", http.MethodPost, repoPath(owner, repo, "/git/refs"), body)
	return err
}

// GetLatestTreeSHA returns the root tree SHA of commitSHA.
func (c *Client) GetLatestTreeSHA(ctx context.Context, owner, repo, commitSHA string) (string, error) {
	const op = "get_latest_tree_sha"
	resp, err := c.call(ctx, op, http.MethodGet, repoPath(owner, repo, "/git/commits/"+escapeRef(commitSHA)), nil)
	if err != nil {
		return "", err
	}
	return extractString(op, resp.Body, "tree", "sha")
}

// CreateBlob uploads content as a UTF-8 blob and returns its SHA.
func (c *Client) CreateBlob(ctx context.Context, owner, repo, content string) (string, error) {
	const op = "create_blob"
	body := &gh.Blob{
		Content:  gh.String(content),
		Encoding: gh.String("utf-8"),
	}
	resp, err := c.call(ctx, op, http.MethodPost, repoPath(owner, repo, "/git/blobs"), body)
	if err != nil {
		return "", err
	}
	return extractString(op, resp.Body, "sha")
}

// CreateTree creates a tree that is baseTree with path set to blobSHA, and
// returns the new tree's SHA.
func (c *Client) CreateTree(ctx context.Context, owner, repo, baseTree, path, blobSHA string) (string, error) {
	const op = "create_tree"
	body := createTreeRequest{
		BaseTree: baseTree,
		Entries: []*gh.TreeEntry{{
			Path: gh.String(path),
			Mode: gh.String(fileMode),
			Type: gh.String(blobType),
			SHA:  gh.String(blobSHA),
		}},
	}
	resp, err := c.call(ctx, op, http.MethodPost, repoPath(owner, repo, "/git/trees"), body)
	if err != nil {
		return "", err
	}
	return extractString(op, resp.Body, "sha")
}

// CreateCommit creates a commit of treeSHA with parentSHA as its only parent.
func (c *Client) CreateCommit(ctx context.Context, owner, repo, message, treeSHA, parentSHA string) (string, error) {
	const op = "create_commit"
	body := createCommitRequest{
		Message: message,
		Tree:    treeSHA,
		Parents: []string{parentSHA},
	}
	resp, err := c.call(ctx, op, http.MethodPost, repoPath(owner, repo, "/git/commits"), body)
	if err != nil {
		return "", err
	}
	return extractString(op, resp.Body, "sha")
}

// UpdateBranchReference moves branch to commitSHA. The update is never
// forced, so GitHub rejects it with 422 unless it is a fast-forward.
func (c *Client) UpdateBranchReference(ctx context.Context, owner, repo, branch, commitSHA string) error {
	body := updateRefRequest{SHA: commitSHA, Force: false}
	_, err := c.call(ctx, "update_branch_reference", http.MethodPatch, repoPath(owner, repo, "/git/refs/heads/"+escapeRef(branch)), body)
	return err
}
