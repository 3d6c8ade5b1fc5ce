package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/log/level"
)

// CommitRequest describes a single-file commit on top of a branch.
type CommitRequest struct {
	Owner   string
	Repo    string
	Branch  string
	Path    string
	Content string
	Message string
}

func (r CommitRequest) validate() error {
	switch {
	case r.Owner == "":
		return errors.New("commit request: owner is required")
	case r.Repo == "":
		return errors.New("commit request: repo is required")
	case r.Branch == "":
		return errors.New("commit request: branch is required")
	case r.Path == "":
		return errors.New("commit request: path is required")
	case r.Message == "":
		return errors.New("commit request: message is required")
	}
	return nil
}

// CommitResult is the SHA chain produced by CommitFile. Fields after the
// failing step are empty.
type CommitResult struct {
	BaseCommit string `json:"baseCommit"`
	BaseTree   string `json:"baseTree,omitempty"`
	Blob       string `json:"blob,omitempty"`
	Tree       string `json:"tree,omitempty"`
	Commit     string `json:"commit,omitempty"`
	// Updated is true once the branch points at Commit.
	Updated bool `json:"updated"`
}

// Orphans returns the objects created before a failure that no ref points
// at. It is empty after a successful run.
func (r *CommitResult) Orphans() []string {
	if r == nil || r.Updated {
		return nil
	}
	var out []string
	for _, sha := range []string{r.Blob, r.Tree, r.Commit} {
		if sha != "" {
			out = append(out, sha)
		}
	}
	return out
}

const commitSteps = 6

func stepError(n int, err error) error {
	return fmt.Errorf("commit step %d/%d: %w", n, commitSteps, err)
}

// CommitFile writes req.Content to req.Path on req.Branch as one new commit.
//
// The steps run strictly in order, each consuming the previous SHA: read the
// branch head, read its tree, create the blob, create a tree on top of the
// base tree, create a commit whose only parent is the branch head, then
// fast-forward the branch. On failure the partial result is returned with
// the error; nothing already created is removed.
func (c *Client) CommitFile(ctx context.Context, req CommitRequest) (*CommitResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	res := &CommitResult{}
	var err error

	if res.BaseCommit, err = c.GetBaseBranchSHA(ctx, req.Owner, req.Repo, req.Branch); err != nil {
		return res, stepError(1, err)
	}
	if res.BaseTree, err = c.GetLatestTreeSHA(ctx, req.Owner, req.Repo, res.BaseCommit); err != nil {
		return res, stepError(2, err)
	}
	if res.Blob, err = c.CreateBlob(ctx, req.Owner, req.Repo, req.Content); err != nil {
		return res, stepError(3, err)
	}
	if res.Tree, err = c.CreateTree(ctx, req.Owner, req.Repo, res.BaseTree, req.Path, res.Blob); err != nil {
		return res, stepError(4, err)
	}
	if res.Commit, err = c.CreateCommit(ctx, req.Owner, req.Repo, req.Message, res.Tree, res.BaseCommit); err != nil {
		return res, stepError(5, err)
	}
	if err = c.UpdateBranchReference(ctx, req.Owner, req.Repo, req.Branch, res.Commit); err != nil {
		return res, stepError(6, err)
	}
	res.Updated = true

	level.Info(c.logger).Log("msg", "commit created",
		"repo", req.Owner+"/"+req.Repo,
		"branch", req.Branch,
		"path", req.Path,
		"commit", res.Commit,
	)
	return res, nil
}
