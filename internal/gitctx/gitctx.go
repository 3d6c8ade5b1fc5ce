package gitctx

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	giturl "github.com/kubescape/go-git-url"
)

// DefaultRemote is the remote consulted when none is named.
const DefaultRemote = "origin"

// RepoMeta contains local repository metadata. Remote is the fetch URL of
// DefaultRemote, or empty when that remote is not configured.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
	Remote string
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta() (RepoMeta, error) {
	root, err := gitOutput("rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput("rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, _ := CurrentBranch()
	remote, _ := RemoteURL(DefaultRemote)
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: branch,
		Remote: remote,
	}, nil
}

// OwnerRepo parses owner/repo from m.Remote.
func (m RepoMeta) OwnerRepo() (owner, repo string, err error) {
	if m.Remote == "" {
		return "", "", fmt.Errorf("no %s remote configured in %s", DefaultRemote, m.Root)
	}
	return ParseRemote(m.Remote)
}

// ErrDetachedHead is returned by CurrentBranch when HEAD is not on a branch.
var ErrDetachedHead = errors.New("HEAD is detached")

// CurrentBranch returns the name of the checked-out branch.
func CurrentBranch() (string, error) {
	out, err := gitOutput("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse --abbrev-ref HEAD: %w", err)
	}
	branch := strings.TrimSpace(out)
	if branch == "HEAD" {
		return "", ErrDetachedHead
	}
	return branch, nil
}

// RemoteURL returns the fetch URL of the named remote.
func RemoteURL(name string) (string, error) {
	if name == "" {
		name = DefaultRemote
	}
	out, err := gitOutput("remote", "get-url", name)
	if err != nil {
		return "", fmt.Errorf("git remote get-url %s: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

// DetectRepo parses owner/repo from the origin remote URL.
func DetectRepo() (owner, repo string, err error) {
	meta, err := GetRepoMeta()
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: %w", err)
	}
	return meta.OwnerRepo()
}

var (
	httpsRemoteRe = regexp.MustCompile(`^(?:https?|ssh|git)://(?:[^@/]+@)?[^/]+/([^/]+)/([^/\s]+)$`)
	scpRemoteRe   = regexp.MustCompile(`^[^@\s]+@[^:\s]+:([^/]+)/([^/\s]+)$`)
)

// ParseRemote extracts owner/repo from a git remote URL. Hosted providers
// are recognized by go-git-url; anything else, such as a GitHub Enterprise
// host, falls back to matching the URL shape.
func ParseRemote(url string) (owner, repo string, err error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", "", errors.New("cannot parse owner/repo from empty remote URL")
	}

	if u, err := giturl.NewGitURL(url); err == nil {
		owner, repo = u.GetOwnerName(), strings.TrimSuffix(u.GetRepoName(), ".git")
		if owner != "" && repo != "" {
			return owner, repo, nil
		}
	}

	trimmed := strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")
	if m := httpsRemoteRe.FindStringSubmatch(trimmed); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := scpRemoteRe.FindStringSubmatch(trimmed); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
