package gitctx

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseRemote(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "HTTPS",
			url:       "https://github.com/octocat/Hello-World.git",
			wantOwner: "octocat",
			wantRepo:  "Hello-World",
		},
		{
			name:      "HTTPS no .git",
			url:       "https://github.com/octocat/Hello-World",
			wantOwner: "octocat",
			wantRepo:  "Hello-World",
		},
		{
			name:      "SSH",
			url:       "git@github.com:octocat/Hello-World.git",
			wantOwner: "octocat",
			wantRepo:  "Hello-World",
		},
		{
			name:      "SSH no .git",
			url:       "git@github.com:octocat/Hello-World",
			wantOwner: "octocat",
			wantRepo:  "Hello-World",
		},
		{
			name:      "enterprise host",
			url:       "https://ghe.example.com/platform/ghrest.git",
			wantOwner: "platform",
			wantRepo:  "ghrest",
		},
		{
			name:      "enterprise SSH",
			url:       "git@ghe.example.com:platform/ghrest.git",
			wantOwner: "platform",
			wantRepo:  "ghrest",
		},
		{
			name:      "dotted repo name",
			url:       "https://ghe.example.com/octocat/octocat.github.io.git",
			wantOwner: "octocat",
			wantRepo:  "octocat.github.io",
		},
		{
			name:    "invalid",
			url:     "not-a-url",
			wantErr: true,
		},
		{
			name:    "empty",
			url:     "  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRemote(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if owner != tt.wantOwner {
				t.Errorf("owner = %q, want %q", owner, tt.wantOwner)
			}
			if repo != tt.wantRepo {
				t.Errorf("repo = %q, want %q", repo, tt.wantRepo)
			}
		})
	}
}

func setupTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("command %v failed: %v\n%s", args, err, out)
		}
	}

	run("git", "init")
	run("git", "checkout", "-b", "feature/login")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("git", "add", "-A")
	run("git", "commit", "-m", "init")
	run("git", "remote", "add", "origin", "git@github.com:octocat/Hello-World.git")

	return dir
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestCurrentBranch(t *testing.T) {
	chdir(t, setupTestRepo(t))

	branch, err := CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "feature/login" {
		t.Errorf("branch = %q, want %q", branch, "feature/login")
	}
}

func TestDetectRepo(t *testing.T) {
	chdir(t, setupTestRepo(t))

	owner, repo, err := DetectRepo()
	if err != nil {
		t.Fatalf("DetectRepo: %v", err)
	}
	if owner != "octocat" || repo != "Hello-World" {
		t.Errorf("got %s/%s, want octocat/Hello-World", owner, repo)
	}
}

func TestGetRepoMeta(t *testing.T) {
	dir := setupTestRepo(t)
	chdir(t, dir)

	meta, err := GetRepoMeta()
	if err != nil {
		t.Fatalf("GetRepoMeta: %v", err)
	}
	if meta.Branch != "feature/login" {
		t.Errorf("Branch = %q", meta.Branch)
	}
	if len(meta.Head) != 40 {
		t.Errorf("Head = %q, want a full SHA", meta.Head)
	}
	if meta.Remote != "git@github.com:octocat/Hello-World.git" {
		t.Errorf("Remote = %q", meta.Remote)
	}
}

func TestRemoteURL_Missing(t *testing.T) {
	chdir(t, setupTestRepo(t))

	if _, err := RemoteURL("upstream"); err == nil {
		t.Error("expected error for missing remote")
	}
}

func TestRepoMeta_OwnerRepo(t *testing.T) {
	owner, repo, err := RepoMeta{Root: "/src/app", Remote: "https://github.com/octocat/Hello-World.git"}.OwnerRepo()
	if err != nil {
		t.Fatalf("OwnerRepo: %v", err)
	}
	if owner != "octocat" || repo != "Hello-World" {
		t.Errorf("got %s/%s, want octocat/Hello-World", owner, repo)
	}

	_, _, err = RepoMeta{Root: "/src/app"}.OwnerRepo()
	if err == nil {
		t.Fatal("expected error without a remote")
	}
	if !strings.Contains(err.Error(), "/src/app") {
		t.Errorf("error %q does not name the repository root", err)
	}
}

func TestDetectRepo_NoOrigin(t *testing.T) {
	dir := setupTestRepo(t)
	chdir(t, dir)
	if out, err := exec.Command("git", "remote", "remove", "origin").CombinedOutput(); err != nil {
		t.Fatalf("git remote remove: %v\n%s", err, out)
	}

	_, _, err := DetectRepo()
	if err == nil {
		t.Fatal("expected error without origin")
	}
	if !strings.Contains(err.Error(), "no origin remote") {
		t.Errorf("error = %q", err)
	}
}

func TestDetectRepo_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	chdir(t, dir)

	if _, _, err := DetectRepo(); err == nil {
		t.Error("expected error outside a git repository")
	}
}
