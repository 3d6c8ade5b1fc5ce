package output

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ghrest/internal/github"
)

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"text", "json", ""} {
		w, err := GetWriter(format)
		require.NoError(t, err, format)
		assert.NotNil(t, w)
	}
	_, err := GetWriter("sarif")
	assert.Error(t, err)
}

func TestTextWriter_Fields(t *testing.T) {
	report := &Report{
		Tool:       "ghrest",
		Action:     "branch sha",
		Repository: "octocat/Hello-World",
		Status:     StatusOK,
	}
	report.Add("Branch", "main").Add("SHA", "6dcb09b5b57875f334f61aebed695e2e4193db5e")

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{NoColor: true}).Write(&buf, report))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[ok] branch sha (octocat/Hello-World)\n"), out)
	assert.Contains(t, out, "  Branch:  main\n")
	assert.Contains(t, out, "  SHA:     6dcb09b5b57875f334f61aebed695e2e4193db5e\n")
	assert.Len(t, report.Fields, 2)
}

func TestTextWriter_Repos(t *testing.T) {
	report := &Report{
		Action: "repos",
		Status: StatusOK,
		Repos: []github.Repo{
			{FullName: "octocat/Hello-World", DefaultBranch: "main", Description: "My first repo"},
			{FullName: "octocat/secret-plans", DefaultBranch: "trunk", Private: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{NoColor: true}).Write(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "REPOSITORY")
	assert.Contains(t, out, "octocat/Hello-World")
	assert.Contains(t, out, "My first repo")
	assert.Contains(t, out, "private")
	assert.Contains(t, out, "2 repositories")
}

func TestTextWriter_NoRepos(t *testing.T) {
	report := &Report{Action: "repos", Status: StatusOK, Repos: []github.Repo{}}

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{NoColor: true}).Write(&buf, report))
	assert.Contains(t, buf.String(), "No repositories found.")
}

func TestTextWriter_PartialCommit(t *testing.T) {
	report := &Report{
		Action:     "commit",
		Repository: "o/r",
		Status:     StatusFailed,
		Commit:     &github.CommitResult{BaseCommit: "S0", BaseTree: "T0", Blob: "B1"},
		Error:      "commit step 4/6: create_tree: request failed with status 500: Server Error",
		Notes:      []string{"unreferenced objects left on the server: B1"},
	}

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{NoColor: true}).Write(&buf, report))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[failed] commit (o/r)"), out)
	assert.Contains(t, out, "Blob:")
	assert.NotContains(t, out, "Tree: ")
	assert.Contains(t, out, "Branch updated:  false")
	assert.Contains(t, out, "Error: commit step 4/6")
	assert.Contains(t, out, "Note: unreferenced objects")
}

func TestTextWriter_PullRequest(t *testing.T) {
	report := &Report{
		Action: "pr create",
		Status: StatusOK,
		PullRequest: &github.PullRequest{
			Number:  1347,
			State:   "open",
			HTMLURL: "https://github.com/octocat/Hello-World/pull/1347",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{NoColor: true}).Write(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "#1347")
	assert.Contains(t, out, "https://github.com/octocat/Hello-World/pull/1347")
}

func TestTextWriter_Refused(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{NoColor: true}).Write(&buf, &Report{Action: "commit", Status: StatusRefused}))
	assert.True(t, strings.HasPrefix(buf.String(), "[refused] commit"))
}

func TestJSONWriter(t *testing.T) {
	report := &Report{
		Tool:       "ghrest",
		Version:    "1.0",
		Action:     "commit",
		Repository: "o/r",
		Status:     StatusOK,
		Commit: &github.CommitResult{
			BaseCommit: "S0", BaseTree: "T0", Blob: "B1", Tree: "T1", Commit: "C1", Updated: true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(&buf, report))

	assert.JSONEq(t, `{
		"tool": "ghrest",
		"version": "1.0",
		"action": "commit",
		"repository": "o/r",
		"status": "ok",
		"commit": {
			"baseCommit": "S0",
			"baseTree": "T0",
			"blob": "B1",
			"tree": "T1",
			"commit": "C1",
			"updated": true
		}
	}`, buf.String())
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestWriteReport_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	report := &Report{Action: "version", Status: StatusOK}
	report.Add("Version", "dev")

	require.NoError(t, WriteReport(report, "text", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ok] version")
	assert.NotContains(t, string(data), "\x1b[")
}

type closeRecorder struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.closeErr
}

func TestWriteAndClose_CloseError(t *testing.T) {
	errDisk := errors.New("disk full")
	wc := &closeRecorder{closeErr: errDisk}

	err := writeAndClose(&JSONWriter{}, wc, &Report{Tool: "ghrest", Action: "repos", Status: StatusOK})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisk)
	assert.True(t, wc.closed)
	assert.Contains(t, wc.String(), `"action"`)
}

func TestWriteAndClose_WriteErrorWins(t *testing.T) {
	errWrite := errors.New("write failed")
	wc := &closeRecorder{closeErr: errors.New("close failed")}

	err := writeAndClose(failingWriter{err: errWrite}, wc, &Report{})
	assert.ErrorIs(t, err, errWrite)
	assert.True(t, wc.closed)
}

type failingWriter struct{ err error }

func (f failingWriter) Write(io.Writer, *Report) error { return f.err }

func TestWriteReport_CreateError(t *testing.T) {
	err := WriteReport(&Report{}, "json", filepath.Join(t.TempDir(), "missing", "out.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output file")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
