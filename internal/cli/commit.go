package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/dshills/ghrest/internal/github"
	"github.com/dshills/ghrest/internal/gitctx"
	"github.com/dshills/ghrest/internal/output"
	"github.com/dshills/ghrest/internal/redact"
)

var (
	flagCommitBranch  string
	flagCommitMessage string
	flagCommitContent string
	flagCommitFile    string
	flagAllowSecrets  bool
)

var commitCmd = &cobra.Command{
	Use:   "commit <path>",
	Short: "Commit one file to a branch",
	Long: "Write content to <path> on a branch as a single new commit, without a local checkout.\n" +
		"Content comes from --content or --file. Content that looks like a secret, and paths matching\n" +
		"guard.blockPaths, are refused unless --allow-secrets is given.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := commitContent()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}
		if flagCommitMessage == "" {
			fmt.Fprintln(os.Stderr, "Error: --message is required")
			exitCode = ExitUsageError
			return nil
		}
		branch := flagCommitBranch
		if branch == "" {
			if branch, err = gitctx.CurrentBranch(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: cannot determine branch: %v\nUse --branch to specify it.\n", err)
				exitCode = ExitUsageError
				return nil
			}
		}

		s, code := newSession(true)
		if code != ExitSuccess {
			exitCode = code
			return nil
		}

		report := s.report("commit")
		report.Add("Branch", branch).Add("Path", path)

		if reason := guardReason(s, path, content); reason != "" {
			level.Warn(s.logger).Log("msg", "commit refused", "path", path, "reason", reason)
			report.Status = output.StatusRefused
			report.Error = reason
			report.Notes = append(report.Notes, "pass --allow-secrets to upload anyway")
			s.finish(report, nil)
			if exitCode == ExitSuccess {
				exitCode = ExitGuardRefused
			}
			return nil
		}

		ctx, cancel := s.deadline()
		defer cancel()

		res, err := s.client.CommitFile(ctx, github.CommitRequest{
			Owner:   s.owner,
			Repo:    s.repo,
			Branch:  branch,
			Path:    path,
			Content: content,
			Message: flagCommitMessage,
		})
		report.Commit = res
		if orphans := res.Orphans(); err != nil && len(orphans) > 0 {
			report.Notes = append(report.Notes,
				"unreferenced objects left on the server: "+strings.Join(orphans, ", "))
		}
		s.finish(report, err)
		return nil
	},
}

func commitContent() (string, error) {
	switch {
	case flagCommitContent != "" && flagCommitFile != "":
		return "", fmt.Errorf("--content and --file are mutually exclusive")
	case flagCommitFile != "":
		data, err := os.ReadFile(flagCommitFile)
		if err != nil {
			return "", fmt.Errorf("reading --file: %w", err)
		}
		return string(data), nil
	default:
		return flagCommitContent, nil
	}
}

// guardReason returns why the upload is refused, or "" when it may proceed.
func guardReason(s *session, path, content string) string {
	if flagAllowSecrets {
		level.Warn(s.logger).Log("msg", "secret guard disabled by --allow-secrets")
		return ""
	}
	if redact.ShouldRedactPath(path, s.cfg.Guard.BlockPaths) {
		return fmt.Sprintf("path %s matches guard.blockPaths", path)
	}
	if flagCommitFile != "" && redact.ShouldRedactPath(flagCommitFile, s.cfg.Guard.BlockPaths) {
		return fmt.Sprintf("source file %s matches guard.blockPaths", flagCommitFile)
	}
	if s.cfg.Guard.SecretsBlocked() && redact.ContainsSecret(content) {
		return "content looks like it contains a secret"
	}
	return ""
}

func init() {
	f := commitCmd.Flags()
	f.StringVar(&flagCommitBranch, "branch", "", "Branch to commit to (default: current branch)")
	f.StringVarP(&flagCommitMessage, "message", "m", "", "Commit message (required)")
	f.StringVar(&flagCommitContent, "content", "", "File content")
	f.StringVar(&flagCommitFile, "file", "", "Read file content from a local path")
	f.BoolVar(&flagAllowSecrets, "allow-secrets", false, "Upload even if the secret guard objects")
}
