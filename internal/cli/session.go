package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/dshills/ghrest/internal/auth"
	"github.com/dshills/ghrest/internal/config"
	"github.com/dshills/ghrest/internal/github"
	"github.com/dshills/ghrest/internal/gitctx"
	"github.com/dshills/ghrest/internal/logging"
	"github.com/dshills/ghrest/internal/output"
	"github.com/dshills/ghrest/internal/redact"
)

// session is the state shared by commands that call the API.
type session struct {
	cfg    config.Config
	logger log.Logger
	client *github.Client
	owner  string
	repo   string
}

// newSession loads configuration, the token and, when needRepo is set, the
// target repository. On failure it prints the reason and returns the exit
// code to use.
func newSession(needRepo bool) (*session, int) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, ExitUsageError
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, ExitUsageError
	}

	if err := auth.LoadDotenv(cfg.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, ExitRuntimeError
	}
	cred, err := auth.FromEnvWithLogger(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nSet %s in the environment or in %s.\n", err, auth.TokenEnvVar, cfg.EnvFile)
		return nil, ExitAuthError
	}

	client, err := github.New(cred,
		github.WithBaseURL(cfg.APIURL),
		github.WithTimeout(cfg.Timeout()),
		github.WithUserAgent("ghrest/"+version),
		github.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, ExitUsageError
	}

	s := &session{cfg: cfg, logger: logger, client: client, owner: cfg.Owner, repo: cfg.Repo}
	if needRepo && (s.owner == "" || s.repo == "") {
		meta, err := gitctx.GetRepoMeta()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot detect repo: %v\nUse --owner and --repo flags to specify manually.\n", err)
			return nil, ExitUsageError
		}
		owner, repo, err := meta.OwnerRepo()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\nUse --owner and --repo flags to specify manually.\n", err)
			return nil, ExitUsageError
		}
		if s.owner == "" {
			s.owner = owner
		}
		if s.repo == "" {
			s.repo = repo
		}
		level.Debug(logger).Log("msg", "detected repository", "owner", s.owner, "repo", s.repo,
			"root", meta.Root, "branch", meta.Branch, "head", meta.Head)
	}
	return s, ExitSuccess
}

func (s *session) deadline() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.cfg.Timeout())
}

func (s *session) fullName() string {
	if s.owner == "" {
		return ""
	}
	return s.owner + "/" + s.repo
}

func (s *session) report(action string) *output.Report {
	return &output.Report{
		Tool:       "ghrest",
		Version:    version,
		Action:     action,
		Repository: s.fullName(),
		Status:     output.StatusOK,
	}
}

// finish records err on the report, sets the exit code and writes the report.
func (s *session) finish(report *output.Report, err error) {
	if err != nil {
		report.Status = output.StatusFailed
		report.Error = redact.Secrets(err.Error())
		exitCode = exitCodeFor(err)
		level.Debug(s.logger).Log("msg", "command failed", "action", report.Action, "err", report.Error)
	}
	if err := output.WriteReport(report, s.cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
	}
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrEmptyToken), errors.Is(err, auth.ErrEnvMissing):
		return ExitAuthError
	case github.IsUnauthorized(err), github.IsForbidden(err):
		return ExitAuthError
	default:
		return ExitRuntimeError
	}
}
