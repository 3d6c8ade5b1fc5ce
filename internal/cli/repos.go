package cli

import (
	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List repositories of the authenticated user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, code := newSession(false)
		if code != ExitSuccess {
			exitCode = code
			return nil
		}
		ctx, cancel := s.deadline()
		defer cancel()

		report := s.report("repos")
		repos, err := s.client.UserRepos(ctx)
		report.Repos = repos
		s.finish(report, err)
		return nil
	},
}
