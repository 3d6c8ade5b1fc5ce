package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/ghrest/internal/gitctx"
)

var (
	flagPRBase  string
	flagPRHead  string
	flagPRTitle string
	flagPRBody  string
)

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Work with pull requests",
}

var prCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a pull request",
	Long:  "Open a pull request merging --head into --base. --head defaults to the checked-out branch.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagPRTitle == "" {
			fmt.Fprintln(os.Stderr, "Error: --title is required")
			exitCode = ExitUsageError
			return nil
		}
		head := flagPRHead
		if head == "" {
			branch, err := gitctx.CurrentBranch()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: cannot determine head branch: %v\nUse --head to specify it.\n", err)
				exitCode = ExitUsageError
				return nil
			}
			head = branch
		}

		s, code := newSession(true)
		if code != ExitSuccess {
			exitCode = code
			return nil
		}
		ctx, cancel := s.deadline()
		defer cancel()

		report := s.report("pr create")
		report.Add("Base", flagPRBase).Add("Head", head).Add("Title", flagPRTitle)
		pr, err := s.client.CreatePullRequest(ctx, s.owner, s.repo, flagPRBase, head, flagPRTitle, flagPRBody)
		report.PullRequest = pr
		s.finish(report, err)
		return nil
	},
}

func init() {
	f := prCreateCmd.Flags()
	f.StringVar(&flagPRBase, "base", "main", "Branch to merge into")
	f.StringVar(&flagPRHead, "head", "", "Branch with the changes (default: current branch)")
	f.StringVar(&flagPRTitle, "title", "", "Pull request title (required)")
	f.StringVar(&flagPRBody, "body", "", "Pull request description")
	prCmd.AddCommand(prCreateCmd)
}
