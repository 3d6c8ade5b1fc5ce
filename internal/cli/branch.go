package cli

import (
	"github.com/spf13/cobra"
)

var flagBranchBase string

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Inspect and create branches",
}

var branchSHACmd = &cobra.Command{
	Use:   "sha <branch>",
	Short: "Print the commit SHA a branch points at",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, code := newSession(true)
		if code != ExitSuccess {
			exitCode = code
			return nil
		}
		ctx, cancel := s.deadline()
		defer cancel()

		report := s.report("branch sha")
		report.Add("Branch", args[0])
		sha, err := s.client.GetBaseBranchSHA(ctx, s.owner, s.repo, args[0])
		if err == nil {
			report.Add("SHA", sha)
		}
		s.finish(report, err)
		return nil
	},
}

var branchCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a branch from the head of another branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, code := newSession(true)
		if code != ExitSuccess {
			exitCode = code
			return nil
		}
		ctx, cancel := s.deadline()
		defer cancel()

		name := args[0]
		report := s.report("branch create")
		report.Add("Branch", name).Add("Base", flagBranchBase)

		sha, err := s.client.GetBaseBranchSHA(ctx, s.owner, s.repo, flagBranchBase)
		if err == nil {
			report.Add("SHA", sha)
			err = s.client.CreateBranch(ctx, s.owner, s.repo, name, sha)
		}
		s.finish(report, err)
		return nil
	},
}

func init() {
	branchCreateCmd.Flags().StringVar(&flagBranchBase, "base", "main", "Branch to start from")
	branchCmd.AddCommand(branchSHACmd)
	branchCmd.AddCommand(branchCreateCmd)
}
