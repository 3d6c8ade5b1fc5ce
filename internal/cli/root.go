package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
	ExitGuardRefused = 5
)

// Global flags shared by every command.
var (
	flagOwner    string
	flagRepo     string
	flagAPIURL   string
	flagFormat   string
	flagOut      string
	flagLogLevel string
	flagEnvFile  string
	flagTimeout  int
)

var rootCmd = &cobra.Command{
	Use:   "ghrest",
	Short: "Work with a GitHub repository over the REST API",
	Long: "ghrest lists repositories, creates branches, commits single files and opens pull requests " +
		"through the GitHub REST API, authenticating with GITHUB_TOKEN.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagOwner, "owner", "", "Repository owner (default: from git remote origin)")
	pf.StringVar(&flagRepo, "repo", "", "Repository name (default: from git remote origin)")
	pf.StringVar(&flagAPIURL, "api-url", "", "GitHub API base URL")
	pf.StringVar(&flagFormat, "format", "", "Output format: text, json")
	pf.StringVar(&flagOut, "out", "", "Write output to a file instead of stdout")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error, none")
	pf.StringVar(&flagEnvFile, "env-file", "", "Dotenv file to load GITHUB_TOKEN from")
	pf.IntVar(&flagTimeout, "timeout", 0, "Request timeout in seconds")

	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(prCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// buildOverrides collects config overrides from flags that were set.
func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagAPIURL != "" {
		m["apiURL"] = flagAPIURL
	}
	if flagOwner != "" {
		m["owner"] = flagOwner
	}
	if flagRepo != "" {
		m["repo"] = flagRepo
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	if flagEnvFile != "" {
		m["envFile"] = flagEnvFile
	}
	if flagTimeout > 0 {
		m["timeoutSeconds"] = strconv.Itoa(flagTimeout)
	}
	return m
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print ghrest version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "ghrest version %s\n", version)
	},
}
