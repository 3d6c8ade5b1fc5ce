// Package cli wires together the Cobra command tree for the ghrest binary.
//
// It defines the root command and its subcommands (repos, branch, commit,
// pr, config, version), binds flags, reads configuration and the token,
// calls the API client, and returns deterministic exit codes: 0 success,
// 2 usage error, 3 authentication failure, 4 runtime failure and 5 when the
// secret guard refuses a commit.
package cli
