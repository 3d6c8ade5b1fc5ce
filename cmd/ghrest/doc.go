// Ghrest is a small CLI over the GitHub REST API.
//
// It authenticates with a personal access token from GITHUB_TOKEN (or a
// .env file) and covers the branch and single-file commit workflow without
// a local checkout, emitting text or JSON reports with deterministic exit
// codes.
//
// Usage:
//
//	ghrest repos                                   # list your repositories
//	ghrest branch sha main                         # print the head SHA of a branch
//	ghrest branch create new-feature --base main   # branch off main
//	ghrest commit docs/notes.md -m "Add notes" --file notes.md --branch new-feature
//	ghrest pr create --base main --head new-feature --title "Add notes"
//
// Owner and repository default to the origin remote of the current
// checkout; pass --owner and --repo to override.
package main
