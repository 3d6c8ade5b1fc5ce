// Package auth holds the GitHub access token and renders the headers every
// API call carries.
//
// A [Credential] is built once at startup, either explicitly with [New] or
// from the GITHUB_TOKEN environment variable with [FromEnv]. [LoadDotenv]
// can populate the environment from a local dotfile first. The token is
// never printed: String, GoString and MarshalText all return a masked form.
package auth
