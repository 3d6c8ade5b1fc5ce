// Package config loads and merges ghrest configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (GITHUB_API_URL, GHREST_OWNER, GHREST_REPO,
//     GHREST_FORMAT, GHREST_LOG_LEVEL, GHREST_TIMEOUT, GHREST_ENV_FILE)
//  3. Config file ($XDG_CONFIG_HOME/ghrest/config.yaml)
//  4. Built-in defaults
//
// The GitHub token is never part of the configuration; it is read from
// GITHUB_TOKEN by the auth package.
//
// Use [Load] to obtain a merged [Config], [Save] to write one back, and
// [SetField] to update a single key by name.
package config
