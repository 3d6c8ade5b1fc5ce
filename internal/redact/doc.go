// Package redact keeps credentials out of logs and uploads.
//
// [Token] masks an access token down to a short prefix for diagnostics.
// [Secrets] and [ContainsSecret] use regex heuristics covering common secret
// shapes: API keys, JWTs, private keys, AWS access key IDs and secret access
// keys, bearer tokens, and provider-specific tokens (GitHub, Slack, OpenAI).
//
// Path-based checks are also supported: [ShouldRedactPath] reports whether a
// repository path matches one of the configured glob patterns, which the
// commit command uses to refuse uploading files such as .env.
package redact
