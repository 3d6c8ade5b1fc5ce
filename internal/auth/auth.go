package auth

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"

	"github.com/dshills/ghrest/internal/redact"
)

// TokenEnvVar is the environment variable FromEnv reads.
const TokenEnvVar = "GITHUB_TOKEN"

// MediaType is the Accept value sent with every request.
const MediaType = "application/vnd.github.v3+json"

var (
	// ErrEmptyToken is returned when a credential is built from an empty string.
	ErrEmptyToken = errors.New("token must not be empty")

	// ErrEnvMissing is returned when the token environment variable is unset or empty.
	ErrEnvMissing = errors.New("environment variable missing")
)

// Credential is an immutable GitHub access token.
type Credential struct {
	token string
}

// New stores token verbatim.
func New(token string) (Credential, error) {
	if token == "" {
		return Credential{}, ErrEmptyToken
	}
	return Credential{token: token}, nil
}

// FromEnv builds a Credential from the GITHUB_TOKEN environment variable.
func FromEnv() (Credential, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Credential from GITHUB_TOKEN using the given lookup
// function, so callers and tests need not touch the process environment.
func FromLookup(lookup func(string) (string, bool)) (Credential, error) {
	return fromLookup(lookup, log.NewNopLogger())
}

// FromEnvWithLogger is FromEnv with diagnostics written to logger.
func FromEnvWithLogger(logger log.Logger) (Credential, error) {
	return fromLookup(os.LookupEnv, logger)
}

func fromLookup(lookup func(string) (string, bool), logger log.Logger) (Credential, error) {
	level.Info(logger).Log("msg", "loading GitHub token from environment", "var", TokenEnvVar)
	token, ok := lookup(TokenEnvVar)
	if !ok || token == "" {
		return Credential{}, fmt.Errorf("%w: %s", ErrEnvMissing, TokenEnvVar)
	}
	level.Debug(logger).Log("msg", "token loaded", "token_prefix", redact.Token(token))
	return Credential{token: token}, nil
}

// LoadDotenv loads variables from the given dotfiles into the process
// environment. Variables that are already set win, and missing files are
// skipped. With no paths it reads ".env" in the working directory.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("checking env file: %w", err)
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading env file %s: %w", p, err)
		}
	}
	return nil
}

// Token returns the raw token. Use it only to build request headers.
func (c Credential) Token() string { return c.token }

// Empty reports whether c holds no token (the zero value).
func (c Credential) Empty() bool { return c.token == "" }

// Headers renders the authentication headers for c.
func (c Credential) Headers() http.Header { return RenderHeaders(c.token) }

// String renders the masked token, never the token itself.
func (c Credential) String() string { return redact.Token(c.token) }

// GoString renders the masked form for %#v.
func (c Credential) GoString() string { return "auth.Credential{" + redact.Token(c.token) + "}" }

// MarshalText keeps the token out of any serialized form.
func (c Credential) MarshalText() ([]byte, error) {
	return []byte(redact.Token(c.token)), nil
}

// RenderHeaders returns the Authorization and Accept headers for token.
func RenderHeaders(token string) http.Header {
	h := make(http.Header, 2)
	h.Set("Authorization", "token "+token)
	h.Set("Accept", MediaType)
	return h
}
