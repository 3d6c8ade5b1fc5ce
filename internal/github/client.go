package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	gh "github.com/google/go-github/v67/github"
	jsoniter "github.com/json-iterator/go"

	"github.com/dshills/ghrest/internal/auth"
	"github.com/dshills/ghrest/internal/redact"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"

	// DefaultUserAgent identifies the client when no other agent is set.
	DefaultUserAgent = "ghrest"

	defaultTimeout = 60 * time.Second
)

// Response is a raw API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Success reports a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client provides access to the GitHub REST API. It holds no per-call state
// and is safe for concurrent use.
type Client struct {
	cred      auth.Credential
	baseURL   string
	userAgent string
	timeout   time.Duration
	httpCli   *http.Client
	logger    log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a GitHub
// Enterprise host or a test server. Trailing slashes are removed.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the HTTP client. WithTimeout is ignored when this
// option is used.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpCli = h }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout bounds each request made by the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the request logger. The default discards everything.
func WithLogger(l log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client authenticated with cred.
func New(cred auth.Credential, opts ...Option) (*Client, error) {
	if cred.Empty() {
		return nil, fmt.Errorf("creating client: %w", auth.ErrEmptyToken)
	}
	c := &Client{
		cred:      cred,
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = strings.TrimRight(c.baseURL, "/")
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("creating client: invalid base URL %q", c.baseURL)
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.httpCli == nil {
		c.httpCli = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = log.NewNopLogger()
	}
	return c, nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues a GET for path, which must begin with "/". Any HTTP status is
// returned as a Response; err is set only when no response was obtained.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Patch issues a PATCH with body encoded as JSON.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Response, error) {
	op := strings.ToLower(method)
	if !strings.HasPrefix(path, "/") {
		return nil, &Error{Kind: KindTransport, Op: op, Message: fmt.Sprintf("path %q must begin with /", path)}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, transportError(op, fmt.Errorf("marshaling request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, transportError(op, fmt.Errorf("creating request: %w", err))
	}
	for k, v := range c.cred.Headers() {
		req.Header[k] = v
	}
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	level.Info(c.logger).Log("msg", "making API request", "method", method, "path", path)
	level.Debug(c.logger).Log("msg", "request headers prepared",
		"authorization", "token "+redact.Token(c.cred.Token()),
		"accept", req.Header.Get("Accept"),
		"user_agent", c.userAgent,
	)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, transportError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}
	if out.Success() {
		level.Info(c.logger).Log("msg", "request successful", "status", resp.StatusCode, "endpoint", path)
	} else {
		level.Warn(c.logger).Log("msg", "request failed", "status", resp.StatusCode, "endpoint", path)
	}
	return out, nil
}

// call issues one request and applies the success check, tagging errors
// with op.
func (c *Client) call(ctx context.Context, op, method, path string, body any) (*Response, error) {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Op = op
		}
		return nil, err
	}
	if !resp.Success() {
		apiErr := apiError(op, resp)
		level.Debug(c.logger).Log("msg", "API error", "op", op, "status", apiErr.Status, "message", redact.Secrets(apiErr.Message))
		return nil, apiErr
	}
	return resp, nil
}

// apiError builds a KindAPI error from a non-2xx response, taking the
// message from the body when it decodes.
func apiError(op string, resp *Response) *Error {
	e := &Error{Kind: KindAPI, Op: op, Status: resp.StatusCode, Message: defaultMessage}
	var body gh.ErrorResponse
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		if body.Message != "" {
			e.Message = body.Message
		}
		e.DocumentationURL = body.DocumentationURL
	}
	return e
}

// extractString looks up a string field by key path, e.g. "object", "sha".
// The whole body must be valid JSON.
func extractString(op string, body []byte, path ...string) (string, error) {
	if !json.Valid(body) {
		return "", parseError(op, "invalid JSON in response body")
	}
	keys := make([]interface{}, len(path))
	for i, p := range path {
		keys[i] = p
	}
	v := jsoniter.Get(body, keys...)
	if v.ValueType() != jsoniter.StringValue {
		return "", parseError(op, fmt.Sprintf("failed to extract %s from response", strings.Join(path, ".")))
	}
	return v.ToString(), nil
}

// repoPath returns /repos/{owner}/{repo} followed by suffix.
func repoPath(owner, repo, suffix string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + suffix
}

// escapeRef escapes each segment of a ref name, keeping the slashes that
// separate them ("feature/x" stays two segments).
func escapeRef(ref string) string {
	segs := strings.Split(ref, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
