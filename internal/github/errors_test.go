package github

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "api",
			err:  &Error{Kind: KindAPI, Op: "create_branch", Status: 422, Message: "Reference already exists"},
			want: "create_branch: request failed with status 422: Reference already exists",
		},
		{
			name: "parse",
			err:  parseError("create_blob", "failed to extract sha from response"),
			want: "create_blob: failed to parse response: failed to extract sha from response",
		},
		{
			name: "transport",
			err:  transportError("get", errors.New("connection refused")),
			want: "get: HTTP request failed: connection refused",
		},
		{
			name: "transport without cause",
			err:  &Error{Kind: KindTransport, Op: "post", Message: "bad path"},
			want: "post: HTTP request failed: bad path",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Helpers(t *testing.T) {
	wrapped := fmt.Errorf("commit step 2/6: %w", &Error{Kind: KindAPI, Op: "x", Status: http.StatusNotFound})

	code, ok := StatusCode(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, code)
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsForbidden(wrapped))
	assert.True(t, IsKind(wrapped, KindAPI))
	assert.False(t, IsKind(wrapped, KindParse))

	assert.True(t, IsUnauthorized(&Error{Kind: KindAPI, Status: http.StatusUnauthorized}))

	_, ok = StatusCode(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsKind(nil, KindAPI))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := transportError("get", cause)
	assert.ErrorIs(t, err, cause)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "api", KindAPI.String())
	assert.Equal(t, "parse", KindParse.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
