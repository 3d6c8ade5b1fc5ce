package logging

import (
	"bytes"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	level.Info(logger).Log("msg", "hidden")
	level.Warn(logger).Log("msg", "shown", "status", 404)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "level=warn")
}

func TestNew_DefaultIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "")
	require.NoError(t, err)

	level.Debug(logger).Log("msg", "debug line")
	level.Info(logger).Log("msg", "info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestNew_None(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "none")
	require.NoError(t, err)

	level.Error(logger).Log("msg", "boom")
	assert.Empty(t, buf.String())
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}
