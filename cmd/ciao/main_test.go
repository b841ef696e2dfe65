package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ScriptedDefault(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "[20/20] Calling step().")
	assert.Empty(t, stderr.String())
}

func TestRun_InputFailureReportedOnStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"interactive"}, strings.NewReader("p\n"), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, "ciao: aborted: input acquisition failed at iteration 2: EOF\n", stderr.String())
	assert.NotContains(t, stdout.String(), "ciao:")
}

func TestRun_BadFlagIsCommandError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"run", "--steps", "0"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "ciao: --steps must be positive")
}
