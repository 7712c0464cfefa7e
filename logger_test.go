package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, flush := NewLogger(LoggerOpts{Env: "production", Out: &buf})
	defer flush()

	logger.Debug("hidden detail")
	logger.Info("Wrote content", "path", "docs/content/content.json")

	out := buf.String()
	assert.Contains(t, out, "Wrote content")
	assert.Contains(t, out, "docs/content/content.json")
	assert.NotContains(t, out, "hidden detail")
}

func TestNewLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, flush := NewLogger(LoggerOpts{Env: "development", Debug: true, Out: &buf})
	defer flush()

	logger.Debug("visible detail")

	assert.Contains(t, buf.String(), "visible detail")
}

func TestLogUpstreamError(t *testing.T) {
	logger, buf := testLogger()

	logUpstreamError(logger, "YouTube API error", &HTTPError{
		StatusCode: 403, Status: "Forbidden", Message: "quota", Body: `{"error":{"message":"quota"}}`,
	})

	out := buf.String()
	assert.Contains(t, out, "status=403")
	assert.Contains(t, out, "reason=Forbidden")
	assert.Contains(t, out, "message=quota")
}
