package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, strict bool) (string, error) {
	t.Helper()
	clearEnv(t)
	output := filepath.Join(t.TempDir(), "content.json")

	settingsPath, outputPath, strictMode = "", output, strict
	t.Cleanup(func() { outputPath, strictMode = "", false })

	rootCmd.SetContext(context.Background())
	return output, rootCmd.RunE(rootCmd, nil)
}

func TestRootCommandDegradedRun(t *testing.T) {
	output, err := runRoot(t, false)

	require.NoError(t, err)
	_, statErr := os.Stat(output)
	assert.NoError(t, statErr)
}

func TestRootCommandStrictDegradedRun(t *testing.T) {
	output, err := runRoot(t, true)

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitDegraded, exitErr.code)

	_, statErr := os.Stat(output)
	assert.NoError(t, statErr, "a degraded run still writes the document")
}

func TestRootCommandBadSettings(t *testing.T) {
	clearEnv(t)
	settingsPath = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { settingsPath = "" })

	err := rootCmd.RunE(rootCmd, nil)

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitFatal, exitErr.code)
}
