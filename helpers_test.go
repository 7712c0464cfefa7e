package main

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testConfig returns embedded settings with defaults for every env value
// and an output path inside a temp dir. No integration is configured.
func testConfig(t *testing.T) *Config {
	t.Helper()

	settings, err := loadSettings("")
	require.NoError(t, err)
	settings.OutputPath = filepath.Join(t.TempDir(), "docs", "content", "content.json")
	settings.HTTP.Timeout = 2 * time.Second

	env := &RunConfig{
		Brand:    defaultBrand,
		Audience: defaultAudience,
		Offer:    defaultOffer,
	}
	env.Headline.Provider = ProviderOpenAI

	return &Config{Env: env, Settings: settings}
}

// logBuffer is a goroutine safe sink for test loggers
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testLogger() (*slog.Logger, *logBuffer) {
	buf := &logBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}
