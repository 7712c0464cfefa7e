package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// LoggerOpts configures NewLogger
type LoggerOpts struct {
	Env       string
	Debug     bool
	SentryDSN string
	Out       io.Writer
}

// NewLogger builds a zerolog backed slog.Logger. Errors are also sent to
// Sentry when a DSN is configured; the returned func flushes them.
func NewLogger(opts LoggerOpts) (*slog.Logger, func()) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var zl zerolog.Logger
	if opts.Env == "" || opts.Env == "development" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(out).With().Timestamp().Logger()
	}

	handler := slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler()
	flush := func() {}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			slog.New(handler).Warn("Sentry disabled", "error", err)
		} else {
			handler = slogmulti.Fanout(
				handler,
				slogsentry.Option{Level: slog.LevelError}.NewSentryHandler(),
			)
			flush = func() { sentry.Flush(2 * time.Second) }
		}
	}

	return slog.New(handler), flush
}

// logUpstreamError logs an integration failure with the status, reason and
// response detail when the upstream answered.
func logUpstreamError(logger *slog.Logger, msg string, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		logger.Error(msg,
			"status", httpErr.StatusCode,
			"reason", httpErr.Status,
			"message", httpErr.Message,
			"body", httpErr.Body,
		)
		return
	}
	logger.Error(msg, "error", err)
}
