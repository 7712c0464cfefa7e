package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const (
	exitFatal    = 1
	exitDegraded = 2
)

var (
	settingsPath string
	outputPath   string
	timeout      time.Duration
	debugMode    bool
	strictMode   bool
)

// exitError carries the process exit code out of a cobra command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "landing-content",
	Short: "Fetch the latest video and post and write the landing page content file",
	Long: `Queries YouTube for the newest upload of a channel and Instagram for the newest
post, writes a headline (AI generated when a key is configured) and stores the
result as JSON for the static site. Missing credentials disable the matching
integration; only a failure to write the file fails the run.

Run "landing-content env" to list the environment variables.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(settingsPath)
		if err != nil {
			return &exitError{code: exitFatal, err: err}
		}
		if outputPath != "" {
			cfg.Settings.OutputPath = outputPath
		}
		if timeout > 0 {
			cfg.Settings.HTTP.Timeout = timeout
		}

		logger, flush := NewLogger(LoggerOpts{
			Env:       cfg.Env.App.Env,
			Debug:     debugMode,
			SentryDSN: cfg.Env.App.SentryDSN,
		})
		defer flush()

		processor := NewContentProcessor(cfg, logger)
		report, err := processor.Run(cmd.Context())
		if err != nil {
			logger.Error("Fatal error", "error", err)
			return &exitError{code: exitFatal, err: err}
		}

		if strictMode && report.Outcome() == OutcomeDegraded {
			return &exitError{code: exitDegraded, err: fmt.Errorf("degraded run: %v", report.Degradations())}
		}
		return nil
	},
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Describe the environment variables",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), EnvHelp())
	},
}

func init() {
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to a settings YAML file (default: embedded settings)")
	rootCmd.Flags().StringVar(&outputPath, "output", "", "Output file, overrides settings and CONTENT_PATH")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Timeout per outbound request (default from settings)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&strictMode, "strict", false, "Exit with status 2 when any integration was disabled or failed")

	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(exitFatal)
	}
}
