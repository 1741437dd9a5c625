/*
Package main is the relprune CLI: it prunes GitHub releases of a repository
by semantic version, keeping the newest releases of the latest version bucket
and optionally a few releases of every older bucket.

It runs as a GitHub Action (inputs arrive as INPUT_* variables) or by hand:

	relprune -r octo/app --keep-count 2 --keep-old-minor-releases --dry-run
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/woozymasta/relprune/internal/metrics"
	"github.com/woozymasta/relprune/internal/prune"
	"github.com/woozymasta/relprune/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one pruning run and returns the process exit code:
// 0 on success (deletion failures included), 1 on a fatal error and
// 130 when interrupted.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opt, help, err := parseOptions(args)
	if help {
		return 0
	}
	if err != nil {
		// go-flags already printed parse errors
		return 1
	}

	level := log.InfoLevel
	if opt.OptionsRun.Verbose {
		level = log.DebugLevel
	}
	logger := newLogger(stderr, level).With("run_id", uuid.NewString())

	if err := execute(ctx, opt, logger, stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted")
			return 130
		}

		logger.Error("run failed", "err", err)
		if os.Getenv("GITHUB_ACTIONS") == "true" {
			fmt.Fprintf(stdout, "::error::%s\n", err)
		}
		return 1
	}

	return 0
}

func execute(ctx context.Context, opt Options, logger *log.Logger, stdout io.Writer) error {
	policy, err := opt.policy()
	if err != nil {
		return err
	}

	remote, err := opt.remote()
	if err != nil {
		return err
	}
	logger = logger.With("repo", remote.String())

	m := metrics.NewRunMetrics()
	runner := &prune.Runner{
		Remote:      remote,
		Logger:      logger,
		Metrics:     m,
		Concurrency: opt.concurrency(),
	}

	res, runErr := runner.Run(ctx, policy)

	if err := m.WriteTextfile(opt.OptionsRun.MetricsFile); err != nil {
		logger.Warn("failed to write metrics", "path", opt.OptionsRun.MetricsFile, "err", err)
	}

	if runErr != nil {
		return runErr
	}

	if err := report.Write(stdout, res, opt.OptionsRun.Output); err != nil {
		return err
	}

	if err := report.WriteGitHubOutput(os.Getenv("GITHUB_OUTPUT"), res); err != nil {
		logger.Warn("failed to write step outputs", "err", err)
	}

	return nil
}

// newLogger creates a logger with timestamps formatted as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
