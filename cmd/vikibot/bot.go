package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/config"
	"github.com/celianv/vikibot/internal/journal"
	"github.com/celianv/vikibot/internal/log"
	"github.com/celianv/vikibot/internal/model"
	"github.com/celianv/vikibot/internal/task"
	"github.com/celianv/vikibot/internal/wiki"
)

// timeRound is the precision of durations printed in run summaries.
const timeRound = time.Second

// bot bundles the pieces every command needs: the effective
// configuration, a redacting logger, the API client and the local
// journal with its stop marker.
type bot struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *wiki.Client
	journal *journal.Journal
	stop    *journal.StopMarker
}

// newBot builds the shared command environment from flags and the
// configuration file. The caller owns the returned bot and must close
// it.
func newBot(cmd *cobra.Command) (*bot, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getBoolFlag(cmd, "verbose")
	cfg.DryRun = getBoolFlag(cmd, "dry-run")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	client, err := wiki.New(cfg.APIURL, cfg.UserAgent,
		wiki.WithLogger(logger),
		wiki.WithDryRun(cfg.DryRun),
		wiki.WithEditInterval(cfg.EditInterval),
	)
	if err != nil {
		return nil, err
	}

	dataDir := config.XDGDataDir()
	j, err := journal.Open(dataDir, journal.DefaultOptions())
	if err != nil {
		return nil, err
	}

	return &bot{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		journal: j,
		stop:    journal.NewStopMarker(dataDir),
	}, nil
}

// close releases the bot's resources.
func (b *bot) close() {
	if err := b.journal.Close(); err != nil {
		b.logger.Warn("failed to close journal", "error", err)
	}
}

// login authenticates the API client. Dry runs skip the login so a
// preview works without credentials.
func (b *bot) login() error {
	if b.cfg.DryRun {
		return nil
	}
	if err := b.cfg.RequireLogin(); err != nil {
		return err
	}
	return b.client.Login(b.cfg.Username, b.cfg.Password)
}

// checkStop refuses to start an editing command while the emergency
// stop marker is in force.
func (b *bot) checkStop() error {
	if b.stop.StopRequested() {
		return fmt.Errorf("%w: remove %s to resume", task.ErrStopRequested, b.stop.Path())
	}
	return nil
}

// newRunner builds a task runner with the bot's shared wiring.
func (b *bot) newRunner(opts ...task.RunnerOption) *task.Runner {
	opts = append([]task.RunnerOption{
		task.WithLogger(b.logger),
		task.WithStopCheck(b.stop.StopRequested),
	}, opts...)
	return task.NewRunner(b.client, opts...)
}

// finishRun journals a finished report and prints its summary.
func (b *bot) finishRun(ctx context.Context, cmd *cobra.Command, report *model.RunReport) error {
	report.DryRun = b.cfg.DryRun
	if err := b.journal.SaveRun(ctx, report); err != nil {
		b.logger.Warn("failed to journal run", "command", report.Command, "error", err)
	}

	mode := ""
	if report.DryRun {
		mode = " (dry run)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s: %d edited, %d skipped, %d failed in %s\n",
		report.Command, mode,
		report.Edited(), report.Skipped(), report.Failed(),
		report.Duration().Round(timeRound))

	if report.Failed() > 0 {
		return fmt.Errorf("%d page(s) failed", report.Failed())
	}
	return nil
}

// getBoolFlag retrieves a boolean flag from the command or its parent.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
