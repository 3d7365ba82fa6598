package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/celianv/vikibot/internal/model"
	"github.com/celianv/vikibot/internal/wiki"
	"github.com/celianv/vikibot/internal/wikitext"
)

// ErrSkip is returned by a task to leave a page untouched. Wrap it with
// a reason: fmt.Errorf("%w: already tagged", task.ErrSkip).
var ErrSkip = errors.New("task: page skipped")

// ErrStopRequested aborts a run when the emergency stop marker appears
// mid-run.
var ErrStopRequested = errors.New("task: stop requested")

// Task rewrites one page.
type Task interface {
	// Name identifies the task in reports and the journal.
	Name() string

	// Transform returns the rewritten page text and an edit summary.
	// Return ErrSkip (wrapped with a reason) to leave the page alone.
	Transform(ctx context.Context, page *wiki.Page) (newText, summary string, err error)
}

// Client is the subset of the wiki client the runner needs.
type Client interface {
	Page(title string) (*wiki.Page, error)
	SavePage(page *wiki.Page, newText, summary string, major bool) error
	DryRun() bool
}

// Seen tracks pages a task has already handled across runs, so a page is
// never processed twice.
type Seen interface {
	WasSeen(task, title string) (bool, error)
	MarkSeen(task, title string) error
}

// Runner executes a task over page titles, continuing past per-page
// failures so one broken page does not abort a batch.
type Runner struct {
	client        Client
	logger        *slog.Logger
	seen          Seen
	stopRequested func() bool
	skipRedirects bool
	skipWIP       bool
	majorEdits    bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithSeen makes the runner skip pages the task already handled in an
// earlier run and record newly handled ones.
func WithSeen(s Seen) RunnerOption {
	return func(r *Runner) {
		r.seen = s
	}
}

// WithStopCheck installs the emergency stop probe. When it reports true
// the run aborts before the next page.
func WithStopCheck(fn func() bool) RunnerOption {
	return func(r *Runner) {
		r.stopRequested = fn
	}
}

// WithSkipRedirects makes the runner skip redirect pages.
func WithSkipRedirects() RunnerOption {
	return func(r *Runner) {
		r.skipRedirects = true
	}
}

// WithSkipWorkInProgress makes the runner skip pages carrying a
// work-in-progress notice, out of courtesy to the editor working there.
func WithSkipWorkInProgress() RunnerOption {
	return func(r *Runner) {
		r.skipWIP = true
	}
}

// WithMajorEdits marks saves as non-minor.
func WithMajorEdits() RunnerOption {
	return func(r *Runner) {
		r.majorEdits = true
	}
}

// NewRunner creates a runner over the given client.
func NewRunner(client Client, opts ...RunnerOption) *Runner {
	r := &Runner{
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes each title with the task and returns the finished report.
// Per-page errors are recorded and the run continues; only context
// cancellation and a stop request abort it.
func (r *Runner) Run(ctx context.Context, t Task, titles []string) (*model.RunReport, error) {
	report := model.NewRunReport(t.Name())

	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			return report.Finish(), err
		}
		if r.stopRequested != nil && r.stopRequested() {
			r.logger.Warn("stop requested, aborting run", "task", t.Name())
			return report.Finish(), ErrStopRequested
		}

		outcome := r.processPage(ctx, t, title)
		report.Record(outcome)

		switch outcome.Action {
		case model.OutcomeFailed:
			r.logger.Error("page failed", "task", t.Name(), "title", title, "error", outcome.Err)
		case model.OutcomeSkipped:
			r.logger.Debug("page skipped", "task", t.Name(), "title", title, "reason", outcome.Detail)
		case model.OutcomeEdited:
			r.logger.Info("page edited", "task", t.Name(), "title", title)
		}
	}
	return report.Finish(), nil
}

func (r *Runner) processPage(ctx context.Context, t Task, title string) model.PageOutcome {
	outcome := model.PageOutcome{Title: title}

	if r.seen != nil {
		seen, err := r.seen.WasSeen(t.Name(), title)
		if err != nil {
			return failed(outcome, fmt.Errorf("seen lookup failed: %w", err))
		}
		if seen {
			outcome.Detail = "handled in an earlier run"
			return outcome
		}
	}

	page, err := r.client.Page(title)
	if err != nil {
		if errors.Is(err, wiki.ErrPageMissing) {
			outcome.Detail = "page does not exist"
			return outcome
		}
		return failed(outcome, err)
	}

	if r.skipRedirects && wikitext.IsRedirect(page.Text) {
		outcome.Detail = "redirect"
		return outcome
	}
	if r.skipWIP && wikitext.HasWorkInProgress(page.Text) {
		outcome.Detail = "work in progress"
		return outcome
	}

	newText, summary, err := t.Transform(ctx, page)
	if err != nil {
		if errors.Is(err, ErrSkip) {
			outcome.Detail = skipReason(err)
			return outcome
		}
		return failed(outcome, err)
	}

	if err := r.client.SavePage(page, newText, summary, r.majorEdits); err != nil {
		if errors.Is(err, wiki.ErrNoChange) {
			outcome.Detail = "no change"
			return outcome
		}
		return failed(outcome, err)
	}

	// A dry run must leave the seen set alone: marking previewed pages
	// would make the next live run skip them all.
	if r.seen != nil && !r.client.DryRun() {
		if err := r.seen.MarkSeen(t.Name(), title); err != nil {
			// The edit succeeded; a bookkeeping failure should not mask it.
			r.logger.Warn("failed to record page as seen", "task", t.Name(), "title", title, "error", err)
		}
	}
	outcome.Action = model.OutcomeEdited
	return outcome
}

func failed(outcome model.PageOutcome, err error) model.PageOutcome {
	outcome.Action = model.OutcomeFailed
	outcome.Err = err.Error()
	return outcome
}

// skipReason strips the ErrSkip prefix, leaving the reason a task gave.
func skipReason(err error) string {
	msg := err.Error()
	prefix := ErrSkip.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
