package task

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/celianv/vikibot/internal/model"
	"github.com/celianv/vikibot/internal/wiki"
)

type fakeClient struct {
	pages  map[string]string
	saved  map[string]string
	errors map[string]error
	dryRun bool
}

func newFakeClient(pages map[string]string) *fakeClient {
	return &fakeClient{
		pages:  pages,
		saved:  make(map[string]string),
		errors: make(map[string]error),
	}
}

func (f *fakeClient) Page(title string) (*wiki.Page, error) {
	if err := f.errors[title]; err != nil {
		return nil, err
	}
	text, ok := f.pages[title]
	if !ok {
		return nil, fmt.Errorf("%w: %s", wiki.ErrPageMissing, title)
	}
	return &wiki.Page{Title: title, Text: text}, nil
}

func (f *fakeClient) SavePage(page *wiki.Page, newText, summary string, major bool) error {
	if page.Text == newText {
		return fmt.Errorf("%w: %s", wiki.ErrNoChange, page.Title)
	}
	if f.dryRun {
		return nil
	}
	f.saved[page.Title] = newText
	return nil
}

func (f *fakeClient) DryRun() bool { return f.dryRun }

type appendTask struct {
	suffix string
	err    error
}

func (t *appendTask) Name() string { return "append" }

func (t *appendTask) Transform(_ context.Context, page *wiki.Page) (string, string, error) {
	if t.err != nil {
		return "", "", t.err
	}
	return page.Text + t.suffix, "append suffix", nil
}

type seenMap struct {
	seen map[string]bool
}

func (s *seenMap) WasSeen(task, title string) (bool, error) {
	return s.seen[task+"/"+title], nil
}

func (s *seenMap) MarkSeen(task, title string) error {
	s.seen[task+"/"+title] = true
	return nil
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("edits each page and records outcomes", func(t *testing.T) {
		t.Parallel()
		client := newFakeClient(map[string]string{
			"Alpha": "text a",
			"Beta":  "text b",
		})
		r := NewRunner(client)

		report, err := r.Run(context.Background(), &appendTask{suffix: "!"}, []string{"Alpha", "Beta"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if report.Edited() != 2 {
			t.Errorf("Edited() = %d, want 2", report.Edited())
		}
		if got := client.saved["Alpha"]; got != "text a!" {
			t.Errorf("saved Alpha = %q, want %q", got, "text a!")
		}
	})

	t.Run("missing page is skipped, not failed", func(t *testing.T) {
		t.Parallel()
		client := newFakeClient(map[string]string{})
		r := NewRunner(client)

		report, err := r.Run(context.Background(), &appendTask{suffix: "!"}, []string{"Missing"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if report.Skipped() != 1 {
			t.Errorf("Skipped() = %d, want 1", report.Skipped())
		}
	})

	t.Run("continues past a failing page", func(t *testing.T) {
		t.Parallel()
		client := newFakeClient(map[string]string{
			"Good": "text",
		})
		client.errors["Bad"] = errors.New("server exploded")
		r := NewRunner(client)

		report, err := r.Run(context.Background(), &appendTask{suffix: "!"}, []string{"Bad", "Good"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if report.Failed() != 1 || report.Edited() != 1 {
			t.Errorf("Failed()/Edited() = %d/%d, want 1/1", report.Failed(), report.Edited())
		}
	})

	t.Run("ErrSkip from the task records the reason", func(t *testing.T) {
		t.Parallel()
		client := newFakeClient(map[string]string{"Alpha": "text"})
		r := NewRunner(client)

		task := &appendTask{err: fmt.Errorf("%w: already tagged", ErrSkip)}
		report, err := r.Run(context.Background(), task, []string{"Alpha"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if report.Skipped() != 1 {
			t.Fatalf("Skipped() = %d, want 1", report.Skipped())
		}
		if got := report.Outcomes[0].Detail; got != "already tagged" {
			t.Errorf("Detail = %q, want %q", got, "already tagged")
		}
	})

	t.Run("skips redirects when asked", func(t *testing.T) {
		t.Parallel()
		client := newFakeClient(map[string]string{
			"Redir": "#REDIRECT [[Target]]",
		})
		r := NewRunner(client, WithSkipRedirects())

		report, err := r.Run(context.Background(), &appendTask{suffix: "!"}, []string{"Redir"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if report.Skipped() != 1 {
			t.Errorf("Skipped() = %d, want 1", report.Skipped())
		}
		if len(client.saved) != 0 {
			t.Errorf("saved = %v, want no saves", client.saved)
		}
	})

	t.Run("seen pages are skipped and new edits marked", func(t *testing.T) {
		t.Parallel()
		client := newFakeClient(map[string]string{
			"Old": "text",
			"New": "text",
		})
		seen := &seenMap{seen: map[string]bool{"append/Old": true}}
		r := NewRunner(client, WithSeen(seen))

		report, err := r.Run(context.Background(), &appendTask{suffix: "!"}, []string{"Old", "New"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if report.Skipped() != 1 || report.Edited() != 1 {
			t.Errorf("Skipped()/Edited() = %d/%d, want 1/1", report.Skipped(), report.Edited())
		}
		if !seen.seen["append/New"] {
			t.Error("edited page was not marked seen")
		}
	})

	t.Run("dry run leaves the seen set alone", func(t *testing.T) {
		t.Parallel()
		client := newFakeClient(map[string]string{"Jeanne d'Arc": "text"})
		client.dryRun = true
		seen := &seenMap{seen: map[string]bool{}}
		r := NewRunner(client, WithSeen(seen))

		if _, err := r.Run(context.Background(), &appendTask{suffix: "!"}, []string{"Jeanne d'Arc"}); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(seen.seen) != 0 {
			t.Errorf("seen = %v, a preview must not mark pages handled", seen.seen)
		}
	})

	t.Run("stop request aborts the run", func(t *testing.T) {
		t.Parallel()
		client := newFakeClient(map[string]string{"Alpha": "text"})
		r := NewRunner(client, WithStopCheck(func() bool { return true }))

		report, err := r.Run(context.Background(), &appendTask{suffix: "!"}, []string{"Alpha"})
		if !errors.Is(err, ErrStopRequested) {
			t.Fatalf("Run() error = %v, want ErrStopRequested", err)
		}
		if len(report.Outcomes) != 0 {
			t.Errorf("Outcomes = %d, want 0", len(report.Outcomes))
		}
	})

	t.Run("cancelled context aborts the run", func(t *testing.T) {
		t.Parallel()
		client := newFakeClient(map[string]string{"Alpha": "text"})
		r := NewRunner(client)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := r.Run(ctx, &appendTask{suffix: "!"}, []string{"Alpha"}); !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	})

	t.Run("no-op transform counts as skipped", func(t *testing.T) {
		t.Parallel()
		client := newFakeClient(map[string]string{"Alpha": "text"})
		r := NewRunner(client)

		report, err := r.Run(context.Background(), &appendTask{suffix: ""}, []string{"Alpha"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if report.Skipped() != 1 {
			t.Errorf("Skipped() = %d, want 1", report.Skipped())
		}
		if got := report.Outcomes[0].Detail; got != "no change" {
			t.Errorf("Detail = %q, want %q", got, "no change")
		}
	})
}

func TestRunner_RunReportActions(t *testing.T) {
	t.Parallel()

	client := newFakeClient(map[string]string{"Alpha": "text"})
	r := NewRunner(client)

	report, err := r.Run(context.Background(), &appendTask{suffix: "!"}, []string{"Alpha"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Command != "append" {
		t.Errorf("Command = %q, want %q", report.Command, "append")
	}
	if report.Outcomes[0].Action != model.OutcomeEdited {
		t.Errorf("Action = %v, want OutcomeEdited", report.Outcomes[0].Action)
	}
	if report.Finished.Before(report.Started) {
		t.Error("Finished precedes Started")
	}
}
