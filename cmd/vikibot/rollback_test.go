package main

import (
	"strings"
	"testing"
	"time"

	"github.com/celianv/vikibot/internal/model"
)

func TestPickRestoreRevision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		revs   []model.Revision
		target string
		wantID int64
		none   bool
	}{
		{
			name: "restores newest foreign revision",
			revs: []model.Revision{
				{ID: 30, User: "Vandale"},
				{ID: 20, User: "Vandale"},
				{ID: 10, User: "Rédacteur"},
			},
			target: "Vandale",
			wantID: 10,
		},
		{
			name: "skips over a whole run of target edits",
			revs: []model.Revision{
				{ID: 50, User: "Vandale"},
				{ID: 40, User: "Vandale"},
				{ID: 30, User: "Vandale"},
				{ID: 20, User: "Autre"},
				{ID: 10, User: "Vandale"},
			},
			target: "Vandale",
			wantID: 20,
		},
		{
			name: "page created by target has no restore point",
			revs: []model.Revision{
				{ID: 20, User: "Vandale"},
				{ID: 10, User: "Vandale"},
			},
			target: "Vandale",
			none:   true,
		},
		{
			name: "empty history has no restore point",
			revs: nil,
			target: "Vandale",
			none:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := pickRestoreRevision(tt.revs, tt.target)
			if tt.none {
				if got != nil {
					t.Fatalf("expected no restore revision, got %d", got.ID)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a restore revision, got nil")
			}
			if got.ID != tt.wantID {
				t.Errorf("expected revision %d, got %d", tt.wantID, got.ID)
			}
		})
	}
}

func TestDistinctTitles(t *testing.T) {
	t.Parallel()

	contribs := []model.Contribution{
		{Title: "Chat", RevID: 30},
		{Title: "Chien", RevID: 20},
		{Title: "Chat", RevID: 10},
	}

	got := distinctTitles(contribs)
	want := []string{"Chat", "Chien"}
	if len(got) != len(want) {
		t.Fatalf("expected %d titles, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("title %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRollbackWindow(t *testing.T) {
	t.Parallel()

	t.Run("defaults to the last 24 hours", func(t *testing.T) {
		t.Parallel()

		cmd := NewRollbackCmd()
		start, end, err := rollbackWindow(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !start.After(end) {
			t.Errorf("expected start (newer bound) after end, got start=%v end=%v", start, end)
		}
		if d := start.Sub(end); d != 24*time.Hour {
			t.Errorf("expected a 24h window, got %v", d)
		}
	})

	t.Run("parses explicit bounds", func(t *testing.T) {
		t.Parallel()

		cmd := NewRollbackCmd()
		if err := cmd.Flags().Set("start", "2025-03-14T00:00:00Z"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("end", "2025-03-15T00:00:00Z"); err != nil {
			t.Fatal(err)
		}

		start, end, err := rollbackWindow(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := end.Format(time.RFC3339); got != "2025-03-14T00:00:00Z" {
			t.Errorf("expected older bound 2025-03-14, got %s", got)
		}
		if got := start.Format(time.RFC3339); got != "2025-03-15T00:00:00Z" {
			t.Errorf("expected newer bound 2025-03-15, got %s", got)
		}
	})

	t.Run("rejects malformed bounds", func(t *testing.T) {
		t.Parallel()

		cmd := NewRollbackCmd()
		if err := cmd.Flags().Set("start", "yesterday"); err != nil {
			t.Fatal(err)
		}
		if _, _, err := rollbackWindow(cmd); err == nil {
			t.Error("expected error for malformed --start")
		}
	})
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "oui accepts", input: "oui\n", want: true},
		{name: "o accepts", input: "o\n", want: true},
		{name: "yes accepts", input: "Yes\n", want: true},
		{name: "non declines", input: "non\n", want: false},
		{name: "empty line declines", input: "\n", want: false},
		{name: "garbage declines", input: "peut-être\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := NewRollbackCmd()
			cmd.SetIn(strings.NewReader(tt.input))
			cmd.SetOut(&strings.Builder{})

			got, err := confirm(cmd, "Revert?")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("confirm(%q) = %v, want %v", strings.TrimSpace(tt.input), got, tt.want)
			}
		})
	}
}
