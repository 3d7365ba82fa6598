package report

import (
	"strings"
	"testing"
)

func TestExcerpt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		html   string
		maxLen int
		want   string
	}{
		{
			name:   "plain paragraph",
			html:   `<div class="mw-parser-output"><p>Le chat est un mammifère.</p></div>`,
			maxLen: 100,
			want:   "Le chat est un mammifère.",
		},
		{
			name:   "skips infobox tables",
			html:   `<table class="infobox"><tr><td>Règne: Animalia</td></tr></table><p>Le chat est un félin.</p>`,
			maxLen: 100,
			want:   "Le chat est un félin.",
		},
		{
			name:   "drops reference markers",
			html:   `<p>Le chat<sup>[1]</sup> miaule.</p>`,
			maxLen: 100,
			want:   "Le chat miaule.",
		},
		{
			name:   "joins paragraphs",
			html:   `<p>Première phrase.</p><p>Deuxième phrase.</p>`,
			maxLen: 100,
			want:   "Première phrase. Deuxième phrase.",
		},
		{
			name:   "keeps inline link text",
			html:   `<p>Le <a href="/wiki/Chat">chat</a> dort.</p>`,
			maxLen: 100,
			want:   "Le chat dort.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Excerpt(tt.html, tt.maxLen)
			if err != nil {
				t.Fatalf("Excerpt() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Excerpt() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("truncates at a word boundary", func(t *testing.T) {
		t.Parallel()
		got, err := Excerpt("<p>un deux trois quatre cinq</p>", 12)
		if err != nil {
			t.Fatalf("Excerpt() error = %v", err)
		}
		if !strings.HasSuffix(got, "…") {
			t.Errorf("Excerpt() = %q, want ellipsis suffix", got)
		}
		if len([]rune(got)) > 13 {
			t.Errorf("Excerpt() = %q, longer than the limit", got)
		}
	})
}
