package task

import (
	"context"
	"fmt"

	"github.com/celianv/vikibot/internal/wiki"
	"github.com/celianv/vikibot/internal/wikitext"
)

// TypoFixer applies the typographic conventions to article prose:
// French file prefix, quotation template, punctuation spacing and
// sentence capitalization. Templates, tables, comments and links are
// left untouched.
type TypoFixer struct{}

// NewTypoFixer creates a typo fixer.
func NewTypoFixer() *TypoFixer {
	return &TypoFixer{}
}

// Name implements Task.
func (t *TypoFixer) Name() string { return "typo" }

// Transform implements Task.
func (t *TypoFixer) Transform(_ context.Context, page *wiki.Page) (string, string, error) {
	newText, changed := wikitext.FixTypos(page.Text)
	if !changed {
		return "", "", fmt.Errorf("%w: nothing to fix", ErrSkip)
	}

	summary := "Bot : corrections typographiques"
	return newText, summary, nil
}
