package task

import (
	"context"
	"fmt"

	"github.com/celianv/vikibot/internal/wiki"
	"github.com/celianv/vikibot/internal/wikitext"
)

// DisambigCleaner removes {{Portail}} templates from disambiguation
// pages. A disambiguation page lists meanings, it does not belong to a
// portal.
type DisambigCleaner struct{}

// NewDisambigCleaner creates a disambiguation cleaner.
func NewDisambigCleaner() *DisambigCleaner {
	return &DisambigCleaner{}
}

// Name implements Task.
func (t *DisambigCleaner) Name() string { return "disambig" }

// Transform implements Task.
func (t *DisambigCleaner) Transform(_ context.Context, page *wiki.Page) (string, string, error) {
	if !wikitext.HasTemplate(page.Text, "Homonymie") {
		return "", "", fmt.Errorf("%w: not a disambiguation page", ErrSkip)
	}

	newText, removed := wikitext.RemoveTemplate(page.Text, "Portail")
	if removed == 0 {
		return "", "", fmt.Errorf("%w: no portal template", ErrSkip)
	}

	summary := "Retrait du modèle Portail sur page d'homonymie"
	return newText, summary, nil
}
