package task

import (
	"context"
	"fmt"

	"github.com/celianv/vikibot/internal/wiki"
	"github.com/celianv/vikibot/internal/wikitext"
)

// CategoryDeduper removes the generic alphabetical personality category
// from pages that already carry a gendered one. The gendered category
// wins; keeping both double-lists the person.
type CategoryDeduper struct {
	genericCat string
	maleCat    string
	femaleCat  string
}

// NewCategoryDeduper creates a deduper over the three category names,
// given without the "Catégorie:" prefix.
func NewCategoryDeduper(generic, male, female string) *CategoryDeduper {
	return &CategoryDeduper{
		genericCat: generic,
		maleCat:    male,
		femaleCat:  female,
	}
}

// Name implements Task.
func (t *CategoryDeduper) Name() string { return "dedupe" }

// Transform implements Task.
func (t *CategoryDeduper) Transform(_ context.Context, page *wiki.Page) (string, string, error) {
	if !wikitext.HasCategory(page.Text, t.maleCat) && !wikitext.HasCategory(page.Text, t.femaleCat) {
		return "", "", fmt.Errorf("%w: no gendered category", ErrSkip)
	}

	newText, removed := wikitext.RemoveCategory(page.Text, t.genericCat)
	if !removed {
		return "", "", fmt.Errorf("%w: generic category already absent", ErrSkip)
	}

	summary := fmt.Sprintf("Suppression de la catégorie redondante « %s »", t.genericCat)
	return newText, summary, nil
}
