package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/celianv/vikibot/internal/wiki"
	"github.com/celianv/vikibot/internal/wikitext"
)

// RedCategoryCleaner removes category links whose category page does not
// exist. Such links file the article under a red-linked category nobody
// maintains.
type RedCategoryCleaner struct {
	prober ExistenceProber
}

// NewRedCategoryCleaner creates a red-category cleaner.
func NewRedCategoryCleaner(prober ExistenceProber) *RedCategoryCleaner {
	return &RedCategoryCleaner{prober: prober}
}

// Name implements Task.
func (t *RedCategoryCleaner) Name() string { return "redcat" }

// Transform implements Task.
func (t *RedCategoryCleaner) Transform(_ context.Context, page *wiki.Page) (string, string, error) {
	categories := wikitext.Categories(page.Text)
	if len(categories) == 0 {
		return "", "", fmt.Errorf("%w: no categories", ErrSkip)
	}

	titles := make([]string, len(categories))
	for i, cat := range categories {
		titles[i] = "Catégorie:" + cat
	}
	existing, err := t.prober.ExistingPages(titles)
	if err != nil {
		return "", "", fmt.Errorf("failed to probe categories: %w", err)
	}
	exists := make(map[string]bool, len(existing))
	for _, title := range existing {
		exists[title] = true
	}

	newText := page.Text
	var removed []string
	for _, cat := range categories {
		if exists["Catégorie:"+cat] {
			continue
		}
		var ok bool
		newText, ok = wikitext.RemoveCategory(newText, cat)
		if ok {
			removed = append(removed, cat)
		}
	}

	if len(removed) == 0 {
		return "", "", fmt.Errorf("%w: all categories exist", ErrSkip)
	}

	summary := fmt.Sprintf("Bot : retrait de catégorie(s) inexistante(s) : %s", strings.Join(removed, ", "))
	return newText, summary, nil
}
