package task

import (
	"context"
	"fmt"

	"github.com/celianv/vikibot/internal/wiki"
	"github.com/celianv/vikibot/internal/wikitext"
)

// ExistenceProber filters page titles down to those that exist.
// Satisfied by *wiki.Client, which probes in concurrent batches.
type ExistenceProber interface {
	ExistingPages(titles []string) ([]string, error)
}

// StubTagger prepends an {{ébauche|...}} notice to short untagged
// articles, with portal parameters taken from the page's {{Portail}}
// template.
type StubTagger struct {
	prober   ExistenceProber
	minWords int
}

// NewStubTagger creates a stub tagger. minWords is the length under
// which an article counts as a stub.
func NewStubTagger(prober ExistenceProber, minWords int) *StubTagger {
	return &StubTagger{prober: prober, minWords: minWords}
}

// Name implements Task.
func (t *StubTagger) Name() string { return "stub" }

// Transform implements Task.
func (t *StubTagger) Transform(_ context.Context, page *wiki.Page) (string, string, error) {
	if wikitext.HasStub(page.Text) {
		return "", "", fmt.Errorf("%w: already tagged", ErrSkip)
	}
	if !wikitext.IsTooShort(page.Text, t.minWords) {
		return "", "", fmt.Errorf("%w: long enough", ErrSkip)
	}

	portals, err := t.validPortals(wikitext.ExtractPortals(page.Text))
	if err != nil {
		return "", "", err
	}
	if len(portals) == 0 {
		return "", "", fmt.Errorf("%w: no usable portal", ErrSkip)
	}

	newText := wikitext.PrependStub(page.Text, portals)
	summary := "Bot : ajout du modèle {{ébauche}} (article court)"
	return newText, summary, nil
}

// validPortals keeps the portals for which a matching stub template
// exists. The lowercase name is preferred; when only the capitalized
// template exists, the capitalized parameter is used, because MediaWiki
// does not case-fold past the first letter and the lowercase parameter
// would transclude a red-linked template. Both candidates for every
// portal are probed in a single batch.
func (t *StubTagger) validPortals(portals []string) ([]string, error) {
	if len(portals) == 0 {
		return nil, nil
	}

	candidates := make([]string, 0, 2*len(portals))
	for _, p := range portals {
		candidates = append(candidates, stubTemplate(p), stubTemplate(wikitext.Capitalize(p)))
	}
	existing, err := t.prober.ExistingPages(candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to probe stub templates: %w", err)
	}
	exists := make(map[string]bool, len(existing))
	for _, title := range existing {
		exists[title] = true
	}

	var valid []string
	for _, p := range portals {
		switch {
		case exists[stubTemplate(p)]:
			valid = append(valid, p)
		case exists[stubTemplate(wikitext.Capitalize(p))]:
			valid = append(valid, wikitext.Capitalize(p))
		}
	}
	return valid, nil
}

// stubTemplate returns the title of the stub template for a portal.
func stubTemplate(portal string) string {
	return "Modèle:Ébauche " + portal
}
