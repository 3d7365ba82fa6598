package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/celianv/vikibot/internal/wiki"
	"github.com/celianv/vikibot/internal/wikidata"
	"github.com/celianv/vikibot/internal/wikitext"
)

// GenderResolver resolves a person's gender from an external source.
// Satisfied by *wikidata.Client through resolveGender.
type GenderResolver interface {
	QIDForLabel(ctx context.Context, label, lang string) (string, error)
	Gender(ctx context.Context, qid string) (wikidata.Gender, error)
}

// GenderClassifier replaces the generic alphabetical personality
// category with the gendered one, using the subject's Wikidata
// sex-or-gender claim resolved by French label.
type GenderClassifier struct {
	resolver   GenderResolver
	genericCat string
	maleCat    string
	femaleCat  string
}

// NewGenderClassifier creates a classifier over the three category
// names, given without the "Catégorie:" prefix.
func NewGenderClassifier(resolver GenderResolver, generic, male, female string) *GenderClassifier {
	return &GenderClassifier{
		resolver:   resolver,
		genericCat: generic,
		maleCat:    male,
		femaleCat:  female,
	}
}

// Name implements Task.
func (t *GenderClassifier) Name() string { return "gender" }

// Transform implements Task.
func (t *GenderClassifier) Transform(ctx context.Context, page *wiki.Page) (string, string, error) {
	qid, err := t.resolver.QIDForLabel(ctx, page.Title, "fr")
	if err != nil {
		if errors.Is(err, wikidata.ErrNotFound) {
			return "", "", fmt.Errorf("%w: no Wikidata item for %q", ErrSkip, page.Title)
		}
		return "", "", err
	}

	gender, err := t.resolver.Gender(ctx, qid)
	if err != nil {
		if errors.Is(err, wikidata.ErrNotFound) {
			return "", "", fmt.Errorf("%w: %s has no gender claim", ErrSkip, qid)
		}
		return "", "", err
	}

	var target string
	switch gender {
	case wikidata.GenderMale:
		target = t.maleCat
	case wikidata.GenderFemale:
		target = t.femaleCat
	default:
		return "", "", fmt.Errorf("%w: gender of %s is not classified here", ErrSkip, qid)
	}

	if wikitext.HasCategory(page.Text, target) {
		return "", "", fmt.Errorf("%w: already categorized", ErrSkip)
	}

	newText := wikitext.AppendCategory(page.Text, target)
	newText, _ = wikitext.RemoveCategory(newText, t.genericCat)

	summary := fmt.Sprintf("Bot : correction de [[Catégorie:%s]] par genre via Wikidata", t.genericCat)
	return newText, summary, nil
}
