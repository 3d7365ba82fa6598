package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/celianv/vikibot/internal/wiki"
	"github.com/celianv/vikibot/internal/wikidata"
)

type fakeResolver struct {
	qids    map[string]string
	genders map[string]wikidata.Gender
}

func (f *fakeResolver) QIDForLabel(_ context.Context, label, _ string) (string, error) {
	qid, ok := f.qids[label]
	if !ok {
		return "", fmt.Errorf("%w: %s", wikidata.ErrNotFound, label)
	}
	return qid, nil
}

func (f *fakeResolver) Gender(_ context.Context, qid string) (wikidata.Gender, error) {
	gender, ok := f.genders[qid]
	if !ok {
		return wikidata.GenderUnknown, fmt.Errorf("%w: %s", wikidata.ErrNotFound, qid)
	}
	return gender, nil
}

const (
	genericCat = "Personnalité par ordre alphabétique"
	maleCat    = "Personnalité masculine par ordre alphabétique"
	femaleCat  = "Personnalité féminine par ordre alphabétique"
)

func newTestClassifier(resolver *fakeResolver) *GenderClassifier {
	return NewGenderClassifier(resolver, genericCat, maleCat, femaleCat)
}

func TestGenderClassifier_Transform(t *testing.T) {
	t.Parallel()

	t.Run("adds the female category and drops the generic one", func(t *testing.T) {
		t.Parallel()
		classifier := newTestClassifier(&fakeResolver{
			qids:    map[string]string{"Marie Curie": "Q7186"},
			genders: map[string]wikidata.Gender{"Q7186": wikidata.GenderFemale},
		})

		page := &wiki.Page{
			Title: "Marie Curie",
			Text:  "Physicienne.\n[[Catégorie:" + genericCat + "]]",
		}
		newText, summary, err := classifier.Transform(context.Background(), page)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if !strings.Contains(newText, "[[Catégorie:"+femaleCat+"]]") {
			t.Errorf("Transform() = %q, want the female category", newText)
		}
		if strings.Contains(newText, "[[Catégorie:"+genericCat+"]]") {
			t.Errorf("Transform() = %q, generic category should be gone", newText)
		}
		if !strings.Contains(summary, genericCat) {
			t.Errorf("summary = %q, want the source category named", summary)
		}
	})

	t.Run("adds the male category", func(t *testing.T) {
		t.Parallel()
		classifier := newTestClassifier(&fakeResolver{
			qids:    map[string]string{"Louis Pasteur": "Q529"},
			genders: map[string]wikidata.Gender{"Q529": wikidata.GenderMale},
		})

		page := &wiki.Page{
			Title: "Louis Pasteur",
			Text:  "Scientifique.\n[[Catégorie:" + genericCat + "]]",
		}
		newText, _, err := classifier.Transform(context.Background(), page)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if !strings.Contains(newText, "[[Catégorie:"+maleCat+"]]") {
			t.Errorf("Transform() = %q, want the male category", newText)
		}
	})

	t.Run("skips a subject without a Wikidata item", func(t *testing.T) {
		t.Parallel()
		classifier := newTestClassifier(&fakeResolver{})

		page := &wiki.Page{Title: "Personne Inconnue", Text: "Texte."}
		if _, _, err := classifier.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})

	t.Run("skips a subject without a gender claim", func(t *testing.T) {
		t.Parallel()
		classifier := newTestClassifier(&fakeResolver{
			qids: map[string]string{"Quelqu'un": "Q1"},
		})

		page := &wiki.Page{Title: "Quelqu'un", Text: "Texte."}
		if _, _, err := classifier.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})

	t.Run("skips an unclassified gender value", func(t *testing.T) {
		t.Parallel()
		classifier := newTestClassifier(&fakeResolver{
			qids:    map[string]string{"Quelqu'un": "Q1"},
			genders: map[string]wikidata.Gender{"Q1": wikidata.GenderUnknown},
		})

		page := &wiki.Page{Title: "Quelqu'un", Text: "Texte."}
		if _, _, err := classifier.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})

	t.Run("skips an already categorized page", func(t *testing.T) {
		t.Parallel()
		classifier := newTestClassifier(&fakeResolver{
			qids:    map[string]string{"Marie Curie": "Q7186"},
			genders: map[string]wikidata.Gender{"Q7186": wikidata.GenderFemale},
		})

		page := &wiki.Page{
			Title: "Marie Curie",
			Text:  "Physicienne.\n[[Catégorie:" + femaleCat + "]]",
		}
		if _, _, err := classifier.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})
}
