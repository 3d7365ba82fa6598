package task

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/celianv/vikibot/internal/wiki"
)

func TestDisambigCleaner_Transform(t *testing.T) {
	t.Parallel()

	cleaner := NewDisambigCleaner()

	t.Run("removes portals from a disambiguation page", func(t *testing.T) {
		t.Parallel()
		page := &wiki.Page{Text: "{{Homonymie}}\nPlusieurs sens.\n{{Portail|Histoire}}\n"}
		newText, _, err := cleaner.Transform(context.Background(), page)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if strings.Contains(newText, "Portail") {
			t.Errorf("Transform() = %q, portal should be gone", newText)
		}
		if !strings.Contains(newText, "{{Homonymie}}") {
			t.Errorf("Transform() = %q, homonymie notice must stay", newText)
		}
	})

	t.Run("skips a regular article", func(t *testing.T) {
		t.Parallel()
		page := &wiki.Page{Text: "Un article normal.\n{{Portail|Histoire}}\n"}
		if _, _, err := cleaner.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})

	t.Run("skips a disambiguation page without portals", func(t *testing.T) {
		t.Parallel()
		page := &wiki.Page{Text: "{{Homonymie}}\nPlusieurs sens.\n"}
		if _, _, err := cleaner.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})
}

func TestCategoryDeduper_Transform(t *testing.T) {
	t.Parallel()

	deduper := NewCategoryDeduper(genericCat, maleCat, femaleCat)

	t.Run("drops the generic category when a gendered one exists", func(t *testing.T) {
		t.Parallel()
		page := &wiki.Page{Text: "Texte.\n[[Catégorie:" + genericCat + "]]\n[[Catégorie:" + femaleCat + "]]"}
		newText, _, err := deduper.Transform(context.Background(), page)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if strings.Contains(newText, "[[Catégorie:"+genericCat+"]]") {
			t.Errorf("Transform() = %q, generic category should be gone", newText)
		}
		if !strings.Contains(newText, "[[Catégorie:"+femaleCat+"]]") {
			t.Errorf("Transform() = %q, gendered category must stay", newText)
		}
	})

	t.Run("skips pages without a gendered category", func(t *testing.T) {
		t.Parallel()
		page := &wiki.Page{Text: "Texte.\n[[Catégorie:" + genericCat + "]]"}
		if _, _, err := deduper.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})

	t.Run("skips pages where the generic category is already gone", func(t *testing.T) {
		t.Parallel()
		page := &wiki.Page{Text: "Texte.\n[[Catégorie:" + maleCat + "]]"}
		if _, _, err := deduper.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})
}

func TestRedCategoryCleaner_Transform(t *testing.T) {
	t.Parallel()

	t.Run("removes nonexistent categories and keeps real ones", func(t *testing.T) {
		t.Parallel()
		prober := &fakeProber{existing: map[string]bool{
			"Catégorie:Histoire": true,
		}}
		cleaner := NewRedCategoryCleaner(prober)

		page := &wiki.Page{Text: "Texte.\n[[Catégorie:Histoire]]\n[[Catégorie:Inventée]]"}
		newText, summary, err := cleaner.Transform(context.Background(), page)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if strings.Contains(newText, "Inventée") {
			t.Errorf("Transform() = %q, red category should be gone", newText)
		}
		if !strings.Contains(newText, "[[Catégorie:Histoire]]") {
			t.Errorf("Transform() = %q, existing category must stay", newText)
		}
		if !strings.Contains(summary, "Inventée") {
			t.Errorf("summary = %q, want the removed category named", summary)
		}
	})

	t.Run("skips when every category exists", func(t *testing.T) {
		t.Parallel()
		prober := &fakeProber{existing: map[string]bool{
			"Catégorie:Histoire": true,
		}}
		cleaner := NewRedCategoryCleaner(prober)

		page := &wiki.Page{Text: "Texte.\n[[Catégorie:Histoire]]"}
		if _, _, err := cleaner.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})

	t.Run("skips uncategorized pages", func(t *testing.T) {
		t.Parallel()
		cleaner := NewRedCategoryCleaner(&fakeProber{})

		page := &wiki.Page{Text: "Texte sans catégorie."}
		if _, _, err := cleaner.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})
}

func TestTypoFixer_Transform(t *testing.T) {
	t.Parallel()

	fixer := NewTypoFixer()

	t.Run("fixes prose typos", func(t *testing.T) {
		t.Parallel()
		page := &wiki.Page{Text: "Le chat dort . il ronronne."}
		newText, _, err := fixer.Transform(context.Background(), page)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if strings.Contains(newText, " .") {
			t.Errorf("Transform() = %q, space before period should be gone", newText)
		}
	})

	t.Run("skips clean pages", func(t *testing.T) {
		t.Parallel()
		page := &wiki.Page{Text: "Le chat dort. Il ronronne."}
		if _, _, err := fixer.Transform(context.Background(), page); !errors.Is(err, ErrSkip) {
			t.Errorf("Transform() error = %v, want ErrSkip", err)
		}
	})
}
