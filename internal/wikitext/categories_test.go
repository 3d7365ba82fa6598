package wikitext

import (
	"reflect"
	"testing"
)

const genericCat = "Personnalité par ordre alphabétique"

// TestCategories tests category link listing.
func TestCategories(t *testing.T) {
	t.Parallel()

	text := "Texte.\n[[Catégorie:Chats]]\n[[catégorie:Animaux domestiques|Chat]]\n[[Chat sauvage]]"
	got := Categories(text)
	want := []string{"Chats", "Animaux domestiques"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, expected %v", got, want)
	}
}

// TestHasCategory tests detection of a specific category link.
func TestHasCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain link", "[[Catégorie:" + genericCat + "]]", true},
		{"lowercase namespace", "[[catégorie:" + genericCat + "]]", true},
		{"with sort key", "[[Catégorie:" + genericCat + "|Hugo, Victor]]", true},
		{"spaced", "[[ Catégorie : " + genericCat + " ]]", true},
		{"absent", "[[Catégorie:Chats]]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HasCategory(tt.text, genericCat); got != tt.want {
				t.Errorf("got %v, expected %v", got, tt.want)
			}
		})
	}
}

// TestRemoveCategory tests removal of a category link.
func TestRemoveCategory(t *testing.T) {
	t.Parallel()

	t.Run("removes link and its line", func(t *testing.T) {
		t.Parallel()

		text := "Texte.\n[[Catégorie:" + genericCat + "]]\n[[Catégorie:Chats]]"
		got, removed := RemoveCategory(text, genericCat)
		if !removed {
			t.Fatal("expected removal")
		}
		if got != "Texte.\n[[Catégorie:Chats]]" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("removes link with sort key", func(t *testing.T) {
		t.Parallel()

		text := "[[Catégorie:" + genericCat + "|Hugo, Victor]]\n"
		got, removed := RemoveCategory(text, genericCat)
		if !removed || got != "" {
			t.Errorf("got (%q, %v)", got, removed)
		}
	})

	t.Run("absent category", func(t *testing.T) {
		t.Parallel()

		text := "[[Catégorie:Chats]]"
		got, removed := RemoveCategory(text, genericCat)
		if removed || got != text {
			t.Errorf("got (%q, %v)", got, removed)
		}
	})
}

// TestAppendCategory tests appending a category link.
func TestAppendCategory(t *testing.T) {
	t.Parallel()

	got := AppendCategory("Texte.\n\n", "Chats")
	if got != "Texte.\n[[Catégorie:Chats]]" {
		t.Errorf("got %q", got)
	}
}
