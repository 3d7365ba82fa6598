package wikitext

import (
	"strings"
	"testing"
)

// TestSplit tests block-aware segmentation.
func TestSplit(t *testing.T) {
	t.Parallel()

	t.Run("reassembles the input", func(t *testing.T) {
		t.Parallel()

		text := "Début {{Infobox|a={{b}}}} milieu {| tableau |} <!-- note --> [http://x lien] [[Chat|chats]] fin"
		var b strings.Builder
		for _, seg := range Split(text) {
			b.WriteString(seg.Text)
		}
		if b.String() != text {
			t.Errorf("got %q, expected %q", b.String(), text)
		}
	})

	t.Run("protects templates tables comments and external links", func(t *testing.T) {
		t.Parallel()

		text := "a {{tpl|x}} b {| t |} c <!-- z --> d [http://x y] e"
		for _, seg := range Split(text) {
			switch {
			case strings.HasPrefix(seg.Text, "{{"),
				strings.HasPrefix(seg.Text, "{|"),
				strings.HasPrefix(seg.Text, "<!--"),
				strings.HasPrefix(seg.Text, "["):
				if seg.Editable {
					t.Errorf("segment %q should be protected", seg.Text)
				}
			default:
				if !seg.Editable {
					t.Errorf("segment %q should be editable", seg.Text)
				}
			}
		}
	})

	t.Run("link target is protected, display text editable", func(t *testing.T) {
		t.Parallel()

		segs := Split("Voir [[Chat|les chats]] ici")
		want := []Segment{
			{Text: "Voir ", Editable: true},
			{Text: "[[Chat|"},
			{Text: "les chats]] ici", Editable: true},
		}
		if len(segs) != len(want) {
			t.Fatalf("got %+v, expected %+v", segs, want)
		}
		for i := range want {
			if segs[i] != want[i] {
				t.Errorf("segment %d = %+v, expected %+v", i, segs[i], want[i])
			}
		}
	})

	t.Run("pipeless link is protected whole", func(t *testing.T) {
		t.Parallel()

		segs := Split("Voir [[Oh!]] ici")
		if len(segs) != 3 || segs[1].Editable || segs[1].Text != "[[Oh!]]" {
			t.Errorf("got %+v, expected the whole link protected", segs)
		}
	})

	t.Run("nested templates consumed as one block", func(t *testing.T) {
		t.Parallel()

		segs := Split("{{a|{{b|c}}}}")
		if len(segs) != 1 || segs[0].Editable {
			t.Fatalf("expected one protected segment, got %+v", segs)
		}
	})

	t.Run("unterminated comment runs to end", func(t *testing.T) {
		t.Parallel()

		segs := Split("texte <!-- ouvert")
		last := segs[len(segs)-1]
		if last.Editable || last.Text != "<!-- ouvert" {
			t.Errorf("got %+v", last)
		}
	})
}

// TestFixTypos tests the typographic rules.
func TestFixTypos(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{
			name:    "file namespace translated",
			in:      "Image : [[File:Chat.jpg]]",
			want:    "Image : [[Fichier:Chat.jpg]]",
			changed: true,
		},
		{
			name:    "guillemets become quote template",
			in:      "Il dit « bonjour » fort.",
			want:    `Il dit {{"|bonjour}} fort.`,
			changed: true,
		},
		{
			name:    "no space before period",
			in:      "La fin .",
			want:    "La fin.",
			changed: true,
		},
		{
			name:    "space added before exclamation",
			in:      "Quelle surprise!",
			want:    "Quelle surprise !",
			changed: true,
		},
		{
			name:    "capital after sentence end",
			in:      "Fini. la suite",
			want:    "Fini. La suite",
			changed: true,
		},
		{
			name:    "template content untouched",
			in:      "{{Citation|pas de majuscule. ici!}}",
			want:    "{{Citation|pas de majuscule. ici!}}",
			changed: false,
		},
		{
			name:    "external link untouched",
			in:      "Voir [http://example.org/page?q=1 la source]. Après.",
			want:    "Voir [http://example.org/page?q=1 la source]. Après.",
			changed: false,
		},
		{
			name:    "link target untouched by punctuation rules",
			in:      "Voir [[Oh!]] maintenant.",
			want:    "Voir [[Oh!]] maintenant.",
			changed: false,
		},
		{
			name:    "piped link keeps its target but fixes the display text",
			in:      "Voir [[Oh!|des cris]] .",
			want:    "Voir [[Oh!|des cris]].",
			changed: true,
		},
		{
			name:    "clean text unchanged",
			in:      "Rien à corriger.",
			want:    "Rien à corriger.",
			changed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := FixTypos(tt.in)
			if got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
			if changed != tt.changed {
				t.Errorf("changed = %v, expected %v", changed, tt.changed)
			}
		})
	}
}
