package main

import "testing"

func TestPageHash(t *testing.T) {
	t.Parallel()

	base := pageHash("== Arrêt d'urgence ==\nMerci d'arrêter le bot. ~~~~")

	t.Run("is stable", func(t *testing.T) {
		t.Parallel()
		if again := pageHash("== Arrêt d'urgence ==\nMerci d'arrêter le bot. ~~~~"); again != base {
			t.Errorf("expected identical hashes, got %s and %s", base, again)
		}
	})

	t.Run("changes with the text", func(t *testing.T) {
		t.Parallel()
		if changed := pageHash("== Arrêt d'urgence ==\nMerci d'arrêter le bot maintenant. ~~~~"); changed == base {
			t.Error("expected a different hash for different text")
		}
	})

	t.Run("is hex encoded", func(t *testing.T) {
		t.Parallel()
		if len(base) != 64 {
			t.Errorf("expected a 64-character hex digest, got %d characters", len(base))
		}
	})
}
