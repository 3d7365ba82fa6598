package wikitext

import (
	"strings"
	"testing"

	"github.com/celianv/vikibot/internal/model"
)

// TestRenderDailyStats tests the wikitext rendering of daily stats.
func TestRenderDailyStats(t *testing.T) {
	t.Parallel()

	stats := &model.DailyStats{
		TotalChanges: 7,
		NewPages:     2,
		EditsByUser:  map[string]int{"Alice": 4, "Bob": 3},
		EditsByPage:  map[string]int{"Chat": 5, "Chien": 2},
	}

	got := RenderDailyStats(stats, "02/06/2025")

	for _, want := range []string{
		"== 📊 Statistiques du 02/06/2025 ==",
		"* 🔁 Modifications totales : '''7'''",
		"* 🆕 Nouveaux articles : '''2'''",
		"* 1. [[Chat]] – 5 modif(s)",
		"* 1. [[Utilisateur:Alice|Alice]] – 4 modif(s)",
		"* 2. [[Utilisateur:Bob|Bob]] – 3 modif(s)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered stats missing %q:\n%s", want, got)
		}
	}
}

// TestUpsertDailySection tests archive maintenance.
func TestUpsertDailySection(t *testing.T) {
	t.Parallel()

	section := "== 📊 Statistiques du 02/06/2025 ==\n* 🔁 Modifications totales : '''7'''"

	t.Run("appends to empty archive with TOC", func(t *testing.T) {
		t.Parallel()

		got := UpsertDailySection("", "02/06/2025", section)
		if !strings.HasPrefix(got, "== Sommaire ==\n* [[#📊 Statistiques du 02/06/2025]]") {
			t.Errorf("missing TOC:\n%s", got)
		}
		if !strings.Contains(got, section) {
			t.Errorf("missing section:\n%s", got)
		}
	})

	t.Run("replaces same-day section instead of duplicating", func(t *testing.T) {
		t.Parallel()

		archive := UpsertDailySection("", "02/06/2025", section)
		updated := "== 📊 Statistiques du 02/06/2025 ==\n* 🔁 Modifications totales : '''9'''"
		got := UpsertDailySection(archive, "02/06/2025", updated)

		if strings.Count(got, "== 📊 Statistiques du 02/06/2025 ==") != 1 {
			t.Errorf("expected exactly one section for the day:\n%s", got)
		}
		if !strings.Contains(got, "'''9'''") || strings.Contains(got, "'''7'''") {
			t.Errorf("section was not replaced:\n%s", got)
		}
	})

	t.Run("keeps earlier days and lists both in TOC", func(t *testing.T) {
		t.Parallel()

		archive := UpsertDailySection("", "01/06/2025",
			"== 📊 Statistiques du 01/06/2025 ==\n* 🔁 Modifications totales : '''3'''")
		got := UpsertDailySection(archive, "02/06/2025", section)

		if !strings.Contains(got, "Statistiques du 01/06/2025 ==") {
			t.Errorf("lost previous day:\n%s", got)
		}
		if !strings.Contains(got, "* [[#📊 Statistiques du 01/06/2025]]") ||
			!strings.Contains(got, "* [[#📊 Statistiques du 02/06/2025]]") {
			t.Errorf("TOC incomplete:\n%s", got)
		}
		if strings.Count(got, "== Sommaire ==") != 1 {
			t.Errorf("expected exactly one TOC:\n%s", got)
		}
	})
}

// TestSliceBetween tests marker-delimited slicing.
func TestSliceBetween(t *testing.T) {
	t.Parallel()

	text := "Intro\n== Articles classés ==\n* un\n* deux\n== Source de la liste ==\nFin"

	t.Run("slices the delimited region", func(t *testing.T) {
		t.Parallel()

		before, section, after, ok := SliceBetween(text, "== Articles classés ==", "== Source de la liste ==")
		if !ok {
			t.Fatal("expected markers to be found")
		}
		if before != "Intro\n" {
			t.Errorf("before = %q", before)
		}
		if !strings.HasPrefix(section, "== Articles classés ==") || !strings.Contains(section, "* deux") {
			t.Errorf("section = %q", section)
		}
		if !strings.HasPrefix(after, "== Source de la liste ==") {
			t.Errorf("after = %q", after)
		}
		if before+section+after != text {
			t.Error("slices do not reassemble the input")
		}
	})

	t.Run("missing marker", func(t *testing.T) {
		t.Parallel()

		if _, _, _, ok := SliceBetween(text, "== Absent ==", "== Source de la liste =="); ok {
			t.Error("expected ok=false for missing start marker")
		}
		if _, _, _, ok := SliceBetween(text, "== Articles classés ==", "== Absent =="); ok {
			t.Error("expected ok=false for missing end marker")
		}
	})
}
