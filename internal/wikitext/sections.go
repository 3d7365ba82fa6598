package wikitext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/celianv/vikibot/internal/model"
)

// Layout of the statistics pages maintained by the stats command.
const (
	// statsHeaderPrefix starts every dated section on the archive page.
	statsHeaderPrefix = "== 📊 Statistiques du "

	// tocHeader starts the generated table of contents.
	tocHeader = "== Sommaire =="
)

// statsDateRe extracts the dates of all archived sections.
var statsDateRe = regexp.MustCompile(`== 📊 Statistiques du ([0-9]{2}/[0-9]{2}/[0-9]{4}) ==`)

// StatsHeader returns the section header for the given DD/MM/YYYY date.
func StatsHeader(dateFR string) string {
	return statsHeaderPrefix + dateFR + " =="
}

// RenderDailyStats renders one day of statistics as a wikitext section.
// The layout matches the sections already present on the archive page,
// so UpsertDailySection can find and replace earlier runs of the same day.
func RenderDailyStats(stats *model.DailyStats, dateFR string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", StatsHeader(dateFR))
	fmt.Fprintf(&b, "* 🔁 Modifications totales : '''%d'''\n", stats.TotalChanges)
	fmt.Fprintf(&b, "* 🆕 Nouveaux articles : '''%d'''\n\n", stats.NewPages)

	b.WriteString("'''🔝 Top 5 des pages les plus modifiées'''\n")
	for i, page := range stats.TopPages(5) {
		fmt.Fprintf(&b, "* %d. [[%s]] – %d modif(s)\n", i+1, page.Name, page.Count)
	}

	b.WriteString("\n'''👥 Contributeurs les plus actifs'''\n")
	for i, user := range stats.TopUsers(10) {
		fmt.Fprintf(&b, "* %d. [[Utilisateur:%s|%s]] – %d modif(s)\n", i+1, user.Name, user.Name, user.Count)
	}

	return b.String()
}

// UpsertDailySection inserts or replaces the dated section in the
// archive page and regenerates the table of contents.
//
// The archive keeps exactly one section per day: re-running the stats
// command on the same day replaces that day's section instead of
// appending a duplicate.
func UpsertDailySection(archive, dateFR, section string) string {
	content := strings.TrimSpace(stripTOC(archive))
	section = strings.TrimSpace(section)

	header := StatsHeader(dateFR)
	if idx := strings.Index(content, header); idx >= 0 {
		end := sectionEnd(content, idx+len(header))
		content = content[:idx] + section + content[end:]
	} else if content == "" {
		content = section
	} else {
		content += "\n\n" + section
	}

	var toc strings.Builder
	toc.WriteString(tocHeader)
	for _, m := range statsDateRe.FindAllStringSubmatch(content, -1) {
		toc.WriteString("\n* [[#📊 Statistiques du " + m[1] + "]]")
	}

	return toc.String() + "\n\n" + strings.TrimSpace(content)
}

// stripTOC removes a previously generated table of contents, which runs
// from its header to the first dated section (or the end of the page).
func stripTOC(text string) string {
	idx := strings.Index(text, tocHeader)
	if idx < 0 {
		return text
	}

	rest := text[idx:]
	end := strings.Index(rest, "\n"+statsHeaderPrefix)
	if end < 0 {
		return text[:idx]
	}
	return text[:idx] + rest[end+1:]
}

// sectionEnd returns the offset where the section starting after from
// ends: the next section header or the end of the text.
func sectionEnd(text string, from int) int {
	idx := strings.Index(text[from:], "\n==")
	if idx < 0 {
		return len(text)
	}
	return from + idx
}

// SliceBetween splits text around the region delimited by the two
// markers. The region starts at startMarker (inclusive) and ends at
// endMarker (exclusive). ok is false when either marker is missing.
//
// The shortlist command uses this to restrict edits to the curated part
// of the list page, leaving the surrounding documentation untouched.
func SliceBetween(text, startMarker, endMarker string) (before, section, after string, ok bool) {
	start := strings.Index(text, startMarker)
	if start < 0 {
		return "", "", "", false
	}
	end := strings.Index(text[start:], endMarker)
	if end < 0 {
		return "", "", "", false
	}
	end += start
	return text[:start], text[start:end], text[end:], true
}
