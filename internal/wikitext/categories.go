package wikitext

import (
	"regexp"
	"strings"
)

// categoryRe matches any category link and captures the category name
// (without the namespace prefix) in group 1.
var categoryRe = regexp.MustCompile(`(?i)\[\[\s*Catégorie\s*:\s*([^]|]+?)\s*(?:\|[^]]*)?\]\]`)

// categoryLinkRe builds a matcher for a link to one specific category,
// tolerating whitespace variations and an optional sort key.
func categoryLinkRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\[\[\s*Catégorie\s*:\s*` + regexp.QuoteMeta(name) + `\s*(?:\|[^]]*)?\]\][ \t]*\n?`)
}

// Categories returns the names of all categories the page links to,
// in source order, without the namespace prefix.
func Categories(text string) []string {
	var names []string
	for _, m := range categoryRe.FindAllStringSubmatch(text, -1) {
		names = append(names, strings.TrimSpace(m[1]))
	}
	return names
}

// HasCategory reports whether the page links to the named category.
func HasCategory(text, name string) bool {
	return categoryLinkRe(name).MatchString(text)
}

// RemoveCategory removes every link to the named category, including a
// trailing newline so the category block does not accumulate gaps.
// It reports whether anything was removed.
func RemoveCategory(text, name string) (string, bool) {
	re := categoryLinkRe(name)
	if !re.MatchString(text) {
		return text, false
	}
	return re.ReplaceAllString(text, ""), true
}

// AppendCategory adds a link to the named category at the end of the
// page. Callers should check HasCategory first; AppendCategory does not
// deduplicate.
func AppendCategory(text, name string) string {
	return strings.TrimRight(text, "\n") + "\n[[Catégorie:" + name + "]]"
}
