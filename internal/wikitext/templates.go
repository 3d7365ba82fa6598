package wikitext

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Template is one {{...}} transclusion found in wikitext.
type Template struct {
	// Name is the template name with surrounding whitespace trimmed.
	// Case is preserved; use EqualName for comparisons.
	Name string

	// Params holds the positional and named parameters, raw and trimmed.
	Params []string

	// Start and End are the byte offsets of the template in the source,
	// End pointing just past the closing braces.
	Start int
	End   int
}

// Templates scans wikitext and returns all top-level templates.
// Nested transclusions are kept inside their parent's parameter text
// rather than reported separately, which matches how the maintenance
// tasks reason about markup (a portal inside an infobox is not a
// page-level portal declaration).
func Templates(text string) []Template {
	var templates []Template

	for i := 0; i < len(text); {
		start := strings.Index(text[i:], "{{")
		if start < 0 {
			break
		}
		start += i

		end, ok := matchBraces(text, start)
		if !ok {
			// Unbalanced braces; skip the opener and keep scanning so
			// one malformed template does not hide the rest.
			i = start + 2
			continue
		}

		inner := text[start+2 : end-2]
		name, params := splitTemplate(inner)
		templates = append(templates, Template{
			Name:   name,
			Params: params,
			Start:  start,
			End:    end,
		})
		i = end
	}

	return templates
}

// matchBraces finds the offset just past the "}}" matching the "{{" at
// start. Nested templates increase the depth by two per opener.
func matchBraces(text string, start int) (end int, ok bool) {
	depth := 0
	for i := start; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], "{{"):
			depth += 2
			i += 2
		case strings.HasPrefix(text[i:], "}}"):
			depth -= 2
			i += 2
			if depth == 0 {
				return i, true
			}
		default:
			i++
		}
	}
	return 0, false
}

// splitTemplate splits the inner text of a template into its name and
// parameters. Pipes inside nested templates or links do not split.
func splitTemplate(inner string) (name string, params []string) {
	var parts []string
	var depth int
	last := 0

	for i := 0; i < len(inner); {
		switch {
		case strings.HasPrefix(inner[i:], "{{") || strings.HasPrefix(inner[i:], "[["):
			depth++
			i += 2
		case strings.HasPrefix(inner[i:], "}}") || strings.HasPrefix(inner[i:], "]]"):
			depth--
			i += 2
		case inner[i] == '|' && depth == 0:
			parts = append(parts, inner[last:i])
			last = i + 1
			i++
		default:
			i++
		}
	}
	parts = append(parts, inner[last:])

	name = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		params = append(params, strings.TrimSpace(p))
	}
	return name, params
}

// EqualName compares template names the way MediaWiki does: the first
// letter is case-insensitive, the rest must match exactly. The
// maintenance tasks additionally fold the whole name because French
// template redirects cover the common casings.
func EqualName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// HasTemplate reports whether the page transcludes a template with the
// given name at the top level.
func HasTemplate(text, name string) bool {
	for _, t := range Templates(text) {
		if EqualName(t.Name, name) {
			return true
		}
	}
	return false
}

// RemoveTemplate removes every top-level transclusion of the named
// template and returns the new text and the number of removals.
// A newline directly following a removed template is dropped too, so
// templates on their own line do not leave blank lines behind.
func RemoveTemplate(text, name string) (string, int) {
	templates := Templates(text)

	var b strings.Builder
	removed := 0
	last := 0

	for _, t := range templates {
		if !EqualName(t.Name, name) {
			continue
		}
		b.WriteString(text[last:t.Start])
		end := t.End
		if end < len(text) && text[end] == '\n' {
			end++
		}
		last = end
		removed++
	}
	b.WriteString(text[last:])

	if removed == 0 {
		return text, 0
	}
	return b.String(), removed
}

var (
	stubRe    = regexp.MustCompile(`(?i)\{\{\s*ébauche(\s*[|\s][^}]*)?\}\}`)
	workRe    = regexp.MustCompile(`(?i)\{\{\s*(en\s+)?travaux(\s*\|[^}]+)?\s*\}\}`)
	redirRe   = regexp.MustCompile(`(?i)^\s*#(redirect|redirection)\b`)
	portailRe = regexp.MustCompile(`\{\{\s*[Pp]ortail\s*\|([^}]+)\}\}`)
)

// HasStub reports whether the page already carries an {{ébauche}}
// notice, in any casing and with or without portal parameters.
func HasStub(text string) bool {
	return stubRe.MatchString(text)
}

// HasWorkInProgress reports whether the page carries a {{Travaux}} or
// {{En travaux}} notice. Pages under active construction are never
// tagged as stubs.
func HasWorkInProgress(text string) bool {
	return workRe.MatchString(text)
}

// IsRedirect reports whether the wikitext is a redirect page.
func IsRedirect(text string) bool {
	return redirRe.MatchString(text)
}

// ExtractPortals returns the parameters of the page's first {{Portail}}
// template, trimmed and lower-cased. Empty parameters are dropped.
// It returns nil when the page declares no portal.
func ExtractPortals(text string) []string {
	m := portailRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	var portals []string
	for _, p := range strings.Split(m[1], "|") {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			portals = append(portals, p)
		}
	}
	return portals
}

// PrependStub inserts an {{ébauche|...}} notice with the given portal
// parameters at the top of the page. With no portals the text is
// returned unchanged, because a bare stub notice carries no portal
// categorization and would have to be refined by hand.
func PrependStub(text string, portals []string) string {
	if len(portals) == 0 {
		return text
	}
	return "{{ébauche|" + strings.Join(portals, "|") + "}}\n" + text
}

// frenchUpper capitalizes single runes with French casing rules.
var frenchUpper = cases.Upper(language.French)

// Capitalize upper-cases the first rune of s, leaving the rest intact.
// Used to build the capitalized variant of portal template titles
// ("Modèle:Ébauche histoire" vs "Modèle:Ébauche Histoire").
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return frenchUpper.String(string(r)) + s[size:]
}

// WordCount returns the number of whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// IsTooShort reports whether the page body has fewer than minWords
// words. This is the stub-notice length heuristic.
func IsTooShort(text string, minWords int) bool {
	return WordCount(text) < minWords
}
