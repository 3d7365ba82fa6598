package wikitext

import (
	"regexp"
	"strings"
)

// Typographic fixes applied to article prose. Each rule only runs on
// editable segments (see Split), so template parameters, table syntax,
// comments and external links are never rewritten.
var (
	// fileLinkRe: English namespace prefix in image links.
	fileLinkRe = regexp.MustCompile(`(?i)\[\[\s*File\s*:`)

	// guillemetsRe: quoted text between French guillemets.
	guillemetsRe = regexp.MustCompile(`«\s*(.*?)\s*»`)

	// spaceBeforePeriodRe: whitespace before a period.
	spaceBeforePeriodRe = regexp.MustCompile(`\s+\.`)

	// tightPunctRe: exclamation or question mark glued to a word.
	// French typography separates them from the preceding word.
	tightPunctRe = regexp.MustCompile(`([^\s])([!?])`)

	// sentenceStartRe: lower-case letter after sentence-ending
	// punctuation. Restricted to ASCII letters on purpose: accented
	// lower-case starts are rare and usually intentional stylings.
	sentenceStartRe = regexp.MustCompile(`([.!?]\s+)([a-z])`)
)

// FixTypos applies the typographic rules to the editable parts of the
// page and reports whether anything changed.
//
// The namespace translation runs on the whole text before segmentation:
// its pattern only ever matches inside a link opener, which Split
// protects from every other rule.
func FixTypos(text string) (string, bool) {
	fixed := fileLinkRe.ReplaceAllString(text, "[[Fichier:")

	var b strings.Builder
	first := true
	for _, seg := range Split(fixed) {
		if !seg.Editable {
			b.WriteString(seg.Text)
			first = false
			continue
		}
		s := fixSegment(seg.Text)
		if first {
			// Only the opening prose of the page gets its first letter
			// raised; later segments start mid-sentence.
			s = Capitalize(s)
			first = false
		}
		b.WriteString(s)
	}

	out := b.String()
	return out, out != text
}

// fixSegment applies the prose rules to one editable segment.
func fixSegment(text string) string {
	// Replace « quoted » text with the house quote template, then drop
	// any unpaired guillemets left behind.
	text = guillemetsRe.ReplaceAllString(text, `{{"|$1}}`)
	text = strings.ReplaceAll(text, "«", "")
	text = strings.ReplaceAll(text, "»", "")

	text = spaceBeforePeriodRe.ReplaceAllString(text, ".")
	text = tightPunctRe.ReplaceAllString(text, "$1 $2")

	text = sentenceStartRe.ReplaceAllStringFunc(text, func(m string) string {
		return m[:len(m)-1] + strings.ToUpper(m[len(m)-1:])
	})

	return text
}
