package report

import (
	"strings"

	"golang.org/x/net/html"
)

// Excerpt extracts the first sentences of rendered article HTML, up to
// maxLen runes, for use in embed descriptions. Navigation boxes, tables
// and reference markers are dropped.
func Excerpt(renderedHTML string, maxLen int) (string, error) {
	doc, err := html.Parse(strings.NewReader(renderedHTML))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	collectParagraphText(doc, &b)
	text := strings.Join(strings.Fields(b.String()), " ")

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text, nil
	}
	// Cut at a word boundary before the limit.
	cut := maxLen
	for cut > 0 && runes[cut-1] != ' ' {
		cut--
	}
	if cut == 0 {
		cut = maxLen
	}
	return strings.TrimSpace(string(runes[:cut])) + "…", nil
}

// collectParagraphText walks the tree and gathers text from paragraph
// elements only, skipping the markup MediaWiki wraps around them.
func collectParagraphText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "table", "style", "script":
			return
		case "sup":
			// Reference markers like [1].
			return
		case "p":
			appendText(n, b)
			b.WriteString(" ")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectParagraphText(c, b)
	}
}

// appendText gathers all text nodes under n.
func appendText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type == html.ElementNode && n.Data == "sup" {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(c, b)
	}
}
