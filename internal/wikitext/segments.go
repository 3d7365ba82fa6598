package wikitext

import "strings"

// Segment is a run of wikitext that is either plain prose or a markup
// block that transforms must leave alone.
type Segment struct {
	// Text is the raw segment content, markers included.
	Text string

	// Editable reports whether typographic fixes may touch the segment.
	// Templates, tables, HTML comments, external links and internal
	// link targets are not editable.
	Editable bool
}

// Split cuts wikitext into alternating editable and protected segments.
// Concatenating the segment texts reproduces the input exactly, so a
// transform can rewrite the editable parts and reassemble the page.
//
// Protected blocks are:
//   - HTML comments  <!-- ... -->
//   - templates      {{ ... }}  (nesting respected)
//   - tables         {| ... |}  (nesting respected)
//   - external links [ ... ]
//   - internal link targets: the page title between [[ and the pipe or
//     the closing brackets. Rewriting it would repoint the link; the
//     display text after the pipe is ordinary prose and stays editable.
func Split(text string) []Segment {
	var segments []Segment
	n := len(text)

	for i := 0; i < n; {
		switch {
		case strings.HasPrefix(text[i:], "<!--"):
			end := strings.Index(text[i+4:], "-->")
			if end < 0 {
				end = n
			} else {
				end = i + 4 + end + 3
			}
			segments = append(segments, Segment{Text: text[i:end]})
			i = end

		case strings.HasPrefix(text[i:], "{{"):
			end := skipNested(text, i, "{{", "}}")
			segments = append(segments, Segment{Text: text[i:end]})
			i = end

		case strings.HasPrefix(text[i:], "{|"):
			end := skipNested(text, i, "{|", "|}")
			segments = append(segments, Segment{Text: text[i:end]})
			i = end

		case strings.HasPrefix(text[i:], "[["):
			end := i + 2
			for end < n && text[end] != '|' && !strings.HasPrefix(text[end:], "]]") {
				end++
			}
			switch {
			case end < n && text[end] == '|':
				end++
			case end < n:
				end += 2
			}
			segments = append(segments, Segment{Text: text[i:end]})
			i = end

		case text[i] == '[':
			end := strings.IndexByte(text[i:], ']')
			if end < 0 {
				end = n
			} else {
				end = i + end + 1
			}
			segments = append(segments, Segment{Text: text[i:end]})
			i = end

		default:
			start := i
			for i < n {
				if strings.HasPrefix(text[i:], "{{") ||
					strings.HasPrefix(text[i:], "{|") ||
					strings.HasPrefix(text[i:], "<!--") {
					break
				}
				if text[i] == '[' {
					break
				}
				i++
			}
			segments = append(segments, Segment{Text: text[start:i], Editable: true})
		}
	}

	return segments
}

// skipNested returns the offset just past the closer matching the
// opener at start, honoring nesting. Unterminated blocks run to the end
// of the text.
func skipNested(text string, start int, open, close string) int {
	depth := 0
	i := start
	for i < len(text) {
		switch {
		case strings.HasPrefix(text[i:], open):
			depth++
			i += len(open)
		case strings.HasPrefix(text[i:], close):
			depth--
			i += len(close)
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return len(text)
}
