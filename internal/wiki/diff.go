package wiki

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a unified-style text diff between two page versions.
// Used for dry-run logging so operators can review what would change.
func Diff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, true)
	dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString("+{")
			b.WriteString(d.Text)
			b.WriteString("}")
		case diffmatchpatch.DiffDelete:
			b.WriteString("-{")
			b.WriteString(d.Text)
			b.WriteString("}")
		case diffmatchpatch.DiffEqual:
			b.WriteString(truncateContext(d.Text))
		}
	}
	return b.String()
}

// truncateContext keeps only the edges of long unchanged runs so dry-run
// diffs stay readable in logs. The cut lands on rune boundaries so
// accented text is never split mid-sequence.
func truncateContext(text string) string {
	const keep = 40
	runes := []rune(text)
	if len(runes) <= 2*keep+5 {
		return text
	}
	return string(runes[:keep]) + " ... " + string(runes[len(runes)-keep:])
}
