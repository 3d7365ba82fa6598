package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/celianv/vikibot/internal/model"
)

// MarkdownWriter renders run reports and daily statistics as Markdown,
// for local digest files an operator can review after a cron run.
//
// Design decision: we use the nao1215/markdown library for fluent
// generation; tables and GitHub-flavored alerts come out consistent
// without hand-rolled formatting.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// WriteRun renders one maintenance run.
func (w *MarkdownWriter) WriteRun(report *model.RunReport) error {
	md := markdown.NewMarkdown(w.output)

	title := "Run: " + report.Command
	if report.DryRun {
		title += " (dry run)"
	}
	md.H1(title)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", report.Started.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration().Round(time.Second).String()},
			{"Edited", strconv.Itoa(report.Edited())},
			{"Skipped", strconv.Itoa(report.Skipped())},
			{"Failed", strconv.Itoa(report.Failed())},
		},
	})
	md.PlainText("")

	w.writeAlert(md, report)
	w.writeOutcomes(md, report)

	return md.Build()
}

// writeAlert adds a severity alert when the run had failures.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.RunReport) {
	switch {
	case report.Failed() > 0:
		md.Warningf("%d page(s) failed and need manual review.", report.Failed())
	case report.Edited() == 0:
		md.Note("No pages needed changes.")
	default:
		md.Tipf("%d page(s) updated without failures.", report.Edited())
	}
	md.PlainText("")
}

// writeOutcomes lists edited and failed pages. Skips are omitted; a
// cron digest listing hundreds of untouched pages helps nobody.
func (w *MarkdownWriter) writeOutcomes(md *markdown.Markdown, report *model.RunReport) {
	var edited, failed [][]string
	for _, o := range report.Outcomes {
		switch o.Action {
		case model.OutcomeEdited:
			edited = append(edited, []string{o.Title, o.Detail})
		case model.OutcomeFailed:
			failed = append(failed, []string{o.Title, o.Err})
		}
	}

	if len(edited) > 0 {
		md.H2("Edited pages")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Page", "Note"},
			Rows:   edited,
		})
		md.PlainText("")
	}
	if len(failed) > 0 {
		md.H2("Failures")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Page", "Error"},
			Rows:   failed,
		})
		md.PlainText("")
	}
}

// WriteDailyStats renders the daily statistics digest.
func (w *MarkdownWriter) WriteDailyStats(stats *model.DailyStats) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Daily activity " + stats.Start.Format("2006-01-02"))
	md.PlainText("")

	peakHour, peakCount := stats.PeakHour()
	quietHour, quietCount := stats.QuietHour()
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total changes", strconv.Itoa(stats.TotalChanges)},
			{"New pages", strconv.Itoa(stats.NewPages)},
			{"Edits", strconv.Itoa(stats.Edits)},
			{"Deleted pages", strconv.Itoa(stats.DeletedPages)},
			{"Blocked users", strconv.Itoa(stats.BlockedUsers)},
			{"Peak hour", strconv.Itoa(peakHour) + "h (" + strconv.Itoa(peakCount) + ")"},
			{"Quiet hour", strconv.Itoa(quietHour) + "h (" + strconv.Itoa(quietCount) + ")"},
		},
	})
	md.PlainText("")

	if top := stats.TopUsers(5); len(top) > 0 {
		md.H2("Most active users")
		md.PlainText("")
		rows := make([][]string, len(top))
		for i, r := range top {
			rows[i] = []string{r.Name, strconv.Itoa(r.Count)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"User", "Changes"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if top := stats.TopPages(5); len(top) > 0 {
		md.H2("Most edited pages")
		md.PlainText("")
		rows := make([][]string, len(top))
		for i, r := range top {
			rows[i] = []string{r.Name, strconv.Itoa(r.Count)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Page", "Changes"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return md.Build()
}
