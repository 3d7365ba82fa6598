// Package report renders run results for humans: Discord webhook embeds
// for the daily statistics and shutdown notices, and Markdown digests of
// maintenance runs for local files or log pages.
package report
