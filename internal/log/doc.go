// Package log provides a redacting slog handler for vikibot.
//
// Bot runs log API parameters and notification targets, and both can
// carry secrets: the bot account password travels in login parameters
// and a Discord webhook URL is a bearer credential in itself. The
// RedactHandler masks these before any record reaches the underlying
// handler, so verbose logging stays safe to paste into a bug report.
package log
