// Package journal provides SQLite-based bookkeeping for bot runs: which
// pages each task has already handled, per-run outcome records for the
// history command, and a small key-value store for cross-run state such
// as content hashes. It also owns the emergency stop marker file that
// halts all editing.
package journal
