// Package task runs page-rewriting maintenance tasks over lists of page
// titles. A task supplies the rewrite; the runner supplies everything
// around it: fetching, redirect and work-in-progress skipping, saving,
// stop-request checks, and per-page outcome bookkeeping.
package task
