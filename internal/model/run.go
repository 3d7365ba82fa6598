package model

import "time"

// OutcomeAction describes what a maintenance task did with one page.
type OutcomeAction int

// Possible page outcomes, from least to most noteworthy.
const (
	// OutcomeSkipped means the page did not qualify for an edit.
	OutcomeSkipped OutcomeAction = iota

	// OutcomeEdited means the page was changed and saved.
	OutcomeEdited

	// OutcomeFailed means processing the page returned an error.
	OutcomeFailed
)

// String returns the lower-case name of the outcome action.
// The journal stores this string form, so it must stay stable.
func (a OutcomeAction) String() string {
	switch a {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeEdited:
		return "edited"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseOutcomeAction converts the stored string form back to an action.
// Unknown strings map to OutcomeFailed so they surface in history output.
func ParseOutcomeAction(s string) OutcomeAction {
	switch s {
	case "skipped":
		return OutcomeSkipped
	case "edited":
		return OutcomeEdited
	case "failed":
		return OutcomeFailed
	default:
		return OutcomeFailed
	}
}

// PageOutcome records what happened to one page during a run.
type PageOutcome struct {
	// Title is the page title.
	Title string

	// Action is what the task did with the page.
	Action OutcomeAction

	// Detail is a short human-readable reason ("already tagged",
	// "no portal found", ...). Empty for plain edits.
	Detail string

	// Err holds the error text when Action is OutcomeFailed.
	Err string
}

// RunReport collects the outcomes of one maintenance command run.
type RunReport struct {
	// Command is the subcommand that produced the report ("stub", ...).
	Command string

	// Started and Finished bound the run.
	Started  time.Time
	Finished time.Time

	// DryRun reports whether saves were suppressed.
	DryRun bool

	// Outcomes lists per-page results in processing order.
	Outcomes []PageOutcome
}

// NewRunReport creates a report for the named command, stamped now.
func NewRunReport(command string) *RunReport {
	return &RunReport{
		Command: command,
		Started: time.Now().UTC(),
	}
}

// Record appends one page outcome.
func (r *RunReport) Record(outcome PageOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

// Finish stamps the end of the run and returns the report for chaining.
func (r *RunReport) Finish() *RunReport {
	r.Finished = time.Now().UTC()
	return r
}

// Duration returns how long the run took.
func (r *RunReport) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Edited counts pages that were changed and saved.
func (r *RunReport) Edited() int { return r.count(OutcomeEdited) }

// Skipped counts pages that did not qualify for an edit.
func (r *RunReport) Skipped() int { return r.count(OutcomeSkipped) }

// Failed counts pages whose processing returned an error.
func (r *RunReport) Failed() int { return r.count(OutcomeFailed) }

func (r *RunReport) count(action OutcomeAction) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == action {
			n++
		}
	}
	return n
}
