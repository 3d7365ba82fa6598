// Package model defines the data types shared across vikibot packages.
//
// The types mirror what the MediaWiki API returns (recent changes, user
// contributions, revisions, log events) plus the aggregates vikibot
// computes from them (daily statistics, run reports). None of these are
// persisted by the wiki itself; they only live for the duration of a run,
// except run reports which the journal package stores for history.
package model
