// Package wikitext implements the MediaWiki markup transformations used
// by the maintenance commands: template extraction and removal, category
// link handling, stub-notice insertion, statistics page sections, and
// block-aware typographic fixes.
//
// Everything in this package is a pure function from wikitext to
// wikitext. Network access and page persistence live in the wiki
// package; keeping transforms side-effect free makes them directly
// testable against fixture markup.
//
// The invariant shared by all transforms is that the result must remain
// valid MediaWiki markup: transforms never rewrite text inside
// templates, tables, HTML comments or bracketed links unless that block
// is itself the target of the operation.
package wikitext
