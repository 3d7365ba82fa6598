// Package main provides the entry point for the vikibot CLI.
//
// vikibot is a collection of maintenance tasks for the French Vikidia
// wiki: statistics pages, stub tagging, category cleanup, typographic
// fixes, mass rollback and an emergency-stop watcher.
//
// Usage:
//
//	vikibot stats
//	vikibot stub --since 24h
//	vikibot rollback <user> --yes
//
// See --help for all available commands and options.
package main

// main is the entry point for vikibot.
func main() {
	Execute()
}
