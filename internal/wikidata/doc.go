// Package wikidata provides the minimal Wikidata Query Service client
// used by the gender command: resolving an item by its French label and
// reading the item's sex-or-gender property (P21).
//
// Only SPARQL is used, no Wikibase API: a single SELECT per lookup
// keeps the bot's footprint on the query service small and avoids a
// second authenticated client.
package wikidata
