// Package tabular recovers the one table that matters from the raw markup
// of a sports-statistics page and flattens its header into unique,
// machine-usable field names.
//
// Source pages are not built for programmatic consumption: several candidate
// tables share one page, the interesting one is sometimes shipped inside an
// HTML comment for client-side assembly, and headers are often two-level
// (a section label spanning several columns over a metric label), with the
// same metric name reused across sections.
//
// The package is a set of stateless, composable functions over in-memory
// strings and grids. Nothing here does I/O, retries, or logging: a missing
// table is a value (nil candidate, empty Table), and a table that fails to
// parse simply does not exist. Reporting unexpectedly empty results is the
// caller's concern.
//
// Usage:
//
//	tbl := tabular.Biggest(pageHTML)                 // schedule pages
//	standings, stats := tabular.Classify(pageHTML)   // season pages
package tabular

// Biggest extracts the primary table of a document: the largest visible
// table unless a suspiciously small one is shadowed by a larger
// comment-hidden table, flattened to unique field names. Returns an empty
// Table when the document has no usable table at all.
func Biggest(document string) Table {
	return Flatten(Primary(Visible(document), Hidden(document)))
}
