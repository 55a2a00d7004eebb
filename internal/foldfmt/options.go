// Package foldfmt renders fold models, changesets, tokens and diagnostics for
// the command line, as colored text or JSON.
package foldfmt

// Options configure pretty output.
type Options struct {
	Color bool
	// Width bounds the preview column in terminal cells, 0 means unlimited.
	Width int
	// Preview prints the first line of each region.
	Preview bool
}
