// Package diag defines the diagnostic model shared by the lexer and parser.
//
// Producers emit through a Reporter so that storage stays decoupled; BagReporter
// collects into a Bag, which the driver hands to the CLI for rendering. The fold
// engine itself never reports diagnostics: its failures are fail-soft and only
// show up in traces.
package diag
