// Package fuzztests houses Go fuzz harnesses for the lexer, the parser and
// the fold passes. They guard against panics, hangs and broken model
// invariants on arbitrary input.
package fuzztests
