// Package token defines lexical token kinds for the brace language folded by jfold.
// Invariants:
//   - Token.Text is a copy of the source bytes covered by Token.Span.
//   - Comments are real tokens (four sub-kinds); parsers filter them, scanners keep them.
//   - Contextual words (record, yield, var, sealed, permits) are identifiers;
//     the parser recognizes them by text.
//   - Primitive type names (int, boolean, ...) are identifiers as well.
package token
