// Package fold computes the foldable regions of a document and keeps an
// installed model of them in sync across recomputations.
//
// A pass walks the syntax tree and the comment tokens between its nodes,
// producing candidate regions. Each candidate is snapped to whole lines and
// then reconciled against the installed Model: entries are matched by owner
// (the stable key of the declaration or statement they belong to) and, for
// ownerless comment and custom regions, by position. Matched entries keep their
// identity and collapse state.
//
// All work happens on the calling goroutine. A Session is not safe for
// concurrent use; independent documents use independent sessions.
package fold
