package lexer

import (
	"jfold/internal/diag"
	"jfold/internal/source"
)

type Options struct {
	// Reporter may be nil; errors are then only visible as Invalid tokens.
	Reporter diag.Reporter
	// KeepComments makes comments part of the token stream.
	KeepComments bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
