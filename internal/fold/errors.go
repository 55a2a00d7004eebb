package fold

import "errors"

var (
	// ErrSourceUnavailable means a pass had no document or no tree to work on.
	// The installed model is left untouched.
	ErrSourceUnavailable = errors.New("fold: source unavailable")

	// ErrInvalidInput is returned by the scanner for malformed lexical input.
	// Extraction stops for the affected range only.
	ErrInvalidInput = errors.New("fold: invalid input")
)
