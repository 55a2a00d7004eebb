package diag

// Severity ranks a diagnostic. A warning leaves the tree as written; an error
// marks a span the parser recovered from, where folds may come out malformed.
type Severity uint8

const (
	SevWarning Severity = iota + 1
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}
