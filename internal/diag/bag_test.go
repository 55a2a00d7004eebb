package diag

import (
	"testing"

	"jfold/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(2)
	r := BagReporter{Bag: b}
	r.Report(SynUnexpectedToken, SevWarning, source.Span{Start: 9, End: 10}, "late", nil)
	r.Report(LexUnknownChar, SevError, source.Span{Start: 1, End: 2}, "early", nil)
	r.Report(LexUnknownChar, SevError, source.Span{Start: 0, End: 1}, "dropped", nil)

	if b.Len() != 2 {
		t.Fatalf("expected limit of 2 diagnostics, got %d", b.Len())
	}
	b.Sort()
	if got := b.Items()[0].Message; got != "early" {
		t.Fatalf("expected earliest span first, got %q", got)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}
}

func TestCodeID(t *testing.T) {
	if got := LexUnterminatedBlockComment.ID(); got != "LEX1003" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := SynExpectBody.ID(); got != "SYN2006" {
		t.Fatalf("unexpected id %q", got)
	}
}

func TestSeverityString(t *testing.T) {
	for sev, want := range map[Severity]string{SevWarning: "warning", SevError: "error", 0: "unknown"} {
		if got := sev.String(); got != want {
			t.Fatalf("severity %d: got %q, want %q", sev, got, want)
		}
	}
}
