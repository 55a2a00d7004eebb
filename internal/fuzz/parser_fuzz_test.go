package fuzztests

import (
	"testing"
	"time"

	"jfold/internal/diag"
	"jfold/internal/parser"
	"jfold/internal/source"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// A slower parse points at an infinite loop in error recovery.
const parseTimeout = 5 * time.Second

func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.java", input))

		done := make(chan struct{})
		go func() {
			defer close(done)
			bag := diag.NewBag(128)
			res := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 128})
			if res.Tree == nil {
				t.Errorf("parser returned no tree")
			}
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hung on %d bytes of input", len(input))
		}
	})
}
