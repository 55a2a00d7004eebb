package fuzztests

import (
	"context"
	"testing"

	"jfold/internal/fold"
	"jfold/internal/parser"
	"jfold/internal/source"
	"jfold/internal/testkit"
)

func FuzzFoldPasses(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.java", input))
		res := parser.ParseFile(file, parser.Options{})
		in := fold.Input{File: file, Tree: res.Tree}
		ctx := context.Background()

		s := fold.NewSession(fold.DefaultPreferences(), nil)
		cs, err := s.Initialize(ctx, in)
		if err != nil {
			t.Fatal(err)
		}
		entries := s.Model().Entries()
		if err := testkit.CheckModel(file, entries); err != nil {
			t.Fatalf("initial pass: %v", err)
		}
		if err := testkit.CheckChangeset(nil, entries, cs); err != nil {
			t.Fatalf("initial changeset: %v", err)
		}

		cs, err = s.OnChange(ctx, in)
		if err != nil {
			t.Fatal(err)
		}
		if !cs.Empty() {
			t.Fatalf("second pass over unchanged input changed the model: %+v", cs)
		}

		legacy := fold.DefaultPreferences()
		legacy.UseStructuralExtraction = false
		s = fold.NewSession(legacy, nil)
		if _, err := s.Initialize(ctx, in); err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckModel(file, s.Model().Entries()); err != nil {
			t.Fatalf("legacy pass: %v", err)
		}
	})
}
