package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 1 << 16
)

var builtinSeeds = []string{
	"",
	"class A {\n}\n",
	"class A {\n    void f() {\n        x();\n    }\n}\n",
	"class A { void f() {\n    x();\n  }\n}\n",
	"// region a\n// region b\n// endregion\n// endregion\n",
	"/** doc\n */\nclass A {\n    /* loose\n       comment */\n}\n",
	"import a.B;\nimport a.C;\nclass A {}\n",
	"class A {\n    void f() {\n        if (a) {\n            b();\n        } else if (c) {\n            d();\n        } else {\n            e();\n        }\n    }\n}\n",
	"class A {\n    void f() {\n        switch (x) {\n            case 1:\n                a();\n            case 2:\n                b();\n        }\n    }\n}\n",
	"class A { /* never closed",
	"class A {\n    void f( {\n        }}}\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".java" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
