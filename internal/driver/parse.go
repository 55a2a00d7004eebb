package driver

import (
	"fortio.org/safecast"

	"jfold/internal/ast"
	"jfold/internal/diag"
	"jfold/internal/lexer"
	"jfold/internal/parser"
	"jfold/internal/source"
	"jfold/internal/token"
)

// Parse builds the tree of file. Diagnostics go to a fresh bag bounded by
// maxDiagnostics (0 means unbounded).
func Parse(file *source.File, maxDiagnostics int) (*ast.Tree, *diag.Bag, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	res := parser.ParseFile(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	return res.Tree, bag, nil
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and returns its tokens, comments included when asked.
func Tokenize(path string, keepComments bool, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(file, lexer.Options{
		Reporter:     diag.BagReporter{Bag: bag},
		KeepComments: keepComments,
	})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
