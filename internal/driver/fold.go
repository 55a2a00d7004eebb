package driver

import (
	"context"
	"fmt"
	"time"

	"jfold/internal/ast"
	"jfold/internal/diag"
	"jfold/internal/fold"
	"jfold/internal/observ"
	"jfold/internal/source"
	"jfold/internal/trace"
)

// Options configure a fold run.
type Options struct {
	Prefs          fold.Preferences
	MaxDiagnostics int
	Progress       ProgressSink // optional
}

// Result is the outcome of folding one document.
type Result struct {
	Path    string
	File    *source.File
	Tree    *ast.Tree
	Bag     *diag.Bag
	Model   *fold.Model
	Changes fold.Changeset
	Timings observ.Report
	Err     error // load or pass failure; the other fields may be partial
}

// FoldPath loads path into fs and folds it from scratch.
func FoldPath(ctx context.Context, fs *source.FileSet, path string, opts Options) (*Result, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return Fold(ctx, fs.Get(id), opts, nil)
}

// Fold parses file and runs a pass over model. A nil or empty model gets the
// initial pass; a restored one gets a change pass so its collapse state
// survives. The tracer and parent span come from ctx.
func Fold(ctx context.Context, file *source.File, opts Options, model *fold.Model) (*Result, error) {
	span, ctx := trace.Start(ctx, trace.ScopeFile, "driver.fold", file.Path)
	defer span.End("")

	started := time.Now()
	timer := observ.NewTimer()
	opts.report(Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	phase := timer.Begin("parse")
	tree, bag, err := Parse(file, opts.MaxDiagnostics)
	timer.End(phase, "")
	if err != nil {
		opts.report(Event{File: file.Path, Stage: StageParse, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}
	opts.report(Event{File: file.Path, Stage: StageFold, Status: StatusWorking})
	s := fold.NewSession(opts.Prefs, model)
	pass := s.Initialize
	if model != nil && model.Len() > 0 {
		pass = s.OnChange
	}
	phase = timer.Begin("fold")
	cs, err := pass(ctx, fold.Input{File: file, Tree: tree})
	timer.End(phase, fmt.Sprintf("+%d ~%d -%d", len(cs.Added), len(cs.Updated), len(cs.Deleted)))
	if err != nil {
		opts.report(Event{File: file.Path, Stage: StageFold, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}
	opts.report(Event{File: file.Path, Stage: StageFold, Status: StatusDone, Entries: s.Model().Len(), Elapsed: time.Since(started)})
	return &Result{
		Path:    file.Path,
		File:    file,
		Tree:    tree,
		Bag:     bag,
		Model:   s.Model(),
		Changes: cs,
		Timings: timer.Report(),
	}, nil
}
