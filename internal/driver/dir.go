package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"jfold/internal/diag"
	"jfold/internal/source"
	"jfold/internal/trace"
)

// SourceExt is the extension of the files FoldDir picks up.
const SourceExt = ".java"

// Sources returns every source file under dir, sorted.
func Sources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// FoldDir folds every source file under dir with up to jobs passes at once
// (GOMAXPROCS when jobs <= 0). Every pass owns its session and scanner.
// Files that fail to load get a result carrying the error and an I/O
// diagnostic; only cancellation fails the whole run.
func FoldDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []Result, error) {
	files, err := Sources(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	span, ctx := trace.Start(ctx, trace.ScopeDriver, "driver.fold-dir", "")
	defer span.End("")

	// the file set is not safe for concurrent writes, so load up front
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		opts.report(Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = Result{Path: path, Bag: bag, Err: loadErr}
				opts.report(Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			res, err := Fold(gctx, fileSet.Get(fileIDs[path]), opts, nil)
			if err != nil {
				results[i] = Result{Path: path, Err: err}
				return nil
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	span.WithExtra("files", strconv.Itoa(len(files)))
	return fileSet, results, nil
}
