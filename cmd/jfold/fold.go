package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jfold/internal/driver"
	"jfold/internal/fold"
	"jfold/internal/foldfmt"
	"jfold/internal/source"
	"jfold/internal/ui"
)

func newFoldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fold [flags] path",
		Short: "Compute the folding regions of a file or directory",
		Long: `Fold parses a source file (or every .java file under a directory) and
prints its folding regions. A snapshot keeps collapse state between runs.`,
		Args: cobra.ExactArgs(1),
		RunE: runFold,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("preview", false, "print the first line of each region")
	cmd.Flags().String("load", "", "restore collapse state from a snapshot")
	cmd.Flags().String("save", "", "save the resulting model as a snapshot")
	cmd.Flags().Int("jobs", 0, "parallel passes for directories (0 = GOMAXPROCS)")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	addBulkFlags(cmd)
	return cmd
}

func runFold(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return runFoldDir(cmd, path, format)
	}

	opts, err := driverOptions(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	file := fs.Get(id)

	loadPath, _ := cmd.Flags().GetString("load")
	model, err := loadModel(cmd, loadPath, file)
	if err != nil {
		return err
	}
	res, err := driver.Fold(cmd.Context(), file, opts, model)
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, fs, res.Bag); err != nil {
		return err
	}
	reportTimings(cmd, file.Path, res.Timings)
	if _, err := applyBulk(cmd, fold.NewSession(opts.Prefs, res.Model)); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = foldfmt.ModelJSON(out, file, res.Model.Entries())
	} else {
		preview, _ := cmd.Flags().GetBool("preview")
		err = foldfmt.Model(out, file, res.Model.Entries(), foldfmt.Options{
			Color:   useColor(cmd, os.Stdout),
			Preview: preview,
		})
	}
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		return driver.SaveSnapshot(savePath, driver.NewSnapshot(file, res.Model))
	}
	return nil
}

func runFoldDir(cmd *cobra.Command, dir, format string) error {
	if p, _ := cmd.Flags().GetString("load"); p != "" {
		return fmt.Errorf("--load works on single files only")
	}
	if p, _ := cmd.Flags().GetString("save"); p != "" {
		return fmt.Errorf("--save works on single files only")
	}
	opts, err := driverOptions(cmd, dir)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, _ := cmd.Flags().GetString("ui")
	withUI, err := progressUI(uiFlag, format)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []driver.Result
	)
	if withUI {
		fs, results, err = foldDirWithUI(cmd.Context(), dir, opts, jobs)
	} else {
		fs, results, err = driver.FoldDir(cmd.Context(), dir, opts, jobs)
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if err := reportDiagnostics(cmd, fs, r.Bag); err != nil {
			return err
		}
		if r.Err != nil {
			failed++
			continue
		}
		reportTimings(cmd, r.Path, r.Timings)
		if _, err := applyBulk(cmd, fold.NewSession(opts.Prefs, r.Model)); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		models := make([]foldfmt.ModelOutput, 0, len(results))
		for _, r := range results {
			if r.Err == nil {
				models = append(models, foldfmt.NewModelOutput(r.File, r.Model.Entries()))
			}
		}
		if err := foldfmt.ModelsJSON(out, models); err != nil {
			return err
		}
	} else if err := printDirPretty(cmd, out, results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func printDirPretty(cmd *cobra.Command, out io.Writer, results []driver.Result) error {
	preview, _ := cmd.Flags().GetBool("preview")
	opts := foldfmt.Options{Color: useColor(cmd, os.Stdout), Preview: preview}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if r.Err != nil {
			fmt.Fprintf(out, "%s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s (%d regions)\n", r.Path, r.Model.Len())
		if err := foldfmt.Model(out, r.File, r.Model.Entries(), opts); err != nil {
			return err
		}
	}
	return nil
}

// progressUI resolves --ui: the progress view only runs for pretty output,
// and in auto mode only when stdout is a terminal.
func progressUI(value, format string) (bool, error) {
	var on bool
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		on = isTerminal(os.Stdout)
	case "on":
		on = true
	case "off":
		on = false
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return on && format == "pretty", nil
}

type foldDirOutcome struct {
	fs      *source.FileSet
	results []driver.Result
	err     error
}

// foldDirWithUI runs FoldDir while a progress view follows its events.
func foldDirWithUI(ctx context.Context, dir string, opts driver.Options, jobs int) (*source.FileSet, []driver.Result, error) {
	files, err := driver.Sources(dir)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan foldDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.FoldDir(ctx, dir, optsCopy, jobs)
		outcomeCh <- foldDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("folding "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// the view may quit early; keep the workers from blocking on the channel
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
