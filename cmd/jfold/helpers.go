package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jfold/internal/config"
	"jfold/internal/diag"
	"jfold/internal/driver"
	"jfold/internal/fold"
	"jfold/internal/foldfmt"
	"jfold/internal/observ"
	"jfold/internal/source"
)

// preferencesFor resolves the preferences for files under dir: --config when
// given, the nearest .jfold.toml otherwise, then the environment.
func preferencesFor(cmd *cobra.Command, dir string) (fold.Preferences, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fold.Preferences{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		prefs, _, err := config.Load(dir)
		return prefs, err
	}
	prefs, err := config.LoadFile(path)
	if err != nil {
		return prefs, err
	}
	return config.ApplyEnv(prefs, os.LookupEnv)
}

func driverOptions(cmd *cobra.Command, dir string) (driver.Options, error) {
	prefs, err := preferencesFor(cmd, dir)
	if err != nil {
		return driver.Options{}, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return driver.Options{Prefs: prefs, MaxDiagnostics: maxDiagnostics}, nil
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func reportDiagnostics(cmd *cobra.Command, fs *source.FileSet, bag *diag.Bag) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	return foldfmt.Diagnostics(cmd.ErrOrStderr(), fs, bag, foldfmt.Options{Color: useColor(cmd, os.Stderr)})
}

// loadModel restores a snapshot for file. A snapshot taken for other content
// is still used; the mismatch is only reported.
func loadModel(cmd *cobra.Command, path string, file *source.File) (*fold.Model, error) {
	if path == "" {
		return nil, nil
	}
	snap, err := driver.LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	model, err := snap.ModelFor(file)
	if errors.Is(err, driver.ErrSnapshotMismatch) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		return model, nil
	}
	return model, err
}

func addBulkFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("collapse-members", false, "collapse every member and inner type")
	cmd.Flags().Bool("collapse-comments", false, "collapse every comment region")
	cmd.Flags().StringSlice("collapse", nil, "collapse the regions owned by these keys")
	cmd.Flags().StringSlice("expand", nil, "expand the regions owned by these keys")
}

// applyBulk runs the bulk collapse triggers selected on the command line.
func applyBulk(cmd *cobra.Command, s *fold.Session) (fold.Changeset, error) {
	var cs fold.Changeset
	merge := func(more fold.Changeset) {
		cs.Updated = append(cs.Updated, more.Updated...)
	}
	if on, _ := cmd.Flags().GetBool("collapse-members"); on {
		merge(s.CollapseMembers())
	}
	if on, _ := cmd.Flags().GetBool("collapse-comments"); on {
		merge(s.CollapseComments())
	}
	keys, err := cmd.Flags().GetStringSlice("collapse")
	if err != nil {
		return cs, fmt.Errorf("failed to get collapse flag: %w", err)
	}
	if len(keys) > 0 {
		merge(s.CollapseElements(keys...))
	}
	keys, err = cmd.Flags().GetStringSlice("expand")
	if err != nil {
		return cs, fmt.Errorf("failed to get expand flag: %w", err)
	}
	if len(keys) > 0 {
		merge(s.ExpandElements(keys...))
	}
	return cs, nil
}

// reportTimings prints r to stderr when --timings is set.
func reportTimings(cmd *cobra.Command, path string, r observ.Report) {
	if on, _ := cmd.Root().PersistentFlags().GetBool("timings"); on && len(r.Phases) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), r.Summary(path))
	}
}
