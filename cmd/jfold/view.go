package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jfold/internal/driver"
	"jfold/internal/fold"
	"jfold/internal/source"
	"jfold/internal/ui"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [flags] file",
		Short: "Browse a file with its folds in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
	cmd.Flags().String("load", "", "restore collapse state from a snapshot")
	cmd.Flags().String("save", "", "save the collapse state on exit")
	addBulkFlags(cmd)
	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]
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

	session := fold.NewSession(opts.Prefs, res.Model)
	if _, err := applyBulk(cmd, session); err != nil {
		return err
	}
	program := tea.NewProgram(ui.NewViewer(file, session), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		return driver.SaveSnapshot(savePath, driver.NewSnapshot(file, session.Model()))
	}
	return nil
}
