package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jfold/internal/driver"
	"jfold/internal/foldfmt"
	"jfold/internal/source"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [flags] old new",
		Short: "Show how the folding regions change between two revisions",
		Long: `Diff folds the old revision, replays the textual edits to the new one
through the model and prints the resulting changeset. Regions keep their
identity and collapse state across the edit.`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("preview", false, "print the first line of each region")
	cmd.Flags().Bool("patch", false, "print the unified diff of the two revisions first")
	cmd.Flags().String("prior", "", "snapshot of the old revision's model")
	cmd.Flags().String("save", "", "save the new revision's model as a snapshot")
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, filepath.Dir(args[1]))
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	oldID, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	newID, err := fs.Load(args[1])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[1], err)
	}
	oldFile, newFile := fs.Get(oldID), fs.Get(newID)

	priorPath, _ := cmd.Flags().GetString("prior")
	prior, err := loadModel(cmd, priorPath, oldFile)
	if err != nil {
		return err
	}

	res, err := driver.Diff(cmd.Context(), oldFile, newFile, opts, prior)
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, fs, res.New.Bag); err != nil {
		return err
	}
	reportTimings(cmd, oldFile.Path, res.Old.Timings)
	reportTimings(cmd, newFile.Path, res.New.Timings)

	out := cmd.OutOrStdout()
	if showPatch, _ := cmd.Flags().GetBool("patch"); showPatch {
		patch, err := driver.Patch(args[0], args[1], oldFile.Content, newFile.Content)
		if err != nil {
			return err
		}
		fmt.Fprint(out, patch)
	}

	if format == "json" {
		err = foldfmt.ChangesetJSON(out, newFile, res.Changes)
	} else {
		preview, _ := cmd.Flags().GetBool("preview")
		err = foldfmt.Changeset(out, newFile, res.Changes, foldfmt.Options{
			Color:   useColor(cmd, os.Stdout),
			Preview: preview,
		})
	}
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		return driver.SaveSnapshot(savePath, driver.NewSnapshot(newFile, res.Model))
	}
	return nil
}
