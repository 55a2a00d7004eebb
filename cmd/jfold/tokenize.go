package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jfold/internal/driver"
	"jfold/internal/foldfmt"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file",
		Short: "Tokenize a source file",
		Long:  `Tokenize breaks a source file down into the tokens the folding scanner sees`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("comments", true, "include comment tokens")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	keepComments, err := cmd.Flags().GetBool("comments")
	if err != nil {
		return fmt.Errorf("failed to get comments flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], keepComments, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		if err := foldfmt.Diagnostics(cmd.ErrOrStderr(), result.FileSet, result.Bag, foldfmt.Options{Color: useColor(cmd, os.Stderr)}); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return foldfmt.TokensJSON(out, result.Tokens)
	}
	return foldfmt.Tokens(out, result.Tokens, result.FileSet)
}
