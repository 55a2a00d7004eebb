package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jfold/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [dir]",
		Short: "Print the effective folding preferences",
		Long: `Config resolves the preferences that apply to files under dir (the
current directory by default) and prints them as a .jfold.toml document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	prefs, err := preferencesFor(cmd, dir)
	if err != nil {
		return err
	}
	data, err := config.Encode(prefs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	explicit, _ := cmd.Root().PersistentFlags().GetString("config")
	switch {
	case explicit != "":
		fmt.Fprintf(out, "# from %s\n", explicit)
	default:
		if path, ok, err := config.Find(dir); err == nil && ok {
			fmt.Fprintf(out, "# from %s\n", path)
		} else {
			fmt.Fprintln(out, "# built-in defaults")
		}
	}
	_, err = out.Write(data)
	return err
}
