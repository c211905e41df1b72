package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ranoc/internal/diagfmt"
	"ranoc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.rano",
	Short: "Parse a rano source file and output its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		colored, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: colored, Context: 2, ShowNotes: true}); err != nil {
			return err
		}
	}
	if !result.Module.IsValid() {
		return fmt.Errorf("%s: syntax error", args[0])
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatASTJSON(out, result.Builder, result.Module)
	}
	return diagfmt.FormatASTPretty(out, result.Builder, result.Module, result.FileSet, result.File.ID)
}
