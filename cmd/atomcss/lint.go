package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/atomcss"
)

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report class names that do not resolve",
		Long: `Scan sources for class names and report every token that does not resolve
against the style config, plus alias members that do not resolve.
Exits 1 when errors are found, or on any issue with --strict.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLint(cmd)
		},
	}

	f := cmd.Flags()
	f.StringSlice("paths", nil, "Source patterns to scan; prefix with ! to exclude")
	f.Bool("strict", false, "Exit 1 on any issue, warnings included")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (atomcss) suffix on issues")
	f.Bool("include-generated", false, "Also scan templ generated Go files")
	return cmd
}

func runLint(cmd *cobra.Command) error {
	opts, err := buildLintOptions()
	if err != nil {
		return err
	}
	defer func() { _ = opts.Log.Sync() }()

	quiet := getBool("quiet", false)
	format, err := atomcss.DetermineOutputFormat(getString("lint.output-format", ""), quiet)
	if err != nil {
		return err
	}

	result, err := atomcss.Lint(opts)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	if !quiet {
		if err := atomcss.WriteOutput(cmd.OutOrStdout(), result, format, buildReportOptions()); err != nil {
			return err
		}
	}

	found := len(result.Issues) + result.TruncatedCount
	if result.InvalidTokens > 0 || (getBool("lint.strict", false) && found > 0) {
		return errLintFailed
	}
	return nil
}
