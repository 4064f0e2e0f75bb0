package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/atomcss"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "build",
		Aliases: []string{"b"},
		Short:   "Compile the classes used in sources into a stylesheet",
		Long: `Load the style config, run the extensions, scan sources for class names
and write the stylesheet plus any generated files.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd)
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("include", nil, "Source patterns; prefix with ! to exclude")
	f.StringP("output", "o", "atomcss.css", "Stylesheet path, relative to --root")
	f.Bool("manifest", false, "Also write the JSON manifest")
}

func runBuild(cmd *cobra.Command) error {
	opts, err := buildBuildOptions()
	if err != nil {
		return err
	}
	defer func() { _ = opts.Log.Sync() }()

	result, err := atomcss.Build(opts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if getBool("quiet", false) {
		return nil
	}
	out := cmd.OutOrStdout()
	for _, path := range result.Written {
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
	fmt.Fprintf(out, "  Files scanned: %d\n", result.Stats.FilesScanned)
	fmt.Fprintf(out, "  Classes: %d\n", result.Classes.Len())
	return nil
}
