package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errLintFailed makes the process exit 1 without printing another message.
var errLintFailed = errors.New("lint failed")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "atomcss",
		Short: "Atomic CSS compiler for class names written in markup",
		Long: `atomcss scans source files for utility class names such as "md:hover:p:$4",
resolves them against a style configuration and writes one stylesheet.`,
		// Without a subcommand, build.
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			return runBuild(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := rootCmd.PersistentFlags()
	f.BoolP("verbose", "v", false, "Enable debug logging")
	f.BoolP("quiet", "q", false, "Suppress all output (exit code only)")
	f.String("color", "auto", "Color output: auto|always|never")
	f.String("config", defaultToolConfig, "Tool settings file")
	f.StringP("style", "s", "", "Style config (default "+defaultStyleConfig+" when present)")
	f.String("root", ".", "Directory source patterns are relative to")
	f.Bool("preset", true, "Include the built-in preset")

	addBuildFlags(rootCmd)

	rootCmd.AddCommand(
		newBuildCmd(),
		newLintCmd(),
		newInitCmd(),
		newConfigCmd(),
		newListCmd(),
		newCompletionCmd(rootCmd),
		newVersionCmd(),
	)
	return rootCmd
}
