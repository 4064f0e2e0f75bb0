package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/atomcss"
	"github.com/yacobolo/atomcss/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged style config",
		Long:  `Print the style config after the preset, imports and extensions were merged in.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != string(config.FormatYAML) && format != string(config.FormatJSON) {
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}

			setup, err := buildSetup()
			if err != nil {
				return err
			}
			rn, err := atomcss.Resolve(setup)
			if err != nil {
				return err
			}
			data, err := config.Marshal(rn.Config(), config.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "yaml", "Output format: yaml|json")
	return cmd
}
