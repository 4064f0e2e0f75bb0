package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create .atomcss.yaml and a starter style config",
		Long: `Create the tool settings file .atomcss.yaml and the style config
atomcss.config.yaml in the current directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")

			files := []struct{ path, content string }{
				{defaultToolConfig, defaultSettings},
				{defaultStyleConfig, defaultStyle},
			}
			for _, f := range files {
				if _, err := os.Stat(f.path); err == nil && !force {
					return fmt.Errorf("%s already exists (use --force to overwrite)", f.path)
				}
			}
			for _, f := range files {
				if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", f.path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", f.path)
			}
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite existing files")
	return cmd
}

const defaultSettings = `# atomcss settings
# Precedence: flags > ATOMCSS_* environment > this file > defaults.

style: atomcss.config.yaml
root: .
preset: true
verbose: false
color: auto              # auto | always | never

build:
  include:
    - "**/*.{html,templ,go,jsx,tsx}"
    - "!node_modules/**"
  output: static/atomcss.css
  manifest: false

lint:
  paths:
    - "**/*.{html,templ,go,jsx,tsx}"
    - "!node_modules/**"
  strict: false
  output-format: issues    # issues | summary | full | json
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
  include-generated: false
`

const defaultStyle = `# atomcss style config, merged over the built-in preset.

palette:
  - name: brand
    value: "#4f46e5"

aliases:
  - name: btn
    description: padded brand button
    classes: ["px:$4", "py:$2", "bg:$brand"]

# CSS files whose plain .class rules become named classes. Prefix with
# chunk: to include a file verbatim as a chunk.
imports: []

extensions:
  markup:
    include_generated: false
`
