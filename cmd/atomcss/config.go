package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/atomcss"
	"github.com/yacobolo/atomcss/internal/report"
)

const (
	defaultToolConfig  = ".atomcss.yaml"
	defaultStyleConfig = "atomcss.config.yaml"
	envPrefix          = "ATOMCSS_"
)

var k = koanf.New(".")

// flagKeys maps command flags to their config keys. Flags not listed use
// their own name.
var flagKeys = map[string]string{
	"include":               "build.include",
	"output":                "build.output",
	"manifest":              "build.manifest",
	"paths":                 "lint.paths",
	"strict":                "lint.strict",
	"output-format":         "lint.output-format",
	"max-issues-per-linter": "lint.max-issues-per-linter",
	"max-same-issues":       "lint.max-same-issues",
	"print-lines":           "lint.print-lines",
	"print-linter-name":     "lint.print-linter-name",
	"include-generated":     "lint.include-generated",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags.
func loadConfig(cmd *cobra.Command) error {
	k = koanf.New(".")

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultToolConfig
	}
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags that were explicitly set, so that their defaults do not
	// shadow file and env values.
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		return flagKey(f.Name), posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}
	return nil
}

func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return name
}

// loadConfigFromPath loads the settings file and ATOMCSS_* variables.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}
	return nil
}

// envKey maps ATOMCSS_LINT_MAX_SAME_ISSUES to lint.max-same-issues and
// ATOMCSS_VERBOSE to verbose.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range []string{"build", "lint"} {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// stylePath returns the style config to load. A missing default file means
// no user configuration.
func stylePath() (string, error) {
	path := getString("style", "")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("style config: %w", err)
		}
		return path, nil
	}
	if _, err := os.Stat(defaultStyleConfig); err == nil {
		return defaultStyleConfig, nil
	}
	return "", nil
}

// buildSetup constructs the shared run setup from koanf state.
func buildSetup() (atomcss.Setup, error) {
	path, err := stylePath()
	if err != nil {
		return atomcss.Setup{}, err
	}
	log, err := newLogger(getBool("verbose", false), getBool("quiet", false))
	if err != nil {
		return atomcss.Setup{}, err
	}
	return atomcss.Setup{
		ConfigPath: path,
		NoPreset:   !getBool("preset", true),
		Manifest:   getBool("build.manifest", false),
		Log:        log,
	}, nil
}

// buildBuildOptions constructs the library's BuildOptions from koanf state.
func buildBuildOptions() (atomcss.BuildOptions, error) {
	setup, err := buildSetup()
	if err != nil {
		return atomcss.BuildOptions{}, err
	}
	include := k.Strings("build.include")
	if len(include) == 0 {
		include = atomcss.DefaultInclude
	}
	return atomcss.BuildOptions{
		Setup:   setup,
		Root:    getString("root", "."),
		Include: include,
		Output:  getString("build.output", "atomcss.css"),
	}, nil
}

// buildLintOptions constructs the library's LintOptions from koanf state.
func buildLintOptions() (atomcss.LintOptions, error) {
	setup, err := buildSetup()
	if err != nil {
		return atomcss.LintOptions{}, err
	}
	paths := k.Strings("lint.paths")
	if len(paths) == 0 {
		paths = atomcss.DefaultInclude
	}
	return atomcss.LintOptions{
		Setup:            setup,
		Root:             getString("root", "."),
		Paths:            paths,
		IncludeGenerated: getBool("lint.include-generated", false),
		Limits: report.Limits{
			MaxIssuesPerLinter: getInt("lint.max-issues-per-linter", 0),
			MaxSameIssues:      getInt("lint.max-same-issues", 0),
		},
	}, nil
}

// buildReportOptions constructs the reporter options from koanf state.
func buildReportOptions() report.Options {
	return report.Options{
		Color:           getString("color", report.ColorAuto),
		PrintLines:      getBool("lint.print-lines", true),
		PrintLinterName: getBool("lint.print-linter-name", true),
	}
}

func getString(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if k.Exists(key) {
		return k.Int(key)
	}
	return defaultVal
}
