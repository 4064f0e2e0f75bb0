package atomcss

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/class"
	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/cssimport"
	"github.com/yacobolo/atomcss/internal/engine"
	"github.com/yacobolo/atomcss/internal/extension"
	"github.com/yacobolo/atomcss/internal/extension/manifest"
	"github.com/yacobolo/atomcss/internal/extension/markup"
	"github.com/yacobolo/atomcss/internal/extension/preset"
	"github.com/yacobolo/atomcss/internal/synth"
)

// Setup selects the style configuration and extensions of a run.
type Setup struct {
	// ConfigPath is the style configuration. Empty means no user
	// configuration, which only works together with the preset.
	ConfigPath string
	// NoPreset leaves out the built-in atoms, palette and media queries.
	NoPreset bool
	// Manifest registers the JSON manifest generator.
	Manifest bool
	// Extensions are registered after the built-in ones.
	Extensions []extension.Extension
	Log        *zap.Logger
}

// BuildOptions configures Build.
type BuildOptions struct {
	Setup

	// Root is the directory sources are searched in and generated files are
	// written relative to. Defaults to ".".
	Root string
	// Include lists source patterns relative to Root. Defaults to
	// DefaultInclude.
	Include []string
	// Output is the stylesheet path, relative to Root unless absolute. Empty
	// keeps the CSS in the result only.
	Output string
}

// BuildResult describes a finished build.
type BuildResult struct {
	CSS     string
	Classes *class.Classes
	Stats   ScanStats
	// Written lists every file written, the stylesheet first.
	Written []string
	Runner  *engine.Runner
}

// session is a loaded configuration with its registry.
type session struct {
	registry *extension.Registry
	markup   *markup.Markup
	runner   *engine.Runner
	log      *zap.Logger
}

// LoadStyleConfig reads the style configuration at path. An empty path
// yields an empty configuration.
func LoadStyleConfig(path string) (*config.Config, error) {
	if path == "" {
		return &config.Config{}, nil
	}
	return config.Load(path)
}

// NewRegistry returns the registry described by s: preset, CSS import,
// markup scanning, the manifest when requested, then s.Extensions.
func NewRegistry(s Setup) (*extension.Registry, *markup.Markup, error) {
	reg := extension.NewRegistry(s.Log)
	mk := markup.New()

	var exts []extension.Extension
	if !s.NoPreset {
		exts = append(exts, preset.New())
	}
	baseDir := ""
	if s.ConfigPath != "" {
		baseDir = filepath.Dir(s.ConfigPath)
	}
	exts = append(exts, cssimport.NewExtension(cssimport.Options{BaseDir: baseDir, InferLayer: true, Log: s.Log}), mk)
	if s.Manifest {
		exts = append(exts, manifest.New())
	}
	exts = append(exts, s.Extensions...)

	for _, ext := range exts {
		if err := reg.Register(ext); err != nil {
			return nil, nil, err
		}
	}
	return reg, mk, nil
}

// Resolve loads the style configuration and merges every extension
// contribution into a runner.
func Resolve(s Setup) (*engine.Runner, error) {
	ss, err := open(s)
	if err != nil {
		return nil, err
	}
	return ss.runner, nil
}

func open(s Setup) (*session, error) {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	s.Log = log

	base, err := LoadStyleConfig(s.ConfigPath)
	if err != nil {
		return nil, err
	}
	reg, mk, err := NewRegistry(s)
	if err != nil {
		return nil, err
	}
	rn, err := reg.Runner(base)
	if err != nil {
		return nil, err
	}
	log.Debug("configuration resolved",
		zap.Strings("extensions", reg.IDs()),
		zap.Int("atoms", len(rn.Config().Atoms)),
		zap.Int("named_classes", len(rn.Config().NamedClasses)),
	)
	return &session{registry: reg, markup: mk, runner: rn, log: log}, nil
}

// Build resolves the configuration, collects the classes used in sources and
// writes the stylesheet and every generated file.
func Build(opts BuildOptions) (*BuildResult, error) {
	ss, err := open(opts.Setup)
	if err != nil {
		return nil, err
	}
	log := ss.log.Named("build")

	root := opts.Root
	if root == "" {
		root = "."
	}
	include := opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	output := opts.Output
	if output != "" && !filepath.IsAbs(output) {
		output = filepath.Join(root, output)
	}

	files, stats, err := walkFiles(root, include)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	for _, p := range stats.EmptyPatterns {
		log.Warn("pattern matched no files", zap.String("pattern", p))
	}
	log.Debug("sources found",
		zap.Int("files", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped),
	)

	classes := class.NewClasses()
	for _, file := range files {
		if output != "" && sameFile(file, output) {
			continue
		}
		data, err := readFile(file)
		if err != nil {
			return nil, err
		}
		if err := ss.registry.ScanCode(ss.runner, file, data, classes); err != nil {
			return nil, err
		}
	}
	log.Debug("classes collected", zap.Int("classes", classes.Len()))

	css, err := synth.New(ss.runner, log).ToCSS(classes)
	if err != nil {
		return nil, fmt.Errorf("synthesize failed: %w", err)
	}

	result := &BuildResult{CSS: css, Classes: classes, Stats: stats, Runner: ss.runner}

	if output != "" {
		if err := writeFile(output, []byte(css)); err != nil {
			return nil, err
		}
		result.Written = append(result.Written, output)
		log.Info("stylesheet written", zap.String("path", output), zap.Int("classes", classes.Len()))
	}

	generated, err := ss.registry.GenerateCode(ss.runner)
	if err != nil {
		return nil, err
	}
	for _, f := range generated {
		path := f.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		if err := writeFile(path, f.Content); err != nil {
			return nil, err
		}
		result.Written = append(result.Written, path)
		log.Info("generated file written", zap.String("path", path))
	}

	return result, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	// #nosec G306 - generated assets are meant to be world readable
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
