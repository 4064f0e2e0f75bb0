// Package extension defines the contract that contributes configuration,
// generated files and scanned classes to a build, and the registry that
// invokes extensions phase by phase.
package extension

import (
	"github.com/yacobolo/atomcss/internal/class"
	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/engine"
)

// DefaultPriority is used by extensions that have no ordering preference.
const DefaultPriority = config.DefaultPriority

// File is a generated output file. Path is relative to the build output
// directory unless absolute.
type File struct {
	Path    string
	Content []byte
}

// Extension contributes to one build. All methods are called from a single
// goroutine in registry order.
//
//   - ReadOptions receives the extension's entry of the style config
//     "extensions" map (nil when absent) and may reject it.
//   - MutateConfig returns a partial configuration merged under the base.
//     Returning nil contributes nothing.
//   - GenerateCode runs after the runner is built.
//   - ScanCode extracts classes from one source file.
type Extension interface {
	ID() string
	Priority() int
	ReadOptions(opts map[string]any) error
	MutateConfig(base *config.Config, opts map[string]any) (*config.Config, error)
	GenerateCode(rn *engine.Runner) ([]File, error)
	ScanCode(rn *engine.Runner, path string, data []byte) ([]class.Class, error)
}

// Base implements every hook as a no-op. Embed it and override what is needed.
type Base struct{}

func (Base) Priority() int { return DefaultPriority }

func (Base) ReadOptions(map[string]any) error { return nil }

func (Base) GenerateCode(*engine.Runner) ([]File, error) { return nil, nil }

func (Base) MutateConfig(*config.Config, map[string]any) (*config.Config, error) {
	return nil, nil
}

func (Base) ScanCode(*engine.Runner, string, []byte) ([]class.Class, error) {
	return nil, nil
}
