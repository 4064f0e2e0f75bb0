// Package cssimport turns existing stylesheets into configuration: plain
// class rules become named classes and whole files become CSS chunks.
package cssimport

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/extension"
)

// ChunkPrefix marks an import pattern whose files become chunks named after
// the file without its extension.
const ChunkPrefix = "chunk:"

// Options configures Import.
type Options struct {
	// BaseDir resolves relative patterns, normally the style config directory.
	BaseDir string
	// InferLayer assigns classes under layers/{name}/ to layer name when they
	// are not inside an @layer block.
	InferLayer bool
	Log        *zap.Logger
}

// Import expands patterns and returns the partial configuration they
// describe. Files are read in lexical order. Every layer a class is placed
// in is declared as well.
func Import(patterns []string, opts Options) (*config.Config, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("cssimport")

	out := &config.Config{}
	classIdx := make(map[string]int)
	chunkSeen := make(map[string]string)
	layerSeen := make(map[string]bool)

	for _, pattern := range patterns {
		chunk := strings.HasPrefix(pattern, ChunkPrefix)
		files, err := expand(strings.TrimPrefix(pattern, ChunkPrefix), opts.BaseDir)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			log.Warn("import pattern matched no files", zap.String("pattern", pattern))
		}

		for _, file := range files {
			// #nosec G304 - path comes from trusted configuration
			content, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("read file: %w", err)
			}

			if chunk {
				name := chunkName(file)
				if prev, ok := chunkSeen[name]; ok {
					return nil, fmt.Errorf("chunk %q imported from both %s and %s", name, prev, file)
				}
				if err := ValidateChunk(string(content)); err != nil {
					return nil, fmt.Errorf("%s: %w", file, err)
				}
				chunkSeen[name] = file
				out.CSSChunks = append(out.CSSChunks, config.CSSChunk{
					Meta: config.Meta{Name: name},
					CSS:  strings.TrimSpace(string(content)),
				})
				log.Debug("imported chunk", zap.String("file", file), zap.String("name", name))
				continue
			}

			inferred := ""
			if opts.InferLayer {
				inferred = inferLayerFromPath(file, opts.BaseDir)
			}
			rules, err := ParseCSS(string(content), file, inferred, log)
			if err != nil {
				return nil, err
			}
			for _, r := range rules {
				if i, ok := classIdx[r.Name]; ok {
					out.NamedClasses[i].Styles.Extend(r.Styles)
					continue
				}
				if r.Layer != "" && !layerSeen[r.Layer] {
					layerSeen[r.Layer] = true
					out.Layers = append(out.Layers, config.Layer{Meta: config.Meta{Name: r.Layer}})
				}
				classIdx[r.Name] = len(out.NamedClasses)
				out.NamedClasses = append(out.NamedClasses, config.NamedClass{
					Meta:   config.Meta{Name: r.Name},
					Styles: r.Styles,
					Layer:  r.Layer,
				})
			}
			log.Debug("imported classes", zap.String("file", file), zap.Int("classes", len(rules)))
		}
	}
	return out, nil
}

// expand resolves one glob to regular files.
func expand(pattern, baseDir string) ([]string, error) {
	if baseDir != "" && !filepath.IsAbs(pattern) {
		pattern = filepath.Join(baseDir, pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("import pattern %q: %w", pattern, err)
	}
	files := matches[:0]
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func chunkName(file string) string {
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return strings.Join(strings.Fields(name), "-")
}

// ID is the extension ID and the key of its options in the style config.
const ID = "cssimport"

// Extension contributes the style config "imports". Options:
//
//	infer_layers: true  # layers/{name}/ directories set the layer
type Extension struct {
	extension.Base
	opts Options
}

// NewExtension returns the import extension. opts.BaseDir resolves relative
// import patterns.
func NewExtension(opts Options) *Extension {
	return &Extension{opts: opts}
}

func (e *Extension) ID() string { return ID }

// Priority runs imports after the preset.
func (e *Extension) Priority() int { return 200 }

// ReadOptions reads infer_layers.
func (e *Extension) ReadOptions(opts map[string]any) error {
	for key, raw := range opts {
		switch key {
		case "infer_layers":
			b, ok := raw.(bool)
			if !ok {
				return fmt.Errorf("infer_layers must be a boolean, got %T", raw)
			}
			e.opts.InferLayer = b
		default:
			return fmt.Errorf("unknown option %q", key)
		}
	}
	return nil
}

// MutateConfig imports base.Imports.
func (e *Extension) MutateConfig(base *config.Config, _ map[string]any) (*config.Config, error) {
	if len(base.Imports) == 0 {
		return nil, nil
	}
	return Import(base.Imports, e.opts)
}
