// Package manifest generates a JSON description of every name a class token
// can use, for editor tooling and documentation.
package manifest

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/yacobolo/atomcss/internal/engine"
	"github.com/yacobolo/atomcss/internal/extension"
	"github.com/yacobolo/atomcss/internal/index"
)

// ID is the extension ID and the key of its options in the style config.
const ID = "manifest"

// DefaultPath is where the manifest is written unless configured.
const DefaultPath = "atomcss.manifest.json"

// Manifest lists names in rank order.
type Manifest struct {
	DefaultLayer string      `json:"default_layer"`
	Layers       []string    `json:"layers"`
	MediaQueries []NamedList `json:"media_queries"`
	Modifiers    []NamedList `json:"modifiers"`
	Atoms        []Atom      `json:"atoms"`
	NamedClasses []string    `json:"named_classes"`
	Aliases      []Alias     `json:"aliases"`
	Chunks       []string    `json:"chunks"`
}

// NamedList is a media query or modifier with its queries or selectors.
type NamedList struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Atom is an atom with its accepted values.
type Atom struct {
	Name     string   `json:"name"`
	Values   []string `json:"values"`
	Keyframe bool     `json:"keyframe,omitempty"`
}

// Alias is an alias with its member classes.
type Alias struct {
	Name     string   `json:"name"`
	Classes  []string `json:"classes"`
	Combined bool     `json:"combined,omitempty"`
}

// Build collects the manifest of a runner.
func Build(rn *engine.Runner) *Manifest {
	ix := rn.Index()
	m := &Manifest{
		DefaultLayer: rn.DefaultLayer(),
		Layers:       nonNil(ix.Names(index.Layer)),
		NamedClasses: nonNil(ix.Names(index.NamedClass)),
		Chunks:       nonNil(ix.Names(index.Chunk)),
		MediaQueries: []NamedList{},
		Modifiers:    []NamedList{},
		Atoms:        []Atom{},
		Aliases:      []Alias{},
	}
	for _, name := range ix.Names(index.MediaQuery) {
		mq, _ := rn.MediaQuery(name)
		m.MediaQueries = append(m.MediaQueries, NamedList{Name: name, Items: mq.Queries})
	}
	for _, name := range ix.Names(index.Modifier) {
		mod, _ := rn.Modifier(name)
		m.Modifiers = append(m.Modifiers, NamedList{Name: name, Items: mod.Selectors})
	}
	for _, name := range ix.Names(index.Atom) {
		m.Atoms = append(m.Atoms, Atom{Name: name, Values: nonNil(ix.Values(name)), Keyframe: ix.AtomIsKeyframe(name)})
	}
	for _, name := range ix.Names(index.Alias) {
		info, _ := ix.Alias(name)
		m.Aliases = append(m.Aliases, Alias{Name: name, Classes: nonNil(info.Classes), Combined: info.Combined})
	}
	return m
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Generator is the generate_code extension. Options:
//
//	path: ui/atomcss.json  # output path, default atomcss.manifest.json
//	compact: true          # no indentation
type Generator struct {
	extension.Base
	path    string
	compact bool
}

// New returns the generator writing to DefaultPath.
func New() *Generator { return &Generator{path: DefaultPath} }

func (g *Generator) ID() string { return ID }

// Path returns the configured output path.
func (g *Generator) Path() string { return g.path }

// ReadOptions reads the output path and formatting.
func (g *Generator) ReadOptions(opts map[string]any) error {
	g.path, g.compact = DefaultPath, false
	for key, raw := range opts {
		switch key {
		case "path":
			s, ok := raw.(string)
			if !ok || s == "" {
				return fmt.Errorf("path must be a non-empty string, got %v", raw)
			}
			g.path = s
		case "compact":
			b, ok := raw.(bool)
			if !ok {
				return fmt.Errorf("compact must be a boolean, got %T", raw)
			}
			g.compact = b
		default:
			return fmt.Errorf("unknown option %q", key)
		}
	}
	return nil
}

// GenerateCode renders the manifest.
func (g *Generator) GenerateCode(rn *engine.Runner) ([]extension.File, error) {
	m := Build(rn)
	var (
		data []byte
		err  error
	)
	if g.compact {
		data, err = json.Marshal(m)
	} else {
		data, err = json.MarshalIndent(m, "", "  ")
	}
	if err != nil {
		return nil, err
	}
	return []extension.File{{Path: g.path, Content: append(data, '\n')}}, nil
}
