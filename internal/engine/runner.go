// Package engine holds the canonical configuration of one compilation run
// together with its name index and by-name lookups.
package engine

import (
	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/index"
	"github.com/yacobolo/atomcss/internal/placeholder"
)

// Runner is the read-only state of one run. It is safe for concurrent reads.
type Runner struct {
	cfg *config.Config
	ix  *index.Index

	layers       map[string]config.Layer
	atoms        map[string]config.Atom
	valueSets    map[string]config.ValueSet
	variables    map[string]config.CSSVariable
	palette      map[string]config.PaletteColor
	keyframes    map[string]config.Keyframe
	namedClasses map[string]config.NamedClass
	aliases      map[string]config.Alias
	chunks       map[string]config.CSSChunk
	mediaQueries map[string]config.MediaQuery
	modifiers    map[string]config.Modifier
}

// New indexes a merged configuration.
func New(cfg *config.Config) *Runner {
	rn := &Runner{
		cfg:          cfg,
		ix:           index.Build(cfg),
		layers:       byName(cfg.Layers, func(v config.Layer) string { return v.Name }),
		atoms:        byName(cfg.Atoms, func(v config.Atom) string { return v.Name }),
		valueSets:    byName(cfg.ValueSets, func(v config.ValueSet) string { return v.Name }),
		variables:    byName(cfg.CSSVariables, func(v config.CSSVariable) string { return v.Name }),
		palette:      byName(cfg.Palette, func(v config.PaletteColor) string { return v.Name }),
		keyframes:    byName(cfg.Keyframes, func(v config.Keyframe) string { return v.Name }),
		namedClasses: byName(cfg.NamedClasses, func(v config.NamedClass) string { return v.Name }),
		aliases:      byName(cfg.Aliases, func(v config.Alias) string { return v.Name }),
		chunks:       byName(cfg.CSSChunks, func(v config.CSSChunk) string { return v.Name }),
		mediaQueries: make(map[string]config.MediaQuery),
		modifiers:    make(map[string]config.Modifier),
	}
	for _, g := range cfg.MediaQueries {
		for _, m := range g.Members {
			if _, ok := rn.mediaQueries[m.Name]; !ok {
				rn.mediaQueries[m.Name] = m
			}
		}
	}
	for _, g := range cfg.Modifiers {
		for _, m := range g.Members {
			if _, ok := rn.modifiers[m.Name]; !ok {
				rn.modifiers[m.Name] = m
			}
		}
	}
	return rn
}

// FromPartials merges partial configurations and builds a Runner.
func FromPartials(base *config.Config, contributions []*config.Config) (*Runner, error) {
	cfg, err := config.Merge(base, contributions)
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

func byName[T any](items []T, name func(T) string) map[string]T {
	m := make(map[string]T, len(items))
	for _, it := range items {
		if _, ok := m[name(it)]; !ok {
			m[name(it)] = it
		}
	}
	return m
}

// Config returns the canonical configuration. Callers must not modify it.
func (rn *Runner) Config() *config.Config { return rn.cfg }

// Index returns the name index.
func (rn *Runner) Index() *index.Index { return rn.ix }

// DefaultLayer returns the layer of classes without a layer token.
func (rn *Runner) DefaultLayer() string { return rn.cfg.DefaultLayer }

func (rn *Runner) Layer(name string) (config.Layer, bool) {
	v, ok := rn.layers[name]
	return v, ok
}

func (rn *Runner) Atom(name string) (config.Atom, bool) {
	v, ok := rn.atoms[name]
	return v, ok
}

func (rn *Runner) ValueSet(name string) (config.ValueSet, bool) {
	v, ok := rn.valueSets[name]
	return v, ok
}

func (rn *Runner) CSSVariable(name string) (config.CSSVariable, bool) {
	v, ok := rn.variables[name]
	return v, ok
}

func (rn *Runner) Palette(name string) (config.PaletteColor, bool) {
	v, ok := rn.palette[name]
	return v, ok
}

func (rn *Runner) Keyframe(name string) (config.Keyframe, bool) {
	v, ok := rn.keyframes[name]
	return v, ok
}

func (rn *Runner) NamedClass(name string) (config.NamedClass, bool) {
	v, ok := rn.namedClasses[name]
	return v, ok
}

func (rn *Runner) Alias(name string) (config.Alias, bool) {
	v, ok := rn.aliases[name]
	return v, ok
}

func (rn *Runner) Chunk(name string) (config.CSSChunk, bool) {
	v, ok := rn.chunks[name]
	return v, ok
}

func (rn *Runner) MediaQuery(name string) (config.MediaQuery, bool) {
	v, ok := rn.mediaQueries[name]
	return v, ok
}

func (rn *Runner) Modifier(name string) (config.Modifier, bool) {
	v, ok := rn.modifiers[name]
	return v, ok
}

// AtomValue resolves the value named value of an atom. Color atoms resolve
// to a variable or palette marker, keyframe atoms to the keyframe name and
// value set atoms to the first set that defines the key.
func (rn *Runner) AtomValue(atom, value string) (config.ValueEntry, bool) {
	a, ok := rn.atoms[atom]
	if !ok {
		return config.ValueEntry{}, false
	}
	switch a.Values.Kind {
	case config.ValuesColors:
		if v, ok := rn.variables[value]; ok && v.IsColor() {
			return config.Lit(placeholder.Var(value)), true
		}
		if _, ok := rn.palette[value]; ok {
			return config.Lit(placeholder.Palette(value)), true
		}
	case config.ValuesKeyframes:
		if _, ok := rn.keyframes[value]; ok {
			return config.Lit(value), true
		}
	default:
		for _, set := range a.Values.Sets {
			if e, ok := rn.valueSets[set].Values.Get(value); ok {
				return e, true
			}
		}
	}
	return config.ValueEntry{}, false
}

// Variable implements placeholder.Resolver.
func (rn *Runner) Variable(name string) (string, bool) {
	v, ok := rn.variables[name]
	return v.Variable, ok
}

// PaletteColor implements placeholder.Resolver.
func (rn *Runner) PaletteColor(name string) (string, bool) {
	p, ok := rn.palette[name]
	return p.Value, ok
}

// ModifierSelector implements placeholder.Resolver.
func (rn *Runner) ModifierSelector(name string) (string, bool) {
	m, ok := rn.modifiers[name]
	if !ok || len(m.Selectors) == 0 {
		return "", false
	}
	return m.Selectors[0], true
}

// Normalize resolves markers in text.
func (rn *Runner) Normalize(text string) string {
	return placeholder.Normalize(text, rn)
}

// NormalizeWithValue resolves markers in text after substituting value.
func (rn *Runner) NormalizeWithValue(text, value string) string {
	return placeholder.NormalizeWithValue(text, value, rn)
}

var _ placeholder.Resolver = (*Runner)(nil)
