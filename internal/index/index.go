// Package index builds the name lookup tables of a canonical configuration.
//
// Every category gets an ordered, duplicate free list of names. A name's
// position is its rank; ranks are both the membership test used while
// tokenizing class strings and the sort key of a class Score. An Index is
// built once per run and never mutated.
package index

import (
	"github.com/yacobolo/atomcss/internal/config"
)

// Category is a kind of class token.
type Category int

const (
	Layer Category = iota
	Chunk
	MediaQuery
	Modifier
	Atom
	NamedClass
	Alias

	numCategories
)

// Categories lists every category in score order.
var Categories = []Category{Layer, Chunk, MediaQuery, Modifier, Atom, NamedClass, Alias}

func (c Category) String() string {
	switch c {
	case Layer:
		return "layer"
	case Chunk:
		return "chunk"
	case MediaQuery:
		return "media-query"
	case Modifier:
		return "modifier"
	case Atom:
		return "atom"
	case NamedClass:
		return "named-class"
	case Alias:
		return "alias"
	}
	return "unknown"
}

// NameSet is an insertion ordered set of names with O(1) rank lookup.
type NameSet struct {
	names []string
	pos   map[string]int
}

func newNameSet(capacity int) *NameSet {
	return &NameSet{names: make([]string, 0, capacity), pos: make(map[string]int, capacity)}
}

// add keeps the first occurrence of a name.
func (s *NameSet) add(name string) {
	if _, ok := s.pos[name]; ok {
		return
	}
	s.pos[name] = len(s.names)
	s.names = append(s.names, name)
}

// Rank returns the 0-based position of name.
func (s *NameSet) Rank(name string) (int, bool) {
	if s == nil {
		return 0, false
	}
	r, ok := s.pos[name]
	return r, ok
}

// Names returns a copy of the names in rank order.
func (s *NameSet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Len returns the number of names.
func (s *NameSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// AliasInfo is what the tokenizer needs to expand an alias.
type AliasInfo struct {
	Classes  []string
	Combined bool
}

// Index holds the name sets of one canonical configuration.
type Index struct {
	sets          [numCategories]*NameSet
	values        map[string]*NameSet
	keyframeAtoms map[string]bool
	aliases       map[string]AliasInfo
}

// Build derives every lookup table from a merged configuration.
func Build(cfg *config.Config) *Index {
	ix := &Index{
		values:        make(map[string]*NameSet, len(cfg.Atoms)),
		keyframeAtoms: make(map[string]bool),
		aliases:       make(map[string]AliasInfo, len(cfg.Aliases)),
	}

	ix.sets[Layer] = namesOf(cfg.Layers, func(l config.Layer) string { return l.Name })
	ix.sets[Chunk] = namesOf(cfg.CSSChunks, func(c config.CSSChunk) string { return c.Name })

	mqs := newNameSet(0)
	for _, g := range cfg.MediaQueries {
		for _, m := range g.Members {
			mqs.add(m.Name)
		}
	}
	ix.sets[MediaQuery] = mqs

	mods := newNameSet(0)
	for _, g := range cfg.Modifiers {
		for _, m := range g.Members {
			mods.add(m.Name)
		}
	}
	ix.sets[Modifier] = mods

	ix.sets[Atom] = namesOf(cfg.Atoms, func(a config.Atom) string { return a.Name })
	ix.sets[NamedClass] = namesOf(cfg.NamedClasses, func(n config.NamedClass) string { return n.Name })
	ix.sets[Alias] = namesOf(cfg.Aliases, func(a config.Alias) string { return a.Name })

	for _, a := range cfg.Aliases {
		if _, ok := ix.aliases[a.Name]; !ok {
			ix.aliases[a.Name] = AliasInfo{Classes: append([]string(nil), a.Classes...), Combined: a.Combined}
		}
	}

	sets := make(map[string]config.ValueSet, len(cfg.ValueSets))
	for _, vs := range cfg.ValueSets {
		if _, ok := sets[vs.Name]; !ok {
			sets[vs.Name] = vs
		}
	}

	for _, a := range cfg.Atoms {
		if _, ok := ix.values[a.Name]; ok {
			continue
		}
		values := newNameSet(0)
		switch a.Values.Kind {
		case config.ValuesColors:
			for _, v := range cfg.CSSVariables {
				if v.IsColor() {
					values.add(v.Name)
				}
			}
			for _, p := range cfg.Palette {
				values.add(p.Name)
			}
		case config.ValuesKeyframes:
			ix.keyframeAtoms[a.Name] = true
			for _, k := range cfg.Keyframes {
				values.add(k.Name)
			}
		default:
			for _, name := range a.Values.Sets {
				for _, key := range sets[name].Values.Keys() {
					values.add(key)
				}
			}
		}
		ix.values[a.Name] = values
	}

	return ix
}

func namesOf[T any](items []T, name func(T) string) *NameSet {
	s := newNameSet(len(items))
	for _, it := range items {
		s.add(name(it))
	}
	return s
}

// Rank returns the position of name within its category.
func (ix *Index) Rank(c Category, name string) (int, bool) {
	if c < 0 || c >= numCategories {
		return 0, false
	}
	return ix.sets[c].Rank(name)
}

// Has reports whether name is known in the category.
func (ix *Index) Has(c Category, name string) bool {
	_, ok := ix.Rank(c, name)
	return ok
}

// ValueRank returns the position of value among the values of atom.
func (ix *Index) ValueRank(atom, value string) (int, bool) {
	return ix.values[atom].Rank(value)
}

// AtomIsKeyframe reports whether the atom takes keyframe names as values.
func (ix *Index) AtomIsKeyframe(name string) bool {
	return ix.keyframeAtoms[name]
}

// Names returns the names of a category in rank order.
func (ix *Index) Names(c Category) []string {
	if c < 0 || c >= numCategories {
		return nil
	}
	return ix.sets[c].Names()
}

// Values returns the value names of an atom in rank order.
func (ix *Index) Values(atom string) []string {
	return ix.values[atom].Names()
}

// Alias returns the expansion of an alias.
func (ix *Index) Alias(name string) (AliasInfo, bool) {
	a, ok := ix.aliases[name]
	return a, ok
}
