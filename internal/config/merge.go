package config

import (
	"fmt"
	"slices"
	"sort"
)

// Merge folds the contributions, in order, and then base into one canonical
// configuration. Items are merged by name: an item keeps the position of its
// first occurrence, descriptions are replaced only by non-empty ones, the
// lowest priority value wins and maps and lists are extended. Every category
// is then stably sorted by priority. The inputs are not modified.
func Merge(base *Config, contributions []*Config) (*Config, error) {
	out := Combine(base, contributions)

	sortByRank(out.Layers)
	sortByRank(out.Keyframes)
	sortByRank(out.CSSVariables)
	sortByRank(out.MediaQueries)
	for i := range out.MediaQueries {
		sortByRank(out.MediaQueries[i].Members)
	}
	sortByRank(out.Modifiers)
	for i := range out.Modifiers {
		sortByRank(out.Modifiers[i].Members)
	}
	sortByRank(out.Atoms)
	sortByRank(out.NamedClasses)
	sortByRank(out.Aliases)
	sortByRank(out.ValueSets)
	sortByRank(out.Palette)
	sortByRank(out.CSSChunks)

	if out.DefaultLayer == "" {
		if len(out.Layers) == 0 {
			return nil, &Error{Kind: KindMissingDefaultLayer, Message: "no layers configured"}
		}
		out.DefaultLayer = out.Layers[0].Name
	}
	if !slices.ContainsFunc(out.Layers, func(l Layer) bool { return l.Name == out.DefaultLayer }) {
		return nil, &Error{
			Kind:    KindMissingDefaultLayer,
			Entity:  "layer",
			Name:    out.DefaultLayer,
			Message: "default layer is not a configured layer",
		}
	}
	return out, nil
}

// Combine folds the contributions and then base like Merge, without sorting
// or checking the default layer. It is the partial view of a configuration
// that is still being contributed to.
func Combine(base *Config, contributions []*Config) *Config {
	out := &Config{}
	for _, c := range contributions {
		out.absorb(c)
	}
	out.absorb(base)
	return out
}

func (c *Config) absorb(in *Config) {
	if in == nil {
		return
	}
	if in.DefaultLayer != "" {
		c.DefaultLayer = in.DefaultLayer
	}
	c.Layers = mergeByName(c.Layers, in.Layers)
	c.Keyframes = mergeByName(c.Keyframes, in.Keyframes)
	c.CSSVariables = mergeByName(c.CSSVariables, in.CSSVariables)
	c.MediaQueries = mergeByName(c.MediaQueries, in.MediaQueries)
	c.Modifiers = mergeByName(c.Modifiers, in.Modifiers)
	c.Atoms = mergeByName(c.Atoms, in.Atoms)
	c.NamedClasses = mergeByName(c.NamedClasses, in.NamedClasses)
	c.Aliases = mergeByName(c.Aliases, in.Aliases)
	c.ValueSets = mergeByName(c.ValueSets, in.ValueSets)
	c.Palette = mergeByName(c.Palette, in.Palette)
	c.CSSChunks = mergeByName(c.CSSChunks, in.CSSChunks)

	if in.Options.Charset != "" {
		c.Options.Charset = in.Options.Charset
	}
	if in.Options.ColorComponents != nil {
		v := *in.Options.ColorComponents
		c.Options.ColorComponents = &v
	}

	for id, opts := range in.Extensions {
		if c.Extensions == nil {
			c.Extensions = make(map[string]map[string]any)
		}
		merged := make(map[string]any, len(c.Extensions[id])+len(opts))
		for k, v := range c.Extensions[id] {
			merged[k] = v
		}
		for k, v := range opts {
			merged[k] = v
		}
		c.Extensions[id] = merged
	}
	c.Imports = appendUnique(c.Imports, in.Imports...)
}

// mergeable is implemented by pointers to every item kind Merge handles.
type mergeable[T any] interface {
	*T
	Named
	clone() T
	mergeFrom(in *T)
}

func mergeByName[T any, PT mergeable[T]](dst, src []T) []T {
	pos := make(map[string]int, len(dst))
	for i := range dst {
		pos[PT(&dst[i]).meta().Name] = i
	}
	for i := range src {
		incoming := &src[i]
		name := PT(incoming).meta().Name
		if at, ok := pos[name]; ok {
			PT(&dst[at]).meta().mergeFrom(PT(incoming).meta())
			PT(&dst[at]).mergeFrom(incoming)
			continue
		}
		pos[name] = len(dst)
		dst = append(dst, PT(incoming).clone())
	}
	return dst
}

func sortByRank[T any, PT interface {
	*T
	Named
}](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return PT(&items[i]).meta().Rank() < PT(&items[j]).meta().Rank()
	})
}

// mergeFrom folds the metadata of in. Merging items with different names is
// a programming error.
func (m *Meta) mergeFrom(in *Meta) {
	if m.Name != in.Name {
		panic(fmt.Sprintf("config: cannot merge %q into %q", in.Name, m.Name))
	}
	if in.Description != "" {
		m.Description = in.Description
	}
	m.Priority = minPriority(m.Priority, in.Priority)
}

func minPriority(a, b *int) *int {
	if a == nil && b == nil {
		return nil
	}
	ra, rb := DefaultPriority, DefaultPriority
	if a != nil {
		ra = *a
	}
	if b != nil {
		rb = *b
	}
	return Prio(min(ra, rb))
}

func appendUnique(dst []string, items ...string) []string {
	for _, s := range items {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

func extendNested(dst **Ordered[*Ordered[string]], in *Ordered[*Ordered[string]]) {
	if in.Len() == 0 {
		return
	}
	if *dst == nil {
		*dst = &Ordered[*Ordered[string]]{}
	}
	for _, p := range in.Pairs() {
		if existing, ok := (*dst).Get(p.Key); ok && existing != nil {
			existing.Extend(p.Value)
			continue
		}
		(*dst).Set(p.Key, p.Value.Clone())
	}
}

func extendOrdered[V any](dst **Ordered[V], in *Ordered[V]) {
	if in.Len() == 0 {
		return
	}
	if *dst == nil {
		*dst = &Ordered[V]{}
	}
	(*dst).Extend(in)
}

func cloneNested(m *Ordered[*Ordered[string]]) *Ordered[*Ordered[string]] {
	if m == nil {
		return nil
	}
	out := &Ordered[*Ordered[string]]{}
	for _, p := range m.Pairs() {
		out.Set(p.Key, p.Value.Clone())
	}
	return out
}

func (l *Layer) clone() Layer     { return *l }
func (l *Layer) mergeFrom(*Layer) {}

func (k *Keyframe) clone() Keyframe {
	out := *k
	out.Frames = cloneNested(k.Frames)
	return out
}

func (k *Keyframe) mergeFrom(in *Keyframe) {
	extendNested(&k.Frames, in.Frames)
}

func (v *CSSVariable) clone() CSSVariable {
	out := *v
	out.Overrides = cloneNested(v.Overrides)
	return out
}

func (v *CSSVariable) mergeFrom(in *CSSVariable) {
	if in.Variable != "" {
		v.Variable = in.Variable
	}
	if in.Syntax != "" {
		v.Syntax = in.Syntax
	}
	if in.Value != "" {
		v.Value = in.Value
	}
	if in.Inherits != nil {
		b := *in.Inherits
		v.Inherits = &b
	}
	extendNested(&v.Overrides, in.Overrides)
}

func (q *MediaQuery) clone() MediaQuery {
	out := *q
	out.Queries = slices.Clone(q.Queries)
	return out
}

func (q *MediaQuery) mergeFrom(in *MediaQuery) {
	q.Queries = appendUnique(q.Queries, in.Queries...)
}

func (m *Modifier) clone() Modifier {
	out := *m
	out.Selectors = slices.Clone(m.Selectors)
	return out
}

func (m *Modifier) mergeFrom(in *Modifier) {
	m.Selectors = appendUnique(m.Selectors, in.Selectors...)
}

func (g *MediaQueryGroup) clone() MediaQueryGroup {
	out := *g
	out.Members = mergeByName[MediaQuery](nil, g.Members)
	return out
}

func (g *MediaQueryGroup) mergeFrom(in *MediaQueryGroup) {
	g.Members = mergeByName(g.Members, in.Members)
}

func (g *ModifierGroup) clone() ModifierGroup {
	out := *g
	out.Members = mergeByName[Modifier](nil, g.Members)
	return out
}

func (g *ModifierGroup) mergeFrom(in *ModifierGroup) {
	g.Members = mergeByName(g.Members, in.Members)
}

func (a *Atom) clone() Atom {
	out := *a
	out.Styles = a.Styles.Clone()
	out.Values.Sets = slices.Clone(a.Values.Sets)
	return out
}

// mergeFrom extends styles. Value set lists are extended; any other values
// selector replaces the existing one.
func (a *Atom) mergeFrom(in *Atom) {
	extendOrdered(&a.Styles, in.Styles)
	switch {
	case in.Values.Kind == "":
	case a.Values.Kind == ValuesSets && in.Values.Kind == ValuesSets:
		a.Values.Sets = appendUnique(a.Values.Sets, in.Values.Sets...)
	default:
		a.Values = AtomValues{Kind: in.Values.Kind, Sets: slices.Clone(in.Values.Sets)}
	}
}

func (n *NamedClass) clone() NamedClass {
	out := *n
	out.Styles = n.Styles.Clone()
	return out
}

func (n *NamedClass) mergeFrom(in *NamedClass) {
	extendOrdered(&n.Styles, in.Styles)
	if in.Layer != "" {
		n.Layer = in.Layer
	}
}

func (a *Alias) clone() Alias {
	out := *a
	out.Classes = slices.Clone(a.Classes)
	out.Styles = a.Styles.Clone()
	return out
}

func (a *Alias) mergeFrom(in *Alias) {
	a.Classes = appendUnique(a.Classes, in.Classes...)
	a.Combined = a.Combined || in.Combined
	extendOrdered(&a.Styles, in.Styles)
}

func (s *ValueSet) clone() ValueSet {
	out := *s
	out.Values = s.Values.Clone()
	return out
}

func (s *ValueSet) mergeFrom(in *ValueSet) {
	extendOrdered(&s.Values, in.Values)
}

func (p *PaletteColor) clone() PaletteColor { return *p }

func (p *PaletteColor) mergeFrom(in *PaletteColor) {
	if in.Value != "" {
		p.Value = in.Value
	}
}

func (c *CSSChunk) clone() CSSChunk { return *c }

func (c *CSSChunk) mergeFrom(in *CSSChunk) {
	if in.CSS != "" {
		c.CSS = in.CSS
	}
}
