// Package config holds the style configuration model, its YAML/JSON
// persistence, validation and the merge pipeline that folds extension
// contributions into one canonical configuration.
package config

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DefaultPriority is used for items that do not set one.
const DefaultPriority = 500

// Meta is embedded by every named, prioritized item. Lower priority values
// mean higher precedence.
type Meta struct {
	Name        string `yaml:"name" json:"name" validate:"required,itemname"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Priority    *int   `yaml:"priority,omitempty" json:"priority,omitempty" validate:"omitempty,min=0,max=1000"`
}

// Rank returns the effective priority.
func (m Meta) Rank() int {
	if m.Priority == nil {
		return DefaultPriority
	}
	return *m.Priority
}

// ItemName returns the item's name.
func (m Meta) ItemName() string {
	return m.Name
}

func (m *Meta) meta() *Meta {
	return m
}

// Named is implemented by pointers to every configured item.
type Named interface {
	meta() *Meta
}

// Prio returns a pointer to p, for building items in code.
func Prio(p int) *int {
	return &p
}

// Str returns a pointer to s, for atom styles with a literal value.
func Str(s string) *string {
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Layer is a CSS cascade layer.
type Layer struct {
	Meta `yaml:",inline"`
}

// ValuesKind selects where an atom takes its values from.
type ValuesKind string

const (
	ValuesSets      ValuesKind = "sets"
	ValuesColors    ValuesKind = "colors"
	ValuesKeyframes ValuesKind = "keyframes"
)

// AtomValues is either a list of value set names or one of the scalars
// "colors" and "keyframes".
type AtomValues struct {
	Kind ValuesKind
	Sets []string
}

// UnmarshalYAML accepts a sequence of set names or a scalar kind.
func (v *AtomValues) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch ValuesKind(node.Value) {
		case ValuesColors, ValuesKeyframes:
			v.Kind = ValuesKind(node.Value)
		default:
			v.Kind = ValuesSets
			v.Sets = []string{node.Value}
		}
		return nil
	case yaml.SequenceNode:
		v.Kind = ValuesSets
		return node.Decode(&v.Sets)
	}
	return fmt.Errorf("line %d: values must be a list of value sets, %q or %q", node.Line, ValuesColors, ValuesKeyframes)
}

// MarshalYAML mirrors UnmarshalYAML.
func (v AtomValues) MarshalYAML() (any, error) {
	if v.Kind == ValuesColors || v.Kind == ValuesKeyframes {
		return string(v.Kind), nil
	}
	return v.Sets, nil
}

// MarshalJSON mirrors MarshalYAML.
func (v AtomValues) MarshalJSON() ([]byte, error) {
	if v.Kind == ValuesColors || v.Kind == ValuesKeyframes {
		return json.Marshal(string(v.Kind))
	}
	if v.Kind == "" {
		return []byte("null"), nil
	}
	if v.Sets == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Sets)
}

// Atom is a single purpose utility. A nil style value is filled from the
// resolved value set entry.
type Atom struct {
	Meta   `yaml:",inline"`
	Styles *Ordered[*string] `yaml:"styles,omitempty" json:"styles,omitempty"`
	Values AtomValues        `yaml:"values,omitempty" json:"values"`
}

// ValueEntry is one value set entry: a literal, or a property to value map.
type ValueEntry struct {
	Literal    string
	Properties *Ordered[string]
}

// Lit builds a literal ValueEntry.
func Lit(s string) ValueEntry {
	return ValueEntry{Literal: s}
}

// IsObject reports whether the entry carries a property map.
func (e ValueEntry) IsObject() bool {
	return e.Properties != nil
}

// UnmarshalYAML accepts a scalar or a mapping.
func (e *ValueEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		e.Properties = &Ordered[string]{}
		return e.Properties.UnmarshalYAML(node)
	}
	return node.Decode(&e.Literal)
}

// MarshalYAML mirrors UnmarshalYAML.
func (e ValueEntry) MarshalYAML() (any, error) {
	if e.Properties != nil {
		return e.Properties.MarshalYAML()
	}
	return e.Literal, nil
}

// MarshalJSON mirrors MarshalYAML.
func (e ValueEntry) MarshalJSON() ([]byte, error) {
	if e.Properties != nil {
		return e.Properties.MarshalJSON()
	}
	return json.Marshal(e.Literal)
}

// ValueSet is a named table of value keys.
type ValueSet struct {
	Meta   `yaml:",inline"`
	Values *Ordered[ValueEntry] `yaml:"values,omitempty" json:"values,omitempty"`
}

// Syntax is the @property syntax descriptor of a CSS variable.
type Syntax string

const (
	SyntaxAny              Syntax = "*"
	SyntaxNumber           Syntax = "<number>"
	SyntaxInteger          Syntax = "<integer>"
	SyntaxLength           Syntax = "<length>"
	SyntaxPercentage       Syntax = "<percentage>"
	SyntaxLengthPercentage Syntax = "<length-percentage>"
	SyntaxColor            Syntax = "<color>"
	SyntaxAngle            Syntax = "<angle>"
	SyntaxTime             Syntax = "<time>"
)

// DefaultOverride is the media query key of overrides that apply everywhere.
const DefaultOverride = "default"

// CSSVariable is a custom property emitted as an @property rule.
type CSSVariable struct {
	Meta     `yaml:",inline"`
	Variable string `yaml:"variable" json:"variable" validate:"required,startswith=--"`
	Syntax   Syntax `yaml:"syntax,omitempty" json:"syntax,omitempty" validate:"omitempty,oneof=* <number> <integer> <length> <percentage> <length-percentage> <color> <angle> <time>"`
	Value    string `yaml:"value" json:"value"`
	Inherits *bool  `yaml:"inherits,omitempty" json:"inherits,omitempty"`
	// Overrides maps a media query name (or "default") to selector -> value.
	Overrides *Ordered[*Ordered[string]] `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// EffectiveSyntax returns the syntax, defaulting to "*".
func (v CSSVariable) EffectiveSyntax() Syntax {
	if v.Syntax == "" {
		return SyntaxAny
	}
	return v.Syntax
}

// IsColor reports whether the variable holds a color.
func (v CSSVariable) IsColor() bool {
	return v.Syntax == SyntaxColor
}

// Inherited returns the inherits flag, defaulting to true.
func (v CSSVariable) Inherited() bool {
	return v.Inherits == nil || *v.Inherits
}

// MediaQuery is one named query; several query strings are joined with ", ".
type MediaQuery struct {
	Meta    `yaml:",inline"`
	Queries []string `yaml:"queries" json:"queries" validate:"required,min=1"`
}

// Modifier is a named selector transformation. "&" stands for the class
// selector; selectors without "&" are appended to it.
type Modifier struct {
	Meta      `yaml:",inline"`
	Selectors []string `yaml:"selectors" json:"selectors" validate:"required,min=1"`
}

// MediaQueryGroup groups media queries that merge together.
type MediaQueryGroup struct {
	Meta    `yaml:",inline"`
	Members []MediaQuery `yaml:"members" json:"members" validate:"dive"`
}

// ModifierGroup groups modifiers that merge together.
type ModifierGroup struct {
	Meta    `yaml:",inline"`
	Members []Modifier `yaml:"members" json:"members" validate:"dive"`
}

// NamedClass is a literal class with fixed declarations.
type NamedClass struct {
	Meta   `yaml:",inline"`
	Styles *Ordered[string] `yaml:"styles,omitempty" json:"styles,omitempty"`
	// Layer optionally pins the class to a layer when it is used without a
	// layer token. Set by CSS imports.
	Layer string `yaml:"layer,omitempty" json:"layer,omitempty"`
}

// Alias expands to other class strings. A combined alias is emitted as one
// class carrying the alias name and its own styles.
type Alias struct {
	Meta     `yaml:",inline"`
	Classes  []string         `yaml:"classes" json:"classes"`
	Combined bool             `yaml:"combined,omitempty" json:"combined,omitempty"`
	Styles   *Ordered[string] `yaml:"styles,omitempty" json:"styles,omitempty"`
}

// PaletteColor is a named color literal.
type PaletteColor struct {
	Meta  `yaml:",inline"`
	Value string `yaml:"value" json:"value" validate:"required"`
}

// Keyframe is an @keyframes rule: frame selector -> declarations.
type Keyframe struct {
	Meta   `yaml:",inline"`
	Frames *Ordered[*Ordered[string]] `yaml:"frames,omitempty" json:"frames,omitempty"`
}

// CSSChunk is raw CSS text emitted as is (after placeholder substitution).
type CSSChunk struct {
	Meta `yaml:",inline"`
	CSS  string `yaml:"css" json:"css"`
}

// Options are scalar switches of the generated stylesheet.
type Options struct {
	Charset         string `yaml:"charset,omitempty" json:"charset,omitempty"`
	ColorComponents *bool  `yaml:"color_components,omitempty" json:"color_components,omitempty"`
}

// EffectiveCharset returns the charset, defaulting to UTF-8.
func (o Options) EffectiveCharset() string {
	if o.Charset == "" {
		return "UTF-8"
	}
	return o.Charset
}

// ComponentsEnabled reports whether color variables expand into h/s/l/a parts.
func (o Options) ComponentsEnabled() bool {
	return o.ColorComponents != nil && *o.ColorComponents
}

// Config is both the partial configuration contributed by extensions and the
// canonical configuration produced by Merge.
type Config struct {
	DefaultLayer string            `yaml:"default_layer,omitempty" json:"default_layer,omitempty"`
	Layers       []Layer           `yaml:"layers,omitempty" json:"layers,omitempty" validate:"dive"`
	Keyframes    []Keyframe        `yaml:"keyframes,omitempty" json:"keyframes,omitempty" validate:"dive"`
	CSSVariables []CSSVariable     `yaml:"css_variables,omitempty" json:"css_variables,omitempty" validate:"dive"`
	MediaQueries []MediaQueryGroup `yaml:"media_queries,omitempty" json:"media_queries,omitempty" validate:"dive"`
	Modifiers    []ModifierGroup   `yaml:"modifiers,omitempty" json:"modifiers,omitempty" validate:"dive"`
	Atoms        []Atom            `yaml:"atoms,omitempty" json:"atoms,omitempty" validate:"dive"`
	NamedClasses []NamedClass      `yaml:"named_classes,omitempty" json:"named_classes,omitempty" validate:"dive"`
	Aliases      []Alias           `yaml:"aliases,omitempty" json:"aliases,omitempty" validate:"dive"`
	ValueSets    []ValueSet        `yaml:"value_sets,omitempty" json:"value_sets,omitempty" validate:"dive"`
	Palette      []PaletteColor    `yaml:"palette,omitempty" json:"palette,omitempty" validate:"dive"`
	CSSChunks    []CSSChunk        `yaml:"css_chunks,omitempty" json:"css_chunks,omitempty" validate:"dive"`
	Options      Options           `yaml:"options,omitempty" json:"options"`

	// Extensions carries per-extension options keyed by extension id.
	Extensions map[string]map[string]any `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	// Imports lists CSS file globs turned into named classes and chunks.
	Imports []string `yaml:"imports,omitempty" json:"imports,omitempty"`
}
