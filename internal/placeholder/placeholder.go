// Package placeholder resolves symbolic markers embedded in style values.
//
// A marker has the shape __:NS::name:__ and is produced by Marker (or the
// Var, Palette, Modifier and Value helpers) when configuration is authored.
// Normalize replaces markers against the canonical configuration through a
// Resolver.
package placeholder

import (
	"regexp"

	"github.com/yacobolo/atomcss/internal/color"
)

// Namespace is the kind of reference a marker carries.
type Namespace string

const (
	NSVar      Namespace = "var"
	NSPalette  Namespace = "palette"
	NSModifier Namespace = "modifier"
	NSValue    Namespace = "value"
)

// Fallbacks used when a marker does not resolve.
const (
	InvalidVariable = "var(--invalid-variable)"
	FallbackColor   = "rgb(0 0 0)"
)

// Resolver looks names up in the canonical configuration.
type Resolver interface {
	// Variable returns the custom property name ("--fg") of a CSS variable.
	Variable(name string) (string, bool)
	// PaletteColor returns the color literal of a palette entry.
	PaletteColor(name string) (string, bool)
	// ModifierSelector returns the first selector of a modifier.
	ModifierSelector(name string) (string, bool)
}

// Marker formats a marker. It is the only way markers should be produced.
func Marker(ns Namespace, name string) string {
	return "__:" + string(ns) + "::" + name + ":__"
}

// Var references a CSS variable by its configured name.
func Var(name string) string { return Marker(NSVar, name) }

// Palette references a palette color.
func Palette(name string) string { return Marker(NSPalette, name) }

// Modifier references a modifier's selector.
func Modifier(name string) string { return Marker(NSModifier, name) }

// Value stands for the resolved value of the atom that owns the declaration.
func Value() string { return Marker(NSValue, "self") }

var (
	varPattern      = markerPattern(NSVar)
	palettePattern  = markerPattern(NSPalette)
	modifierPattern = markerPattern(NSModifier)
	valuePattern    = markerPattern(NSValue)
)

func markerPattern(ns Namespace) *regexp.Regexp {
	return regexp.MustCompile(`__:` + string(ns) + `::([^:\s]*):__`)
}

// Normalize resolves variable, palette and modifier markers, in that order.
func Normalize(text string, r Resolver) string {
	text = replace(varPattern, text, func(name string) string {
		if v, ok := r.Variable(name); ok {
			return "var(" + v + ")"
		}
		return InvalidVariable
	})
	text = replace(palettePattern, text, func(name string) string {
		lit, ok := r.PaletteColor(name)
		if !ok {
			return FallbackColor
		}
		c, err := color.Parse(lit)
		if err != nil {
			return FallbackColor
		}
		return c.String()
	})
	return replace(modifierPattern, text, func(name string) string {
		sel, _ := r.ModifierSelector(name)
		return sel
	})
}

// NormalizeWithValue replaces value markers with value and then runs
// Normalize. value may itself contain markers.
func NormalizeWithValue(text, value string, r Resolver) string {
	text = valuePattern.ReplaceAllLiteralString(text, value)
	return Normalize(text, r)
}

// References lists the variable and palette names text refers to, in order of
// first appearance.
func References(text string) (vars, palette []string) {
	return names(varPattern, text), names(palettePattern, text)
}

// HasMarkers reports whether text contains any marker.
func HasMarkers(text string) bool {
	return varPattern.MatchString(text) || palettePattern.MatchString(text) ||
		modifierPattern.MatchString(text) || valuePattern.MatchString(text)
}

func replace(re *regexp.Regexp, text string, fn func(name string) string) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return fn(re.FindStringSubmatch(m)[1])
	})
}

func names(re *regexp.Regexp, text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
