// Package class turns class-name strings such as "md:hover:p:$4" into
// immutable, totally ordered Class descriptors and keeps them in a
// deduplicating sorted collection.
package class

import (
	"strconv"
	"strings"
)

// Argument is a bracketed free form token: "[37px]" has only a Value,
// "[color=red]" has a Key and a Value.
type Argument struct {
	Key   string
	Value string
}

// IsKeyValue reports whether the argument has the key=value form.
func (a Argument) IsKeyValue() bool {
	return a.Key != ""
}

func (a Argument) String() string {
	if a.Key != "" {
		return a.Key + "=" + a.Value
	}
	return a.Value
}

// Class is the resolved descriptor of one class-name string. Empty strings
// mean "slot not set". Two classes are the same class iff their Selector
// is equal.
type Class struct {
	raw          string
	layer        string
	chunk        string
	mediaQueries []string
	modifiers    []string
	atom         string
	value        string
	namedClass   string
	alias        string
	argument     *Argument
	keyframe     bool
	score        Score
}

// Raw returns the class-name string the class was built from.
func (c Class) Raw() string { return c.raw }

// Layer returns the explicit layer, or "" for the default layer.
func (c Class) Layer() string { return c.layer }

// Chunk returns the CSS chunk name.
func (c Class) Chunk() string { return c.chunk }

// MediaQueries returns the media query names in token order.
func (c Class) MediaQueries() []string { return append([]string(nil), c.mediaQueries...) }

// Modifiers returns the modifier names in token order.
func (c Class) Modifiers() []string { return append([]string(nil), c.modifiers...) }

func (c Class) Atom() string       { return c.atom }
func (c Class) Value() string      { return c.value }
func (c Class) NamedClass() string { return c.namedClass }
func (c Class) Alias() string      { return c.alias }

// Argument returns the bracketed argument, if any.
func (c Class) Argument() (Argument, bool) {
	if c.argument == nil {
		return Argument{}, false
	}
	return *c.argument, true
}

// IsKeyframe reports whether the atom takes keyframe names as values.
func (c Class) IsKeyframe() bool { return c.keyframe }

// Score returns the ordering key.
func (c Class) Score() Score { return c.score }

// Selector returns the escaped class selector, e.g. `.pt\:\$0`.
func (c Class) Selector() string {
	return "." + Escape(c.raw)
}

func (c Class) String() string { return c.raw }

// Compare orders classes by Score. Classes with equal scores fall back to
// their selector text so the order never depends on insertion.
func Compare(a, b Class) int {
	if n := a.score.Compare(b.score); n != 0 {
		return n
	}
	return strings.Compare(a.Selector(), b.Selector())
}

// Escape escapes s for use as a CSS class selector identifier.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			if i == 0 || (i == 1 && s[0] == '-') {
				sb.WriteString(`\3` + strconv.Itoa(int(r-'0')) + " ")
				continue
			}
			sb.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-', r >= 0x80:
			sb.WriteRune(r)
		case r == 0:
			sb.WriteString(`\fffd `)
		case r < 0x20 || r == 0x7f:
			sb.WriteString(`\` + strconv.FormatInt(int64(r), 16) + " ")
		default:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
