package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	vars      map[string]string
	palette   map[string]string
	modifiers map[string]string
}

func (f fakeResolver) Variable(name string) (string, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func (f fakeResolver) PaletteColor(name string) (string, bool) {
	v, ok := f.palette[name]
	return v, ok
}

func (f fakeResolver) ModifierSelector(name string) (string, bool) {
	v, ok := f.modifiers[name]
	return v, ok
}

var resolver = fakeResolver{
	vars:      map[string]string{"fg": "--fg", "space": "--space"},
	palette:   map[string]string{"red": "#f00", "broken": "not-a-color", "ghost": "hsl(0 0% 100% / 50%)"},
	modifiers: map[string]string{"hover": ":hover"},
}

func TestMarker(t *testing.T) {
	assert.Equal(t, "__:var::fg:__", Var("fg"))
	assert.Equal(t, "__:palette::red:__", Palette("red"))
	assert.Equal(t, "__:modifier::hover:__", Modifier("hover"))
	assert.Equal(t, "__:value::self:__", Value())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "1px solid", want: "1px solid"},
		{name: "variable", in: "1px solid " + Var("fg"), want: "1px solid var(--fg)"},
		{name: "unknown variable", in: Var("nope"), want: InvalidVariable},
		{name: "palette", in: Palette("red"), want: "rgb(255 0 0)"},
		{name: "palette hsl", in: Palette("ghost"), want: "hsl(0 0% 100% / 0.5)"},
		{name: "unknown palette", in: Palette("nope"), want: FallbackColor},
		{name: "unparsable palette", in: Palette("broken"), want: FallbackColor},
		{name: "modifier", in: ".group" + Modifier("hover") + " &", want: ".group:hover &"},
		{name: "unknown modifier", in: "x" + Modifier("nope") + "y", want: "xy"},
		{name: "several markers", in: Var("space") + " " + Var("space") + " " + Palette("red"), want: "var(--space) var(--space) rgb(255 0 0)"},
		{name: "value marker is left alone", in: Value(), want: Value()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in, resolver))
		})
	}
}

func TestNormalizeWithValue(t *testing.T) {
	assert.Equal(t, "calc(1rem * -1)", NormalizeWithValue("calc("+Value()+" * -1)", "1rem", resolver))
	assert.Equal(t, "0 0 0 1px var(--fg)", NormalizeWithValue("0 0 0 1px "+Value(), Var("fg"), resolver))
	assert.Equal(t, "$1", NormalizeWithValue(Value(), "$1", resolver))
}

func TestReferences(t *testing.T) {
	vars, palette := References(Var("a") + Palette("red") + Var("b") + Var("a") + Modifier("hover"))
	assert.Equal(t, []string{"a", "b"}, vars)
	assert.Equal(t, []string{"red"}, palette)

	vars, palette = References("plain")
	assert.Empty(t, vars)
	assert.Empty(t, palette)
}

func TestHasMarkers(t *testing.T) {
	assert.True(t, HasMarkers("x "+Value()))
	assert.True(t, HasMarkers(Modifier("hover")))
	assert.False(t, HasMarkers("__:var::has space:__"))
}
