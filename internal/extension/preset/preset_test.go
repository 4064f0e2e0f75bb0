package preset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/class"
	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/engine"
	"github.com/yacobolo/atomcss/internal/extension"
	"github.com/yacobolo/atomcss/internal/index"
	"github.com/yacobolo/atomcss/internal/synth"
)

func runner(t *testing.T, opts map[string]any) *engine.Runner {
	t.Helper()
	r := extension.NewRegistry(nil)
	r.MustRegister(New())
	base := &config.Config{}
	if opts != nil {
		base.Extensions = map[string]map[string]any{ID: opts}
	}
	rn, err := r.Runner(base)
	require.NoError(t, err)
	return rn
}

func TestConfigIsValid(t *testing.T) {
	require.NoError(t, config.Validate(Config()))
}

func TestConfigIsFresh(t *testing.T) {
	a := Config()
	a.Atoms[0].Name = "changed"
	a.Palette = nil
	b := Config()
	assert.Equal(t, "p", b.Atoms[0].Name)
	assert.NotEmpty(t, b.Palette)
}

func TestPresetClasses(t *testing.T) {
	rn := runner(t, nil)
	assert.Equal(t, "utilities", rn.DefaultLayer())
	assert.Equal(t, []string{"reset", "base", "components", "utilities"}, rn.Index().Names(index.Layer))

	valid := []string{
		"p:$4", "px:$0.5", "mt:auto", "w:$1/2", "w:$screen", "max-w:$prose",
		"md:hover:bg:$blue-500", "dark:color:$white", "text:$lg", "text:sm",
		"sm:text:$sm", "rounded:$full", "animate:$spin", "motion-reduce:animate:$pulse",
		"cols:$3", "col-span:$2", "flex", "sr-only", "center", "stack",
		"reset:preflight", "group-hover:opacity:$50", "shadow:$md", "z:$10",
		"before:[content='']", "ring:$transparent", "sans",
	}
	for _, s := range valid {
		_, ok := class.FromString(rn.Index(), s).IntoClass()
		assert.True(t, ok, s)
	}

	invalid := []string{"p", "p:$3.5", "animate", "text:$huge", "hover:preflight"}
	for _, s := range invalid {
		_, ok := class.FromString(rn.Index(), s).IntoClass()
		assert.False(t, ok, s)
	}
}

func TestPresetSynthesizes(t *testing.T) {
	rn := runner(t, nil)
	var classes class.Classes
	for _, s := range []string{"p:$4", "text:$lg", "md:hover:bg:$blue-500", "animate:$spin", "sans", "reset:preflight", "stack"} {
		classes.Extend(class.FromString(rn.Index(), s).IntoClasses()...)
	}

	css, err := synth.ToCSS(rn, &classes)
	require.NoError(t, err)
	assert.Contains(t, css, "@layer reset,base,components,utilities;\n")
	assert.Contains(t, css, `.p\:\$4{padding:1rem;}`)
	assert.Contains(t, css, `.text\:\$lg{font-size:1.125rem;line-height:1.75rem;}`)
	assert.Contains(t, css, `.md\:hover\:bg\:\$blue-500:hover{background-color:rgb(59 130 246);}`)
	assert.Contains(t, css, "@keyframes spin{to{transform:rotate(360deg);}}")
	assert.Contains(t, css, `.sans{font-family:var(--font-sans);}`)
	assert.Contains(t, css, "@property --font-sans{syntax:'*';inherits:true;}")
	assert.Contains(t, css, `.gap\:\$4{gap:1rem;}`)
	assert.True(t, strings.Index(css, "@layer reset{") < strings.Index(css, "@layer utilities{"))
}

func TestReadOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    map[string]any
		wantErr string
	}{
		{name: "empty", opts: nil},
		{name: "palette off", opts: map[string]any{"palette": false}},
		{name: "breakpoints", opts: map[string]any{"breakpoints": map[string]any{"tablet": "600px", "wide": 1200}}},
		{name: "bad palette", opts: map[string]any{"palette": "no"}, wantErr: "palette must be a boolean"},
		{name: "bad breakpoints", opts: map[string]any{"breakpoints": []any{"x"}}, wantErr: "breakpoints must be a map"},
		{name: "bad width", opts: map[string]any{"breakpoints": map[string]any{"x": 1.5}}, wantErr: `breakpoint "x"`},
		{name: "unknown", opts: map[string]any{"nope": 1}, wantErr: `unknown option "nope"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().ReadOptions(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOptionsApplied(t *testing.T) {
	rn := runner(t, map[string]any{
		"palette":     false,
		"breakpoints": map[string]any{"wide": "1200px", "tablet": "600px", "phone": 320},
	})

	assert.Empty(t, rn.Config().Palette)
	assert.Equal(t, []string{"phone", "tablet", "wide"}, rn.Index().Names(index.MediaQuery)[:3])
	mq, ok := rn.MediaQuery("phone")
	require.True(t, ok)
	assert.Equal(t, []string{"(min-width: 320px)"}, mq.Queries)
	_, ok = rn.MediaQuery("sm")
	assert.False(t, ok)
	assert.Empty(t, rn.Index().Values("bg"))
}

func TestUserConfigOverridesPreset(t *testing.T) {
	r := extension.NewRegistry(nil)
	r.MustRegister(New())
	rn, err := r.Runner(&config.Config{
		Palette: []config.PaletteColor{{Meta: config.Meta{Name: "white"}, Value: "#fefefe"}},
	})
	require.NoError(t, err)

	c, ok := rn.Palette("white")
	require.True(t, ok)
	assert.Equal(t, "#fefefe", c.Value)
}
