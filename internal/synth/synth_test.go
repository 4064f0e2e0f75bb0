package synth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/class"
	"github.com/yacobolo/atomcss/internal/color"
	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/config/configtest"
	"github.com/yacobolo/atomcss/internal/engine"
)

func classesOf(t *testing.T, rn *engine.Runner, inputs ...string) *class.Classes {
	t.Helper()
	cs := &class.Classes{}
	for _, in := range inputs {
		classes := class.FromString(rn.Index(), in).IntoClasses()
		require.NotEmpty(t, classes, in)
		cs.Extend(classes...)
	}
	return cs
}

func render(t *testing.T, rn *engine.Runner, inputs ...string) string {
	t.Helper()
	css, err := ToCSS(rn, classesOf(t, rn, inputs...))
	require.NoError(t, err)
	return css
}

func TestToCSSDocument(t *testing.T) {
	rn := engine.New(configtest.Canonical())

	css := render(t, rn,
		"md:pt:$10", "pt:$0", "sm:pt:$10", "hover:bg:$fg", "animate:spin", "btn", "dark:sm:w:$full",
	)

	want := `@charset "UTF-8";
@layer reset,components,utilities;
@keyframes spin{from{transform:rotate(0deg);}to{transform:rotate(360deg);}}
@property --radius{syntax:'<length>';inherits:true;initial-value:2px;}
@property --fg{syntax:'<color>';inherits:true;initial-value:rgb(0 0 0);}
@property --fg-a{syntax:'<number>';inherits:true;initial-value:1;}
@media (prefers-color-scheme: dark){:root{--fg:rgb(255 255 255);--fg-a:1;}}
.inverse{--fg:rgb(255 255 255);--fg-a:1;}
@layer components{
.btn{border-radius:var(--radius);}
}
@layer utilities{
.pt\:\$0{padding-top:0px;}
.animate\:spin{animation:spin 1s linear infinite;}
.hover\:bg\:\$fg:hover{background-color:var(--fg);}
@media (min-width: 640px){
.sm\:pt\:\$10{padding-top:2.5rem;}
}
@media (min-width: 640px){
@media (prefers-color-scheme: dark){
.dark\:sm\:w\:\$full{width:100%;}
}
}
@media (min-width: 768px){
.md\:pt\:\$10{padding-top:2.5rem;}
}
}
`
	assert.Equal(t, want, css)
}

func TestToCSSEmpty(t *testing.T) {
	rn := engine.New(configtest.Canonical())
	css, err := ToCSS(rn, &class.Classes{})
	require.NoError(t, err)
	assert.Equal(t, "@charset \"UTF-8\";\n@layer reset,components,utilities;\n", css)
}

func TestToCSSDefaultLayerWithoutMediaQuery(t *testing.T) {
	rn := engine.New(configtest.Canonical())
	css := render(t, rn, "pt:$0")

	assert.Contains(t, css, "@layer utilities{\n.pt\\:\\$0{padding-top:0px;}\n}\n")
	assert.NotContains(t, css, "@media")
}

func TestToCSSRules(t *testing.T) {
	rn := engine.New(configtest.Canonical())

	tests := []struct {
		input string
		want  string
	}{
		{input: "focus:first:pt:$0", want: `.focus\:first\:pt\:\$0:focus:first-child,.focus\:first\:pt\:\$0:focus-within:first-child{padding-top:0px;}`},
		{input: "group-hover:pt:$0", want: `.group:hover .group-hover\:pt\:\$0{padding-top:0px;}`},
		{input: "chip", want: `.chip{display:inline-flex;color:rgb(255 0 0);}`},
		{input: "[color=red]", want: `.\[color\=red\]{color:red;}`},
		{input: "w:[37px]", want: `.w\:\[37px\]{width:37px;}`},
		{input: "box:tight", want: `.box\:tight{padding-top:1px;margin-top:2px;}`},
		{input: "ring:$red", want: `.ring\:\$red{box-shadow:0 0 0 2px rgb(255 0 0);}`},
		{input: "px:$4", want: `.px\:\$4{padding-left:1rem;padding-right:1rem;}`},
		{input: "container", want: `.container{max-width:80rem;margin-inline:auto;}`},
		{input: "base-reset", want: `*{margin:0;color:var(--fg)}`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Contains(t, render(t, rn, tt.input), tt.want+"\n")
		})
	}
}

func TestToCSSLayers(t *testing.T) {
	rn := engine.New(configtest.Canonical())
	css := render(t, rn, "reset:base-reset", "utilities:btn", "pt:$0")

	reset := strings.Index(css, "@layer reset{\n*{margin:0;color:var(--fg)}\n}")
	utilities := strings.Index(css, "@layer utilities{\n.pt\\:\\$0{padding-top:0px;}\n.utilities\\:btn{")
	require.GreaterOrEqual(t, reset, 0, css)
	require.GreaterOrEqual(t, utilities, 0, css)
	assert.Less(t, reset, utilities)
	assert.NotContains(t, css, "@layer components{")
}

func TestToCSSMediaQueryList(t *testing.T) {
	rn := engine.New(configtest.Canonical())
	css := render(t, rn, "print:pt:$0", "sm:print:pt:$0", "print:sm:pt:$4")

	assert.Contains(t, css, "@media print, (forced-colors: active){\n.print\\:pt\\:\\$0{padding-top:0px;}\n}\n")
	// both orders share the {sm, print} group
	assert.Contains(t, css, "@media (min-width: 640px){\n@media print, (forced-colors: active){\n.sm\\:print\\:pt\\:\\$0{padding-top:0px;}\n.print\\:sm\\:pt\\:\\$4{padding-top:1rem;}\n}\n}\n")
	assert.Less(t, strings.Index(css, "(min-width: 640px)"), strings.Index(css, ".print\\:pt\\:\\$0"))
}

func TestToCSSKeyframesOnce(t *testing.T) {
	rn := engine.New(configtest.Canonical())
	css := render(t, rn, "animate:pulse", "md:animate:spin", "animate:spin")

	assert.Equal(t, 1, strings.Count(css, "@keyframes spin{"))
	assert.Equal(t, 1, strings.Count(css, "@keyframes pulse{"))
	// first seen in class order
	assert.Less(t, strings.Index(css, "@keyframes spin{"), strings.Index(css, "@keyframes pulse{"))
	assert.Contains(t, css, "@keyframes pulse{50%{opacity:0.5;}}\n")
}

func TestToCSSUntypedVariable(t *testing.T) {
	rn := engine.New(configtest.Canonical())
	css := render(t, rn, "gap")

	assert.Contains(t, css, "@property --space{syntax:'*';inherits:true;}\n:root{--space:4px;}\n")
	assert.Contains(t, css, ".gap{gap:var(--space);}")
}

func TestToCSSColorComponents(t *testing.T) {
	cfg := configtest.Partial()
	cfg.Options.ColorComponents = config.Bool(true)
	fg := &cfg.CSSVariables[0]
	fg.Inherits = config.Bool(false)
	rn, err := engine.FromPartials(cfg, nil)
	require.NoError(t, err)

	css := render(t, rn, "bg:$fg")

	want := `@property --fg-h{syntax:'<number>';inherits:false;initial-value:0;}
@property --fg-s{syntax:'<percentage>';inherits:false;initial-value:0%;}
@property --fg-l{syntax:'<percentage>';inherits:false;initial-value:0%;}
@property --fg-a{syntax:'<number>';inherits:false;initial-value:1;}
:root{--fg:hsl(var(--fg-h) var(--fg-s) var(--fg-l) / var(--fg-a));}
@media (prefers-color-scheme: dark){:root{--fg-h:0;--fg-s:0%;--fg-l:100%;--fg-a:1;}}
.inverse{--fg-h:0;--fg-s:0%;--fg-l:100%;--fg-a:1;}
`
	assert.Contains(t, css, want)
	assert.NotContains(t, css, "syntax:'<color>'")
}

func TestToCSSVariableReferencedByVariable(t *testing.T) {
	cfg := configtest.Partial()
	cfg.CSSVariables = append(cfg.CSSVariables, config.CSSVariable{
		Meta:     config.Meta{Name: "gutter"},
		Variable: "--gutter",
		Value:    "calc(__:var::space:__ * 2)",
	})
	cfg.Atoms = append(cfg.Atoms, config.Atom{
		Meta:   config.Meta{Name: "gutter"},
		Styles: config.NewOrdered(config.P("padding", config.Str("__:var::gutter:__"))),
	})
	rn, err := engine.FromPartials(cfg, nil)
	require.NoError(t, err)

	css := render(t, rn, "gutter")
	gutter := strings.Index(css, "@property --gutter{")
	space := strings.Index(css, "@property --space{")
	require.GreaterOrEqual(t, gutter, 0)
	require.GreaterOrEqual(t, space, 0)
	assert.Less(t, gutter, space)
	assert.Contains(t, css, ":root{--gutter:calc(var(--space) * 2);}")
}

func TestToCSSInvalidColorVariable(t *testing.T) {
	cfg := configtest.Partial()
	cfg.CSSVariables[0].Value = "rgb(1 2)"
	rn, err := engine.FromPartials(cfg, nil)
	require.NoError(t, err)

	_, err = ToCSS(rn, classesOf(t, rn, "bg:$fg"))
	require.Error(t, err)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, KindInvalidColor, se.Kind)
	assert.Equal(t, "fg", se.Name)

	var ce *color.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, color.KindInvalidRGB, ce.Kind)
	assert.ErrorIs(t, err, color.ErrInvalidRGB)
}

func TestToCSSInvalidColorOverride(t *testing.T) {
	cfg := configtest.Partial()
	cfg.CSSVariables[0].Overrides = config.NewOrdered(
		config.P("dark", config.NewOrdered(config.P(":root", "not-a-color"))),
	)
	rn, err := engine.FromPartials(cfg, nil)
	require.NoError(t, err)

	_, err = ToCSS(rn, classesOf(t, rn, "bg:$fg"))
	assert.ErrorIs(t, err, color.ErrUnknown)
}

func TestToCSSMissingReferences(t *testing.T) {
	full := engine.New(configtest.Canonical())

	tests := []struct {
		name   string
		mutate func(*config.Config)
		input  string
		kind   ErrorKind
	}{
		{name: "atom", mutate: func(c *config.Config) { c.Atoms = nil }, input: "pt:$0", kind: KindMissingAtom},
		{name: "value", mutate: func(c *config.Config) { c.ValueSets = nil }, input: "pt:$0", kind: KindMissingValue},
		{name: "keyframe", mutate: func(c *config.Config) { c.Keyframes = nil }, input: "animate:spin", kind: KindMissingKeyframe},
		{name: "variable", mutate: func(c *config.Config) { c.CSSVariables = c.CSSVariables[:2] }, input: "btn", kind: KindMissingVariable},
		{name: "named class", mutate: func(c *config.Config) { c.NamedClasses = nil }, input: "container", kind: KindMissingNamedClass},
		{name: "chunk", mutate: func(c *config.Config) { c.CSSChunks = nil }, input: "base-reset", kind: KindMissingChunk},
		{name: "alias", mutate: func(c *config.Config) { c.Aliases = nil }, input: "chip", kind: KindMissingAlias},
		{name: "modifier", mutate: func(c *config.Config) { c.Modifiers = nil }, input: "hover:pt:$0", kind: KindMissingModifier},
		{name: "media query", mutate: func(c *config.Config) { c.MediaQueries = nil }, input: "sm:pt:$0", kind: KindMissingMediaQuery},
		{name: "layer", mutate: func(c *config.Config) { c.Layers = c.Layers[2:] }, input: "reset:pt:$0", kind: KindMissingLayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := configtest.Partial()
			tt.mutate(cfg)
			rn, err := engine.FromPartials(cfg, nil)
			require.NoError(t, err)

			_, err = ToCSS(rn, classesOf(t, full, tt.input))
			var se *Error
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tt.kind, se.Kind)
		})
	}
}

func TestSynthesizerLogs(t *testing.T) {
	rn := engine.New(configtest.Canonical())
	css, err := New(rn, zap.NewExample()).ToCSS(classesOf(t, rn, "pt:$0"))
	require.NoError(t, err)
	assert.Contains(t, css, "padding-top:0px")
}
