// Package configtest provides a small canonical configuration for tests.
package configtest

import (
	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/placeholder"
)

// Partial returns the unmerged sample configuration.
func Partial() *config.Config {
	p := config.P[string]
	ps := config.P[*string]
	lit := config.Lit

	return &config.Config{
		DefaultLayer: "utilities",
		Layers: []config.Layer{
			{Meta: config.Meta{Name: "reset"}},
			{Meta: config.Meta{Name: "components"}},
			{Meta: config.Meta{Name: "utilities"}},
		},
		MediaQueries: []config.MediaQueryGroup{
			{Meta: config.Meta{Name: "breakpoints"}, Members: []config.MediaQuery{
				{Meta: config.Meta{Name: "sm"}, Queries: []string{"(min-width: 640px)"}},
				{Meta: config.Meta{Name: "md"}, Queries: []string{"(min-width: 768px)"}},
				{Meta: config.Meta{Name: "lg"}, Queries: []string{"(min-width: 1024px)"}},
			}},
			{Meta: config.Meta{Name: "theme"}, Members: []config.MediaQuery{
				{Meta: config.Meta{Name: "dark"}, Queries: []string{"(prefers-color-scheme: dark)"}},
				{Meta: config.Meta{Name: "print"}, Queries: []string{"print", "(forced-colors: active)"}},
			}},
		},
		Modifiers: []config.ModifierGroup{
			{Meta: config.Meta{Name: "pseudo"}, Members: []config.Modifier{
				{Meta: config.Meta{Name: "hover"}, Selectors: []string{":hover"}},
				{Meta: config.Meta{Name: "focus"}, Selectors: []string{"&:focus", "&:focus-within"}},
			}},
			{Meta: config.Meta{Name: "structural"}, Members: []config.Modifier{
				{Meta: config.Meta{Name: "first"}, Selectors: []string{"&:first-child"}},
				{Meta: config.Meta{Name: "group-hover"}, Selectors: []string{".group:hover &"}},
			}},
		},
		Atoms: []config.Atom{
			{Meta: config.Meta{Name: "pt"}, Styles: config.NewOrdered(ps("padding-top", nil)), Values: sets("spacing")},
			{Meta: config.Meta{Name: "pb"}, Styles: config.NewOrdered(ps("padding-bottom", nil)), Values: sets("spacing")},
			{Meta: config.Meta{Name: "px"}, Styles: config.NewOrdered(ps("padding-left", nil), ps("padding-right", nil)), Values: sets("spacing")},
			{Meta: config.Meta{Name: "mt"}, Styles: config.NewOrdered(ps("margin-top", nil)), Values: sets("spacing", "negative")},
			{Meta: config.Meta{Name: "w"}, Styles: config.NewOrdered(ps("width", nil)), Values: sets("sizes")},
			{Meta: config.Meta{Name: "bg"}, Styles: config.NewOrdered(ps("background-color", nil)), Values: config.AtomValues{Kind: config.ValuesColors}},
			{Meta: config.Meta{Name: "ring"}, Styles: config.NewOrdered(ps("box-shadow", config.Str("0 0 0 2px "+placeholder.Value()))), Values: config.AtomValues{Kind: config.ValuesColors}},
			{Meta: config.Meta{Name: "animate"}, Styles: config.NewOrdered(ps("animation", config.Str(placeholder.Value()+" 1s linear infinite"))), Values: config.AtomValues{Kind: config.ValuesKeyframes}},
			{Meta: config.Meta{Name: "gap"}, Styles: config.NewOrdered(ps("gap", config.Str(placeholder.Var("space"))))},
			{Meta: config.Meta{Name: "box"}, Styles: config.NewOrdered(ps("padding-top", nil), ps("margin-top", nil)), Values: sets("boxes")},
		},
		ValueSets: []config.ValueSet{
			{Meta: config.Meta{Name: "spacing"}, Values: config.NewOrdered(
				config.P("0", lit("0px")),
				config.P("4", lit("1rem")),
				config.P("10", lit("2.5rem")),
			)},
			{Meta: config.Meta{Name: "negative"}, Values: config.NewOrdered(
				config.P("-4", lit("-1rem")),
			)},
			{Meta: config.Meta{Name: "sizes"}, Values: config.NewOrdered(
				config.P("full", lit("100%")),
				config.P("half", lit("50%")),
			)},
			{Meta: config.Meta{Name: "boxes"}, Values: config.NewOrdered(
				config.P("tight", config.ValueEntry{Properties: config.NewOrdered(p("padding-top", "1px"), p("margin-top", "2px"))}),
			)},
		},
		CSSVariables: []config.CSSVariable{
			{
				Meta:     config.Meta{Name: "fg"},
				Variable: "--fg",
				Syntax:   config.SyntaxColor,
				Value:    "#000",
				Overrides: config.NewOrdered(
					config.P("dark", config.NewOrdered(p(":root", "#fff"))),
					config.P(config.DefaultOverride, config.NewOrdered(p(".inverse", "#fff"))),
				),
			},
			{Meta: config.Meta{Name: "space"}, Variable: "--space", Value: "4px"},
			{Meta: config.Meta{Name: "radius"}, Variable: "--radius", Syntax: config.SyntaxLength, Value: "2px"},
		},
		Palette: []config.PaletteColor{
			{Meta: config.Meta{Name: "red"}, Value: "#f00"},
			{Meta: config.Meta{Name: "white"}, Value: "#fff"},
		},
		Keyframes: []config.Keyframe{
			{Meta: config.Meta{Name: "spin"}, Frames: config.NewOrdered(
				config.P("from", config.NewOrdered(p("transform", "rotate(0deg)"))),
				config.P("to", config.NewOrdered(p("transform", "rotate(360deg)"))),
			)},
			{Meta: config.Meta{Name: "pulse"}, Frames: config.NewOrdered(
				config.P("50%", config.NewOrdered(p("opacity", "0.5"))),
			)},
		},
		NamedClasses: []config.NamedClass{
			{Meta: config.Meta{Name: "container"}, Styles: config.NewOrdered(p("max-width", "80rem"), p("margin-inline", "auto"))},
			{Meta: config.Meta{Name: "btn"}, Styles: config.NewOrdered(p("border-radius", placeholder.Var("radius"))), Layer: "components"},
		},
		Aliases: []config.Alias{
			{Meta: config.Meta{Name: "card"}, Classes: []string{"pt:$4", "pb:$4", "bg:$white", "nope"}},
			{Meta: config.Meta{Name: "panel"}, Classes: []string{"card", "px:$10"}},
			{Meta: config.Meta{Name: "chip"}, Classes: []string{"pt:$0"}, Combined: true, Styles: config.NewOrdered(p("display", "inline-flex"), p("color", placeholder.Palette("red")))},
		},
		CSSChunks: []config.CSSChunk{
			{Meta: config.Meta{Name: "base-reset"}, CSS: "*{margin:0;color:" + placeholder.Var("fg") + "}"},
		},
	}
}

// Canonical returns the merged sample configuration.
func Canonical() *config.Config {
	cfg, err := config.Merge(Partial(), nil)
	if err != nil {
		panic(err)
	}
	return cfg
}

func sets(names ...string) config.AtomValues {
	return config.AtomValues{Kind: config.ValuesSets, Sets: names}
}
