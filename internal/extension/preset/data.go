package preset

import (
	"strconv"

	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/placeholder"
)

var (
	kv  = config.P[string]
	lit = config.Lit
)

func meta(name string) config.Meta { return config.Meta{Name: name} }

func metaP(name string, prio int) config.Meta {
	return config.Meta{Name: name, Priority: config.Prio(prio)}
}

func styles(pairs ...config.Pair[string]) *config.Ordered[string] {
	return config.NewOrdered(pairs...)
}

func sets(names ...string) config.AtomValues {
	return config.AtomValues{Kind: config.ValuesSets, Sets: names}
}

// atom builds an atom whose properties are all filled from its value.
func atom(name string, values config.AtomValues, props ...string) config.Atom {
	st := config.NewOrdered[*string]()
	for _, prop := range props {
		st.Set(prop, nil)
	}
	return config.Atom{Meta: meta(name), Styles: st, Values: values}
}

// templated builds an atom with one property whose value embeds the value marker.
func templated(name string, values config.AtomValues, prop, tmpl string) config.Atom {
	return config.Atom{
		Meta:   meta(name),
		Styles: config.NewOrdered(config.P(prop, config.Str(tmpl))),
		Values: values,
	}
}

func scale(name string, pairs ...string) config.ValueSet {
	vs := config.NewOrdered[config.ValueEntry]()
	for i := 0; i+1 < len(pairs); i += 2 {
		vs.Set(pairs[i], lit(pairs[i+1]))
	}
	return config.ValueSet{Meta: meta(name), Values: vs}
}

var spacingSteps = []string{"0.5", "1", "1.5", "2", "2.5", "3", "4", "5", "6", "8", "10", "12", "16", "20", "24", "32", "40", "48", "64"}

// spacing maps step n to n quarter rems.
func spacing() config.ValueSet {
	vs := config.NewOrdered(config.P("0", lit("0px")), config.P("px", lit("1px")))
	for _, step := range spacingSteps {
		n, _ := strconv.ParseFloat(step, 64)
		vs.Set(step, lit(strconv.FormatFloat(n*0.25, 'f', -1, 64)+"rem"))
	}
	return config.ValueSet{Meta: meta("spacing"), Values: vs}
}

func fontSizes() config.ValueSet {
	entry := func(size, height string) config.ValueEntry {
		return config.ValueEntry{Properties: styles(kv("font-size", size), kv("line-height", height))}
	}
	return config.ValueSet{Meta: meta("font-sizes"), Values: config.NewOrdered(
		config.P("xs", entry("0.75rem", "1rem")),
		config.P("sm", entry("0.875rem", "1.25rem")),
		config.P("base", entry("1rem", "1.5rem")),
		config.P("lg", entry("1.125rem", "1.75rem")),
		config.P("xl", entry("1.25rem", "1.75rem")),
		config.P("2xl", entry("1.5rem", "2rem")),
		config.P("3xl", entry("1.875rem", "2.25rem")),
		config.P("4xl", entry("2.25rem", "2.5rem")),
	)}
}

func columns() config.ValueSet {
	vs := config.NewOrdered[config.ValueEntry]()
	for i := 1; i <= 12; i++ {
		vs.Set(strconv.Itoa(i), lit(strconv.Itoa(i)))
	}
	return config.ValueSet{Meta: meta("columns"), Values: vs}
}

// Config returns the preset configuration. Every call builds a new value.
func Config() *config.Config {
	colors := config.AtomValues{Kind: config.ValuesColors}
	space := sets("spacing")
	insets := sets("spacing", "fractions", "auto")
	margins := sets("spacing", "auto")
	lengths := sets("spacing", "fractions", "extents", "auto")

	return &config.Config{
		DefaultLayer: "utilities",
		Layers: []config.Layer{
			{Meta: metaP("reset", 10)},
			{Meta: metaP("base", 20)},
			{Meta: metaP("components", 30)},
			{Meta: metaP("utilities", 40)},
		},
		MediaQueries: []config.MediaQueryGroup{
			{Meta: metaP("breakpoints", 10), Members: []config.MediaQuery{
				{Meta: meta("sm"), Queries: []string{"(min-width: 640px)"}},
				{Meta: meta("md"), Queries: []string{"(min-width: 768px)"}},
				{Meta: meta("lg"), Queries: []string{"(min-width: 1024px)"}},
				{Meta: meta("xl"), Queries: []string{"(min-width: 1280px)"}},
				{Meta: meta("2xl"), Queries: []string{"(min-width: 1536px)"}},
			}},
			{Meta: metaP("preferences", 20), Members: []config.MediaQuery{
				{Meta: meta("dark"), Queries: []string{"(prefers-color-scheme: dark)"}},
				{Meta: meta("light"), Queries: []string{"(prefers-color-scheme: light)"}},
				{Meta: meta("motion-safe"), Queries: []string{"(prefers-reduced-motion: no-preference)"}},
				{Meta: meta("motion-reduce"), Queries: []string{"(prefers-reduced-motion: reduce)"}},
				{Meta: meta("contrast-more"), Queries: []string{"(prefers-contrast: more)"}},
			}},
			{Meta: metaP("media", 30), Members: []config.MediaQuery{
				{Meta: meta("portrait"), Queries: []string{"(orientation: portrait)"}},
				{Meta: meta("landscape"), Queries: []string{"(orientation: landscape)"}},
				{Meta: meta("print"), Queries: []string{"print"}},
			}},
		},
		Modifiers: []config.ModifierGroup{
			{Meta: metaP("structural", 10), Members: []config.Modifier{
				{Meta: meta("first"), Selectors: []string{":first-child"}},
				{Meta: meta("last"), Selectors: []string{":last-child"}},
				{Meta: meta("odd"), Selectors: []string{":nth-child(odd)"}},
				{Meta: meta("even"), Selectors: []string{":nth-child(even)"}},
				{Meta: meta("empty"), Selectors: []string{":empty"}},
			}},
			{Meta: metaP("interactive", 20), Members: []config.Modifier{
				{Meta: meta("visited"), Selectors: []string{":visited"}},
				{Meta: meta("checked"), Selectors: []string{":checked"}},
				{Meta: meta("focus-within"), Selectors: []string{":focus-within"}},
				{Meta: meta("hover"), Selectors: []string{":hover"}},
				{Meta: meta("focus"), Selectors: []string{":focus"}},
				{Meta: meta("focus-visible"), Selectors: []string{":focus-visible"}},
				{Meta: meta("active"), Selectors: []string{":active"}},
				{Meta: meta("disabled"), Selectors: []string{":disabled", "&[aria-disabled=true]"}},
			}},
			{Meta: metaP("relational", 30), Members: []config.Modifier{
				{Meta: meta("group-hover"), Selectors: []string{".group:hover &"}},
				{Meta: meta("group-focus"), Selectors: []string{".group:focus &"}},
				{Meta: meta("peer-checked"), Selectors: []string{".peer:checked ~ &"}},
			}},
			{Meta: metaP("pseudo-elements", 40), Members: []config.Modifier{
				{Meta: meta("before"), Selectors: []string{"::before"}},
				{Meta: meta("after"), Selectors: []string{"::after"}},
				{Meta: meta("placeholder"), Selectors: []string{"::placeholder"}},
				{Meta: meta("selection"), Selectors: []string{"::selection", "& *::selection"}},
			}},
		},
		ValueSets: []config.ValueSet{
			spacing(),
			scale("auto", "auto", "auto"),
			scale("fractions", "1/2", "50%", "1/3", "33.333333%", "2/3", "66.666667%", "1/4", "25%", "3/4", "75%", "full", "100%"),
			scale("extents", "min", "min-content", "max", "max-content", "fit", "fit-content", "screen", "100vw"),
			scale("containers", "xs", "20rem", "sm", "24rem", "md", "28rem", "lg", "32rem", "xl", "36rem", "2xl", "42rem", "prose", "65ch", "none", "none"),
			scale("radii", "none", "0px", "sm", "0.125rem", "md", "0.375rem", "lg", "0.5rem", "xl", "0.75rem", "full", "9999px"),
			fontSizes(),
			scale("font-weights", "thin", "100", "light", "300", "normal", "400", "medium", "500", "semibold", "600", "bold", "700"),
			scale("leadings", "none", "1", "tight", "1.25", "snug", "1.375", "normal", "1.5", "relaxed", "1.625", "loose", "2"),
			scale("opacities", "0", "0", "25", "0.25", "50", "0.5", "75", "0.75", "100", "1"),
			scale("z-indexes", "0", "0", "10", "10", "20", "20", "30", "30", "40", "40", "50", "50"),
			scale("durations", "75", "75ms", "100", "100ms", "150", "150ms", "200", "200ms", "300", "300ms", "500", "500ms", "700", "700ms", "1000", "1000ms"),
			scale("shadows",
				"none", "0 0 #0000",
				"sm", "0 1px 2px 0 rgb(0 0 0 / 0.05)",
				"md", "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)",
				"lg", "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)",
			),
			columns(),
		},
		Atoms: []config.Atom{
			atom("p", space, "padding"),
			atom("px", space, "padding-left", "padding-right"),
			atom("py", space, "padding-top", "padding-bottom"),
			atom("pt", space, "padding-top"),
			atom("pr", space, "padding-right"),
			atom("pb", space, "padding-bottom"),
			atom("pl", space, "padding-left"),
			atom("m", margins, "margin"),
			atom("mx", margins, "margin-left", "margin-right"),
			atom("my", margins, "margin-top", "margin-bottom"),
			atom("mt", margins, "margin-top"),
			atom("mr", margins, "margin-right"),
			atom("mb", margins, "margin-bottom"),
			atom("ml", margins, "margin-left"),
			atom("gap", space, "gap"),
			atom("gap-x", space, "column-gap"),
			atom("gap-y", space, "row-gap"),
			atom("w", lengths, "width"),
			atom("h", lengths, "height"),
			atom("min-w", sets("extents", "fractions"), "min-width"),
			atom("max-w", sets("containers", "fractions"), "max-width"),
			atom("inset", insets, "inset"),
			atom("top", insets, "top"),
			atom("right", insets, "right"),
			atom("bottom", insets, "bottom"),
			atom("left", insets, "left"),
			atom("text", sets("font-sizes"), "font-size", "line-height"),
			atom("font", sets("font-weights"), "font-weight"),
			atom("leading", sets("leadings"), "line-height"),
			atom("color", colors, "color"),
			atom("bg", colors, "background-color"),
			atom("border-color", colors, "border-color"),
			atom("outline-color", colors, "outline-color"),
			atom("fill", colors, "fill"),
			atom("stroke", colors, "stroke"),
			templated("ring", colors, "box-shadow", "0 0 0 3px "+placeholder.Value()),
			atom("rounded", sets("radii"), "border-radius"),
			atom("opacity", sets("opacities"), "opacity"),
			atom("z", sets("z-indexes"), "z-index"),
			atom("shadow", sets("shadows"), "box-shadow"),
			atom("duration", sets("durations"), "transition-duration"),
			templated("cols", sets("columns"), "grid-template-columns", "repeat("+placeholder.Value()+",minmax(0,1fr))"),
			templated("col-span", sets("columns"), "grid-column", "span "+placeholder.Value()+" / span "+placeholder.Value()),
			templated("animate", config.AtomValues{Kind: config.ValuesKeyframes}, "animation", placeholder.Value()+" 1s ease-in-out infinite"),
		},
		CSSVariables: []config.CSSVariable{
			{Meta: meta("font-sans"), Variable: "--font-sans", Value: "ui-sans-serif, system-ui, sans-serif"},
			{Meta: meta("font-mono"), Variable: "--font-mono", Value: "ui-monospace, SFMono-Regular, Menlo, monospace"},
		},
		Palette: []config.PaletteColor{
			{Meta: meta("transparent"), Value: "#0000"},
			{Meta: meta("black"), Value: "#000"},
			{Meta: meta("white"), Value: "#fff"},
			{Meta: meta("slate-50"), Value: "#f8fafc"},
			{Meta: meta("slate-100"), Value: "#f1f5f9"},
			{Meta: meta("slate-200"), Value: "#e2e8f0"},
			{Meta: meta("slate-300"), Value: "#cbd5e1"},
			{Meta: meta("slate-500"), Value: "#64748b"},
			{Meta: meta("slate-700"), Value: "#334155"},
			{Meta: meta("slate-900"), Value: "#0f172a"},
			{Meta: meta("red-500"), Value: "#ef4444"},
			{Meta: meta("red-700"), Value: "#b91c1c"},
			{Meta: meta("amber-500"), Value: "#f59e0b"},
			{Meta: meta("green-500"), Value: "#22c55e"},
			{Meta: meta("blue-500"), Value: "#3b82f6"},
			{Meta: meta("blue-700"), Value: "#1d4ed8"},
		},
		Keyframes: []config.Keyframe{
			{Meta: meta("spin"), Frames: config.NewOrdered(
				config.P("to", styles(kv("transform", "rotate(360deg)"))),
			)},
			{Meta: meta("ping"), Frames: config.NewOrdered(
				config.P("75%, 100%", styles(kv("transform", "scale(2)"), kv("opacity", "0"))),
			)},
			{Meta: meta("pulse"), Frames: config.NewOrdered(
				config.P("50%", styles(kv("opacity", "0.5"))),
			)},
			{Meta: meta("bounce"), Frames: config.NewOrdered(
				config.P("0%, 100%", styles(kv("transform", "translateY(-25%)"))),
				config.P("50%", styles(kv("transform", "none"))),
			)},
		},
		NamedClasses: []config.NamedClass{
			{Meta: meta("block"), Styles: styles(kv("display", "block"))},
			{Meta: meta("inline-block"), Styles: styles(kv("display", "inline-block"))},
			{Meta: meta("inline"), Styles: styles(kv("display", "inline"))},
			{Meta: meta("flex"), Styles: styles(kv("display", "flex"))},
			{Meta: meta("inline-flex"), Styles: styles(kv("display", "inline-flex"))},
			{Meta: meta("grid"), Styles: styles(kv("display", "grid"))},
			{Meta: meta("contents"), Styles: styles(kv("display", "contents"))},
			{Meta: meta("hidden"), Styles: styles(kv("display", "none"))},
			{Meta: meta("static"), Styles: styles(kv("position", "static"))},
			{Meta: meta("relative"), Styles: styles(kv("position", "relative"))},
			{Meta: meta("absolute"), Styles: styles(kv("position", "absolute"))},
			{Meta: meta("fixed"), Styles: styles(kv("position", "fixed"))},
			{Meta: meta("sticky"), Styles: styles(kv("position", "sticky"))},
			{Meta: meta("flex-row"), Styles: styles(kv("flex-direction", "row"))},
			{Meta: meta("flex-col"), Styles: styles(kv("flex-direction", "column"))},
			{Meta: meta("flex-wrap"), Styles: styles(kv("flex-wrap", "wrap"))},
			{Meta: meta("grow"), Styles: styles(kv("flex-grow", "1"))},
			{Meta: meta("shrink-0"), Styles: styles(kv("flex-shrink", "0"))},
			{Meta: meta("items-start"), Styles: styles(kv("align-items", "flex-start"))},
			{Meta: meta("items-center"), Styles: styles(kv("align-items", "center"))},
			{Meta: meta("items-end"), Styles: styles(kv("align-items", "flex-end"))},
			{Meta: meta("justify-start"), Styles: styles(kv("justify-content", "flex-start"))},
			{Meta: meta("justify-center"), Styles: styles(kv("justify-content", "center"))},
			{Meta: meta("justify-between"), Styles: styles(kv("justify-content", "space-between"))},
			{Meta: meta("justify-end"), Styles: styles(kv("justify-content", "flex-end"))},
			{Meta: meta("overflow-hidden"), Styles: styles(kv("overflow", "hidden"))},
			{Meta: meta("overflow-auto"), Styles: styles(kv("overflow", "auto"))},
			{Meta: meta("text-left"), Styles: styles(kv("text-align", "left"))},
			{Meta: meta("text-center"), Styles: styles(kv("text-align", "center"))},
			{Meta: meta("text-right"), Styles: styles(kv("text-align", "right"))},
			{Meta: meta("italic"), Styles: styles(kv("font-style", "italic"))},
			{Meta: meta("underline"), Styles: styles(kv("text-decoration-line", "underline"))},
			{Meta: meta("uppercase"), Styles: styles(kv("text-transform", "uppercase"))},
			{Meta: meta("sans"), Styles: styles(kv("font-family", placeholder.Var("font-sans")))},
			{Meta: meta("mono"), Styles: styles(kv("font-family", placeholder.Var("font-mono")))},
			{Meta: meta("truncate"), Styles: styles(kv("overflow", "hidden"), kv("text-overflow", "ellipsis"), kv("white-space", "nowrap"))},
			{Meta: meta("border"), Styles: styles(kv("border-width", "1px"), kv("border-style", "solid"))},
			{Meta: meta("cursor-pointer"), Styles: styles(kv("cursor", "pointer"))},
			{Meta: meta("select-none"), Styles: styles(kv("user-select", "none"))},
			{Meta: meta("transition"), Styles: styles(
				kv("transition-property", "color, background-color, border-color, opacity, box-shadow, transform"),
				kv("transition-timing-function", "cubic-bezier(0.4, 0, 0.2, 1)"),
				kv("transition-duration", "150ms"),
			)},
			{Meta: meta("sr-only"), Styles: styles(
				kv("position", "absolute"),
				kv("width", "1px"),
				kv("height", "1px"),
				kv("padding", "0"),
				kv("margin", "-1px"),
				kv("overflow", "hidden"),
				kv("clip", "rect(0, 0, 0, 0)"),
				kv("white-space", "nowrap"),
				kv("border-width", "0"),
			)},
		},
		Aliases: []config.Alias{
			{Meta: meta("center"), Classes: []string{"flex", "items-center", "justify-center"}},
			{Meta: meta("stack"), Classes: []string{"flex", "flex-col", "gap:$4"}},
		},
		CSSChunks: []config.CSSChunk{
			{Meta: meta("preflight"), CSS: "*,::before,::after{box-sizing:border-box;border:0 solid;margin:0;padding:0}" +
				"html{line-height:1.5;-webkit-text-size-adjust:100%;font-family:" + placeholder.Var("font-sans") + "}" +
				"img,svg,video{display:block;max-width:100%}"},
		},
	}
}
