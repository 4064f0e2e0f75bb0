// Package color parses and normalizes CSS color literals.
//
// Supported grammars are hex (#rgb, #rgba, #rrggbb, #rrggbbaa, with or without
// the leading #), rgb()/rgba() and hsl()/hsla() in both the comma separated
// and the CSS Color 4 space separated forms. Out of range channels are clamped.
//
// A Color renders in the canonical space separated form and re-parsing that
// rendering yields an equal Color.
package color

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Format tells which representation a Color holds.
type Format int

const (
	FormatRGB Format = iota
	FormatHSL
)

func (f Format) String() string {
	if f == FormatHSL {
		return "hsl"
	}
	return "rgb"
}

// RGBA is an sRGB color with 0-255 channels and a 0-1 alpha.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// HSLA holds hue in degrees [0, 360), saturation and lightness in [0, 1] and
// alpha in [0, 1].
type HSLA struct {
	H, S, L float64
	A       float64
}

// Color is either an RGBA or an HSLA value.
type Color struct {
	format Format
	rgb    RGBA
	hsl    HSLA
}

// FromRGBA builds an RGB color, normalizing alpha.
func FromRGBA(r, g, b uint8, a float64) Color {
	return Color{format: FormatRGB, rgb: RGBA{R: r, G: g, B: b, A: normalizeAlpha(a)}}
}

// FromHSLA builds an HSL color. Hue is in degrees, s and l in [0, 1].
func FromHSLA(h, s, l, a float64) Color {
	return Color{format: FormatHSL, hsl: HSLA{
		H: normalizeHue(h),
		S: normalizePercent(s * 100),
		L: normalizePercent(l * 100),
		A: normalizeAlpha(a),
	}}
}

// Format returns the representation the color was parsed or built in.
func (c Color) Format() Format {
	return c.format
}

// Alpha returns the alpha channel in [0, 1].
func (c Color) Alpha() float64 {
	if c.format == FormatHSL {
		return c.hsl.A
	}
	return c.rgb.A
}

// RGB converts the color to RGBA.
func (c Color) RGB() RGBA {
	if c.format == FormatRGB {
		return c.rgb
	}
	r, g, b := colorful.Hsl(c.hsl.H, c.hsl.S, c.hsl.L).Clamped().RGB255()
	return RGBA{R: r, G: g, B: b, A: c.hsl.A}
}

// HSL converts the color to HSLA.
func (c Color) HSL() HSLA {
	if c.format == FormatHSL {
		return c.hsl
	}
	cf := colorful.Color{
		R: float64(c.rgb.R) / 255,
		G: float64(c.rgb.G) / 255,
		B: float64(c.rgb.B) / 255,
	}
	h, s, l := cf.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return FromHSLA(h, s, l, c.rgb.A).hsl
}

// IntoRGB returns the same color in RGB representation.
func (c Color) IntoRGB() Color {
	return Color{format: FormatRGB, rgb: c.RGB()}
}

// IntoHSL returns the same color in HSL representation.
func (c Color) IntoHSL() Color {
	return Color{format: FormatHSL, hsl: c.HSL()}
}

// String renders the canonical CSS Color 4 form. The alpha segment is omitted
// when alpha is 1.
func (c Color) String() string {
	var sb strings.Builder
	switch c.format {
	case FormatHSL:
		sb.WriteString("hsl(")
		sb.WriteString(formatNumber(c.hsl.H))
		sb.WriteByte(' ')
		sb.WriteString(formatNumber(roundTo(c.hsl.S*100, 2)))
		sb.WriteString("% ")
		sb.WriteString(formatNumber(roundTo(c.hsl.L*100, 2)))
		sb.WriteByte('%')
	default:
		sb.WriteString("rgb(")
		sb.WriteString(strconv.Itoa(int(c.rgb.R)))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(int(c.rgb.G)))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(int(c.rgb.B)))
	}
	if a := c.Alpha(); a < 1 {
		sb.WriteString(" / ")
		sb.WriteString(formatNumber(a))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Components renders hue, saturation, lightness and alpha as CSS values,
// e.g. "120", "50%", "25%" and "0.5".
func (c Color) Components() (h, s, l, a string) {
	hsl := c.HSL()
	return formatNumber(hsl.H),
		formatNumber(roundTo(hsl.S*100, 2)) + "%",
		formatNumber(roundTo(hsl.L*100, 2)) + "%",
		formatNumber(hsl.A)
}

// Hex renders #rrggbb, or #rrggbbaa when alpha is below 1.
func (c Color) Hex() string {
	rgb := c.RGB()
	cf := colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
	hex := cf.Hex()
	if rgb.A < 1 {
		hex += strconv.FormatUint(uint64(math.Round(rgb.A*255))|0x100, 16)[1:]
	}
	return hex
}

func normalizeAlpha(a float64) float64 {
	return roundTo(clamp(a, 0, 1), 3)
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h = roundTo(h, 2)
	if h >= 360 {
		h = 0
	}
	return h
}

// normalizePercent clamps a 0-100 percentage and stores it as a fraction.
func normalizePercent(p float64) float64 {
	return roundTo(clamp(p, 0, 100), 2) / 100
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
