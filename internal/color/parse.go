package color

import (
	"math"
	"strconv"
	"strings"
)

// Parse tries every supported grammar. A string that starts like one grammar
// but does not satisfy it reports that grammar's error kind; a string that
// starts like none of them reports KindUnknown.
func Parse(s string) (Color, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(in, "#"):
		return ParseHex(s)
	case strings.HasPrefix(in, "rgb"):
		return ParseRGB(s)
	case strings.HasPrefix(in, "hsl"):
		return ParseHSL(s)
	case isBareHex(in):
		return ParseHex(s)
	}
	return Color{}, newError(KindUnknown, s, "")
}

// ParseHex parses #rgb, #rgba, #rrggbb and #rrggbbaa, with the # optional.
func ParseHex(s string) (Color, error) {
	in := strings.TrimSpace(s)
	hex := strings.TrimPrefix(in, "#")
	if hex == in && !isBareHex(strings.ToLower(hex)) {
		return Color{}, newError(KindUnknown, s, "")
	}

	var digits [8]uint8
	for i := 0; i < len(hex); i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return Color{}, newError(KindInvalidHex, s, "non-hex digit")
		}
		if i < len(digits) {
			digits[i] = d
		}
	}

	var r, g, b, a uint8
	a = 255
	switch len(hex) {
	case 3, 4:
		r, g, b = digits[0]*17, digits[1]*17, digits[2]*17
		if len(hex) == 4 {
			a = digits[3] * 17
		}
	case 6, 8:
		r = digits[0]<<4 | digits[1]
		g = digits[2]<<4 | digits[3]
		b = digits[4]<<4 | digits[5]
		if len(hex) == 8 {
			a = digits[6]<<4 | digits[7]
		}
	default:
		return Color{}, newError(KindInvalidHex, s, "expected 3, 4, 6 or 8 digits")
	}
	return FromRGBA(r, g, b, float64(a)/255), nil
}

// ParseRGB parses rgb() and rgba() in comma or space separated form.
func ParseRGB(s string) (Color, error) {
	args, ok, known := functionArgs(s, "rgba", "rgb")
	if !known {
		return Color{}, newError(KindUnknown, s, "")
	}
	if !ok {
		return Color{}, newError(KindInvalidRGB, s, "expected rgb(...)")
	}
	channels, alpha, err := splitChannels(args)
	if err != "" {
		return Color{}, newError(KindInvalidRGB, s, err)
	}

	var rgb [3]uint8
	for i, ch := range channels {
		v, isPct, okNum := parseNumber(ch)
		if !okNum {
			return Color{}, newError(KindInvalidRGB, s, "invalid channel "+strconv.Quote(ch))
		}
		if isPct {
			v = v * 255 / 100
		}
		rgb[i] = uint8(math.Round(clamp(v, 0, 255)))
	}

	a, aerr := parseAlpha(alpha)
	if aerr {
		return Color{}, newError(KindInvalidRGB, s, "invalid alpha "+strconv.Quote(alpha))
	}
	return FromRGBA(rgb[0], rgb[1], rgb[2], a), nil
}

// ParseHSL parses hsl() and hsla() in comma or space separated form. The hue
// accepts deg (default), grad, rad and turn units.
func ParseHSL(s string) (Color, error) {
	args, ok, known := functionArgs(s, "hsla", "hsl")
	if !known {
		return Color{}, newError(KindUnknown, s, "")
	}
	if !ok {
		return Color{}, newError(KindInvalidHSL, s, "expected hsl(...)")
	}
	channels, alpha, err := splitChannels(args)
	if err != "" {
		return Color{}, newError(KindInvalidHSL, s, err)
	}

	hue, okHue := parseHue(channels[0])
	if !okHue {
		return Color{}, newError(KindInvalidHSL, s, "invalid hue "+strconv.Quote(channels[0]))
	}
	var sl [2]float64
	for i, ch := range channels[1:] {
		v, _, okNum := parseNumber(ch)
		if !okNum {
			return Color{}, newError(KindInvalidHSL, s, "invalid channel "+strconv.Quote(ch))
		}
		sl[i] = clamp(v, 0, 100) / 100
	}

	a, aerr := parseAlpha(alpha)
	if aerr {
		return Color{}, newError(KindInvalidHSL, s, "invalid alpha "+strconv.Quote(alpha))
	}
	return FromHSLA(hue, sl[0], sl[1], a), nil
}

// GetFormat reports the representation of a color literal, or an error when
// the literal does not parse.
func GetFormat(s string) (Format, error) {
	c, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return c.Format(), nil
}

// functionArgs strips "name(" ... ")". known is false when s does not start
// with any of the names; ok is false when it does but the call is malformed.
func functionArgs(s string, names ...string) (args string, ok, known bool) {
	in := strings.ToLower(strings.TrimSpace(s))
	for _, name := range names {
		if !strings.HasPrefix(in, name) {
			continue
		}
		rest := strings.TrimSpace(in[len(name):])
		if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
			return "", false, true
		}
		return strings.TrimSpace(rest[1 : len(rest)-1]), true, true
	}
	return "", false, false
}

// splitChannels returns exactly three channel strings and an optional alpha.
func splitChannels(args string) ([]string, string, string) {
	var channels []string
	var alpha string

	if strings.Contains(args, ",") {
		if strings.Contains(args, "/") {
			return nil, "", "cannot mix commas and slash"
		}
		for _, p := range strings.Split(args, ",") {
			channels = append(channels, strings.TrimSpace(p))
		}
		switch len(channels) {
		case 3:
		case 4:
			alpha = channels[3]
			channels = channels[:3]
		default:
			return nil, "", "expected 3 or 4 comma separated values"
		}
	} else {
		main := args
		if idx := strings.Index(args, "/"); idx >= 0 {
			main = args[:idx]
			alpha = strings.TrimSpace(args[idx+1:])
			if alpha == "" || strings.Contains(alpha, "/") {
				return nil, "", "invalid alpha segment"
			}
		}
		channels = strings.Fields(main)
		if len(channels) != 3 {
			return nil, "", "expected 3 space separated values"
		}
	}

	for _, ch := range channels {
		if ch == "" {
			return nil, "", "empty channel"
		}
	}
	return channels, alpha, ""
}

// parseNumber parses "12", "12.5" or "50%".
func parseNumber(s string) (float64, bool, bool) {
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, false
	}
	return v, pct, true
}

// parseAlpha returns 1 for an empty segment. The bool reports a parse failure.
func parseAlpha(s string) (float64, bool) {
	if s == "" {
		return 1, false
	}
	v, pct, ok := parseNumber(s)
	if !ok {
		return 0, true
	}
	if pct {
		v /= 100
	}
	return clamp(v, 0, 1), false
}

var hueUnits = []struct {
	suffix string
	toDeg  float64
}{
	{"grad", 0.9},
	{"turn", 360},
	{"rad", 180 / math.Pi},
	{"deg", 1},
}

func parseHue(s string) (float64, bool) {
	factor := 1.0
	for _, u := range hueUnits {
		if strings.HasSuffix(s, u.suffix) {
			s = strings.TrimSuffix(s, u.suffix)
			factor = u.toDeg
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v * factor, true
}

func isBareHex(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(s); i++ {
		if _, ok := hexDigit(s[i]); !ok {
			return false
		}
	}
	return true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
