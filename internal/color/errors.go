package color

import (
	"errors"
	"fmt"
)

// Kind classifies a color parse failure.
type Kind int

const (
	// KindUnknown means the input matches none of the supported grammars.
	KindUnknown Kind = iota
	// KindInvalidHex means the input looked like a hex color but was malformed.
	KindInvalidHex
	// KindInvalidRGB means the input started with rgb( or rgba( but was malformed.
	KindInvalidRGB
	// KindInvalidHSL means the input started with hsl( or hsla( but was malformed.
	KindInvalidHSL
)

// Sentinels for errors.Is checks against *Error values.
var (
	ErrUnknown    = errors.New("unknown color format")
	ErrInvalidHex = errors.New("invalid hex color")
	ErrInvalidRGB = errors.New("invalid rgb color")
	ErrInvalidHSL = errors.New("invalid hsl color")
)

func (k Kind) String() string {
	switch k {
	case KindInvalidHex:
		return "invalid-hex"
	case KindInvalidRGB:
		return "invalid-rgb"
	case KindInvalidHSL:
		return "invalid-hsl"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidHex:
		return ErrInvalidHex
	case KindInvalidRGB:
		return ErrInvalidRGB
	case KindInvalidHSL:
		return ErrInvalidHSL
	default:
		return ErrUnknown
	}
}

// Error is returned by every parser in this package.
type Error struct {
	Kind   Kind
	Input  string
	Reason string
}

func newError(kind Kind, input, reason string) *Error {
	return &Error{Kind: kind, Input: input, Reason: reason}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s %q: %s", e.Kind.sentinel(), e.Input, e.Reason)
	}
	return fmt.Sprintf("%s %q", e.Kind.sentinel(), e.Input)
}

// Is lets errors.Is match the package sentinels.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return target == e.Kind.sentinel()
}

// IsUnknown reports whether err says the input is not a color literal at all,
// as opposed to a malformed literal of a known grammar.
func IsUnknown(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindUnknown
}
