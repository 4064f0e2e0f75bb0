package synth

import "fmt"

// ErrorKind classifies synthesis failures.
type ErrorKind string

const (
	KindMissingAtom       ErrorKind = "missing-atom"
	KindMissingValue      ErrorKind = "missing-value"
	KindMissingKeyframe   ErrorKind = "missing-keyframe"
	KindMissingVariable   ErrorKind = "missing-variable"
	KindMissingNamedClass ErrorKind = "missing-named-class"
	KindMissingAlias      ErrorKind = "missing-alias"
	KindMissingChunk      ErrorKind = "missing-chunk"
	KindMissingLayer      ErrorKind = "missing-layer"
	KindMissingMediaQuery ErrorKind = "missing-media-query"
	KindMissingModifier   ErrorKind = "missing-modifier"
	KindInvalidColor      ErrorKind = "invalid-color"
)

// Error reports a reference that does not resolve against the run's
// configuration, or a color variable whose value does not parse. Err holds
// the *color.Error in the latter case.
type Error struct {
	Kind ErrorKind
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("synth: %s %q: %v", e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("synth: %s %q", e.Kind, e.Name)
}

func (e *Error) Unwrap() error {
	return e.Err
}
