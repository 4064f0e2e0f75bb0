package config

import "fmt"

// ErrorKind classifies configuration failures.
type ErrorKind string

const (
	KindParse               ErrorKind = "parse"
	KindValidation          ErrorKind = "validation"
	KindMissingDefaultLayer ErrorKind = "missing-default-layer"
	KindDuplicate           ErrorKind = "duplicate"
)

// Error is a fatal configuration problem. Entity names the offending item
// ("atom", "css_variable", ...), Name its configured name.
type Error struct {
	Kind    ErrorKind
	Path    string
	Line    int
	Entity  string
	Name    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	prefix := "config"
	if e.Path != "" {
		prefix = "config " + e.Path
	}
	if e.Line > 0 {
		prefix = fmt.Sprintf("%s:%d", prefix, e.Line)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s %q: %s", prefix, e.Entity, e.Name, msg)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

// Unwrap exposes the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
