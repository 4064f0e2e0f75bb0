package extension

import "fmt"

// Phase names the hook an extension failed in.
type Phase string

const (
	PhaseReadOptions  Phase = "read_options"
	PhaseMutateConfig Phase = "mutate_config"
	PhaseGenerateCode Phase = "generate_code"
	PhaseScanCode     Phase = "scan_code"
)

// Error wraps a failure returned by an extension hook.
type Error struct {
	ID    string
	Phase Phase
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extension '%s' failed in %s: %v", e.ID, e.Phase, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrDuplicateID is returned when two extensions share an ID.
type ErrDuplicateID struct {
	ID string
}

func (e ErrDuplicateID) Error() string {
	return fmt.Sprintf("extension '%s' already registered", e.ID)
}
