package domain

import (
	"fmt"
	"strings"
)

// MissingSourcesError lists every source of a target that does not exist.
type MissingSourcesError struct {
	Target string
	Paths  []string
}

func (e *MissingSourcesError) Error() string {
	return fmt.Sprintf("%s: target %q: %s", ErrMissingSources.Error(), e.Target, strings.Join(e.Paths, ", "))
}

// Unwrap returns ErrMissingSources.
func (e *MissingSourcesError) Unwrap() error {
	return ErrMissingSources
}

// Step names a backend step.
type Step string

const (
	// StepCompile is the compile step of a single source.
	StepCompile Step = "compile"
	// StepLink is the link or archive step of a target.
	StepLink Step = "link"
)

// BackendError carries the outcome of a failed backend step.
type BackendError struct {
	Step       Step
	Target     string
	Path       string
	ReturnCode int
	Output     string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: target %q: %s: return_code=%d", e.sentinel().Error(), e.Target, e.Path, e.ReturnCode)
}

// Unwrap returns ErrCompileFailed or ErrLinkFailed depending on the step.
func (e *BackendError) Unwrap() error {
	return e.sentinel()
}

func (e *BackendError) sentinel() error {
	if e.Step == StepLink {
		return ErrLinkFailed
	}
	return ErrCompileFailed
}
