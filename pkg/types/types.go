package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why a processing step failed.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindToolMissing
	ErrorKindToolFailed
	ErrorKindProbeOutput
	ErrorKindInputMissing
	ErrorKindDegeneratePlan
	ErrorKindInvalidArgument
	ErrorKindTargetExceeded
)

var errorKindNames = map[ErrorKind]string{
	ErrorKindUnknown:         "unknown",
	ErrorKindToolMissing:     "tool-missing",
	ErrorKindToolFailed:      "tool-failed",
	ErrorKindProbeOutput:     "probe-output",
	ErrorKindInputMissing:    "input-missing",
	ErrorKindDegeneratePlan:  "degenerate-plan",
	ErrorKindInvalidArgument: "invalid-argument",
	ErrorKindTargetExceeded:  "target-exceeded",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ProcessingError is the error returned by every processing operation. Callers
// branch on Kind instead of matching message text.
type ProcessingError struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

// NewError tags err with kind. op names the step ("probe", "compress", ...)
// and path is the file involved, if any.
func NewError(kind ErrorKind, op, path string, err error) error {
	return &ProcessingError{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *ProcessingError) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += fmt.Sprintf(" %q", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s (%s)", msg, e.Kind)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first ProcessingError in err's chain, or
// ErrorKindUnknown.
func KindOf(err error) ErrorKind {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrorKindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
