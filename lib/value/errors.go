package value

import (
	"errors"
	"fmt"
)

var (
	ErrCast        = errors.New("cast error")
	ErrShape       = fmt.Errorf("%w: unexpected value shape", ErrCast)
	ErrIndex       = errors.New("index out of range")
	ErrUnsupported = errors.New("unsupported operation")
)

// CastError is returned when a value of Source cannot be cast to Target.
// Err, if set, is the underlying failure, e.g. ErrShape or a strconv error.
type CastError struct {
	Target Type
	Source Type
	Reason string
	Err    error
}

func (e *CastError) Error() string {
	msg := fmt.Sprintf("cannot cast %s to %s", e.Source, e.Target)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CastError) Is(target error) bool {
	return target == ErrCast
}

func (e *CastError) Unwrap() error {
	return e.Err
}

func castError(target, source Type, format string, args ...any) error {
	return &CastError{Target: target, Source: source, Reason: fmt.Sprintf(format, args...)}
}

func castFailure(target, source Type, err error) error {
	return &CastError{Target: target, Source: source, Err: err}
}

func unsupported(op string, t Type) error {
	return fmt.Errorf("%w: %s on %s", ErrUnsupported, op, t)
}
