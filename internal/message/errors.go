package message

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCommand       = errors.New("empty command")
	ErrInvalidCommand     = errors.New("command must not contain a space or start with ':' or '@'")
	ErrInvalidTagKey      = errors.New("invalid tag key")
	ErrInvalidSource      = errors.New("source must be non-empty and contain no space")
	ErrParamNeedsTrailing = errors.New("parameter can only be encoded as trailing")
	ErrForbiddenByte      = errors.New("NUL, CR and LF are not allowed")
)

// BuildError reports which part of a Builder could not be encoded.
// Index is the position within tags or params, or -1.
type BuildError struct {
	Field string
	Index int
	Err   error
}

func (e *BuildError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("build %s %d: %v", e.Field, e.Index, e.Err)
	}
	return fmt.Sprintf("build %s: %v", e.Field, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

func buildErr(field string, index int, err error) *BuildError {
	return &BuildError{Field: field, Index: index, Err: err}
}
