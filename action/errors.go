package action

import (
	"fmt"

	"github.com/amend-dev/amend/value"
)

// ShapeError reports a combinator applied to a value of the wrong kind,
// for example Merge on a sequence or Range on a record.
type ShapeError struct {
	// Op is the combinator that failed (e.g. "merge", "range").
	Op string

	// Want describes the kind the combinator requires.
	Want string

	// Got is the kind actually encountered.
	Got value.Kind
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("action: %s requires a %s, got %s", e.Op, e.Want, e.Got)
}

// IndexError reports a sequence addressed with a key that cannot index it,
// such as a non-numeric field name or a negative index.
type IndexError struct {
	// Op is the combinator that failed.
	Op string

	// Key is the offending key.
	Key string
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("action: %s: cannot index sequence with key %q", e.Op, e.Key)
}

// PathError reports a path string that could not be parsed. It is returned
// when the Update built by Select is applied, not when it is constructed.
type PathError struct {
	// Path is the path string that failed to parse.
	Path string

	// Cause is the underlying parse error.
	Cause error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("action: invalid path %q: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PathError) Unwrap() error {
	return e.Cause
}
