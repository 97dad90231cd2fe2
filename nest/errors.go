package nest

import (
	"errors"
	"fmt"
	"syscall"
)

// Sentinel errors for package nest.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Root path errors
	ErrNotFound          = errors.New("root path does not exist")
	ErrNotADirectory     = errors.New("root path is not a directory")
	ErrInvalidRoot       = errors.New("root path has no usable name")
	ErrOutputInsideRoot  = errors.New("output directory lies inside the tree being archived")
	ErrDestinationExists = errors.New("destination already exists")

	// Option errors
	ErrInvalidDepth = errors.New("max depth must be non-negative or Unlimited")
	ErrInvalidLevel = errors.New("compression level must be between -1 and 9")
	ErrInvalidToken = errors.New("run token must be 8 lowercase hex characters")

	// Traversal errors
	ErrTooDeep = errors.New("directory nesting exceeds recursion limit")

	// Skip reasons reported through Event.Err
	ErrBeyondDepth  = errors.New("beyond max depth")
	ErrSymlinkedDir = errors.New("symlinked directory")
	ErrIrregular    = errors.New("not a regular file")
	ErrArtifactName = errors.New("name matches a temporary artifact")

	// Archive decoding errors
	ErrMalformed = errors.New("malformed nested archive")
)

// Class is the broad category of a failure.
type Class int

const (
	// ClassInput covers a missing or unusable root path and invalid options.
	ClassInput Class = iota + 1
	// ClassIO covers read, write and permission failures during traversal.
	ClassIO
	// ClassResource covers exhausted disk space, file handles or stack depth.
	ClassResource
)

func (c Class) String() string {
	switch c {
	case ClassInput:
		return "input error"
	case ClassIO:
		return "i/o error"
	case ClassResource:
		return "resource error"
	}
	return "unknown error"
}

// Error records the class, operation and path of a failed archive step.
type Error struct {
	Class Class
	Op    string
	Path  string
	Err   error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ClassOf returns the class of err, or 0 when err carries none.
func ClassOf(err error) Class {
	var e *Error
	if errors.As(err, &e) {
		return e.Class
	}
	return 0
}

func inputError(op, path string, err error) error {
	return &Error{Class: ClassInput, Op: op, Path: path, Err: err}
}

// ioError wraps a filesystem failure, promoting exhaustion errnos to
// ClassResource.
func ioError(op, path string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	class := ClassIO
	if isExhaustion(err) {
		class = ClassResource
	}
	return &Error{Class: class, Op: op, Path: path, Err: err}
}

func isExhaustion(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
