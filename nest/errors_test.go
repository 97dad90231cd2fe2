package nest

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		class Class
	}{
		{
			name:  "permission denied",
			err:   ioError("open", "/x", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}),
			class: ClassIO,
		},
		{
			name:  "disk full",
			err:   ioError("write", "/x", &fs.PathError{Op: "write", Path: "/x", Err: syscall.ENOSPC}),
			class: ClassResource,
		},
		{
			name:  "too many open files",
			err:   ioError("open", "/x", syscall.EMFILE),
			class: ClassResource,
		},
		{
			name:  "input",
			err:   inputError("stat", "/x", ErrNotFound),
			class: ClassInput,
		},
		{
			name:  "wrapped twice keeps first class",
			err:   fmt.Errorf("outer: %w", ioError("read", "/y", inputError("stat", "/x", ErrNotADirectory))),
			class: ClassInput,
		},
		{
			name:  "plain error",
			err:   errors.New("boom"),
			class: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassOf(tt.err); got != tt.class {
				t.Errorf("ClassOf(%v) = %v, want %v", tt.err, got, tt.class)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := ioError("open", "/tmp/x", fs.ErrPermission)
	if got, want := err.Error(), "open /tmp/x: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should see the wrapped cause")
	}
	if got := inputError("configure", "", ErrInvalidLevel).Error(); got != "configure: compression level must be between -1 and 9" {
		t.Errorf("Error() without path = %q", got)
	}
}
