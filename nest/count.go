package nest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Tally is what an archive run over the same tree would touch.
type Tally struct {
	Files   int
	Dirs    int // including the root
	Skipped int
	Bytes   int64
}

// Items is the number of progress-reported entries, files and directories.
func (t Tally) Items() int {
	return t.Files + t.Dirs
}

// Count walks root with the same listing and depth policy as Archive
// without writing anything.
func Count(ctx context.Context, fsys afero.Fs, root string, maxDepth int) (Tally, error) {
	if maxDepth < Unlimited {
		return Tally{}, inputError("configure", "", ErrInvalidDepth)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return Tally{}, inputError("resolve", root, err)
	}
	info, err := fsys.Stat(root)
	switch {
	case os.IsNotExist(err):
		return Tally{}, inputError("stat", root, ErrNotFound)
	case err != nil:
		return Tally{}, ioError("stat", root, err)
	case !info.IsDir():
		return Tally{}, inputError("stat", root, ErrNotADirectory)
	}

	var t Tally
	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		if depth > DefaultMaxRecursion {
			return &Error{Class: ClassResource, Op: "descend", Path: dir, Err: ErrTooDeep}
		}
		if err := ctx.Err(); err != nil {
			return &Error{Class: ClassIO, Op: "descend", Path: dir, Err: err}
		}
		l, err := listDir(fsys, dir)
		if err != nil {
			return err
		}
		t.Dirs++
		t.Skipped += len(l.skipped)
		for _, f := range l.files {
			t.Files++
			t.Bytes += f.Size()
		}
		if !descends(depth, maxDepth) {
			t.Skipped += len(l.dirs)
			return nil
		}
		for _, d := range l.dirs {
			if err := walk(filepath.Join(dir, d.Name()), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, 0); err != nil {
		return Tally{}, err
	}
	return t, nil
}
