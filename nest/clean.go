package nest

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Clean removes temporary artifacts left under root, plus a stray root
// container beside it. An empty token matches every run. It returns the
// removed paths.
func Clean(fsys afero.Fs, root string, token RunToken) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, inputError("resolve", root, err)
	}
	if ok, err := afero.DirExists(fsys, root); err != nil {
		return nil, ioError("stat", root, err)
	} else if !ok {
		return nil, inputError("stat", root, ErrNotADirectory)
	}

	matches := func(name string) bool {
		_, t, ok := ParseTempName(name)
		return ok && (token == "" || t == token)
	}

	var removed []string
	remove := func(path string) error {
		if err := fsys.Remove(path); err != nil {
			return ioError("remove", path, err)
		}
		removed = append(removed, path)
		return nil
	}

	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return ioError("walk", path, err)
		}
		if info.Mode().IsRegular() && matches(info.Name()) {
			return remove(path)
		}
		return nil
	})
	if err != nil {
		return removed, err
	}

	parent := filepath.Dir(root)
	siblings, err := afero.ReadDir(fsys, parent)
	if err != nil {
		return removed, ioError("read", parent, err)
	}
	for _, info := range siblings {
		base, _, ok := ParseTempName(info.Name())
		if ok && base == filepath.Base(root) && info.Mode().IsRegular() && matches(info.Name()) {
			if err := remove(filepath.Join(parent, info.Name())); err != nil {
				return removed, err
			}
		}
	}
	return removed, nil
}
