package nest

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Extract unpacks the nested archive at path, recursively, into
// dest/<root name> and returns that directory. It refuses to write over an
// existing entry.
func Extract(fsys afero.Fs, path, dest string) (string, error) {
	root, err := Load(fsys, path)
	if err != nil {
		return "", err
	}
	target := filepath.Join(dest, root.Name)
	if _, err := fsys.Stat(target); err == nil {
		return "", inputError("extract", target, ErrDestinationExists)
	} else if !os.IsNotExist(err) {
		return "", ioError("stat", target, err)
	}
	if err := fsys.MkdirAll(dest, 0o755); err != nil {
		return "", ioError("mkdir", dest, err)
	}
	if err := writeNode(fsys, target, root); err != nil {
		return "", err
	}
	return target, nil
}

func writeNode(fsys afero.Fs, path string, n *Node) error {
	if !n.Dir {
		if err := afero.WriteFile(fsys, path, n.Data, n.Mode); err != nil {
			return ioError("write", path, err)
		}
		return touch(fsys, path, n)
	}
	if err := fsys.Mkdir(path, n.Mode); err != nil {
		return ioError("mkdir", path, err)
	}
	for _, c := range n.Children {
		if err := writeNode(fsys, filepath.Join(path, c.Name), c); err != nil {
			return err
		}
	}
	// after the children, whose writes bump the directory mtime
	return touch(fsys, path, n)
}

func touch(fsys afero.Fs, path string, n *Node) error {
	if n.Modified.IsZero() {
		return nil
	}
	if err := fsys.Chtimes(path, n.Modified, n.Modified); err != nil {
		return ioError("chtimes", path, err)
	}
	return nil
}
