package nest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Node is one entry of a decoded nested archive.
type Node struct {
	Name     string
	Dir      bool
	Mode     os.FileMode // permission bits, files only
	Modified time.Time
	Data     []byte // file contents
	Children []*Node
}

// Child returns the direct child called name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Size is the file length, or the number of children for a directory.
func (n *Node) Size() int64 {
	if n.Dir {
		return int64(len(n.Children))
	}
	return int64(len(n.Data))
}

// WalkFunc is called for every node in pre-order. path joins the names
// from the root node down, the root's own name included.
type WalkFunc func(path string, n *Node, depth int) error

// Walk visits n and its descendants in stored order.
func (n *Node) Walk(fn WalkFunc) error {
	return n.walk(n.Name, 0, fn)
}

func (n *Node) walk(path string, depth int, fn WalkFunc) error {
	if err := fn(path, n, depth); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.walk(filepath.Join(path, c.Name), depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the nested archive at path fully into memory.
func Load(fsys afero.Fs, path string) (*Node, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, inputError("stat", path, ErrNotFound)
		}
		return nil, ioError("stat", path, err)
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, ioError("read", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ArchiveExt)
	n, err := decode(name, data, info.ModTime(), 0)
	if err != nil {
		return nil, &Error{Class: ClassInput, Op: "decode", Path: path, Err: err}
	}
	return n, nil
}

func decode(name string, data []byte, modified time.Time, depth int) (*Node, error) {
	if depth > DefaultMaxRecursion {
		return nil, ErrTooDeep
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	switch zr.Comment {
	case commentFile:
		return decodeFile(name, zr)
	case commentDir:
		return decodeDir(name, zr, modified, depth)
	}
	// Unmarked archives: a lone entry named after the container is a file.
	if len(zr.File) == 1 && zr.File[0].Name == name && !strings.HasSuffix(name, ArchiveExt) {
		return decodeFile(name, zr)
	}
	return decodeDir(name, zr, modified, depth)
}

func decodeFile(name string, zr *zip.Reader) (*Node, error) {
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("%w: %s: file artifact holds %d entries", ErrMalformed, name, len(zr.File))
	}
	f := zr.File[0]
	if !safeName(f.Name) {
		return nil, fmt.Errorf("%w: unsafe entry name %q", ErrMalformed, f.Name)
	}
	data, err := readEntry(f)
	if err != nil {
		return nil, err
	}
	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	return &Node{Name: f.Name, Mode: mode, Modified: f.Modified, Data: data}, nil
}

func decodeDir(name string, zr *zip.Reader, modified time.Time, depth int) (*Node, error) {
	n := &Node{Name: name, Dir: true, Mode: 0o755, Modified: modified}
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ArchiveExt) || !safeName(f.Name) {
			return nil, fmt.Errorf("%w: %s: unexpected entry %q", ErrMalformed, name, f.Name)
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		child, err := decode(strings.TrimSuffix(f.Name, ArchiveExt), data, f.Modified, depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, f.Name, err)
	}
	return data, nil
}

// safeName rejects entry names that could escape the extraction directory.
// Only the path separator matters; other bytes are legal in a file name.
func safeName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsRune(name, '/') &&
		!strings.ContainsRune(name, filepath.Separator)
}
