package mountfs

import (
	"context"
	"os"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/matryoshka/nest"
)

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.HandleReadAller    = (*File)(nil)
)

// FS is a read-only view of a nested archive.
type FS struct {
	root   *nest.Node
	inodes map[*nest.Node]uint64
}

// New indexes root for serving.
func New(root *nest.Node) *FS {
	f := &FS{root: root, inodes: make(map[*nest.Node]uint64)}
	var next uint64
	root.Walk(func(_ string, n *nest.Node, _ int) error {
		next++
		f.inodes[n] = next
		return nil
	})
	return f
}

// Root returns the directory node of the archive root.
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, node: f.root}, nil
}

func (f *FS) nodeFor(n *nest.Node) fs.Node {
	if n.Dir {
		return &Dir{fs: f, node: n}
	}
	return &File{fs: f, node: n}
}

// Dir is a directory container.
type Dir struct {
	fs   *FS
	node *nest.Node
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = d.fs.inodes[d.node]
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.node.Modified
	a.Ctime = d.node.Modified
	a.Nlink = 2
	return nil
}

// Lookup resolves a child by name
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	c := d.node.Child(name)
	if c == nil {
		return nil, syscall.ENOENT
	}
	return d.fs.nodeFor(c), nil
}

// ReadDirAll lists the children in archive order
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirents := make([]fuse.Dirent, 0, len(d.node.Children))
	for _, c := range d.node.Children {
		typ := fuse.DT_File
		if c.Dir {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{
			Inode: d.fs.inodes[c],
			Name:  c.Name,
			Type:  typ,
		})
	}
	return dirents, nil
}

// File is the content of a file artifact.
type File struct {
	fs   *FS
	node *nest.Node
}

// Attr returns file attributes; write bits are masked off.
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.fs.inodes[f.node]
	a.Mode = f.node.Mode.Perm() &^ 0o222
	a.Size = uint64(len(f.node.Data))
	a.Mtime = f.node.Modified
	a.Ctime = f.node.Modified
	a.Nlink = 1
	return nil
}

// ReadAll returns the file content
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	return f.node.Data, nil
}
