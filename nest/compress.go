package nest

import (
	"archive/zip"
	"compress/flate"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
)

// Archive comments marking what a container holds.
const (
	commentFile = "matryoshka:file"
	commentDir  = "matryoshka:dir"
)

// DefaultLevel matches the deflate level the archives have always used.
const DefaultLevel = flate.BestCompression

// LevelStore writes entries uncompressed with the zip Store method. It is
// distinct from 0 because a zero Options.Level selects DefaultLevel.
const LevelStore = -2

// container is a zip archive being written to disk.
type container struct {
	path   string
	f      afero.File
	zw     *zip.Writer
	method uint16
}

// createContainer creates path exclusively; an existing file at path is an
// error rather than something to clobber.
func createContainer(fsys afero.Fs, path string, level int, comment string) (*container, error) {
	f, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, ioError("create", path, err)
	}
	zw := zip.NewWriter(f)
	method := zip.Store
	if level != LevelStore {
		method = zip.Deflate
		zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, level)
		})
	}
	if err := zw.SetComment(comment); err != nil {
		f.Close()
		return nil, ioError("create", path, err)
	}
	return &container{path: path, f: f, zw: zw, method: method}, nil
}

// readTracker remembers whether a copy failed on the read side.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}

// add writes the contents of src (read from r) to c under name.
func (c *container) add(name string, modified time.Time, mode os.FileMode, src string, r io.Reader) error {
	hdr := &zip.FileHeader{
		Name:     name,
		Method:   c.method,
		Modified: modified,
	}
	hdr.SetMode(mode)
	w, err := c.zw.CreateHeader(hdr)
	if err != nil {
		return ioError("write", c.path, err)
	}
	rt := &readTracker{r: r}
	if _, err := io.Copy(w, rt); err != nil {
		if rt.err != nil {
			return ioError("read", src, rt.err)
		}
		return ioError("write", c.path, err)
	}
	return nil
}

// embed copies the artifact at path into c under name.
func (c *container) embed(fsys afero.Fs, path, name string, modified time.Time) error {
	f, err := fsys.Open(path)
	if err != nil {
		return ioError("open", path, err)
	}
	defer f.Close()
	return c.add(name, modified, 0o644, path, f)
}

func (c *container) Close() error {
	if err := c.zw.Close(); err != nil {
		c.f.Close()
		return ioError("write", c.path, err)
	}
	if err := c.f.Close(); err != nil {
		return ioError("close", c.path, err)
	}
	return nil
}

// abandon releases the file handle without finishing the archive.
func (c *container) abandon() {
	c.f.Close()
}

// compressFile writes a single-entry artifact for src at dst. A partially
// written dst is removed on failure.
func compressFile(fsys afero.Fs, src, dst string, info os.FileInfo, level int) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return ioError("open", src, err)
	}
	defer in.Close()

	c, err := createContainer(fsys, dst, level, commentFile)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			c.abandon()
			fsys.Remove(dst)
		}
	}()
	if err = c.add(info.Name(), info.ModTime(), info.Mode().Perm(), src, in); err != nil {
		return err
	}
	return c.Close()
}
