package nest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Unlimited disables the depth limit.
const Unlimited = -1

// DefaultMaxRecursion bounds directory nesting.
const DefaultMaxRecursion = 1000

// Options configures an Archiver.
type Options struct {
	// MaxDepth bounds descent: a subdirectory of a directory at depth d is
	// archived only when d < MaxDepth. The root is depth 0, so 0 archives
	// the root's files alone. Unlimited disables the bound.
	MaxDepth int
	// KeepTemporaries leaves every intermediate artifact on disk beside
	// its source after embedding.
	KeepTemporaries bool
	// Level is the deflate level, -1 through 9, or LevelStore. Zero selects
	// DefaultLevel.
	Level int
	// OutputDir receives the root archive. Defaults to the root's parent.
	OutputDir string
	// Token namespaces temporary artifacts. Defaults to NewRunToken().
	Token RunToken
	// Sink receives progress events. May be nil.
	Sink Sink
	// MaxRecursion caps nesting regardless of MaxDepth. Zero selects
	// DefaultMaxRecursion.
	MaxRecursion int
}

// Archiver turns a directory tree into nested zip archives.
type Archiver struct {
	fs   afero.Fs
	opts Options
}

// New validates opts and returns an Archiver working on fsys.
func New(fsys afero.Fs, opts Options) (*Archiver, error) {
	if opts.MaxDepth < Unlimited {
		return nil, inputError("configure", "", ErrInvalidDepth)
	}
	if opts.Level == 0 {
		opts.Level = DefaultLevel
	}
	if (opts.Level < -1 && opts.Level != LevelStore) || opts.Level > 9 {
		return nil, inputError("configure", "", ErrInvalidLevel)
	}
	if opts.Token != "" {
		if _, err := ParseRunToken(string(opts.Token)); err != nil {
			return nil, inputError("configure", "", err)
		}
	}
	if opts.MaxRecursion <= 0 {
		opts.MaxRecursion = DefaultMaxRecursion
	}
	return &Archiver{fs: fsys, opts: opts}, nil
}

// Archive is shorthand for New followed by Archiver.Archive.
func Archive(ctx context.Context, fsys afero.Fs, root string, opts Options) (string, error) {
	a, err := New(fsys, opts)
	if err != nil {
		return "", err
	}
	return a.Archive(ctx, root)
}

// Archive packs root and returns the path of <root>.zip. On failure no root
// archive is produced and in-flight temporaries are removed.
func (a *Archiver) Archive(ctx context.Context, root string) (string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return "", inputError("resolve", root, err)
	}
	info, err := a.fs.Stat(root)
	switch {
	case os.IsNotExist(err):
		return "", inputError("stat", root, ErrNotFound)
	case err != nil:
		return "", ioError("stat", root, err)
	case !info.IsDir():
		return "", inputError("stat", root, ErrNotADirectory)
	}
	name := filepath.Base(root)
	if name == string(filepath.Separator) || name == "." {
		return "", inputError("stat", root, ErrInvalidRoot)
	}

	outDir := filepath.Dir(root)
	if a.opts.OutputDir != "" {
		if outDir, err = filepath.Abs(a.opts.OutputDir); err != nil {
			return "", inputError("resolve", a.opts.OutputDir, err)
		}
		if within(outDir, root) {
			return "", inputError("resolve", outDir, ErrOutputInsideRoot)
		}
	}

	token := a.opts.Token
	if token == "" {
		token = NewRunToken()
	}
	r := &run{
		Archiver: a,
		ctx:      ctx,
		token:    token,
		pending:  make(map[string]struct{}),
	}

	final := filepath.Join(outDir, FinalName(name))
	r.notify(Event{Entry: EntryDir, Phase: PhaseStarted, Path: root})
	tmp, err := r.packDir(root, outDir, 0)
	if err != nil {
		r.abort()
		return "", err
	}
	if err := r.finalize(tmp, final); err != nil {
		r.abort()
		return "", err
	}
	r.notify(Event{Entry: EntryDir, Phase: PhaseCompleted, Path: root, Artifact: final, Retained: true})
	return final, nil
}

// within reports whether path is dir or lies beneath it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// run is the state of a single Archive call.
type run struct {
	*Archiver
	ctx   context.Context
	token RunToken
	// pending holds artifacts created but not yet embedded or released.
	pending map[string]struct{}
}

func (r *run) notify(e Event) {
	if r.opts.Sink != nil {
		r.opts.Sink.Notify(e)
	}
}

// packDir writes the container for dir into outDir under a temporary name
// and returns its path. The caller owns the returned artifact.
func (r *run) packDir(dir, outDir string, depth int) (artifact string, err error) {
	if depth > r.opts.MaxRecursion {
		return "", &Error{Class: ClassResource, Op: "descend", Path: dir, Err: ErrTooDeep}
	}
	if err := r.ctx.Err(); err != nil {
		return "", &Error{Class: ClassIO, Op: "descend", Path: dir, Err: err}
	}
	l, err := listDir(r.fs, dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outDir, r.token.TempName(filepath.Base(dir)))
	c, err := createContainer(r.fs, path, r.opts.Level, commentDir)
	if err != nil {
		return "", err
	}
	r.pending[path] = struct{}{}
	defer func() {
		if err != nil {
			c.abandon()
		}
	}()

	for _, s := range l.skipped {
		r.notify(Event{Entry: s.entry, Phase: PhaseSkipped, Path: filepath.Join(dir, s.info.Name()), Depth: depth, Err: s.reason})
	}
	for _, info := range l.files {
		if err := r.packFile(c, dir, info, depth); err != nil {
			return "", err
		}
	}
	for _, info := range l.dirs {
		sub := filepath.Join(dir, info.Name())
		if !descends(depth, r.opts.MaxDepth) {
			r.notify(Event{Entry: EntryDir, Phase: PhaseSkipped, Path: sub, Depth: depth + 1, Err: ErrBeyondDepth})
			continue
		}
		if err := r.ctx.Err(); err != nil {
			return "", &Error{Class: ClassIO, Op: "descend", Path: sub, Err: err}
		}
		r.notify(Event{Entry: EntryDir, Phase: PhaseStarted, Path: sub, Depth: depth + 1})
		art, err := r.packDir(sub, dir, depth+1)
		if err != nil {
			return "", err
		}
		if err := c.embed(r.fs, art, FinalName(info.Name()), info.ModTime()); err != nil {
			return "", err
		}
		retained := r.release(art, sub, EntryDir, depth+1)
		r.notify(Event{Entry: EntryDir, Phase: PhaseCompleted, Path: sub, Depth: depth + 1, Artifact: art, Retained: retained})
	}
	if err := c.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func (r *run) packFile(c *container, dir string, info os.FileInfo, depth int) error {
	if err := r.ctx.Err(); err != nil {
		return &Error{Class: ClassIO, Op: "compress", Path: dir, Err: err}
	}
	src := filepath.Join(dir, info.Name())
	r.notify(Event{Entry: EntryFile, Phase: PhaseStarted, Path: src, Depth: depth})

	art := filepath.Join(dir, r.token.TempName(info.Name()))
	if err := compressFile(r.fs, src, art, info, r.opts.Level); err != nil {
		return err
	}
	r.pending[art] = struct{}{}
	if err := c.embed(r.fs, art, FinalName(info.Name()), info.ModTime()); err != nil {
		return err
	}
	retained := r.release(art, src, EntryFile, depth)
	r.notify(Event{Entry: EntryFile, Phase: PhaseCompleted, Path: src, Depth: depth, Artifact: art, Retained: retained})
	return nil
}

// release drops an embedded artifact, deleting it unless temporaries are
// kept, and reports whether it is still on disk. A failed delete is
// reported, not returned.
func (r *run) release(art, src string, entry EntryKind, depth int) (retained bool) {
	delete(r.pending, art)
	if r.opts.KeepTemporaries {
		return true
	}
	if err := r.fs.Remove(art); err != nil {
		r.notify(Event{Entry: entry, Phase: PhaseCleanupFailed, Path: src, Depth: depth, Artifact: art, Err: err})
		return true
	}
	return false
}

// finalize moves the finished root container to its permanent name,
// replacing an earlier archive.
func (r *run) finalize(tmp, final string) error {
	if info, err := r.fs.Stat(final); err == nil && info.Mode().IsRegular() {
		if err := r.fs.Remove(final); err != nil {
			return ioError("replace", final, err)
		}
	}
	if err := r.fs.Rename(tmp, final); err != nil {
		return ioError("rename", tmp, err)
	}
	delete(r.pending, tmp)
	return nil
}

// abort removes every artifact that never reached its parent.
func (r *run) abort() {
	for art := range r.pending {
		if err := r.fs.Remove(art); err != nil && !os.IsNotExist(err) {
			r.notify(Event{Phase: PhaseCleanupFailed, Path: art, Artifact: art, Err: err})
		}
	}
	clear(r.pending)
}
