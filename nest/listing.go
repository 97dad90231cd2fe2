package nest

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

type skippedEntry struct {
	info   os.FileInfo
	entry  EntryKind
	reason error
}

// listing is one directory's children, partitioned and sorted by name.
type listing struct {
	files   []os.FileInfo
	dirs    []os.FileInfo
	skipped []skippedEntry
}

func (l *listing) skip(info os.FileInfo, entry EntryKind, reason error) {
	l.skipped = append(l.skipped, skippedEntry{info: info, entry: entry, reason: reason})
}

// listDir reads dir once. Symlinks to files are resolved to their targets;
// symlinks to directories, non-regular files and leftover temporary
// artifacts are set aside. A dangling symlink is an error.
func listDir(fsys afero.Fs, dir string) (listing, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return listing{}, ioError("read", dir, err)
	}
	var l listing
	for _, info := range infos {
		if info.Mode()&os.ModeSymlink != 0 {
			path := filepath.Join(dir, info.Name())
			target, err := fsys.Stat(path)
			if err != nil {
				return listing{}, ioError("stat", path, err)
			}
			if target.IsDir() {
				l.skip(info, EntryDir, ErrSymlinkedDir)
				continue
			}
			info = target
		}
		switch {
		case info.IsDir():
			l.dirs = append(l.dirs, info)
		case !info.Mode().IsRegular():
			l.skip(info, EntryFile, ErrIrregular)
		case IsTempName(info.Name()):
			l.skip(info, EntryFile, ErrArtifactName)
		default:
			l.files = append(l.files, info)
		}
	}
	return l, nil
}

// descends reports whether subdirectories of a directory at depth are
// traversed under maxDepth.
func descends(depth, maxDepth int) bool {
	return maxDepth < 0 || depth < maxDepth
}
