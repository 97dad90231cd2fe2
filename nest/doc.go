// Package nest builds and reads matryoshka archives: zip files in which
// every file and every subdirectory of a tree is compressed on its own and
// then embedded in its parent's archive.
//
// Archiving walks the tree depth-first. For each directory it creates an
// empty container, compresses each file into a temporary artifact, embeds
// the artifact and releases it, then does the same for each subdirectory by
// recursing. The root's container becomes <root>.zip beside the tree.
//
// Layout of a result for root/{a.txt,sub/c.txt}:
//
//	root.zip
//	├── a.txt.zip      (holds a.txt)
//	└── sub.zip
//	    └── c.txt.zip  (holds c.txt)
//
// Temporary artifacts are written next to their source as
// <name>_<token>.zip, where the token is unique to the run, so concurrent
// or repeated runs over the same tree never collide. They are deleted once
// embedded unless Options.KeepTemporaries is set. Two runs targeting the
// same root archive at once are not supported.
//
// Progress is reported through a Sink; the archiver has no notion of
// terminals or verbosity.
//
// Load, Extract and Clean operate on the output: decoding a nested archive
// back into a tree, unpacking it, and sweeping retained temporaries.
//
// Every filesystem access goes through an afero.Fs, so the whole package
// runs against afero.NewMemMapFs() as readily as against the OS.
package nest
