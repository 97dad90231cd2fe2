// Package mountfs serves a decoded nested archive as a read-only FUSE
// filesystem.
//
// Directory containers appear as directories and file artifacts as the
// file they hold, so a mounted root.zip looks like the tree it was built
// from. The whole archive is decoded into memory by nest.Load before
// serving; nothing is read from disk afterwards.
//
// Inodes are assigned once, in pre-order, with the root at 1.
package mountfs
