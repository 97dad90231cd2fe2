// Package main provides the matryoshka command-line interface.
//
// matryoshka recursively zips a directory tree so that every file and every
// subdirectory is compressed individually and embedded in its parent's
// archive, ending in a single <folder>.zip. The archiving itself lives in
// package nest; this binary only parses flags and configuration and renders
// progress.
//
// The main binary supports multiple subcommands:
//   - zip: Build a nested archive from a directory
//   - extract: Unpack a nested archive back into a tree
//   - list: Print the tree inside a nested archive
//   - mount: Serve a nested archive read-only over FUSE
//   - count: Preview what zip would archive
//   - clean: Remove retained temporary archives
package main
