// Package cmd provides the command-line interface implementation for matryoshka.
//
// Each command lives in its own file with a constructor returning a
// *cobra.Command; NewRootCmd wires them into groups. Commands write results
// to the command's configured output streams so they can be exercised in
// tests, and return errors instead of exiting so main can map error
// classes to exit codes.
//
// Commands:
//   - zip: build a nested archive from a directory tree
//   - extract: unpack a nested archive, recursively
//   - list: print the tree inside a nested archive
//   - mount: serve a nested archive read-only over FUSE
//   - count: preview what zip would archive
//   - clean: remove retained temporary artifacts
package cmd
