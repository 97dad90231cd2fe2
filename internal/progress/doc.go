// Package progress renders archiver events for a terminal.
//
// Bar drives a progressbar when its writer is a terminal and falls back to
// one line per finished directory otherwise. Verbose logs every step,
// coloring each directory consistently by a hash of its path. Both only
// consume nest.Event values and never influence archiving.
package progress
