package progress

import (
	"io"
	"log"

	"github.com/dendrascience/matryoshka/nest"
	"github.com/fatih/color"
	"github.com/taigrr/colorhash"
)

var palette = []*color.Color{
	color.New(color.FgCyan),
	color.New(color.FgMagenta),
	color.New(color.FgBlue),
	color.New(color.FgYellow),
	color.New(color.FgGreen),
	color.New(color.FgRed),
}

// Verbose logs one line per archiving step.
type Verbose struct {
	log     *log.Logger
	created int
	removed int
}

func NewVerbose(w io.Writer) *Verbose {
	return &Verbose{log: log.New(w, "", 0)}
}

// dir colors a directory path the same way every time it appears.
func dir(path string) string {
	h := colorhash.HashString(path) % len(palette)
	if h < 0 {
		h = -h
	}
	return palette[h].Sprint(path)
}

func (v *Verbose) Notify(e nest.Event) {
	switch e.Phase {
	case nest.PhaseStarted:
		if e.Entry == nest.EntryDir {
			v.log.Printf("Processing directory: %s (depth: %d)", dir(e.Path), e.Depth)
		}
	case nest.PhaseCompleted:
		v.created++
		if e.Entry == nest.EntryDir {
			v.log.Printf("Packed directory: %s -> %s", dir(e.Path), e.Artifact)
		} else {
			v.log.Printf("Zipped file: %s -> %s", e.Path, e.Artifact)
		}
		if !e.Retained {
			v.removed++
			v.log.Printf("Removed temporary file: %s", e.Artifact)
		}
	case nest.PhaseSkipped:
		v.log.Printf("Skipping %s %s: %v", e.Entry, e.Path, e.Err)
	case nest.PhaseCleanupFailed:
		v.log.Printf("Warning: could not remove temporary file %s: %v", e.Artifact, e.Err)
	}
}

// Created is the number of artifacts produced so far, root included.
func (v *Verbose) Created() int { return v.created }

// Removed is the number of temporaries deleted after embedding.
func (v *Verbose) Removed() int { return v.removed }
