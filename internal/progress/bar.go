package progress

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dendrascience/matryoshka/nest"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

const barWidth = 30

// Bar is a progress indicator over a known number of items.
type Bar struct {
	w     io.Writer
	total int
	done  int
	pb    *progressbar.ProgressBar // nil off a terminal
	warn  *color.Color
}

// NewBar returns a Bar expecting total completed items (files plus
// directories, root included). A total of zero draws a spinner on a
// terminal and a plain counter otherwise.
func NewBar(w io.Writer, total int) *Bar {
	return newBar(w, total, IsTerminal(w))
}

func newBar(w io.Writer, total int, tty bool) *Bar {
	b := &Bar{w: w, total: total, warn: color.New(color.FgYellow)}
	if !tty {
		return b
	}
	n := total
	if n <= 0 {
		n = -1
	}
	saucer := "█"
	if !color.NoColor {
		saucer = "[green]█[reset]"
	}
	b.pb = progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(barWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionEnableColorCodes(!color.NoColor),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        saucer,
			SaucerPadding: "░",
		}),
	)
	return b
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (b *Bar) Notify(e nest.Event) {
	switch e.Phase {
	case nest.PhaseCompleted:
		b.done++
		if b.pb != nil {
			b.pb.Describe(filepath.Base(e.Path))
			b.pb.Add(1)
		} else if e.Entry == nest.EntryDir {
			fmt.Fprintf(b.w, "%s %s\n", b.counter(), e.Path)
		}
	case nest.PhaseCleanupFailed:
		if b.pb != nil {
			b.pb.Clear()
		}
		b.warn.Fprintf(b.w, "warning: could not remove %s: %v\n", e.Artifact, e.Err)
	}
}

// Finish leaves the bar in its current state and ends its line.
func (b *Bar) Finish() {
	if b.pb == nil {
		return
	}
	if !b.pb.IsFinished() {
		b.pb.Exit()
	}
	fmt.Fprintln(b.w)
	b.pb = nil
}

func (b *Bar) counter() string {
	if b.total > 0 {
		return fmt.Sprintf("[%d/%d]", b.done, b.total)
	}
	return fmt.Sprintf("[%d]", b.done)
}
