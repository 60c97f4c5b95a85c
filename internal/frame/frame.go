// Package frame composes one refresh worth of dashboard lines from a
// telemetry snapshot.
package frame

import (
	"io"
	"slices"
	"strings"

	"codeberg.org/mutker/hwtop/internal/table"
	"codeberg.org/mutker/hwtop/internal/visual"
)

const (
	DefaultBarWidth    = 14
	DefaultMinDiskSize = 8 << 30
)

// Options controls how a frame is painted.
type Options struct {
	Palette     visual.Palette
	Layout      table.Layout
	BarWidth    int
	MinDiskSize uint64
	Extended    bool
}

// DefaultOptions paints with the ANSI palette and raw-width tables.
func DefaultOptions() Options {
	return Options{
		Palette:     visual.Default(),
		Layout:      table.New(false),
		BarWidth:    DefaultBarWidth,
		MinDiskSize: DefaultMinDiskSize,
	}
}

// Frame is the ordered, fully rendered lines of one tick.
type Frame struct {
	lines []string
}

// Lines returns a copy of the frame's lines.
func (f Frame) Lines() []string {
	return slices.Clone(f.lines)
}

// Len returns the number of lines.
func (f Frame) Len() int {
	return len(f.lines)
}

// String joins the lines, each terminated by a newline.
func (f Frame) String() string {
	var b strings.Builder
	for _, line := range f.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// WriteTo emits the whole frame with a single Write.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte(f.String()))
	return int64(n), err
}
