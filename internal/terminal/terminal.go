// Package terminal owns the escape sequences that control the screen the
// dashboard draws on, and decides whether output gets colors.
package terminal

import (
	"fmt"
	"io"
	"os"

	"codeberg.org/mutker/hwtop/internal/config"
	"codeberg.org/mutker/hwtop/internal/visual"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Palette resolves mode against out. Auto colors only a terminal that
// supports colors and has not opted out through NO_COLOR.
func Palette(mode config.ColorMode, out *os.File) visual.Palette {
	switch mode {
	case config.ColorAlways:
		return visual.Default()
	case config.ColorNever:
		return visual.Plain()
	}

	if !IsTerminal(out) {
		return visual.Plain()
	}

	o := termenv.NewOutput(out)
	if o.EnvNoColor() {
		return visual.Plain()
	}

	return visual.ForProfile(o.EnvColorProfile())
}

// Screen switches a terminal into the alternate buffer for the lifetime
// of the dashboard and provides the redraw prefix for each frame.
type Screen struct {
	out    *termenv.Output
	active bool
}

func NewScreen(w io.Writer) *Screen {
	return &Screen{out: termenv.NewOutput(w)}
}

// Enter switches to the alternate screen and hides the cursor.
func (s *Screen) Enter() {
	if s.active {
		return
	}
	s.out.AltScreen()
	s.out.HideCursor()
	s.active = true
}

// Leave restores the cursor and the primary screen. It is a no-op unless
// Enter was called.
func (s *Screen) Leave() {
	if !s.active {
		return
	}
	s.out.ShowCursor()
	s.out.ExitAltScreen()
	s.active = false
}

// FramePrefix homes the cursor, clears the display and hides the cursor.
// It is written together with the frame so a redraw is one write.
func FramePrefix() string {
	return termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1) +
		termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2) +
		termenv.CSI + termenv.HideCursorSeq
}
