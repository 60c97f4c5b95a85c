package visual

import "github.com/muesli/termenv"

// Severity is a color level, calm to hot.
type Severity int

const (
	Calm Severity = iota
	Mild
	Warm
	Hot
)

// Palette holds the escape sequences used to paint a frame. It is a plain
// value: pass it where it is needed instead of reading globals. The zero
// Palette, also returned by Plain, paints nothing.
type Palette struct {
	Blue    string
	Sky     string
	Magenta string
	Red     string
	Green   string
	Cyan    string
	Dim     string
	Reset   string
}

// Default returns the 16-color ANSI palette.
func Default() Palette {
	return Palette{
		Blue:    fg(termenv.ANSIBrightBlue),
		Sky:     fg(termenv.ANSIBrightCyan),
		Magenta: fg(termenv.ANSIMagenta),
		Red:     fg(termenv.ANSIRed),
		Green:   fg(termenv.ANSIGreen),
		Cyan:    fg(termenv.ANSICyan),
		Dim:     termenv.CSI + termenv.FaintSeq + "m",
		Reset:   termenv.CSI + termenv.ResetSeq + "m",
	}
}

// Plain returns the palette with every sequence empty.
func Plain() Palette {
	return Palette{}
}

// ForProfile picks Default for any color-capable profile and Plain for Ascii.
func ForProfile(profile termenv.Profile) Palette {
	if profile == termenv.Ascii {
		return Plain()
	}

	return Default()
}

// IsPlain reports whether the palette emits no escape sequences.
func (p Palette) IsPlain() bool {
	return p == Palette{}
}

// Color returns the sequence for the severity of percent p.
func (p Palette) Color(percent int) string {
	return p.ForSeverity(TierOf(percent).Severity())
}

// ForSeverity maps a severity onto blue, sky, magenta or red.
func (p Palette) ForSeverity(s Severity) string {
	switch s {
	case Calm:
		return p.Blue
	case Mild:
		return p.Sky
	case Warm:
		return p.Magenta
	default:
		return p.Red
	}
}

func fg(c termenv.ANSIColor) string {
	return termenv.CSI + c.Sequence(false) + "m"
}
