package config

// Mode selects what a run produces.
type Mode string

const (
	// ModeInteractive redraws a frame every interval until interrupted.
	ModeInteractive Mode = "interactive"
	// ModePlain emits a single uncolored frame and exits.
	ModePlain Mode = "plain"
	// ModeInfo prints the static hardware inventory and exits.
	ModeInfo Mode = "info"
)

// SingleShot reports whether the mode stops after one frame.
func (m Mode) SingleShot() bool {
	return m != ModeInteractive
}

// ColorMode controls whether escape sequences are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns whether the color mode is valid
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// LogLevel represents valid logging levels
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// IsValid returns whether the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	default:
		return false
	}
}

// String implements the Stringer interface
func (l LogLevel) String() string {
	return string(l)
}
