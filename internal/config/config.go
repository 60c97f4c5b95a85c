package config

import (
	"strings"
	"time"

	"codeberg.org/mutker/hwtop/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "HWTOP"

	// MinInterval is the shortest sampling period for which CPU usage
	// and counter deltas are meaningful.
	MinInterval = 200 * time.Millisecond

	DefaultInterval    = 500 * time.Millisecond
	DefaultBarWidth    = 14
	DefaultMinDiskSize = uint64(8) << 30
	DefaultLogLevel    = LogLevelWarning

	minBarWidth = 4
)

type Config struct {
	Interval     time.Duration
	Mode         Mode
	Extended     bool
	Color        ColorMode
	BarWidth     int
	VisibleWidth bool
	MinDiskSize  uint64
	LogLevel     LogLevel
}

// RegisterFlags defines every configuration flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Duration("interval", DefaultInterval, "Interval between refreshes")
	fs.Bool("plain", false, "Print a single frame without colors and exit")
	fs.Bool("info", false, "Print static hardware information and exit")
	fs.Bool("extended", false, "Include the per-sensor temperature table")
	fs.String("color", string(ColorAuto), "Color output: auto, always or never")
	fs.Int("bar-width", DefaultBarWidth, "Width of memory capacity bars")
	fs.Bool("visible-width", false, "Align tables on visible width instead of raw string length")
	fs.Uint64("min-disk-size", DefaultMinDiskSize, "Hide disks whose capacity is at most this many bytes")
	fs.String("log-level", string(DefaultLogLevel), "Log level: debug, info, warning or error")
	fs.Bool("debug", false, "Enable debug logging")
	fs.Bool("verbose", false, "Enable verbose logging")
}

// Load resolves the configuration from flags, HWTOP_* environment
// variables and the positional mode words "plain", "info" and "extra".
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("color", string(ColorAuto))
	v.SetDefault("bar-width", DefaultBarWidth)
	v.SetDefault("min-disk-size", DefaultMinDiskSize)
	v.SetDefault("log-level", string(DefaultLogLevel))

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "plain":
			v.Set("plain", true)
		case "info":
			v.Set("info", true)
		case "extra", "extended":
			v.Set("extended", true)
		default:
			return nil, errFactory.WithData(errors.ErrInvalidArgument, arg)
		}
	}

	cfg := &Config{
		Interval:     v.GetDuration("interval"),
		Mode:         ModeInteractive,
		Extended:     v.GetBool("extended"),
		Color:        ColorMode(strings.ToLower(v.GetString("color"))),
		BarWidth:     v.GetInt("bar-width"),
		VisibleWidth: v.GetBool("visible-width"),
		MinDiskSize:  v.GetUint64("min-disk-size"),
		LogLevel:     LogLevel(strings.ToLower(v.GetString("log-level"))),
	}

	switch {
	case v.GetBool("info"):
		cfg.Mode = ModeInfo
	case v.GetBool("plain"):
		cfg.Mode = ModePlain
	}

	if cfg.Mode == ModePlain {
		cfg.Color = ColorNever
	}

	// --debug and --verbose take precedence over --log-level.
	if v.GetBool("debug") {
		cfg.LogLevel = LogLevelDebug
	} else if v.GetBool("verbose") {
		cfg.LogLevel = LogLevelInfo
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval < MinInterval {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval.String())
	}

	if !c.LogLevel.IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel.String())
	}

	if !c.Color.IsValid() {
		return errFactory.WithData(errors.ErrInvalidConfig, "color: "+string(c.Color))
	}

	if c.BarWidth < minBarWidth {
		return errFactory.WithData(errors.ErrInvalidConfig, "bar-width below minimum")
	}

	return nil
}
