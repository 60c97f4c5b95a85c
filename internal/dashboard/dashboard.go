// Package dashboard drives the refresh loop: sample, compose, emit.
package dashboard

import (
	"context"
	"io"
	"time"

	"codeberg.org/mutker/hwtop/internal/errors"
	"codeberg.org/mutker/hwtop/internal/frame"
	"codeberg.org/mutker/hwtop/internal/logger"
	"codeberg.org/mutker/hwtop/internal/telemetry"
)

// Control tells the loop whether to keep going after a frame.
type Control int

const (
	Continue Control = iota
	Stop
)

type Options struct {
	Interval time.Duration
	Frame    frame.Options
	// Prefix is written ahead of every frame, in the same Write.
	Prefix string
	// SingleShot stops after the first emitted frame.
	SingleShot bool
}

type Dashboard struct {
	src  telemetry.Source
	out  io.Writer
	opts Options
	log  logger.Logger
}

func New(src telemetry.Source, out io.Writer, opts Options) *Dashboard {
	return newDashboard(src, out, opts, logger.Default())
}

func newDashboard(src telemetry.Source, out io.Writer, opts Options, log logger.Logger) *Dashboard {
	return &Dashboard{src: src, out: out, opts: opts, log: log}
}

// Run primes the source so the first frame already carries rates, then
// emits one frame per interval until ctx is done or a tick returns Stop.
func (d *Dashboard) Run(ctx context.Context) error {
	errFactory := errors.New()

	if d.opts.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, d.opts.Interval.String())
	}

	if err := d.src.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errFactory.Wrap(errors.ErrRefresh, err)
	}

	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			ctl, err := d.Tick(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if ctl == Stop {
				return nil
			}
		}
	}
}

// Tick refreshes the source and writes one frame.
func (d *Dashboard) Tick(ctx context.Context) (Control, error) {
	errFactory := errors.New()

	if err := d.src.Refresh(ctx); err != nil {
		return Stop, errFactory.Wrap(errors.ErrRefresh, err)
	}

	snap := d.src.Snapshot()
	f := frame.Compose(snap, d.opts.Frame)

	if _, err := io.WriteString(d.out, d.opts.Prefix+f.String()); err != nil {
		return Stop, errFactory.Wrap(errors.ErrEmitFrame, err)
	}

	d.log.Debug().
		Int("lines", f.Len()).
		Time("sampled_at", snap.Timestamp).
		Msg("Frame emitted")

	if d.opts.SingleShot {
		return Stop, nil
	}

	return Continue, nil
}
