package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/hwtop/internal/config"
	"codeberg.org/mutker/hwtop/internal/dashboard"
	"codeberg.org/mutker/hwtop/internal/errors"
	"codeberg.org/mutker/hwtop/internal/frame"
	"codeberg.org/mutker/hwtop/internal/gpu"
	"codeberg.org/mutker/hwtop/internal/host"
	"codeberg.org/mutker/hwtop/internal/logger"
	"codeberg.org/mutker/hwtop/internal/table"
	"codeberg.org/mutker/hwtop/internal/telemetry"
	"codeberg.org/mutker/hwtop/internal/terminal"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.ErrorWithCode(asError(err)).Msg("hwtop failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hwtop [plain|info|extra]",
		Short: "Live CPU, GPU, memory, disk and network dashboard",
		Long: "hwtop redraws a compact, color-graded view of the machine's sensors\n" +
			"every interval. \"plain\" prints one uncolored frame, \"info\" prints the\n" +
			"static hardware inventory and \"extra\" adds every temperature sensor.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags(), args)
	if err != nil {
		return err
	}

	logger.Init(cfg.LogLevel.String(), os.Stderr)
	logger.Debug().
		Str("mode", string(cfg.Mode)).
		Dur("interval", cfg.Interval).
		Bool("extended", cfg.Extended).
		Msg("Config loaded")

	src := newSource()
	defer func() {
		if err := src.Close(); err != nil {
			logger.ErrorWithCode(asError(err)).Msg("Failed to release telemetry source")
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go handleSignals(cancel)

	opts := frame.Options{
		Palette:     terminal.Palette(cfg.Color, os.Stdout),
		Layout:      table.New(cfg.VisibleWidth),
		BarWidth:    cfg.BarWidth,
		MinDiskSize: cfg.MinDiskSize,
		Extended:    cfg.Extended,
	}

	if cfg.Mode == config.ModeInfo {
		return printInventory(ctx, src, opts)
	}

	dopts := dashboard.Options{
		Interval:   cfg.Interval,
		Frame:      opts,
		SingleShot: cfg.Mode.SingleShot(),
	}

	if !dopts.SingleShot && terminal.IsTerminal(os.Stdout) {
		screen := terminal.NewScreen(os.Stdout)
		screen.Enter()
		defer screen.Leave()
		dopts.Prefix = terminal.FramePrefix()
	}

	return dashboard.New(src, os.Stdout, dopts).Run(ctx)
}

// newSource opens the host and GPU samplers. Failing to identify either
// leaves nothing worth drawing, so both are fatal.
func newSource() telemetry.Source {
	hostCollector, err := host.New(host.Options{})
	if err != nil {
		logger.FatalWithCode(asError(err)).Msg("Failed to initialize host collector")
	}

	gpuDevice, err := gpu.New()
	if err != nil {
		logger.FatalWithCode(asError(err)).Msg("Failed to initialize GPU")
	}

	src, err := telemetry.NewService(hostCollector, gpuDevice)
	if err != nil {
		logger.FatalWithCode(asError(err)).Msg("Failed to initialize telemetry")
	}

	return src
}

func printInventory(ctx context.Context, src telemetry.Source, opts frame.Options) error {
	errFactory := errors.New()

	inv, err := src.Inventory(ctx)
	if err != nil {
		return errFactory.Wrap(errors.ErrInventory, err)
	}

	if _, err := fmt.Fprint(os.Stdout, frame.RenderStaticSummary(inv, opts)); err != nil {
		return errFactory.Wrap(errors.ErrTerminalIO, err)
	}

	return nil
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

// asError returns err as an errors.Error, wrapping foreign errors as
// internal ones so they can be logged with a code.
func asError(err error) errors.Error {
	var appErr errors.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return errors.New().Wrap(errors.ErrInternal, err)
}
