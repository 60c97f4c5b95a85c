// Package host samples the machine through gopsutil and sysfs: CPU load
// and frequency, memory, disks, network interfaces, hwmon temperatures
// and fans.
package host

import (
	"context"
	"sync"
	"time"

	"codeberg.org/mutker/hwtop/internal/errors"
	"codeberg.org/mutker/hwtop/internal/logger"
	"codeberg.org/mutker/hwtop/internal/sensors"
	"codeberg.org/mutker/hwtop/internal/telemetry"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

const defaultSysRoot = "/sys"

// BoardFunc returns the motherboard's product name.
type BoardFunc func() (string, error)

type Options struct {
	SysRoot string
	Board   BoardFunc
	Now     func() time.Time
	Logger  logger.Logger
}

// Collector implements telemetry.HostSampler. Rates are computed against
// the previous Sample, so the first one reports zero rates.
type Collector struct {
	sysRoot string
	board   string
	now     func() time.Time
	log     logger.Logger

	mu        sync.Mutex
	prevAt    time.Time
	prevTotal cpu.TimesStat
	prevCores []cpu.TimesStat
	prevDisk  map[string]disk.IOCountersStat
	prevNet   map[string]net.IOCountersStat
}

// New probes the board identity and returns a Collector. A machine that
// cannot name its board is not one we can describe, so that is fatal.
func New(opts Options) (*Collector, error) {
	errFactory := errors.New()

	if opts.SysRoot == "" {
		opts.SysRoot = defaultSysRoot
	}
	if opts.Board == nil {
		opts.Board = ghwBoard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	board, err := opts.Board()
	if err != nil {
		return nil, errFactory.Wrap(ErrBoardUnavailable, err)
	}
	if board == "" {
		return nil, errFactory.New(ErrBoardUnavailable)
	}

	opts.Logger.Debug().Str("board", board).Msg("Detected board")

	return &Collector{
		sysRoot:  opts.SysRoot,
		board:    board,
		now:      opts.Now,
		log:      opts.Logger,
		prevDisk: make(map[string]disk.IOCountersStat),
		prevNet:  make(map[string]net.IOCountersStat),
	}, nil
}

// Sample reads every host metric. Failed reads leave zero values and are
// joined into the returned error; the sample is usable either way.
func (c *Collector) Sample(ctx context.Context) (telemetry.HostSample, error) {
	errFactory := errors.New()

	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		s    telemetry.HostSample
		errs []error
	)

	now := c.now()
	var elapsed float64
	if !c.prevAt.IsZero() {
		elapsed = now.Sub(c.prevAt).Seconds()
	}
	c.prevAt = now

	usage, cores, err := c.sampleCPU(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	s.CPUUsage = usage
	s.CoreUsage = cores
	s.CoreFreqMHz, s.CoreMaxMHz = c.coreFrequencies(len(cores))

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		s.Memory = telemetry.Capacity{Used: vm.Used, Total: vm.Total}
	} else {
		errs = append(errs, errFactory.Wrap(ErrMemory, err))
	}

	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		s.Swap = telemetry.Capacity{Used: swap.Used, Total: swap.Total}
	} else {
		errs = append(errs, errFactory.Wrap(ErrMemory, err))
	}

	s.Disks, err = c.sampleDisks(ctx, elapsed)
	if err != nil {
		errs = append(errs, err)
	}

	s.Networks, err = c.sampleNetworks(ctx, elapsed)
	if err != nil {
		errs = append(errs, err)
	}

	s.Sensors, s.Fans, err = c.sampleSensors(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	return s, errors.Join(errs...)
}

func (c *Collector) sampleSensors(ctx context.Context) ([]sensors.Reading, []telemetry.Fan, error) {
	readings, fans := readHwmon(c.sysRoot)
	if len(readings) > 0 {
		return readings, fans, nil
	}

	fallback, err := gopsutilReadings(ctx)

	return fallback, fans, err
}

// Inventory describes the host for the static summary.
func (c *Collector) Inventory(ctx context.Context) (telemetry.HostInventory, error) {
	brand, cores, err := cpuIdentity(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("Incomplete CPU identity")
	}

	readings, _, err := c.sampleSensors(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("No temperature sensors")
	}

	networks, err := c.interfaces(ctx)
	if err != nil {
		return telemetry.HostInventory{}, err
	}

	return telemetry.HostInventory{
		CPUBrand: brand,
		CPUCores: cores,
		Board:    c.board,
		Sensors:  readings,
		Networks: networks,
	}, nil
}
