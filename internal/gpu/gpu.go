// Package gpu reads accelerator telemetry through NVML.
package gpu

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"codeberg.org/mutker/hwtop/internal/errors"
	"codeberg.org/mutker/hwtop/internal/logger"
	"codeberg.org/mutker/hwtop/internal/telemetry"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const (
	kiloBytesPerMegaByte = 1000
	milliJoulesPerMJ     = 1e9
)

var clockTypes = map[telemetry.ClockDomain]nvml.ClockType{
	telemetry.ClockGraphics: nvml.CLOCK_GRAPHICS,
	telemetry.ClockMemory:   nvml.CLOCK_MEM,
	telemetry.ClockSM:       nvml.CLOCK_SM,
	telemetry.ClockVideo:    nvml.CLOCK_VIDEO,
}

// GPU implements telemetry.GPUSampler. The live sample comes from the
// first device; Inventory lists all of them.
type GPU struct {
	lib     library
	devices []device
	log     logger.Logger
	mu      sync.RWMutex
}

// New initializes NVML and opens every device. It fails when NVML cannot
// start or no device is present.
func New() (*GPU, error) {
	return newGPU(&nvmlWrapper{}, logger.Default())
}

func newGPU(lib library, log logger.Logger) (*GPU, error) {
	errFactory := errors.New()

	if err := lib.Initialize(); err != nil {
		return nil, err
	}

	count, err := lib.GetDeviceCount()
	if err != nil {
		return nil, shutdownOnError(lib, err)
	}
	if count == 0 {
		return nil, shutdownOnError(lib, errFactory.WithMessage(ErrDeviceNotFound, "no NVIDIA GPU found"))
	}

	g := &GPU{lib: lib, log: log}
	for i := 0; i < count; i++ {
		dev, err := lib.GetDevice(i)
		if err != nil {
			return nil, shutdownOnError(lib, err)
		}
		g.devices = append(g.devices, dev)

		if name, ret := dev.GetName(); IsNVMLSuccess(ret) {
			log.Info().Int("index", i).Msgf("Detected GPU: %v", name)
		} else {
			log.Warn().Msgf("Failed to get GPU name: %v", nvml.ErrorString(ret))
		}
	}

	return g, nil
}

func shutdownOnError(lib library, err error) error {
	if shutdownErr := lib.Shutdown(); shutdownErr != nil {
		return errors.Join(err, shutdownErr)
	}

	return err
}

// Close shuts NVML down.
func (g *GPU) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.devices = nil

	return g.lib.Shutdown()
}

// Sample reads the first device. Failed queries read as 0 and are joined
// into the returned error.
func (g *GPU) Sample() (telemetry.GPUSample, error) {
	errFactory := errors.New()

	g.mu.RLock()
	defer g.mu.RUnlock()

	if len(g.devices) == 0 {
		return telemetry.GPUSample{}, errFactory.New(ErrNotInitialized)
	}
	dev := g.devices[0]

	var (
		s    telemetry.GPUSample
		errs []error
	)

	if util, ret := dev.GetUtilizationRates(); IsNVMLSuccess(ret) {
		s.Utilization = int(util.Gpu)
		s.MemoryUtilization = int(util.Memory)
	} else {
		errs = append(errs, errFactory.Wrap(ErrUtilizationFailed, newNVMLError(ret)))
	}

	if temp, ret := dev.GetTemperature(nvml.TEMPERATURE_GPU); IsNVMLSuccess(ret) {
		s.Temperature = int(temp)
	} else {
		errs = append(errs, errFactory.Wrap(ErrTemperatureFailed, newNVMLError(ret)))
	}

	var err error
	s.PowerUsage, s.PowerLimit, err = readPower(dev)
	errs = append(errs, err)

	if mem, ret := dev.GetMemoryInfo(); IsNVMLSuccess(ret) {
		s.Memory = telemetry.Capacity{Used: mem.Used, Total: mem.Total}
	} else {
		errs = append(errs, errFactory.Wrap(ErrMemoryFailed, newNVMLError(ret)))
	}

	for _, domain := range telemetry.ClockDomains() {
		s.Clocks[domain], err = readClock(dev, domain)
		errs = append(errs, err)
	}

	s.Fans, err = readFanSpeeds(dev)
	errs = append(errs, err)

	s.PCIe, err = readPCIe(dev)
	errs = append(errs, err)

	return s, errors.Join(errs...)
}

func readClock(dev device, domain telemetry.ClockDomain) (telemetry.Clock, error) {
	errFactory := errors.New()
	clockType := clockTypes[domain]

	current, ret := dev.GetClockInfo(clockType)
	if !IsNVMLSuccess(ret) {
		return telemetry.Clock{}, errFactory.Wrap(ErrClockFailed, newNVMLError(ret)).WithData(domain.String())
	}

	ceiling, ret := dev.GetMaxClockInfo(clockType)
	if !IsNVMLSuccess(ret) {
		return telemetry.Clock{Current: int(current)}, errFactory.Wrap(ErrClockFailed, newNVMLError(ret)).WithData(domain.String())
	}

	return telemetry.Clock{Current: int(current), Max: int(ceiling)}, nil
}

// readPCIe returns link throughput in MB/s and the maximum link shape.
func readPCIe(dev device) (telemetry.PCIe, error) {
	errFactory := errors.New()

	var (
		p    telemetry.PCIe
		errs []error
	)

	if rx, ret := dev.GetPcieThroughput(nvml.PCIE_UTIL_RX_BYTES); IsNVMLSuccess(ret) {
		p.RxMBps = int(rx / kiloBytesPerMegaByte)
	} else {
		errs = append(errs, errFactory.Wrap(ErrPCIeFailed, newNVMLError(ret)))
	}

	if tx, ret := dev.GetPcieThroughput(nvml.PCIE_UTIL_TX_BYTES); IsNVMLSuccess(ret) {
		p.TxMBps = int(tx / kiloBytesPerMegaByte)
	} else {
		errs = append(errs, errFactory.Wrap(ErrPCIeFailed, newNVMLError(ret)))
	}

	if gen, ret := dev.GetMaxPcieLinkGeneration(); IsNVMLSuccess(ret) {
		p.Gen = gen
	} else {
		errs = append(errs, errFactory.Wrap(ErrPCIeFailed, newNVMLError(ret)))
	}

	if width, ret := dev.GetMaxPcieLinkWidth(); IsNVMLSuccess(ret) {
		p.Width = width
	} else {
		errs = append(errs, errFactory.Wrap(ErrPCIeFailed, newNVMLError(ret)))
	}

	return p, errors.Join(errs...)
}

// Inventory describes every device plus the driver and CUDA versions.
func (g *GPU) Inventory() (telemetry.GPUInventory, error) {
	errFactory := errors.New()

	g.mu.RLock()
	defer g.mu.RUnlock()

	if len(g.devices) == 0 {
		return telemetry.GPUInventory{}, errFactory.New(ErrNotInitialized)
	}

	var inv telemetry.GPUInventory
	for _, dev := range g.devices {
		info, err := describe(dev)
		if err != nil {
			return telemetry.GPUInventory{}, err
		}
		inv.Devices = append(inv.Devices, info)
	}

	driver, err := g.lib.DriverVersion()
	if err != nil {
		return telemetry.GPUInventory{}, err
	}
	inv.Driver = driver

	cuda, err := g.lib.CUDAVersion()
	if err != nil {
		return telemetry.GPUInventory{}, err
	}
	inv.CUDA = FormatCUDAVersion(cuda)

	return inv, nil
}

func describe(dev device) (telemetry.GPUDevice, error) {
	errFactory := errors.New()

	var info telemetry.GPUDevice

	name, ret := dev.GetName()
	if !IsNVMLSuccess(ret) {
		return info, errFactory.Wrap(ErrDeviceInfoFailed, newNVMLError(ret))
	}
	info.Name = ShortName(name)

	mem, ret := dev.GetMemoryInfo()
	if !IsNVMLSuccess(ret) {
		return info, errFactory.Wrap(ErrDeviceInfoFailed, newNVMLError(ret))
	}
	info.MemoryTotal = mem.Total

	for _, domain := range telemetry.ClockDomains() {
		ceiling, ret := dev.GetMaxClockInfo(clockTypes[domain])
		if !IsNVMLSuccess(ret) {
			return info, errFactory.Wrap(ErrDeviceInfoFailed, newNVMLError(ret)).WithData(domain.String())
		}
		info.MaxClocks[domain] = int(ceiling)
	}

	cores, ret := dev.GetNumGpuCores()
	if !IsNVMLSuccess(ret) {
		return info, errFactory.Wrap(ErrDeviceInfoFailed, newNVMLError(ret))
	}
	info.Cores = cores

	energy, ret := dev.GetTotalEnergyConsumption()
	if !IsNVMLSuccess(ret) {
		return info, errFactory.Wrap(ErrDeviceInfoFailed, newNVMLError(ret))
	}
	info.EnergyMJ = math.Round(float64(energy)/milliJoulesPerMJ*100) / 100

	pstate, ret := dev.GetPerformanceState()
	if !IsNVMLSuccess(ret) {
		return info, errFactory.Wrap(ErrDeviceInfoFailed, newNVMLError(ret))
	}
	info.PerfState = int(pstate)

	return info, nil
}

// ShortName drops the vendor and product-line prefixes: "NVIDIA GeForce
// RTX 4090" becomes "RTX 4090".
func ShortName(name string) string {
	name = strings.ReplaceAll(name, "NVIDIA ", "")
	return strings.ReplaceAll(name, "GeForce ", "")
}

// FormatCUDAVersion renders NVML's packed version, 12060 as "12.6".
func FormatCUDAVersion(v int) string {
	return fmt.Sprintf("%d.%d", v/1000, (v%1000)/10)
}
