package telemetry

import (
	"context"
	"strings"
	"time"

	"codeberg.org/mutker/hwtop/internal/sensors"
)

// Source is the hardware-query side of the dashboard. Refresh advances
// the sample; Snapshot returns the last one.
type Source interface {
	Refresh(ctx context.Context) error
	Snapshot() Snapshot
	Inventory(ctx context.Context) (Inventory, error)
	Close() error
}

// HostSampler reads everything but the accelerator.
type HostSampler interface {
	Sample(ctx context.Context) (HostSample, error)
	Inventory(ctx context.Context) (HostInventory, error)
}

// GPUSampler reads the accelerator.
type GPUSampler interface {
	Sample() (GPUSample, error)
	Inventory() (GPUInventory, error)
	Close() error
}

// Snapshot is one tick worth of materialized readings.
type Snapshot struct {
	Timestamp time.Time
	Host      HostSample
	GPU       GPUSample
}

// Capacity is a used/total byte pair.
type Capacity struct {
	Used  uint64
	Total uint64
}

type HostSample struct {
	CPUUsage    float64
	CoreUsage   []float64
	CoreFreqMHz []float64
	CoreMaxMHz  []float64
	Memory      Capacity
	Swap        Capacity
	Disks       []Disk
	Networks    []Interface
	Sensors     []sensors.Reading
	Fans        []Fan
}

type Disk struct {
	Device     string
	Mountpoint string
	Capacity
	ReadRate   float64
	WriteRate  float64
	ReadTotal  uint64
	WriteTotal uint64
}

// Name is the device without its "/dev/" prefix.
func (d Disk) Name() string {
	return strings.TrimPrefix(d.Device, "/dev/")
}

type Interface struct {
	Name         string
	MAC          string
	Addrs        []string
	RxRate       float64
	TxRate       float64
	RxPacketRate float64
	TxPacketRate float64
	RxTotal      uint64
	TxTotal      uint64
}

// Monitored drops container veths, loopback, bridges and interfaces that
// have never moved a byte.
func (i Interface) Monitored() bool {
	switch {
	case strings.Contains(i.Name, "veth"),
		i.Name == "lo",
		strings.HasPrefix(i.Name, "br-"),
		i.RxTotal == 0 && i.TxTotal == 0:
		return false
	}

	return true
}

// Fan is a system fan reading from hwmon.
type Fan struct {
	Label string
	RPM   int
}

type ClockDomain int

const (
	ClockGraphics ClockDomain = iota
	ClockMemory
	ClockSM
	ClockVideo
	clockDomains
)

func (d ClockDomain) String() string {
	switch d {
	case ClockGraphics:
		return "GFX"
	case ClockMemory:
		return "MEM"
	case ClockSM:
		return "SM"
	case ClockVideo:
		return "VID"
	default:
		return "?"
	}
}

// ClockDomains lists the domains in display order.
func ClockDomains() []ClockDomain {
	return []ClockDomain{ClockGraphics, ClockMemory, ClockSM, ClockVideo}
}

// Clock is a live clock against its ceiling, in MHz.
type Clock struct {
	Current int
	Max     int
}

// PCIe holds link throughput in MB/s and the maximum link shape.
type PCIe struct {
	RxMBps int
	TxMBps int
	Gen    int
	Width  int
}

type GPUSample struct {
	Utilization       int
	MemoryUtilization int
	Temperature       int
	PowerUsage        int
	PowerLimit        int
	Memory            Capacity
	Clocks            [clockDomains]Clock
	Fans              []int
	PCIe              PCIe
}

// Clock returns the reading for domain d.
func (s GPUSample) Clock(d ClockDomain) Clock {
	if d < 0 || d >= clockDomains {
		return Clock{}
	}

	return s.Clocks[d]
}

// Inventory is the static hardware summary.
type Inventory struct {
	Host HostInventory
	GPU  GPUInventory
}

type HostInventory struct {
	CPUBrand string
	CPUCores int
	Board    string
	Sensors  []sensors.Reading
	Networks []Interface
}

type GPUInventory struct {
	Devices []GPUDevice
	Driver  string
	CUDA    string
}

type GPUDevice struct {
	Name        string
	MemoryTotal uint64
	MaxClocks   [clockDomains]int
	Cores       int
	EnergyMJ    float64
	PerfState   int
}

// MaxClock returns the ceiling for domain d.
func (d GPUDevice) MaxClock(domain ClockDomain) int {
	if domain < 0 || domain >= clockDomains {
		return 0
	}

	return d.MaxClocks[domain]
}
