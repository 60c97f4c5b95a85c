// Package sensors groups raw, vendor-labelled sensor readings under stable
// canonical device names.
package sensors

import "math"

// Kind is the physical quantity a Reading measures.
type Kind int

const (
	Temperature Kind = iota
	Usage
	Frequency
	Power
	Other
)

func (k Kind) String() string {
	switch k {
	case Temperature:
		return "temperature"
	case Usage:
		return "usage"
	case Frequency:
		return "frequency"
	case Power:
		return "power"
	default:
		return "other"
	}
}

// Reading is one raw sample from a sensor source.
type Reading struct {
	Label string
	Value float64
	Kind  Kind
}

// Role is what a canonical label stands for.
type Role int

const (
	RoleDevice Role = iota
	RolePackage
	RoleCore
)

const (
	PackageName     = "CPU"
	CoreName        = "Core"
	MotherboardName = "Motherboard"
)

// Group is every reading that resolved to one device, in discovery order.
type Group struct {
	Name   string
	Values []float64

	composite bool
}

// Max returns the hottest value in the group, 0 when empty.
func (g Group) Max() float64 {
	return maxOf(g.Values)
}

// Composite reports whether any member reading was an aggregate sensor.
func (g Group) Composite() bool {
	return g.composite
}

// Classification is the result of one classification pass. CPU and Cores
// are carved out of Groups for the summary rows.
type Classification struct {
	CPU    float64
	HasCPU bool
	Cores  []float64
	Groups []Group
}

// MaxCore returns the hottest per-core value, 0 without cores.
func (c Classification) MaxCore() float64 {
	return maxOf(c.Cores)
}

func maxOf(values []float64) float64 {
	var m float64
	for _, v := range values {
		m = max(m, v)
	}

	return m
}

// sanitize maps unreadable values onto 0 so a broken sensor still takes
// its slot.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}

	return v
}
