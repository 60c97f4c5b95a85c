// Package units converts raw byte counts and ratios into the short
// human-readable strings and bounded percentages shown on the dashboard.
package units

import (
	"fmt"
	"math"
	"strconv"
)

const (
	KiB uint64 = 1 << 10
	MiB uint64 = 1 << 20
	GiB uint64 = 1 << 30
	TiB uint64 = 1 << 40
)

// Metric is a derived display value.
type Metric struct {
	Raw     float64
	Unit    string
	Percent int
}

// NewMetric builds a Metric for used against total.
func NewMetric(used, total float64, unit string) Metric {
	return Metric{
		Raw:     used,
		Unit:    unit,
		Percent: PercentOf(used, total),
	}
}

// FormatSize renders bytes with a binary prefix: "1023B", "2K", "512M",
// "1.5G", "120G", "1.2T".
func FormatSize(bytes uint64) string {
	value := float64(bytes)

	switch {
	case bytes < KiB:
		return strconv.FormatUint(bytes, 10) + "B"
	case bytes < MiB:
		return fmt.Sprintf("%.0fK", Round(value/float64(KiB)))
	case bytes < GiB:
		return fmt.Sprintf("%.0fM", Round(value/float64(MiB)))
	case bytes < TiB:
		if bytes >= 100*GiB {
			return fmt.Sprintf("%.0fG", Round(value/float64(GiB)))
		}
		// One decimal, dropped when it is zero: 1.0 GiB prints as "1G".
		return strconv.FormatFloat(Round(value/float64(GiB)*10)/10, 'f', -1, 64) + "G"
	default:
		scaled := value / float64(TiB)
		if bytes >= 100*TiB {
			return fmt.Sprintf("%.0fT", Round(scaled))
		}
		return fmt.Sprintf("%.1fT", Round(scaled*10)/10)
	}
}

// PercentOf returns round(used/total*100) clamped to [0,100]. A zero
// total yields 0.
func PercentOf(used, total float64) int {
	if total == 0 {
		return 0
	}

	return clampRound(used / total * 100)
}

// RatioPercent is PercentOf for live-versus-capability ratios such as
// a core's current frequency against its rated maximum.
func RatioPercent(value, ceiling float64) int {
	return PercentOf(value, ceiling)
}

// SquaredRatioPercent squares value/ceiling before scaling to a percent.
// Clock domains idle far below their ceiling; squaring spreads the
// low-to-mid range across more tiers.
func SquaredRatioPercent(value, ceiling float64) int {
	if ceiling == 0 {
		return 0
	}

	ratio := value / ceiling

	return clampRound(ratio * ratio * 100)
}

// ClampPercent bounds p to [0,100].
func ClampPercent(p int) int {
	return min(max(p, 0), 100)
}

// Round rounds half away from zero.
func Round(v float64) float64 {
	return math.Round(v)
}

func clampRound(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 100 {
		return 100
	}

	return int(Round(v))
}
