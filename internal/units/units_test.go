package units_test

import (
	"testing"

	"codeberg.org/mutker/hwtop/internal/units"
	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1K"},
		{1536, "2K"},
		{1 << 20, "1M"},
		{1<<20 + 1<<19, "2M"},
		{1 << 30, "1G"},
		{3 << 29, "1.5G"},
		{99*units.GiB + 900*units.MiB, "99.9G"},
		{100 * units.GiB, "100G"},
		{512 * units.GiB, "512G"},
		{1 << 40, "1.0T"},
		{3 << 39, "1.5T"},
		{100 * units.TiB, "100T"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, units.FormatSize(tt.bytes))
		})
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name        string
		used, total float64
		want        int
	}{
		{"zero total", 5, 0, 0},
		{"empty", 0, 10, 0},
		{"half", 5, 10, 50},
		{"rounds half up", 1, 8, 13},
		{"full", 10, 10, 100},
		{"over full clamps", 15, 10, 100},
		{"negative clamps", -3, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, units.PercentOf(tt.used, tt.total))
		})
	}
}

func TestPercentOfAlwaysInRange(t *testing.T) {
	for total := 0.0; total <= 50; total++ {
		for used := 0.0; used <= total; used++ {
			p := units.PercentOf(used, total)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	}
}

func TestSquaredRatioPercent(t *testing.T) {
	assert.Equal(t, 25, units.SquaredRatioPercent(500, 1000))
	assert.Equal(t, 100, units.SquaredRatioPercent(1000, 1000))
	assert.Equal(t, 100, units.SquaredRatioPercent(2000, 1000))
	assert.Equal(t, 0, units.SquaredRatioPercent(500, 0))
	assert.Equal(t, 50, units.RatioPercent(500, 1000))
}

func TestNewMetric(t *testing.T) {
	m := units.NewMetric(3, 4, "W")
	assert.Equal(t, units.Metric{Raw: 3, Unit: "W", Percent: 75}, m)
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0, units.ClampPercent(-1))
	assert.Equal(t, 42, units.ClampPercent(42))
	assert.Equal(t, 100, units.ClampPercent(250))
}
