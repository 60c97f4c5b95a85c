package sensors_test

import (
	"math"
	"testing"

	"codeberg.org/mutker/hwtop/internal/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func temp(label string, value float64) sensors.Reading {
	return sensors.Reading{Label: label, Value: value, Kind: sensors.Temperature}
}

func groupNames(groups []sensors.Group) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}

	return names
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		label    string
		wantName string
		wantRole sensors.Role
	}{
		{"Core 0", "Core", sensors.RoleCore},
		{"coretemp Core 12", "Core", sensors.RoleCore},
		{"Package id 0", "CPU", sensors.RolePackage},
		{"coretemp Package id 0", "CPU", sensors.RolePackage},
		{"k10temp Tctl", "CPU", sensors.RolePackage},
		{"nvme Composite Samsung SSD 980 PRO 1TB temp1", "Samsung 980 PRO 1TB", sensors.RoleDevice},
		{"nvme Sensor 2 Samsung SSD 980 PRO 1TB", "Samsung 980 PRO 1TB", sensors.RoleDevice},
		{"acpitz temp1", "Motherboard", sensors.RoleDevice},
		{"spd5118 temp1", "RAM", sensors.RoleDevice},
		{"iwlwifi_1 temp1", "Wi-Fi", sensors.RoleDevice},
		{"mt7921_phy0 WiFi temp1", "Wi-Fi", sensors.RoleDevice},
		{"amdgpu edge", "amdgpu edge", sensors.RoleDevice},
		{"core 1a", "core 1a", sensors.RoleDevice},
		{"SSD ", "SSD", sensors.RoleDevice},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			name, role := sensors.Canonical(tt.label)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}

func TestClassifyCoresAndPackage(t *testing.T) {
	c := sensors.Classify([]sensors.Reading{
		temp("Core 0", 40),
		temp("Core 1", 60),
		temp("Package id 0", 55),
	})

	assert.Equal(t, []float64{40, 60}, c.Cores)
	assert.True(t, c.HasCPU)
	assert.InDelta(t, 55.0, c.CPU, 0)
	assert.InDelta(t, 60.0, c.MaxCore(), 0)
	assert.Empty(t, c.Groups)
}

func TestClassifyLastPackageWins(t *testing.T) {
	c := sensors.Classify([]sensors.Reading{
		temp("coretemp Package id 0", 50),
		temp("coretemp Package id 1", 70),
	})

	assert.InDelta(t, 70.0, c.CPU, 0)
}

func TestClassifyIgnoresOtherKinds(t *testing.T) {
	c := sensors.Classify([]sensors.Reading{
		{Label: "Core 0", Value: 90, Kind: sensors.Usage},
		{Label: "acpitz temp1", Value: 1200, Kind: sensors.Frequency},
	})

	assert.Empty(t, c.Cores)
	assert.Empty(t, c.Groups)
	assert.False(t, c.HasCPU)
}

func TestClassifyMergesPrefixes(t *testing.T) {
	c := sensors.Classify([]sensors.Reading{
		temp("Composite", 41),
		temp("Composite Variant", 45),
		temp("spd5118 temp1", 38),
		temp("iwlwifi_1 temp1", 50),
	})

	require.Len(t, c.Groups, 3)
	assert.Equal(t, "Composite", c.Groups[0].Name)
	assert.Equal(t, []float64{41, 45}, c.Groups[0].Values)
	assert.True(t, c.Groups[0].Composite())

	assert.Equal(t, []string{"Composite", "Wi-Fi", "RAM"}, groupNames(c.Groups))
}

func TestClassifyBlankLabelsStayApart(t *testing.T) {
	c := sensors.Classify([]sensors.Reading{
		temp("   ", 30),
		temp("spd5118 temp1", 38),
		temp("", 32),
		temp("iwlwifi_1 temp1", 50),
	})

	assert.Equal(t, []string{"Wi-Fi", "RAM", ""}, groupNames(c.Groups))
	assert.Equal(t, []float64{30, 32}, c.Groups[2].Values)

	names := sensors.InventoryNames([]sensors.Reading{
		temp(" ", 30),
		temp("spd5118 temp1", 38),
		temp("iwlwifi_1 temp1", 50),
	})
	assert.Equal(t, []string{"RAM", "Wi-Fi"}, names)
}

func TestClassifyOrdering(t *testing.T) {
	c := sensors.Classify([]sensors.Reading{
		temp("acpitz temp1", 30),
		temp("amdgpu edge", 65),
		temp("spd5118 temp1", 45),
		temp("nvme Composite WD_BLACK SN850X temp1", 35),
		temp("nvme Sensor 1 WD_BLACK SN850X", 39),
		temp("iwlwifi_1 temp1", 45),
	})

	assert.Equal(t, []string{"WD_BLACK SN850X", "amdgpu edge", "RAM", "Wi-Fi", "Motherboard"}, groupNames(c.Groups))
	assert.Equal(t, []float64{35, 39}, c.Groups[0].Values)
}

func TestClassifyIsIdempotent(t *testing.T) {
	readings := []sensors.Reading{
		temp("coretemp Core 0", 52),
		temp("coretemp Core 1", 48),
		temp("coretemp Package id 0", 57),
		temp("nvme Composite Samsung SSD 990 PRO temp1", 44),
		temp("nvme Sensor 1 Samsung SSD 990 PRO", 48),
		temp("acpitz temp1", 27.8),
		temp("spd5118 temp1", 41),
	}

	first := sensors.Classify(readings)
	second := sensors.Classify(readings)

	assert.Equal(t, first, second)
}

func TestClassifyDefaultsUnreadableValues(t *testing.T) {
	c := sensors.Classify([]sensors.Reading{
		temp("Core 0", math.NaN()),
		temp("Core 1", -5),
		temp("acpitz temp1", math.Inf(1)),
	})

	assert.Equal(t, []float64{0, 0}, c.Cores)
	require.Len(t, c.Groups, 1)
	assert.Equal(t, []float64{0}, c.Groups[0].Values)
}

func TestGroupMax(t *testing.T) {
	assert.InDelta(t, 0.0, sensors.Group{}.Max(), 0)
	assert.InDelta(t, 7.0, sensors.Group{Values: []float64{3, 7, 5}}.Max(), 0)
	assert.InDelta(t, 0.0, sensors.Classification{}.MaxCore(), 0)
}

func TestInventoryNames(t *testing.T) {
	names := sensors.InventoryNames([]sensors.Reading{
		temp("coretemp Core 0", 52),
		temp("coretemp Package id 0", 57),
		temp("nvme Composite Samsung SSD 990 PRO temp1", 44),
		temp("nvme Sensor 1 Samsung SSD 990 PRO", 48),
		temp("acpitz temp1", 27.8),
		temp("spd5118 temp1", 41),
		temp("iwlwifi_1 temp1", 39),
		{Label: "fan1", Value: 900, Kind: sensors.Other},
	})

	assert.Equal(t, []string{"RAM", "Samsung 990 PRO", "Wi-Fi"}, names)
}
