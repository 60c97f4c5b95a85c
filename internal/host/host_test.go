package host

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/hwtop/internal/errors"
	"codeberg.org/mutker/hwtop/internal/sensors"
	"codeberg.org/mutker/hwtop/internal/telemetry"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSysfs creates root/path with content, making parents as needed.
func writeSysfs(t *testing.T, root, path, content string) {
	t.Helper()

	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content+"\n"), 0o644))
}

func fixtureHwmon(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeSysfs(t, root, "class/hwmon/hwmon0/name", "acpitz")
	writeSysfs(t, root, "class/hwmon/hwmon0/temp1_input", "27800")

	writeSysfs(t, root, "class/hwmon/hwmon2/name", "coretemp")
	writeSysfs(t, root, "class/hwmon/hwmon2/temp1_label", "Package id 0")
	writeSysfs(t, root, "class/hwmon/hwmon2/temp1_input", "55000")
	writeSysfs(t, root, "class/hwmon/hwmon2/temp2_label", "Core 0")
	writeSysfs(t, root, "class/hwmon/hwmon2/temp2_input", "40000")
	writeSysfs(t, root, "class/hwmon/hwmon2/temp10_label", "Core 1")
	writeSysfs(t, root, "class/hwmon/hwmon2/temp10_input", "60000")

	writeSysfs(t, root, "class/hwmon/hwmon10/name", "nvme")
	writeSysfs(t, root, "class/hwmon/hwmon10/device/model", "Samsung SSD 990 PRO 2TB")
	writeSysfs(t, root, "class/hwmon/hwmon10/temp1_label", "Composite")
	writeSysfs(t, root, "class/hwmon/hwmon10/temp1_input", "44850")
	writeSysfs(t, root, "class/hwmon/hwmon10/temp2_label", "Sensor 1")
	writeSysfs(t, root, "class/hwmon/hwmon10/temp2_input", "garbage")

	writeSysfs(t, root, "class/hwmon/hwmon3/name", "nct6798")
	writeSysfs(t, root, "class/hwmon/hwmon3/fan1_input", "1250")
	writeSysfs(t, root, "class/hwmon/hwmon3/fan2_label", "CPU_FAN")
	writeSysfs(t, root, "class/hwmon/hwmon3/fan2_input", "890")

	return root
}

func TestReadHwmon(t *testing.T) {
	readings, fans := readHwmon(fixtureHwmon(t))

	labels := make([]string, 0, len(readings))
	for _, r := range readings {
		labels = append(labels, r.Label)
		assert.Equal(t, sensors.Temperature, r.Kind)
	}

	assert.Equal(t, []string{
		"acpitz temp1",
		"coretemp Package id 0",
		"coretemp Core 0",
		"coretemp Core 1",
		"nvme Composite Samsung SSD 990 PRO 2TB",
		"nvme Sensor 1 Samsung SSD 990 PRO 2TB",
	}, labels)

	assert.InDelta(t, 27.8, readings[0].Value, 1e-9)
	assert.InDelta(t, 44.85, readings[4].Value, 1e-9)
	assert.InDelta(t, 0.0, readings[5].Value, 0, "unreadable input keeps its slot")

	assert.Equal(t, []telemetry.Fan{
		{Label: "nct6798 fan1", RPM: 1250},
		{Label: "nct6798 CPU_FAN", RPM: 890},
	}, fans)
}

func TestReadHwmonClassifies(t *testing.T) {
	readings, _ := readHwmon(fixtureHwmon(t))
	c := sensors.Classify(readings)

	assert.Equal(t, []float64{40, 60}, c.Cores)
	assert.InDelta(t, 55.0, c.CPU, 0)
	require.Len(t, c.Groups, 2)
	assert.Equal(t, "Samsung 990 PRO 2TB", c.Groups[0].Name)
	assert.Equal(t, "Motherboard", c.Groups[1].Name)
}

func TestReadHwmonMissingTree(t *testing.T) {
	readings, fans := readHwmon(t.TempDir())

	assert.Empty(t, readings)
	assert.Empty(t, fans)
}

func TestLabelFromSensorKey(t *testing.T) {
	tests := map[string]string{
		"coretemp_core_0":       "coretemp Core 0",
		"coretemp_package_id_0": "coretemp Package id 0",
		"k10temp_tctl":          "k10temp Tctl",
		"acpitz":                "acpitz temp1",
		"nvme_composite":        "nvme Composite",
	}

	for key, want := range tests {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, want, labelFromSensorKey(key))
		})
	}
}

func TestCoreFrequencies(t *testing.T) {
	root := t.TempDir()
	writeSysfs(t, root, "devices/system/cpu/cpu0/cpufreq/scaling_cur_freq", "3200000")
	writeSysfs(t, root, "devices/system/cpu/cpu0/cpufreq/cpuinfo_max_freq", "5800000")
	writeSysfs(t, root, "devices/system/cpu/cpu1/cpufreq/scaling_cur_freq", "800000")
	writeSysfs(t, root, "devices/system/cpu/cpu1/cpufreq/cpuinfo_max_freq", "4300000")

	c := &Collector{sysRoot: root}
	current, rated := c.coreFrequencies(3)

	assert.Equal(t, []float64{3200, 800, 0}, current)
	assert.Equal(t, []float64{5800, 4300, 0}, rated)
}

func TestBusyPercent(t *testing.T) {
	prev := cpu.TimesStat{User: 100, System: 50, Idle: 800, Iowait: 50}
	cur := cpu.TimesStat{User: 160, System: 70, Idle: 900, Iowait: 70}

	assert.InDelta(t, 40.0, busyPercent(prev, cur), 1e-9)
	assert.InDelta(t, 0.0, busyPercent(cur, cur), 0)
	assert.InDelta(t, 0.0, busyPercent(cur, prev), 0)
}

func TestRate(t *testing.T) {
	assert.InDelta(t, 512.0, rate(2048, 1024, 2), 0)
	assert.InDelta(t, 0.0, rate(1024, 2048, 2), 0)
	assert.InDelta(t, 0.0, rate(2048, 1024, 0), 0)
}

func TestNewRequiresBoard(t *testing.T) {
	_, err := New(Options{Board: func() (string, error) { return "", fmt.Errorf("dmi unreadable") }})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ErrBoardUnavailable))

	_, err = New(Options{Board: func() (string, error) { return "", nil }})
	assert.True(t, errors.IsCode(err, ErrBoardUnavailable))

	c, err := New(Options{SysRoot: t.TempDir(), Board: func() (string, error) { return "ROG STRIX Z790-E", nil }})
	require.NoError(t, err)
	assert.Equal(t, "ROG STRIX Z790-E", c.board)
}
