package host

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"codeberg.org/mutker/hwtop/internal/errors"
	"codeberg.org/mutker/hwtop/internal/sensors"
	"codeberg.org/mutker/hwtop/internal/telemetry"
	psensors "github.com/shirou/gopsutil/v4/sensors"
)

const milliDegrees = 1000

var (
	hwmonDirPattern = regexp.MustCompile(`^hwmon(\d+)$`)
	tempPattern     = regexp.MustCompile(`^temp(\d+)_input$`)
	fanPattern      = regexp.MustCompile(`^fan(\d+)_input$`)
)

// hwmonChip is one /sys/class/hwmon/hwmonN directory.
type hwmonChip struct {
	dir   string
	name  string
	model string
}

// readHwmon walks every hwmon chip under sysRoot in numeric order and
// returns its temperature readings and fans. Temperature labels read
// "<chip> <label> <device model>", with "tempN" standing in for a
// missing label: "coretemp Core 0", "nvme Composite <model>",
// "acpitz temp1".
func readHwmon(sysRoot string) ([]sensors.Reading, []telemetry.Fan) {
	chips := hwmonChips(sysRoot)

	var (
		readings []sensors.Reading
		fans     []telemetry.Fan
	)

	for _, chip := range chips {
		for _, idx := range indexedInputs(chip.dir, tempPattern) {
			// An unreadable input still takes its slot, as 0.
			milli, _ := readSysfsInt(filepath.Join(chip.dir, "temp"+idx+"_input"))
			readings = append(readings, sensors.Reading{
				Label: chip.tempLabel(idx),
				Value: float64(milli) / milliDegrees,
				Kind:  sensors.Temperature,
			})
		}

		for _, idx := range indexedInputs(chip.dir, fanPattern) {
			rpm, _ := readSysfsInt(filepath.Join(chip.dir, "fan"+idx+"_input"))
			label := readSysfsString(filepath.Join(chip.dir, "fan"+idx+"_label"))
			if label == "" {
				label = "fan" + idx
			}
			fans = append(fans, telemetry.Fan{
				Label: chip.name + " " + label,
				RPM:   int(rpm),
			})
		}
	}

	return readings, fans
}

func (c hwmonChip) tempLabel(idx string) string {
	parts := []string{c.name}

	label := readSysfsString(filepath.Join(c.dir, "temp"+idx+"_label"))
	if label != "" {
		parts = append(parts, label)
	}
	if c.model != "" {
		parts = append(parts, c.model)
	}
	if label == "" {
		parts = append(parts, "temp"+idx)
	}

	return strings.Join(parts, " ")
}

func hwmonChips(sysRoot string) []hwmonChip {
	base := filepath.Join(sysRoot, "class", "hwmon")

	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	type numbered struct {
		n    int
		chip hwmonChip
	}

	var found []numbered
	for _, entry := range entries {
		m := hwmonDirPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])

		dir := filepath.Join(base, entry.Name())
		name := readSysfsString(filepath.Join(dir, "name"))
		if name == "" {
			name = entry.Name()
		}

		found = append(found, numbered{n: n, chip: hwmonChip{
			dir:   dir,
			name:  name,
			model: readSysfsString(filepath.Join(dir, "device", "model")),
		}})
	}

	slices.SortFunc(found, func(a, b numbered) int { return a.n - b.n })

	chips := make([]hwmonChip, len(found))
	for i, f := range found {
		chips[i] = f.chip
	}

	return chips
}

// indexedInputs returns the N of every file in dir matching pattern,
// sorted numerically.
func indexedInputs(dir string, pattern *regexp.Regexp) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var idx []string
	for _, entry := range entries {
		if m := pattern.FindStringSubmatch(entry.Name()); m != nil {
			idx = append(idx, m[1])
		}
	}

	slices.SortFunc(idx, func(a, b string) int {
		x, _ := strconv.Atoi(a)
		y, _ := strconv.Atoi(b)
		return x - y
	})

	return idx
}

// gopsutilReadings is the fallback when sysfs has no hwmon tree. Sensor
// keys are rebuilt into the hwmon label form: "coretemp_core_0" becomes
// "coretemp Core 0".
func gopsutilReadings(ctx context.Context) ([]sensors.Reading, error) {
	errFactory := errors.New()

	temps, err := psensors.TemperaturesWithContext(ctx)
	if len(temps) == 0 && err != nil {
		return nil, errFactory.Wrap(ErrSensors, err)
	}

	readings := make([]sensors.Reading, 0, len(temps))
	for _, t := range temps {
		readings = append(readings, sensors.Reading{
			Label: labelFromSensorKey(t.SensorKey),
			Value: t.Temperature,
			Kind:  sensors.Temperature,
		})
	}

	return readings, nil
}

func labelFromSensorKey(key string) string {
	chip, rest, found := strings.Cut(key, "_")
	if !found {
		return chip + " temp1"
	}

	words := strings.Split(rest, "_")
	if r := []rune(words[0]); len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
		words[0] = string(r)
	}

	return chip + " " + strings.Join(words, " ")
}
