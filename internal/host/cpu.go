package host

import (
	"context"
	"fmt"
	"path/filepath"

	"codeberg.org/mutker/hwtop/internal/errors"
	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/cpu"
)

const kHzPerMHz = 1000

// totalTime sums the jiffies of t. Guest time is already counted in
// user time on Linux.
func totalTime(t cpu.TimesStat) float64 {
	return t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
}

// busyPercent is the non-idle share of the time between two samples.
func busyPercent(prev, cur cpu.TimesStat) float64 {
	total := totalTime(cur) - totalTime(prev)
	if total <= 0 {
		return 0
	}

	idle := (cur.Idle + cur.Iowait) - (prev.Idle + prev.Iowait)
	busy := total - idle

	return min(max(busy/total*100, 0), 100)
}

func (c *Collector) sampleCPU(ctx context.Context) (float64, []float64, error) {
	errFactory := errors.New()

	total, err := cpu.TimesWithContext(ctx, false)
	if err != nil || len(total) == 0 {
		return 0, nil, errFactory.Wrap(ErrCPUTimes, err)
	}

	perCore, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		return 0, nil, errFactory.Wrap(ErrCPUTimes, err)
	}

	usage := busyPercent(c.prevTotal, total[0])
	cores := make([]float64, len(perCore))
	for i, cur := range perCore {
		var prev cpu.TimesStat
		if i < len(c.prevCores) {
			prev = c.prevCores[i]
		}
		cores[i] = busyPercent(prev, cur)
	}

	c.prevTotal = total[0]
	c.prevCores = perCore

	return usage, cores, nil
}

// coreFrequencies reads the live and rated frequency of each core from
// cpufreq. Cores without cpufreq report 0.
func (c *Collector) coreFrequencies(count int) (current, rated []float64) {
	current = make([]float64, count)
	rated = make([]float64, count)

	for i := 0; i < count; i++ {
		dir := filepath.Join(c.sysRoot, "devices", "system", "cpu", fmt.Sprintf("cpu%d", i), "cpufreq")
		if khz, ok := readSysfsInt(filepath.Join(dir, "scaling_cur_freq")); ok {
			current[i] = float64(khz) / kHzPerMHz
		}
		if khz, ok := readSysfsInt(filepath.Join(dir, "cpuinfo_max_freq")); ok {
			rated[i] = float64(khz) / kHzPerMHz
		}
	}

	return current, rated
}

func cpuIdentity(ctx context.Context) (string, int, error) {
	errFactory := errors.New()

	brand := cpuid.CPU.BrandName
	if brand == "" {
		infos, err := cpu.InfoWithContext(ctx)
		if err != nil {
			return "", 0, errFactory.Wrap(ErrCPUInfo, err)
		}
		if len(infos) > 0 {
			brand = infos[0].ModelName
		}
	}

	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return brand, 0, errFactory.Wrap(ErrCPUInfo, err)
	}

	return brand, cores, nil
}
