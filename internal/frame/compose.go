package frame

import (
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/mutker/hwtop/internal/sensors"
	"codeberg.org/mutker/hwtop/internal/table"
	"codeberg.org/mutker/hwtop/internal/telemetry"
	"codeberg.org/mutker/hwtop/internal/units"
	"codeberg.org/mutker/hwtop/internal/visual"
)

type composer struct {
	p    visual.Palette
	enc  visual.Encoder
	opts Options
}

func newComposer(opts Options) composer {
	if opts.BarWidth <= 0 {
		opts.BarWidth = DefaultBarWidth
	}
	if opts.Layout.Delimiter == "" {
		opts.Layout = table.New(false)
	}

	return composer{
		p:    opts.Palette,
		enc:  visual.NewEncoder(opts.Palette),
		opts: opts,
	}
}

// Compose renders snap into the dashboard's fixed line order: utilization
// headers, memory bars, per-core rows, GPU clocks, fans, PCIe, network,
// disks and, when extended, every remaining sensor group.
func Compose(snap telemetry.Snapshot, opts Options) Frame {
	c := newComposer(opts)
	temps := sensors.Classify(snap.Host.Sensors)

	lines := []string{
		c.cpuHeader(snap.Host, temps),
		c.gpuHeader(snap.GPU),
		c.ramLine(snap.Host),
		c.vramLine(snap.GPU),
		c.coreLine(snap.Host),
		c.freqLine(snap.Host),
		c.tempLine(snap.Host, temps),
		c.clockLine(snap.GPU),
		c.fanLine(snap.GPU, snap.Host.Fans),
		c.pcieLine(snap.GPU.PCIe),
	}

	if line, ok := c.netLine(snap.Host.Networks); ok {
		lines = append(lines, line)
	}

	lines = append(lines, c.diskLines(snap.Host.Disks)...)

	if c.opts.Extended {
		lines = append(lines, c.sensorLines(temps.Groups)...)
	}

	return Frame{lines: lines}
}

func (c composer) paint(color, text string) string {
	return c.enc.Paint(color, text)
}

func percent(v float64) int {
	return units.ClampPercent(int(units.Round(v)))
}

func whole(v float64) int {
	return int(units.Round(max(v, 0)))
}

func (c composer) cpuHeader(h telemetry.HostSample, temps sensors.Classification) string {
	usage := percent(h.CPUUsage)
	temp := whole(temps.CPU)

	return " " + c.paint(c.p.Green, "CPU") +
		c.enc.Colorize(usage, fmt.Sprintf("%3d%%", usage)) +
		c.enc.Colorize(temp, fmt.Sprintf("%4d°C", temp))
}

func (c composer) gpuHeader(g telemetry.GPUSample) string {
	power := units.PercentOf(float64(g.PowerUsage), float64(g.PowerLimit))

	return " " + c.paint(c.p.Magenta, "GPU") +
		c.enc.Colorize(g.Utilization, fmt.Sprintf("%3d%%", g.Utilization)) +
		c.enc.Colorize(g.Temperature, fmt.Sprintf("%4d°C", g.Temperature)) + " " +
		c.enc.Colorize(power, fmt.Sprintf("%3dW", g.PowerUsage)) +
		c.paint(c.p.Dim, "/") +
		c.enc.Colorize(power, fmt.Sprintf("%dW", g.PowerLimit))
}

func (c composer) ramLine(h telemetry.HostSample) string {
	return " " + c.paint(c.p.Red, "RAM") + " " +
		c.enc.CapacityBar(h.Memory.Used, h.Memory.Total, c.opts.BarWidth) + "  " +
		c.enc.Usage(h.Swap.Used, h.Swap.Total)
}

func (c composer) vramLine(g telemetry.GPUSample) string {
	return c.paint(c.p.Red, "VRAM") + " " +
		c.enc.CapacityBar(g.Memory.Used, g.Memory.Total, c.opts.BarWidth) + "     " +
		c.enc.Colorize(g.MemoryUtilization, fmt.Sprintf("%d%%", g.MemoryUtilization))
}

func (c composer) coreLine(h telemetry.HostSample) string {
	usage := make([]int, len(h.CoreUsage))
	peak := 0
	for i, u := range h.CoreUsage {
		usage[i] = percent(u)
		peak = max(peak, usage[i])
	}

	return c.paint(c.p.Blue, "CORE") + " " + c.enc.Bars(usage) +
		c.peakColor(peak, peakField) + " " + fmt.Sprintf("%d%%", peak) + c.p.Reset
}

// peakField is the width the peak's color sequence is right-aligned in on
// the CORE, FREQ and TEMP rows. Every color sequence fills it exactly, so
// colored rows get no padding and plain rows get a blank gap.
const peakField = 5

func (c composer) peakColor(p, width int) string {
	return fmt.Sprintf("%*s", width, c.p.Color(p))
}

func (c composer) freqLine(h telemetry.HostSample) string {
	ratios := make([]int, len(h.CoreFreqMHz))
	peak := 0
	for i, mhz := range h.CoreFreqMHz {
		var rated float64
		if i < len(h.CoreMaxMHz) {
			rated = h.CoreMaxMHz[i]
		}
		ratios[i] = units.RatioPercent(mhz, rated)
		peak = max(peak, ratios[i])
	}

	return c.paint(c.p.Blue, "FREQ") + " " + c.enc.Bars(ratios) +
		c.peakColor(peak, peakField) + " " + fmt.Sprintf("%-5s", strconv.Itoa(peak)+"%") + c.p.Reset +
		c.paint(c.p.Dim, ratedRange(h.CoreMaxMHz))
}

// ratedRange renders the lowest and highest rated core frequency as
// "800-5800MHz", or a single value when every core is rated the same.
func ratedRange(rated []float64) string {
	if len(rated) == 0 {
		return "0MHz"
	}

	lo, hi := whole(rated[0]), whole(rated[0])
	for _, r := range rated[1:] {
		lo = min(lo, whole(r))
		hi = max(hi, whole(r))
	}

	if lo == hi {
		return fmt.Sprintf("%dMHz", lo)
	}

	return fmt.Sprintf("%d-%dMHz", lo, hi)
}

// tempLine widens the peak field by the number of missing core sensors
// so the peak lines up with the CORE row.
func (c composer) tempLine(h telemetry.HostSample, temps sensors.Classification) string {
	values := make([]int, len(temps.Cores))
	for i, t := range temps.Cores {
		values[i] = whole(t)
	}
	peak := whole(temps.MaxCore())
	pad := max(len(h.CoreUsage)-len(values), 0)

	return c.paint(c.p.Blue, "TEMP") + " " + c.enc.Bars(values) +
		c.peakColor(peak, peakField+pad) + " " + fmt.Sprintf("%dC", peak) + c.p.Reset
}

// clockLine shows one glyph per clock domain. Ratios are squared so the
// low and middle range spread over more tiers.
func (c composer) clockLine(g telemetry.GPUSample) string {
	parts := make([]string, 0, 4)
	for _, domain := range telemetry.ClockDomains() {
		clock := g.Clock(domain)
		p := units.SquaredRatioPercent(float64(clock.Current), float64(clock.Max))
		parts = append(parts, c.paint(c.p.Dim, domain.String())+" "+c.enc.Bar(p))
	}

	return c.paint(c.p.Blue, "CLCK") + " " + strings.Join(parts, "  ")
}

func (c composer) fanLine(g telemetry.GPUSample, system []telemetry.Fan) string {
	parts := make([]string, 0, len(g.Fans))
	for _, speed := range g.Fans {
		parts = append(parts, c.enc.Colorize(speed, fmt.Sprintf("%d%%", speed)))
	}

	line := c.paint(c.p.Sky, "FANS") + " " + strings.Join(parts, ", ")

	var spinning []string
	for _, fan := range system {
		if fan.RPM > 0 {
			spinning = append(spinning, c.paint(c.p.Dim, fmt.Sprintf("%4drpm", fan.RPM)))
		}
	}
	if len(spinning) > 0 {
		line += "  " + strings.Join(spinning, ", ")
	}

	return line
}

func (c composer) pcieLine(link telemetry.PCIe) string {
	ceiling := PCIeCeilingMBps(link.Gen, link.Width)
	rx := units.PercentOf(float64(link.RxMBps), float64(ceiling))
	tx := units.PercentOf(float64(link.TxMBps), float64(ceiling))
	gbps := strconv.FormatFloat(units.Round(float64(ceiling)/100)/10, 'f', -1, 64)

	return c.paint(c.p.Sky, "PCIE") + " " +
		c.paint(c.p.Green, "▼") + c.enc.Colorize(rx, fmt.Sprintf("%4dM", link.RxMBps)) + "  " +
		c.paint(c.p.Magenta, "▲") + c.enc.Colorize(tx, fmt.Sprintf("%4dM", link.TxMBps)) + "   " +
		c.paint(c.p.Dim, gbps+"GB/s")
}

// dominantInterface picks the monitored interface with the most lifetime
// traffic. Ties keep the first one listed.
func dominantInterface(ifaces []telemetry.Interface) (telemetry.Interface, bool) {
	var (
		best  telemetry.Interface
		found bool
	)

	for _, iface := range ifaces {
		if !iface.Monitored() {
			continue
		}
		if !found || iface.RxTotal+iface.TxTotal > best.RxTotal+best.TxTotal {
			best, found = iface, true
		}
	}

	return best, found
}

func (c composer) netLine(ifaces []telemetry.Interface) (string, bool) {
	iface, ok := dominantInterface(ifaces)
	if !ok {
		return "", false
	}

	rx := whole(iface.RxRate) / int(units.KiB)
	tx := whole(iface.TxRate) / int(units.KiB)

	return c.paint(c.p.Sky, "NETW") + " " +
		c.paint(c.p.Green, "▼") + c.paint(c.p.Blue, fmt.Sprintf("%4dK", rx)) + "  " +
		c.paint(c.p.Magenta, "▲") + c.paint(c.p.Blue, fmt.Sprintf("%4dK", tx)) + " " +
		c.paint(c.p.Green, fmt.Sprintf("%4d", whole(iface.RxPacketRate))) + "/" +
		c.paint(c.p.Magenta, fmt.Sprintf("%-4d", whole(iface.TxPacketRate))) + " " +
		c.paint(c.p.Cyan, "pkt/s") + "  " +
		c.paint(c.p.Dim, iface.Name), true
}

// diskLines renders disks larger than MinDiskSize as a table of name,
// usage, current read/write rate and lifetime totals.
func (c composer) diskLines(disks []telemetry.Disk) []string {
	var rows []string
	for _, d := range disks {
		if d.Total <= c.opts.MinDiskSize {
			continue
		}

		rw := c.paint(c.p.Green, fmt.Sprintf("%4s", units.FormatSize(uint64(whole(d.ReadRate))))) + "/" +
			c.paint(c.p.Magenta, fmt.Sprintf("%-4s", units.FormatSize(uint64(whole(d.WriteRate)))))
		totals := c.paint(c.p.Green, units.FormatSize(d.ReadTotal)) + "/" +
			c.paint(c.p.Magenta, units.FormatSize(d.WriteTotal))

		rows = append(rows, strings.Join([]string{
			c.paint(c.p.Sky, c.cell(d.Name())),
			c.enc.Usage(d.Used, d.Total),
			rw,
			"Tot " + totals,
		}, c.delimiter()))
	}

	return c.tableLines(rows)
}

// sensorLines lists every classified group with all of its readings.
func (c composer) sensorLines(groups []sensors.Group) []string {
	rows := make([]string, 0, len(groups))
	for _, g := range groups {
		values := make([]string, len(g.Values))
		for i, v := range g.Values {
			t := whole(v)
			values[i] = c.enc.Colorize(t, fmt.Sprintf("%d°C", t))
		}
		rows = append(rows, c.paint(c.p.Blue, c.cell(g.Name))+" "+c.delimiter()+strings.Join(values, ", "))
	}

	return c.tableLines(rows)
}

func (c composer) delimiter() string {
	return c.opts.Layout.Delimiter
}

// cell blanks out the delimiter in text that comes from hardware labels,
// so a stray ";" cannot split a row into an extra column.
func (c composer) cell(text string) string {
	return strings.ReplaceAll(text, c.delimiter(), " ")
}

func (c composer) tableLines(rows []string) []string {
	rendered := c.opts.Layout.Render(rows)
	if rendered == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
}
