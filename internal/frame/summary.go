package frame

import (
	"fmt"
	"net/netip"
	"slices"
	"strconv"
	"strings"

	"codeberg.org/mutker/hwtop/internal/sensors"
	"codeberg.org/mutker/hwtop/internal/telemetry"
	"codeberg.org/mutker/hwtop/internal/units"
	"codeberg.org/mutker/hwtop/internal/visual"
)

var (
	brandMarks = strings.NewReplacer("(R)", "", "(TM)", "")
	brandWords = []string{"Intel", "Core"}
)

// CleanBrand strips trademark marks and the vendor and product-line words
// from a CPU brand string. Words are dropped whole, so "16-Core" stays.
func CleanBrand(brand string) string {
	words := strings.Fields(brandMarks.Replace(brand))

	return strings.Join(slices.DeleteFunc(words, func(w string) bool {
		return slices.Contains(brandWords, w)
	}), " ")
}

type tree struct {
	b      *strings.Builder
	p      visual.Palette
	accent string
}

func (t tree) branch(last bool, text string) {
	glyph := "├─"
	if last {
		glyph = "└─"
	}
	t.b.WriteString(t.p.Dim + t.accent + glyph + t.p.Reset + " " + text + "\n")
}

// RenderStaticSummary prints the one-shot hardware inventory: CPU, each
// GPU as a tree, the board, the detected sensor devices and the monitored
// network interfaces.
func RenderStaticSummary(inv telemetry.Inventory, opts Options) string {
	p := opts.Palette
	enc := visual.NewEncoder(p)
	blue := func(s string) string { return enc.Paint(p.Blue, s) }

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n",
		enc.Paint(p.Sky, "CPU"), CleanBrand(inv.Host.CPUBrand),
		blue(fmt.Sprintf("x%d Cores", inv.Host.CPUCores)))

	gpuTree := tree{b: &b, p: p, accent: p.Magenta}
	for _, dev := range inv.GPU.Devices {
		b.WriteString(enc.Paint(p.Magenta, "GPU") + " " + dev.Name + "\n")
		gpuTree.branch(false, "VRAM "+enc.Paint(p.Green, gigabytes(dev.MemoryTotal)+"GB")+" "+
			blue(mhz(dev.MaxClock(telemetry.ClockMemory))))
		gpuTree.branch(false, "Clock "+
			enc.Paint(p.Dim, "Gfx")+" "+blue(mhz(dev.MaxClock(telemetry.ClockGraphics)))+"  "+
			enc.Paint(p.Dim, "SM")+" "+blue(mhz(dev.MaxClock(telemetry.ClockSM)))+"  "+
			enc.Paint(p.Dim, "Vid")+" "+blue(mhz(dev.MaxClock(telemetry.ClockVideo))))
		gpuTree.branch(false, "Cores "+blue(strconv.Itoa(dev.Cores)))
		gpuTree.branch(false, "Consumed "+blue(strconv.FormatFloat(dev.EnergyMJ, 'f', -1, 64)+"MJ"))
		gpuTree.branch(false, "Driver "+blue(inv.GPU.Driver))
		gpuTree.branch(false, "Perf "+blue(strconv.Itoa(dev.PerfState))+" "+enc.Paint(p.Dim, "(0-15, 0 = max)"))
		gpuTree.branch(true, "CUDA "+blue(inv.GPU.CUDA))
	}

	b.WriteString(enc.Paint(p.Red, "MOBO") + " " + inv.Host.Board + "\n")

	boardTree := tree{b: &b, p: p, accent: p.Red}
	names := sensors.InventoryNames(inv.Host.Sensors)
	for i, name := range names {
		boardTree.branch(i == len(names)-1, name)
	}

	b.WriteString(enc.Paint(p.Cyan, "Networks") + "\n")

	var monitored []telemetry.Interface
	for _, iface := range inv.Host.Networks {
		if iface.Monitored() {
			monitored = append(monitored, iface)
		}
	}

	netTree := tree{b: &b, p: p, accent: p.Cyan}
	for i, iface := range monitored {
		addrs := make([]string, 0, len(iface.Addrs))
		for _, addr := range iface.Addrs {
			addrs = append(addrs, labelAddr(addr, p))
		}
		netTree.branch(i == len(monitored)-1,
			blue(iface.Name)+" "+strings.Join(addrs, ", ")+" mac["+p.Dim+iface.MAC+p.Reset+"]")
	}

	return b.String()
}

// labelAddr tags an address as ipv4 or ipv6. Entries may carry a prefix
// length; unparsable ones are tagged by the presence of a colon.
func labelAddr(addr string, p visual.Palette) string {
	family := "ipv4"
	if ip, ok := parseAddr(addr); ok {
		if !ip.Unmap().Is4() {
			family = "ipv6"
		}
		addr = ip.String()
	} else if strings.Contains(addr, ":") {
		family = "ipv6"
	}

	return family + "[" + p.Dim + addr + p.Reset + "]"
}

func parseAddr(s string) (netip.Addr, bool) {
	if prefix, err := netip.ParsePrefix(s); err == nil {
		return prefix.Addr(), true
	}
	if ip, err := netip.ParseAddr(s); err == nil {
		return ip, true
	}

	return netip.Addr{}, false
}

func gigabytes(bytes uint64) string {
	return strconv.FormatFloat(float64(bytes)/float64(units.GiB), 'f', -1, 64)
}

func mhz(v int) string {
	return strconv.Itoa(v) + "MHz"
}
