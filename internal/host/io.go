package host

import (
	"context"
	"path/filepath"

	"codeberg.org/mutker/hwtop/internal/errors"
	"codeberg.org/mutker/hwtop/internal/telemetry"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/net"
)

// rate is the per-second growth of a counter. A counter that went
// backwards was reset and yields 0.
func rate(cur, prev uint64, elapsed float64) float64 {
	if elapsed <= 0 || cur < prev {
		return 0
	}

	return float64(cur-prev) / elapsed
}

func (c *Collector) sampleDisks(ctx context.Context, elapsed float64) ([]telemetry.Disk, error) {
	errFactory := errors.New()

	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, errFactory.Wrap(ErrDisks, err)
	}

	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("Disk counters unavailable")
	}

	seen := make(map[string]bool, len(partitions))
	disks := make([]telemetry.Disk, 0, len(partitions))

	for _, p := range partitions {
		if seen[p.Device] {
			continue
		}
		seen[p.Device] = true

		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}

		d := telemetry.Disk{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Capacity:   telemetry.Capacity{Used: usage.Total - usage.Free, Total: usage.Total},
		}

		key := filepath.Base(p.Device)
		if ctr, ok := counters[key]; ok {
			if prev, hadPrev := c.prevDisk[key]; hadPrev {
				d.ReadRate = rate(ctr.ReadBytes, prev.ReadBytes, elapsed)
				d.WriteRate = rate(ctr.WriteBytes, prev.WriteBytes, elapsed)
			}
			d.ReadTotal = ctr.ReadBytes
			d.WriteTotal = ctr.WriteBytes
			c.prevDisk[key] = ctr
		}

		disks = append(disks, d)
	}

	return disks, nil
}

func (c *Collector) sampleNetworks(ctx context.Context, elapsed float64) ([]telemetry.Interface, error) {
	errFactory := errors.New()

	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, errFactory.Wrap(ErrNetwork, err)
	}

	ifaces := make([]telemetry.Interface, 0, len(counters))
	for _, cur := range counters {
		iface := telemetry.Interface{
			Name:    cur.Name,
			RxTotal: cur.BytesRecv,
			TxTotal: cur.BytesSent,
		}

		if prev, ok := c.prevNet[cur.Name]; ok {
			iface.RxRate = rate(cur.BytesRecv, prev.BytesRecv, elapsed)
			iface.TxRate = rate(cur.BytesSent, prev.BytesSent, elapsed)
			iface.RxPacketRate = rate(cur.PacketsRecv, prev.PacketsRecv, elapsed)
			iface.TxPacketRate = rate(cur.PacketsSent, prev.PacketsSent, elapsed)
		}
		c.prevNet[cur.Name] = cur

		ifaces = append(ifaces, iface)
	}

	return ifaces, nil
}

// interfaces lists every interface with its addresses and lifetime
// traffic totals.
func (c *Collector) interfaces(ctx context.Context) ([]telemetry.Interface, error) {
	errFactory := errors.New()

	stats, err := net.InterfacesWithContext(ctx)
	if err != nil {
		return nil, errFactory.Wrap(ErrNetwork, err)
	}

	totals := make(map[string]net.IOCountersStat)
	if counters, err := net.IOCountersWithContext(ctx, true); err == nil {
		for _, cur := range counters {
			totals[cur.Name] = cur
		}
	}

	ifaces := make([]telemetry.Interface, 0, len(stats))
	for _, st := range stats {
		iface := telemetry.Interface{
			Name:    st.Name,
			MAC:     st.HardwareAddr,
			RxTotal: totals[st.Name].BytesRecv,
			TxTotal: totals[st.Name].BytesSent,
		}
		for _, addr := range st.Addrs {
			iface.Addrs = append(iface.Addrs, addr.Addr)
		}
		ifaces = append(ifaces, iface)
	}

	return ifaces, nil
}
