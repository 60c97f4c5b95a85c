package frame

// PCIe payload bandwidth per lane in MB/s after line-encoding overhead:
// 8b/10b for generations 1 and 2, 128b/130b from generation 3.
var pcieLaneMBps = map[int]int{
	1: 250,
	2: 500,
	3: 985,
	4: 1969,
	5: 3938,
}

const defaultLaneMBps = 1969

// PCIeCeilingMBps is the theoretical link bandwidth for gen × width.
// Unknown generations are treated as PCIe 4.0.
func PCIeCeilingMBps(gen, width int) int {
	lane, ok := pcieLaneMBps[gen]
	if !ok {
		lane = defaultLaneMBps
	}

	return lane * width
}
