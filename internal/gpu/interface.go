package gpu

import "github.com/NVIDIA/go-nvml/pkg/nvml"

// device is the read-only subset of nvml.Device the dashboard queries.
type device interface {
	GetName() (string, nvml.Return)
	GetUtilizationRates() (nvml.Utilization, nvml.Return)
	GetTemperature(nvml.TemperatureSensors) (uint32, nvml.Return)
	GetPowerUsage() (uint32, nvml.Return)
	GetPowerManagementLimit() (uint32, nvml.Return)
	GetMemoryInfo() (nvml.Memory, nvml.Return)
	GetClockInfo(nvml.ClockType) (uint32, nvml.Return)
	GetMaxClockInfo(nvml.ClockType) (uint32, nvml.Return)
	GetNumFans() (int, nvml.Return)
	GetFanSpeed_v2(int) (uint32, nvml.Return)
	GetPcieThroughput(nvml.PcieUtilCounter) (uint32, nvml.Return)
	GetMaxPcieLinkGeneration() (int, nvml.Return)
	GetMaxPcieLinkWidth() (int, nvml.Return)
	GetNumGpuCores() (int, nvml.Return)
	GetTotalEnergyConsumption() (uint64, nvml.Return)
	GetPerformanceState() (nvml.Pstates, nvml.Return)
}

// library abstracts NVML process-level operations for testing
type library interface {
	Initialize() error
	Shutdown() error
	GetDeviceCount() (int, error)
	GetDevice(index int) (device, error)
	DriverVersion() (string, error)
	CUDAVersion() (int, error)
}
