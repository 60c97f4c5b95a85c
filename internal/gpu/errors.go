package gpu

import (
	"codeberg.org/mutker/hwtop/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const (
	// Initialization and Lifecycle Errors
	ErrNotInitialized   = errors.ErrorCode("gpu_not_initialized")
	ErrInitFailed       = errors.ErrorCode("gpu_init_failed")
	ErrDeviceNotFound   = errors.ErrorCode("gpu_device_not_found")
	ErrShutdownFailed   = errors.ErrorCode("gpu_shutdown_failed")
	ErrDeviceInfoFailed = errors.ErrorCode("gpu_device_info_failed")
	ErrSystemInfoFailed = errors.ErrorCode("gpu_system_info_failed")

	// Sensor Errors
	ErrUtilizationFailed = errors.ErrorCode("gpu_utilization_read_failed")
	ErrTemperatureFailed = errors.ErrorCode("gpu_temperature_read_failed")
	ErrMemoryFailed      = errors.ErrorCode("gpu_memory_read_failed")
	ErrClockFailed       = errors.ErrorCode("gpu_clock_read_failed")
	ErrPCIeFailed        = errors.ErrorCode("gpu_pcie_read_failed")

	// Fan Errors
	ErrFanCountFailed    = errors.ErrorCode("gpu_fan_count_failed")
	ErrGetFanSpeedFailed = errors.ErrorCode("gpu_fan_speed_failed")

	// Power Errors
	ErrPowerUsageFailed = errors.ErrorCode("gpu_power_usage_failed")
	ErrPowerLimitFailed = errors.ErrorCode("gpu_power_limit_failed")

	// Device Discovery Errors
	ErrDeviceCountFailed = errors.ErrorCode("gpu_device_count_failed")
)

// nvmlError represents an NVML-specific error
type nvmlError struct {
	ret nvml.Return
}

func (e nvmlError) Error() string {
	return nvml.ErrorString(e.ret)
}

// newNVMLError creates an error from an NVML return code
func newNVMLError(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return &nvmlError{ret: ret}
}

// IsNVMLSuccess checks if a Return value indicates success
func IsNVMLSuccess(ret nvml.Return) bool {
	return ret == nvml.SUCCESS
}
