package host

import "codeberg.org/mutker/hwtop/internal/errors"

const (
	ErrBoardUnavailable = errors.ErrorCode("host_board_unavailable")
	ErrCPUTimes         = errors.ErrorCode("host_cpu_times_failed")
	ErrCPUInfo          = errors.ErrorCode("host_cpu_info_failed")
	ErrMemory           = errors.ErrorCode("host_memory_failed")
	ErrDisks            = errors.ErrorCode("host_disks_failed")
	ErrNetwork          = errors.ErrorCode("host_network_failed")
	ErrSensors          = errors.ErrorCode("host_sensors_failed")
)
