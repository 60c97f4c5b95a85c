package telemetry

import "codeberg.org/mutker/hwtop/internal/errors"

const (
	ErrHostSample    = errors.ErrorCode("telemetry_host_sample_failed")
	ErrGPUSample     = errors.ErrorCode("telemetry_gpu_sample_failed")
	ErrInventory     = errors.ErrorCode("telemetry_inventory_failed")
	ErrNilSampler    = errors.ErrorCode("telemetry_nil_sampler")
	ErrOperationDone = errors.ErrorCode("telemetry_operation_canceled")
	ErrServiceClose  = errors.ErrorCode("telemetry_service_shutdown_failed")
)
