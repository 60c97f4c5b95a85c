package gpu

import (
	"codeberg.org/mutker/hwtop/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

type nvmlWrapper struct {
	initialized bool
}

func (w *nvmlWrapper) Initialize() error {
	errFactory := errors.New()
	if w.initialized {
		return nil
	}

	ret := nvml.Init()
	if !IsNVMLSuccess(ret) {
		return errFactory.Wrap(ErrInitFailed, newNVMLError(ret))
	}

	w.initialized = true

	return nil
}

func (w *nvmlWrapper) Shutdown() error {
	errFactory := errors.New()
	if !w.initialized {
		return nil
	}

	ret := nvml.Shutdown()
	if !IsNVMLSuccess(ret) {
		return errFactory.Wrap(ErrShutdownFailed, newNVMLError(ret))
	}

	w.initialized = false

	return nil
}

func (w *nvmlWrapper) GetDeviceCount() (int, error) {
	errFactory := errors.New()
	if !w.initialized {
		return 0, errFactory.New(ErrNotInitialized)
	}

	count, ret := nvml.DeviceGetCount()
	if !IsNVMLSuccess(ret) {
		return 0, errFactory.Wrap(ErrDeviceCountFailed, newNVMLError(ret))
	}

	return count, nil
}

func (w *nvmlWrapper) GetDevice(index int) (device, error) {
	errFactory := errors.New()
	if !w.initialized {
		return nil, errFactory.New(ErrNotInitialized)
	}

	dev, ret := nvml.DeviceGetHandleByIndex(index)
	if !IsNVMLSuccess(ret) {
		return nil, errFactory.Wrap(ErrDeviceNotFound, newNVMLError(ret))
	}

	return dev, nil
}

func (w *nvmlWrapper) DriverVersion() (string, error) {
	errFactory := errors.New()
	if !w.initialized {
		return "", errFactory.New(ErrNotInitialized)
	}

	version, ret := nvml.SystemGetDriverVersion()
	if !IsNVMLSuccess(ret) {
		return "", errFactory.Wrap(ErrSystemInfoFailed, newNVMLError(ret))
	}

	return version, nil
}

func (w *nvmlWrapper) CUDAVersion() (int, error) {
	errFactory := errors.New()
	if !w.initialized {
		return 0, errFactory.New(ErrNotInitialized)
	}

	version, ret := nvml.SystemGetCudaDriverVersion()
	if !IsNVMLSuccess(ret) {
		return 0, errFactory.Wrap(ErrSystemInfoFailed, newNVMLError(ret))
	}

	return version, nil
}
