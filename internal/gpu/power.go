package gpu

import (
	"codeberg.org/mutker/hwtop/internal/errors"
)

const milliWattsToWatts = 1000

// readPower returns the draw and the enforced management limit in watts.
func readPower(dev device) (usage, limit int, err error) {
	errFactory := errors.New()

	var errs []error

	mw, ret := dev.GetPowerUsage()
	if IsNVMLSuccess(ret) {
		usage = int(mw / milliWattsToWatts)
	} else {
		errs = append(errs, errFactory.Wrap(ErrPowerUsageFailed, newNVMLError(ret)))
	}

	mw, ret = dev.GetPowerManagementLimit()
	if IsNVMLSuccess(ret) {
		limit = int(mw / milliWattsToWatts)
	} else {
		errs = append(errs, errFactory.Wrap(ErrPowerLimitFailed, newNVMLError(ret)))
	}

	return usage, limit, errors.Join(errs...)
}
