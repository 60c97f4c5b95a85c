package gpu

import (
	"codeberg.org/mutker/hwtop/internal/errors"
)

// readFanSpeeds returns the duty percentage of every fan. A board that
// cannot count its fans is read as having one. Unreadable fans report 0.
func readFanSpeeds(dev device) ([]int, error) {
	errFactory := errors.New()

	var errs []error

	count, ret := dev.GetNumFans()
	if !IsNVMLSuccess(ret) {
		errs = append(errs, errFactory.Wrap(ErrFanCountFailed, newNVMLError(ret)))
		count = 1
	}

	speeds := make([]int, count)
	for i := 0; i < count; i++ {
		speed, ret := dev.GetFanSpeed_v2(i)
		if !IsNVMLSuccess(ret) {
			errs = append(errs, errFactory.Wrap(ErrGetFanSpeedFailed, newNVMLError(ret)).WithData(i))
			continue
		}
		speeds[i] = int(speed)
	}

	return speeds, errors.Join(errs...)
}
