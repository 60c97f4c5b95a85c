package errors_test

import (
	"fmt"
	"testing"

	"codeberg.org/mutker/hwtop/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	errFactory := errors.New()

	tests := []struct {
		name string
		err  errors.Error
		want string
	}{
		{"default message", errFactory.New(errors.ErrInvalidInterval), "Invalid interval value"},
		{"custom message", errFactory.WithMessage(errors.ErrInternal, "boom"), "boom"},
		{"wrapped", errFactory.Wrap(errors.ErrRefresh, fmt.Errorf("nvml gone")), "Failed to refresh hardware sample: nvml gone"},
		{"data", errFactory.WithData(errors.ErrInvalidArgument, "fan index"), "Invalid argument provided: fan index"},
		{"unknown code", errFactory.New(errors.ErrorCode("weird")), "weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsMatchesByCode(t *testing.T) {
	errFactory := errors.New()
	err := fmt.Errorf("tick: %w", errFactory.Wrap(errors.ErrRefresh, fmt.Errorf("io")))

	assert.True(t, errors.Is(err, errFactory.New(errors.ErrRefresh)))
	assert.False(t, errors.Is(err, errFactory.New(errors.ErrEmitFrame)))
}

func TestIsCodeWalksChain(t *testing.T) {
	errFactory := errors.New()
	inner := errFactory.New(errors.ErrInitFailed)
	outer := errFactory.Wrap(errors.ErrInitApp, inner)

	assert.True(t, errors.IsCode(outer, errors.ErrInitApp))
	assert.True(t, errors.IsCode(outer, errors.ErrInitFailed))
	assert.False(t, errors.IsCode(outer, errors.ErrMainLoop))
	assert.False(t, errors.IsCode(nil, errors.ErrMainLoop))
	assert.Equal(t, errors.ErrInitApp, errors.CodeOf(outer))
	assert.Equal(t, errors.ErrInternal, errors.CodeOf(fmt.Errorf("plain")))
}

func TestIsCodeSearchesJoined(t *testing.T) {
	errFactory := errors.New()
	joined := errors.Join(
		errFactory.Wrap(errors.ErrRefresh, fmt.Errorf("first")),
		nil,
		errFactory.New(errors.ErrTerminalIO),
	)

	assert.True(t, errors.IsCode(joined, errors.ErrRefresh))
	assert.True(t, errors.IsCode(joined, errors.ErrTerminalIO))
	assert.False(t, errors.IsCode(joined, errors.ErrInventory))
	assert.NoError(t, errors.Join(nil, nil))
}
