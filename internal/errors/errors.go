package errors

import (
	"errors"
	"fmt"
)

// Basic error check functions from standard library
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// appError implements the Error interface
type appError struct {
	code    ErrorCode
	message string
	err     error
	data    any
}

func (e *appError) Error() string {
	msg := e.message
	if msg == "" {
		msg = GetErrorMessage(e.code)
	}

	switch {
	case e.data != nil && e.err != nil:
		return fmt.Sprintf("%s: %v: %v", msg, e.data, e.err)
	case e.data != nil:
		return fmt.Sprintf("%s: %v", msg, e.data)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", msg, e.err)
	}

	return msg
}

func (e *appError) Code() ErrorCode {
	return e.code
}

func (e *appError) WithMessage(msg string) Error {
	return &appError{
		code:    e.code,
		message: msg,
		err:     e.err,
		data:    e.data,
	}
}

func (e *appError) WithData(data any) Error {
	return &appError{
		code:    e.code,
		message: e.message,
		err:     e.err,
		data:    data,
	}
}

func (e *appError) GetData() any {
	return e.data
}

func (e *appError) Unwrap() error {
	return e.err
}

// Is matches any Error carrying the same code, so callers can compare
// against a freshly built sentinel: errors.Is(err, factory.New(code)).
func (e *appError) Is(target error) bool {
	var other Error
	if !errors.As(target, &other) {
		return false
	}

	return other.Code() == e.code
}

type defaultFactory struct{}

func (*defaultFactory) New(code ErrorCode) Error {
	return &appError{
		code: code,
	}
}

func (*defaultFactory) Wrap(code ErrorCode, err error) Error {
	return &appError{
		code: code,
		err:  err,
	}
}

func (*defaultFactory) WithMessage(code ErrorCode, msg string) Error {
	return &appError{
		code:    code,
		message: msg,
	}
}

func (*defaultFactory) WithData(code ErrorCode, data any) Error {
	return &appError{
		code: code,
		data: data,
	}
}

// New creates a Factory instance for error creation
func New() Factory {
	return &defaultFactory{}
}

// IsCode reports whether err, or anything in its tree, is an Error with
// code. Joined errors are searched too.
func IsCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, &appError{code: code})
}

// CodeOf returns the code of the outermost Error in err's chain, or
// ErrInternal when err carries none.
func CodeOf(err error) ErrorCode {
	var appErr Error
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return ErrInternal
}
