package table

import "codeberg.org/mutker/hwtop/internal/errors"

const (
	ErrTableShape = errors.ErrorCode("table_shape_mismatch")
)
