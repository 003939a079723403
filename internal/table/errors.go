package table

import "errors"

var (
	ErrNoColumns       = errors.New("table: no columns")
	ErrDuplicateColumn = errors.New("table: duplicate column key")
	ErrMissingAccessor = errors.New("table: column has no value accessor")
	ErrPageSize        = errors.New("table: page size not allowed")
)
