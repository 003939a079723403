package table

import "fmt"

// SNoKey is the reserved column key that renders the row's sequence number.
const SNoKey = "sno"

// Column describes one table column. Value renders the display value for a
// row; index is the row's position within the current page. Value may be nil
// only for the SNoKey column.
type Column[T any] struct {
	Key   string
	Label string
	Value func(row T, index int) any
}

// SNo returns the sequence-number column with the given label.
func SNo[T any](label string) Column[T] {
	return Column[T]{Key: SNoKey, Label: label}
}

func validateColumns[T any](cols []Column[T]) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Key)
		}
		seen[c.Key] = struct{}{}
		if c.Key != SNoKey && c.Value == nil {
			return fmt.Errorf("%w: %q", ErrMissingAccessor, c.Key)
		}
	}
	return nil
}

// cell renders column c for the row at index within the page.
func (c Column[T]) cell(row T, index, pageIndex, pageSize int) any {
	if c.Key == SNoKey {
		return pageIndex*pageSize + index + 1
	}
	return c.Value(row, index)
}
