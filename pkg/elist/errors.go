package elist

import (
	"fmt"
)

var (
	ErrIndexOutOfBounds = fmt.Errorf("index out of bounds")
	ErrNotUnique        = fmt.Errorf("element not unique")
	ErrImmutable        = fmt.Errorf("list is immutable")
)

func indexError(index, size int) error {
	return fmt.Errorf("index=%d, size=%d: %w", index, size, ErrIndexOutOfBounds)
}
