package inplace

import (
	"errors"
	"fmt"

	"github.com/hupe1980/inplace/internal/storage"
)

var (
	// ErrCapacityExceeded is returned when an operation needs more slots than
	// the vector's fixed capacity.
	ErrCapacityExceeded = errors.New("inplace: capacity exceeded")

	// ErrOutOfRange is returned by validated access past the live range.
	ErrOutOfRange = errors.New("inplace: position out of range")

	// ErrInvalidPosition is returned when an iterator does not point into the
	// vector it is passed to.
	ErrInvalidPosition = errors.New("inplace: iterator does not belong to this vector")

	// ErrCapacityMismatch is returned by Swap for vectors of different capacity.
	ErrCapacityMismatch = errors.New("inplace: capacity mismatch")

	// ErrPointerElements is returned when off-heap storage is requested for an
	// element type that contains pointers.
	ErrPointerElements = errors.New("inplace: off-heap storage requires pointer-free elements")

	// ErrIteratorRange is the cause of the panic raised by a checked iterator
	// used outside its range.
	ErrIteratorRange = errors.New("inplace: iterator out of range")
)

// CapacityError reports an operation that would grow the vector past its
// capacity.
type CapacityError struct {
	Requested int
	Capacity  int
	cause     error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("inplace: capacity exceeded: requested %d, capacity %d", e.Requested, e.Capacity)
}

// Is makes every CapacityError match ErrCapacityExceeded.
func (e *CapacityError) Is(target error) bool { return target == ErrCapacityExceeded }

func (e *CapacityError) Unwrap() error { return e.cause }

// OutOfRangeError is returned by At and the other validated accessors.
type OutOfRangeError struct {
	Pos  int
	Size int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("inplace: pos >= size [%d >= %d]", e.Pos, e.Size)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// IteratorRangeError is the panic value of a checked iterator that is
// dereferenced, indexed or advanced outside [First, Last].
type IteratorRangeError struct {
	Op    string
	Pos   int
	First int
	Last  int
}

func (e *IteratorRangeError) Error() string {
	return fmt.Sprintf("inplace: iterator %s out of range: %d not in [%d, %d]", e.Op, e.Pos, e.First, e.Last)
}

func (e *IteratorRangeError) Unwrap() error { return ErrIteratorRange }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, storage.ErrNoSpace) {
		return fmt.Errorf("%w: %w", ErrCapacityExceeded, err)
	}
	if errors.Is(err, storage.ErrPointerElements) {
		return fmt.Errorf("%w: %w", ErrPointerElements, err)
	}

	return err
}
