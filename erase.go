package inplace

import "fmt"

// Erase removes the element at pos and returns an iterator to the element
// that followed it.
//
// The following elements are shifted left by move assignment. If a move
// fails, v keeps its length and the error is returned.
func (v *Vector[T]) Erase(pos ConstIterator[T]) (Iterator[T], error) {
	idx, err := v.position(pos)
	if err != nil {
		return Iterator[T]{}, err
	}
	if idx == v.Len() {
		return Iterator[T]{}, fmt.Errorf("%w: erase at end", ErrInvalidPosition)
	}
	return v.eraseRange(idx, idx+1)
}

// EraseRange removes the elements in [first, last) and returns an iterator
// to the element that followed them. An empty range is a no-op.
func (v *Vector[T]) EraseRange(first, last ConstIterator[T]) (Iterator[T], error) {
	i, err := v.position(first)
	if err != nil {
		return Iterator[T]{}, err
	}
	j, err := v.position(last)
	if err != nil {
		return Iterator[T]{}, err
	}
	if j < i {
		return Iterator[T]{}, fmt.Errorf("%w: range [%d, %d)", ErrInvalidPosition, i, j)
	}
	return v.eraseRange(i, j)
}

func (v *Vector[T]) eraseRange(i, j int) (Iterator[T], error) {
	if err := v.s.EraseRange(i, j); err != nil {
		return Iterator[T]{}, v.fail("erase", err)
	}
	return v.iterAt(i), nil
}

// Erase removes every element equal to value and returns how many were
// removed. The order of the remaining elements is kept.
func Erase[T comparable](v *Vector[T], value T) (int, error) {
	n, err := v.s.Compact(func(e *T) bool { return *e != value })
	if err != nil {
		return 0, v.fail("erase", err)
	}
	return n, nil
}

// EraseFunc removes every element for which del returns true and returns
// how many were removed. The order of the remaining elements is kept.
func EraseFunc[T any](v *Vector[T], del func(T) bool) (int, error) {
	n, err := v.s.Compact(func(e *T) bool { return !del(*e) })
	if err != nil {
		return 0, v.fail("erase", err)
	}
	return n, nil
}
