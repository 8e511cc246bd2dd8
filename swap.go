package inplace

import "fmt"

// Swap exchanges the contents of v and other, which must have the same
// capacity. Iterators keep designating slots, not elements.
//
// Elements at indices below both lengths are exchanged pairwise, the
// remaining elements of the longer vector are moved to the shorter one. If
// a move fails, both vectors are left valid with unspecified contents.
func (v *Vector[T]) Swap(other *Vector[T]) error {
	if v == other {
		return nil
	}
	if v.Cap() != other.Cap() {
		return fmt.Errorf("%w: %d != %d", ErrCapacityMismatch, v.Cap(), other.Cap())
	}

	short, long := v, other
	if short.Len() > long.Len() {
		short, long = long, short
	}
	m, n := short.Len(), long.Len()

	for i := range m {
		if err := v.s.SwapAt(i, &other.s, i); err != nil {
			return v.fail("swap", err)
		}
	}

	data := long.s.Data()
	for i := m; i < n; i++ {
		if _, err := short.s.AppendMove(&data[i]); err != nil {
			long.truncate(m)
			return v.fail("swap", err)
		}
	}
	long.truncate(m)
	return nil
}
