package inplace

import (
	"fmt"
	"iter"
)

// Assign replaces the contents of v with count copies of value. A negative
// count is an *OutOfRangeError.
//
// The elements v already holds are copy-assigned, the rest are constructed.
// If a copy fails, v is left valid but its contents are unspecified.
func (v *Vector[T]) Assign(count int, value T) error {
	if count > v.Cap() {
		return v.capacityError("assign", count, nil)
	}
	if count < 0 {
		return &OutOfRangeError{Pos: count, Size: v.Len()}
	}
	if v.Len() > count {
		v.truncate(count)
	}
	for i := range v.Len() {
		if err := v.s.CopyAssignAt(i, &value); err != nil {
			return v.fail("assign", err)
		}
	}
	for v.Len() < count {
		if _, err := v.s.AppendCopy(&value); err != nil {
			return v.fail("assign", err)
		}
	}
	return nil
}

// AssignSlice replaces the contents of v with copies of src. src may be a
// part of v.Slice(); a src reaching into the unused capacity of v is
// rejected with ErrInvalidPosition.
//
// The elements both lengths share are copy-assigned in index order, then
// surplus elements are destroyed and missing ones constructed. If a copy
// fails, v is left valid but its contents are unspecified.
func (v *Vector[T]) AssignSlice(src []T) error {
	if len(src) > v.Cap() {
		return v.capacityError("assign", len(src), nil)
	}
	if v.overlaps(src) {
		k, ok := v.live(src)
		if !ok {
			return fmt.Errorf("%w: source overlaps unused capacity", ErrInvalidPosition)
		}
		if k == 0 {
			v.truncate(len(src))
			return nil
		}
		// Slot i is written from slot k+i > i, which has not been written yet.
	}

	shared := min(v.Len(), len(src))
	for i := range shared {
		if err := v.s.CopyAssignAt(i, &src[i]); err != nil {
			return v.fail("assign", err)
		}
	}
	if v.Len() > shared {
		v.truncate(shared)
	}
	for i := v.Len(); i < len(src); i++ {
		if _, err := v.s.AppendCopy(&src[i]); err != nil {
			return v.fail("assign", err)
		}
	}
	return nil
}

// AssignIterators replaces the contents of v with copies of [first, last).
// The range may belong to v itself.
func (v *Vector[T]) AssignIterators(first, last ConstIterator[T]) error {
	src, err := span(first, last)
	if err != nil {
		return err
	}
	return v.AssignSlice(src)
}

// AssignSeq replaces the contents of v with the values yielded by seq.
// Values are stored as given. If seq yields more values than fit, iteration
// stops and a *CapacityError is returned with v holding the first Cap
// values.
func (v *Vector[T]) AssignSeq(seq iter.Seq[T]) error {
	i := 0
	for x := range seq {
		switch {
		case i < v.Len():
			v.s.ReplaceAt(i, x)
		case i == v.Cap():
			return v.capacityError("assign", v.Cap()+1, nil)
		default:
			v.s.Append(x)
		}
		i++
	}
	v.truncate(i)
	return nil
}
