package inplace

import "iter"

// PushBack appends value and returns a pointer to it, or a *CapacityError
// if v is full. value is stored as given, without calling CopyFrom.
func (v *Vector[T]) PushBack(value T) (*T, error) {
	if v.Len() == v.Cap() {
		return nil, v.capacityError("push_back", v.Len()+1, nil)
	}
	return v.s.Append(value), nil
}

// TryPushBack appends value if there is room and returns a pointer to it.
// It returns nil and leaves v unchanged when v is full.
func (v *Vector[T]) TryPushBack(value T) *T {
	if v.Len() == v.Cap() {
		return nil
	}
	return v.s.Append(value)
}

// UncheckedPushBack appends value. The caller guarantees v is not full; a
// full vector panics with an index out of range.
func (v *Vector[T]) UncheckedPushBack(value T) *T {
	return v.s.Append(value)
}

// EmplaceBack constructs a new last element in place with ctor.
func (v *Vector[T]) EmplaceBack(ctor Constructor[T]) (*T, error) {
	if v.Len() == v.Cap() {
		return nil, v.capacityError("emplace_back", v.Len()+1, nil)
	}
	return v.emplaceBack(ctor)
}

// TryEmplaceBack is like EmplaceBack but returns nil, nil when v is full. An
// error is only returned from ctor.
func (v *Vector[T]) TryEmplaceBack(ctor Constructor[T]) (*T, error) {
	if v.Len() == v.Cap() {
		return nil, nil
	}
	return v.emplaceBack(ctor)
}

// UncheckedEmplaceBack is like EmplaceBack without the capacity check.
func (v *Vector[T]) UncheckedEmplaceBack(ctor Constructor[T]) (*T, error) {
	return v.emplaceBack(ctor)
}

func (v *Vector[T]) emplaceBack(ctor Constructor[T]) (*T, error) {
	p, err := v.s.AppendWith(ctor)
	if err != nil {
		return nil, v.fail("emplace_back", err)
	}
	return p, nil
}

// AppendSlice appends copies of src. If src does not fit or a copy fails, v
// is unchanged.
func (v *Vector[T]) AppendSlice(src []T) error {
	if len(src) > v.Cap()-v.Len() {
		return v.capacityError("append", v.Len()+len(src), nil)
	}
	n := v.Len()
	for i := range src {
		if _, err := v.s.AppendCopy(&src[i]); err != nil {
			v.truncate(n)
			return v.fail("append", err)
		}
	}
	return nil
}

// AppendSeq appends the values yielded by seq. If seq yields more values
// than fit, iteration stops, the values appended by this call are destroyed
// and a *CapacityError is returned.
func (v *Vector[T]) AppendSeq(seq iter.Seq[T]) error {
	n := v.Len()
	for x := range seq {
		if v.Len() == v.Cap() {
			v.truncate(n)
			return v.capacityError("append", v.Cap()+1, nil)
		}
		v.s.Append(x)
	}
	return nil
}

// TryAppendSlice appends copies of as many leading elements of src as fit
// and returns the elements that were not appended. The error is non-nil
// only if a copy fails; the failed element is the first of the remainder.
func (v *Vector[T]) TryAppendSlice(src []T) ([]T, error) {
	for i := range src {
		if v.Len() == v.Cap() {
			return src[i:], nil
		}
		if _, err := v.s.AppendCopy(&src[i]); err != nil {
			return src[i:], v.fail("append", err)
		}
	}
	return src[len(src):], nil
}
