package inplace

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"unsafe"

	"github.com/hupe1980/inplace/internal/storage"
)

// Copier is implemented by element types whose copies have observable
// effects. CopyFrom is called on a zero slot for copy construction and on a
// live element for copy assignment.
type Copier[T any] = storage.Copier[T]

// Mover is implemented by element types with a custom move. The source of a
// successful MoveFrom is still destroyed afterwards.
type Mover[T any] = storage.Mover[T]

// Destroyer is implemented by element types with observable destruction.
// Destroy must be a no-op on zero and moved-from values.
type Destroyer = storage.Destroyer

// Constructor initializes an element in place. slot is zeroed on entry. A
// returned error aborts the calling operation and is passed back unchanged.
type Constructor[T any] func(slot *T) error

// Vector is a sequence with a capacity fixed at construction. Its elements
// live in a single region allocated once by the constructor and never
// reallocated, so pointers and iterators stay valid until the elements they
// designate are moved or erased.
//
// A Vector is not safe for concurrent use. Distinct vectors are independent.
type Vector[T any] struct {
	s    storage.Storage[T]
	opts options
}

// New returns an empty vector with room for capacity elements.
func New[T any](capacity int, opts ...Option) (*Vector[T], error) {
	o := buildOptions(opts)
	s, err := storage.New[T](capacity, storage.Options{OffHeap: o.offHeap})
	if err != nil {
		return nil, translateError(err)
	}
	return &Vector[T]{s: s, opts: o}, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](capacity int, opts ...Option) *Vector[T] {
	v, err := New[T](capacity, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func build[T any](capacity int, opts []Option, fill func(v *Vector[T]) error) (*Vector[T], error) {
	v, err := New[T](capacity, opts...)
	if err != nil {
		return nil, err
	}
	if err := fill(v); err != nil {
		_ = v.Close()
		return nil, err
	}
	return v, nil
}

// NewSize returns a vector holding count zero values.
func NewSize[T any](capacity, count int, opts ...Option) (*Vector[T], error) {
	return build(capacity, opts, func(v *Vector[T]) error {
		return v.Resize(count)
	})
}

// NewFilled returns a vector holding count copies of value.
func NewFilled[T any](capacity, count int, value T, opts ...Option) (*Vector[T], error) {
	return build(capacity, opts, func(v *Vector[T]) error {
		return v.Assign(count, value)
	})
}

// NewFromSlice returns a vector holding copies of src.
func NewFromSlice[T any](capacity int, src []T, opts ...Option) (*Vector[T], error) {
	return build(capacity, opts, func(v *Vector[T]) error {
		return v.AppendSlice(src)
	})
}

// NewFromSeq returns a vector holding the values yielded by seq.
func NewFromSeq[T any](capacity int, seq iter.Seq[T], opts ...Option) (*Vector[T], error) {
	return build(capacity, opts, func(v *Vector[T]) error {
		return v.AppendSeq(seq)
	})
}

// NewFromIterators returns a vector holding copies of [first, last).
func NewFromIterators[T any](capacity int, first, last ConstIterator[T], opts ...Option) (*Vector[T], error) {
	return build(capacity, opts, func(v *Vector[T]) error {
		return v.AssignIterators(first, last)
	})
}

// Of returns a vector of the given capacity holding elems. The elements are
// placed as given, without calling CopyFrom.
func Of[T any](capacity int, elems ...T) (*Vector[T], error) {
	return build(capacity, nil, func(v *Vector[T]) error {
		if len(elems) > v.Cap() {
			return v.capacityError("of", len(elems), nil)
		}
		for _, e := range elems {
			v.s.Append(e)
		}
		return nil
	})
}

// Clone returns a vector with the same capacity and options holding copies
// of v's elements.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c, err := v.empty()
	if err != nil {
		return nil, err
	}
	if err := c.s.CopyConstruct(&v.s); err != nil {
		_ = c.Close()
		return nil, v.fail("clone", err)
	}
	return c, nil
}

// Move returns a vector with the same capacity and options holding v's
// elements, leaving v empty.
//
// If an element move fails, the error is returned, v keeps its length and
// the elements already moved are left in their moved-from state.
func (v *Vector[T]) Move() (*Vector[T], error) {
	c, err := v.empty()
	if err != nil {
		return nil, err
	}
	if err := c.s.MoveConstruct(&v.s); err != nil {
		_ = c.Close()
		return nil, v.fail("move", err)
	}
	return c, nil
}

func (v *Vector[T]) empty() (*Vector[T], error) {
	s, err := storage.New[T](v.Cap(), storage.Options{OffHeap: v.opts.offHeap})
	if err != nil {
		return nil, translateError(err)
	}
	return &Vector[T]{s: s, opts: v.opts}, nil
}

// CopyFrom replaces v's elements with copies of src's elements. src may have
// a different capacity as long as its elements fit.
//
// Elements shared by both lengths are copy-assigned. If a copy fails, v is
// left valid with a mix of old and new elements.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.Len() > v.Cap() {
		return v.capacityError("copy_from", src.Len(), nil)
	}
	if err := v.s.CopyAssign(&src.s); err != nil {
		return v.fail("copy_from", err)
	}
	return nil
}

// MoveFrom replaces v's elements with src's elements, leaving src empty.
func (v *Vector[T]) MoveFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.Len() > v.Cap() {
		return v.capacityError("move_from", src.Len(), nil)
	}
	if err := v.s.MoveAssign(&src.s); err != nil {
		return v.fail("move_from", err)
	}
	return nil
}

// At returns a pointer to the element at pos, or an *OutOfRangeError if pos
// is not in [0, Len).
func (v *Vector[T]) At(pos int) (*T, error) {
	if pos < 0 || pos >= v.Len() {
		return nil, &OutOfRangeError{Pos: pos, Size: v.Len()}
	}
	return &v.s.Data()[pos], nil
}

// Index returns a pointer to the element at pos. It panics if pos is not in
// [0, Len).
func (v *Vector[T]) Index(pos int) *T {
	return &v.s.Live()[pos]
}

// Front returns a pointer to the first element. It panics if v is empty.
func (v *Vector[T]) Front() *T { return v.Index(0) }

// Back returns a pointer to the last element. It panics if v is empty.
func (v *Vector[T]) Back() *T { return v.Index(v.Len() - 1) }

// Data returns a pointer to the first slot, or nil for a zero-capacity
// vector. The pointer is stable for the lifetime of v.
func (v *Vector[T]) Data() *T { return unsafe.SliceData(v.s.Data()) }

// Slice returns the live elements. The slice aliases v's storage and has no
// spare capacity, so appending to it never writes into v.
func (v *Vector[T]) Slice() []T { return v.s.Live() }

// Empty reports whether v holds no elements.
func (v *Vector[T]) Empty() bool { return v.Len() == 0 }

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.s.Len() }

// Cap returns the fixed capacity.
func (v *Vector[T]) Cap() int { return v.s.Cap() }

// MaxSize returns the largest length v can reach, which is its capacity.
func (v *Vector[T]) MaxSize() int { return v.s.Cap() }

// Begin returns an iterator to the first element.
func (v *Vector[T]) Begin() Iterator[T] { return v.iterAt(0) }

// End returns an iterator one past the last element.
func (v *Vector[T]) End() Iterator[T] { return v.iterAt(v.Len()) }

// CBegin returns a read-only iterator to the first element.
func (v *Vector[T]) CBegin() ConstIterator[T] { return v.Begin().Const() }

// CEnd returns a read-only iterator one past the last element.
func (v *Vector[T]) CEnd() ConstIterator[T] { return v.End().Const() }

// All returns an iterator over index-value pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] { return slices.All(v.s.Live()) }

// Values returns an iterator over the elements in order.
func (v *Vector[T]) Values() iter.Seq[T] { return slices.Values(v.s.Live()) }

// Backward returns an iterator over index-value pairs in reverse order.
func (v *Vector[T]) Backward() iter.Seq2[int, T] { return slices.Backward(v.s.Live()) }

// Resize sets the length to count, destroying surplus elements or appending
// zero values.
func (v *Vector[T]) Resize(count int) error {
	if count > v.Cap() {
		return v.capacityError("resize", count, nil)
	}
	if count < 0 {
		return &OutOfRangeError{Pos: count, Size: v.Len()}
	}
	if count <= v.Len() {
		v.s.Destroy(count, v.Len())
		v.s.SetLen(count)
		return nil
	}
	var zero T
	for v.Len() < count {
		v.s.Append(zero)
	}
	return nil
}

// ResizeWith is like Resize but appends copies of value. If a copy fails,
// the appended elements are destroyed and v is unchanged.
func (v *Vector[T]) ResizeWith(count int, value T) error {
	if count > v.Cap() {
		return v.capacityError("resize", count, nil)
	}
	if count < 0 {
		return &OutOfRangeError{Pos: count, Size: v.Len()}
	}
	if count <= v.Len() {
		v.s.Destroy(count, v.Len())
		v.s.SetLen(count)
		return nil
	}
	n := v.Len()
	for v.Len() < count {
		if _, err := v.s.AppendCopy(&value); err != nil {
			v.truncate(n)
			return v.fail("resize", err)
		}
	}
	return nil
}

// Reserve fails with a *CapacityError if n exceeds the capacity. It never
// allocates.
func (v *Vector[T]) Reserve(n int) error {
	if n > v.Cap() {
		return v.capacityError("reserve", n, nil)
	}
	return nil
}

// ShrinkToFit does nothing; the capacity of a Vector is fixed.
func (v *Vector[T]) ShrinkToFit() {}

// Clear destroys every element in index order.
func (v *Vector[T]) Clear() { v.s.Clear() }

// PopBack destroys the last element. It does nothing on an empty vector.
func (v *Vector[T]) PopBack() {
	n := v.Len()
	if n == 0 {
		return
	}
	v.s.DestroyAt(n - 1)
	v.s.SetLen(n - 1)
}

// Close destroys every element and releases the storage. v has capacity
// zero afterwards. Close is idempotent.
func (v *Vector[T]) Close() error {
	return v.s.Release()
}

// String implements fmt.Stringer.
func (v *Vector[T]) String() string {
	return fmt.Sprint(v.s.Live())
}

func (v *Vector[T]) iterAt(idx int) Iterator[T] {
	return Iterator[T]{cursor[T]{
		owner:   v,
		data:    v.s.Data(),
		pos:     idx,
		last:    v.Len(),
		checked: v.opts.checked,
	}}
}

// position validates that pos is an iterator into v in [0, Len].
func (v *Vector[T]) position(pos ConstIterator[T]) (int, error) {
	if pos.owner != v || pos.pos < 0 || pos.pos > v.Len() {
		return 0, fmt.Errorf("%w: position %d", ErrInvalidPosition, pos.pos)
	}
	return pos.pos, nil
}

// span validates [first, last) as a range of a single vector and returns its
// elements.
func span[T any](first, last ConstIterator[T]) ([]T, error) {
	if !first.same(last.cursor) || first.pos < 0 || last.pos < first.pos || last.pos > len(first.data) {
		return nil, fmt.Errorf("%w: range [%d, %d)", ErrInvalidPosition, first.pos, last.pos)
	}
	return first.data[first.pos:last.pos:last.pos], nil
}

// overlaps reports whether src shares memory with the slot region of v.
// Zero-size elements never overlap.
func (v *Vector[T]) overlaps(src []T) bool {
	data := v.s.Data()
	size := unsafe.Sizeof(*new(T))
	if len(src) == 0 || len(data) == 0 || size == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	hi := lo + uintptr(len(data))*size
	p := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	return p < hi && lo < p+uintptr(len(src))*size
}

// live returns the offset of src within the live range of v, or false if
// src is not entirely made of live elements of v.
func (v *Vector[T]) live(src []T) (int, bool) {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(v.s.Data())))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	size := unsafe.Sizeof(*new(T))
	if p < base || (p-base)%size != 0 {
		return 0, false
	}
	k := int((p - base) / size)
	return k, k+len(src) <= v.Len()
}

func (v *Vector[T]) truncate(n int) {
	v.s.Destroy(n, v.Len())
	v.s.SetLen(n)
}

func (v *Vector[T]) capacityError(op string, requested int, cause error) error {
	v.opts.logger.LogCapacityExceeded(context.Background(), op, v.Len(), requested)
	v.opts.metricsCollector.RecordCapacityExceeded(op)
	return &CapacityError{Requested: requested, Capacity: v.Cap(), cause: cause}
}

// fail reports a failed operation and returns the error to hand back to the
// caller. Element errors are returned unchanged.
func (v *Vector[T]) fail(op string, err error) error {
	if errors.Is(err, storage.ErrNoSpace) {
		return v.capacityError(op, v.Cap()+1, err)
	}
	err = translateError(err)
	v.opts.logger.LogElementFailure(context.Background(), op, v.Len(), err)
	v.opts.metricsCollector.RecordElementFailure(op, err)
	return err
}
