package storage

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/hupe1980/inplace/internal/conv"
	"github.com/hupe1980/inplace/internal/mem"
	"github.com/hupe1980/inplace/internal/mmap"
)

var (
	// ErrNoSpace is returned when a slot beyond the usable region is requested.
	ErrNoSpace = errors.New("storage: no space left in region")
	// ErrPointerElements is returned when off-heap storage is requested for
	// an element type containing pointers.
	ErrPointerElements = errors.New("storage: off-heap region requires pointer-free elements")
)

// Options configures how a Storage obtains its region.
type Options struct {
	// OffHeap places the region in an anonymous mapping outside the Go heap.
	OffHeap bool
}

// Storage is a fixed-capacity region of element slots with an occupancy count.
type Storage[T any] struct {
	data    []T
	size    int
	ops     elementOps[T]
	trivial bool
	mapping *mmap.Mapping
}

// New allocates a region for capacity elements. A capacity of zero allocates
// nothing.
func New[T any](capacity int, opts Options) (Storage[T], error) {
	if capacity < 0 {
		return Storage[T]{}, fmt.Errorf("storage: negative capacity %d", capacity)
	}

	ops := opsFor[T]()
	s := Storage[T]{ops: ops, trivial: ops.trivial()}
	if capacity == 0 {
		return s, nil
	}

	var zero T
	elemSize := unsafe.Sizeof(zero)
	pointerFree := PointerFree[T]()

	if opts.OffHeap && !pointerFree {
		return Storage[T]{}, ErrPointerElements
	}
	if elemSize == 0 || !pointerFree {
		s.data = make([]T, capacity)
		return s, nil
	}

	size, err := conv.ByteSize(capacity, elemSize)
	if err != nil {
		return Storage[T]{}, err
	}

	var region []byte
	if opts.OffHeap {
		m, err := mmap.MapAnon(size)
		if err != nil {
			return Storage[T]{}, fmt.Errorf("storage: map region: %w", err)
		}
		// A fixed-capacity region is sized for use; ask for the pages up
		// front. The hint is advisory.
		_ = m.Advise(mmap.AccessWillNeed)
		s.mapping = m
		region = m.Bytes()
	} else {
		region = mem.AllocAligned(size, mem.Alignment(unsafe.Alignof(zero)))
	}

	s.data = unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(region))), capacity) //nolint:gosec // region is sized and aligned for capacity elements
	return s, nil
}

// Data returns all capacity slots. It is nil for a zero-capacity storage.
func (s *Storage[T]) Data() []T { return s.data }

// Live returns the live prefix [0, Len).
func (s *Storage[T]) Live() []T { return s.data[:s.size:s.size] }

// Len returns the number of live slots.
func (s *Storage[T]) Len() int { return s.size }

// SetLen records n live slots. It neither constructs nor destroys.
func (s *Storage[T]) SetLen(n int) { s.size = n }

// Cap returns the number of slots.
func (s *Storage[T]) Cap() int { return len(s.data) }

// Trivial reports whether elements take the flat-copy paths.
func (s *Storage[T]) Trivial() bool { return s.trivial }

// OffHeap reports whether the region lives in an anonymous mapping.
func (s *Storage[T]) OffHeap() bool { return s.mapping != nil }

// ConstructAt places v into the uninitialized slot i.
func (s *Storage[T]) ConstructAt(i int, v T) *T {
	p := &s.data[i]
	*p = v
	return p
}

// ConstructWith initializes the uninitialized slot i in place. On error the
// slot is reset to zero.
func (s *Storage[T]) ConstructWith(i int, ctor func(slot *T) error) (*T, error) {
	p := &s.data[i]
	if err := ctor(p); err != nil {
		var zero T
		*p = zero
		return nil, err
	}
	return p, nil
}

// CopyConstructAt copy-constructs the uninitialized slot i from src.
func (s *Storage[T]) CopyConstructAt(i int, src *T) (*T, error) {
	p := &s.data[i]
	if err := s.ops.copyConstruct(p, src); err != nil {
		return nil, err
	}
	return p, nil
}

// MoveConstructAt move-constructs the uninitialized slot i from src. The
// source is left moved-from and still needs destroying.
func (s *Storage[T]) MoveConstructAt(i int, src *T) (*T, error) {
	p := &s.data[i]
	if err := s.ops.moveConstruct(p, src); err != nil {
		return nil, err
	}
	return p, nil
}

// CopyAssignAt copy-assigns src over the live slot i.
func (s *Storage[T]) CopyAssignAt(i int, src *T) error {
	return s.ops.copyAssign(&s.data[i], src)
}

// MoveAssignAt move-assigns src over the live slot i.
func (s *Storage[T]) MoveAssignAt(i int, src *T) error {
	return s.ops.moveAssign(&s.data[i], src)
}

// ReplaceAt destroys the live slot i and places v there.
func (s *Storage[T]) ReplaceAt(i int, v T) *T {
	s.ops.destroy(&s.data[i])
	return s.ConstructAt(i, v)
}

// Relocate destructively moves slot src into the uninitialized slot dst.
// On error both slots are unchanged.
func (s *Storage[T]) Relocate(dst, src int) error {
	if _, err := s.MoveConstructAt(dst, &s.data[src]); err != nil {
		return err
	}
	s.DestroyAt(src)
	return nil
}

// DestroyAt destroys slot i.
func (s *Storage[T]) DestroyAt(i int) {
	s.ops.destroy(&s.data[i])
}

// Destroy destroys the slots in [first, last).
func (s *Storage[T]) Destroy(first, last int) {
	if first >= last {
		return
	}
	if s.trivial {
		clear(s.data[first:last])
		return
	}
	for i := first; i < last; i++ {
		s.ops.destroy(&s.data[i])
	}
}

// Clear destroys every live slot and resets the length.
func (s *Storage[T]) Clear() {
	s.Destroy(0, s.size)
	s.size = 0
}

// Append places v at Len and grows the live range. The caller checks capacity.
func (s *Storage[T]) Append(v T) *T {
	p := s.ConstructAt(s.size, v)
	s.size++
	return p
}

// AppendCopy copy-constructs a new last element from src.
func (s *Storage[T]) AppendCopy(src *T) (*T, error) {
	p, err := s.CopyConstructAt(s.size, src)
	if err != nil {
		return nil, err
	}
	s.size++
	return p, nil
}

// AppendMove move-constructs a new last element from src.
func (s *Storage[T]) AppendMove(src *T) (*T, error) {
	p, err := s.MoveConstructAt(s.size, src)
	if err != nil {
		return nil, err
	}
	s.size++
	return p, nil
}

// AppendWith constructs a new last element in place.
func (s *Storage[T]) AppendWith(ctor func(slot *T) error) (*T, error) {
	p, err := s.ConstructWith(s.size, ctor)
	if err != nil {
		return nil, err
	}
	s.size++
	return p, nil
}

// Guard runs fn. If fn fails, every live slot is destroyed before the error
// is returned unchanged.
func (s *Storage[T]) Guard(fn func() error) error {
	if err := fn(); err != nil {
		s.Clear()
		return err
	}
	return nil
}

// CopyConstruct fills the empty storage s with copies of src's live elements.
// On failure s is left empty.
func (s *Storage[T]) CopyConstruct(src *Storage[T]) error {
	if src.size > s.Cap() {
		return ErrNoSpace
	}
	if s.trivial {
		s.size = copy(s.data, src.data[:src.size])
		return nil
	}
	return s.Guard(func() error {
		for ; s.size != src.size; s.size++ {
			if _, err := s.CopyConstructAt(s.size, &src.data[s.size]); err != nil {
				return err
			}
		}
		return nil
	})
}

// MoveConstruct fills the empty storage s by moving src's live elements.
// On success src is left empty. On failure s is left empty and src keeps its
// length, with the elements already moved in their moved-from state.
func (s *Storage[T]) MoveConstruct(src *Storage[T]) error {
	if src.size > s.Cap() {
		return ErrNoSpace
	}
	if s.trivial {
		s.size = copy(s.data, src.data[:src.size])
		src.Clear()
		return nil
	}
	err := s.Guard(func() error {
		for ; s.size != src.size; s.size++ {
			if _, err := s.MoveConstructAt(s.size, &src.data[s.size]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	src.Clear()
	return nil
}

// CopyAssign makes s hold copies of src's live elements, assigning over the
// shared prefix, destroying any excess and constructing the rest.
func (s *Storage[T]) CopyAssign(src *Storage[T]) error {
	if s == src {
		return nil
	}
	if src.size > s.Cap() {
		return ErrNoSpace
	}
	if s.size > src.size {
		s.Destroy(src.size, s.size)
		s.size = src.size
	}
	if s.trivial {
		s.size = copy(s.data, src.data[:src.size])
		return nil
	}
	for i := 0; i != s.size; i++ {
		if err := s.CopyAssignAt(i, &src.data[i]); err != nil {
			return err
		}
	}
	for ; s.size < src.size; s.size++ {
		if _, err := s.CopyConstructAt(s.size, &src.data[s.size]); err != nil {
			return err
		}
	}
	return nil
}

// MoveAssign is CopyAssign with moves. On success src is left empty.
func (s *Storage[T]) MoveAssign(src *Storage[T]) error {
	if s == src {
		return nil
	}
	if src.size > s.Cap() {
		return ErrNoSpace
	}
	if s.size > src.size {
		s.Destroy(src.size, s.size)
		s.size = src.size
	}
	if s.trivial {
		s.size = copy(s.data, src.data[:src.size])
		src.Clear()
		return nil
	}
	for i := 0; i != s.size; i++ {
		if err := s.MoveAssignAt(i, &src.data[i]); err != nil {
			return err
		}
	}
	for ; s.size < src.size; s.size++ {
		if _, err := s.MoveConstructAt(s.size, &src.data[s.size]); err != nil {
			return err
		}
	}
	src.Clear()
	return nil
}

// EraseRange removes the live slots [first, last), shifting the surviving
// tail left by move assignment and destroying the vacated slots.
//
// If a move fails, the length is unchanged and the slots already shifted hold
// their new values. A slot left moved-from is destroyed with the rest later.
func (s *Storage[T]) EraseRange(first, last int) error {
	n := last - first
	if n <= 0 {
		return nil
	}
	if s.trivial {
		copy(s.data[first:], s.data[last:s.size])
		clear(s.data[s.size-n : s.size])
		s.size -= n
		return nil
	}
	for i := last; i < s.size; i++ {
		if err := s.MoveAssignAt(i-n, &s.data[i]); err != nil {
			return err
		}
	}
	s.Destroy(s.size-n, s.size)
	s.size -= n
	return nil
}

// Compact keeps the live elements for which keep reports true, preserving
// their order, and returns the number removed.
func (s *Storage[T]) Compact(keep func(*T) bool) (int, error) {
	w := 0
	for r := 0; r < s.size; r++ {
		if !keep(&s.data[r]) {
			continue
		}
		if r != w {
			if err := s.MoveAssignAt(w, &s.data[r]); err != nil {
				return 0, err
			}
		}
		w++
	}
	removed := s.size - w
	s.Destroy(w, s.size)
	s.size = w
	return removed, nil
}

// SwapAt exchanges the live slot i of s with the live slot j of o.
func (s *Storage[T]) SwapAt(i int, o *Storage[T], j int) error {
	a, b := &s.data[i], &o.data[j]
	if s.trivial {
		*a, *b = *b, *a
		return nil
	}

	var tmp T
	if err := s.ops.moveConstruct(&tmp, a); err != nil {
		return err
	}
	if err := s.ops.moveAssign(a, b); err != nil {
		_ = s.ops.moveAssign(a, &tmp)
		s.ops.destroy(&tmp)
		return err
	}
	if err := s.ops.moveAssign(b, &tmp); err != nil {
		s.ops.destroy(&tmp)
		return err
	}
	s.ops.destroy(&tmp)
	return nil
}

// Release destroys every live slot and gives the region back. The storage
// has capacity zero afterwards. It is idempotent.
func (s *Storage[T]) Release() error {
	s.Clear()
	s.data = nil
	if s.mapping == nil {
		return nil
	}
	err := s.mapping.Close()
	s.mapping = nil
	return err
}
