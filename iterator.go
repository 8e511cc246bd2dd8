package inplace

import "cmp"

// cursor is a position in a vector's slot region. first and last bound a
// checked cursor: dereference needs first <= pos < last and arithmetic keeps
// first <= pos <= last.
type cursor[T any] struct {
	owner   *Vector[T]
	data    []T
	pos     int
	first   int
	last    int
	checked bool
}

func (c cursor[T]) mustDeref(op string, p int) {
	if c.checked && (p < c.first || p >= c.last) {
		panic(&IteratorRangeError{Op: op, Pos: p, First: c.first, Last: c.last})
	}
}

func (c cursor[T]) mustMove(op string, p int) cursor[T] {
	if c.checked && (p < c.first || p > c.last) {
		panic(&IteratorRangeError{Op: op, Pos: p, First: c.first, Last: c.last})
	}
	c.pos = p
	return c
}

func (c cursor[T]) same(o cursor[T]) bool {
	return c.owner == o.owner
}

// Index returns the position as an offset from the first slot of the vector.
func (c cursor[T]) Index() int { return c.pos }

// Checked reports whether range checks are enabled.
func (c cursor[T]) Checked() bool { return c.checked }

// Iterator is a random-access position in a Vector that allows mutation of
// the element it designates. It is a value: arithmetic returns a new
// iterator and leaves the receiver unchanged.
//
// An Iterator is invalidated by any operation that changes the vector's
// length or moves elements. A checked iterator panics with an
// *IteratorRangeError when dereferenced or moved outside the live range the
// vector had when the iterator was created; an unchecked one is only bounded
// by the vector's capacity.
type Iterator[T any] struct {
	cursor[T]
}

// Ptr returns a pointer to the designated element.
func (it Iterator[T]) Ptr() *T {
	it.mustDeref("dereference", it.pos)
	return &it.data[it.pos]
}

// Get returns a copy of the designated element.
func (it Iterator[T]) Get() T { return *it.Ptr() }

// Set overwrites the designated element with v.
func (it Iterator[T]) Set(v T) { *it.Ptr() = v }

// At returns a pointer to the element n positions away.
func (it Iterator[T]) At(n int) *T {
	it.mustDeref("index", it.pos+n)
	return &it.data[it.pos+n]
}

// Next returns the iterator one position forward.
func (it Iterator[T]) Next() Iterator[T] { return it.Add(1) }

// Prev returns the iterator one position back.
func (it Iterator[T]) Prev() Iterator[T] { return it.Add(-1) }

// Add returns the iterator moved by n positions.
func (it Iterator[T]) Add(n int) Iterator[T] {
	return Iterator[T]{it.mustMove("advance", it.pos+n)}
}

// Distance returns it - o.
func (it Iterator[T]) Distance(o Iterator[T]) int { return it.pos - o.pos }

// Equal reports whether it and o designate the same slot.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.same(o.cursor) && it.pos == o.pos
}

// Compare orders it and o by position.
func (it Iterator[T]) Compare(o Iterator[T]) int { return cmp.Compare(it.pos, o.pos) }

// Less reports whether it is before o.
func (it Iterator[T]) Less(o Iterator[T]) bool { return it.pos < o.pos }

// Const returns a read-only iterator at the same position.
func (it Iterator[T]) Const() ConstIterator[T] { return ConstIterator[T](it) }

// ConstIterator is the read-only counterpart of Iterator. Positional
// mutators of Vector take ConstIterator arguments; use Iterator.Const to
// pass a mutable one.
type ConstIterator[T any] struct {
	cursor[T]
}

// Get returns a copy of the designated element.
func (it ConstIterator[T]) Get() T {
	it.mustDeref("dereference", it.pos)
	return it.data[it.pos]
}

// At returns a copy of the element n positions away.
func (it ConstIterator[T]) At(n int) T {
	it.mustDeref("index", it.pos+n)
	return it.data[it.pos+n]
}

// Next returns the iterator one position forward.
func (it ConstIterator[T]) Next() ConstIterator[T] { return it.Add(1) }

// Prev returns the iterator one position back.
func (it ConstIterator[T]) Prev() ConstIterator[T] { return it.Add(-1) }

// Add returns the iterator moved by n positions.
func (it ConstIterator[T]) Add(n int) ConstIterator[T] {
	return ConstIterator[T]{it.mustMove("advance", it.pos+n)}
}

// Distance returns it - o.
func (it ConstIterator[T]) Distance(o ConstIterator[T]) int { return it.pos - o.pos }

// Equal reports whether it and o designate the same slot.
func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool {
	return it.same(o.cursor) && it.pos == o.pos
}

// Compare orders it and o by position.
func (it ConstIterator[T]) Compare(o ConstIterator[T]) int { return cmp.Compare(it.pos, o.pos) }

// Less reports whether it is before o.
func (it ConstIterator[T]) Less(o ConstIterator[T]) bool { return it.pos < o.pos }
