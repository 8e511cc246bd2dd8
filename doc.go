// Package inplace provides Vector, a sequence container with a capacity
// fixed at construction and contiguous storage allocated exactly once.
//
// Elements never move to a new allocation: growing past the capacity fails
// with ErrCapacityExceeded instead, and pointers to elements stay valid until
// the element is erased or shifted by an insert or erase before it.
//
// # Quick Start
//
//	v, _ := inplace.New[int](4)
//	defer v.Close()
//
//	v.PushBack(10)
//	v.PushBack(20)
//	v.Insert(v.CBegin().Next(), 15) // [10 15 20]
//
//	if _, err := v.InsertN(v.CEnd(), 2, 30); errors.Is(err, inplace.ErrCapacityExceeded) {
//	    // v is unchanged
//	}
//
// # Element Semantics
//
// Plain values are copied, moved and destroyed as bytes. Types that need to
// observe their lifecycle implement any of Copier, Mover and Destroyer on
// their pointer type. Copy and move hooks may fail; the error is passed back
// unchanged and the operation honors the guarantee documented on it:
//
//   - PushBack, EmplaceBack, AppendSlice, AppendSeq, ResizeWith and the
//     positional inserts leave v unchanged on failure.
//   - Assign, CopyFrom, Erase and Swap leave v valid with unspecified contents.
//
// Values passed by value (PushBack, Insert, Of, sequence elements) are stored
// as given. Slices, iterator ranges and fill values are copied through
// CopyFrom.
//
// # Iterators
//
// Iterator and ConstIterator are random-access positions. With
// WithCheckedIterators, or in binaries built with the inplace_checked tag,
// iterators panic with an *IteratorRangeError when used outside the live
// range of their vector.
//
// # Off-heap Storage
//
// WithOffHeap places the region of a pointer-free element type in an
// anonymous memory mapping outside the Go heap:
//
//	v, err := inplace.New[float32](1<<20, inplace.WithOffHeap())
//	if err != nil {
//	    return err
//	}
//	defer v.Close()
package inplace
