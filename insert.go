package inplace

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/hupe1980/inplace/internal/storage"
)

// Positional inserts open a gap at pos by parking the tail [pos, Len) at the
// top of the region, append the new elements into the gap and move the tail
// back. If building a new element fails, the elements built so far are
// destroyed and the tail is restored, so v is unchanged. If moving the tail
// back fails, v is emptied.

func (v *Vector[T]) insertCounted(op string, pos ConstIterator[T], count int, fill func() error) (Iterator[T], error) {
	idx, err := v.position(pos)
	if err != nil {
		return Iterator[T]{}, err
	}
	if count > v.Cap()-v.Len() {
		return Iterator[T]{}, v.capacityError(op, v.Len()+count, nil)
	}
	if count == 0 {
		return v.iterAt(idx), nil
	}

	a, err := storage.NewAttic(&v.s, idx, v.Len()+count)
	if err != nil {
		return Iterator[T]{}, v.fail(op, err)
	}
	if err := fill(); err != nil {
		return Iterator[T]{}, v.abort(op, &a, idx, err)
	}
	return v.retrieve(op, &a, idx)
}

// abort rolls back a failed fill. cause is reported unchanged unless the
// tail could not be moved back, in which case v is empty and the returned
// error joins cause with the move failure.
func (v *Vector[T]) abort(op string, a *storage.Attic[T], idx int, cause error) error {
	before := idx + a.Parked()
	if err := a.Abort(idx); err != nil {
		v.opts.logger.LogTeardown(context.Background(), op, before, err)
		cause = errors.Join(cause, err)
	}
	return v.fail(op, cause)
}

func (v *Vector[T]) retrieve(op string, a *storage.Attic[T], idx int) (Iterator[T], error) {
	before := v.Len() + a.Parked()
	if err := a.Retrieve(); err != nil {
		v.opts.logger.LogTeardown(context.Background(), op, before, err)
		return Iterator[T]{}, v.fail(op, err)
	}
	v.opts.metricsCollector.RecordRelocations(op, a.Relocations())
	return v.iterAt(idx), nil
}

// Insert places value before pos and returns an iterator to it. value is
// stored as given, without calling CopyFrom.
func (v *Vector[T]) Insert(pos ConstIterator[T], value T) (Iterator[T], error) {
	return v.insertCounted("insert", pos, 1, func() error {
		v.s.Append(value)
		return nil
	})
}

// InsertN inserts count copies of value before pos and returns an iterator
// to the first of them, or pos if count is zero. A negative count is an
// *OutOfRangeError.
func (v *Vector[T]) InsertN(pos ConstIterator[T], count int, value T) (Iterator[T], error) {
	if count < 0 {
		return Iterator[T]{}, &OutOfRangeError{Pos: count, Size: v.Len()}
	}
	return v.insertCounted("insert", pos, count, func() error {
		for range count {
			if _, err := v.s.AppendCopy(&value); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertSlice inserts copies of src before pos. A src sharing memory with v
// is rejected with ErrInvalidPosition.
func (v *Vector[T]) InsertSlice(pos ConstIterator[T], src []T) (Iterator[T], error) {
	if v.overlaps(src) {
		return Iterator[T]{}, fmt.Errorf("%w: source aliases the destination", ErrInvalidPosition)
	}
	return v.insertCounted("insert", pos, len(src), func() error {
		for i := range src {
			if _, err := v.s.AppendCopy(&src[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertIterators inserts copies of [first, last) before pos. The range must
// belong to another vector.
func (v *Vector[T]) InsertIterators(pos ConstIterator[T], first, last ConstIterator[T]) (Iterator[T], error) {
	if first.owner == v {
		return Iterator[T]{}, fmt.Errorf("%w: range aliases the destination", ErrInvalidPosition)
	}
	src, err := span(first, last)
	if err != nil {
		return Iterator[T]{}, err
	}
	return v.InsertSlice(pos, src)
}

// Emplace constructs a new element in place before pos.
func (v *Vector[T]) Emplace(pos ConstIterator[T], ctor Constructor[T]) (Iterator[T], error) {
	return v.insertCounted("emplace", pos, 1, func() error {
		_, err := v.s.AppendWith(ctor)
		return err
	})
}

// InsertSeq inserts the values yielded by seq before pos. The length of seq
// is not known up front: the tail is parked at the very top of the region
// and every value is checked against it. If seq yields more values than fit,
// iteration stops, v is restored and a *CapacityError is returned.
func (v *Vector[T]) InsertSeq(pos ConstIterator[T], seq iter.Seq[T]) (Iterator[T], error) {
	const op = "insert"

	idx, err := v.position(pos)
	if err != nil {
		return Iterator[T]{}, err
	}
	a, err := storage.NewAttic(&v.s, idx, v.Cap())
	if err != nil {
		return Iterator[T]{}, v.fail(op, err)
	}

	for x := range seq {
		if err := a.CheckCapacity(v.Len()); err != nil {
			return Iterator[T]{}, v.abort(op, &a, idx, err)
		}
		v.s.Append(x)
	}
	return v.retrieve(op, &a, idx)
}
