package storage

// Attic parks the live elements [pos, Len) at the top of the zone
// [Len, end) so the gap after pos can be filled by appending.
//
// An Attic borrows its Storage for one mutating call. It is created with
// NewAttic, filled by the caller through the Storage append helpers, and
// finished with either Retrieve or Abort.
type Attic[T any] struct {
	s     *Storage[T]
	begin int
	end   int
	moves int
}

// NewAttic relocates the tail [pos, Len) of s so that it ends at end, leaving
// the gap [pos, end-(Len-pos)) to be filled. end is the final length after the
// fill, or Cap when the number of elements to insert is unknown.
//
// If a relocation fails, the elements parked so far are moved back and the
// error is returned unchanged.
func NewAttic[T any](s *Storage[T], pos, end int) (Attic[T], error) {
	a := Attic[T]{s: s, begin: end, end: end}

	if end == s.size {
		// Nothing will be inserted: the tail is already where it belongs.
		a.begin = pos
		s.size = pos
		return a, nil
	}

	for s.size != pos {
		last := s.size - 1
		if err := s.Relocate(a.begin-1, last); err != nil {
			_ = a.Retrieve()
			return Attic[T]{}, err
		}
		s.size = last
		a.begin--
		a.moves++
	}
	return a, nil
}

// CheckCapacity returns ErrNoSpace if writing slot pos would overwrite the
// parked elements.
func (a *Attic[T]) CheckCapacity(pos int) error {
	if pos >= a.begin {
		return ErrNoSpace
	}
	return nil
}

// Retrieve moves the parked elements down to follow the live range and sets
// the final length.
//
// If a move fails, every element still parked and every live element is
// destroyed, leaving the storage empty, and the error is returned.
func (a *Attic[T]) Retrieve() error {
	s := a.s
	if s.size == a.begin {
		a.begin = a.end
		s.size = a.end
		return nil
	}

	for ; a.begin != a.end; a.begin++ {
		if err := s.Relocate(s.size, a.begin); err != nil {
			s.Destroy(a.begin, a.end)
			a.begin = a.end
			s.Clear()
			return err
		}
		s.size++
		a.moves++
	}
	return nil
}

// Abort undoes a failed fill: the elements constructed since fill are
// destroyed and the parked elements are retrieved. The error is that of
// Retrieve; when it is non-nil the storage is empty.
func (a *Attic[T]) Abort(fill int) error {
	a.s.Destroy(fill, a.s.size)
	a.s.size = fill
	return a.Retrieve()
}

// Parked returns the number of elements waiting in the attic.
func (a *Attic[T]) Parked() int {
	return a.end - a.begin
}

// Relocations returns how many elements were moved into or out of the attic.
func (a *Attic[T]) Relocations() int {
	return a.moves
}
