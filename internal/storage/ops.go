package storage

// Copier is implemented by element types whose copies have observable
// effects. The receiver is either a zero slot (copy construction) or a live
// element (copy assignment).
type Copier[T any] interface {
	CopyFrom(src *T) error
}

// Mover is implemented by element types with a custom move. After a
// successful MoveFrom the source is in a moved-from state; it is still passed
// to Destroy, which must release nothing for it.
type Mover[T any] interface {
	MoveFrom(src *T) error
}

// Destroyer is implemented by element types with observable destruction.
// Destroy must be a no-op on the zero value and on moved-from values.
type Destroyer interface {
	Destroy()
}

// elementOps is the per-type element lifecycle. flatOps serves trivial
// types, hookOps dispatches to the Copier/Mover/Destroyer methods.
type elementOps[T any] interface {
	trivial() bool
	copyConstruct(dst, src *T) error
	copyAssign(dst, src *T) error
	moveConstruct(dst, src *T) error
	moveAssign(dst, src *T) error
	destroy(p *T)
}

func opsFor[T any]() elementOps[T] {
	var p *T
	_, copier := any(p).(Copier[T])
	_, mover := any(p).(Mover[T])
	_, destroyer := any(p).(Destroyer)
	if !copier && !mover && !destroyer {
		return flatOps[T]{}
	}
	return hookOps[T]{copier: copier, mover: mover, destroyer: destroyer}
}

// IsTrivial reports whether T has no observable construction, copy, move or
// destruction.
func IsTrivial[T any]() bool {
	return opsFor[T]().trivial()
}

type flatOps[T any] struct{}

func (flatOps[T]) trivial() bool { return true }

func (flatOps[T]) copyConstruct(dst, src *T) error {
	*dst = *src
	return nil
}

func (flatOps[T]) copyAssign(dst, src *T) error {
	*dst = *src
	return nil
}

func (flatOps[T]) moveConstruct(dst, src *T) error {
	*dst = *src
	return nil
}

func (flatOps[T]) moveAssign(dst, src *T) error {
	*dst = *src
	return nil
}

func (flatOps[T]) destroy(p *T) {
	var zero T
	*p = zero
}

type hookOps[T any] struct {
	copier    bool
	mover     bool
	destroyer bool
}

func (hookOps[T]) trivial() bool { return false }

func (o hookOps[T]) copyConstruct(dst, src *T) error {
	if !o.copier {
		*dst = *src
		return nil
	}
	if err := any(dst).(Copier[T]).CopyFrom(src); err != nil {
		var zero T
		*dst = zero
		return err
	}
	return nil
}

func (o hookOps[T]) copyAssign(dst, src *T) error {
	if !o.copier {
		if dst != src {
			o.destroy(dst)
			*dst = *src
		}
		return nil
	}
	return any(dst).(Copier[T]).CopyFrom(src)
}

// moveConstruct falls back to a copy for Copier-only types and to a bitwise
// transfer that zeroes the source otherwise.
func (o hookOps[T]) moveConstruct(dst, src *T) error {
	switch {
	case o.mover:
		if err := any(dst).(Mover[T]).MoveFrom(src); err != nil {
			var zero T
			*dst = zero
			return err
		}
		return nil
	case o.copier:
		return o.copyConstruct(dst, src)
	default:
		var zero T
		*dst = *src
		*src = zero
		return nil
	}
}

func (o hookOps[T]) moveAssign(dst, src *T) error {
	switch {
	case o.mover:
		return any(dst).(Mover[T]).MoveFrom(src)
	case o.copier:
		return o.copyAssign(dst, src)
	default:
		if dst == src {
			return nil
		}
		o.destroy(dst)
		var zero T
		*dst = *src
		*src = zero
		return nil
	}
}

func (o hookOps[T]) destroy(p *T) {
	if o.destroyer {
		any(p).(Destroyer).Destroy()
	}
	var zero T
	*p = zero
}
