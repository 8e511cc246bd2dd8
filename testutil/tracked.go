package testutil

import "errors"

// ErrInjected is the failure returned by an armed Registry.
var ErrInjected = errors.New("testutil: injected element failure")

// Registry issues Tracked elements and keeps lifecycle counters for them.
// It is not safe for concurrent use.
type Registry struct {
	live          int
	copies        int
	moves         int
	destroys      int
	overDestroyed int

	ops    int
	failAt int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// New issues a live element with the given id.
func (r *Registry) New(id int) Tracked {
	r.live++
	return Tracked{ID: id, reg: r, live: true}
}

// Make issues one live element per id.
func (r *Registry) Make(ids ...int) []Tracked {
	out := make([]Tracked, len(ids))
	for i, id := range ids {
		out[i] = r.New(id)
	}
	return out
}

// Construct returns an in-place constructor for an element with the given
// id. The constructor counts as an operation for FailAfter.
func (r *Registry) Construct(id int) func(slot *Tracked) error {
	return func(slot *Tracked) error {
		if err := r.tick(); err != nil {
			return err
		}
		*slot = r.New(id)
		return nil
	}
}

// FailAfter arms the registry so that the n-th copy, move or construction
// from now returns ErrInjected. n <= 0 disarms it.
func (r *Registry) FailAfter(n int) {
	if n <= 0 {
		r.failAt = 0
		return
	}
	r.failAt = r.ops + n
}

// Live returns the number of issued elements not yet destroyed or moved from.
func (r *Registry) Live() int { return r.live }

// Copies returns the number of successful copies.
func (r *Registry) Copies() int { return r.copies }

// Moves returns the number of successful moves.
func (r *Registry) Moves() int { return r.moves }

// Destroys returns the number of live elements destroyed.
func (r *Registry) Destroys() int { return r.destroys }

// OverDestroyed returns how often Destroy hit an element that was neither
// live nor moved from.
func (r *Registry) OverDestroyed() int { return r.overDestroyed }

func (r *Registry) tick() error {
	r.ops++
	if r.failAt != 0 && r.ops == r.failAt {
		r.failAt = 0
		return ErrInjected
	}
	return nil
}

// Tracked is an element type with observable copy, move and destruction.
type Tracked struct {
	ID int

	reg   *Registry
	live  bool
	moved bool
}

// Live reports whether t holds a value.
func (t *Tracked) Live() bool { return t.live }

// CopyFrom copies src into t.
func (t *Tracked) CopyFrom(src *Tracked) error {
	reg := src.reg
	if err := reg.tick(); err != nil {
		return err
	}
	reg.copies++
	if !t.live {
		reg.live++
	}
	t.ID, t.reg, t.live, t.moved = src.ID, reg, true, false
	return nil
}

// MoveFrom transfers src into t, leaving src moved-from.
func (t *Tracked) MoveFrom(src *Tracked) error {
	reg := src.reg
	if err := reg.tick(); err != nil {
		return err
	}
	reg.moves++
	id, wasLive := src.ID, src.live
	src.live, src.moved = false, true
	if wasLive {
		reg.live--
	}
	if !t.live {
		reg.live++
	}
	t.ID, t.reg, t.live, t.moved = id, reg, true, false
	return nil
}

// Destroy releases t.
func (t *Tracked) Destroy() {
	if t.reg == nil {
		return
	}
	if t.live {
		t.live = false
		t.reg.live--
		t.reg.destroys++
		return
	}
	if !t.moved {
		t.reg.overDestroyed++
	}
}

// IDs returns the ids of elems in order.
func IDs(elems []Tracked) []int {
	out := make([]int, len(elems))
	for i := range elems {
		out[i] = elems[i].ID
	}
	return out
}
