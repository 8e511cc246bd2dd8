// Package storage implements the fixed-capacity element region behind
// inplace.Vector.
//
// # Layout
//
// A Storage owns one region of capacity slots, allocated exactly once. Slots
// [0, Len) hold live elements in index order; slots [Len, Cap) are zero and
// count as uninitialized. Pointer-free element types are carved out of an
// aligned byte region (optionally an anonymous off-heap mapping); element
// types containing pointers use a plain []T so the garbage collector sees them.
//
// # Element semantics
//
// Element types opt into observable lifecycle behaviour by implementing
// Copier, Mover or Destroyer on their pointer type. Types implementing none of
// them are trivial and take the flat-copy paths. The choice is made once per
// Storage.
//
// # Attic
//
// An Attic temporarily parks the tail of the live range in unused capacity so
// that interior inserts can fill a gap using plain appends, then moves the
// tail back. Len always equals the number of live slots below the parked
// zone, so a failure at any step destroys each element exactly once.
package storage
