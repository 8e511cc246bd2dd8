// Package testutil provides testing utilities for inplace.
//
// This package is intended for use in tests and benchmarks only.
//
// # Lifecycle Tracking
//
// Tracked is an element type with observable copy, move and destruction.
// Every Tracked value is issued by a Registry, which counts live elements and
// can inject a failure into the n-th copy or move:
//
//	reg := testutil.NewRegistry()
//	v := inplace.MustNew[testutil.Tracked](8)
//	v.PushBack(reg.New(1))
//	reg.FailAfter(2)          // the second copy/move from now fails
//	...
//	assert.Equal(t, v.Len(), reg.Live())
//
// # Random Input
//
//	rng := testutil.NewRNG(seed)
//	pos := rng.Intn(v.Len() + 1)
package testutil
