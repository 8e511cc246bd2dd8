// Package conv provides safe integer conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when turning element counts into byte sizes for a storage region.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices bounded by a capacity), use direct type casts instead.
package conv
