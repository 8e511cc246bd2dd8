// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Element regions are carved out of a single byte allocation whose start is
// aligned to the larger of the element alignment and the CPU cache line.
package mem
