//go:build inplace_checked

package inplace

const defaultCheckedIterators = true
