// Package mmap provides anonymous memory mappings for off-heap element storage.
//
// # Overview
//
// A mapping obtained from MapAnon lives outside the Go heap. The garbage
// collector never scans it, so it may only hold pointer-free data.
//
// # Usage
//
//	m, err := mmap.MapAnon(size)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE, madvise(2) for hints
//   - Windows: VirtualAlloc/VirtualFree (advice is a no-op)
//
// # Thread Safety
//
// Close is idempotent and protected by atomic operations. Callers must ensure
// nothing accesses Bytes() after Close() returns.
package mmap
