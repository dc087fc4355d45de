// Package region provides memory regions for block layouts to be
// applied to.
//
// The billow core never allocates; it computes offsets over memory some
// other component owns. This package is that component for the common
// cases:
//
//   - AlignedBytes allocates a heap buffer whose first byte sits on a
//     caller-chosen power-of-two boundary, so Apply skips no leading
//     bytes.
//   - Arena carves one buffer into aligned sub-regions and hands them
//     out bump-pointer style, for callers packing several blocks into
//     one allocation.
//   - Mapping obtains page-aligned anonymous memory from the OS,
//     outside the Go garbage collector, for large or long-lived blocks.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): anonymous mappings use mmap(2)
//   - Windows: anonymous mappings use VirtualAlloc
//
// # Thread Safety
//
// AlignedBytes is a plain allocation. Arena is not safe for concurrent
// use. Mapping.Close is idempotent and protected by an atomic flag, but
// callers must ensure no goroutine touches Bytes after Close returns.
package region
