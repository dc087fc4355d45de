// Package billow computes structure-of-arrays block layouts and applies
// them to caller-owned memory.
//
// A block stores a fixed set of typed fields deinterleaved: each field
// gets its own contiguous sub-array, all sub-arrays sharing one element
// count. billow computes where those sub-arrays go — it never allocates,
// frees, or touches the bytes itself.
//
// # Usage
//
//	b := billow.NewBuilder()
//	pos := billow.Add[[3]float32](b)
//	mass := billow.Add[float64](b)
//
//	layout, err := b.Finish()
//	if err != nil { ... }
//
//	// Memory comes from the caller; the region package is one source.
//	buf := region.AlignedBytes(1<<16, layout.Element().Align)
//
//	blk := layout.Apply(buf)
//	positions := pos.Slice(blk) // [][3]float32, blk.Len() elements
//	masses := mass.Slice(blk)   // []float64, same length
//
// # Packing
//
// Finish orders fields by descending alignment (ties keep registration
// order) and lays the sub-arrays back to back. Because every field's
// size is a multiple of its own alignment, this ordering alone keeps
// each sub-array on its field's alignment boundary — no padding is ever
// inserted between sub-arrays, and the element stride is exactly the
// sum of the field sizes.
//
// # Ownership
//
// Apply carves whatever region the caller supplies; the caller remains
// responsible for that memory's lifetime. A Block is invalidated when
// its region is freed, moved, or shrunk, and billow provides no
// notification when that happens.
//
// # Thread Safety
//
// A Builder is single-threaded. A BlockLayout is immutable after Finish
// and safe for concurrent use. A Block's field sub-arrays are disjoint
// byte ranges, so distinct fields may be written concurrently; writes
// within one field need caller-side coordination.
package billow
