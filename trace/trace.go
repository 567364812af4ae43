// Package trace reads, writes, and synthesizes memory-access traces. A
// trace is a CSV file with one access per row, in the form
//
//	cycle,op,addr,size
//
// where cycle is a non-decreasing cycle number, op is R or W, addr is a byte
// address in decimal or 0x-prefixed hex, and size is the access size in
// bytes. Blank lines and lines starting with '#' are skipped, as is an
// optional header row.
package trace

// An Access is one row of a memory-access trace.
type Access struct {
	Cycle   uint64
	IsWrite bool
	Addr    uint64
	Size    uint32
}
