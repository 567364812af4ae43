package replacement

import (
	"fmt"

	"github.com/sarchlab/pcmcache/satcounter"
)

// LRU evicts the least-recently-used line. It maintains the same metadata
// records as the energy-aware policy so that a hosting cache can swap
// policies without changing its bookkeeping, but its victim choice only
// considers recency. LRU does not maintain CachedCost; the field stays zero.
type LRU struct {
	frequencyBits uint
	writeBits     uint
	blockSize     uint32
}

// NewLRU creates an LRU policy. The counter widths size the bookkeeping
// counters in the records it instantiates. NewLRU panics if either width is
// outside [1, 31] or if blockSize is 0.
func NewLRU(frequencyBits, writeBits uint, blockSize uint32) *LRU {
	if frequencyBits == 0 || frequencyBits > 31 {
		panic(fmt.Sprintf(
			"replacement: frequency bits must be in [1, 31], got %d",
			frequencyBits))
	}

	if writeBits == 0 || writeBits > 31 {
		panic(fmt.Sprintf(
			"replacement: write bits must be in [1, 31], got %d", writeBits))
	}

	if blockSize == 0 {
		panic("replacement: block size must be greater than 0")
	}

	return &LRU{
		frequencyBits: frequencyBits,
		writeBits:     writeBits,
		blockSize:     blockSize,
	}
}

// Instantiate allocates a metadata record in the invalid state.
func (p *LRU) Instantiate() *LineState {
	return &LineState{
		AccessFreq: satcounter.New(p.frequencyBits),
		WriteCount: satcounter.New(p.writeBits),
	}
}

// Reset reinitializes a record for a line filled at time now.
func (p *LRU) Reset(line *LineState, now Tick) {
	line.LastTouch = now
	line.AccessFreq.Reset()
	line.AccessFreq.Increment()
	line.WriteCount.Reset()
	line.BytesUsed = p.blockSize
	line.Dirty = false
	line.PredictedReuse = 1
	line.CachedCost = 0
}

// Touch records an access to a resident line at time now.
func (p *LRU) Touch(line *LineState, now Tick) {
	line.LastTouch = now
	line.AccessFreq.Increment()
}

// Invalidate returns a record to the invalid state.
func (p *LRU) Invalidate(line *LineState) {
	line.LastTouch = 0
	line.AccessFreq.Reset()
	line.WriteCount.Reset()
	line.BytesUsed = 0
	line.Dirty = false
	line.PredictedReuse = 0
	line.CachedCost = 0
}

// UpdateWriteStats records a write to a resident line.
func (p *LRU) UpdateWriteStats(line *LineState, now Tick) {
	line.WriteCount.Increment()
}

// UpdateUtilization raises the high-water mark of bytes touched within the
// line.
func (p *LRU) UpdateUtilization(line *LineState, now Tick, bytesAccessed uint32) {
	if bytesAccessed > line.BytesUsed {
		line.BytesUsed = bytesAccessed
	}
}

// SetDirtyStatus records the line's dirty state.
func (p *LRU) SetDirtyStatus(line *LineState, now Tick, dirty bool) {
	line.Dirty = dirty
}

// FindVictim returns the candidate with the oldest last touch. Earlier
// candidates win ties. It panics if candidates is empty.
func (p *LRU) FindVictim(candidates []*LineState, now Tick) *LineState {
	if len(candidates) == 0 {
		panic("replacement: FindVictim requires at least one candidate")
	}

	victim := candidates[0]
	for _, line := range candidates[1:] {
		if line.LastTouch < victim.LastTouch {
			victim = line
		}
	}

	return victim
}

// BlockSize returns the line size, in bytes, the policy was built for.
func (p *LRU) BlockSize() uint32 {
	return p.blockSize
}
