// Package cache models a set-associative write-back cache that fronts a
// memory with asymmetric read and write costs, such as phase-change memory.
// The cache tracks tags and dirty bits only; it stores no data. A
// replacement policy owns the per-line metadata and picks eviction victims,
// and hooks expose fills, hits, evictions, and write-backs to observers.
package cache

import "github.com/sarchlab/pcmcache/replacement"

// A Clock supplies the current simulated time to a cache. Implementations
// must never move backward.
type Clock interface {
	Now() replacement.Tick
}

// Stats aggregates the activity counters of a cache. Accesses that cross
// line boundaries are split, and each piece counts separately.
type Stats struct {
	Reads      uint64
	Writes     uint64
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	WriteBacks uint64
}

// Comp is a set-associative write-back cache. Create caches with a Builder.
// Comp is not safe for concurrent use.
type Comp struct {
	HookableBase

	name      string
	blockSize uint32

	tags   *tagArray
	policy replacement.Policy
	clock  Clock

	stats      Stats
	candidates []*replacement.LineState
}

// Name returns the name of the cache.
func (c *Comp) Name() string {
	return c.name
}

// NumSets returns the number of sets.
func (c *Comp) NumSets() int {
	return c.tags.numSets
}

// NumWays returns the way associativity.
func (c *Comp) NumWays() int {
	return c.tags.numWays
}

// BlockSize returns the line size in bytes.
func (c *Comp) BlockSize() uint32 {
	return c.blockSize
}

// Stats returns a copy of the activity counters.
func (c *Comp) Stats() Stats {
	return c.stats
}

// Read performs a read of size bytes at addr. Accesses that cross line
// boundaries are split per line. Read reports whether every piece hit.
func (c *Comp) Read(addr uint64, size uint32) bool {
	return c.access(addr, size, false)
}

// Write performs a write of size bytes at addr. Writes allocate on a miss
// and mark the line dirty. Write reports whether every piece hit.
func (c *Comp) Write(addr uint64, size uint32) bool {
	return c.access(addr, size, true)
}

func (c *Comp) access(addr uint64, size uint32, isWrite bool) bool {
	if size == 0 {
		panic("cache: access size must be greater than 0")
	}

	allHit := true
	for size > 0 {
		piece := c.pieceWithinLine(addr, size)
		if !c.accessLine(addr, piece, isWrite) {
			allHit = false
		}

		addr += uint64(piece)
		size -= piece
	}

	return allHit
}

// pieceWithinLine clamps an access so it does not cross the next line
// boundary.
func (c *Comp) pieceWithinLine(addr uint64, size uint32) uint32 {
	lineEnd := c.tags.lineAddr(addr) + uint64(c.blockSize)

	room := uint32(lineEnd - addr)
	if size < room {
		return size
	}

	return room
}

func (c *Comp) accessLine(addr uint64, size uint32, isWrite bool) bool {
	now := c.clock.Now()

	if isWrite {
		c.stats.Writes++
	} else {
		c.stats.Reads++
	}

	hit := true
	block := c.tags.lookup(addr)
	if block == nil {
		hit = false
		c.stats.Misses++
		block = c.fill(addr, now)
	} else {
		c.stats.Hits++
		c.policy.Touch(block.Line, now)
		c.invokeHookAt(HookPosHit, now, block)
	}

	c.policy.UpdateUtilization(block.Line, now, c.byteExtent(addr, size))

	if isWrite {
		c.policy.UpdateWriteStats(block.Line, now)

		if !block.IsDirty {
			block.IsDirty = true
			c.policy.SetDirtyStatus(block.Line, now, true)
		}
	}

	return hit
}

// byteExtent returns how far into the line the access reaches.
func (c *Comp) byteExtent(addr uint64, size uint32) uint32 {
	offset := uint32(addr - c.tags.lineAddr(addr))
	return offset + size
}

func (c *Comp) fill(addr uint64, now replacement.Tick) *Block {
	set, _ := c.tags.setFor(addr)

	block := c.tags.firstInvalid(set)
	if block == nil {
		block = c.evict(set, now)
	}

	block.Tag = c.tags.lineAddr(addr)
	block.IsValid = true
	block.IsDirty = false
	c.policy.Reset(block.Line, now)
	c.invokeHookAt(HookPosFill, now, block)

	return block
}

func (c *Comp) evict(set *Set, now replacement.Tick) *Block {
	c.candidates = c.candidates[:0]
	for _, block := range set.Blocks {
		c.candidates = append(c.candidates, block.Line)
	}

	line := c.policy.FindVictim(c.candidates, now)

	var victim *Block
	for _, block := range set.Blocks {
		if block.Line == line {
			victim = block
			break
		}
	}
	if victim == nil {
		panic("cache: policy picked a line that is not in the set")
	}

	c.stats.Evictions++
	c.invokeHookAt(HookPosEviction, now, victim)

	if victim.IsDirty {
		c.stats.WriteBacks++
		c.invokeHookAt(HookPosWriteBack, now, victim)
	}

	c.policy.Invalidate(victim.Line)
	victim.IsValid = false
	victim.IsDirty = false

	return victim
}

// Flush writes back every dirty line and invalidates all lines. The
// activity counters are not reset.
func (c *Comp) Flush() {
	now := c.clock.Now()

	for s := range c.tags.sets {
		for _, block := range c.tags.sets[s].Blocks {
			if !block.IsValid {
				continue
			}

			if block.IsDirty {
				c.stats.WriteBacks++
				c.invokeHookAt(HookPosWriteBack, now, block)
			}

			c.policy.Invalidate(block.Line)
			block.IsValid = false
			block.IsDirty = false
		}
	}
}

func (c *Comp) invokeHookAt(pos *HookPos, now replacement.Tick, block *Block) {
	if len(c.Hooks) == 0 {
		return
	}

	c.InvokeHook(HookCtx{
		Domain: c,
		Pos:    pos,
		Now:    now,
		Block:  block,
	})
}
