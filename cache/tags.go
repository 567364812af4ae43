package cache

import "github.com/sarchlab/pcmcache/replacement"

// A Block is the tag-array bookkeeping for one cache-line slot.
type Block struct {
	Tag     uint64
	SetID   int
	WayID   int
	IsValid bool
	IsDirty bool
	Line    *replacement.LineState
}

// A Set lists the blocks that can hold a given address, in way order.
type Set struct {
	Blocks []*Block
}

// A tagArray tracks which lines are resident. The replacement metadata
// records live in one slab, indexed by slot, and blocks point into it.
type tagArray struct {
	numSets   int
	numWays   int
	blockSize uint32

	sets  []Set
	lines []replacement.LineState
}

func newTagArray(
	numSets, numWays int,
	blockSize uint32,
	policy replacement.Policy,
) *tagArray {
	t := &tagArray{
		numSets:   numSets,
		numWays:   numWays,
		blockSize: blockSize,
		sets:      make([]Set, numSets),
		lines:     make([]replacement.LineState, numSets*numWays),
	}

	for s := 0; s < numSets; s++ {
		blocks := make([]*Block, numWays)

		for w := 0; w < numWays; w++ {
			slot := s*numWays + w
			t.lines[slot] = *policy.Instantiate()
			blocks[w] = &Block{
				SetID: s,
				WayID: w,
				Line:  &t.lines[slot],
			}
		}

		t.sets[s].Blocks = blocks
	}

	return t
}

// lineAddr returns the address of the first byte of the line holding addr.
func (t *tagArray) lineAddr(addr uint64) uint64 {
	return addr / uint64(t.blockSize) * uint64(t.blockSize)
}

// setFor returns the set that can hold addr.
func (t *tagArray) setFor(addr uint64) (*Set, int) {
	setID := int(addr / uint64(t.blockSize) % uint64(t.numSets))
	return &t.sets[setID], setID
}

// lookup returns the resident block holding addr, or nil on a miss.
func (t *tagArray) lookup(addr uint64) *Block {
	tag := t.lineAddr(addr)
	set, _ := t.setFor(addr)

	for _, block := range set.Blocks {
		if block.IsValid && block.Tag == tag {
			return block
		}
	}

	return nil
}

// firstInvalid returns the first invalid block in the set, or nil if the set
// is full.
func (t *tagArray) firstInvalid(set *Set) *Block {
	for _, block := range set.Blocks {
		if !block.IsValid {
			return block
		}
	}

	return nil
}
