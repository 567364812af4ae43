package cache

import (
	"fmt"

	"github.com/sarchlab/pcmcache/replacement"
)

// A Builder can build caches. The zero value is not usable; call MakeBuilder
// to get a builder loaded with defaults.
type Builder struct {
	byteSize  uint64
	numWays   int
	blockSize uint32
	policy    replacement.Policy
	clock     Clock
}

// MakeBuilder creates a Builder for a 32 KiB, 4-way cache with 64-byte
// lines. A policy and a clock must still be provided.
func MakeBuilder() Builder {
	return Builder{
		byteSize:  32 * 1024,
		numWays:   4,
		blockSize: 64,
	}
}

// WithByteSize sets the total capacity of the cache in bytes.
func (b Builder) WithByteSize(size uint64) Builder {
	b.byteSize = size
	return b
}

// WithWayAssociativity sets the number of ways in each set.
func (b Builder) WithWayAssociativity(ways int) Builder {
	b.numWays = ways
	return b
}

// WithBlockSize sets the line size in bytes.
func (b Builder) WithBlockSize(size uint32) Builder {
	b.blockSize = size
	return b
}

// WithPolicy sets the replacement policy.
func (b Builder) WithPolicy(p replacement.Policy) Builder {
	b.policy = p
	return b
}

// WithClock sets the clock the cache reads the current time from.
func (b Builder) WithClock(c Clock) Builder {
	b.clock = c
	return b
}

// Build creates a cache named name. It panics if the parameters do not
// describe a whole number of sets or disagree with the policy.
func (b Builder) Build(name string) *Comp {
	b.parametersMustBeValid()

	numSets := int(b.byteSize / uint64(b.blockSize) / uint64(b.numWays))

	c := &Comp{
		name:       name,
		blockSize:  b.blockSize,
		policy:     b.policy,
		clock:      b.clock,
		candidates: make([]*replacement.LineState, 0, b.numWays),
	}
	c.tags = newTagArray(numSets, b.numWays, b.blockSize, b.policy)

	return c
}

func (b Builder) parametersMustBeValid() {
	if b.policy == nil {
		panic("cache: a replacement policy is required")
	}

	if b.clock == nil {
		panic("cache: a clock is required")
	}

	if b.blockSize == 0 {
		panic("cache: block size must be greater than 0")
	}

	if b.numWays <= 0 {
		panic("cache: way associativity must be greater than 0")
	}

	setBytes := uint64(b.blockSize) * uint64(b.numWays)
	if b.byteSize == 0 || b.byteSize%setBytes != 0 {
		panic("cache: byte size must hold a whole number of sets")
	}

	if b.policy.BlockSize() != b.blockSize {
		panic(fmt.Sprintf(
			"cache: the policy expects %d-byte blocks, the cache uses %d",
			b.policy.BlockSize(), b.blockSize))
	}
}
