package replacement

import (
	"fmt"
	"math"
)

// A Builder can build energy-aware replacement policies. The zero value is
// not usable; call MakeBuilder to get a builder loaded with defaults.
type Builder struct {
	frequencyBits     uint
	writeBits         uint
	recencyWeight     float64
	frequencyWeight   float64
	writeWeight       float64
	dirtyWeight       float64
	utilizationWeight float64
	pcmReadCost       float64
	pcmWriteCost      float64
	blockSize         uint32
}

// MakeBuilder creates a Builder with default parameters. The defaults use
// 4-bit counters, 64-byte lines, and a write that costs five times a read.
func MakeBuilder() Builder {
	return Builder{
		frequencyBits:     4,
		writeBits:         4,
		recencyWeight:     0.3,
		frequencyWeight:   0.2,
		writeWeight:       0.2,
		dirtyWeight:       0.2,
		utilizationWeight: 0.1,
		pcmReadCost:       1.0,
		pcmWriteCost:      5.0,
		blockSize:         64,
	}
}

// WithFrequencyBits sets the width of the access-frequency counter.
func (b Builder) WithFrequencyBits(bits uint) Builder {
	b.frequencyBits = bits
	return b
}

// WithWriteBits sets the width of the write counter.
func (b Builder) WithWriteBits(bits uint) Builder {
	b.writeBits = bits
	return b
}

// WithRecencyWeight sets the weight of the staleness factor.
func (b Builder) WithRecencyWeight(w float64) Builder {
	b.recencyWeight = w
	return b
}

// WithFrequencyWeight sets the weight of the access-frequency factor.
func (b Builder) WithFrequencyWeight(w float64) Builder {
	b.frequencyWeight = w
	return b
}

// WithWriteWeight sets the weight of the write-intensity factor.
func (b Builder) WithWriteWeight(w float64) Builder {
	b.writeWeight = w
	return b
}

// WithDirtyWeight sets the weight of the dirty factor.
func (b Builder) WithDirtyWeight(w float64) Builder {
	b.dirtyWeight = w
	return b
}

// WithUtilizationWeight sets the weight of the utilization factor.
func (b Builder) WithUtilizationWeight(w float64) Builder {
	b.utilizationWeight = w
	return b
}

// WithPCMReadCost sets the energy cost of one read from the backing memory.
func (b Builder) WithPCMReadCost(c float64) Builder {
	b.pcmReadCost = c
	return b
}

// WithPCMWriteCost sets the energy cost of one write to the backing memory.
func (b Builder) WithPCMWriteCost(c float64) Builder {
	b.pcmWriteCost = c
	return b
}

// WithBlockSize sets the cache-line size in bytes.
func (b Builder) WithBlockSize(size uint32) Builder {
	b.blockSize = size
	return b
}

// Build creates the policy. It panics if any parameter is out of range.
func (b Builder) Build() *EnergyAware {
	b.parametersMustBeValid()

	return &EnergyAware{
		frequencyBits:     b.frequencyBits,
		writeBits:         b.writeBits,
		recencyWeight:     b.recencyWeight,
		frequencyWeight:   b.frequencyWeight,
		writeWeight:       b.writeWeight,
		dirtyWeight:       b.dirtyWeight,
		utilizationWeight: b.utilizationWeight,
		pcmReadCost:       b.pcmReadCost,
		pcmWriteCost:      b.pcmWriteCost,
		blockSize:         b.blockSize,
		maxFreq:           float64(uint32(1)<<b.frequencyBits - 1),
		maxWrites:         float64(uint32(1)<<b.writeBits - 1),
	}
}

func (b Builder) parametersMustBeValid() {
	if b.frequencyBits == 0 || b.frequencyBits > 31 {
		panic(fmt.Sprintf(
			"replacement: frequency bits must be in [1, 31], got %d",
			b.frequencyBits))
	}

	if b.writeBits == 0 || b.writeBits > 31 {
		panic(fmt.Sprintf(
			"replacement: write bits must be in [1, 31], got %d",
			b.writeBits))
	}

	if b.blockSize == 0 {
		panic("replacement: block size must be greater than 0")
	}

	weights := map[string]float64{
		"recency":     b.recencyWeight,
		"frequency":   b.frequencyWeight,
		"write":       b.writeWeight,
		"dirty":       b.dirtyWeight,
		"utilization": b.utilizationWeight,
	}
	for name, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			panic(fmt.Sprintf(
				"replacement: %s weight must be finite and non-negative, got %v",
				name, w))
		}
	}

	if b.pcmReadCost < 0 || math.IsNaN(b.pcmReadCost) ||
		math.IsInf(b.pcmReadCost, 0) {
		panic(fmt.Sprintf(
			"replacement: PCM read cost must be finite and non-negative, got %v",
			b.pcmReadCost))
	}

	if b.pcmWriteCost < 0 || math.IsNaN(b.pcmWriteCost) ||
		math.IsInf(b.pcmWriteCost, 0) {
		panic(fmt.Sprintf(
			"replacement: PCM write cost must be finite and non-negative, got %v",
			b.pcmWriteCost))
	}
}
