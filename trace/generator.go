package trace

import (
	"fmt"
	"math/rand"
)

// GeneratorParams configures a synthetic trace generator.
type GeneratorParams struct {
	// Seed drives all random choices. The same parameters and seed
	// always produce the same trace.
	Seed int64

	// NumAccesses is the number of accesses to produce.
	NumAccesses int

	// MemSize is the size of the address space in bytes.
	MemSize uint64

	// BlockSize is the line size in bytes. Accesses never cross a line
	// boundary.
	BlockSize uint32

	// WorkingSet is the number of hot lines.
	WorkingSet int

	// Locality is the probability that an access goes to a hot line.
	Locality float64

	// WriteFraction is the probability that an access is a write.
	WriteFraction float64

	// MaxGap is the largest cycle gap between consecutive accesses.
	MaxGap uint64
}

// DefaultGeneratorParams returns parameters for a small trace with strong
// locality and a moderate write share.
func DefaultGeneratorParams() GeneratorParams {
	return GeneratorParams{
		Seed:          1,
		NumAccesses:   10000,
		MemSize:       16 * 1024 * 1024,
		BlockSize:     64,
		WorkingSet:    64,
		Locality:      0.8,
		WriteFraction: 0.3,
		MaxGap:        4,
	}
}

// A Generator produces a deterministic synthetic access stream. Create
// generators with NewGenerator.
type Generator struct {
	params  GeneratorParams
	rand    *rand.Rand
	hot     []uint64
	cycle   uint64
	emitted int
}

// NewGenerator creates a Generator. It panics if the parameters are out of
// range.
func NewGenerator(params GeneratorParams) *Generator {
	paramsMustBeValid(params)

	g := &Generator{
		params: params,
		rand:   rand.New(rand.NewSource(params.Seed)),
	}

	numLines := int64(params.MemSize / uint64(params.BlockSize))
	g.hot = make([]uint64, params.WorkingSet)
	for i := range g.hot {
		g.hot[i] = uint64(g.rand.Int63n(numLines)) *
			uint64(params.BlockSize)
	}

	return g
}

// Next returns the next access. It returns false once the configured number
// of accesses has been produced.
func (g *Generator) Next() (Access, bool) {
	if g.emitted >= g.params.NumAccesses {
		return Access{}, false
	}
	g.emitted++

	g.cycle += 1 + uint64(g.rand.Int63n(int64(g.params.MaxGap)))

	var lineAddr uint64
	if g.rand.Float64() < g.params.Locality {
		lineAddr = g.hot[g.rand.Intn(len(g.hot))]
	} else {
		numLines := int64(g.params.MemSize / uint64(g.params.BlockSize))
		lineAddr = uint64(g.rand.Int63n(numLines)) *
			uint64(g.params.BlockSize)
	}

	sizes := [4]uint32{1, 2, 4, 8}
	size := sizes[g.rand.Intn(len(sizes))]
	offset := uint64(g.rand.Int63n(int64(g.params.BlockSize-size) + 1))

	return Access{
		Cycle:   g.cycle,
		IsWrite: g.rand.Float64() < g.params.WriteFraction,
		Addr:    lineAddr + offset,
		Size:    size,
	}, true
}

func paramsMustBeValid(params GeneratorParams) {
	if params.NumAccesses < 0 {
		panic("trace: the number of accesses must not be negative")
	}

	if params.BlockSize < 8 {
		panic("trace: block size must be at least 8 bytes")
	}

	if params.MemSize < uint64(params.BlockSize) {
		panic("trace: memory size must hold at least one line")
	}

	if params.WorkingSet <= 0 {
		panic("trace: working set must be greater than 0")
	}

	if params.Locality < 0 || params.Locality > 1 {
		panic(fmt.Sprintf("trace: locality must be in [0, 1], got %v",
			params.Locality))
	}

	if params.WriteFraction < 0 || params.WriteFraction > 1 {
		panic(fmt.Sprintf("trace: write fraction must be in [0, 1], got %v",
			params.WriteFraction))
	}

	if params.MaxGap < 1 {
		panic("trace: max gap must be at least 1 cycle")
	}
}
