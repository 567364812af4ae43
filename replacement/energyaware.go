package replacement

import (
	"math"

	"github.com/sarchlab/pcmcache/satcounter"
)

// Blend factors for the projected-access term and the write-back penalty in
// the eviction cost. They are part of the cost definition and are not
// configurable.
const (
	futureAccessWeight     = 0.1
	writeBackPenaltyWeight = 0.2
)

// EnergyAware scores lines by the energy cost of keeping them, assuming the
// backing memory has asymmetric read and write costs such as phase-change
// memory. Lines with the highest cost are evicted first. All parameters are
// fixed at build time; use MakeBuilder to create policies.
type EnergyAware struct {
	frequencyBits uint
	writeBits     uint

	recencyWeight     float64
	frequencyWeight   float64
	writeWeight       float64
	dirtyWeight       float64
	utilizationWeight float64

	pcmReadCost  float64
	pcmWriteCost float64
	blockSize    uint32

	maxFreq   float64
	maxWrites float64
}

// Instantiate allocates a metadata record in the invalid state, with
// counters sized for this policy.
func (p *EnergyAware) Instantiate() *LineState {
	return &LineState{
		AccessFreq: satcounter.New(p.frequencyBits),
		WriteCount: satcounter.New(p.writeBits),
	}
}

// Reset reinitializes a record for a line filled at time now. The fill
// counts as the line's first access.
func (p *EnergyAware) Reset(line *LineState, now Tick) {
	line.LastTouch = now
	line.AccessFreq.Reset()
	line.AccessFreq.Increment()
	line.WriteCount.Reset()

	// Assume full utilization until the line ages out.
	line.BytesUsed = p.blockSize

	line.Dirty = false
	line.PredictedReuse = 1
	line.CachedCost = p.Cost(line, now)
}

// Touch records an access to a resident line at time now.
func (p *EnergyAware) Touch(line *LineState, now Tick) {
	line.LastTouch = now
	line.AccessFreq.Increment()
	line.CachedCost = p.Cost(line, now)
}

// Invalidate returns a record to the invalid state. All fields read as zero
// afterwards; the counter widths are preserved.
func (p *EnergyAware) Invalidate(line *LineState) {
	line.LastTouch = 0
	line.AccessFreq.Reset()
	line.WriteCount.Reset()
	line.BytesUsed = 0
	line.Dirty = false
	line.PredictedReuse = 0
	line.CachedCost = 0
}

// UpdateWriteStats records a write to a resident line at time now.
func (p *EnergyAware) UpdateWriteStats(line *LineState, now Tick) {
	line.WriteCount.Increment()
	line.CachedCost = p.Cost(line, now)
}

// UpdateUtilization raises the high-water mark of bytes touched within the
// line. bytesAccessed is the extent reached by the current access, not an
// increment. Marks never shrink.
func (p *EnergyAware) UpdateUtilization(
	line *LineState,
	now Tick,
	bytesAccessed uint32,
) {
	if bytesAccessed > line.BytesUsed {
		line.BytesUsed = bytesAccessed
	}

	line.CachedCost = p.Cost(line, now)
}

// SetDirtyStatus records the line's dirty state at time now.
func (p *EnergyAware) SetDirtyStatus(line *LineState, now Tick, dirty bool) {
	line.Dirty = dirty
	line.CachedCost = p.Cost(line, now)
}

// FindVictim returns the candidate with the highest eviction cost,
// recomputing every candidate's cost at time now. Earlier candidates win
// ties. It panics if candidates is empty.
func (p *EnergyAware) FindVictim(candidates []*LineState, now Tick) *LineState {
	if len(candidates) == 0 {
		panic("replacement: FindVictim requires at least one candidate")
	}

	victim := candidates[0]
	maxCost := p.Cost(victim, now)
	victim.CachedCost = maxCost

	for _, line := range candidates[1:] {
		cost := p.Cost(line, now)
		line.CachedCost = cost

		if cost > maxCost {
			victim = line
			maxCost = cost
		}
	}

	return victim
}

// BlockSize returns the line size, in bytes, the policy was built for.
func (p *EnergyAware) BlockSize() uint32 {
	return p.blockSize
}

// Cost computes the eviction cost of a line at time now. Higher cost means a
// better eviction candidate. The result is never negative.
//
// The cost blends how stale the line is, how rarely it is accessed, how
// write-intensive it is, whether evicting it forces a write-back, and how
// much of the line was ever used. Staleness is normalized by the absolute
// time now, so the factor decays as a run progresses.
func (p *EnergyAware) Cost(line *LineState, now Tick) float64 {
	recencyFactor := 0.0
	if now > line.LastTouch {
		recencyFactor = float64(now-line.LastTouch) / float64(now)
	}

	frequencyFactor := 1.0 - float64(line.AccessFreq.Read())/p.maxFreq
	writeIntensity := float64(line.WriteCount.Read()) / p.maxWrites

	dirtyFactor := 0.0
	writeBackCost := 0.0
	if line.Dirty {
		dirtyFactor = 1.0
		writeBackCost = p.pcmWriteCost
	}

	utilizationFactor := 1.0 - float64(line.BytesUsed)/float64(p.blockSize)

	futureReadCost := float64(line.AccessFreq.Read()) * p.pcmReadCost
	futureWriteCost := float64(line.WriteCount.Read()) * p.pcmWriteCost

	cost := p.recencyWeight*recencyFactor +
		p.frequencyWeight*frequencyFactor +
		p.writeWeight*writeIntensity +
		p.dirtyWeight*dirtyFactor +
		p.utilizationWeight*utilizationFactor +
		futureAccessWeight*(futureReadCost+futureWriteCost) -
		writeBackPenaltyWeight*writeBackCost

	return math.Max(0.0, cost)
}
