// Package replacement provides replacement policies that score resident
// cache lines for eviction. Policies are driven entirely by the hosting
// cache: the cache owns the line metadata, reports lifecycle events such as
// fills, touches, and writes, and asks the policy to pick a victim when a
// set is full.
package replacement

import "github.com/sarchlab/pcmcache/satcounter"

// A Tick is a point in simulated time, counted in cycles. Ticks are
// non-negative and must never decrease from the perspective of a policy.
type Tick uint64

// LineState is the replacement metadata kept for one cache-line slot. The
// hosting cache allocates one record per slot and passes records back to the
// policy on every lifecycle event. Policies mutate the record in place and
// never retain references beyond a call.
type LineState struct {
	// LastTouch is the time of the most recent access to the line.
	LastTouch Tick

	// AccessFreq counts accesses of any kind since the last fill.
	AccessFreq satcounter.Counter

	// WriteCount counts writes since the last fill.
	WriteCount satcounter.Counter

	// BytesUsed is the high-water mark of bytes touched within the line.
	BytesUsed uint32

	// Dirty reports whether the line holds data not yet written back.
	Dirty bool

	// PredictedReuse is a predicted reuse distance. It is carried for
	// future predictors and is not read by any scoring rule yet.
	PredictedReuse uint32

	// CachedCost is the eviction cost computed at the last scoring event.
	// It is a hint for observers; victim selection always recomputes it.
	CachedCost float64
}

// A Policy maintains per-line replacement metadata and selects eviction
// victims. Implementations are not safe for concurrent use; the hosting
// cache serializes all calls.
type Policy interface {
	// Instantiate allocates a fresh metadata record in the invalid state.
	Instantiate() *LineState

	// Reset reinitializes a record when a line is filled at time now.
	Reset(line *LineState, now Tick)

	// Touch records an access to a resident line at time now.
	Touch(line *LineState, now Tick)

	// Invalidate returns a record to the invalid state.
	Invalidate(line *LineState)

	// UpdateWriteStats records a write to a resident line at time now.
	UpdateWriteStats(line *LineState, now Tick)

	// UpdateUtilization raises the high-water mark of bytes touched
	// within a resident line.
	UpdateUtilization(line *LineState, now Tick, bytesAccessed uint32)

	// SetDirtyStatus records a change of the line's dirty state.
	SetDirtyStatus(line *LineState, now Tick, dirty bool)

	// FindVictim picks the line to evict among the candidates, which must
	// all be resident. It panics if candidates is empty. The candidate
	// order is significant: ties are broken in favor of the earliest
	// candidate.
	FindVictim(candidates []*LineState, now Tick) *LineState

	// BlockSize returns the line size, in bytes, the policy was built
	// for.
	BlockSize() uint32
}
