package datarecording

import "github.com/sarchlab/pcmcache/cache"

// An EvictionLogger is a cache hook that records one row per eviction
// decision. It reads the victim's metadata before the cache clears it, so
// the rows carry the cost and counters that drove the decision.
type EvictionLogger struct {
	recorder DataRecorder
}

// NewEvictionLogger creates an EvictionLogger that stores into recorder,
// creating the table it writes to. Attach the logger to a cache with
// AcceptHook.
func NewEvictionLogger(recorder DataRecorder) *EvictionLogger {
	recorder.CreateTable(EvictionTable, EvictionRecord{})

	return &EvictionLogger{recorder: recorder}
}

// Func records eviction events. Other hook positions are ignored.
func (l *EvictionLogger) Func(ctx cache.HookCtx) {
	if ctx.Pos != cache.HookPosEviction {
		return
	}

	block := ctx.Block
	l.recorder.InsertData(EvictionTable, EvictionRecord{
		Cycle:      uint64(ctx.Now),
		Cache:      ctx.Domain.Name(),
		SetID:      block.SetID,
		WayID:      block.WayID,
		Tag:        block.Tag,
		Cost:       block.Line.CachedCost,
		Dirty:      block.IsDirty,
		AccessFreq: block.Line.AccessFreq.Read(),
		WriteCount: block.Line.WriteCount.Read(),
		BytesUsed:  block.Line.BytesUsed,
	})
}
