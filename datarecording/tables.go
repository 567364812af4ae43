package datarecording

// Names of the tables a recorded simulation run writes.
const (
	RunInfoTable  = "run_info"
	EvictionTable = "evictions"
	SnapshotTable = "stats_snapshots"
)

// A RunProperty is one property/value row describing a run.
type RunProperty struct {
	Property string
	Value    string
}

// An EvictionRecord describes one eviction decision, including the victim's
// metadata at the moment it was picked.
type EvictionRecord struct {
	Cycle      uint64
	Cache      string
	SetID      int
	WayID      int
	Tag        uint64
	Cost       float64
	Dirty      bool
	AccessFreq uint32
	WriteCount uint32
	BytesUsed  uint32
}

// A StatsSnapshot is a periodic copy of a cache's activity counters.
type StatsSnapshot struct {
	Cycle      uint64
	Cache      string
	Reads      uint64
	Writes     uint64
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	WriteBacks uint64
}
