// Package simulation replays memory-access traces against a cache and
// aggregates the outcome of the run.
package simulation

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sarchlab/pcmcache/cache"
	"github.com/sarchlab/pcmcache/datarecording"
	"github.com/sarchlab/pcmcache/monitoring"
	"github.com/sarchlab/pcmcache/replacement"
	"github.com/sarchlab/pcmcache/trace"
)

// A Result summarizes one trace replay.
type Result struct {
	Accesses uint64
	Cycles   uint64
	Stats    cache.Stats

	// PCMEnergy estimates the energy spent on PCM traffic, counting one
	// line read per miss and one line write per write-back, in the units
	// of the configured per-line access costs.
	PCMEnergy float64
}

// A Simulation owns a cache, the clock that drives it, and the recording and
// monitoring services of one run. Create simulations with a Builder.
type Simulation struct {
	id string

	clock *cache.CycleClock
	cache *cache.Comp

	dataRecorder datarecording.DataRecorder
	runRecorder  *datarecording.RunRecorder
	monitor      *monitoring.Monitor

	snapshotInterval uint64
	pcmReadCost      float64
	pcmWriteCost     float64
}

// ID returns the unique identifier of this run.
func (s *Simulation) ID() string {
	return s.id
}

// GetCache returns the cache under simulation.
func (s *Simulation) GetCache() *cache.Comp {
	return s.cache
}

// GetMonitor returns the monitor used in the simulation, or nil when
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetDataRecorder returns the data recorder used in the simulation, or nil
// when recording is disabled.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Run replays every access from the reader in order. When the trace ends,
// the cache is drained so that deferred write-backs show up in the result.
func (s *Simulation) Run(reader *trace.Reader) (Result, error) {
	var bar *monitoring.ProgressBar
	if s.monitor != nil {
		bar = s.monitor.CreateProgressBar("Replaying "+s.cache.Name(), 0)
	}

	if s.runRecorder != nil {
		s.runRecorder.Start()
		s.recordParameters()
	}

	result := Result{}

	for {
		access, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("trace replay stopped: %w", err)
		}

		s.step(access)
		result.Accesses++

		if bar != nil {
			bar.IncrementFinished(1)
		}

		if s.monitor != nil {
			s.monitor.RecordStats(s.cache, s.clock.Now())
		}

		if s.snapshotInterval > 0 && s.dataRecorder != nil &&
			result.Accesses%s.snapshotInterval == 0 {
			s.recordSnapshot()
		}
	}

	s.cache.Flush()

	result.Cycles = uint64(s.clock.Now())
	result.Stats = s.cache.Stats()
	result.PCMEnergy = s.pcmReadCost*float64(result.Stats.Misses) +
		s.pcmWriteCost*float64(result.Stats.WriteBacks)

	if s.dataRecorder != nil {
		s.recordSnapshot()
	}

	if s.runRecorder != nil {
		s.recordResult(result)
		s.runRecorder.End()
	}

	if s.monitor != nil {
		s.monitor.RecordStats(s.cache, s.clock.Now())
		s.monitor.CompleteProgressBar(bar)
	}

	return result, nil
}

func (s *Simulation) step(access trace.Access) {
	s.clock.AdvanceTo(replacement.Tick(access.Cycle))

	if access.IsWrite {
		s.cache.Write(access.Addr, access.Size)
	} else {
		s.cache.Read(access.Addr, access.Size)
	}
}

func (s *Simulation) recordSnapshot() {
	stats := s.cache.Stats()

	s.dataRecorder.InsertData(datarecording.SnapshotTable,
		datarecording.StatsSnapshot{
			Cycle:      uint64(s.clock.Now()),
			Cache:      s.cache.Name(),
			Reads:      stats.Reads,
			Writes:     stats.Writes,
			Hits:       stats.Hits,
			Misses:     stats.Misses,
			Evictions:  stats.Evictions,
			WriteBacks: stats.WriteBacks,
		})
}

func (s *Simulation) recordParameters() {
	s.runRecorder.AddProperty("Cache", s.cache.Name())
	s.runRecorder.AddProperty("Sets", strconv.Itoa(s.cache.NumSets()))
	s.runRecorder.AddProperty("Ways", strconv.Itoa(s.cache.NumWays()))
	s.runRecorder.AddProperty("Block Size",
		strconv.Itoa(int(s.cache.BlockSize())))
	s.runRecorder.AddProperty("PCM Read Cost",
		strconv.FormatFloat(s.pcmReadCost, 'f', -1, 64))
	s.runRecorder.AddProperty("PCM Write Cost",
		strconv.FormatFloat(s.pcmWriteCost, 'f', -1, 64))
}

func (s *Simulation) recordResult(result Result) {
	s.runRecorder.AddProperty("Accesses",
		strconv.FormatUint(result.Accesses, 10))
	s.runRecorder.AddProperty("Cycles",
		strconv.FormatUint(result.Cycles, 10))
	s.runRecorder.AddProperty("Hits",
		strconv.FormatUint(result.Stats.Hits, 10))
	s.runRecorder.AddProperty("Misses",
		strconv.FormatUint(result.Stats.Misses, 10))
	s.runRecorder.AddProperty("Evictions",
		strconv.FormatUint(result.Stats.Evictions, 10))
	s.runRecorder.AddProperty("Write Backs",
		strconv.FormatUint(result.Stats.WriteBacks, 10))
	s.runRecorder.AddProperty("PCM Energy",
		strconv.FormatFloat(result.PCMEnergy, 'f', -1, 64))
}

// Terminate releases the resources of the simulation.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}
