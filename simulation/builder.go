package simulation

import (
	"math"

	"github.com/rs/xid"
	"github.com/sarchlab/pcmcache/cache"
	"github.com/sarchlab/pcmcache/datarecording"
	"github.com/sarchlab/pcmcache/monitoring"
)

// Builder can be used to build a simulation.
type Builder struct {
	cacheBuilder    cache.Builder
	cacheConfigured bool
	cacheName       string

	monitorOn   bool
	monitorPort int

	recordingOn    bool
	recorderConfig datarecording.RecorderConfig

	snapshotInterval uint64
	pcmReadCost      float64
	pcmWriteCost     float64
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		cacheName:        "Cache",
		monitorOn:        true,
		recordingOn:      true,
		snapshotInterval: 10000,
		pcmReadCost:      1.0,
		pcmWriteCost:     5.0,
	}
}

// WithCacheBuilder sets the cache to simulate. The clock on the given
// builder is ignored; the simulation supplies its own.
func (b Builder) WithCacheBuilder(cb cache.Builder) Builder {
	b.cacheBuilder = cb
	b.cacheConfigured = true
	return b
}

// WithCacheName sets the name of the simulated cache.
func (b Builder) WithCacheName(name string) Builder {
	b.cacheName = name
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithoutRecording sets the simulation to not record into a database.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithRecorderConfig sets the data recorder backend configuration.
func (b Builder) WithRecorderConfig(
	cfg datarecording.RecorderConfig,
) Builder {
	b.recorderConfig = cfg
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.recorderConfig.Path = filename
	return b
}

// WithSnapshotInterval sets how many accesses pass between two stats
// snapshots. Zero disables snapshots.
func (b Builder) WithSnapshotInterval(accesses uint64) Builder {
	b.snapshotInterval = accesses
	return b
}

// WithPCMReadCost sets the energy of reading one line from PCM.
func (b Builder) WithPCMReadCost(c float64) Builder {
	b.pcmReadCost = c
	return b
}

// WithPCMWriteCost sets the energy of writing one line to PCM.
func (b Builder) WithPCMWriteCost(c float64) Builder {
	b.pcmWriteCost = c
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.cacheConfigured {
		panic("a cache builder is required")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.recorderConfig != (datarecording.RecorderConfig{}) {
		panic("recorder cannot be configured when recording is disabled")
	}

	costs := map[string]float64{
		"pcm read cost":  b.pcmReadCost,
		"pcm write cost": b.pcmWriteCost,
	}
	for name, c := range costs {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			panic(name + " must be finite and non-negative")
		}
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		snapshotInterval: b.snapshotInterval,
		pcmReadCost:      b.pcmReadCost,
		pcmWriteCost:     b.pcmWriteCost,
	}

	s.id = xid.New().String()

	s.clock = cache.NewCycleClock()
	s.cache = b.cacheBuilder.
		WithClock(s.clock).
		Build(b.cacheName)

	if b.recordingOn {
		cfg := b.recorderConfig
		if (cfg.Type == "" || cfg.Type == "sqlite") && cfg.Path == "" {
			cfg.Path = "pcmcache_run_" + s.id
		}

		s.dataRecorder = datarecording.NewWithConfig(cfg)
		s.runRecorder = datarecording.NewRunRecorder(s.dataRecorder)
		s.dataRecorder.CreateTable(
			datarecording.SnapshotTable, datarecording.StatsSnapshot{})
		s.cache.AcceptHook(datarecording.NewEvictionLogger(s.dataRecorder))
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterCache(s.cache)
		s.monitor.StartServer()
	}

	return s
}
