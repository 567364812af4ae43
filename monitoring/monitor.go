// Package monitoring provides a web server that reports the status of
// running cache simulations.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/xid"
	"github.com/sarchlab/pcmcache/cache"
	"github.com/sarchlab/pcmcache/replacement"
	"github.com/shirou/gopsutil/process"
)

// A CacheStatus is a point-in-time view of one registered cache.
type CacheStatus struct {
	Name       string  `json:"name"`
	NumSets    int     `json:"num_sets"`
	NumWays    int     `json:"num_ways"`
	BlockSize  uint32  `json:"block_size"`
	Cycle      uint64  `json:"cycle"`
	Reads      uint64  `json:"reads"`
	Writes     uint64  `json:"writes"`
	Hits       uint64  `json:"hits"`
	Misses     uint64  `json:"misses"`
	Evictions  uint64  `json:"evictions"`
	WriteBacks uint64  `json:"write_backs"`
	HitRate    float64 `json:"hit_rate"`
}

// Monitor can turn a simulation into a server and allows external monitoring
// of the simulation. Caches are not safe for concurrent use, so the monitor
// never reads a cache from a request handler. The goroutine that drives the
// cache pushes snapshots with RecordStats, and handlers serve the latest
// snapshot.
type Monitor struct {
	portNumber int
	registry   *prometheus.Registry

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	cachesLock sync.Mutex
	cacheNames []string
	statuses   map[string]CacheStatus
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		registry: prometheus.NewRegistry(),
		statuses: make(map[string]CacheStatus),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterCache registers a cache to be monitored. Registration attaches a
// hook that exports the cache activity as Prometheus counters on the
// /metrics endpoint.
func (m *Monitor) RegisterCache(c *cache.Comp) {
	m.cachesLock.Lock()
	defer m.cachesLock.Unlock()

	if _, ok := m.statuses[c.Name()]; ok {
		panic("monitoring: cache " + c.Name() + " is already registered")
	}

	m.cacheNames = append(m.cacheNames, c.Name())
	m.statuses[c.Name()] = statusOf(c, 0)

	c.AcceptHook(NewCollector(m.registry, c.Name()))
}

// RecordStats takes a snapshot of the counters of a registered cache. Call
// it from the goroutine that drives the cache.
func (m *Monitor) RecordStats(c *cache.Comp, now replacement.Tick) {
	status := statusOf(c, now)

	m.cachesLock.Lock()
	defer m.cachesLock.Unlock()

	if _, ok := m.statuses[c.Name()]; !ok {
		panic("monitoring: cache " + c.Name() + " is not registered")
	}

	m.statuses[c.Name()] = status
}

func statusOf(c *cache.Comp, now replacement.Tick) CacheStatus {
	stats := c.Stats()

	status := CacheStatus{
		Name:       c.Name(),
		NumSets:    c.NumSets(),
		NumWays:    c.NumWays(),
		BlockSize:  c.BlockSize(),
		Cycle:      uint64(now),
		Reads:      stats.Reads,
		Writes:     stats.Writes,
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Evictions:  stats.Evictions,
		WriteBacks: stats.WriteBacks,
	}

	if accesses := stats.Hits + stats.Misses; accesses > 0 {
		status.HitRate = float64(stats.Hits) / float64(accesses)
	}

	return status
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars)-1)
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// StartServer starts the monitor as a web server with a custom port if
// wanted.
func (m *Monitor) StartServer() {
	r := m.createRouter()
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	fmt.Fprintf(
		os.Stderr,
		"Monitoring simulation with http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor) createRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/caches", m.listCaches)
	r.HandleFunc("/api/cache/{name}", m.cacheStatus)
	r.HandleFunc("/api/resource", m.listResources)
	r.Handle("/metrics",
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	return r
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bytes, err := json.Marshal(m.progressBars)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listCaches(w http.ResponseWriter, _ *http.Request) {
	m.cachesLock.Lock()
	defer m.cachesLock.Unlock()

	fmt.Fprint(w, "[")
	for i, name := range m.cacheNames {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "\"%s\"", name)
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) cacheStatus(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	m.cachesLock.Lock()
	status, found := m.statuses[name]
	m.cachesLock.Unlock()

	if !found {
		w.WriteHeader(404)
		return
	}

	bytes, err := json.Marshal(status)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
