package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pcmcache/cache"
	"github.com/sarchlab/pcmcache/replacement"
)

type stubClock struct {
	now replacement.Tick
}

func (c *stubClock) Now() replacement.Tick {
	return c.now
}

func newSampleCache(clock cache.Clock) *cache.Comp {
	policy := replacement.MakeBuilder().
		WithBlockSize(64).
		Build()

	return cache.MakeBuilder().
		WithByteSize(1024).
		WithWayAssociativity(2).
		WithBlockSize(64).
		WithPolicy(policy).
		WithClock(clock).
		Build("Cache")
}

var _ = Describe("Monitor", func() {
	var (
		m     *Monitor
		clock *stubClock
		c     *cache.Comp
	)

	BeforeEach(func() {
		m = NewMonitor()
		clock = &stubClock{now: 1}
		c = newSampleCache(clock)
	})

	serve := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		m.createRouter().ServeHTTP(w, req)

		return w
	}

	It("should use a random port when the requested one is privileged", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(Equal(0))
	})

	It("should keep a legal port number", func() {
		m.WithPortNumber(8080)

		Expect(m.portNumber).To(Equal(8080))
	})

	It("should register caches", func() {
		m.RegisterCache(c)

		Expect(m.cacheNames).To(Equal([]string{"Cache"}))
		Expect(m.statuses).To(HaveKey("Cache"))
	})

	It("should refuse to register the same cache twice", func() {
		m.RegisterCache(c)

		Expect(func() { m.RegisterCache(c) }).To(Panic())
	})

	It("should refuse to record stats for an unknown cache", func() {
		Expect(func() { m.RecordStats(c, 1) }).To(Panic())
	})

	It("should list registered caches", func() {
		m.RegisterCache(c)

		w := serve("/api/caches")

		Expect(w.Code).To(Equal(200))
		Expect(w.Body.String()).To(Equal(`["Cache"]`))
	})

	It("should serve the latest cache snapshot", func() {
		m.RegisterCache(c)

		c.Read(0x0, 4)
		clock.now = 2
		c.Read(0x0, 4)
		clock.now = 3
		c.Write(0x40, 8)
		m.RecordStats(c, clock.now)

		w := serve("/api/cache/Cache")
		Expect(w.Code).To(Equal(200))

		status := CacheStatus{}
		Expect(json.Unmarshal(w.Body.Bytes(), &status)).To(Succeed())
		Expect(status.Name).To(Equal("Cache"))
		Expect(status.NumSets).To(Equal(8))
		Expect(status.NumWays).To(Equal(2))
		Expect(status.Cycle).To(Equal(uint64(3)))
		Expect(status.Reads).To(Equal(uint64(2)))
		Expect(status.Writes).To(Equal(uint64(1)))
		Expect(status.Hits).To(Equal(uint64(1)))
		Expect(status.Misses).To(Equal(uint64(2)))
		Expect(status.HitRate).To(BeNumerically("~", 1.0/3.0, 1e-9))
	})

	It("should respond 404 for an unknown cache", func() {
		m.RegisterCache(c)

		w := serve("/api/cache/NoSuchCache")

		Expect(w.Code).To(Equal(404))
	})

	It("should serve progress bars", func() {
		bar := m.CreateProgressBar("Replaying trace", 100)
		bar.IncrementFinished(42)

		w := serve("/api/progress")
		Expect(w.Code).To(Equal(200))

		bars := []ProgressBar{}
		Expect(json.Unmarshal(w.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("Replaying trace"))
		Expect(bars[0].Total).To(Equal(uint64(100)))
		Expect(bars[0].Finished).To(Equal(uint64(42)))
	})

	It("should drop completed progress bars", func() {
		bar := m.CreateProgressBar("Replaying trace", 100)
		m.CompleteProgressBar(bar)

		Expect(m.progressBars).To(BeEmpty())
	})

	It("should export cache activity on the metrics endpoint", func() {
		m.RegisterCache(c)

		c.Read(0x0, 4)
		c.Read(0x0, 4)
		c.Write(0x0, 4)

		w := serve("/metrics")

		Expect(w.Code).To(Equal(200))
		Expect(w.Body.String()).To(
			ContainSubstring(`pcmcache_fills_total{cache="Cache"} 1`))
		Expect(w.Body.String()).To(
			ContainSubstring(`pcmcache_hits_total{cache="Cache"} 2`))
	})
})
