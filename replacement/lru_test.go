package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LRU", func() {
	var (
		policy  *LRU
		a, b, c *LineState
	)

	BeforeEach(func() {
		policy = NewLRU(4, 4, 64)
		a = policy.Instantiate()
		b = policy.Instantiate()
		c = policy.Instantiate()
	})

	It("should reject bad construction parameters", func() {
		Expect(func() { NewLRU(0, 4, 64) }).To(Panic())
		Expect(func() { NewLRU(4, 32, 64) }).To(Panic())
		Expect(func() { NewLRU(4, 4, 0) }).To(Panic())
	})

	It("should maintain the same bookkeeping as other policies", func() {
		policy.Reset(a, 100)

		Expect(a.LastTouch).To(Equal(Tick(100)))
		Expect(a.AccessFreq.Read()).To(Equal(uint32(1)))
		Expect(a.BytesUsed).To(Equal(uint32(64)))
		Expect(a.PredictedReuse).To(Equal(uint32(1)))

		policy.Touch(a, 200)
		policy.UpdateWriteStats(a, 200)
		policy.SetDirtyStatus(a, 200, true)

		Expect(a.LastTouch).To(Equal(Tick(200)))
		Expect(a.AccessFreq.Read()).To(Equal(uint32(2)))
		Expect(a.WriteCount.Read()).To(Equal(uint32(1)))
		Expect(a.Dirty).To(BeTrue())

		policy.Invalidate(a)

		Expect(a.LastTouch).To(Equal(Tick(0)))
		Expect(a.Dirty).To(BeFalse())
	})

	It("should not maintain a cost", func() {
		policy.Reset(a, 100)
		policy.Touch(a, 200)
		policy.UpdateWriteStats(a, 200)
		policy.SetDirtyStatus(a, 200, true)

		Expect(a.CachedCost).To(Equal(0.0))
	})

	It("should evict the least recently used line", func() {
		policy.Reset(a, 100)
		policy.Reset(b, 100)
		policy.Reset(c, 100)
		policy.Touch(a, 300)
		policy.Touch(b, 200)

		victim := policy.FindVictim([]*LineState{a, b, c}, 400)

		Expect(victim).To(BeIdenticalTo(c))
	})

	It("should break ties in favor of the earliest candidate", func() {
		policy.Reset(a, 100)
		policy.Reset(b, 100)
		policy.Reset(c, 100)

		victim := policy.FindVictim([]*LineState{b, a, c}, 400)

		Expect(victim).To(BeIdenticalTo(b))
	})

	It("should panic without candidates", func() {
		Expect(func() {
			policy.FindVictim([]*LineState{}, 400)
		}).To(Panic())
	})
})
