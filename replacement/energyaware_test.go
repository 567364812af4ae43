package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EnergyAware", func() {
	var (
		policy *EnergyAware
		line   *LineState
	)

	BeforeEach(func() {
		policy = MakeBuilder().Build()
		line = policy.Instantiate()
	})

	It("should instantiate lines in the invalid state", func() {
		Expect(line.LastTouch).To(Equal(Tick(0)))
		Expect(line.AccessFreq.Read()).To(Equal(uint32(0)))
		Expect(line.AccessFreq.Max()).To(Equal(uint32(15)))
		Expect(line.WriteCount.Read()).To(Equal(uint32(0)))
		Expect(line.WriteCount.Max()).To(Equal(uint32(15)))
		Expect(line.BytesUsed).To(Equal(uint32(0)))
		Expect(line.Dirty).To(BeFalse())
		Expect(line.PredictedReuse).To(Equal(uint32(0)))
		Expect(line.CachedCost).To(Equal(0.0))
	})

	It("should initialize a line on fill", func() {
		policy.Reset(line, 100)

		Expect(line.LastTouch).To(Equal(Tick(100)))
		Expect(line.AccessFreq.Read()).To(Equal(uint32(1)))
		Expect(line.WriteCount.Read()).To(Equal(uint32(0)))
		Expect(line.BytesUsed).To(Equal(uint32(64)))
		Expect(line.Dirty).To(BeFalse())
		Expect(line.PredictedReuse).To(Equal(uint32(1)))
		Expect(line.CachedCost).To(BeNumerically("~", 0.2867, 1e-4))
	})

	It("should update recency and frequency on touch", func() {
		policy.Reset(line, 100)
		policy.Touch(line, 200)

		Expect(line.LastTouch).To(Equal(Tick(200)))
		Expect(line.AccessFreq.Read()).To(Equal(uint32(2)))
		Expect(line.CachedCost).To(BeNumerically("~", 0.3733, 1e-4))
	})

	It("should score staleness against the current time", func() {
		policy.Reset(line, 100)
		policy.Touch(line, 200)

		Expect(policy.Cost(line, 400)).To(BeNumerically("~", 0.5233, 1e-4))
	})

	It("should saturate the access counter", func() {
		policy.Reset(line, 100)
		for i := 0; i < 40; i++ {
			policy.Touch(line, Tick(100+i))
		}

		Expect(line.AccessFreq.Read()).To(Equal(uint32(15)))
	})

	It("should clear a line on invalidate", func() {
		policy.Reset(line, 100)
		policy.Touch(line, 200)
		policy.UpdateWriteStats(line, 200)
		policy.SetDirtyStatus(line, 200, true)

		policy.Invalidate(line)

		Expect(line.LastTouch).To(Equal(Tick(0)))
		Expect(line.AccessFreq.Read()).To(Equal(uint32(0)))
		Expect(line.WriteCount.Read()).To(Equal(uint32(0)))
		Expect(line.BytesUsed).To(Equal(uint32(0)))
		Expect(line.Dirty).To(BeFalse())
		Expect(line.PredictedReuse).To(Equal(uint32(0)))
		Expect(line.CachedCost).To(Equal(0.0))
	})

	It("should count writes and rescore", func() {
		policy.Reset(line, 100)
		policy.UpdateWriteStats(line, 100)

		Expect(line.WriteCount.Read()).To(Equal(uint32(1)))
		Expect(line.CachedCost).To(BeNumerically("~", 0.8, 1e-6))
	})

	It("should never report a negative cost", func() {
		policy.Reset(line, 100)
		policy.SetDirtyStatus(line, 100, true)

		Expect(line.Dirty).To(BeTrue())
		Expect(line.CachedCost).To(Equal(0.0))
	})

	It("should rescore when a line is cleaned", func() {
		policy.Reset(line, 100)
		policy.SetDirtyStatus(line, 100, true)
		policy.SetDirtyStatus(line, 100, false)

		Expect(line.Dirty).To(BeFalse())
		Expect(line.CachedCost).To(BeNumerically("~", 0.2867, 1e-4))
	})

	It("should keep the utilization mark monotonic", func() {
		policy.Reset(line, 100)
		Expect(line.BytesUsed).To(Equal(uint32(64)))

		policy.UpdateUtilization(line, 100, 8)

		Expect(line.BytesUsed).To(Equal(uint32(64)))
	})

	It("should raise the utilization mark after invalidation", func() {
		policy.Invalidate(line)

		policy.UpdateUtilization(line, 100, 24)
		Expect(line.BytesUsed).To(Equal(uint32(24)))

		policy.UpdateUtilization(line, 100, 8)
		Expect(line.BytesUsed).To(Equal(uint32(24)))
	})

	It("should not divide by zero at time zero", func() {
		cost := policy.Cost(line, 0)

		Expect(cost).To(BeNumerically("~", 0.3, 1e-6))
	})

	It("should score older lines higher", func() {
		policy.Reset(line, 100)

		costSoon := policy.Cost(line, 200)
		costLate := policy.Cost(line, 1000)

		Expect(costSoon).To(BeNumerically(">", line.CachedCost))
		Expect(costLate).To(BeNumerically(">", costSoon))
	})

	Context("when finding a victim", func() {
		var a, b, c *LineState

		BeforeEach(func() {
			a = policy.Instantiate()
			b = policy.Instantiate()
			c = policy.Instantiate()
			policy.Reset(a, 100)
			policy.Reset(b, 100)
			policy.Reset(c, 100)
		})

		It("should panic without candidates", func() {
			Expect(func() {
				policy.FindVictim(nil, 200)
			}).To(Panic())
		})

		It("should return a lone candidate", func() {
			victim := policy.FindVictim([]*LineState{a}, 200)

			Expect(victim).To(BeIdenticalTo(a))
		})

		It("should pick the costliest line", func() {
			policy.UpdateWriteStats(b, 100)
			policy.UpdateWriteStats(b, 100)

			victim := policy.FindVictim([]*LineState{a, b, c}, 200)

			Expect(victim).To(BeIdenticalTo(b))
		})

		It("should break ties in favor of the earliest candidate", func() {
			victim := policy.FindVictim([]*LineState{a, b, c}, 200)
			Expect(victim).To(BeIdenticalTo(a))

			victim = policy.FindVictim([]*LineState{c, b, a}, 200)
			Expect(victim).To(BeIdenticalTo(c))
		})

		It("should ignore stale cached costs", func() {
			a.CachedCost = 99.0
			policy.UpdateWriteStats(b, 100)
			policy.UpdateWriteStats(b, 100)

			victim := policy.FindVictim([]*LineState{a, b}, 100)

			Expect(victim).To(BeIdenticalTo(b))
			Expect(a.CachedCost).To(BeNumerically("~", 0.2867, 1e-4))
		})

		It("should refresh every candidate's cached cost", func() {
			policy.FindVictim([]*LineState{a, b, c}, 400)

			want := policy.Cost(a, 400)
			Expect(a.CachedCost).To(Equal(want))
			Expect(b.CachedCost).To(Equal(want))
			Expect(c.CachedCost).To(Equal(want))
		})
	})
})
