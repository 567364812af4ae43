package replacement

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Builder", func() {
	It("should build with defaults", func() {
		policy := MakeBuilder().Build()

		Expect(policy.BlockSize()).To(Equal(uint32(64)))
	})

	It("should apply every parameter", func() {
		policy := MakeBuilder().
			WithFrequencyBits(3).
			WithWriteBits(5).
			WithRecencyWeight(0.5).
			WithFrequencyWeight(0.1).
			WithWriteWeight(0.1).
			WithDirtyWeight(0.1).
			WithUtilizationWeight(0.2).
			WithPCMReadCost(2).
			WithPCMWriteCost(8).
			WithBlockSize(128).
			Build()

		line := policy.Instantiate()
		Expect(line.AccessFreq.Max()).To(Equal(uint32(7)))
		Expect(line.WriteCount.Max()).To(Equal(uint32(31)))
		Expect(policy.BlockSize()).To(Equal(uint32(128)))

		policy.Reset(line, 0)
		Expect(line.BytesUsed).To(Equal(uint32(128)))
	})

	It("should reject zero frequency bits", func() {
		Expect(func() {
			MakeBuilder().WithFrequencyBits(0).Build()
		}).To(Panic())
	})

	It("should reject oversized write bits", func() {
		Expect(func() {
			MakeBuilder().WithWriteBits(32).Build()
		}).To(Panic())
	})

	It("should reject a zero block size", func() {
		Expect(func() {
			MakeBuilder().WithBlockSize(0).Build()
		}).To(Panic())
	})

	It("should reject negative weights", func() {
		Expect(func() {
			MakeBuilder().WithDirtyWeight(-0.2).Build()
		}).To(Panic())
	})

	It("should reject non-finite weights", func() {
		Expect(func() {
			MakeBuilder().WithRecencyWeight(math.NaN()).Build()
		}).To(Panic())

		Expect(func() {
			MakeBuilder().WithUtilizationWeight(math.Inf(1)).Build()
		}).To(Panic())
	})

	It("should reject negative memory costs", func() {
		Expect(func() {
			MakeBuilder().WithPCMWriteCost(-1).Build()
		}).To(Panic())
	})
})
