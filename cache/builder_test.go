package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/pcmcache/replacement"
)

var _ = Describe("Builder", func() {
	var (
		mockCtrl *gomock.Controller
		clock    *MockClock
		policy   *replacement.EnergyAware
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		clock = NewMockClock(mockCtrl)
		policy = replacement.MakeBuilder().Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should build a cache with the requested geometry", func() {
		c := MakeBuilder().
			WithByteSize(16 * 1024).
			WithWayAssociativity(8).
			WithBlockSize(64).
			WithPolicy(policy).
			WithClock(clock).
			Build("L2")

		Expect(c.Name()).To(Equal("L2"))
		Expect(c.NumSets()).To(Equal(32))
		Expect(c.NumWays()).To(Equal(8))
		Expect(c.BlockSize()).To(Equal(uint32(64)))
	})

	It("should require a policy", func() {
		Expect(func() {
			MakeBuilder().WithClock(clock).Build("Bad")
		}).To(Panic())
	})

	It("should require a clock", func() {
		Expect(func() {
			MakeBuilder().WithPolicy(policy).Build("Bad")
		}).To(Panic())
	})

	It("should reject sizes that leave partial sets", func() {
		Expect(func() {
			MakeBuilder().
				WithByteSize(1000).
				WithPolicy(policy).
				WithClock(clock).
				Build("Bad")
		}).To(Panic())
	})

	It("should reject zero ways", func() {
		Expect(func() {
			MakeBuilder().
				WithWayAssociativity(0).
				WithPolicy(policy).
				WithClock(clock).
				Build("Bad")
		}).To(Panic())
	})

	It("should reject a policy built for another block size", func() {
		small := replacement.MakeBuilder().WithBlockSize(32).Build()

		Expect(func() {
			MakeBuilder().
				WithPolicy(small).
				WithClock(clock).
				Build("Bad")
		}).To(Panic())
	})
})
