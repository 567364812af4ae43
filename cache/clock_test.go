package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pcmcache/replacement"
)

var _ = Describe("CycleClock", func() {
	var clock *CycleClock

	BeforeEach(func() {
		clock = NewCycleClock()
	})

	It("should start at cycle 0", func() {
		Expect(clock.Now()).To(Equal(replacement.Tick(0)))
	})

	It("should advance to a later cycle", func() {
		clock.AdvanceTo(10)
		clock.AdvanceTo(25)

		Expect(clock.Now()).To(Equal(replacement.Tick(25)))
	})

	It("should allow advancing to the current cycle", func() {
		clock.AdvanceTo(10)
		clock.AdvanceTo(10)

		Expect(clock.Now()).To(Equal(replacement.Tick(10)))
	})

	It("should refuse to move backward", func() {
		clock.AdvanceTo(10)

		Expect(func() { clock.AdvanceTo(9) }).To(Panic())
	})
})
