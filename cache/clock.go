package cache

import "github.com/sarchlab/pcmcache/replacement"

// A CycleClock is a Clock advanced explicitly by whoever drives the cache,
// typically a trace replayer. The zero value starts at cycle 0.
type CycleClock struct {
	now replacement.Tick
}

// NewCycleClock creates a CycleClock at cycle 0.
func NewCycleClock() *CycleClock {
	return &CycleClock{}
}

// Now returns the current cycle.
func (c *CycleClock) Now() replacement.Tick {
	return c.now
}

// AdvanceTo moves the clock to the given cycle, which must not be in the
// past. Advancing to the current cycle is allowed.
func (c *CycleClock) AdvanceTo(cycle replacement.Tick) {
	if cycle < c.now {
		panic("cache: clock cannot move backward")
	}

	c.now = cycle
}
