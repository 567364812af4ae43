// Package satcounter provides saturating counters for replacement metadata.
package satcounter

import "fmt"

// A Counter is an unsigned counter that saturates at 2^bits - 1 instead of
// wrapping around. Counters are small value types and are meant to be
// embedded directly in metadata records. The zero value saturates at zero
// and is therefore useless; create counters with New.
type Counter struct {
	count uint32
	max   uint32
}

// New creates a Counter with the given bit width. The counter starts at zero
// and saturates at 2^bits - 1. New panics if bits is 0 or larger than 31.
func New(bits uint) Counter {
	if bits == 0 || bits > 31 {
		panic(fmt.Sprintf(
			"satcounter: bit width must be in [1, 31], got %d", bits))
	}

	return Counter{max: 1<<bits - 1}
}

// Increment adds one to the counter. It does nothing when the counter is
// already at its maximum value.
func (c *Counter) Increment() {
	if c.count < c.max {
		c.count++
	}
}

// Decrement subtracts one from the counter. It does nothing when the counter
// is at zero.
func (c *Counter) Decrement() {
	if c.count > 0 {
		c.count--
	}
}

// Read returns the current count.
func (c Counter) Read() uint32 {
	return c.count
}

// Max returns the saturation bound, 2^bits - 1.
func (c Counter) Max() uint32 {
	return c.max
}

// Reset sets the count back to zero. The bit width is unchanged.
func (c *Counter) Reset() {
	c.count = 0
}
