// Package clock implements the simulated clock/timer device: a
// programmable instruction countdown that raises IRQ_CLOCK on expiry,
// using the same register 2 (program interval) / register 3
// (acknowledge) convention a real channel-attached timer would expose,
// reduced to the single countdown the kernel needs.
package clock

import "github.com/osalumni/ventoux/vm/cpuevent"

// Clock is the countdown timer device. Register 2 programs the
// interval (rel_escr(2, N)); register 3 clears the pending flag
// (rel_escr(3, 0)).
type Clock struct {
	events  *cpuevent.List
	pending bool
	onFire  func()
}

// New returns a clock bound to the instruction-count event list. onFire
// is invoked when the countdown reaches zero; the kernel wires it to
// raise IRQ_CLOCK.
func New(events *cpuevent.List, onFire func()) *Clock {
	return &Clock{events: events, onFire: onFire}
}

// Program arms the countdown to fire after n simulated instructions.
func (c *Clock) Program(n int) {
	c.events.Add(n, func() {
		c.pending = true
		c.onFire()
	})
}

// Acknowledge clears the pending interrupt flag. Called by the kernel's
// CLOCK irq handler before re-arming the countdown.
func (c *Clock) Acknowledge() {
	c.pending = false
}

// Pending reports whether the countdown has fired and not yet been
// acknowledged.
func (c *Clock) Pending() bool {
	return c.pending
}
