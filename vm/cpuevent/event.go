// Package cpuevent implements a pending-event list ordered by relative
// delay, advanced one simulated instruction at a time. It schedules the
// clock device's next tick.
// Events are kept in a singly linked list in relative-delta order so
// that Advance only ever touches the head; callbacks are plain
// closures rather than per-device completion routines.
package cpuevent

// Callback runs when an event's delay has elapsed.
type Callback func()

type event struct {
	delta int // cycles remaining relative to the previous event
	cb    Callback
	next  *event
}

// List is an ordered queue of pending events.
type List struct {
	head *event
}

// Add schedules cb to run after 'cycles' calls to Advance (summed).
// A delay of 0 runs the callback immediately.
func (l *List) Add(cycles int, cb Callback) {
	if cycles <= 0 {
		cb()
		return
	}

	ev := &event{delta: cycles, cb: cb}

	cur := l.head
	var prev *event
	for cur != nil {
		if ev.delta <= cur.delta {
			cur.delta -= ev.delta
			break
		}
		ev.delta -= cur.delta
		prev = cur
		cur = cur.next
	}
	ev.next = cur
	if prev == nil {
		l.head = ev
	} else {
		prev.next = ev
	}
}

// Pending reports whether any event is still queued.
func (l *List) Pending() bool {
	return l.head != nil
}

// Advance moves simulated time forward by t cycles, firing every event
// whose delay has elapsed. Fired events are removed before their
// callback runs so that a callback which re-schedules itself does not
// observe stale list state.
func (l *List) Advance(t int) {
	if l.head == nil {
		return
	}
	l.head.delta -= t
	for l.head != nil && l.head.delta <= 0 {
		ev := l.head
		l.head = ev.next
		ev.cb()
	}
}
