package clock

import (
	"testing"

	"github.com/osalumni/ventoux/vm/cpuevent"
)

func TestProgramFiresAfterInterval(t *testing.T) {
	events := &cpuevent.List{}
	fired := 0
	c := New(events, func() { fired++ })

	c.Program(5)
	if c.Pending() {
		t.Fatal("should not be pending before the interval elapses")
	}

	events.Advance(4)
	if fired != 0 {
		t.Fatalf("fired = %d before interval elapsed", fired)
	}
	events.Advance(1)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if !c.Pending() {
		t.Fatal("should be pending once the countdown has fired")
	}
}

func TestAcknowledgeClearsPending(t *testing.T) {
	events := &cpuevent.List{}
	c := New(events, func() {})
	c.Program(1)
	events.Advance(1)
	if !c.Pending() {
		t.Fatal("expected pending after fire")
	}
	c.Acknowledge()
	if c.Pending() {
		t.Fatal("expected not pending after Acknowledge")
	}
}
