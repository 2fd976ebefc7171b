package kernel

import (
	"testing"

	"github.com/osalumni/ventoux/vm/console"
)

func TestResolvePendenciesUnblocksReadyRead(t *testing.T) {
	k := newTestKernel()
	k.console = console.New(2)
	d := k.table.Add("a", 5)
	d.State = StateBlocked
	d.BlockReason = BlockIORead

	k.console.Deliver(d.PID, 'x')
	k.resolvePendencies()

	if d.State != StateReady {
		t.Fatalf("State = %v, want READY", d.State)
	}
	if d.CPUState.A != uint32('x') {
		t.Fatalf("A = %d, want 'x'", d.CPUState.A)
	}
}

func TestResolvePendenciesLeavesReadBlockedWithoutInput(t *testing.T) {
	k := newTestKernel()
	k.console = console.New(2)
	d := k.table.Add("a", 5)
	d.State = StateBlocked
	d.BlockReason = BlockIORead

	k.resolvePendencies()

	if d.State != StateBlocked {
		t.Fatalf("State = %v, want BLOCKED", d.State)
	}
}

func TestResolvePendenciesUnblocksWrite(t *testing.T) {
	k := newTestKernel()
	k.console = console.New(2)
	d := k.table.Add("a", 5)
	d.State = StateBlocked
	d.BlockReason = BlockIOWrite
	d.CPUState.X = 'y'

	k.resolvePendencies()

	if d.State != StateReady {
		t.Fatalf("State = %v, want READY", d.State)
	}
	if d.CPUState.A != 0 {
		t.Fatalf("A = %d, want 0 (success)", d.CPUState.A)
	}
}

func TestResolvePendenciesUnblocksWaiterWhenTargetGone(t *testing.T) {
	k := newTestKernel()
	k.console = console.New(1)
	child := k.table.Add("child", 5)
	waiter := k.table.Add("waiter", 5)
	waiter.State = StateBlocked
	waiter.BlockReason = BlockWaitProc
	waiter.WaitTarget = child.PID

	k.table.Remove(child.PID)
	k.resolvePendencies()

	if waiter.State != StateReady {
		t.Fatalf("State = %v, want READY", waiter.State)
	}
	if waiter.WaitTarget != NoPID {
		t.Fatalf("WaitTarget = %d, want NoPID", waiter.WaitTarget)
	}
}

func TestResolvePendenciesLeavesWaiterBlockedWhileTargetAlive(t *testing.T) {
	k := newTestKernel()
	k.console = console.New(1)
	child := k.table.Add("child", 5)
	waiter := k.table.Add("waiter", 5)
	waiter.State = StateBlocked
	waiter.BlockReason = BlockWaitProc
	waiter.WaitTarget = child.PID

	k.resolvePendencies()

	if waiter.State != StateBlocked {
		t.Fatalf("State = %v, want BLOCKED while target is alive", waiter.State)
	}
}

func TestResolvePendenciesIsIdempotent(t *testing.T) {
	k := newTestKernel()
	k.console = console.New(1)
	d := k.table.Add("a", 5)
	d.State = StateBlocked
	d.BlockReason = BlockIORead
	k.console.Deliver(d.PID, 'x')

	k.resolvePendencies()
	k.resolvePendencies()

	if d.State != StateReady {
		t.Fatalf("State = %v, want READY after repeated sweeps", d.State)
	}
}
