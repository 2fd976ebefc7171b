package kernel

// schedule implements round-robin scheduling with a fixed quantum.
// Must run after the pendency sweep and before the context restore,
// per the interrupt dispatcher's strict per-interrupt sequence.
func (k *Kernel) schedule() {
	cur := k.running

	switch {
	case cur == nil:
		// Killed, or boot: select the first READY descriptor, if any.
		k.setRunning(k.table.NextReady())

	case cur.State == StateReady || cur.State == StateBlocked:
		// Preempted (quantum exhausted) or blocked on this very
		// interrupt: defer it to the tail of the table before picking
		// the next READY descriptor. This is what gives FIFO fairness
		// among ready processes.
		k.table.RotateToTail(cur.PID)
		k.setRunning(k.table.NextReady())

	default:
		// cur.State == StateRunning: nothing changed it this
		// interrupt, so it keeps the CPU.
	}
}

// setRunning marks d RUNNING and records it as the kernel's current
// process. A nil d means no process is runnable; the interrupt
// dispatcher's restore step will then halt the CPU.
func (k *Kernel) setRunning(d *Descriptor) {
	if d == nil {
		k.running = nil
		k.runningPID = NoPID
		return
	}
	d.State = StateRunning
	k.running = d
	k.runningPID = d.PID
}
