package kernel

// resolvePendencies is the pendency sweep: scan every
// BLOCKED descriptor and unblock those whose gate condition is
// satisfied. Runs once per interrupt, after the IRQ handler and before
// scheduling, and must be idempotent — re-running it against a
// descriptor that is already READY (or whose condition is not yet
// satisfied) changes nothing.
func (k *Kernel) resolvePendencies() {
	for _, d := range k.table.Blocked() {
		switch d.BlockReason {
		case BlockIORead:
			if k.console.ReadReady(d.PID) {
				d.CPUState.A = k.console.ReadData(d.PID)
				k.unblock(d)
			}

		case BlockIOWrite:
			if k.console.WriteReady(d.PID) {
				k.console.WriteData(d.PID, d.CPUState.X)
				d.CPUState.A = 0
				k.unblock(d)
			}

		case BlockWaitProc:
			if k.table.Lookup(d.WaitTarget) == nil {
				d.WaitTarget = NoPID
				k.unblock(d)
			}
		}
	}
}

func (k *Kernel) unblock(d *Descriptor) {
	d.BlockReason = BlockNone
	d.State = StateReady
}
