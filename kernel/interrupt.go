package kernel

import "github.com/osalumni/ventoux/vm/cpu"

// Dispatch is the kernel's single entry point, called by the CPU on
// every IRQ with the IRQ kind as its argument; the interrupt frame's A
// slot holds the interrupted process's A (the syscall id for IRQSysCall). It
// runs a strict five-step sequence: save, handle, resolve pendencies,
// schedule, restore. Returns true if the CPU should keep running,
// false to halt.
func (k *Kernel) Dispatch(irq int) bool {
	k.running = k.table.Lookup(k.runningPID)

	k.saveContext()
	k.handleIRQ(irq)
	k.resolvePendencies()
	k.schedule()
	k.restoreContext()

	return k.running != nil
}

// handleIRQ dispatches to the handler for one kind of interrupt.
func (k *Kernel) handleIRQ(irq int) {
	switch irq {
	case cpu.IRQReset:
		k.handleReset()
	case cpu.IRQCPUErr:
		k.handleCPUErr()
	case cpu.IRQSysCall:
		k.dispatchSyscall()
	case cpu.IRQClock:
		k.handleClock()
	default:
		k.log.Warn("unknown interrupt", "irq", irq)
	}
}

// handleCPUErr implements the CPU_ERR handler: if the running
// descriptor's saved error is non-OK, kill it; otherwise this is just a
// halt report and there is nothing further to do (the scheduler step
// will halt on its own if nothing is left runnable).
func (k *Kernel) handleCPUErr() {
	if k.running == nil {
		return
	}
	if k.running.CPUState.Erro != cpu.ErrOK {
		k.killProcess(k.running.PID)
	}
}

// handleClock implements the CLOCK handler: acknowledge the timer,
// re-arm it, and decrement the running descriptor's quantum. On
// exhaustion the process is preempted back to READY with a fresh
// quantum; the scheduler step then rotates it to the tail.
func (k *Kernel) handleClock() {
	if k.clock != nil {
		k.clock.Acknowledge()
		k.clock.Program(k.clockInterval)
	}
	if k.running == nil {
		return
	}
	k.running.QuantumRemaining--
	if k.running.QuantumRemaining <= 0 {
		k.running.State = StateReady
		k.running.QuantumRemaining = k.quantumInitial
	}
}
