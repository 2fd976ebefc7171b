package kernel

import "github.com/osalumni/ventoux/vm/cpu"

// handleReset implements the reset handler's steady-state half: load the boot
// program (conventionally "init"), create its descriptor, set its
// entry point and mode, and arm the clock so preemption begins.
// Nothing is written at the ENTER_KERNEL/RETURN_FROM_INTERRUPT
// addresses: the CPU calls the kernel's entry function directly on
// every IRQ.
//
// If the boot program cannot be loaded, the descriptor created for it
// is removed again (its PID stays used) and the dispatcher's own
// scheduler step reports halt, since the table stays empty.
func (k *Kernel) handleReset() {
	d := k.table.Add(k.bootProgram, k.quantumInitial)

	entry, err := k.loadProgram(k.bootProgram, d)
	if err != nil {
		k.log.Error("failed to load boot program", "name", k.bootProgram, "error", err)
		k.table.Remove(d.PID)
		return
	}

	d.CPUState.PC = entry
	d.CPUState.Modo = uint32(cpu.ModeUser)

	if k.clock != nil {
		k.clock.Program(k.clockInterval)
	}
}
