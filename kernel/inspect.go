package kernel

import "github.com/osalumni/ventoux/vm/cpu"

// ProcessInfo is a read-only snapshot of one descriptor, returned to
// operator-facing callers (the `ps` REPL command) so they never
// hold a live *Descriptor across a kernel mutation.
type ProcessInfo struct {
	PID              int
	Name             string
	State            string
	BlockReason      BlockReason
	WaitTarget       int
	QuantumRemaining int
}

// Snapshot returns the process table in table order.
func (k *Kernel) Snapshot() []ProcessInfo {
	procs := k.table.All()
	out := make([]ProcessInfo, len(procs))
	for i, d := range procs {
		out[i] = ProcessInfo{
			PID:              d.PID,
			Name:             d.Name,
			State:            d.State.String(),
			BlockReason:      d.BlockReason,
			WaitTarget:       d.WaitTarget,
			QuantumRemaining: d.QuantumRemaining,
		}
	}
	return out
}

// KillPID forcibly removes a process from the table — the operator
// console's `kill` command, distinct from the SO_MATA_PROC syscall path
// a process takes to kill itself. Reports whether a process with that
// PID existed.
func (k *Kernel) KillPID(pid int) bool {
	if k.runningPID == pid {
		k.running = nil
		k.runningPID = NoPID
	}
	return k.table.Remove(pid)
}

// SetQuantum changes the quantum newly scheduled/preempted processes
// are given. Existing QuantumRemaining values are left alone; they
// converge to the new value the next time each process is preempted.
func (k *Kernel) SetQuantum(n int) {
	if n > 0 {
		k.quantumInitial = n
	}
}

// Quantum returns the current default quantum.
func (k *Kernel) Quantum() int {
	return k.quantumInitial
}

// SpawnDirect creates and loads a process outside of SO_CRIA_PROC —
// the operator console's `load` command, which has no caller process
// to charge the new PID to. Mirrors callSpawn's load/install sequence.
func (k *Kernel) SpawnDirect(name string) (pid int, err error) {
	d := k.table.Add(name, k.quantumInitial)
	entry, err := k.loadProgram(name, d)
	if err != nil {
		k.table.Remove(d.PID)
		return 0, err
	}
	d.CPUState.PC = entry
	d.CPUState.Modo = uint32(cpu.ModeUser)
	return d.PID, nil
}
