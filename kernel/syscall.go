package kernel

import "github.com/osalumni/ventoux/vm/cpu"

// Syscall ids, decoded from the running descriptor's A register.
// Arguments are passed in X.
const (
	SOLe         = 1 // read
	SOEscr       = 2 // write
	SOCriaProc   = 3 // spawn
	SOMataProc   = 4 // exit
	SOEsperaProc = 5 // wait
)

// dispatchSyscall decodes and runs the syscall the running descriptor
// requested. Per the resolved convention for the source's read/A-vs-X
// inconsistency, the result of every syscall — success code, read
// word, spawned PID — always lands in A; X only ever carries an
// argument.
func (k *Kernel) dispatchSyscall() {
	d := k.running
	if d == nil {
		return
	}
	id := d.CPUState.A
	switch id {
	case SOLe:
		k.callRead(d)
	case SOEscr:
		k.callWrite(d)
	case SOCriaProc:
		k.callSpawn(d)
	case SOMataProc:
		k.callExit(d)
	case SOEsperaProc:
		k.callWait(d)
	default:
		// Invalid syscall id: kill the offending process, init
		// included. The machine halts only if the scheduler then finds
		// nothing READY.
		k.killProcess(d.PID)
	}
}

// callRead implements SO_LE: read one word from the caller's
// read-terminal (pid*4+0). If the read-ready register (pid*4+1) is
// zero, block; otherwise store the word in A immediately.
func (k *Kernel) callRead(d *Descriptor) {
	if !k.console.ReadReady(d.PID) {
		d.State = StateBlocked
		d.BlockReason = BlockIORead
		return
	}
	d.CPUState.A = k.console.ReadData(d.PID)
}

// callWrite implements SO_ESCR: write X to the caller's write-terminal
// (pid*4+2). If write-ready (pid*4+3) is zero, block; otherwise perform
// the write and report success (0) in A.
func (k *Kernel) callWrite(d *Descriptor) {
	if !k.console.WriteReady(d.PID) {
		d.State = StateBlocked
		d.BlockReason = BlockIOWrite
		return
	}
	k.console.WriteData(d.PID, d.CPUState.X)
	d.CPUState.A = 0
}

// callSpawn implements SO_CRIA_PROC: X holds a virtual address, in the
// caller's address space, of a NUL-terminated program name. On any
// failure A becomes -1 (encoded as all-ones, since CPUState.A is
// unsigned); on success A becomes the new PID.
func (k *Kernel) callSpawn(d *Descriptor) {
	name, err := k.mmu.ReadCString(d.PageTable, int(d.CPUState.X), maxProgramNameLen)
	if err != nil {
		d.CPUState.A = errVal
		return
	}

	child := k.table.Add(name, k.quantumInitial)
	entry, err := k.loadProgram(name, child)
	if err != nil {
		k.table.Remove(child.PID)
		d.CPUState.A = errVal
		return
	}

	child.CPUState.PC = entry
	child.CPUState.Modo = uint32(cpu.ModeUser)
	d.CPUState.A = uint32(child.PID)
}

// callExit implements SO_MATA_PROC. The X argument is ignored and the
// call always kills the caller — the table search guarantees this
// still behaves correctly even after prior removals.
func (k *Kernel) callExit(d *Descriptor) {
	k.killProcess(d.PID)
}

// killProcess removes a descriptor from the table outright. Its frames
// are not reclaimed — a documented extension point. Any waiter is
// unblocked on the next pendency sweep, not here — the sweep must
// remain the single place that resolves WAIT_PROC.
func (k *Kernel) killProcess(pid int) {
	if k.runningPID == pid {
		k.running = nil
		k.runningPID = NoPID
	}
	k.table.Remove(pid)
}

// callWait implements SO_ESPERA_PROC: await termination of PID = X. If
// the target is already absent, return immediately without blocking.
func (k *Kernel) callWait(d *Descriptor) {
	target := int(d.CPUState.X)
	if k.table.Lookup(target) == nil {
		d.CPUState.A = 0
		return
	}
	d.WaitTarget = target
	d.State = StateBlocked
	d.BlockReason = BlockWaitProc
}

const (
	maxProgramNameLen = 99
	errVal            = 0xffffffff
)
