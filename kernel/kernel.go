package kernel

import (
	"log/slog"

	"github.com/osalumni/ventoux/vm/clock"
	"github.com/osalumni/ventoux/vm/console"
	"github.com/osalumni/ventoux/vm/cpuevent"
	"github.com/osalumni/ventoux/vm/memory"
	"github.com/osalumni/ventoux/vm/mmu"
)

// ReservedLowBytes is the size, in words, of the region the trampoline
// and interrupt frame occupy. The frame allocator never hands out the
// frames that back it.
const ReservedLowBytes = 100

// QuantumInitial is the number of clock ticks a fresh or just-preempted
// process is given before its next preemption.
const QuantumInitial = 5

// Kernel wires together the process table, the frame allocator, and the
// hardware collaborators (memory, MMU, console, clock) behind the
// single entry point the CPU calls on every interrupt.
type Kernel struct {
	mem     *memory.Memory
	mmu     *mmu.MMU
	console *console.Console
	clock   *clock.Clock
	events  *cpuevent.List
	log     *slog.Logger

	table  *Table
	frames *frameAllocator

	running    *Descriptor
	runningPID int

	quantumInitial int
	clockInterval  int
	programDir     string
	bootProgram    string
}

// Config bundles the tunables the configuration file can set.
type Config struct {
	Quantum       int
	ClockInterval int
	ProgramDir    string
	BootProgram   string
}

// New returns a Kernel wired to the given hardware collaborators. It
// does not yet run anything — the CPU's Reset delivers IRQReset, whose
// handler loads the boot program.
func New(mem *memory.Memory, mmuUnit *mmu.MMU, con *console.Console, events *cpuevent.List, log *slog.Logger, cfg Config) *Kernel {
	if cfg.Quantum <= 0 {
		cfg.Quantum = QuantumInitial
	}
	if log == nil {
		log = slog.Default()
	}
	return &Kernel{
		mem:            mem,
		mmu:            mmuUnit,
		console:        con,
		events:         events,
		log:            log,
		table:          NewTable(),
		frames:         newFrameAllocator(ReservedLowBytes, mmu.PageSize),
		runningPID:     NoPID,
		quantumInitial: cfg.Quantum,
		clockInterval:  cfg.ClockInterval,
		programDir:     cfg.ProgramDir,
		bootProgram:    cfg.BootProgram,
	}
}

// SetClock binds the clock device once it has been constructed (the
// clock's callback raises IRQ_CLOCK through the CPU's RaiseClock, so it
// is created after the kernel and the CPU).
func (k *Kernel) SetClock(c *clock.Clock) {
	k.clock = c
}

// Table exposes the process table for read-only inspection.
func (k *Kernel) Table() *Table {
	return k.table
}

// RunningPID reports the PID of the currently running process, or
// NoPID.
func (k *Kernel) RunningPID() int {
	return k.runningPID
}
