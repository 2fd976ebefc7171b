// Package kernel implements the operating-system kernel proper: the
// process descriptor and table, the round-robin scheduler, the blocking
// I/O and wait/exit subsystem, the program loader's frame/page-table
// bookkeeping, and the interrupt dispatcher that ties them together.
//
// Descriptors are identified by PID everywhere, never by pointer or
// cached index; rotation-to-tail is done by slice remove+append rather
// than in-place array copies; a wait target is stored as a PID.
package kernel

import "github.com/osalumni/ventoux/vm/mmu"

// State is one of READY, RUNNING, BLOCKED.
type State int

const (
	StateReady State = iota
	StateRunning
	StateBlocked
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateBlocked:
		return "BLOCKED"
	default:
		return "?"
	}
}

// BlockReason qualifies why a BLOCKED descriptor is blocked.
type BlockReason int

const (
	BlockNone BlockReason = iota
	BlockIORead
	BlockIOWrite
	BlockWaitProc
)

// NoPID marks the absence of a PID — an unset WaitTarget, or "no
// process currently running".
const NoPID = -1

// CPUState mirrors the CPU's six interrupt-frame words. Mode is never
// interpreted here, only carried.
type CPUState struct {
	X, A, PC           uint32
	Erro               uint32
	Complemento        uint32
	Modo               uint32
}

// Descriptor is the kernel's bookkeeping record for one user process.
type Descriptor struct {
	PID   int
	Name  string
	State State

	BlockReason BlockReason
	WaitTarget  int // PID; meaningful iff BlockReason == BlockWaitProc

	QuantumRemaining int
	CPUState         CPUState

	PageTable *mmu.PageTable
}

// newDescriptor returns a fresh READY descriptor with an empty page
// table (the loader adds its mappings during CREATE_PROC/boot).
func newDescriptor(pid int, name string, quantum int) *Descriptor {
	return &Descriptor{
		PID:         pid,
		Name:        name,
		State:       StateReady,
		BlockReason: BlockNone,
		WaitTarget:  NoPID,
		QuantumRemaining: quantum,
		PageTable:   mmu.NewPageTable(),
	}
}
