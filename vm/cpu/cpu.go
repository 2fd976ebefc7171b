// Package cpu implements the simulated machine's fetch/decode/execute
// loop: a tiny word-oriented instruction set, privileged-mode
// enforcement, and the interrupt-frame/trampoline contract the kernel
// relies on. It exists only so the kernel has something real to drive,
// with a table-driven opcode dispatch and a fixed low-memory
// interrupt-frame layout.
package cpu

import "github.com/osalumni/ventoux/vm/memory"

// Fixed low-memory interrupt-frame addresses, written by the CPU on IRQ
// entry and read back on interrupt-return.
const (
	IRQEndX    = 0 // general register X
	IRQEndA    = 1 // general register A
	IRQEndPC   = 2 // program counter
	IRQEndErro = 3 // error register
	IRQEndComp = 4 // complement register
	IRQEndModo = 5 // mode register

	// EnterKernel and ReturnFromInterrupt name the trampoline
	// addresses 10 and 11. No instructions are installed there:
	// raiseIRQ calls the kernel's Entry directly and then resumes from
	// the frame.
	EnterKernel         = 10
	ReturnFromInterrupt = 11
)

// Mode values. Opaque words the CPU understands; kept as integer
// constants rather than a Go enum since they cross the hardware
// boundary.
const (
	ModeSupervisor = 0
	ModeUser       = 1
)

// Error register values.
const (
	ErrOK           = 0
	ErrInstrucaoInv = 1 // illegal instruction
	ErrEnderecoInv  = 2 // translation fault
	ErrOperandoInv  = 3 // bad operand
	ErrCPUParada    = 4 // halt: nothing runnable
)

// IRQ kinds delivered to the kernel's single entry point.
const (
	IRQReset = iota
	IRQCPUErr
	IRQSysCall
	IRQClock
	IRQUnknown
)

// Opcodes for the tiny instruction set. Only enough to exercise the
// syscalls and the quantum/clock machinery the kernel spec describes.
const (
	OpNop = iota
	OpLoadImmA
	OpLoadImmX
	OpAddXToA
	OpStoreAToX // copies A into X, used by test programs
	OpSysCall   // raises IRQSysCall
	OpJump
	OpJumpIfZero
	OpHalt
	OpIllegal = 0xff
)

// Entry is the kernel's single callback, invoked on every IRQ with the
// kind of interrupt. It returns true if the CPU should keep running
// after the interrupt-return, false to halt.
type Entry func(irq int) bool

// CPU is the simulated processor: registers, the current address
// space, and the fetch/execute loop.
type CPU struct {
	mem   *memory.Memory
	entry Entry

	x, a, pc   uint32
	erro       uint32
	complement uint32
	mode       uint32

	translate func(virt uint32) (phys uint32, fault bool)
}

// New returns a CPU bound to physical memory. Install must be called
// before Step to register the kernel's entry point.
func New(mem *memory.Memory) *CPU {
	return &CPU{mem: mem}
}

// Install registers the callback invoked by ENTER_KERNEL.
func (c *CPU) Install(entry Entry) {
	c.entry = entry
}

// SetTranslate installs the function used to resolve user-mode
// addresses through the MMU. A nil translator means identity mapping
// (used before any process has a page table installed).
func (c *CPU) SetTranslate(fn func(virt uint32) (phys uint32, fault bool)) {
	c.translate = fn
}

// raiseIRQ implements the CPU's side of an interrupt: write the
// register file to the fixed interrupt frame, call the kernel through
// Entry, then reload the frame the kernel wrote back before returning.
func (c *CPU) raiseIRQ(irq int) (keepRunning bool) {
	_ = c.mem.Write(IRQEndX, c.x)
	_ = c.mem.Write(IRQEndA, c.a)
	_ = c.mem.Write(IRQEndPC, c.pc)
	_ = c.mem.Write(IRQEndErro, c.erro)
	_ = c.mem.Write(IRQEndComp, c.complement)
	_ = c.mem.Write(IRQEndModo, c.mode)

	keepRunning = true
	if c.entry != nil {
		keepRunning = c.entry(irq)
	}

	x, _ := c.mem.Read(IRQEndX)
	a, _ := c.mem.Read(IRQEndA)
	pc, _ := c.mem.Read(IRQEndPC)
	erro, _ := c.mem.Read(IRQEndErro)
	comp, _ := c.mem.Read(IRQEndComp)
	modo, _ := c.mem.Read(IRQEndModo)
	c.x, c.a, c.pc, c.erro, c.complement, c.mode = x, a, pc, erro, comp, modo

	if erro == ErrCPUParada {
		return false
	}
	return keepRunning
}

// Reset raises IRQReset, the first interrupt the simulator ever
// delivers.
func (c *CPU) Reset() bool {
	c.mode = ModeSupervisor
	c.erro = ErrOK
	return c.raiseIRQ(IRQReset)
}

// Step fetches, decodes and executes one instruction, returning the
// number of memory cycles it consumed (for event-list timing) and
// whether the CPU should keep running.
func (c *CPU) Step() (cycles int, running bool) {
	phys := c.pc
	if c.mode == ModeUser && c.translate != nil {
		p, fault := c.translate(c.pc)
		if fault {
			c.erro = ErrEnderecoInv
			return 1, c.raiseIRQ(IRQCPUErr)
		}
		phys = p
	}

	instr, err := c.mem.Read(int(phys))
	if err != nil {
		c.erro = ErrEnderecoInv
		return 1, c.raiseIRQ(IRQCPUErr)
	}

	op := instr >> 24
	arg := instr & 0x00ffffff

	c.pc++
	switch op {
	case OpNop:
	case OpLoadImmA:
		c.a = arg
	case OpLoadImmX:
		c.x = arg
	case OpAddXToA:
		c.a += c.x
	case OpStoreAToX:
		c.x = c.a
	case OpSysCall:
		return 2, c.raiseIRQ(IRQSysCall)
	case OpJump:
		c.pc = arg
	case OpJumpIfZero:
		if c.a == 0 {
			c.pc = arg
		}
	case OpHalt:
		c.erro = ErrCPUParada
		return 1, c.raiseIRQ(IRQCPUErr)
	default:
		c.erro = ErrInstrucaoInv
		return 1, c.raiseIRQ(IRQCPUErr)
	}
	return 1, true
}

// RaiseClock delivers an external IRQClock, used by the clock device
// when its countdown fires.
func (c *CPU) RaiseClock() bool {
	return c.raiseIRQ(IRQClock)
}
