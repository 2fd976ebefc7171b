package cpu

import (
	"testing"

	"github.com/osalumni/ventoux/vm/memory"
)

func program(mem *memory.Memory, addr uint32, words ...uint32) {
	for i, w := range words {
		_ = mem.Write(int(addr)+i, w)
	}
}

func instr(op, arg uint32) uint32 {
	return op<<24 | (arg & 0x00ffffff)
}

func TestStepArithmetic(t *testing.T) {
	mem := memory.New(64)
	c := New(mem)
	c.Install(func(irq int) bool { return true })

	program(mem, 20,
		instr(OpLoadImmX, 7),
		instr(OpLoadImmA, 3),
		instr(OpAddXToA, 0),
		instr(OpHalt, 0),
	)
	c.pc = 20

	for i := 0; i < 3; i++ {
		if _, running := c.Step(); !running {
			t.Fatalf("step %d: CPU stopped early", i)
		}
	}
	if c.a != 10 {
		t.Fatalf("a = %d, want 10", c.a)
	}

	if _, running := c.Step(); running {
		t.Fatal("OpHalt should report running=false")
	}
	if c.erro != ErrCPUParada {
		t.Fatalf("erro = %d, want ErrCPUParada", c.erro)
	}
}

func TestSysCallRaisesInterruptAndCostsTwoCycles(t *testing.T) {
	mem := memory.New(64)
	c := New(mem)

	var gotIRQ int
	c.Install(func(irq int) bool {
		gotIRQ = irq
		return true
	})

	program(mem, 0, instr(OpSysCall, 0))
	cycles, running := c.Step()
	if cycles != 2 {
		t.Fatalf("cycles = %d, want 2", cycles)
	}
	if !running {
		t.Fatal("expected running=true")
	}
	if gotIRQ != IRQSysCall {
		t.Fatalf("irq = %d, want IRQSysCall", gotIRQ)
	}
}

func TestRaiseIRQSavesAndRestoresFrame(t *testing.T) {
	mem := memory.New(64)
	c := New(mem)
	c.x, c.a, c.pc = 1, 2, 3

	c.Install(func(irq int) bool {
		x, _ := mem.Read(IRQEndX)
		a, _ := mem.Read(IRQEndA)
		pc, _ := mem.Read(IRQEndPC)
		if x != 1 || a != 2 || pc != 3 {
			t.Fatalf("frame = (%d,%d,%d), want (1,2,3)", x, a, pc)
		}
		// kernel edits the frame before returning
		_ = mem.Write(IRQEndA, 99)
		_ = mem.Write(IRQEndPC, 50)
		return true
	})

	if !c.raiseIRQ(IRQSysCall) {
		t.Fatal("expected keepRunning=true")
	}
	if c.a != 99 || c.pc != 50 {
		t.Fatalf("a,pc = %d,%d, want 99,50", c.a, c.pc)
	}
}

func TestRaiseIRQHaltsWhenFrameSaysStopped(t *testing.T) {
	mem := memory.New(64)
	c := New(mem)
	c.Install(func(irq int) bool {
		_ = mem.Write(IRQEndErro, ErrCPUParada)
		return true
	})
	if c.raiseIRQ(IRQReset) {
		t.Fatal("expected keepRunning=false when erro==ErrCPUParada")
	}
}

func TestUserModeTranslatesThroughMMU(t *testing.T) {
	mem := memory.New(1024)
	c := New(mem)
	c.Install(func(irq int) bool { return true })
	c.mode = ModeUser
	c.pc = 0

	c.SetTranslate(func(virt uint32) (uint32, bool) {
		return virt + 100, false
	})
	program(mem, 100, instr(OpNop, 0))

	if _, running := c.Step(); !running {
		t.Fatal("expected running=true")
	}
	if c.pc != 1 {
		t.Fatalf("pc = %d, want 1 (virtual, not physical)", c.pc)
	}
}

func TestUserModeTranslationFaultRaisesCPUErr(t *testing.T) {
	mem := memory.New(64)
	c := New(mem)

	var gotIRQ int
	c.Install(func(irq int) bool {
		gotIRQ = irq
		return true
	})
	c.mode = ModeUser
	c.SetTranslate(func(virt uint32) (uint32, bool) { return 0, true })

	if _, running := c.Step(); !running {
		t.Fatal("expected running=true (the handler decides)")
	}
	if gotIRQ != IRQCPUErr {
		t.Fatalf("irq = %d, want IRQCPUErr", gotIRQ)
	}
	if c.erro != ErrEnderecoInv {
		t.Fatalf("erro = %d, want ErrEnderecoInv", c.erro)
	}
}

func TestIllegalOpcodeRaisesCPUErr(t *testing.T) {
	mem := memory.New(64)
	c := New(mem)
	var gotIRQ int
	c.Install(func(irq int) bool {
		gotIRQ = irq
		return true
	})
	program(mem, 0, instr(OpIllegal, 0))
	c.Step()
	if gotIRQ != IRQCPUErr {
		t.Fatalf("irq = %d, want IRQCPUErr", gotIRQ)
	}
	if c.erro != ErrInstrucaoInv {
		t.Fatalf("erro = %d, want ErrInstrucaoInv", c.erro)
	}
}

func TestResetRaisesIRQResetInSupervisorMode(t *testing.T) {
	mem := memory.New(64)
	c := New(mem)
	var gotIRQ int
	c.Install(func(irq int) bool {
		gotIRQ = irq
		modo, _ := mem.Read(IRQEndModo)
		if modo != ModeSupervisor {
			t.Fatalf("mode = %d, want ModeSupervisor", modo)
		}
		return true
	})
	c.Reset()
	if gotIRQ != IRQReset {
		t.Fatalf("irq = %d, want IRQReset", gotIRQ)
	}
}
