package kernel

import "github.com/osalumni/ventoux/vm/cpu"

// saveContext copies the six fixed interrupt frame words from physical
// memory into the running descriptor. Mode is carried as an opaque
// word, never interpreted here. A no-op when no process is running
// (first entry, or after a kill).
func (k *Kernel) saveContext() {
	if k.running == nil {
		return
	}
	d := k.running
	d.CPUState.X = k.readFrame(cpu.IRQEndX)
	d.CPUState.A = k.readFrame(cpu.IRQEndA)
	d.CPUState.PC = k.readFrame(cpu.IRQEndPC)
	d.CPUState.Erro = k.readFrame(cpu.IRQEndErro)
	d.CPUState.Complemento = k.readFrame(cpu.IRQEndComp)
	d.CPUState.Modo = k.readFrame(cpu.IRQEndModo)
}

// restoreContext writes the chosen descriptor's context back into the
// interrupt frame and points the MMU at its page table. If no
// descriptor was selected, write HALT into the frame's error slot so
// the CPU stops cleanly after interrupt-return.
func (k *Kernel) restoreContext() {
	if k.running == nil {
		k.writeFrame(cpu.IRQEndErro, cpu.ErrCPUParada)
		return
	}
	d := k.running
	k.writeFrame(cpu.IRQEndX, d.CPUState.X)
	k.writeFrame(cpu.IRQEndA, d.CPUState.A)
	k.writeFrame(cpu.IRQEndPC, d.CPUState.PC)
	k.writeFrame(cpu.IRQEndErro, d.CPUState.Erro)
	k.writeFrame(cpu.IRQEndComp, d.CPUState.Complemento)
	k.writeFrame(cpu.IRQEndModo, d.CPUState.Modo)

	k.mmu.SetPageTable(d.PageTable)
}

func (k *Kernel) readFrame(addr int) uint32 {
	v, _ := k.mem.Read(addr)
	return v
}

func (k *Kernel) writeFrame(addr int, v uint32) {
	_ = k.mem.Write(addr, v)
}
