package kernel

// Translate adapts the MMU's address-only translation to the
// signature vm/cpu.CPU.SetTranslate expects, so bootstrap can wire:
//
//	c := cpu.New(mem)
//	c.SetTranslate(k.Translate)
//	c.Install(k.Dispatch)
func (k *Kernel) Translate(virt uint32) (phys uint32, fault bool) {
	p, err := k.mmu.TranslateAddr(int(virt))
	if err != nil {
		return 0, true
	}
	return uint32(p), false
}
