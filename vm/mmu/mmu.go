package mmu

import "github.com/osalumni/ventoux/vm/memory"

// MMU translates virtual addresses through whichever page table is
// currently installed and performs the physical access through mem.
type MMU struct {
	mem     *memory.Memory
	current *PageTable
}

// New returns an MMU bound to the given physical memory, with no page
// table installed.
func New(mem *memory.Memory) *MMU {
	return &MMU{mem: mem}
}

// SetPageTable installs the page table consulted by subsequent
// translations. Called exclusively by the scheduler when it dispatches
// a process, never by the loader.
func (u *MMU) SetPageTable(pt *PageTable) {
	u.current = pt
}

// TranslateAddr resolves a virtual address to a physical one through
// the current page table, without performing the memory access. Used
// by the CPU to translate instruction fetches.
func (u *MMU) TranslateAddr(virt int) (int, error) {
	if u.current == nil {
		return 0, ErrFault
	}
	return u.current.Translate(virt)
}

// TranslateRead reads one word from the virtual address through the
// current page table.
func (u *MMU) TranslateRead(virt int) (uint32, error) {
	if u.current == nil {
		return 0, ErrFault
	}
	phys, err := u.current.Translate(virt)
	if err != nil {
		return 0, err
	}
	return u.mem.Read(phys)
}

// TranslateWrite writes one word to the virtual address through the
// current page table.
func (u *MMU) TranslateWrite(virt int, value uint32) error {
	if u.current == nil {
		return ErrFault
	}
	phys, err := u.current.Translate(virt)
	if err != nil {
		return err
	}
	return u.mem.Write(phys, value)
}

// ReadCString copies a NUL-terminated string out of the given page
// table's address space, used by SO_CRIA_PROC to fetch the program
// name the caller passed in its own virtual memory.
func (u *MMU) ReadCString(pt *PageTable, virt int, maxLen int) (string, error) {
	saved := u.current
	u.current = pt
	defer func() { u.current = saved }()

	buf := make([]byte, 0, 64)
	for i := 0; i < maxLen; i++ {
		word, err := u.TranslateRead(virt + i)
		if err != nil {
			return "", err
		}
		if word == 0 {
			return string(buf), nil
		}
		buf = append(buf, byte(word))
	}
	return string(buf), nil
}
