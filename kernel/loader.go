package kernel

import (
	"fmt"

	vmloader "github.com/osalumni/ventoux/vm/loader"
	"github.com/osalumni/ventoux/vm/mmu"
)

// loadProgram is the program loader: parse the executable
// (an external file-format concern, delegated to vm/loader), allocate
// contiguous physical frames, install the mapping in the target
// descriptor's page table, and copy the program's words into physical
// memory. Returns the virtual entry address.
//
// This never touches the MMU's current page table — only the
// scheduler does that, when it dispatches a process.
func (k *Kernel) loadProgram(name string, target *Descriptor) (entry uint32, err error) {
	path := k.resolveProgram(name)
	img, err := vmloader.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", name, err)
	}

	pageIni := img.LoadAddress / mmu.PageSize
	pageFim := (img.LoadAddress + len(img.Words) - 1) / mmu.PageSize
	nPages := pageFim - pageIni + 1

	frameIni := k.frames.allocate(nPages)
	for i := 0; i < nPages; i++ {
		target.PageTable.Map(pageIni+i, frameIni+i)
	}

	for i, word := range img.Words {
		virt := img.LoadAddress + i
		page := virt / mmu.PageSize
		offset := virt % mmu.PageSize
		frame := frameIni + (page - pageIni)
		phys := frame*mmu.PageSize + offset
		if err := k.mem.Write(phys, word); err != nil {
			return 0, fmt.Errorf("load %s: %w", name, err)
		}
	}

	return uint32(img.LoadAddress), nil
}

func (k *Kernel) resolveProgram(name string) string {
	if k.programDir == "" {
		return name
	}
	return k.programDir + "/" + name
}
