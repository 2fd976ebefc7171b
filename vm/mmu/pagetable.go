// Package mmu implements the per-process page table and the memory
// management unit that consults it. The MMU translates virtual
// addresses against whichever table is "current" — a function of the
// running process only, set exclusively by the scheduler. The loader
// never touches the MMU's current table directly.
package mmu

import "errors"

// PageSize is the size, in words, of one page/frame.
const PageSize = 256

// ErrFault is returned when a virtual page has no valid mapping.
var ErrFault = errors.New("mmu: page fault")

type pageEntry struct {
	frame int
	valid bool
}

// PageTable is a dense virtual-page to physical-frame mapping, owned by
// exactly one process descriptor for its whole lifetime.
type PageTable struct {
	pages []pageEntry
}

// NewPageTable returns an empty page table.
func NewPageTable() *PageTable {
	return &PageTable{}
}

// Map installs a virtual-page to frame mapping, growing the table as
// needed.
func (pt *PageTable) Map(page, frame int) {
	if page >= len(pt.pages) {
		grown := make([]pageEntry, page+1)
		copy(grown, pt.pages)
		pt.pages = grown
	}
	pt.pages[page] = pageEntry{frame: frame, valid: true}
}

// Translate resolves a virtual address into a physical one. err is
// ErrFault when the page is unmapped.
func (pt *PageTable) Translate(virt int) (phys int, err error) {
	page := virt / PageSize
	offset := virt % PageSize
	if page < 0 || page >= len(pt.pages) || !pt.pages[page].valid {
		return 0, ErrFault
	}
	return pt.pages[page].frame*PageSize + offset, nil
}
