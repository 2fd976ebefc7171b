package mmu

import "testing"

func TestPageTableTranslate(t *testing.T) {
	pt := NewPageTable()
	pt.Map(3, 7)

	phys, err := pt.Translate(3*PageSize + 5)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if phys != 7*PageSize+5 {
		t.Fatalf("Translate = %d, want %d", phys, 7*PageSize+5)
	}
}

func TestPageTableFault(t *testing.T) {
	pt := NewPageTable()
	if _, err := pt.Translate(0); err != ErrFault {
		t.Fatalf("err = %v, want ErrFault", err)
	}
	if _, err := pt.Translate(-1); err != ErrFault {
		t.Fatalf("err = %v, want ErrFault for negative address", err)
	}
}

func TestPageTableRemap(t *testing.T) {
	pt := NewPageTable()
	pt.Map(0, 1)
	pt.Map(0, 2)
	phys, err := pt.Translate(0)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if phys != 2*PageSize {
		t.Fatalf("Translate = %d, want %d after remap", phys, 2*PageSize)
	}
}
