package memory

import "testing"

func TestReadWrite(t *testing.T) {
	m := New(16)
	if err := m.Write(4, 0xdeadbeef); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, err := m.Read(4)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 0xdeadbeef {
		t.Fatalf("Read = %#x, want 0xdeadbeef", v)
	}
}

func TestOutOfRange(t *testing.T) {
	m := New(4)
	if _, err := m.Read(4); err != ErrOutOfRange {
		t.Fatalf("Read(4) err = %v, want ErrOutOfRange", err)
	}
	if err := m.Write(-1, 0); err != ErrOutOfRange {
		t.Fatalf("Write(-1) err = %v, want ErrOutOfRange", err)
	}
}

func TestClear(t *testing.T) {
	m := New(4)
	_ = m.Write(0, 1)
	_ = m.Write(3, 2)
	m.Clear()
	for i := 0; i < m.Size(); i++ {
		v, _ := m.Read(i)
		if v != 0 {
			t.Fatalf("word %d = %d, want 0 after Clear", i, v)
		}
	}
}
