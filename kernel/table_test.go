package kernel

import "testing"

func TestTableAddAssignsSequentialPIDs(t *testing.T) {
	tbl := NewTable()
	a := tbl.Add("init", 5)
	b := tbl.Add("shell", 5)
	if a.PID != 0 || b.PID != 1 {
		t.Fatalf("PIDs = %d,%d, want 0,1", a.PID, b.PID)
	}
}

func TestTableLookupByPID(t *testing.T) {
	tbl := NewTable()
	d := tbl.Add("init", 5)
	if got := tbl.Lookup(d.PID); got != d {
		t.Fatalf("Lookup(%d) = %v, want %v", d.PID, got, d)
	}
	if tbl.Lookup(999) != nil {
		t.Fatal("Lookup of unknown PID should return nil")
	}
}

func TestTableRemovePreservesOrder(t *testing.T) {
	tbl := NewTable()
	a := tbl.Add("a", 5)
	b := tbl.Add("b", 5)
	c := tbl.Add("c", 5)

	if !tbl.Remove(b.PID) {
		t.Fatal("Remove should report true for a present PID")
	}
	all := tbl.All()
	if len(all) != 2 || all[0].PID != a.PID || all[1].PID != c.PID {
		t.Fatalf("All() = %v, want [a,c] in order", all)
	}
	if tbl.Remove(b.PID) {
		t.Fatal("Remove should report false the second time")
	}
}

func TestTableRotateToTail(t *testing.T) {
	tbl := NewTable()
	a := tbl.Add("a", 5)
	b := tbl.Add("b", 5)
	c := tbl.Add("c", 5)

	tbl.RotateToTail(a.PID)
	all := tbl.All()
	if all[0].PID != b.PID || all[1].PID != c.PID || all[2].PID != a.PID {
		t.Fatalf("order after rotate = %v, want [b,c,a]", all)
	}
}

func TestTableNextReadySkipsNonReady(t *testing.T) {
	tbl := NewTable()
	a := tbl.Add("a", 5)
	b := tbl.Add("b", 5)
	a.State = StateBlocked

	next := tbl.NextReady()
	if next == nil || next.PID != b.PID {
		t.Fatalf("NextReady = %v, want b", next)
	}
}

func TestTableBlocked(t *testing.T) {
	tbl := NewTable()
	a := tbl.Add("a", 5)
	tbl.Add("b", 5)
	a.State = StateBlocked

	blocked := tbl.Blocked()
	if len(blocked) != 1 || blocked[0].PID != a.PID {
		t.Fatalf("Blocked() = %v, want [a]", blocked)
	}
}

func TestTableLen(t *testing.T) {
	tbl := NewTable()
	if tbl.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tbl.Len())
	}
	tbl.Add("a", 5)
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
}
