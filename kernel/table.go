package kernel

// Table is the ordered process table: insertion order is preserved
// across additions, and removal preserves the relative order of
// survivors. "Next ready" returns the first descriptor in table order
// with State == StateReady.
//
// Descriptors are held in a slice of pointers and are always looked up
// by PID, never by a cached index — a growable slice invalidates
// indexes on remove/rotate the same way a realloc'd C array invalidates
// raw pointers into it.
type Table struct {
	procs  []*Descriptor
	lastPID int
	hasAny  bool
}

// NewTable returns an empty process table.
func NewTable() *Table {
	return &Table{}
}

// Add creates a descriptor with a freshly-allocated, monotonically
// increasing PID and inserts it at the tail of the table.
func (t *Table) Add(name string, quantum int) *Descriptor {
	pid := 0
	if t.hasAny {
		pid = t.lastPID + 1
	}
	t.lastPID = pid
	t.hasAny = true

	d := newDescriptor(pid, name, quantum)
	t.procs = append(t.procs, d)
	return d
}

// Lookup finds a descriptor by PID, searching the table rather than
// ever treating a PID as a cached index into it.
func (t *Table) Lookup(pid int) *Descriptor {
	for _, d := range t.procs {
		if d.PID == pid {
			return d
		}
	}
	return nil
}

// Remove deletes the descriptor with the given PID, preserving the
// relative order of the remaining descriptors. Reports whether a
// descriptor was found and removed.
func (t *Table) Remove(pid int) bool {
	for i, d := range t.procs {
		if d.PID == pid {
			t.procs = append(t.procs[:i], t.procs[i+1:]...)
			return true
		}
	}
	return false
}

// RotateToTail moves the descriptor with the given PID to the end of
// the table, if present. Used by the scheduler to defer a process that
// was preempted or just blocked, yielding FIFO fairness among the
// READY descriptors.
func (t *Table) RotateToTail(pid int) {
	for i, d := range t.procs {
		if d.PID == pid {
			t.procs = append(t.procs[:i], t.procs[i+1:]...)
			t.procs = append(t.procs, d)
			return
		}
	}
}

// NextReady returns the first descriptor in table order with
// State == StateReady, or nil if none.
func (t *Table) NextReady() *Descriptor {
	for _, d := range t.procs {
		if d.State == StateReady {
			return d
		}
	}
	return nil
}

// All returns the descriptors in table order. Callers must not retain
// the slice across a mutating call.
func (t *Table) All() []*Descriptor {
	return t.procs
}

// Blocked returns every descriptor currently BLOCKED, in table order.
func (t *Table) Blocked() []*Descriptor {
	var out []*Descriptor
	for _, d := range t.procs {
		if d.State == StateBlocked {
			out = append(out, d)
		}
	}
	return out
}

// Len reports how many descriptors are live.
func (t *Table) Len() int {
	return len(t.procs)
}
