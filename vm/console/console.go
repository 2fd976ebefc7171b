// Package console implements the simulated console device: N paired
// read/write terminal channels, addressed as pid*4+k for
// k in {0:read_data, 1:read_ready, 2:write_data, 3:write_ready}. Each
// terminal pair can be bridged to a live telnet connection (see the
// telnet package) or left unbound, in which case writes are discarded.
package console

import "sync"

const channelsPerTerminal = 4

const (
	regReadData = iota
	regReadReady
	regWriteData
	regWriteReady
)

// Sink receives bytes written by a user process. Bytes typed by the
// remote operator arrive separately, through Deliver. The machine
// package implements this over a telnet connection to bridge a
// terminal pair to TCP.
type Sink interface {
	Send(b byte)
}

type terminal struct {
	mu          sync.Mutex
	inbox       []byte
	readReady   bool
	writeReady  bool
	sink        Sink
}

// Console owns the fixed-size array of terminal pairs, one per
// supported process slot.
type Console struct {
	terms []*terminal
}

// New allocates a console with n terminal pairs, all write-ready by
// default (an unattached terminal accepts output immediately).
func New(n int) *Console {
	c := &Console{terms: make([]*terminal, n)}
	for i := range c.terms {
		c.terms[i] = &terminal{writeReady: true}
	}
	return c
}

// Count returns the number of terminal pairs.
func (c *Console) Count() int {
	return len(c.terms)
}

func (c *Console) term(pid int) *terminal {
	if pid < 0 || pid >= len(c.terms) {
		return nil
	}
	return c.terms[pid]
}

// Bind attaches a sink (typically a telnet connection) to a terminal
// pair so that WriteData forwards to a real client.
func (c *Console) Bind(pid int, sink Sink) {
	t := c.term(pid)
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sink = sink
}

// Unbind detaches any sink; later writes are discarded. Bytes already
// delivered stay queued and the terminal stays write-ready.
func (c *Console) Unbind(pid int) {
	c.Bind(pid, nil)
}

// Deliver queues a byte typed by the remote operator, making the
// read-data/ready register pair satisfiable on the next poll. Called
// on the machine goroutine when a telnet connection's input arrives.
func (c *Console) Deliver(pid int, b byte) {
	t := c.term(pid)
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inbox = append(t.inbox, b)
	t.readReady = true
}

// ReadReady reports whether channel pid*4+1 is non-zero.
func (c *Console) ReadReady(pid int) bool {
	t := c.term(pid)
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readReady
}

// ReadData performs term_le: pops the next buffered byte. The caller
// must have checked ReadReady first.
func (c *Console) ReadData(pid int) uint32 {
	t := c.term(pid)
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.inbox) == 0 {
		return 0
	}
	b := t.inbox[0]
	t.inbox = t.inbox[1:]
	t.readReady = len(t.inbox) > 0
	return uint32(b)
}

// WriteReady reports whether channel pid*4+3 is non-zero.
func (c *Console) WriteReady(pid int) bool {
	t := c.term(pid)
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writeReady
}

// WriteData performs term_escr: forwards a byte to the bound sink, if
// any. The device is modeled as always write-ready, bound or not, since
// the simulated terminal has no real backpressure.
func (c *Console) WriteData(pid int, value uint32) {
	t := c.term(pid)
	if t == nil {
		return
	}
	t.mu.Lock()
	sink := t.sink
	t.mu.Unlock()
	if sink != nil {
		sink.Send(byte(value))
	}
}
