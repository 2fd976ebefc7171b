package machine

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/osalumni/ventoux/kernel"
	"github.com/osalumni/ventoux/vm/clock"
	"github.com/osalumni/ventoux/vm/console"
	"github.com/osalumni/ventoux/vm/cpu"
	"github.com/osalumni/ventoux/vm/cpuevent"
	"github.com/osalumni/ventoux/vm/memory"
	"github.com/osalumni/ventoux/vm/mmu"
)

// MemorySize is the default physical memory size, in words.
const MemorySize = 256 * 1024

// Machine owns the whole simulated system and runs it on one goroutine.
type Machine struct {
	wg      sync.WaitGroup
	done    chan struct{}
	packets chan Packet
	running bool

	mem     *memory.Memory
	mmu     *mmu.MMU
	console *console.Console
	events  *cpuevent.List
	clock   *clock.Clock
	cpu     *cpu.CPU
	kernel  *kernel.Kernel
	log     *slog.Logger
}

// Config bundles the settings the config package loads from disk.
type Config struct {
	Quantum       int
	ClockInterval int
	Terminals     int
	ProgramDir    string
	BootProgram   string
}

// New builds and wires a Machine. It does not start running until
// Start is called and a KindBoot packet is processed.
func New(cfg Config, log *slog.Logger) *Machine {
	if cfg.Terminals <= 0 {
		cfg.Terminals = 1
	}
	if cfg.ClockInterval <= 0 {
		cfg.ClockInterval = 50
	}

	mem := memory.New(MemorySize)
	mmuUnit := mmu.New(mem)
	con := console.New(cfg.Terminals)
	events := &cpuevent.List{}

	k := kernel.New(mem, mmuUnit, con, events, log, kernel.Config{
		Quantum:       cfg.Quantum,
		ClockInterval: cfg.ClockInterval,
		ProgramDir:    cfg.ProgramDir,
		BootProgram:   cfg.BootProgram,
	})

	simCPU := cpu.New(mem)
	simCPU.SetTranslate(k.Translate)
	simCPU.Install(k.Dispatch)

	clk := clock.New(events, func() { simCPU.RaiseClock() })
	k.SetClock(clk)

	return &Machine{
		done:    make(chan struct{}),
		packets: make(chan Packet, 16),
		mem:     mem,
		mmu:     mmuUnit,
		console: con,
		events:  events,
		clock:   clk,
		cpu:     simCPU,
		kernel:  k,
		log:     log,
	}
}

// Send enqueues a packet for the machine goroutine. Safe to call from
// any goroutine (telnet connections, the REPL).
func (m *Machine) Send(p Packet) {
	m.packets <- p
}

// Do enqueues a packet and blocks for its Result, for callers (the
// operator REPL) that need an answer before printing a prompt again.
func (m *Machine) Do(p Packet) Result {
	reply := make(chan Result, 1)
	p.Reply = reply
	m.packets <- p
	return <-reply
}

// Console exposes the console device so the telnet listener can bind
// incoming connections to terminal pairs.
func (m *Machine) Console() *console.Console {
	return m.console
}

// Start runs the machine loop until Stop is called. Intended to run in
// its own goroutine.
func (m *Machine) Start() {
	m.wg.Add(1)
	defer m.wg.Done()

	for {
		if m.running {
			cycles, running := m.cpu.Step()
			m.events.Advance(cycles)
			m.running = running
		} else if m.events.Pending() {
			m.events.Advance(1)
		}

		select {
		case <-m.done:
			m.log.Info("machine shutting down")
			return
		case pkt := <-m.packets:
			m.handle(pkt)
		default:
		}
	}
}

// Stop signals the machine goroutine to exit and waits (briefly) for
// it to do so.
func (m *Machine) Stop() {
	close(m.done)
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		m.log.Warn("timed out waiting for machine to stop")
	}
}

func (m *Machine) handle(pkt Packet) {
	var res Result
	switch pkt.Kind {
	case KindBoot:
		m.running = m.cpu.Reset()
		res.Text = "booted"

	case KindStart:
		m.running = true

	case KindStop:
		m.running = false

	case KindKill:
		if !m.kernel.KillPID(pkt.PID) {
			res.Err = fmt.Errorf("no such process: %d", pkt.PID)
		}

	case KindQuantum:
		m.kernel.SetQuantum(pkt.N)

	case KindPS:
		res.Text = formatPS(m.kernel.Snapshot())

	case KindLoad:
		pid, err := m.kernel.SpawnDirect(pkt.Name)
		if err != nil {
			res.Err = err
		} else {
			res.Text = fmt.Sprintf("loaded %s as pid %d", pkt.Name, pid)
		}

	case KindTelConnect:
		m.console.Bind(pkt.PID, connSink{pkt.Conn})

	case KindTelDisconnect:
		m.console.Unbind(pkt.PID)

	case KindTelReceive:
		m.console.Deliver(pkt.PID, pkt.Data)
	}

	if pkt.Reply != nil {
		pkt.Reply <- res
	}
}

func formatPS(procs []kernel.ProcessInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-12s %-9s %s\n", "PID", "NAME", "STATE", "QUANTUM")
	for _, p := range procs {
		fmt.Fprintf(&b, "%-4d %-12s %-9s %d\n", p.PID, p.Name, p.State, p.QuantumRemaining)
	}
	return b.String()
}

// connSink adapts a net.Conn to console.Sink so telnet connections can
// be bound directly to a terminal pair.
type connSink struct {
	conn net.Conn
}

func (s connSink) Send(b byte) {
	_, _ = s.conn.Write([]byte{b})
}
