package telnet

import (
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/osalumni/ventoux/machine"
)

// Listener accepts telnet connections on one TCP port and assigns each
// one, round-robin, to the next console terminal pid.
type Listener struct {
	wg       sync.WaitGroup
	listener net.Listener
	shutdown chan struct{}
	conns    chan net.Conn
	m        *machine.Machine
	log      *slog.Logger

	mu   sync.Mutex
	next int
}

// New opens a listener on addr ("host:port" or ":port") bridging
// connections into m's console device.
func New(addr string, m *machine.Machine, log *slog.Logger) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("telnet: listen %s: %w", addr, err)
	}
	return &Listener{
		listener: ln,
		shutdown: make(chan struct{}),
		conns:    make(chan net.Conn),
		m:        m,
		log:      log,
	}, nil
}

// Start runs the accept and dispatch loops in their own goroutines.
func (l *Listener) Start() {
	l.wg.Add(2)
	go l.acceptLoop()
	go l.dispatchLoop()
	l.log.Info("telnet listener started", "addr", l.listener.Addr().String())
}

// Stop closes the listener and waits (briefly) for the accept and
// dispatch loops to exit. Connections already handed to handleClient
// are not waited for.
func (l *Listener) Stop() {
	close(l.shutdown)
	l.listener.Close()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		l.log.Warn("timed out waiting for telnet connections to finish")
	}
}

func (l *Listener) acceptLoop() {
	defer l.wg.Done()
	for {
		conn, err := l.listener.Accept()
		if err != nil {
			select {
			case <-l.shutdown:
				return
			default:
				continue
			}
		}
		select {
		case l.conns <- conn:
		case <-l.shutdown:
			conn.Close()
			return
		}
	}
}

func (l *Listener) dispatchLoop() {
	defer l.wg.Done()
	for {
		select {
		case <-l.shutdown:
			return
		case conn := <-l.conns:
			pid := l.nextTerminal()
			go handleClient(conn, pid, l.m, l.log)
		}
	}
}

func (l *Listener) nextTerminal() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.m.Console().Count()
	pid := l.next
	l.next = (l.next + 1) % n
	return pid
}
