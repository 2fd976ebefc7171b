// Package telnet bridges TCP connections to the console device's
// terminal pairs: an IAC/WILL/WONT/DO/DONT negotiation loop and
// per-connection tnState machine, reduced to the options a plain line
// terminal needs (binary, echo, suppress-go-ahead).
package telnet

import (
	"log/slog"
	"net"

	"github.com/osalumni/ventoux/machine"
)

// Telnet protocol constants.
const (
	tnIAC  byte = 255
	tnDONT byte = 254
	tnDO   byte = 253
	tnWONT byte = 252
	tnWILL byte = 251

	tnOptionBinary byte = 0
	tnOptionEcho   byte = 1
	tnOptionSGA    byte = 3
)

// Line states for the per-connection negotiation machine.
const (
	stData int = 1 + iota
	stIAC
	stWILL
	stWONT
	stDO
	stDONT
)

var initString = []byte{
	tnIAC, tnWILL, tnOptionEcho,
	tnIAC, tnWILL, tnOptionSGA,
	tnIAC, tnWILL, tnOptionBinary,
}

// tnState tracks one connection's negotiation state and which terminal
// pid it is bound to.
type tnState struct {
	conn  net.Conn
	state int
	pid   int
	m     *machine.Machine
	log   *slog.Logger
}

// handleWILL acknowledges whatever the remote end offers; this bridge
// never needs to refuse an option the way a 3270 session would.
func (s *tnState) handleWILL(opt byte) {
	reply := []byte{tnIAC, tnDO, opt}
	_, _ = s.conn.Write(reply)
}

func (s *tnState) handleDO(opt byte) {
	switch opt {
	case tnOptionBinary, tnOptionEcho, tnOptionSGA:
		_, _ = s.conn.Write([]byte{tnIAC, tnWILL, opt})
	default:
		_, _ = s.conn.Write([]byte{tnIAC, tnWONT, opt})
	}
}

// handleClient runs the negotiation + data loop for one accepted
// connection until it disconnects or errors, then unbinds its terminal.
func handleClient(conn net.Conn, pid int, m *machine.Machine, log *slog.Logger) {
	defer conn.Close()

	s := &tnState{conn: conn, state: stData, pid: pid, m: m, log: log}
	m.Send(machine.Packet{Kind: machine.KindTelConnect, PID: pid, Conn: conn})
	defer m.Send(machine.Packet{Kind: machine.KindTelDisconnect, PID: pid})

	_, _ = conn.Write(initString)

	buf := make([]byte, 256)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		for i := 0; i < n; i++ {
			b := buf[i]
			switch s.state {
			case stData:
				if b == tnIAC {
					s.state = stIAC
				} else {
					m.Send(machine.Packet{Kind: machine.KindTelReceive, PID: pid, Data: b})
				}
			case stIAC:
				switch b {
				case tnIAC:
					m.Send(machine.Packet{Kind: machine.KindTelReceive, PID: pid, Data: tnIAC})
					s.state = stData
				case tnWILL:
					s.state = stWILL
				case tnWONT:
					s.state = stWONT
				case tnDO:
					s.state = stDO
				case tnDONT:
					s.state = stDONT
				default:
					s.state = stData
				}
			case stWILL:
				s.handleWILL(b)
				s.state = stData
			case stWONT:
				s.state = stData
			case stDO:
				s.handleDO(b)
				s.state = stData
			case stDONT:
				s.state = stData
			}
		}
	}
}
