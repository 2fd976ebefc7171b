package parser

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/osalumni/ventoux/machine"
)

func boot(_ *cmdLine, m *machine.Machine) (bool, error) {
	slog.Debug("command boot")
	res := m.Do(machine.Packet{Kind: machine.KindBoot})
	if res.Text != "" {
		fmt.Println(res.Text)
	}
	return false, res.Err
}

func cont(_ *cmdLine, m *machine.Machine) (bool, error) {
	slog.Debug("command continue")
	m.Send(machine.Packet{Kind: machine.KindStart})
	return false, nil
}

func stop(_ *cmdLine, m *machine.Machine) (bool, error) {
	slog.Debug("command stop")
	m.Send(machine.Packet{Kind: machine.KindStop})
	return false, nil
}

func ps(_ *cmdLine, m *machine.Machine) (bool, error) {
	slog.Debug("command ps")
	res := m.Do(machine.Packet{Kind: machine.KindPS})
	fmt.Print(res.Text)
	return false, res.Err
}

func load(line *cmdLine, m *machine.Machine) (bool, error) {
	slog.Debug("command load")
	name := line.getWord()
	if name == "" {
		return false, errors.New("load requires a program name")
	}
	res := m.Do(machine.Packet{Kind: machine.KindLoad, Name: name})
	if res.Err == nil {
		fmt.Println(res.Text)
	}
	return false, res.Err
}

func kill(line *cmdLine, m *machine.Machine) (bool, error) {
	slog.Debug("command kill")
	pid, err := line.getInt()
	if err != nil {
		return false, fmt.Errorf("kill: %w", err)
	}
	res := m.Do(machine.Packet{Kind: machine.KindKill, PID: pid})
	return false, res.Err
}

func quantum(line *cmdLine, m *machine.Machine) (bool, error) {
	slog.Debug("command quantum")
	n, err := line.getInt()
	if err != nil {
		return false, fmt.Errorf("quantum: %w", err)
	}
	m.Send(machine.Packet{Kind: machine.KindQuantum, N: n})
	return false, nil
}

func quit(_ *cmdLine, m *machine.Machine) (bool, error) {
	slog.Debug("command quit")
	m.Stop()
	return true, nil
}
