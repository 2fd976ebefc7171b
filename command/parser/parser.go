// Package parser implements the operator console's command line: a
// table of commands matched by unambiguous prefix, a cmdLine scan
// cursor, and a completion function for the liner-based reader.
package parser

import (
	"errors"
	"strconv"
	"unicode"

	"github.com/osalumni/ventoux/machine"
)

type cmd struct {
	name     string
	min      int
	process  func(*cmdLine, *machine.Machine) (bool, error)
	complete func(*cmdLine) []string
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "boot", min: 2, process: boot},
	{name: "continue", min: 1, process: cont},
	{name: "stop", min: 2, process: stop},
	{name: "halt", min: 2, process: stop},
	{name: "ps", min: 2, process: ps},
	{name: "load", min: 1, process: load},
	{name: "kill", min: 2, process: kill},
	{name: "quantum", min: 1, process: quantum},
	{name: "quit", min: 4, process: quit},
	{name: "exit", min: 2, process: quit},
}

// ProcessCommand runs one command line against m. The returned bool is
// true when the REPL should exit.
func ProcessCommand(commandLine string, m *machine.Machine) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	switch len(match) {
	case 0:
		return false, errors.New("command not found: " + name)
	case 1:
		return match[0].process(&line, m)
	default:
		return false, errors.New("ambiguous command: " + name)
	}
}

// CompleteCmd supports liner's tab completion.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	if !line.isEOL() && line.line[line.pos] == ' ' {
		line.skipSpace()
		match := matchList(name)
		if len(match) != 1 || match[0].complete == nil {
			return nil
		}
		return match[0].complete(&line)
	}

	match := matchList(name)
	names := make([]string, len(match))
	for i, m := range match {
		names[i] = m.name
	}
	return names
}

func matchCommand(c cmd, name string) bool {
	if len(name) > len(c.name) {
		return false
	}
	for i := 0; i < len(name); i++ {
		if c.name[i] != name[i] {
			return false
		}
	}
	return len(name) >= c.min
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			match = append(match, c)
		}
	}
	return match
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) isEOL() bool {
	if l.pos >= len(l.line) {
		return true
	}
	return l.line[l.pos] == '#'
}

// getWord scans the next whitespace-delimited token, advancing past it
// and any leading space.
func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.line) && !unicode.IsSpace(rune(l.line[l.pos])) && l.line[l.pos] != '#' {
		l.pos++
	}
	return l.line[start:l.pos]
}

func (l *cmdLine) getInt() (int, error) {
	word := l.getWord()
	if word == "" {
		return 0, errors.New("expected a number")
	}
	return strconv.Atoi(word)
}
