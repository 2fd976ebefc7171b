// Package reader drives the operator console's read-eval loop with
// peterh/liner.
package reader

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/peterh/liner"

	"github.com/osalumni/ventoux/command/parser"
	"github.com/osalumni/ventoux/machine"
)

// ConsoleReader runs until the user quits or aborts with Ctrl-C.
func ConsoleReader(m *machine.Machine) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(line string) []string {
		return parser.CompleteCmd(line)
	})

	for {
		command, err := line.Prompt("ventoux> ")
		if err == nil {
			line.AppendHistory(command)
			quit, err := parser.ProcessCommand(command, m)
			if err != nil {
				fmt.Println("error: " + err.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		slog.Error("error reading line: " + err.Error())
	}
}
