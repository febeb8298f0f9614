// Package shell provides the interactive driver for the WL machine: a
// step/run/quit command loop over the machine's exported API. The machine
// itself never prints; all reporting of the program counter and data memory
// happens here.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/zurustar/wl-go/pkg/vm"
)

// Shell drives a machine from an input stream of commands.
type Shell struct {
	machine *vm.Machine
	in      io.Reader
	out     io.Writer
}

// New creates a shell around machine, reading commands from in and writing
// reports to out.
func New(machine *vm.Machine, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		machine: machine,
		in:      in,
		out:     out,
	}
}

// Loop reads commands until quit, end of input, or the machine leaving
// RUNNING. Unrecognized input is rejected with a message and the loop
// re-prompts.
func (s *Shell) Loop() error {
	PrintState(s.out, s.machine)

	scanner := bufio.NewScanner(s.in)
	for s.machine.State() == vm.StateRunning {
		fmt.Fprint(s.out, "wl> ")
		if !scanner.Scan() {
			break
		}

		switch cmd := scanner.Text(); cmd {
		case "s", "step":
			s.machine.Step()
			PrintState(s.out, s.machine)
		case "r", "run":
			s.machine.Run()
			PrintState(s.out, s.machine)
		case "q", "quit":
			return nil
		default:
			fmt.Fprintf(s.out, "unknown command %q (s=step, r=run, q=quit)\n", cmd)
		}
	}
	return scanner.Err()
}

// PrintState writes the machine state, program counter, and the full data
// memory contents to w, variables in sorted order. A fault is printed after
// the memory dump.
func PrintState(w io.Writer, m *vm.Machine) {
	pc, mem := m.Snapshot()
	fmt.Fprintf(w, "state=%s pc=%d\n", m.State(), pc)

	names := make([]string, 0, len(mem))
	for name := range mem {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s = %s\n", name, mem[name])
	}

	if m.State() == vm.StateFaulted {
		fmt.Fprintf(w, "fault: %v\n", m.Err())
	}
}
