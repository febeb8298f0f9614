// Package vm provides the execution engine for the WL machine.
package vm

import (
	"errors"
	"log/slog"

	"github.com/zurustar/wl-go/pkg/opcode"
)

// State represents the machine's execution state.
type State string

const (
	// StateRunning means the machine can execute another step.
	StateRunning State = "RUNNING"

	// StateHalted means execution ended normally: an HLT instruction ran,
	// or the program counter left the program.
	StateHalted State = "HALTED"

	// StateFaulted means a decode or runtime fault stopped execution.
	// Err returns the fault.
	StateFaulted State = "FAULTED"
)

// Machine executes a WL program: an ordered sequence of raw text lines
// (program memory) against a variable data memory and a program counter.
//
// Program memory is loaded once and never mutated. The machine never prints
// and never terminates the process; faults and halts surface as its terminal
// state.
type Machine struct {
	// Program memory and program counter
	program []string
	pc      int

	// Data memory
	mem *Memory

	// Execution state
	state State
	err   error
	steps int

	// Configuration
	maxSteps int

	// Logger
	log *slog.Logger
}

// Option is a functional option for configuring the machine.
type Option func(*Machine)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Machine) {
		m.log = log
	}
}

// WithMaxSteps sets a step budget for Run. 0, the default, means unlimited:
// a program with no reachable halt loops forever, as the language allows.
func WithMaxSteps(n int) Option {
	return func(m *Machine) {
		m.maxSteps = n
	}
}

// New creates a machine with the given program memory, in state RUNNING with
// the program counter at line 0 and an empty data memory.
func New(program []string, opts ...Option) *Machine {
	m := &Machine{
		program: append([]string(nil), program...),
		mem:     NewMemory(),
		state:   StateRunning,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current execution state.
func (m *Machine) State() State {
	return m.state
}

// Err returns the fault that stopped the machine, or nil.
func (m *Machine) Err() error {
	return m.err
}

// PC returns the current program counter.
func (m *Machine) PC() int {
	return m.pc
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() int {
	return m.steps
}

// Len returns the program memory length.
func (m *Machine) Len() int {
	return len(m.program)
}

// Snapshot returns the current program counter and a copy of the data memory
// contents, for inspection by a reporting layer.
func (m *Machine) Snapshot() (int, map[string]Value) {
	return m.pc, m.mem.Snapshot()
}

// Step executes the instruction at the current program counter.
//
// Valid only in RUNNING; in any other state it returns the state unchanged.
// A program counter outside [0, len) is the natural end of the program and
// transitions to HALTED. A decode fault leaves the data memory and program
// counter untouched and transitions to FAULTED; a runtime fault likewise
// transitions to FAULTED. Otherwise the program counter advances as the
// opcode dictates.
func (m *Machine) Step() State {
	if m.state != StateRunning {
		return m.state
	}

	if m.pc < 0 || m.pc >= len(m.program) {
		m.log.Debug("program counter left the program, halting", "pc", m.pc)
		m.state = StateHalted
		return m.state
	}

	inst, err := opcode.Decode(m.program[m.pc], m.pc)
	if err != nil {
		m.fault(err)
		return m.state
	}

	m.steps++
	if err := m.execute(inst); err != nil {
		m.fault(err)
	}
	return m.state
}

// Run repeatedly calls Step until the state leaves RUNNING. With a step
// budget configured, exceeding it faults with STEP_BUDGET_EXCEEDED.
func (m *Machine) Run() State {
	for m.state == StateRunning {
		if m.maxSteps > 0 && m.steps >= m.maxSteps {
			m.fault(NewStepBudgetError(m.maxSteps))
			break
		}
		m.Step()
	}
	return m.state
}

// fault transitions the machine to FAULTED, stamping the current line onto
// runtime errors that do not carry one yet.
func (m *Machine) fault(err error) {
	var rerr *RuntimeError
	if errors.As(err, &rerr) && rerr.Line < 0 {
		rerr.Line = m.pc
	}
	m.log.Debug("machine faulted", "pc", m.pc, "error", err)
	m.state = StateFaulted
	m.err = err
}
