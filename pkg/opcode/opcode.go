// Package opcode defines the instruction set for the WL interpreter.
// This package is the foundation that the machine depends on: raw program
// lines decode into Instruction values, and the machine executes them.
package opcode

import (
	"fmt"
	"strings"
)

// Cmd represents an instruction name token.
// Each Cmd corresponds to a specific operation that the machine can execute.
type Cmd string

// The ten WL opcodes.
const (
	// VarInt assigns an integer literal to a variable.
	// Args: [var, intLiteral]
	VarInt Cmd = "VARINT"

	// VarList builds a list from variables and integer literals.
	// Args: [var, arg1, ..., argN] with N >= 0
	VarList Cmd = "VARLIST"

	// Combine concatenates two lists into the second.
	// Args: [list1, list2]
	Combine Cmd = "COMBINE"

	// Get reads a list element into a variable.
	// Args: [var, index, list]
	Get Cmd = "GET"

	// Set replaces a list element in place.
	// Args: [srcNameOrLiteral, index, list]
	Set Cmd = "SET"

	// Copy deep-copies the second variable into the first.
	// Args: [list1, list2]
	Copy Cmd = "COPY"

	// Chs negates an integer variable.
	// Args: [var]
	Chs Cmd = "CHS"

	// Add adds an operand variable to a variable.
	// Args: [var, operand]
	Add Cmd = "ADD"

	// If jumps to a target line when a variable is zero or empty.
	// Args: [var, targetLine]
	If Cmd = "IF"

	// Hlt halts the machine.
	// Args: []
	Hlt Cmd = "HLT"
)

// arity maps each fixed-arity opcode to its argument count.
// VarList is absent: it takes a variable-length argument list.
var arity = map[Cmd]int{
	VarInt:  2,
	Combine: 2,
	Get:     3,
	Set:     3,
	Copy:    2,
	Chs:     1,
	Add:     2,
	If:      2,
	Hlt:     0,
}

// Instruction is one decoded program line.
// Operands are kept as raw tokens; variable names are resolved at execute
// time, not at decode time.
type Instruction struct {
	Cmd  Cmd
	Args []string
}

// DecodeError reports a program line that does not decode to a known
// instruction.
type DecodeError struct {
	Line   int // 0-based program line, -1 if unknown
	Reason string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("decode error at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("decode error: %s", e.Reason)
}

// Decode splits one program line on whitespace and builds the instruction it
// names. line is the 0-based program line number, used for error reporting.
//
// Decode fails when the opcode token matches none of the ten recognized
// names, or when a fixed-arity opcode receives the wrong number of
// arguments. An empty line has no opcode token and therefore fails too.
func Decode(text string, line int) (Instruction, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return Instruction{}, &DecodeError{Line: line, Reason: "empty line"}
	}

	cmd := Cmd(tokens[0])
	args := tokens[1:]

	if cmd == VarList {
		// VARLIST needs the target variable; the element list may be empty.
		if len(args) < 1 {
			return Instruction{}, &DecodeError{
				Line:   line,
				Reason: fmt.Sprintf("%s requires at least 1 argument, got %d", cmd, len(args)),
			}
		}
		return Instruction{Cmd: cmd, Args: args}, nil
	}

	want, ok := arity[cmd]
	if !ok {
		return Instruction{}, &DecodeError{
			Line:   line,
			Reason: fmt.Sprintf("unknown opcode %q", tokens[0]),
		}
	}
	if len(args) != want {
		return Instruction{}, &DecodeError{
			Line:   line,
			Reason: fmt.Sprintf("%s requires %d arguments, got %d", cmd, want, len(args)),
		}
	}
	return Instruction{Cmd: cmd, Args: args}, nil
}
