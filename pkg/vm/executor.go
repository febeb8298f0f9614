// Package vm provides instruction execution for the WL machine.
package vm

import (
	"fmt"
	"strconv"

	"github.com/zurustar/wl-go/pkg/opcode"
)

// execute dispatches one decoded instruction against the data memory and the
// program counter. Decode guarantees the arity, so argument positions are
// accessed directly.
func (m *Machine) execute(inst opcode.Instruction) error {
	switch inst.Cmd {
	case opcode.VarInt:
		return m.executeVarInt(inst)
	case opcode.VarList:
		return m.executeVarList(inst)
	case opcode.Combine:
		return m.executeCombine(inst)
	case opcode.Get:
		return m.executeGet(inst)
	case opcode.Set:
		return m.executeSet(inst)
	case opcode.Copy:
		return m.executeCopy(inst)
	case opcode.Chs:
		return m.executeChs(inst)
	case opcode.Add:
		return m.executeAdd(inst)
	case opcode.If:
		return m.executeIf(inst)
	case opcode.Hlt:
		return m.executeHlt(inst)
	}
	// Decode only produces the ten known opcodes.
	return &opcode.DecodeError{Line: m.pc, Reason: fmt.Sprintf("unknown opcode %q", inst.Cmd)}
}

// parseInt parses an integer literal token.
func parseInt(token string) (int64, bool) {
	n, err := strconv.ParseInt(token, 10, 64)
	return n, err == nil
}

// resolveOperand resolves a variable-or-literal token: an existing variable
// wins, preserving list aliasing; otherwise the token must be an integer
// literal. A token that is neither is reported as an undefined variable,
// since it was presumably meant as a variable name.
func (m *Machine) resolveOperand(token string) (Value, error) {
	if v, ok := m.mem.Get(token); ok {
		return v, nil
	}
	if n, ok := parseInt(token); ok {
		return IntegerValue(n), nil
	}
	return Value{}, NewUndefinedVariableError(token)
}

// resolveList resolves a variable name that must hold a list.
func (m *Machine) resolveList(name string) (*List, error) {
	v, ok := m.mem.Get(name)
	if !ok {
		return nil, NewUndefinedVariableError(name)
	}
	return v.AsList()
}

// resolveIndex parses an index literal token.
func (m *Machine) resolveIndex(token string) (int, error) {
	n, ok := parseInt(token)
	if !ok {
		return 0, NewTypeMismatchError(fmt.Sprintf("index %q is not an integer", token))
	}
	return int(n), nil
}

// executeVarInt executes VARINT var intLiteral.
// Assigns the integer literal to the variable, creating it implicitly.
func (m *Machine) executeVarInt(inst opcode.Instruction) error {
	n, ok := parseInt(inst.Args[1])
	if !ok {
		return NewTypeMismatchError(fmt.Sprintf("VARINT value %q is not an integer", inst.Args[1]))
	}
	m.mem.Set(inst.Args[0], IntegerValue(n))
	m.log.Debug("variable assigned", "name", inst.Args[0], "value", n)
	m.pc++
	return nil
}

// executeVarList executes VARLIST var arg1..argN.
// Each argument resolves to an existing variable (shared reference, so list
// arguments stay aliased) or to an integer literal. The target becomes a
// fresh list of the resolved values. N may be zero.
func (m *Machine) executeVarList(inst opcode.Instruction) error {
	elems := make([]Value, 0, len(inst.Args)-1)
	for _, token := range inst.Args[1:] {
		v, err := m.resolveOperand(token)
		if err != nil {
			return err
		}
		elems = append(elems, v)
	}
	m.mem.Set(inst.Args[0], ListValue(NewListFromSlice(elems)))
	m.log.Debug("list assigned", "name", inst.Args[0], "len", len(elems))
	m.pc++
	return nil
}

// executeCombine executes COMBINE list1 list2.
// When both variables exist and both hold lists, list2 becomes the
// concatenation list1 ++ list2; its elements stay shared with both sources.
// In every other case COMBINE is a no-op, not an error.
func (m *Machine) executeCombine(inst opcode.Instruction) error {
	v1, ok1 := m.mem.Get(inst.Args[0])
	v2, ok2 := m.mem.Get(inst.Args[1])
	if ok1 && ok2 {
		l1, err1 := v1.AsList()
		l2, err2 := v2.AsList()
		if err1 == nil && err2 == nil {
			elems := append(l1.ToSlice(), l2.ToSlice()...)
			m.mem.Set(inst.Args[1], ListValue(NewListFromSlice(elems)))
			m.log.Debug("lists combined", "into", inst.Args[1], "len", len(elems))
		}
	}
	m.pc++
	return nil
}

// executeGet executes GET var index list.
// Reads the element at index into var; a list element stays a shared
// reference.
func (m *Machine) executeGet(inst opcode.Instruction) error {
	index, err := m.resolveIndex(inst.Args[1])
	if err != nil {
		return err
	}
	l, err := m.resolveList(inst.Args[2])
	if err != nil {
		return err
	}
	elem, err := l.Get(index)
	if err != nil {
		return err
	}
	m.mem.Set(inst.Args[0], elem)
	m.pc++
	return nil
}

// executeSet executes SET srcNameOrLiteral index list.
// Replaces the element at index in place; the mutation is visible through
// every alias of the list.
func (m *Machine) executeSet(inst opcode.Instruction) error {
	src, err := m.resolveOperand(inst.Args[0])
	if err != nil {
		return err
	}
	index, err := m.resolveIndex(inst.Args[1])
	if err != nil {
		return err
	}
	l, err := m.resolveList(inst.Args[2])
	if err != nil {
		return err
	}
	if err := l.Set(index, src); err != nil {
		return err
	}
	m.pc++
	return nil
}

// executeCopy executes COPY list1 list2.
// list1 becomes a deep copy of list2, breaking all aliasing between the two.
// This is the only sharing-breaking operation.
func (m *Machine) executeCopy(inst opcode.Instruction) error {
	v, ok := m.mem.Get(inst.Args[1])
	if !ok {
		return NewUndefinedVariableError(inst.Args[1])
	}
	m.mem.Set(inst.Args[0], v.DeepCopy())
	m.pc++
	return nil
}

// executeChs executes CHS var.
// Negates an integer variable in place.
func (m *Machine) executeChs(inst opcode.Instruction) error {
	v, ok := m.mem.Get(inst.Args[0])
	if !ok {
		return NewUndefinedVariableError(inst.Args[0])
	}
	neg, err := v.Negate()
	if err != nil {
		return err
	}
	m.mem.Set(inst.Args[0], neg)
	m.pc++
	return nil
}

// executeAdd executes ADD var operand.
// The operand is always read as a variable name, and an absent operand
// variable reads as 0 instead of faulting. That asymmetry with the rest of
// the instruction set is deliberate: it reproduces the original language
// behavior exactly. The target variable must exist and both values must be
// integers.
func (m *Machine) executeAdd(inst opcode.Instruction) error {
	cur, ok := m.mem.Get(inst.Args[0])
	if !ok {
		return NewUndefinedVariableError(inst.Args[0])
	}
	a, err := cur.AsInteger()
	if err != nil {
		return err
	}

	var b int64
	if v, ok := m.mem.Get(inst.Args[1]); ok {
		b, err = v.AsInteger()
		if err != nil {
			return err
		}
	} else {
		m.log.Debug("ADD operand not found, using 0", "name", inst.Args[1])
	}

	m.mem.Set(inst.Args[0], IntegerValue(a+b))
	m.pc++
	return nil
}

// executeIf executes IF var targetLine.
// Jumps to targetLine when the variable is zero or empty, otherwise falls
// through. The target is not range-checked here: an out-of-range jump
// surfaces as a natural halt at the next fetch.
func (m *Machine) executeIf(inst opcode.Instruction) error {
	v, ok := m.mem.Get(inst.Args[0])
	if !ok {
		return NewUndefinedVariableError(inst.Args[0])
	}
	target, ok2 := parseInt(inst.Args[1])
	if !ok2 {
		return NewTypeMismatchError(fmt.Sprintf("IF target %q is not an integer", inst.Args[1]))
	}
	if v.IsZeroOrEmpty() {
		m.log.Debug("branch taken", "name", inst.Args[0], "target", target)
		m.pc = int(target)
	} else {
		m.pc++
	}
	return nil
}

// executeHlt executes HLT.
// Transitions the machine to HALTED without advancing the program counter.
// The hosting process is never terminated from here.
func (m *Machine) executeHlt(_ opcode.Instruction) error {
	m.log.Debug("halt", "pc", m.pc)
	m.state = StateHalted
	return nil
}
