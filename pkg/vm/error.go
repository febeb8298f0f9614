// Package vm provides error handling for the WL machine.
package vm

import (
	"fmt"
)

// ErrorType represents the kind of runtime fault.
type ErrorType string

const (
	// ErrorUndefinedVar is a variable referenced before being assigned.
	ErrorUndefinedVar ErrorType = "UNDEFINED_VARIABLE"

	// ErrorTypeMismatch is an opcode receiving a list where an integer is
	// required, or the other way around.
	ErrorTypeMismatch ErrorType = "TYPE_MISMATCH"

	// ErrorIndexOutOfRange is a GET/SET index outside the target list.
	ErrorIndexOutOfRange ErrorType = "INDEX_OUT_OF_RANGE"

	// ErrorStepBudget is a Run exceeding its configured step budget.
	ErrorStepBudget ErrorType = "STEP_BUDGET_EXCEEDED"
)

// RuntimeError represents a fault raised while executing an instruction.
// Every runtime fault is fatal to the machine: it enters FAULTED and stops.
type RuntimeError struct {
	Type    ErrorType
	Message string
	Line    int // 0-based program line if available, -1 otherwise
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("[%s] %s at line %d", e.Type, e.Message, e.Line)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// NewRuntimeError creates a new RuntimeError without line information.
// The machine fills in the line when the fault surfaces from a step.
func NewRuntimeError(errType ErrorType, message string) *RuntimeError {
	return &RuntimeError{
		Type:    errType,
		Message: message,
		Line:    -1,
	}
}

// NewUndefinedVariableError creates an undefined variable fault.
func NewUndefinedVariableError(name string) *RuntimeError {
	return NewRuntimeError(ErrorUndefinedVar, fmt.Sprintf("undefined variable: %s", name))
}

// NewTypeMismatchError creates a type mismatch fault.
func NewTypeMismatchError(message string) *RuntimeError {
	return NewRuntimeError(ErrorTypeMismatch, message)
}

// NewIndexOutOfRangeError creates an index out of range fault.
func NewIndexOutOfRangeError(index, length int) *RuntimeError {
	return NewRuntimeError(ErrorIndexOutOfRange, fmt.Sprintf("index %d out of range (length %d)", index, length))
}

// NewStepBudgetError creates a step budget exceeded fault.
func NewStepBudgetError(limit int) *RuntimeError {
	return NewRuntimeError(ErrorStepBudget, fmt.Sprintf("step budget of %d exceeded", limit))
}
