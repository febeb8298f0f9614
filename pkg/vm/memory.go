// Package vm provides the data memory for the WL machine.
package vm

import (
	"sort"
)

// Memory is the WL data memory: a flat mapping of variable names to values.
// The first assignment creates a variable; a later assignment may change its
// dynamic shape (integer vs. list). Variables are never deleted.
//
// WL execution is single-threaded, so Memory carries no lock.
type Memory struct {
	vars map[string]Value
}

// NewMemory creates an empty data memory.
func NewMemory() *Memory {
	return &Memory{vars: make(map[string]Value)}
}

// Get retrieves a variable value by name.
//
// Returns:
//   - Value: the variable value
//   - bool: true if the variable exists, false otherwise
func (m *Memory) Get(name string) (Value, bool) {
	v, ok := m.vars[name]
	return v, ok
}

// Set assigns a value to a variable, creating it on first assignment.
func (m *Memory) Set(name string, v Value) {
	m.vars[name] = v
}

// Has checks whether a variable exists.
func (m *Memory) Has(name string) bool {
	_, ok := m.vars[name]
	return ok
}

// Keys returns all variable names in sorted order, for deterministic
// display.
func (m *Memory) Keys() []string {
	keys := make([]string, 0, len(m.vars))
	for k := range m.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Size returns the number of variables.
func (m *Memory) Size() int {
	return len(m.vars)
}

// Snapshot returns a copy of the mapping. Values holding lists still share
// identity with the live memory; callers that need isolation use DeepCopy
// on the values.
func (m *Memory) Snapshot() map[string]Value {
	result := make(map[string]Value, len(m.vars))
	for k, v := range m.vars {
		result[k] = v
	}
	return result
}
