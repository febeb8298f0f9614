// Package vm provides the WL machine: the value model, the data memory, and
// the fetch-decode-execute engine. It implements:
// - A tagged Value type (integer or list) with shared list identity
// - A flat data memory mapping variable names to values
// - Single-step and run-to-completion execution with jumps and halt
// - Typed runtime faults that surface as the machine's terminal state
package vm

import (
	"fmt"
	"strings"
)

// Kind discriminates the two value shapes.
type Kind string

const (
	KindInteger Kind = "INTEGER"
	KindList    Kind = "LIST"
)

// Value is a WL datum: an integer or a list.
//
// Integers are plain values. Lists have shared mutable identity: a Value
// holding a list carries a pointer to the List, so storing the Value into a
// second variable aliases the same elements, and in-place Set mutation is
// visible through every alias. DeepCopy is the only operation that produces
// a list with fresh identity.
type Value struct {
	kind Kind
	n    int64
	list *List
}

// IntegerValue creates a Value holding the integer n.
func IntegerValue(n int64) Value {
	return Value{kind: KindInteger, n: n}
}

// ListValue creates a Value holding the list l.
func ListValue(l *List) Value {
	return Value{kind: KindList, list: l}
}

// Kind returns the value's shape tag.
func (v Value) Kind() Kind {
	return v.kind
}

// AsInteger returns the integer held by v, or a TYPE_MISMATCH fault when v
// holds a list.
func (v Value) AsInteger() (int64, error) {
	if v.kind != KindInteger {
		return 0, NewTypeMismatchError("expected integer, got list")
	}
	return v.n, nil
}

// AsList returns the list held by v, or a TYPE_MISMATCH fault when v holds
// an integer.
func (v Value) AsList() (*List, error) {
	if v.kind != KindList {
		return nil, NewTypeMismatchError("expected list, got integer")
	}
	return v.list, nil
}

// IsZeroOrEmpty reports whether v is the integer 0 or a list with no
// elements. Both are falsy for IF.
func (v Value) IsZeroOrEmpty() bool {
	if v.kind == KindList {
		return v.list.Len() == 0
	}
	return v.n == 0
}

// Negate returns -v. Defined only on integers.
func (v Value) Negate() (Value, error) {
	n, err := v.AsInteger()
	if err != nil {
		return Value{}, err
	}
	return IntegerValue(-n), nil
}

// DeepCopy returns a value with no shared identity with v. Lists are
// recursively rebuilt; integers carry no identity and copy trivially.
func (v Value) DeepCopy() Value {
	if v.kind != KindList {
		return v
	}
	elems := make([]Value, len(v.list.elems))
	for i, e := range v.list.elems {
		elems[i] = e.DeepCopy()
	}
	return ListValue(NewListFromSlice(elems))
}

// String formats v for snapshots and shell output.
func (v Value) String() string {
	if v.kind == KindList {
		return v.list.String()
	}
	return fmt.Sprintf("%d", v.n)
}

// List is an ordered sequence of Values. It wraps a slice so that list
// values have pass-by-reference semantics; see Value.
type List struct {
	elems []Value
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// NewListFromSlice creates a list owning elems.
func NewListFromSlice(elems []Value) *List {
	return &List{elems: elems}
}

// Get retrieves the element at the specified index.
func (l *List) Get(index int) (Value, error) {
	if index < 0 || index >= len(l.elems) {
		return Value{}, NewIndexOutOfRangeError(index, len(l.elems))
	}
	return l.elems[index], nil
}

// Set replaces the element at the specified index in place. The change is
// visible through every alias of the list.
func (l *List) Set(index int, v Value) error {
	if index < 0 || index >= len(l.elems) {
		return NewIndexOutOfRangeError(index, len(l.elems))
	}
	l.elems[index] = v
	return nil
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.elems)
}

// ToSlice returns a copy of the underlying slice. Element values holding
// lists still share identity with the originals.
func (l *List) ToSlice() []Value {
	result := make([]Value, len(l.elems))
	copy(result, l.elems)
	return result
}

// String formats the list recursively, e.g. "[1 [2 3] 4]".
func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range l.elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}
