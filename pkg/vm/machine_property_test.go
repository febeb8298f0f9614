package vm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property-based tests for the execution engine.

// varListLine builds a "VARLIST name n1 n2 ..." program line.
func varListLine(name string, ns []int64) string {
	tokens := []string{"VARLIST", name}
	for _, n := range ns {
		tokens = append(tokens, fmt.Sprintf("%d", n))
	}
	return strings.Join(tokens, " ")
}

// TestProperty_VarIntStoresLiteral tests that VARINT stores exactly the
// literal and advances the program counter by one.
func TestProperty_VarIntStoresLiteral(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("VARINT x n yields Integer(n) and pc+1", prop.ForAll(
		func(name string, n int64) bool {
			m := New([]string{fmt.Sprintf("VARINT %s %d", name, n)})
			if m.Step() != StateRunning {
				return false
			}
			if m.PC() != 1 {
				return false
			}
			_, mem := m.Snapshot()
			v, ok := mem[name]
			if !ok {
				return false
			}
			got, err := v.AsInteger()
			return err == nil && got == n
		},
		gen.Identifier(),
		gen.Int64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestProperty_IfBranchLaw tests the IF branch rule over arbitrary integer
// values: zero jumps, anything else falls through.
func TestProperty_IfBranchLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("IF jumps iff the variable is zero", prop.ForAll(
		func(n int64, target int) bool {
			m := New([]string{
				fmt.Sprintf("VARINT v %d", n),
				fmt.Sprintf("IF v %d", target),
			})
			m.Step()
			m.Step()
			if n == 0 {
				return m.PC() == target
			}
			return m.PC() == 2
		},
		gen.Int64(),
		gen.IntRange(0, 100),
	))

	properties.Property("IF jumps iff the list is empty", prop.ForAll(
		func(ns []int64, target int) bool {
			m := New([]string{
				varListLine("v", ns),
				fmt.Sprintf("IF v %d", target),
			})
			m.Step()
			m.Step()
			if len(ns) == 0 {
				return m.PC() == target
			}
			return m.PC() == 2
		},
		gen.SliceOf(gen.Int64Range(-1000, 1000)),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestProperty_CombineConcatenation tests that COMBINE produces the
// concatenation of both lists, first list first, order preserved.
func TestProperty_CombineConcatenation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("COMBINE a b makes b = a ++ b", prop.ForAll(
		func(as []int64, bs []int64) bool {
			m := New([]string{
				varListLine("a", as),
				varListLine("b", bs),
				"COMBINE a b",
			})
			if m.Run() != StateHalted {
				return false
			}

			_, mem := m.Snapshot()
			b, err := mem["b"].AsList()
			if err != nil {
				return false
			}
			want := append(append([]int64(nil), as...), bs...)
			if b.Len() != len(want) {
				return false
			}
			for i, wantN := range want {
				e, err := b.Get(i)
				if err != nil {
					return false
				}
				got, err := e.AsInteger()
				if err != nil || got != wantN {
					return false
				}
			}

			// The first list is left untouched.
			a, err := mem["a"].AsList()
			return err == nil && a.Len() == len(as)
		},
		gen.SliceOf(gen.Int64Range(-1000, 1000)),
		gen.SliceOf(gen.Int64Range(-1000, 1000)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestProperty_AddAccumulates tests ADD over arbitrary integer pairs.
func TestProperty_AddAccumulates(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("ADD x y leaves x = a+b and y = b", prop.ForAll(
		func(a int64, b int64) bool {
			m := New([]string{
				fmt.Sprintf("VARINT x %d", a),
				fmt.Sprintf("VARINT y %d", b),
				"ADD x y",
			})
			if m.Run() != StateHalted {
				return false
			}
			_, mem := m.Snapshot()
			x, err := mem["x"].AsInteger()
			if err != nil || x != a+b {
				return false
			}
			y, err := mem["y"].AsInteger()
			return err == nil && y == b
		},
		gen.Int64Range(-1000000, 1000000),
		gen.Int64Range(-1000000, 1000000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
