package ast

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// sample is x := y + 1; while x < z do { if !true then skip else w := 2 }
func sample() Statement {
	return &Composition{
		Lhs: &Assignment{Var: "x", Value: &BinaryOperation{Lhs: v("y"), Op: Add, Rhs: n(1)}},
		Rhs: &While{
			Pos:   Position{Line: 1, Column: 16},
			Guard: NewArithmeticCondition(v("x"), StrictlyLess, v("z")),
			Body: &Conditional{
				Guard:       &Not{Exp: &Boolean{Value: true}},
				TrueBranch:  &Skip{},
				FalseBranch: &Assignment{Var: "w", Value: n(2)},
			},
		},
	}
}

func TestVars(t *testing.T) {
	if diff := cmp.Diff([]string{"w", "x", "y", "z"}, Vars(sample())); diff != "" {
		t.Fatalf("Vars mismatch (-want +got):\n%s", diff)
	}
	if got := Vars(&Skip{}); len(got) != 0 {
		t.Fatalf("expected no variables in skip, got %v", got)
	}
}

func TestConstants(t *testing.T) {
	if diff := cmp.Diff([]int64{1, 2}, Constants(sample())); diff != "" {
		t.Fatalf("Constants mismatch (-want +got):\n%s", diff)
	}
	exp := &BinaryOperation{Lhs: n(-4), Op: Mul, Rhs: &BinaryOperation{Lhs: n(7), Op: Sub, Rhs: n(-4)}}
	if diff := cmp.Diff([]int64{-4, 7}, Constants(exp)); diff != "" {
		t.Fatalf("Constants mismatch (-want +got):\n%s", diff)
	}
}

func TestConstantsSkipComparisonZero(t *testing.T) {
	tests := []struct {
		exp  BooleanExp
		want []int64
	}{
		{NewArithmeticCondition(v("x"), StrictlyLess, n(5)), []int64{5}},
		{NewArithmeticCondition(v("x"), Equal, n(0)), []int64{}},
		{NewArithmeticCondition(n(0), StrictlyLess, v("x")), []int64{0}},
		{&Not{Exp: NewArithmeticCondition(v("x"), Equal, n(-2))}, []int64{-2}},
		{&And{Lhs: NewArithmeticCondition(v("x"), StrictlyLess, n(3)), Rhs: &Boolean{Value: true}}, []int64{3}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Constants(tt.exp), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("Constants(%s) mismatch (-want +got):\n%s", tt.exp, diff)
		}
	}
}

func TestInspectOrder(t *testing.T) {
	var visited []string
	Inspect(sample(), func(node Node) bool {
		visited = append(visited, fmt.Sprintf("%T", node))
		return true
	})
	want := []string{
		"*ast.Composition",
		"*ast.Assignment",
		"*ast.BinaryOperation",
		"*ast.Variable",
		"*ast.Integer",
		"*ast.While",
		"*ast.ArithmeticCondition",
		"*ast.BinaryOperation",
		"*ast.Variable",
		"*ast.Variable",
		"*ast.Integer",
		"*ast.Conditional",
		"*ast.Not",
		"*ast.Boolean",
		"*ast.Skip",
		"*ast.Assignment",
		"*ast.Integer",
	}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Fatalf("visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectPrunes(t *testing.T) {
	count := 0
	Inspect(sample(), func(node Node) bool {
		count++
		_, isWhile := node.(*While)
		return !isWhile
	})
	// Composition, the assignment subtree (4 nodes) and the While itself.
	if count != 6 {
		t.Fatalf("expected 6 visited nodes, got %d", count)
	}

	Inspect(nil, func(Node) bool {
		t.Fatalf("callback called for nil node")
		return false
	})
}
